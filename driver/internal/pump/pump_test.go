// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pump

import (
	"testing"
	"time"
)

func TestOrderWithoutReceiver(t *testing.T) {
	p := Make[int]()
	defer p.Release()

	// Send more than the initial buffer size before anything is received,
	// forcing the buffer to grow.
	const n = 100
	for i := 0; i < n; i++ {
		if !p.Send(i) {
			t.Fatalf("Send(%d) reported a released pump", i)
		}
	}
	for i := 0; i < n; i++ {
		select {
		case got := <-p.Events():
			if got != i {
				t.Fatalf("event %d: got %d, want %d", i, got, i)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestSendAfterReleaseDoesNotBlock(t *testing.T) {
	p := Make[string]()
	p.Release()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.Send("x")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Send blocked after Release")
	}
}
