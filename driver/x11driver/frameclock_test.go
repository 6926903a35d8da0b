// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11driver

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/swa-go/swa/native"
)

func TestUntilTick(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := newFrameClock(10*time.Millisecond, nil)
	fc.start = start
	tests := []struct {
		after time.Duration
		want  time.Duration
	}{
		{0, 10 * time.Millisecond},
		{3 * time.Millisecond, 7 * time.Millisecond},
		{10 * time.Millisecond, 10 * time.Millisecond},
		{25 * time.Millisecond, 5 * time.Millisecond},
		{-4 * time.Millisecond, 4 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := fc.untilTick(start.Add(tt.after)); got != tt.want {
			t.Errorf("untilTick(start+%v) = %v, want %v", tt.after, got, tt.want)
		}
	}
}

func TestFrameClockDefaultInterval(t *testing.T) {
	fc := newFrameClock(0, nil)
	if want := time.Second / defaultRefreshRate; fc.interval != want {
		t.Errorf("interval = %v, want %v", fc.interval, want)
	}
}

func TestFrameClockFire(t *testing.T) {
	var got []native.FrameEvent
	// The timer never fires during the test; fire is called directly.
	fc := newFrameClock(time.Hour, func(ev native.FrameEvent) { got = append(got, ev) })
	t.Cleanup(fc.stop)

	t1 := fc.request(3)
	t2 := fc.request(1)
	t3 := fc.request(2)
	fc.cancel(t2)
	fc.fire()

	want := []native.FrameEvent{{Window: 3, Token: t1}, {Window: 2, Token: t3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame events (-want +got):\n%s", diff)
	}

	got = nil
	fc.fire()
	if len(got) != 0 {
		t.Errorf("second fire delivered %v, want nothing", got)
	}
	if t4 := fc.request(3); t4 <= t3 {
		t.Errorf("token %d not greater than %d", t4, t3)
	}
}

func TestFrameClockStop(t *testing.T) {
	sent := 0
	fc := newFrameClock(time.Hour, func(native.FrameEvent) { sent++ })
	fc.request(1)
	fc.stop()
	fc.fire()
	if sent != 0 {
		t.Errorf("stopped clock delivered %d events", sent)
	}
	if fc.timer != nil {
		t.Error("stopped clock kept its timer")
	}
}

func TestFrameClockTicks(t *testing.T) {
	ch := make(chan native.FrameEvent, 1)
	fc := newFrameClock(time.Millisecond, func(ev native.FrameEvent) { ch <- ev })
	t.Cleanup(fc.stop)
	tok := fc.request(7)
	select {
	case ev := <-ch:
		if want := (native.FrameEvent{Window: 7, Token: tok}); ev != want {
			t.Errorf("got %v, want %v", ev, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no frame event")
	}
}
