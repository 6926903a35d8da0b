// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/swa-go/swa/driver/headless"
)

func newDisplay(t *testing.T, opts headless.Options) (*Display, *headless.Conn) {
	t.Helper()
	c := headless.Open(opts)
	d, err := New(c, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Destroy() })
	return d, c
}

func createWindow(t *testing.T, d *Display, s WindowSettings) *Window {
	t.Helper()
	w, err := d.CreateWindow(s)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	return w
}

// dispatch drains queued events without blocking.
func dispatch(t *testing.T, d *Display) {
	t.Helper()
	if !d.Dispatch(false) {
		t.Fatalf("Dispatch: %v", d.Err())
	}
}

// recorder is a Listener that logs every call.
type recorder struct {
	calls []string
	on    ListenerFuncs
}

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

func (r *recorder) Draw(w *Window) {
	r.add("draw")
	r.on.Draw(w)
}

func (r *recorder) Resize(w *Window, width, height uint32) {
	r.add("resize")
	r.on.Resize(w, width, height)
}

func (r *recorder) Close(w *Window) {
	r.add("close")
	r.on.Close(w)
}

func (r *recorder) State(w *Window, s State) {
	r.add("state:" + s.String())
	r.on.State(w, s)
}

func (r *recorder) Focus(w *Window, focused bool) {
	if focused {
		r.add("focus")
	} else {
		r.add("blur")
	}
	r.on.Focus(w, focused)
}

func (r *recorder) Key(w *Window, e key.Event) {
	r.add("key")
	r.on.Key(w, e)
}

func (r *recorder) Mouse(w *Window, e mouse.Event) {
	r.add("mouse")
	r.on.Mouse(w, e)
}

func (r *recorder) take() []string {
	c := r.calls
	r.calls = nil
	return c
}
