// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"fmt"

	"github.com/swa-go/swa/native"
)

// Dispatch routes queued native events to their windows' listeners.
//
// If block is true and no event is queued, Dispatch waits until one arrives
// or Wakeup is called. It then drains every event queued at that point
// without waiting again. If block is false, Dispatch only drains what is
// already queued.
//
// Dispatch returns false once the connection has failed; Err returns the
// cause and only Destroy may be called afterwards.
func (d *Display) Dispatch(block bool) bool {
	if d.err != nil || d.closed {
		return false
	}
	if block {
		ev, err := d.conn.WaitEvent()
		if err != nil {
			d.fail(err)
			return false
		}
		if ev != nil {
			d.route(ev)
		}
	}
	for !d.closed {
		ev, err := d.conn.PollEvent()
		if err != nil {
			d.fail(err)
			return false
		}
		if ev == nil {
			break
		}
		d.route(ev)
	}
	return true
}

func (d *Display) fail(err error) {
	d.err = fmt.Errorf("%w: %v", ErrConnectionLost, err)
	d.log.Error(err, "display connection failed")
}

// route delivers ev to at most one listener callback. The window must not
// be touched after the callback returns, as the callback may destroy it.
func (d *Display) route(ev native.Event) {
	kind := native.Kind(ev)
	d.metrics.event(d.ctx, kind)

	id := ev.WindowID()
	if id == 0 {
		if e, ok := ev.(native.ErrorEvent); ok {
			d.log.Error(e.Err, "native protocol error")
		}
		return
	}
	w := d.windows.lookup(id)
	if w == nil {
		d.log.V(2).Info("dropping event for unknown window", "window", id, "kind", kind)
		return
	}
	d.log.V(2).Info("event", "window", id, "kind", kind)

	switch e := ev.(type) {
	case native.DrawEvent:
		w.draw()
	case native.ResizeEvent:
		w.resized(e.Width, e.Height)
	case native.CloseEvent:
		w.listener.Close(w)
	case native.StateEvent:
		w.stateChanged(e.State)
	case native.FocusEvent:
		w.listener.Focus(w, e.Focused)
	case native.FrameEvent:
		w.frameDone(e.Token)
	case native.KeyEvent:
		w.listener.Key(w, e.Event)
	case native.MouseEvent:
		w.listener.Mouse(w, e.Event)
	}
}
