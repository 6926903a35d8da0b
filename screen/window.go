// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"go.uber.org/multierr"

	"github.com/swa-go/swa/native"
)

// Window is a native window managed by a Display.
//
// Geometry and state are owned by the native system: requests such as
// SetSize and SetState only ask for a change, which becomes visible through
// Size, State and the Listener once the native system confirms it.
type Window struct {
	d        *Display
	nw       native.Window
	id       native.WindowID
	slot     int32
	listener Listener
	surface  SurfaceType
	caps     Caps

	width, height uint32
	state         State
	destroyed     bool

	buf     bufferState
	handles native.SurfaceHandler
	present presentState
}

// ID returns the native identifier of the window.
func (w *Window) ID() native.WindowID { return w.id }

// Display returns the display w was created on.
func (w *Window) Display() *Display { return w.d }

// Size returns the current geometry. Zero means not sized yet.
func (w *Window) Size() (width, height uint32) { return w.width, w.height }

// State returns the last state confirmed by the native system.
func (w *Window) State() State { return w.state }

// Surface returns the surface type chosen at creation.
func (w *Window) Surface() SurfaceType { return w.surface }

// Capabilities returns the operations supported on w. The set is fixed at
// creation and is a subset of the display's capabilities.
func (w *Window) Capabilities() Caps { return w.caps }

// Destroyed reports whether Destroy has been called.
func (w *Window) Destroyed() bool { return w.destroyed }

func (w *Window) usable() error {
	if w.destroyed {
		return ErrDestroyed
	}
	return w.d.usable()
}

// request runs a client request that needs cap. Requests outside the
// window's capabilities are accepted and ignored.
func (w *Window) request(cap Caps, op string, fn func() error) error {
	if err := w.usable(); err != nil {
		return err
	}
	if !w.caps.Has(cap) {
		w.d.log.V(1).Info("ignoring unsupported request", "window", w.id, "op", op)
		return nil
	}
	if err := fn(); err != nil {
		return resourceErr(op, err)
	}
	return nil
}

// SetSize asks the native system to resize the window.
func (w *Window) SetSize(width, height uint32) error {
	return w.request(CapResize, "set size", func() error { return w.nw.SetSize(width, height) })
}

// SetMinSize asks the native system to keep the window at least this large.
func (w *Window) SetMinSize(width, height uint32) error {
	return w.request(CapSizeLimits, "set min size", func() error { return w.nw.SetMinSize(width, height) })
}

// SetMaxSize asks the native system to keep the window at most this large.
func (w *Window) SetMaxSize(width, height uint32) error {
	return w.request(CapSizeLimits, "set max size", func() error { return w.nw.SetMaxSize(width, height) })
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) error {
	return w.request(CapTitle, "set title", func() error { return w.nw.SetTitle(title) })
}

// Show maps or unmaps the window.
func (w *Window) Show(show bool) error {
	return w.request(CapVisibility, "show", func() error { return w.nw.Show(show) })
}

// SetState asks the native system to change the window state.
func (w *Window) SetState(s State) error {
	var cap Caps
	switch s {
	case StateMinimized:
		cap = CapMinimize
	case StateMaximized:
		cap = CapMaximize
	case StateFullscreen:
		cap = CapFullscreen
	case StateNormal:
		// Restoring is possible whenever some other state can be entered.
		for _, c := range []Caps{CapMinimize, CapMaximize, CapFullscreen} {
			if w.caps.Has(c) {
				cap = c
				break
			}
		}
		if cap == 0 {
			return w.usable()
		}
	default:
		if err := w.usable(); err != nil {
			return err
		}
		return ErrUnsupported
	}
	return w.request(cap, "set state", func() error { return w.nw.SetState(s) })
}

// SurfaceHandle returns the native handle of a GL or GPU surface, for use
// with the graphics API. It fails with ErrWrongSurface for other windows.
func (w *Window) SurfaceHandle() (any, error) {
	if err := w.usable(); err != nil {
		return nil, err
	}
	if w.handles == nil {
		return nil, ErrWrongSurface
	}
	h, err := w.handles.SurfaceHandle()
	if err != nil {
		return nil, resourceErr(w.surface.String()+" surface handle", err)
	}
	return h, nil
}

// Destroy releases the window and all its native resources. Destroying a
// destroyed window is a no-op.
func (w *Window) Destroy() error {
	return w.destroy()
}

// destroy releases resources in dependency order: the outstanding frame
// registration, the surface, the native window and finally the registry
// link. The window is always unregistered, even if a release step fails.
func (w *Window) destroy() error {
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	d := w.d

	var errs error
	if w.present.pending && d.frames != nil {
		d.frames.CancelFrame(w.present.token)
	}
	w.present = presentState{}

	if w.buf.active {
		w.buf.target.EndDraw()
		w.buf.active = false
	}
	if w.buf.pixels != nil {
		errs = multierr.Append(errs, w.buf.pixels.Release())
		w.buf.pixels = nil
	}
	errs = multierr.Append(errs, w.nw.Destroy())

	d.windows.remove(w)
	d.metrics.windows.Add(d.ctx, -1)
	d.log.V(1).Info("window destroyed", "window", w.id)
	if errs != nil {
		return resourceErr("destroy window", errs)
	}
	return nil
}

// draw invokes the Draw callback unless the window has no size yet.
func (w *Window) draw() {
	if w.width == 0 && w.height == 0 {
		return
	}
	w.listener.Draw(w)
}

func (w *Window) resized(width, height uint32) {
	if (width == w.width && height == w.height) || (width == 0 && height == 0) {
		return
	}
	w.width, w.height = width, height
	w.listener.Resize(w, width, height)
}

func (w *Window) stateChanged(s State) {
	if s == w.state || s == native.StateNone {
		return
	}
	w.state = s
	w.listener.State(w, s)
}
