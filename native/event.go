// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package native

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// Event is a classified native event. WindowID returns 0 for events that are
// not tied to a window.
type Event interface {
	WindowID() WindowID
}

// DrawEvent reports that part of a window needs to be repainted.
type DrawEvent struct {
	Window WindowID
}

// ResizeEvent carries the window geometry as decided by the native system.
type ResizeEvent struct {
	Window        WindowID
	Width, Height uint32
}

// CloseEvent reports that the user asked to close a window.
type CloseEvent struct {
	Window WindowID
}

// StateEvent carries the window state as decided by the native system.
type StateEvent struct {
	Window WindowID
	State  State
}

// FocusEvent reports keyboard focus changes.
type FocusEvent struct {
	Window  WindowID
	Focused bool
}

// FrameEvent answers a FrameNotifier.RequestFrame call.
type FrameEvent struct {
	Window WindowID
	Token  FrameToken
}

// KeyEvent is keyboard input.
type KeyEvent struct {
	Window WindowID
	key.Event
}

// MouseEvent is pointer input.
type MouseEvent struct {
	Window WindowID
	mouse.Event
}

// ErrorEvent is a non-fatal protocol error reported by the native system.
type ErrorEvent struct {
	Err error
}

func (e DrawEvent) WindowID() WindowID   { return e.Window }
func (e ResizeEvent) WindowID() WindowID { return e.Window }
func (e CloseEvent) WindowID() WindowID  { return e.Window }
func (e StateEvent) WindowID() WindowID  { return e.Window }
func (e FocusEvent) WindowID() WindowID  { return e.Window }
func (e FrameEvent) WindowID() WindowID  { return e.Window }
func (e KeyEvent) WindowID() WindowID    { return e.Window }
func (e MouseEvent) WindowID() WindowID  { return e.Window }
func (e ErrorEvent) WindowID() WindowID  { return 0 }

// Kind returns a short name for ev's type, suitable for logs and metrics.
func Kind(ev Event) string {
	switch ev.(type) {
	case DrawEvent:
		return "draw"
	case ResizeEvent:
		return "resize"
	case CloseEvent:
		return "close"
	case StateEvent:
		return "state"
	case FocusEvent:
		return "focus"
	case FrameEvent:
		return "frame"
	case KeyEvent:
		return "key"
	case MouseEvent:
		return "mouse"
	case ErrorEvent:
		return "error"
	}
	return "other"
}
