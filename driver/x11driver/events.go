// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11driver

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/swa-go/swa/native"
)

// translator classifies X events. Everything that needs the server goes
// through its function fields.
type translator struct {
	atoms *atomTable

	// lookup returns the keysym name for a key press.
	lookup func(state uint16, code xproto.Keycode) string
	// state reads the window state properties.
	state func(xw xproto.Window) native.State
	// remap reloads the keyboard mapping.
	remap func()
}

func wid(xw xproto.Window) native.WindowID { return native.WindowID(xw) }

// translate returns the native event for ev, or nil if it carries nothing
// the screen package uses.
func (t *translator) translate(ev xgb.Event) native.Event {
	switch ev := ev.(type) {
	case xproto.ExposeEvent:
		// Only the last of a series of expose events triggers a redraw.
		if ev.Count != 0 {
			return nil
		}
		return native.DrawEvent{Window: wid(ev.Window)}

	case xproto.ConfigureNotifyEvent:
		if ev.Event != ev.Window {
			return nil
		}
		return native.ResizeEvent{Window: wid(ev.Window), Width: uint32(ev.Width), Height: uint32(ev.Height)}

	case xproto.ClientMessageEvent:
		if ev.Format != 32 || ev.Type != t.atoms.wmProtocols || len(ev.Data.Data32) == 0 {
			return nil
		}
		if xproto.Atom(ev.Data.Data32[0]) == t.atoms.wmDeleteWindow {
			return native.CloseEvent{Window: wid(ev.Window)}
		}

	case xproto.PropertyNotifyEvent:
		if ev.Atom == t.atoms.netWMState || ev.Atom == t.atoms.wmState {
			return native.StateEvent{Window: wid(ev.Window), State: t.state(ev.Window)}
		}

	case xproto.FocusInEvent:
		if ev.Detail == xproto.NotifyDetailPointer {
			return nil
		}
		return native.FocusEvent{Window: wid(ev.Event), Focused: true}

	case xproto.FocusOutEvent:
		if ev.Detail == xproto.NotifyDetailPointer {
			return nil
		}
		return native.FocusEvent{Window: wid(ev.Event), Focused: false}

	case xproto.KeyPressEvent:
		return native.KeyEvent{
			Window: wid(ev.Event),
			Event:  keyEvent(t.lookup(ev.State, ev.Detail), ev.State, key.DirPress),
		}

	case xproto.KeyReleaseEvent:
		return native.KeyEvent{
			Window: wid(ev.Event),
			Event:  keyEvent(t.lookup(ev.State, ev.Detail), ev.State, key.DirRelease),
		}

	case xproto.ButtonPressEvent:
		return mouseEvent(wid(ev.Event), ev.EventX, ev.EventY, ev.Detail, ev.State, mouse.DirPress)

	case xproto.ButtonReleaseEvent:
		return mouseEvent(wid(ev.Event), ev.EventX, ev.EventY, ev.Detail, ev.State, mouse.DirRelease)

	case xproto.MotionNotifyEvent:
		return native.MouseEvent{
			Window: wid(ev.Event),
			Event: mouse.Event{
				X:         float32(ev.EventX),
				Y:         float32(ev.EventY),
				Modifiers: keyModifiers(ev.State),
			},
		}

	case xproto.MappingNotifyEvent:
		if ev.Request == xproto.MappingKeyboard || ev.Request == xproto.MappingModifier {
			t.remap()
		}
	}
	return nil
}

// mouseEvent translates a button event. X reports wheel motion as presses
// of buttons 4 to 7, each followed by a release that is dropped.
func mouseEvent(id native.WindowID, x, y int16, detail xproto.Button, state uint16, dir mouse.Direction) native.Event {
	b := mouse.ButtonNone
	switch detail {
	case 1:
		b = mouse.ButtonLeft
	case 2:
		b = mouse.ButtonMiddle
	case 3:
		b = mouse.ButtonRight
	case 4:
		b = mouse.ButtonWheelUp
	case 5:
		b = mouse.ButtonWheelDown
	case 6:
		b = mouse.ButtonWheelLeft
	case 7:
		b = mouse.ButtonWheelRight
	}
	if b.IsWheel() {
		if dir == mouse.DirRelease {
			return nil
		}
		dir = mouse.DirStep
	}
	return native.MouseEvent{
		Window: id,
		Event: mouse.Event{
			X:         float32(x),
			Y:         float32(y),
			Button:    b,
			Modifiers: keyModifiers(state),
			Direction: dir,
		},
	}
}

// computeState derives the window state from WM_STATE and the
// _NET_WM_STATE atom names.
func computeState(iconic bool, netStates []string) native.State {
	var hidden, fullscreen, maxVert, maxHorz bool
	for _, s := range netStates {
		switch s {
		case "_NET_WM_STATE_HIDDEN":
			hidden = true
		case "_NET_WM_STATE_FULLSCREEN":
			fullscreen = true
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			maxVert = true
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			maxHorz = true
		}
	}
	switch {
	case iconic || hidden:
		return native.StateMinimized
	case fullscreen:
		return native.StateFullscreen
	case maxVert && maxHorz:
		return native.StateMaximized
	}
	return native.StateNormal
}
