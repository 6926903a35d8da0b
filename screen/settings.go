// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"github.com/swa-go/swa/native"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

type (
	SurfaceType = native.SurfaceType
	State       = native.State
	PixelFormat = native.PixelFormat
)

const (
	SurfaceNone   = native.SurfaceNone
	SurfaceBuffer = native.SurfaceBuffer
	SurfaceGL     = native.SurfaceGL
	SurfaceGPU    = native.SurfaceGPU

	StateNormal     = native.StateNormal
	StateMinimized  = native.StateMinimized
	StateMaximized  = native.StateMaximized
	StateFullscreen = native.StateFullscreen

	FormatBGRA8 = native.FormatBGRA8
	FormatRGBA8 = native.FormatRGBA8
)

// DefaultSize lets the backend choose a window dimension.
const DefaultSize = native.DefaultSize

// WindowSettings are the arguments to Display.CreateWindow.
type WindowSettings struct {
	// Width and Height are in pixels, or DefaultSize.
	Width, Height uint32

	Title string

	// Surface is fixed for the lifetime of the window.
	Surface SurfaceType

	// Transparent requests an alpha-blended window. It is honored only when
	// the window reports CapTransparency.
	Transparent bool

	// Listener receives the window's events. It may be nil.
	Listener Listener
}

// Listener receives window events. All methods are called on the goroutine
// that calls Display.Dispatch, and may destroy the window.
type Listener interface {
	Draw(w *Window)
	Resize(w *Window, width, height uint32)
	Close(w *Window)
	State(w *Window, s State)
	Focus(w *Window, focused bool)
	Key(w *Window, e key.Event)
	Mouse(w *Window, e mouse.Event)
}

// ListenerFuncs is a Listener built from optional functions.
type ListenerFuncs struct {
	OnDraw   func(w *Window)
	OnResize func(w *Window, width, height uint32)
	OnClose  func(w *Window)
	OnState  func(w *Window, s State)
	OnFocus  func(w *Window, focused bool)
	OnKey    func(w *Window, e key.Event)
	OnMouse  func(w *Window, e mouse.Event)
}

var _ Listener = ListenerFuncs{}

func (l ListenerFuncs) Draw(w *Window) {
	if l.OnDraw != nil {
		l.OnDraw(w)
	}
}

func (l ListenerFuncs) Resize(w *Window, width, height uint32) {
	if l.OnResize != nil {
		l.OnResize(w, width, height)
	}
}

func (l ListenerFuncs) Close(w *Window) {
	if l.OnClose != nil {
		l.OnClose(w)
	}
}

func (l ListenerFuncs) State(w *Window, s State) {
	if l.OnState != nil {
		l.OnState(w, s)
	}
}

func (l ListenerFuncs) Focus(w *Window, focused bool) {
	if l.OnFocus != nil {
		l.OnFocus(w, focused)
	}
}

func (l ListenerFuncs) Key(w *Window, e key.Event) {
	if l.OnKey != nil {
		l.OnKey(w, e)
	}
}

func (l ListenerFuncs) Mouse(w *Window, e mouse.Event) {
	if l.OnMouse != nil {
		l.OnMouse(w, e)
	}
}

// Image is the pixel memory of an acquired buffer surface. Pix is valid
// until the next ApplyBuffer.
type Image struct {
	Pix    []byte
	Stride int
	Width  uint32
	Height uint32
	Format PixelFormat
}
