// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package native defines the boundary between the screen runtime and the
// display systems that back it.
//
// A driver package implements Conn, and the Windows it creates, on top of
// one native display system. The screen package consumes these interfaces
// and owns every policy decision: which callbacks run, when buffers are
// reallocated and how vsync notifications are paced. Drivers only translate.
//
// Unless documented otherwise, every method is called on the goroutine that
// dispatches events for the Conn. Wakeup is the only exception.
package native

import "errors"

// ErrClosed is returned, possibly wrapped, by a Conn whose native connection
// has gone away.
var ErrClosed = errors.New("native: connection closed")

// WindowID identifies a native window within one Conn. Zero is never a valid
// window and marks connection-scoped events.
type WindowID uint64

// FrameToken identifies one outstanding frame notification request.
type FrameToken uint64

// DefaultSize asks the backend to pick a window dimension.
const DefaultSize = ^uint32(0)

// SurfaceType selects how a window's content reaches the screen.
type SurfaceType uint8

const (
	SurfaceNone SurfaceType = iota
	SurfaceBuffer
	SurfaceGL
	SurfaceGPU
)

func (t SurfaceType) String() string {
	switch t {
	case SurfaceNone:
		return "none"
	case SurfaceBuffer:
		return "buffer"
	case SurfaceGL:
		return "gl"
	case SurfaceGPU:
		return "gpu"
	}
	return "unknown"
}

// State is the presentation state of a top-level window.
type State uint8

const (
	StateNone State = iota
	StateNormal
	StateMinimized
	StateMaximized
	StateFullscreen
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	case StateFullscreen:
		return "fullscreen"
	}
	return "unknown"
}

// PixelFormat is the byte layout of a buffer surface.
type PixelFormat uint8

const (
	FormatUnknown PixelFormat = iota
	// FormatBGRA8 stores bytes B, G, R, A; on little-endian machines each pixel
	// reads as the 32-bit word 0xAARRGGBB.
	FormatBGRA8
	// FormatRGBA8 matches image.RGBA.
	FormatRGBA8
)

// BytesPerPixel returns the size of one pixel, or 0 for FormatUnknown.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatBGRA8, FormatRGBA8:
		return 4
	}
	return 0
}

func (f PixelFormat) String() string {
	switch f {
	case FormatBGRA8:
		return "bgra8"
	case FormatRGBA8:
		return "rgba8"
	}
	return "unknown"
}

// WindowConfig holds what a backend needs to create a window.
type WindowConfig struct {
	// Width and Height may be DefaultSize.
	Width, Height uint32
	Title         string
	Surface       SurfaceType
	Transparent   bool
}

// Features reports what a backend and its native connection support. The
// screen package derives the advertised capability set from it.
type Features struct {
	// Native extensions.
	SharedMemory bool
	FrameNotify  bool
	InputMethod  bool
	ARGBVisual   bool

	// Surface kinds.
	Buffer     bool
	GL         bool
	GPUSurface bool

	// Data exchange.
	Clipboard   bool
	DragAndDrop bool

	// Input devices.
	Keyboard bool
	Mouse    bool

	// Window operations.
	Cursor          bool
	Position        bool
	Resize          bool
	SizeLimits      bool
	Title           bool
	Visibility      bool
	Minimize        bool
	Maximize        bool
	Fullscreen      bool
	DecorationQuery bool
}

// Conn is a connection to one native display system.
type Conn interface {
	Features() Features

	// CreateWindow creates and maps a native window. On error nothing is left
	// to release.
	CreateWindow(cfg WindowConfig) (Window, error)

	// PollEvent returns the next queued event without blocking. It returns
	// nil, nil when no event is queued. Any error is fatal for the Conn.
	PollEvent() (Event, error)

	// WaitEvent blocks until an event is queued or Wakeup is called. It
	// returns nil, nil when woken without an event. Any error is fatal for
	// the Conn.
	WaitEvent() (Event, error)

	// Wakeup makes a blocked or the next WaitEvent return. It is safe to call
	// from any goroutine and must neither block nor allocate.
	Wakeup()

	Close() error
}

// FrameNotifier is implemented by a Conn that can tell when a window should
// present its next frame. Each successful RequestFrame is answered by exactly
// one FrameEvent carrying the returned token, unless it is cancelled first.
type FrameNotifier interface {
	RequestFrame(id WindowID) (FrameToken, error)
	CancelFrame(tok FrameToken)
}

// Window is a native window.
type Window interface {
	ID() WindowID

	// Size reports the geometry the native system created the window with.
	Size() (width, height uint32)

	SetTitle(title string) error
	SetSize(width, height uint32) error
	SetMinSize(width, height uint32) error
	SetMaxSize(width, height uint32) error
	SetState(s State) error
	Show(show bool) error

	// Destroy releases the native window. The Window must not be used
	// afterwards.
	Destroy() error
}

// BufferSurface is implemented by a Window created with SurfaceBuffer.
type BufferSurface interface {
	Format() PixelFormat

	// AllocPixels allocates backing memory for a width x height image with a
	// stride of Format().BytesPerPixel()*width.
	AllocPixels(width, height uint32) (Pixels, error)

	// BeginDraw obtains the drawing context used by Present.
	BeginDraw() error

	// Present copies p to the visible window.
	Present(p Pixels, width, height uint32) error

	// EndDraw releases what BeginDraw obtained. It is called once for every
	// successful BeginDraw.
	EndDraw()
}

// Pixels is backing memory for a buffer surface, possibly shared with the
// display server.
type Pixels interface {
	Bytes() []byte
	Release() error
}

// SurfaceHandler is implemented by a Window created with SurfaceGL or
// SurfaceGPU. The handle is opaque to the screen package and is meant for
// the graphics API.
type SurfaceHandler interface {
	SurfaceHandle() (any, error)
}
