// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"strings"

	"github.com/swa-go/swa/native"
)

// Caps is a set of optional features. Display and window capabilities share
// one bit space; a window's set is always a subset of its display's.
type Caps uint32

const (
	CapBufferSurface Caps = 1 << iota
	CapGL
	CapGPUSurface
	CapVsync
	CapTransparency
	CapClipboard
	CapDragAndDrop
	CapKeyboard
	CapMouse

	CapCursor
	CapPosition
	CapResize
	CapSizeLimits
	CapTitle
	CapVisibility
	CapMinimize
	CapMaximize
	CapFullscreen
	CapDecorationQuery
)

// windowScope are the bits a window can inherit from its display without
// further conditions.
const windowScope = CapVsync | CapCursor | CapPosition | CapResize |
	CapSizeLimits | CapTitle | CapVisibility | CapMinimize | CapMaximize |
	CapFullscreen | CapDecorationQuery

var capNames = []string{
	"buffer",
	"gl",
	"gpu",
	"vsync",
	"transparency",
	"clipboard",
	"dnd",
	"keyboard",
	"mouse",
	"cursor",
	"position",
	"resize",
	"size-limits",
	"title",
	"visibility",
	"minimize",
	"maximize",
	"fullscreen",
	"decoration-query",
}

// Has reports whether every bit of f is in c.
func (c Caps) Has(f Caps) bool { return c&f == f }

// Names returns the names of the bits in c.
func (c Caps) Names() []string {
	var names []string
	for i, n := range capNames {
		if c&(1<<uint(i)) != 0 {
			names = append(names, n)
		}
	}
	return names
}

func (c Caps) String() string {
	if c == 0 {
		return "none"
	}
	return strings.Join(c.Names(), "|")
}

// surfaceCap maps a surface type to the capability it needs.
func surfaceCap(t SurfaceType) Caps {
	switch t {
	case SurfaceBuffer:
		return CapBufferSurface
	case SurfaceGL:
		return CapGL
	case SurfaceGPU:
		return CapGPUSurface
	}
	return 0
}

// displayCaps computes the capabilities of a display backed by a connection
// with features f.
func displayCaps(f native.Features) Caps {
	var c Caps
	set := func(ok bool, bit Caps) {
		if ok {
			c |= bit
		}
	}
	set(f.Buffer, CapBufferSurface)
	set(f.GL, CapGL)
	set(f.GPUSurface, CapGPUSurface)
	set(f.FrameNotify, CapVsync)
	set(f.ARGBVisual, CapTransparency)
	set(f.Clipboard, CapClipboard)
	set(f.DragAndDrop, CapDragAndDrop)
	set(f.Keyboard, CapKeyboard)
	set(f.Mouse, CapMouse)
	set(f.Cursor, CapCursor)
	set(f.Position, CapPosition)
	set(f.Resize, CapResize)
	set(f.SizeLimits, CapSizeLimits)
	set(f.Title, CapTitle)
	set(f.Visibility, CapVisibility)
	set(f.Minimize, CapMinimize)
	set(f.Maximize, CapMaximize)
	set(f.Fullscreen, CapFullscreen)
	set(f.DecorationQuery, CapDecorationQuery)
	return c
}

// windowCaps computes the capabilities of a window created with cfg on a
// display advertising display. The result is a subset of display.
func windowCaps(display Caps, cfg native.WindowConfig) Caps {
	c := display & windowScope
	c |= display & surfaceCap(cfg.Surface)
	if cfg.Transparent {
		c |= display & CapTransparency
	}
	return c
}
