// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package headless

import (
	"errors"
	"fmt"
	"image"

	"github.com/swa-go/swa/internal/swizzle"
	"github.com/swa-go/swa/native"
)

// Window is a headless native window.
type Window struct {
	c           *Conn
	id          native.WindowID
	surface     native.SurfaceType
	transparent bool

	// Guarded by c.mu.
	title          string
	width, height  uint32
	minW, minH     uint32
	maxW, maxH     uint32
	state          native.State
	visible        bool
	drawing        bool
	destroyed      bool
	frame          []byte
	frameW, frameH uint32
	presents       int
}

var (
	_ native.Window         = (*Window)(nil)
	_ native.BufferSurface  = (*Window)(nil)
	_ native.SurfaceHandler = (*Window)(nil)
)

// Handle is the surface handle of a headless GL or GPU window.
type Handle struct {
	Window  native.WindowID
	Surface native.SurfaceType
}

func (w *Window) ID() native.WindowID { return w.id }

func (w *Window) Size() (width, height uint32) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return w.width, w.height
}

// Title returns the last title set.
func (w *Window) Title() string {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return w.title
}

// State returns the current state.
func (w *Window) State() native.State {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return w.state
}

// Visible reports whether the window is mapped.
func (w *Window) Visible() bool {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return w.visible
}

// Transparent reports whether the window was created with an alpha channel.
func (w *Window) Transparent() bool { return w.transparent }

// MinSize returns the minimum size hint, zero if unset.
func (w *Window) MinSize() (width, height uint32) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return w.minW, w.minH
}

// MaxSize returns the maximum size hint, zero if unset.
func (w *Window) MaxSize() (width, height uint32) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return w.maxW, w.maxH
}

// Destroyed reports whether Destroy has been called.
func (w *Window) Destroyed() bool {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return w.destroyed
}

// Presented returns a copy of the last presented frame and the number of
// frames presented so far.
func (w *Window) Presented() (pix []byte, width, height uint32, n int) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return append([]byte(nil), w.frame...), w.frameW, w.frameH, w.presents
}

// Image returns the last presented frame as an RGBA image, or nil if
// nothing was presented.
func (w *Window) Image() *image.RGBA {
	pix, width, height, n := w.Presented()
	if n == 0 {
		return nil
	}
	if w.c.opts.Format == native.FormatBGRA8 {
		swizzle.BGRA(pix)
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: 4 * int(width),
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}
}

func (w *Window) SetTitle(title string) error {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	w.title = title
	return nil
}

func (w *Window) SetSize(width, height uint32) error {
	c := w.c
	c.mu.Lock()
	if err := c.injected(OpSetSize); err != nil {
		c.mu.Unlock()
		return err
	}
	if !c.opts.Manual {
		width = clamp(width, w.minW, w.maxW)
		height = clamp(height, w.minH, w.maxH)
		w.width, w.height = width, height
		c.queue = append(c.queue,
			native.ResizeEvent{Window: w.id, Width: width, Height: height},
			native.DrawEvent{Window: w.id})
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

func clamp(v, lo, hi uint32) uint32 {
	if lo != 0 && v < lo {
		v = lo
	}
	if hi != 0 && v > hi {
		v = hi
	}
	return v
}

func (w *Window) SetMinSize(width, height uint32) error {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	w.minW, w.minH = width, height
	return nil
}

func (w *Window) SetMaxSize(width, height uint32) error {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	w.maxW, w.maxH = width, height
	return nil
}

func (w *Window) SetState(s native.State) error {
	c := w.c
	c.mu.Lock()
	if err := c.injected(OpSetState); err != nil {
		c.mu.Unlock()
		return err
	}
	if !c.opts.Manual {
		w.state = s
		c.queue = append(c.queue, native.StateEvent{Window: w.id, State: s})
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

func (w *Window) Show(show bool) error {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	w.visible = show
	return nil
}

func (w *Window) Destroy() error {
	c := w.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if w.destroyed {
		return errors.New("headless: window destroyed twice")
	}
	w.destroyed = true
	delete(c.windows, w.id)
	c.stats.WindowsDestroyed++
	return c.injected(OpDestroyWindow)
}

func (w *Window) Format() native.PixelFormat { return w.c.opts.Format }

type pixels struct {
	c        *Conn
	b        []byte
	released bool
}

func (p *pixels) Bytes() []byte { return p.b }

func (p *pixels) Release() error {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	if p.released {
		return errors.New("headless: pixels released twice")
	}
	p.released = true
	p.b = nil
	p.c.stats.Releases++
	return nil
}

func (w *Window) AllocPixels(width, height uint32) (native.Pixels, error) {
	c := w.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected(OpAlloc); err != nil {
		return nil, err
	}
	c.stats.Allocs++
	n := c.opts.Format.BytesPerPixel() * int(width) * int(height)
	return &pixels{c: c, b: make([]byte, n)}, nil
}

func (w *Window) BeginDraw() error {
	c := w.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if w.drawing {
		return errors.New("headless: begin draw while drawing")
	}
	if err := c.injected(OpBeginDraw); err != nil {
		return err
	}
	w.drawing = true
	c.stats.BeginDraws++
	return nil
}

func (w *Window) Present(p native.Pixels, width, height uint32) error {
	c := w.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if !w.drawing {
		return errors.New("headless: present outside of begin/end draw")
	}
	if err := c.injected(OpPresent); err != nil {
		return err
	}
	n := c.opts.Format.BytesPerPixel() * int(width) * int(height)
	b := p.Bytes()
	if len(b) < n {
		return fmt.Errorf("headless: present %dx%d from %d bytes", width, height, len(b))
	}
	w.frame = append(w.frame[:0], b[:n]...)
	w.frameW, w.frameH = width, height
	w.presents++
	c.stats.Presents++
	return nil
}

func (w *Window) EndDraw() {
	c := w.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if w.drawing {
		w.drawing = false
		c.stats.EndDraws++
	}
}

func (w *Window) SurfaceHandle() (any, error) {
	switch w.surface {
	case native.SurfaceGL, native.SurfaceGPU:
		return Handle{Window: w.id, Surface: w.surface}, nil
	}
	return nil, fmt.Errorf("headless: window %d has a %v surface", w.id, w.surface)
}
