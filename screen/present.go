// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"errors"

	"github.com/swa-go/swa/native"
)

// bufferState tracks the software pixel buffer of a buffer-surface window.
// The backing memory is kept across frames and reallocated only when the
// window size changes.
type bufferState struct {
	target        native.BufferSurface
	pixels        native.Pixels
	width, height uint32
	active        bool
}

// presentState is the vsync deferral state of a window. At most one frame
// notification is outstanding per window.
type presentState struct {
	pending        bool
	redrawDeferred bool
	token          native.FrameToken
}

var errZeroSize = errors.New("window has zero size")

// Buffer acquires the window's pixel buffer for drawing. The returned Image
// is valid until ApplyBuffer is called; its Stride is the number of bytes
// per row and rows are laid out top to bottom.
//
// Only one buffer may be acquired at a time. On failure the surface is left
// idle and Buffer may be retried.
func (w *Window) Buffer() (Image, error) {
	if err := w.usable(); err != nil {
		return Image{}, err
	}
	b := &w.buf
	if b.target == nil {
		return Image{}, ErrWrongSurface
	}
	if b.active {
		return Image{}, ErrSurfaceAcquired
	}
	width, height := w.width, w.height
	if width == 0 || height == 0 {
		return Image{}, resourceErr("acquire buffer", errZeroSize)
	}
	if err := b.target.BeginDraw(); err != nil {
		return Image{}, resourceErr("begin draw", err)
	}
	if b.pixels == nil || b.width != width || b.height != height {
		if b.pixels != nil {
			if err := b.pixels.Release(); err != nil {
				w.d.log.Error(err, "releasing buffer", "window", w.id)
			}
			b.pixels = nil
		}
		p, err := b.target.AllocPixels(width, height)
		if err != nil {
			b.target.EndDraw()
			return Image{}, resourceErr("allocate buffer", err)
		}
		b.pixels, b.width, b.height = p, width, height
		w.d.metrics.reallocs.Add(w.d.ctx, 1)
		w.d.log.V(2).Info("buffer allocated", "window", w.id, "width", width, "height", height)
	}
	b.active = true
	format := b.target.Format()
	return Image{
		Pix:    b.pixels.Bytes(),
		Stride: format.BytesPerPixel() * int(width),
		Width:  width,
		Height: height,
		Format: format,
	}, nil
}

// ApplyBuffer presents the buffer acquired by Buffer and releases it. The
// surface returns to idle even if presenting fails.
func (w *Window) ApplyBuffer() error {
	if err := w.usable(); err != nil {
		return err
	}
	b := &w.buf
	if b.target == nil {
		return ErrWrongSurface
	}
	if !b.active {
		return ErrNoActiveSurface
	}
	err := b.target.Present(b.pixels, b.width, b.height)
	b.target.EndDraw()
	b.active = false
	if err != nil {
		return resourceErr("present buffer", err)
	}
	w.d.metrics.presents.Add(w.d.ctx, 1)
	return nil
}

// Refresh requests a redraw. If the window supports vsync, the Draw callback
// runs on the next frame notification, and repeated requests before it
// collapse into one. Otherwise Draw runs immediately.
func (w *Window) Refresh() error {
	if err := w.usable(); err != nil {
		return err
	}
	if w.d.frames == nil || !w.caps.Has(CapVsync) {
		w.draw()
		return nil
	}
	if w.present.pending {
		w.present.redrawDeferred = true
		return nil
	}
	return w.requestFrame()
}

func (w *Window) requestFrame() error {
	tok, err := w.d.frames.RequestFrame(w.id)
	if err != nil {
		return resourceErr("request frame", err)
	}
	w.present.pending = true
	w.present.token = tok
	w.d.metrics.frameRequests.Add(w.d.ctx, 1)
	return nil
}

// frameDone handles a frame notification. Stale tokens are ignored.
func (w *Window) frameDone(tok native.FrameToken) {
	p := &w.present
	if !p.pending || p.token != tok {
		w.d.log.V(2).Info("ignoring stale frame notification", "window", w.id, "token", tok)
		return
	}
	p.pending = false
	p.token = 0
	w.d.metrics.frames.Add(w.d.ctx, 1)
	if p.redrawDeferred {
		p.redrawDeferred = false
		if err := w.requestFrame(); err != nil {
			w.d.log.Error(err, "requesting deferred frame", "window", w.id)
		}
	}
	w.draw()
}
