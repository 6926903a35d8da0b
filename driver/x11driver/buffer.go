// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11driver

import (
	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/xerrors"

	"github.com/swa-go/swa/native"
)

const (
	xPutImageReqSizeMax   = (1 << 16) * 4
	xPutImageReqSizeFixed = 28
	xPutImageReqDataSize  = xPutImageReqSizeMax - xPutImageReqSizeFixed
)

// ZPixmap images of depth 24 and 32 are stored as B, G, R, X on the
// little-endian servers the driver targets.
func (w *Window) Format() native.PixelFormat { return native.FormatBGRA8 }

// AllocPixels allocates a shared memory segment attached to the server, or
// plain memory uploaded with PutImage if that is not possible.
func (w *Window) AllocPixels(width, height uint32) (native.Pixels, error) {
	size := int(width) * int(height) * 4
	if size <= 0 {
		return nil, xerrors.Errorf("x11driver: invalid buffer size %dx%d", width, height)
	}
	c := w.c
	if c.ext.shm {
		p, err := newShmPixels(c, size)
		if err == nil {
			return p, nil
		}
		// Remote servers report MIT-SHM but cannot attach local segments.
		c.log.V(1).Info("shared memory buffer unavailable, using PutImage", "err", err.Error())
		c.ext.shm = false
	}
	return &heapPixels{buf: make([]byte, size)}, nil
}

func (w *Window) BeginDraw() error {
	if w.drawing {
		return xerrors.New("x11driver: BeginDraw called twice")
	}
	w.drawing = true
	return nil
}

func (w *Window) EndDraw() { w.drawing = false }

func (w *Window) Present(p native.Pixels, width, height uint32) error {
	if !w.drawing {
		return xerrors.New("x11driver: Present called outside BeginDraw")
	}
	xd := xproto.Drawable(w.xw)
	switch p := p.(type) {
	case *shmPixels:
		err := shm.PutImageChecked(w.c.xc, xd, w.xg,
			uint16(width), uint16(height), 0, 0, uint16(width), uint16(height), 0, 0,
			w.depth, xproto.ImageFormatZPixmap, 0, p.seg, 0).Check()
		if err != nil {
			return xerrors.Errorf("x11driver: shm.PutImage: %w", err)
		}
		return nil
	case *heapPixels:
		return w.putImage(xd, p.buf, int(width), int(height))
	}
	return xerrors.Errorf("x11driver: foreign pixels %T", p)
}

// putImage uploads buf in as few PutImage requests as the request size limit
// allows.
func (w *Window) putImage(xd xproto.Drawable, buf []byte, width, height int) error {
	rows := rowsPerRequest(width)
	for y := 0; y < height; y += rows {
		n := min(rows, height-y)
		data := buf[y*width*4 : (y+n)*width*4]
		err := xproto.PutImageChecked(
			w.c.xc, xproto.ImageFormatZPixmap, xd, w.xg,
			uint16(width), uint16(n),
			0, int16(y),
			0, w.depth, data).Check()
		if err != nil {
			return xerrors.Errorf("x11driver: xproto.PutImage: %w", err)
		}
	}
	return nil
}

// rowsPerRequest returns how many rows of a 32-bit image fit in one
// PutImage request.
func rowsPerRequest(width int) int {
	return max(xPutImageReqDataSize/(width*4), 1)
}

type heapPixels struct {
	buf      []byte
	released bool
}

func (p *heapPixels) Bytes() []byte { return p.buf }

func (p *heapPixels) Release() error {
	if p.released {
		return xerrors.New("x11driver: pixels released twice")
	}
	p.released, p.buf = true, nil
	return nil
}

// shmPixels is a System V shared memory segment attached to the server.
type shmPixels struct {
	c        *Conn
	seg      shm.Seg
	buf      []byte
	released bool
}

func (p *shmPixels) Bytes() []byte { return p.buf }

func (p *shmPixels) Release() error {
	if p.released {
		return xerrors.New("x11driver: pixels released twice")
	}
	p.released = true
	derr := shm.DetachChecked(p.c.xc, p.seg).Check()
	err := shmClose(p.buf)
	p.buf = nil
	if derr != nil {
		return xerrors.Errorf("x11driver: shm.Detach: %w", derr)
	}
	return err
}

func newShmPixels(c *Conn, size int) (*shmPixels, error) {
	shmid, buf, err := shmOpen(size)
	if err != nil {
		return nil, err
	}
	seg, err := shm.NewSegId(c.xc)
	if err != nil {
		shmClose(buf)
		return nil, xerrors.Errorf("x11driver: shm.NewSegId: %w", err)
	}
	if err := shm.AttachChecked(c.xc, seg, uint32(shmid), false).Check(); err != nil {
		shmClose(buf)
		return nil, xerrors.Errorf("x11driver: shm.Attach: %w", err)
	}
	return &shmPixels{c: c, seg: seg, buf: buf}, nil
}
