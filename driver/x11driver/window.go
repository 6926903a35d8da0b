// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11driver

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"golang.org/x/xerrors"

	"github.com/swa-go/swa/native"
)

const defaultWidth, defaultHeight = 800, 500

// Window is an X11 top-level window.
type Window struct {
	c     *Conn
	xw    xproto.Window
	xg    xproto.Gcontext
	cmap  xproto.Colormap
	depth byte

	width, height uint32
	hints         icccm.NormalHints
	drawing       bool
}

var (
	_ native.Window        = (*Window)(nil)
	_ native.BufferSurface = (*Window)(nil)
)

const eventMask = xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange |
	xproto.EventMaskPropertyChange

func (c *Conn) CreateWindow(cfg native.WindowConfig) (_ native.Window, retErr error) {
	if cfg.Surface == native.SurfaceGL || cfg.Surface == native.SurfaceGPU {
		return nil, xerrors.Errorf("x11driver: %v surfaces are not supported", cfg.Surface)
	}
	width, height := cfg.Width, cfg.Height
	if width == native.DefaultSize {
		width = defaultWidth
	}
	if height == native.DefaultSize {
		height = defaultHeight
	}
	// X rejects empty windows.
	width, height = max(width, 1), max(height, 1)

	xw, err := xproto.NewWindowId(c.xc)
	if err != nil {
		return nil, xerrors.Errorf("x11driver: xproto.NewWindowId: %w", err)
	}
	xg, err := xproto.NewGcontextId(c.xc)
	if err != nil {
		return nil, xerrors.Errorf("x11driver: xproto.NewGcontextId: %w", err)
	}
	w := &Window{
		c:      c,
		xw:     xw,
		xg:     xg,
		depth:  c.xsi.RootDepth,
		width:  width,
		height: height,
	}

	visual := c.xsi.RootVisual
	mask := uint32(xproto.CwEventMask)
	values := []uint32{eventMask}
	if cfg.Transparent && c.argbVisual != 0 {
		cmap, err := xproto.NewColormapId(c.xc)
		if err != nil {
			return nil, xerrors.Errorf("x11driver: xproto.NewColormapId: %w", err)
		}
		if err := xproto.CreateColormapChecked(c.xc, xproto.ColormapAllocNone, cmap, c.xsi.Root, c.argbVisual).Check(); err != nil {
			return nil, xerrors.Errorf("x11driver: xproto.CreateColormap: %w", err)
		}
		w.cmap, w.depth, visual = cmap, 32, c.argbVisual
		// A depth differing from the parent requires explicit border and
		// background pixels and a colormap.
		mask = xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask | xproto.CwColormap
		values = []uint32{0, 0, eventMask, uint32(cmap)}
	}
	defer func() {
		if retErr != nil && w.cmap != 0 {
			xproto.FreeColormap(c.xc, w.cmap)
		}
	}()

	err = xproto.CreateWindowChecked(c.xc, w.depth, xw, c.xsi.Root,
		0, 0, uint16(width), uint16(height), 0,
		xproto.WindowClassInputOutput, visual, mask, values).Check()
	if err != nil {
		return nil, xerrors.Errorf("x11driver: xproto.CreateWindow: %w", err)
	}
	setProperty(c.xc, xw, c.atoms.wmProtocols, c.atoms.wmDeleteWindow)
	if err := w.SetTitle(cfg.Title); err != nil {
		xproto.DestroyWindow(c.xc, xw)
		return nil, err
	}
	xproto.CreateGC(c.xc, xg, xproto.Drawable(xw), 0, nil)
	if err := xproto.MapWindowChecked(c.xc, xw).Check(); err != nil {
		xproto.FreeGC(c.xc, xg)
		xproto.DestroyWindow(c.xc, xw)
		return nil, xerrors.Errorf("x11driver: xproto.MapWindow: %w", err)
	}
	c.windows[xw] = w
	return w, nil
}

func (w *Window) ID() native.WindowID { return wid(w.xw) }

func (w *Window) Size() (width, height uint32) { return w.width, w.height }

func (w *Window) SetTitle(title string) error {
	if err := ewmh.WmNameSet(w.c.xu, w.xw, title); err != nil {
		return xerrors.Errorf("x11driver: setting _NET_WM_NAME: %w", err)
	}
	if err := icccm.WmNameSet(w.c.xu, w.xw, title); err != nil {
		return xerrors.Errorf("x11driver: setting WM_NAME: %w", err)
	}
	return nil
}

func (w *Window) SetSize(width, height uint32) error {
	err := xproto.ConfigureWindowChecked(w.c.xc, w.xw,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{max(width, 1), max(height, 1)}).Check()
	if err != nil {
		return xerrors.Errorf("x11driver: xproto.ConfigureWindow: %w", err)
	}
	return nil
}

func (w *Window) SetMinSize(width, height uint32) error {
	w.hints.Flags |= icccm.SizeHintPMinSize
	w.hints.MinWidth, w.hints.MinHeight = uint(width), uint(height)
	return w.setHints()
}

func (w *Window) SetMaxSize(width, height uint32) error {
	w.hints.Flags |= icccm.SizeHintPMaxSize
	w.hints.MaxWidth, w.hints.MaxHeight = uint(width), uint(height)
	return w.setHints()
}

func (w *Window) setHints() error {
	if err := icccm.WmNormalHintsSet(w.c.xu, w.xw, &w.hints); err != nil {
		return xerrors.Errorf("x11driver: setting WM_NORMAL_HINTS: %w", err)
	}
	return nil
}

// SetState asks the window manager for a state change, following EWMH for
// maximized and fullscreen windows and ICCCM for iconification.
func (w *Window) SetState(s native.State) error {
	xu := w.c.xu
	var err error
	switch s {
	case native.StateMinimized:
		err = ewmh.ClientEvent(xu, w.xw, "WM_CHANGE_STATE", icccm.StateIconic)
	case native.StateMaximized:
		if err = ewmh.WmStateReq(xu, w.xw, ewmh.StateRemove, "_NET_WM_STATE_FULLSCREEN"); err == nil {
			err = ewmh.WmStateReqExtra(xu, w.xw, ewmh.StateAdd,
				"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ", 1)
		}
	case native.StateFullscreen:
		err = ewmh.WmStateReq(xu, w.xw, ewmh.StateAdd, "_NET_WM_STATE_FULLSCREEN")
	case native.StateNormal:
		if err = ewmh.WmStateReq(xu, w.xw, ewmh.StateRemove, "_NET_WM_STATE_FULLSCREEN"); err == nil {
			err = ewmh.WmStateReqExtra(xu, w.xw, ewmh.StateRemove,
				"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ", 1)
		}
		if err == nil {
			// Deiconify.
			xproto.MapWindow(w.c.xc, w.xw)
		}
	default:
		return xerrors.Errorf("x11driver: unknown window state %v", s)
	}
	if err != nil {
		return xerrors.Errorf("x11driver: requesting %v state: %w", s, err)
	}
	return nil
}

func (w *Window) Show(show bool) error {
	var err error
	if show {
		err = xproto.MapWindowChecked(w.c.xc, w.xw).Check()
	} else {
		err = xproto.UnmapWindowChecked(w.c.xc, w.xw).Check()
	}
	if err != nil {
		return xerrors.Errorf("x11driver: mapping window: %w", err)
	}
	return nil
}

func (w *Window) Destroy() error {
	c := w.c
	delete(c.windows, w.xw)
	xproto.FreeGC(c.xc, w.xg)
	err := xproto.DestroyWindowChecked(c.xc, w.xw).Check()
	if w.cmap != 0 {
		xproto.FreeColormap(c.xc, w.cmap)
	}
	if err != nil {
		return xerrors.Errorf("x11driver: xproto.DestroyWindow: %w", err)
	}
	return nil
}
