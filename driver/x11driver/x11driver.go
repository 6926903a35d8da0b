// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x11driver provides a native connection to an X11 display server.
//
// The protocol stream is read on a separate goroutine and handed to the
// dispatching goroutine through an unbounded queue. Buffer surfaces use
// MIT-SHM segments when the server supports them and fall back to chunked
// PutImage requests otherwise. Frame notifications come from a clock that
// ticks at the refresh rate of the first active RandR output.
package x11driver

import (
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/go-logr/logr"
	"golang.org/x/xerrors"

	"github.com/swa-go/swa/driver/internal/pump"
	"github.com/swa-go/swa/native"
)

// Options configure Open. The zero value is valid.
type Options struct {
	// Display names the X server, as in $DISPLAY. Empty means $DISPLAY.
	Display string

	// DisableSHM forces the PutImage upload path even if the server
	// supports MIT-SHM.
	DisableSHM bool

	// DisableVsync turns off frame notifications.
	DisableVsync bool

	// RefreshRate overrides the frame clock rate, in Hz. Zero queries RandR
	// and falls back to 60.
	RefreshRate float64

	// Logger receives driver diagnostics. It defaults to logr.Discard().
	Logger logr.Logger
}

const defaultRefreshRate = 60

// extensions records which X extensions the server offers and the driver
// initialized.
type extensions struct {
	shm     bool
	present bool
	xinput  bool
	randr   bool
}

// Open connects to the X server.
func Open(opts Options) (_ *Conn, retErr error) {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	xc, err := xgb.NewConnDisplay(opts.Display)
	if err != nil {
		return nil, xerrors.Errorf("x11driver: connecting to %q: %w", opts.Display, err)
	}
	defer func() {
		if retErr != nil {
			xc.Close()
		}
	}()
	xu, err := xgbutil.NewConnXgb(xc)
	if err != nil {
		return nil, xerrors.Errorf("x11driver: xgbutil.NewConnXgb: %w", err)
	}

	c := &Conn{
		xc:      xc,
		xu:      xu,
		xsi:     xproto.Setup(xc).DefaultScreen(xc),
		opts:    opts,
		log:     log,
		wake:    make(chan struct{}, 1),
		windows: map[xproto.Window]*Window{},
	}
	c.ext = queryExtensions(xc)
	if c.ext.shm && !opts.DisableSHM {
		if err := shm.Init(xc); err != nil {
			log.V(1).Info("MIT-SHM unavailable, using PutImage", "err", err.Error())
			c.ext.shm = false
		}
	} else {
		c.ext.shm = false
	}
	if c.ext.randr {
		if err := randr.Init(xc); err != nil {
			log.V(1).Info("RANDR unavailable", "err", err.Error())
			c.ext.randr = false
		}
	}
	if err := c.atoms.intern(xc); err != nil {
		return nil, err
	}
	c.argbVisual = findARGBVisual(c.xsi)
	c.refreshKeymap()

	c.features = native.Features{
		SharedMemory: c.ext.shm,
		FrameNotify:  !opts.DisableVsync,
		ARGBVisual:   c.argbVisual != 0,
		Buffer:       true,
		Keyboard:     true,
		Mouse:        true,
		Resize:       true,
		SizeLimits:   true,
		Title:        true,
		Visibility:   true,
		Minimize:     true,
		Maximize:     true,
		Fullscreen:   true,
	}
	c.tr = translator{
		atoms:  &c.atoms,
		lookup: func(state uint16, code xproto.Keycode) string { return keybind.LookupString(xu, state, code) },
		state:  c.queryState,
		remap:  c.refreshKeymap,
	}

	c.events = pump.Make[item]()
	if c.features.FrameNotify {
		rate := opts.RefreshRate
		if rate <= 0 {
			rate = c.refreshRate()
		}
		c.clock = newFrameClock(time.Duration(float64(time.Second)/rate), c.sendFrame)
	}
	go c.read()

	log.V(1).Info("connected to X server",
		"display", opts.Display,
		"shm", c.ext.shm,
		"present", c.ext.present,
		"xinput", c.ext.xinput,
		"randr", c.ext.randr,
		"argb", c.argbVisual != 0)
	return c, nil
}

// queryExtensions asks the server for every extension in one round trip.
func queryExtensions(xc *xgb.Conn) extensions {
	names := []string{"MIT-SHM", "Present", "XInputExtension", "RANDR"}
	cookies := make([]xproto.QueryExtensionCookie, len(names))
	for i, n := range names {
		cookies[i] = xproto.QueryExtension(xc, uint16(len(n)), n)
	}
	present := make([]bool, len(names))
	for i := range names {
		r, err := cookies[i].Reply()
		present[i] = err == nil && r != nil && r.Present
	}
	return extensions{
		shm:     present[0],
		present: present[1],
		xinput:  present[2],
		randr:   present[3],
	}
}

// findARGBVisual returns a 32-bit TrueColor visual, or 0.
func findARGBVisual(xsi *xproto.ScreenInfo) xproto.Visualid {
	for _, d := range xsi.AllowedDepths {
		if d.Depth != 32 {
			continue
		}
		for _, v := range d.Visuals {
			if v.Class == xproto.VisualClassTrueColor {
				return v.VisualId
			}
		}
	}
	return 0
}

// refreshRate returns the rate of the first active CRTC.
func (c *Conn) refreshRate() float64 {
	if !c.ext.randr {
		return defaultRefreshRate
	}
	res, err := randr.GetScreenResourcesCurrent(c.xc, c.xsi.Root).Reply()
	if err != nil {
		c.log.V(1).Info("querying screen resources", "err", err.Error())
		return defaultRefreshRate
	}
	for _, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(c.xc, crtc, res.ConfigTimestamp).Reply()
		if err != nil || info.Mode == 0 {
			continue
		}
		for _, m := range res.Modes {
			if randr.Mode(m.Id) != info.Mode {
				continue
			}
			if hz := modeRate(m); hz > 0 {
				return hz
			}
		}
	}
	return defaultRefreshRate
}

// modeRate computes the vertical refresh rate of a mode line, or 0 if the
// mode does not describe one.
func modeRate(m randr.ModeInfo) float64 {
	if m.Htotal == 0 || m.Vtotal == 0 {
		return 0
	}
	return float64(m.DotClock) / (float64(m.Htotal) * float64(m.Vtotal))
}
