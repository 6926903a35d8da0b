// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11driver

import (
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/go-logr/logr"
	"golang.org/x/xerrors"

	"github.com/swa-go/swa/driver/internal/pump"
	"github.com/swa-go/swa/native"
)

// Conn is a connection to an X server. It implements native.Conn and
// native.FrameNotifier.
type Conn struct {
	xc  *xgb.Conn
	xu  *xgbutil.XUtil
	xsi *xproto.ScreenInfo

	opts       Options
	log        logr.Logger
	ext        extensions
	atoms      atomTable
	argbVisual xproto.Visualid
	features   native.Features
	tr         translator

	events *pump.Pump[item]
	wake   chan struct{}
	clock  *frameClock

	// windows is only accessed by the dispatching goroutine.
	windows map[xproto.Window]*Window

	closeOnce sync.Once
}

var (
	_ native.Conn          = (*Conn)(nil)
	_ native.FrameNotifier = (*Conn)(nil)
)

// item is one entry of the event queue: an X event, an X error, a frame
// notification or the end of the stream.
type item struct {
	ev     xgb.Event
	xerr   xgb.Error
	frame  native.FrameEvent
	closed bool
}

// read forwards the protocol stream to the event queue until the connection
// closes.
func (c *Conn) read() {
	for {
		ev, xerr := c.xc.WaitForEvent()
		if ev == nil && xerr == nil {
			c.events.Send(item{closed: true})
			return
		}
		if !c.events.Send(item{ev: ev, xerr: xerr}) {
			return
		}
	}
}

func (c *Conn) sendFrame(ev native.FrameEvent) {
	c.events.Send(item{frame: ev})
}

func (c *Conn) Features() native.Features { return c.features }

func (c *Conn) PollEvent() (native.Event, error) {
	for {
		select {
		case it := <-c.events.Events():
			if ev, err := c.handle(it); ev != nil || err != nil {
				return ev, err
			}
		default:
			return nil, nil
		}
	}
}

func (c *Conn) WaitEvent() (native.Event, error) {
	for {
		select {
		case it := <-c.events.Events():
			if ev, err := c.handle(it); ev != nil || err != nil {
				return ev, err
			}
		case <-c.wake:
			return nil, nil
		}
	}
}

// handle turns a queue item into a native event. It returns nil, nil for
// protocol events the screen package has no use for.
func (c *Conn) handle(it item) (native.Event, error) {
	switch {
	case it.closed:
		return nil, xerrors.Errorf("x11driver: reading events: %w", native.ErrClosed)
	case it.xerr != nil:
		return native.ErrorEvent{Err: xerrors.Errorf("x11driver: %s", it.xerr.Error())}, nil
	case it.frame.Window != 0:
		return it.frame, nil
	}
	return c.track(c.tr.translate(it.ev)), nil
}

// track keeps the driver's window geometry in step with ev. Window events for
// windows this connection does not own, or has destroyed, are dropped.
func (c *Conn) track(ev native.Event) native.Event {
	if ev == nil || ev.WindowID() == 0 {
		return ev
	}
	w, ok := c.windows[xproto.Window(ev.WindowID())]
	if !ok {
		return nil
	}
	if r, ok := ev.(native.ResizeEvent); ok {
		w.width, w.height = r.Width, r.Height
	}
	return ev
}

func (c *Conn) Wakeup() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		if c.clock != nil {
			c.clock.stop()
		}
		c.xc.Close()
		c.events.Release()
	})
	return nil
}

func (c *Conn) RequestFrame(id native.WindowID) (native.FrameToken, error) {
	if c.clock == nil {
		return 0, xerrors.New("x11driver: frame notifications disabled")
	}
	return c.clock.request(id), nil
}

func (c *Conn) CancelFrame(tok native.FrameToken) {
	if c.clock != nil {
		c.clock.cancel(tok)
	}
}

// queryState reads the ICCCM and EWMH state properties of xw.
func (c *Conn) queryState(xw xproto.Window) native.State {
	iconic := false
	if s, err := icccm.WmStateGet(c.xu, xw); err == nil {
		iconic = s.State == icccm.StateIconic
	}
	names, err := ewmh.WmStateGet(c.xu, xw)
	if err != nil {
		names = nil
	}
	return computeState(iconic, names)
}

func (c *Conn) refreshKeymap() {
	keyMap, modMap := keybind.MapsGet(c.xu)
	keybind.KeyMapSet(c.xu, keyMap)
	keybind.ModMapSet(c.xu, modMap)
}
