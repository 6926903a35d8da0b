// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11driver

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/xerrors"
)

// atomTable holds the atoms the driver uses, interned once per connection.
type atomTable struct {
	wmProtocols    xproto.Atom
	wmDeleteWindow xproto.Atom
	wmState        xproto.Atom
	wmChangeState  xproto.Atom

	netWMState           xproto.Atom
	netWMStateFullscreen xproto.Atom
	netWMStateMaxVert    xproto.Atom
	netWMStateMaxHorz    xproto.Atom
	netWMStateHidden     xproto.Atom
	netWMName            xproto.Atom
	utf8String           xproto.Atom
	motifWMHints         xproto.Atom

	clipboard xproto.Atom
	targets   xproto.Atom
	text      xproto.Atom
	fileName  xproto.Atom

	mimeTextPlain     xproto.Atom
	mimeTextPlainUTF8 xproto.Atom
	mimeURIList       xproto.Atom
	mimeBinary        xproto.Atom

	xdndAware      xproto.Atom
	xdndEnter      xproto.Atom
	xdndPosition   xproto.Atom
	xdndStatus     xproto.Atom
	xdndTypeList   xproto.Atom
	xdndActionCopy xproto.Atom
	xdndActionMove xproto.Atom
	xdndActionAsk  xproto.Atom
	xdndActionLink xproto.Atom
	xdndDrop       xproto.Atom
	xdndLeave      xproto.Atom
	xdndFinished   xproto.Atom
	xdndSelection  xproto.Atom
	xdndProxy      xproto.Atom
}

// entries pairs every atom name with the field it is stored in.
func (t *atomTable) entries() []atomEntry {
	return []atomEntry{
		{"WM_PROTOCOLS", &t.wmProtocols},
		{"WM_DELETE_WINDOW", &t.wmDeleteWindow},
		{"WM_STATE", &t.wmState},
		{"WM_CHANGE_STATE", &t.wmChangeState},
		{"_NET_WM_STATE", &t.netWMState},
		{"_NET_WM_STATE_FULLSCREEN", &t.netWMStateFullscreen},
		{"_NET_WM_STATE_MAXIMIZED_VERT", &t.netWMStateMaxVert},
		{"_NET_WM_STATE_MAXIMIZED_HORZ", &t.netWMStateMaxHorz},
		{"_NET_WM_STATE_HIDDEN", &t.netWMStateHidden},
		{"_NET_WM_NAME", &t.netWMName},
		{"UTF8_STRING", &t.utf8String},
		{"_MOTIF_WM_HINTS", &t.motifWMHints},
		{"CLIPBOARD", &t.clipboard},
		{"TARGETS", &t.targets},
		{"TEXT", &t.text},
		{"FILE_NAME", &t.fileName},
		{"text/plain", &t.mimeTextPlain},
		{"text/plain;charset=utf-8", &t.mimeTextPlainUTF8},
		{"text/uri-list", &t.mimeURIList},
		{"application/octet-stream", &t.mimeBinary},
		{"XdndAware", &t.xdndAware},
		{"XdndEnter", &t.xdndEnter},
		{"XdndPosition", &t.xdndPosition},
		{"XdndStatus", &t.xdndStatus},
		{"XdndTypeList", &t.xdndTypeList},
		{"XdndActionCopy", &t.xdndActionCopy},
		{"XdndActionMove", &t.xdndActionMove},
		{"XdndActionAsk", &t.xdndActionAsk},
		{"XdndActionLink", &t.xdndActionLink},
		{"XdndDrop", &t.xdndDrop},
		{"XdndLeave", &t.xdndLeave},
		{"XdndFinished", &t.xdndFinished},
		{"XdndSelection", &t.xdndSelection},
		{"XdndProxy", &t.xdndProxy},
	}
}

type atomEntry struct {
	name string
	dst  *xproto.Atom
}

// intern resolves every atom of t. All requests are sent before the first
// reply is read, so the whole table costs a single round trip.
func (t *atomTable) intern(xc *xgb.Conn) error {
	es := t.entries()
	cookies := make([]xproto.InternAtomCookie, len(es))
	for i, e := range es {
		cookies[i] = xproto.InternAtom(xc, false, uint16(len(e.name)), e.name)
	}
	for i, e := range es {
		r, err := cookies[i].Reply()
		if err != nil {
			return xerrors.Errorf("x11driver: interning %s: %w", e.name, err)
		}
		if r == nil || r.Atom == xproto.AtomNone {
			return xerrors.Errorf("x11driver: interning %s: no atom", e.name)
		}
		*e.dst = r.Atom
	}
	return nil
}

// setProperty replaces a 32-bit atom list property of xw.
func setProperty(xc *xgb.Conn, xw xproto.Window, prop xproto.Atom, values ...xproto.Atom) {
	b := make([]byte, len(values)*4)
	for i, v := range values {
		b[4*i+0] = uint8(v >> 0)
		b[4*i+1] = uint8(v >> 8)
		b[4*i+2] = uint8(v >> 16)
		b[4*i+3] = uint8(v >> 24)
	}
	xproto.ChangeProperty(xc, xproto.PropModeReplace, xw, prop, xproto.AtomAtom, 32, uint32(len(values)), b)
}
