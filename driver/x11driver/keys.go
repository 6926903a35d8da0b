// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11driver

import (
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/mobile/event/key"
)

// keyModifiers converts an X modifier mask.
func keyModifiers(state uint16) (m key.Modifiers) {
	if state&xproto.ModMaskShift != 0 {
		m |= key.ModShift
	}
	if state&xproto.ModMaskControl != 0 {
		m |= key.ModControl
	}
	if state&xproto.ModMask1 != 0 {
		m |= key.ModAlt
	}
	if state&xproto.ModMask4 != 0 {
		m |= key.ModMeta
	}
	return m
}

type namedKey struct {
	r    rune
	code key.Code
}

// namedKeys maps keysym names, as returned by keybind.LookupString, that are
// not a single character.
var namedKeys = map[string]namedKey{
	"Return":       {-1, key.CodeReturnEnter},
	"KP_Enter":     {-1, key.CodeKeypadEnter},
	"Escape":       {-1, key.CodeEscape},
	"BackSpace":    {-1, key.CodeDeleteBackspace},
	"Tab":          {'\t', key.CodeTab},
	"space":        {' ', key.CodeSpacebar},
	"minus":        {'-', key.CodeHyphenMinus},
	"equal":        {'=', key.CodeEqualSign},
	"bracketleft":  {'[', key.CodeLeftSquareBracket},
	"bracketright": {']', key.CodeRightSquareBracket},
	"backslash":    {'\\', key.CodeBackslash},
	"semicolon":    {';', key.CodeSemicolon},
	"apostrophe":   {'\'', key.CodeApostrophe},
	"grave":        {'`', key.CodeGraveAccent},
	"comma":        {',', key.CodeComma},
	"period":       {'.', key.CodeFullStop},
	"slash":        {'/', key.CodeSlash},
	"Caps_Lock":    {-1, key.CodeCapsLock},
	"Pause":        {-1, key.CodePause},
	"Insert":       {-1, key.CodeInsert},
	"Home":         {-1, key.CodeHome},
	"Prior":        {-1, key.CodePageUp},
	"Delete":       {-1, key.CodeDeleteForward},
	"End":          {-1, key.CodeEnd},
	"Next":         {-1, key.CodePageDown},
	"Right":        {-1, key.CodeRightArrow},
	"Left":         {-1, key.CodeLeftArrow},
	"Down":         {-1, key.CodeDownArrow},
	"Up":           {-1, key.CodeUpArrow},
	"F1":           {-1, key.CodeF1},
	"F2":           {-1, key.CodeF2},
	"F3":           {-1, key.CodeF3},
	"F4":           {-1, key.CodeF4},
	"F5":           {-1, key.CodeF5},
	"F6":           {-1, key.CodeF6},
	"F7":           {-1, key.CodeF7},
	"F8":           {-1, key.CodeF8},
	"F9":           {-1, key.CodeF9},
	"F10":          {-1, key.CodeF10},
	"F11":          {-1, key.CodeF11},
	"F12":          {-1, key.CodeF12},
	"Shift_L":      {-1, key.CodeLeftShift},
	"Shift_R":      {-1, key.CodeRightShift},
	"Control_L":    {-1, key.CodeLeftControl},
	"Control_R":    {-1, key.CodeRightControl},
	"Alt_L":        {-1, key.CodeLeftAlt},
	"Alt_R":        {-1, key.CodeRightAlt},
	"Super_L":      {-1, key.CodeLeftGUI},
	"Super_R":      {-1, key.CodeRightGUI},
}

// keyEvent builds a key event from a keysym name.
func keyEvent(sym string, state uint16, dir key.Direction) key.Event {
	e := key.Event{
		Rune:      -1,
		Code:      key.CodeUnknown,
		Modifiers: keyModifiers(state),
		Direction: dir,
	}
	if k, ok := namedKeys[sym]; ok {
		e.Rune, e.Code = k.r, k.code
		return e
	}
	r, n := utf8.DecodeRuneInString(sym)
	if n == 0 || n != len(sym) || r == utf8.RuneError {
		return e
	}
	e.Rune = r
	switch {
	case 'a' <= r && r <= 'z':
		e.Code = key.CodeA + key.Code(r-'a')
	case 'A' <= r && r <= 'Z':
		e.Code = key.CodeA + key.Code(r-'A')
	case r == '0':
		e.Code = key.Code0
	case '1' <= r && r <= '9':
		e.Code = key.Code1 + key.Code(r-'1')
	}
	return e
}
