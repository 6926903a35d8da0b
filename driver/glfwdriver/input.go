// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build glfw

package glfwdriver

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// keyEvent translates a GLFW key callback. Text arrives separately through
// the char callback, so the rune is always -1.
func keyEvent(k glfw.Key, action glfw.Action, mods glfw.ModifierKey) key.Event {
	e := key.Event{
		Rune:      -1,
		Code:      keyCode(k),
		Modifiers: modifiers(mods),
	}
	switch action {
	case glfw.Press:
		e.Direction = key.DirPress
	case glfw.Release:
		e.Direction = key.DirRelease
	}
	return e
}

func keyCode(k glfw.Key) key.Code {
	switch {
	case glfw.KeyA <= k && k <= glfw.KeyZ:
		return key.CodeA + key.Code(k-glfw.KeyA)
	case k == glfw.Key0:
		return key.Code0
	case glfw.Key1 <= k && k <= glfw.Key9:
		return key.Code1 + key.Code(k-glfw.Key1)
	case glfw.KeyF1 <= k && k <= glfw.KeyF12:
		return key.CodeF1 + key.Code(k-glfw.KeyF1)
	case glfw.KeyKP1 <= k && k <= glfw.KeyKP9:
		return key.CodeKeypad1 + key.Code(k-glfw.KeyKP1)
	}
	if c, ok := keyCodes[k]; ok {
		return c
	}
	return key.CodeUnknown
}

var keyCodes = map[glfw.Key]key.Code{
	glfw.KeySpace:        key.CodeSpacebar,
	glfw.KeyApostrophe:   key.CodeApostrophe,
	glfw.KeyComma:        key.CodeComma,
	glfw.KeyMinus:        key.CodeHyphenMinus,
	glfw.KeyPeriod:       key.CodeFullStop,
	glfw.KeySlash:        key.CodeSlash,
	glfw.KeySemicolon:    key.CodeSemicolon,
	glfw.KeyEqual:        key.CodeEqualSign,
	glfw.KeyLeftBracket:  key.CodeLeftSquareBracket,
	glfw.KeyBackslash:    key.CodeBackslash,
	glfw.KeyRightBracket: key.CodeRightSquareBracket,
	glfw.KeyGraveAccent:  key.CodeGraveAccent,
	glfw.KeyEscape:       key.CodeEscape,
	glfw.KeyEnter:        key.CodeReturnEnter,
	glfw.KeyTab:          key.CodeTab,
	glfw.KeyBackspace:    key.CodeDeleteBackspace,
	glfw.KeyInsert:       key.CodeInsert,
	glfw.KeyDelete:       key.CodeDeleteForward,
	glfw.KeyRight:        key.CodeRightArrow,
	glfw.KeyLeft:         key.CodeLeftArrow,
	glfw.KeyDown:         key.CodeDownArrow,
	glfw.KeyUp:           key.CodeUpArrow,
	glfw.KeyPageUp:       key.CodePageUp,
	glfw.KeyPageDown:     key.CodePageDown,
	glfw.KeyHome:         key.CodeHome,
	glfw.KeyEnd:          key.CodeEnd,
	glfw.KeyCapsLock:     key.CodeCapsLock,
	glfw.KeyPause:        key.CodePause,
	glfw.KeyKP0:          key.CodeKeypad0,
	glfw.KeyKPDecimal:    key.CodeKeypadFullStop,
	glfw.KeyKPDivide:     key.CodeKeypadSlash,
	glfw.KeyKPMultiply:   key.CodeKeypadAsterisk,
	glfw.KeyKPSubtract:   key.CodeKeypadHyphenMinus,
	glfw.KeyKPAdd:        key.CodeKeypadPlusSign,
	glfw.KeyKPEnter:      key.CodeKeypadEnter,
	glfw.KeyKPEqual:      key.CodeKeypadEqualSign,
	glfw.KeyLeftShift:    key.CodeLeftShift,
	glfw.KeyLeftControl:  key.CodeLeftControl,
	glfw.KeyLeftAlt:      key.CodeLeftAlt,
	glfw.KeyLeftSuper:    key.CodeLeftGUI,
	glfw.KeyRightShift:   key.CodeRightShift,
	glfw.KeyRightControl: key.CodeRightControl,
	glfw.KeyRightAlt:     key.CodeRightAlt,
	glfw.KeyRightSuper:   key.CodeRightGUI,
}

func modifiers(mods glfw.ModifierKey) (m key.Modifiers) {
	if mods&glfw.ModShift != 0 {
		m |= key.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= key.ModControl
	}
	if mods&glfw.ModAlt != 0 {
		m |= key.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= key.ModMeta
	}
	return m
}

func mouseButtonEvent(x, y float32, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) mouse.Event {
	e := mouse.Event{X: x, Y: y, Modifiers: modifiers(mods)}
	switch b {
	case glfw.MouseButtonLeft:
		e.Button = mouse.ButtonLeft
	case glfw.MouseButtonMiddle:
		e.Button = mouse.ButtonMiddle
	case glfw.MouseButtonRight:
		e.Button = mouse.ButtonRight
	}
	switch action {
	case glfw.Press:
		e.Direction = mouse.DirPress
	case glfw.Release:
		e.Direction = mouse.DirRelease
	}
	return e
}

// wheelButtons returns one wheel step per scrolled axis.
func wheelButtons(xoff, yoff float64) []mouse.Button {
	var bs []mouse.Button
	switch {
	case yoff > 0:
		bs = append(bs, mouse.ButtonWheelUp)
	case yoff < 0:
		bs = append(bs, mouse.ButtonWheelDown)
	}
	switch {
	case xoff > 0:
		bs = append(bs, mouse.ButtonWheelRight)
	case xoff < 0:
		bs = append(bs, mouse.ButtonWheelLeft)
	}
	return bs
}
