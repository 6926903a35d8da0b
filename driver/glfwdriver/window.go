// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build glfw

package glfwdriver

import (
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/xerrors"

	"github.com/swa-go/swa/native"
)

const defaultWidth, defaultHeight = 800, 500

// Window is a GLFW window with a GL context or no client API.
type Window struct {
	c       *Conn
	gw      *glfw.Window
	id      native.WindowID
	surface native.SurfaceType

	minW, minH, maxW, maxH int
	// windowed geometry, restored when leaving fullscreen
	x, y, w, h int

	destroyed bool
}

var (
	_ native.Window         = (*Window)(nil)
	_ native.SurfaceHandler = (*Window)(nil)
)

func (c *Conn) CreateWindow(cfg native.WindowConfig) (native.Window, error) {
	width, height := int(cfg.Width), int(cfg.Height)
	if cfg.Width == native.DefaultSize {
		width = defaultWidth
	}
	if cfg.Height == native.DefaultSize {
		height = defaultHeight
	}
	width, height = max(width, 1), max(height, 1)

	glfw.DefaultWindowHints()
	switch cfg.Surface {
	case native.SurfaceGL:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	case native.SurfaceGPU:
		// WebGPU provides its own graphics API.
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	default:
		return nil, xerrors.Errorf("glfwdriver: %v surfaces are not supported", cfg.Surface)
	}
	if cfg.Transparent {
		glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)
	}

	var gw *glfw.Window
	var cerr error
	err := protect(func() {
		gw, cerr = glfw.CreateWindow(width, height, cfg.Title, nil, nil)
	})
	if err == nil {
		err = cerr
	}
	if err != nil {
		return nil, xerrors.Errorf("glfwdriver: creating window: %w", err)
	}
	c.nextID++
	w := &Window{
		c:       c,
		gw:      gw,
		id:      c.nextID,
		surface: cfg.Surface,
		minW:    glfw.DontCare,
		minH:    glfw.DontCare,
		maxW:    glfw.DontCare,
		maxH:    glfw.DontCare,
	}
	w.setCallbacks()
	c.windows[w.id] = w
	return w, nil
}

func (w *Window) setCallbacks() {
	c, id := w.c, w.id
	w.gw.SetRefreshCallback(func(*glfw.Window) {
		c.push(native.DrawEvent{Window: id})
	})
	// Framebuffer sizes are in pixels, which is what surfaces are configured
	// with on high-DPI displays.
	w.gw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		c.push(native.ResizeEvent{Window: id, Width: uint32(width), Height: uint32(height)})
	})
	w.gw.SetCloseCallback(func(gw *glfw.Window) {
		// Closing is up to the listener.
		gw.SetShouldClose(false)
		c.push(native.CloseEvent{Window: id})
	})
	w.gw.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		c.push(native.FocusEvent{Window: id, Focused: focused})
	})
	w.gw.SetIconifyCallback(func(*glfw.Window, bool) {
		c.push(native.StateEvent{Window: id, State: w.state()})
	})
	w.gw.SetMaximizeCallback(func(*glfw.Window, bool) {
		c.push(native.StateEvent{Window: id, State: w.state()})
	})
	w.gw.SetKeyCallback(func(_ *glfw.Window, k glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		c.push(native.KeyEvent{Window: id, Event: keyEvent(k, action, mods)})
	})
	w.gw.SetCharCallback(func(_ *glfw.Window, r rune) {
		c.push(native.KeyEvent{Window: id, Event: key.Event{Rune: r, Code: key.CodeUnknown}})
	})
	w.gw.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		c.push(native.MouseEvent{Window: id, Event: mouse.Event{X: float32(x), Y: float32(y)}})
	})
	w.gw.SetMouseButtonCallback(func(gw *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := gw.GetCursorPos()
		c.push(native.MouseEvent{Window: id, Event: mouseButtonEvent(float32(x), float32(y), b, action, mods)})
	})
	w.gw.SetScrollCallback(func(gw *glfw.Window, xoff, yoff float64) {
		x, y := gw.GetCursorPos()
		for _, b := range wheelButtons(xoff, yoff) {
			c.push(native.MouseEvent{Window: id, Event: mouse.Event{
				X: float32(x), Y: float32(y), Button: b, Direction: mouse.DirStep,
			}})
		}
	})
}

func (w *Window) state() native.State {
	switch {
	case w.gw.GetMonitor() != nil:
		return native.StateFullscreen
	case w.gw.GetAttrib(glfw.Iconified) == glfw.True:
		return native.StateMinimized
	case w.gw.GetAttrib(glfw.Maximized) == glfw.True:
		return native.StateMaximized
	}
	return native.StateNormal
}

func (w *Window) ID() native.WindowID { return w.id }

func (w *Window) Size() (width, height uint32) {
	fw, fh := w.gw.GetFramebufferSize()
	return uint32(fw), uint32(fh)
}

func (w *Window) SetTitle(title string) error {
	return protect(func() { w.gw.SetTitle(title) })
}

func (w *Window) SetSize(width, height uint32) error {
	return protect(func() { w.gw.SetSize(int(max(width, 1)), int(max(height, 1))) })
}

func (w *Window) SetMinSize(width, height uint32) error {
	w.minW, w.minH = int(width), int(height)
	return protect(func() { w.gw.SetSizeLimits(w.minW, w.minH, w.maxW, w.maxH) })
}

func (w *Window) SetMaxSize(width, height uint32) error {
	w.maxW, w.maxH = int(width), int(height)
	return protect(func() { w.gw.SetSizeLimits(w.minW, w.minH, w.maxW, w.maxH) })
}

func (w *Window) SetState(s native.State) error {
	return protect(func() {
		fullscreen := w.gw.GetMonitor() != nil
		switch s {
		case native.StateMinimized:
			w.gw.Iconify()
		case native.StateMaximized:
			if fullscreen {
				w.leaveFullscreen()
			}
			w.gw.Maximize()
		case native.StateFullscreen:
			if fullscreen {
				return
			}
			m := glfw.GetPrimaryMonitor()
			if m == nil {
				panic(&glfw.Error{Code: glfw.APIUnavailable, Desc: "no monitor"})
			}
			w.x, w.y = w.gw.GetPos()
			w.w, w.h = w.gw.GetSize()
			mode := m.GetVideoMode()
			w.gw.SetMonitor(m, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		case native.StateNormal:
			if fullscreen {
				w.leaveFullscreen()
			}
			w.gw.Restore()
		}
		// Entering and leaving fullscreen has no GLFW callback.
		if s == native.StateFullscreen || fullscreen {
			w.c.push(native.StateEvent{Window: w.id, State: w.state()})
		}
	})
}

func (w *Window) leaveFullscreen() {
	w.gw.SetMonitor(nil, w.x, w.y, max(w.w, 1), max(w.h, 1), 0)
}

func (w *Window) Show(show bool) error {
	return protect(func() {
		if show {
			w.gw.Show()
		} else {
			w.gw.Hide()
		}
	})
}

// SurfaceHandle returns the *glfw.Window of a GL window, or the
// *wgpu.SurfaceDescriptor of a GPU window.
func (w *Window) SurfaceHandle() (any, error) {
	if w.destroyed {
		return nil, xerrors.New("glfwdriver: window destroyed")
	}
	switch w.surface {
	case native.SurfaceGL:
		return w.gw, nil
	case native.SurfaceGPU:
		return wgpuglfw.GetSurfaceDescriptor(w.gw), nil
	}
	return nil, xerrors.Errorf("glfwdriver: no handle for %v surface", w.surface)
}

func (w *Window) Destroy() error {
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	delete(w.c.windows, w.id)
	return protect(w.gw.Destroy)
}
