// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build glfw

package glfwdriver

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-logr/logr"
	"golang.org/x/xerrors"

	"github.com/swa-go/swa/native"
)

// Options configure Open. The zero value is valid.
type Options struct {
	// Logger receives driver diagnostics. It defaults to logr.Discard().
	Logger logr.Logger
}

// Conn is the GLFW library, initialized once per process. It implements
// native.Conn.
type Conn struct {
	log      logr.Logger
	features native.Features

	// queue holds events produced by GLFW callbacks while polling.
	queue   []native.Event
	windows map[native.WindowID]*Window
	nextID  native.WindowID
	closed  bool
}

var _ native.Conn = (*Conn)(nil)

// Open initializes GLFW. The calling goroutine is locked to its thread until
// Close.
func Open(opts Options) (*Conn, error) {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, xerrors.Errorf("glfwdriver: glfw.Init: %w", err)
	}
	c := &Conn{
		log:     log,
		windows: map[native.WindowID]*Window{},
		features: native.Features{
			ARGBVisual: true,
			GL:         true,
			GPUSurface: true,
			Keyboard:   true,
			Mouse:      true,
			Resize:     true,
			SizeLimits: true,
			Title:      true,
			Visibility: true,
			Minimize:   true,
			Maximize:   true,
			Fullscreen: true,
		},
	}
	log.V(1).Info("GLFW initialized", "version", glfw.GetVersionString())
	return c, nil
}

func (c *Conn) Features() native.Features { return c.features }

func (c *Conn) PollEvent() (native.Event, error) {
	if len(c.queue) == 0 {
		if err := protect(glfw.PollEvents); err != nil {
			return nil, err
		}
	}
	return c.pop(), nil
}

func (c *Conn) WaitEvent() (native.Event, error) {
	if len(c.queue) == 0 {
		if err := protect(glfw.WaitEvents); err != nil {
			return nil, err
		}
	}
	return c.pop(), nil
}

func (c *Conn) pop() native.Event {
	if len(c.queue) == 0 {
		return nil
	}
	ev := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	if len(c.queue) == 0 {
		c.queue = c.queue[:0:0]
	}
	return ev
}

func (c *Conn) push(ev native.Event) { c.queue = append(c.queue, ev) }

// Wakeup posts an empty event, which GLFW allows from any thread.
func (c *Conn) Wakeup() { glfw.PostEmptyEvent() }

func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	for _, w := range c.windows {
		w.Destroy()
	}
	glfw.Terminate()
	runtime.UnlockOSThread()
	return nil
}

// protect turns the panics the GLFW bindings raise for platform errors into
// errors.
func protect(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			gerr, ok := r.(*glfw.Error)
			if !ok {
				panic(r)
			}
			err = xerrors.Errorf("glfwdriver: %w", gerr)
		}
	}()
	fn()
	return nil
}
