// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package headless provides an in-memory display connection with no native
// windowing system behind it.
//
// Windows exist only as records in the Conn. Requests such as SetSize and
// SetState are answered with the events a well-behaved window manager would
// send, buffer surfaces keep a copy of the last presented frame, and frame
// notifications are delivered by FireFrames or by a ticker. Failures of any
// native operation can be injected with FailNext. This makes the package
// suitable for tests and for running programs on machines without a display.
package headless

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/swa-go/swa/native"
)

// Options configure a Conn. The zero value is valid.
type Options struct {
	// Features overrides DefaultFeatures.
	Features *native.Features

	// Width and Height are used for windows created with DefaultSize. They
	// default to 800 and 500.
	Width, Height uint32

	// Format is the pixel format of buffer surfaces. It defaults to
	// native.FormatBGRA8.
	Format native.PixelFormat

	// FrameInterval, if positive, fires pending frame notifications
	// periodically. Otherwise they are only fired by FireFrames.
	FrameInterval time.Duration

	// Manual disables the events that answer client requests. Geometry and
	// state then only change through Resize and Inject.
	Manual bool
}

// DefaultFeatures returns the features of a Conn created without
// Options.Features.
func DefaultFeatures() native.Features {
	return native.Features{
		FrameNotify: true,
		ARGBVisual:  true,
		Buffer:      true,
		GL:          true,
		GPUSurface:  true,
		Keyboard:    true,
		Mouse:       true,
		Position:    true,
		Resize:      true,
		SizeLimits:  true,
		Title:       true,
		Visibility:  true,
		Minimize:    true,
		Maximize:    true,
		Fullscreen:  true,
	}
}

// Op names a native operation for failure injection.
type Op string

const (
	OpCreateWindow  Op = "create window"
	OpDestroyWindow Op = "destroy window"
	OpAlloc         Op = "alloc pixels"
	OpBeginDraw     Op = "begin draw"
	OpPresent       Op = "present"
	OpRequestFrame  Op = "request frame"
	OpSetSize       Op = "set size"
	OpSetState      Op = "set state"
)

// Stats counts native operations performed on a Conn.
type Stats struct {
	WindowsCreated   int
	WindowsDestroyed int
	Allocs           int
	Releases         int
	BeginDraws       int
	EndDraws         int
	Presents         int
	FrameRequests    int
	FrameCancels     int
}

// Conn is an in-memory native.Conn. Its methods are safe for concurrent use.
type Conn struct {
	opts     Options
	features native.Features

	// signal and wake have capacity 1. signal is posted when an event is
	// queued, wake by Wakeup.
	signal chan struct{}
	wake   chan struct{}
	stop   chan struct{}

	mu        sync.Mutex
	queue     []native.Event
	windows   map[native.WindowID]*Window
	frames    map[native.FrameToken]native.WindowID
	failures  map[Op][]error
	nextID    native.WindowID
	nextToken native.FrameToken
	fatal     error
	closed    bool
	stats     Stats
}

var (
	_ native.Conn          = (*Conn)(nil)
	_ native.FrameNotifier = (*Conn)(nil)
)

// Open returns a new Conn.
func Open(opts Options) *Conn {
	if opts.Width == 0 {
		opts.Width = 800
	}
	if opts.Height == 0 {
		opts.Height = 500
	}
	if opts.Format == native.FormatUnknown {
		opts.Format = native.FormatBGRA8
	}
	c := &Conn{
		opts:     opts,
		features: DefaultFeatures(),
		signal:   make(chan struct{}, 1),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		windows:  map[native.WindowID]*Window{},
		frames:   map[native.FrameToken]native.WindowID{},
		failures: map[Op][]error{},
	}
	if opts.Features != nil {
		c.features = *opts.Features
	}
	if opts.FrameInterval > 0 {
		go c.tick(opts.FrameInterval)
	}
	return c
}

func (c *Conn) tick(d time.Duration) {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.FireFrames()
		case <-c.stop:
			return
		}
	}
}

func (c *Conn) Features() native.Features { return c.features }

// FailNext makes the next call of op fail with err. Calls queue up: each
// consumes one injected error.
func (c *Conn) FailNext(op Op, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[op] = append(c.failures[op], err)
}

// Fail makes every following PollEvent and WaitEvent return err, as if the
// native connection had broken.
func (c *Conn) Fail(err error) {
	c.mu.Lock()
	c.fatal = err
	c.mu.Unlock()
	c.notify()
}

// injected pops an injected failure for op. c.mu must be held.
func (c *Conn) injected(op Op) error {
	errs := c.failures[op]
	if len(errs) == 0 {
		return nil
	}
	c.failures[op] = errs[1:]
	return errs[0]
}

// Stats returns a snapshot of the operation counters.
func (c *Conn) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Window returns the window with the given id, or nil.
func (c *Conn) Window(id native.WindowID) *Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.windows[id]
}

// Inject queues ev as if the native system had sent it.
func (c *Conn) Inject(ev native.Event) {
	c.mu.Lock()
	c.queue = append(c.queue, ev)
	c.mu.Unlock()
	c.notify()
}

// Resize changes the geometry of a window as if the user had resized it, and
// queues the matching resize and draw events.
func (c *Conn) Resize(id native.WindowID, width, height uint32) {
	c.mu.Lock()
	if w, ok := c.windows[id]; ok {
		w.width, w.height = width, height
	}
	c.queue = append(c.queue,
		native.ResizeEvent{Window: id, Width: width, Height: height},
		native.DrawEvent{Window: id})
	c.mu.Unlock()
	c.notify()
}

// FireFrames delivers every outstanding frame notification, in request
// order, and returns how many were delivered.
func (c *Conn) FireFrames() int {
	c.mu.Lock()
	toks := make([]native.FrameToken, 0, len(c.frames))
	for tok := range c.frames {
		toks = append(toks, tok)
	}
	sort.Slice(toks, func(i, j int) bool { return toks[i] < toks[j] })
	for _, tok := range toks {
		c.queue = append(c.queue, native.FrameEvent{Window: c.frames[tok], Token: tok})
		delete(c.frames, tok)
	}
	c.mu.Unlock()
	if len(toks) > 0 {
		c.notify()
	}
	return len(toks)
}

// PendingFrames returns the number of outstanding frame notifications.
func (c *Conn) PendingFrames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *Conn) notify() {
	select {
	case c.signal <- struct{}{}:
	default:
	}
}

func (c *Conn) PollEvent() (native.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fatal != nil {
		return nil, c.fatal
	}
	if c.closed {
		return nil, native.ErrClosed
	}
	if len(c.queue) == 0 {
		return nil, nil
	}
	ev := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	return ev, nil
}

func (c *Conn) WaitEvent() (native.Event, error) {
	for {
		ev, err := c.PollEvent()
		if ev != nil || err != nil {
			return ev, err
		}
		select {
		case <-c.signal:
		case <-c.wake:
			return nil, nil
		}
	}
}

func (c *Conn) Wakeup() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.stop)
	return nil
}

func (c *Conn) CreateWindow(cfg native.WindowConfig) (native.Window, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, native.ErrClosed
	}
	if err := c.injected(OpCreateWindow); err != nil {
		return nil, err
	}
	switch cfg.Surface {
	case native.SurfaceBuffer:
		if !c.features.Buffer {
			return nil, errors.New("headless: buffer surfaces disabled")
		}
	case native.SurfaceGL:
		if !c.features.GL {
			return nil, errors.New("headless: gl surfaces disabled")
		}
	case native.SurfaceGPU:
		if !c.features.GPUSurface {
			return nil, errors.New("headless: gpu surfaces disabled")
		}
	}
	c.nextID++
	w := &Window{
		c:           c,
		id:          c.nextID,
		surface:     cfg.Surface,
		transparent: cfg.Transparent,
		title:       cfg.Title,
		width:       cfg.Width,
		height:      cfg.Height,
		state:       native.StateNormal,
		visible:     true,
	}
	if w.width == native.DefaultSize {
		w.width = c.opts.Width
	}
	if w.height == native.DefaultSize {
		w.height = c.opts.Height
	}
	c.windows[w.id] = w
	c.stats.WindowsCreated++
	c.queue = append(c.queue, native.DrawEvent{Window: w.id})
	c.notify()
	return w, nil
}

func (c *Conn) RequestFrame(id native.WindowID) (native.FrameToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected(OpRequestFrame); err != nil {
		return 0, err
	}
	if _, ok := c.windows[id]; !ok {
		return 0, fmt.Errorf("headless: request frame: no window %d", id)
	}
	c.nextToken++
	c.frames[c.nextToken] = id
	c.stats.FrameRequests++
	return c.nextToken, nil
}

func (c *Conn) CancelFrame(tok native.FrameToken) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.frames[tok]; ok {
		delete(c.frames, tok)
		c.stats.FrameCancels++
	}
}
