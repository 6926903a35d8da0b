// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/swa-go/swa/native"
)

// Options configure a Display. The zero value is valid.
type Options struct {
	// Logger defaults to logr.Discard().
	Logger logr.Logger

	// MeterProvider and TracerProvider default to the otel globals.
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Display is a connection to one native display system and the windows
// created on it.
//
// A Display is not safe for concurrent use. All methods, and all Listener
// callbacks, run on the goroutine that calls Dispatch. The only exception is
// Wakeup, which may be called from any goroutine.
type Display struct {
	conn     native.Conn
	frames   native.FrameNotifier
	features native.Features
	caps     Caps

	windows registry

	ctx     context.Context
	log     logr.Logger
	metrics *metrics
	tracer  trace.Tracer

	err    error // set once the connection failed
	closed bool
}

// New returns a Display that takes ownership of conn. conn is closed by
// Destroy.
func New(conn native.Conn, opts *Options) (*Display, error) {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	mp := opts.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	m, err := newMetrics(mp)
	if err != nil {
		return nil, fmt.Errorf("screen: creating instruments: %w", err)
	}

	d := &Display{
		conn:     conn,
		features: conn.Features(),
		windows:  newRegistry(),
		ctx:      context.Background(),
		log:      log,
		metrics:  m,
		tracer:   tp.Tracer(instrumentationName),
	}
	if d.features.FrameNotify {
		if fn, ok := conn.(native.FrameNotifier); ok {
			d.frames = fn
		} else {
			d.features.FrameNotify = false
		}
	}
	d.caps = displayCaps(d.features)
	d.log.V(1).Info("display ready", "caps", d.caps.String())
	return d, nil
}

// Capabilities returns the features this display supports.
func (d *Display) Capabilities() Caps { return d.caps }

// Err returns the error that made the connection unusable, or nil.
func (d *Display) Err() error { return d.err }

// NumWindows returns the number of live windows.
func (d *Display) NumWindows() int { return d.windows.len() }

// ForEachWindow calls fn for every live window, newest first. fn may destroy
// any window: destroyed windows are skipped and iteration continues with the
// remaining ones. Windows created by fn are not visited.
func (d *Display) ForEachWindow(fn func(w *Window)) { d.windows.forEach(fn) }

// usable reports why the display cannot be used, if it cannot.
func (d *Display) usable() error {
	if d.closed || d.err != nil {
		return ErrConnectionLost
	}
	return nil
}

// CreateWindow creates a window and registers it with the display. On
// failure no window is left behind.
func (d *Display) CreateWindow(s WindowSettings) (_ *Window, err error) {
	if err := d.usable(); err != nil {
		return nil, err
	}
	_, span := d.tracer.Start(d.ctx, "screen.CreateWindow", trace.WithAttributes(
		attribute.String("surface", s.Surface.String()),
		attribute.Bool("transparent", s.Transparent),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if need := surfaceCap(s.Surface); !d.caps.Has(need) {
		return nil, fmt.Errorf("%w: %s surface", ErrUnsupported, s.Surface)
	}
	cfg := native.WindowConfig{
		Width:       s.Width,
		Height:      s.Height,
		Title:       s.Title,
		Surface:     s.Surface,
		Transparent: s.Transparent && d.caps.Has(CapTransparency),
	}
	nw, err := d.conn.CreateWindow(cfg)
	if err != nil {
		return nil, resourceErr("create window", err)
	}

	w := &Window{
		d:        d,
		nw:       nw,
		id:       nw.ID(),
		slot:     noSlot,
		listener: s.Listener,
		surface:  s.Surface,
		state:    StateNormal,
		caps:     windowCaps(d.caps, cfg),
	}
	if w.listener == nil {
		w.listener = ListenerFuncs{}
	}
	w.width, w.height = nw.Size()
	d.windows.insert(w)
	d.metrics.windows.Add(d.ctx, 1)
	defer func() {
		if err != nil {
			if derr := w.destroy(); derr != nil {
				d.log.Error(derr, "tearing down partially constructed window", "window", w.id)
			}
		}
	}()

	switch s.Surface {
	case SurfaceBuffer:
		bs, ok := nw.(native.BufferSurface)
		if !ok {
			return nil, resourceErr("buffer surface", fmt.Errorf("%w: backend window has no buffer surface", ErrUnsupported))
		}
		if bs.Format().BytesPerPixel() == 0 {
			return nil, resourceErr("buffer surface", fmt.Errorf("unsupported pixel format %v", bs.Format()))
		}
		w.buf.target = bs
	case SurfaceGL, SurfaceGPU:
		sh, ok := nw.(native.SurfaceHandler)
		if !ok {
			return nil, resourceErr(s.Surface.String()+" surface", fmt.Errorf("%w: backend window has no surface handle", ErrUnsupported))
		}
		w.handles = sh
	}

	d.log.V(1).Info("window created", "window", w.id, "width", w.width, "height", w.height,
		"surface", s.Surface.String(), "caps", w.caps.String())
	return w, nil
}

// Wakeup makes a Dispatch call that is blocked waiting for events return.
// It is safe to call from any goroutine.
func (d *Display) Wakeup() {
	d.conn.Wakeup()
}

// Destroy destroys every window and closes the connection. It is the only
// method that may be called after Dispatch returned false.
func (d *Display) Destroy() error {
	if d.closed {
		return nil
	}
	_, span := d.tracer.Start(d.ctx, "screen.Destroy",
		trace.WithAttributes(attribute.Int("windows", d.windows.len())))
	defer span.End()

	var errs error
	for d.windows.head != noSlot {
		w := d.windows.slots[d.windows.head].w
		errs = multierr.Append(errs, w.destroy())
	}
	d.closed = true
	errs = multierr.Append(errs, d.conn.Close())
	if errs != nil {
		span.RecordError(errs)
		span.SetStatus(codes.Error, errs.Error())
	}
	return errs
}
