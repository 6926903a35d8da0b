// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/swa-go/swa/driver"
	"github.com/swa-go/swa/internal/config"
	"github.com/swa-go/swa/internal/inspect"
	"github.com/swa-go/swa/screen"
)

func (a *app) newRunCmd() *cobra.Command {
	var frames int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window and animate it until it is closed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.config()
			if err != nil {
				return err
			}
			log, err := newLogger(&c, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, &c, log, frames)
		},
	}
	cmd.Flags().String("inspect", "", "serve the debugging view on this address")
	cmd.Flags().IntVar(&frames, "frames", 0, "exit after presenting this many frames (0 means no limit)")
	a.v.BindPFlag("inspect.addr", cmd.Flags().Lookup("inspect"))
	return cmd
}

// demo is the window listener of the run command.
type demo struct {
	log       logr.Logger
	p         *painter
	frame     int
	maxFrames int
	// redraw is set when the window wants a frame but has no vsync.
	redraw bool
}

func (dm *demo) Draw(w *screen.Window) {
	if w.Surface() != screen.SurfaceBuffer {
		return
	}
	img, err := w.Buffer()
	if err != nil {
		dm.log.Error(err, "acquiring buffer")
		return
	}
	if err := dm.p.paint(img, dm.frame); err != nil {
		dm.log.Error(err, "painting")
	}
	if err := w.ApplyBuffer(); err != nil {
		dm.log.Error(err, "presenting")
		return
	}
	dm.frame++
	if dm.maxFrames > 0 && dm.frame >= dm.maxFrames {
		w.Destroy()
		return
	}
	if w.Capabilities().Has(screen.CapVsync) {
		if err := w.Refresh(); err != nil {
			dm.log.Error(err, "requesting frame")
		}
	} else {
		dm.redraw = true
	}
}

func (dm *demo) Resize(w *screen.Window, width, height uint32) {
	dm.log.V(1).Info("resized", "width", width, "height", height)
}

func (dm *demo) Close(w *screen.Window) { w.Destroy() }

func (dm *demo) State(w *screen.Window, s screen.State) {
	dm.log.V(1).Info("state changed", "state", s.String())
}

func (dm *demo) Focus(w *screen.Window, focused bool) {}

func (dm *demo) Key(w *screen.Window, e key.Event) {
	if e.Direction != key.DirPress {
		return
	}
	switch e.Code {
	case key.CodeEscape, key.CodeQ:
		w.Destroy()
	case key.CodeF:
		next := screen.StateFullscreen
		if w.State() == screen.StateFullscreen {
			next = screen.StateNormal
		}
		w.SetState(next)
	}
}

func (dm *demo) Mouse(w *screen.Window, e mouse.Event) {}

func run(ctx context.Context, c *config.Config, log logr.Logger, maxFrames int) error {
	dc := c.Driver()
	dc.Logger = log
	backend, err := driver.Resolve(dc)
	if err != nil {
		return err
	}
	d, err := driver.Open(dc)
	if err != nil {
		return err
	}
	defer d.Destroy()

	dm := &demo{log: log, p: newPainter(), maxFrames: maxFrames}
	var l screen.Listener = dm
	var hub *inspect.Hub
	if c.Inspect.Addr != "" {
		hub = inspect.NewHub()
		l = hub.Listener(dm)
		shutdown, err := serveInspect(c.Inspect.Addr, hub, log)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	w, err := d.CreateWindow(c.WindowSettings(l))
	if err != nil {
		return err
	}
	if c.Window.MinWidth > 0 || c.Window.MinHeight > 0 {
		w.SetMinSize(c.Window.MinWidth, c.Window.MinHeight)
	}
	// The helpers below must be gone before the display is destroyed.
	ctx, cancel := context.WithCancel(ctx)
	var helpers sync.WaitGroup
	defer helpers.Wait()
	defer cancel()

	var interrupted atomic.Bool
	helpers.Add(1)
	go func() {
		defer helpers.Done()
		<-ctx.Done()
		interrupted.Store(true)
		d.Wakeup()
	}()
	if !w.Capabilities().Has(screen.CapVsync) {
		helpers.Add(1)
		go func() {
			defer helpers.Done()
			tick(ctx, d, time.Second/60)
		}()
	}

	for d.NumWindows() > 0 && !interrupted.Load() && d.Dispatch(true) {
		if dm.redraw && !w.Destroyed() {
			dm.redraw = false
			w.Refresh()
		}
		if hub != nil {
			hub.Publish(inspect.Capture(d, backend))
		}
	}
	if err := d.Err(); err != nil {
		return err
	}
	log.Info("done", "frames", dm.frame)
	return nil
}

// tick wakes the dispatch loop periodically for windows without vsync.
func tick(ctx context.Context, d *screen.Display, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			d.Wakeup()
		case <-ctx.Done():
			return
		}
	}
}

func serveInspect(addr string, hub *inspect.Hub, log logr.Logger) (shutdown func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}
	srv := &http.Server{Handler: inspect.NewServer(hub, log.WithName("inspect"))}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, "inspect server")
		}
	}()
	log.Info("inspect server listening", "addr", ln.Addr().String())
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}, nil
}
