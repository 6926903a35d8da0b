// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver opens a screen.Display on the best available backend.
package driver

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/swa-go/swa/driver/headless"
	"github.com/swa-go/swa/driver/x11driver"
	"github.com/swa-go/swa/native"
	"github.com/swa-go/swa/screen"
)

// Backend names.
const (
	Auto     = "auto"
	X11      = "x11"
	GLFW     = "glfw"
	Headless = "headless"
)

// Config selects and configures a backend. The zero value opens the
// default backend with default settings.
type Config struct {
	// Backend is one of the backend names. Empty means Auto, which picks X11
	// when $DISPLAY is set and the headless backend otherwise.
	Backend string

	X11      x11driver.Options
	Headless headless.Options

	// Logger is shared by the display and the backend.
	Logger logr.Logger

	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

type opener func(cfg *Config) (native.Conn, error)

// openers returns the table of backends compiled in. It is built on every
// call.
func openers() map[string]opener {
	m := map[string]opener{
		X11: func(cfg *Config) (native.Conn, error) {
			opts := cfg.X11
			if opts.Logger.GetSink() == nil {
				opts.Logger = cfg.Logger.WithName("x11")
			}
			return x11driver.Open(opts)
		},
		Headless: func(cfg *Config) (native.Conn, error) {
			return headless.Open(cfg.Headless), nil
		},
	}
	addGLFW(m)
	return m
}

// Backends returns the names of the backends compiled in.
func Backends() []string {
	table := openers()
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the backend Open would use for cfg.
func Resolve(cfg Config) (string, error) {
	b := cfg.Backend
	if b == "" || b == Auto {
		if cfg.X11.Display != "" || os.Getenv("DISPLAY") != "" {
			return X11, nil
		}
		return Headless, nil
	}
	if _, ok := openers()[b]; !ok {
		return "", fmt.Errorf("driver: unknown backend %q (have %v)", b, Backends())
	}
	return b, nil
}

// Open connects to the backend selected by cfg and returns a Display that
// owns the connection.
func Open(cfg Config) (*screen.Display, error) {
	name, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Logger.GetSink() == nil {
		cfg.Logger = logr.Discard()
	}
	conn, err := openers()[name](&cfg)
	if err != nil {
		return nil, fmt.Errorf("driver: opening %s backend: %w", name, err)
	}
	d, err := screen.New(conn, &screen.Options{
		Logger:         cfg.Logger.WithValues("backend", name),
		MeterProvider:  cfg.MeterProvider,
		TracerProvider: cfg.TracerProvider,
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}
