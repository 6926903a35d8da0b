// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the YAML configuration of the swa tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/swa-go/swa/driver"
	"github.com/swa-go/swa/logging"
	"github.com/swa-go/swa/screen"
)

// Config is the file format. Unknown keys are rejected.
type Config struct {
	Backend  string   `yaml:"backend"`
	X11      X11      `yaml:"x11"`
	Headless Headless `yaml:"headless"`
	Log      Log      `yaml:"log"`
	Window   Window   `yaml:"window"`
	Inspect  Inspect  `yaml:"inspect"`
}

type X11 struct {
	Display      string  `yaml:"display"`
	DisableSHM   bool    `yaml:"disable_shm"`
	DisableVsync bool    `yaml:"disable_vsync"`
	RefreshRate  float64 `yaml:"refresh_rate"`
}

type Headless struct {
	Width         uint32        `yaml:"width"`
	Height        uint32        `yaml:"height"`
	FrameInterval time.Duration `yaml:"frame_interval"`
}

type Log struct {
	Backend string `yaml:"backend"`
	Level   int    `yaml:"level"`
	Format  string `yaml:"format"`
}

// Window describes the window the demo opens. Zero sizes mean the backend
// default.
type Window struct {
	Title       string `yaml:"title"`
	Width       uint32 `yaml:"width"`
	Height      uint32 `yaml:"height"`
	MinWidth    uint32 `yaml:"min_width"`
	MinHeight   uint32 `yaml:"min_height"`
	Surface     string `yaml:"surface"`
	Transparent bool   `yaml:"transparent"`
}

type Inspect struct {
	// Addr is the listen address of the debug server. Empty disables it.
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Backend: driver.Auto,
		Headless: Headless{
			Width:         800,
			Height:        500,
			FrameInterval: time.Second / 60,
		},
		Log: Log{
			Backend: logging.Zap,
			Format:  logging.Text,
		},
		Window: Window{
			Title:   "swa",
			Width:   640,
			Height:  480,
			Surface: "buffer",
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes r over the defaults and validates the result. An empty
// document yields the defaults.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs error
	switch c.Backend {
	case driver.Auto, driver.X11, driver.GLFW, driver.Headless:
	default:
		errs = multierr.Append(errs, fmt.Errorf("backend: unknown backend %q", c.Backend))
	}
	if c.X11.RefreshRate < 0 {
		errs = multierr.Append(errs, fmt.Errorf("x11.refresh_rate: must not be negative"))
	}
	if c.Headless.FrameInterval < 0 {
		errs = multierr.Append(errs, fmt.Errorf("headless.frame_interval: must not be negative"))
	}
	switch c.Log.Backend {
	case logging.Zap, logging.Zerolog, logging.Logrus, logging.GoKit, logging.Discard:
	default:
		errs = multierr.Append(errs, fmt.Errorf("log.backend: unknown backend %q", c.Log.Backend))
	}
	switch c.Log.Format {
	case logging.JSON, logging.Text:
	default:
		errs = multierr.Append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if c.Log.Level < 0 {
		errs = multierr.Append(errs, fmt.Errorf("log.level: must not be negative"))
	}
	if _, err := parseSurface(c.Window.Surface); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("window.surface: %w", err))
	}
	if c.Window.MinWidth > c.Window.Width && c.Window.Width != 0 {
		errs = multierr.Append(errs, fmt.Errorf("window.min_width: exceeds width"))
	}
	if c.Window.MinHeight > c.Window.Height && c.Window.Height != 0 {
		errs = multierr.Append(errs, fmt.Errorf("window.min_height: exceeds height"))
	}
	return errs
}

func parseSurface(s string) (screen.SurfaceType, error) {
	switch s {
	case "buffer":
		return screen.SurfaceBuffer, nil
	case "gl":
		return screen.SurfaceGL, nil
	case "gpu":
		return screen.SurfaceGPU, nil
	}
	return screen.SurfaceNone, fmt.Errorf("unknown surface %q", s)
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Driver returns the driver configuration. The logger and telemetry
// providers are left for the caller.
func (c *Config) Driver() driver.Config {
	dc := driver.Config{Backend: c.Backend}
	dc.X11.Display = c.X11.Display
	dc.X11.DisableSHM = c.X11.DisableSHM
	dc.X11.DisableVsync = c.X11.DisableVsync
	dc.X11.RefreshRate = c.X11.RefreshRate
	dc.Headless.Width = c.Headless.Width
	dc.Headless.Height = c.Headless.Height
	dc.Headless.FrameInterval = c.Headless.FrameInterval
	return dc
}

// Logging returns the logging configuration writing to w.
func (c *Config) Logging(w io.Writer) logging.Config {
	return logging.Config{
		Backend: c.Log.Backend,
		Level:   c.Log.Level,
		Format:  c.Log.Format,
		Output:  w,
	}
}

// WindowSettings returns the settings of the configured window. The
// configuration must be valid.
func (c *Config) WindowSettings(l screen.Listener) screen.WindowSettings {
	s := screen.WindowSettings{
		Width:       c.Window.Width,
		Height:      c.Window.Height,
		Title:       c.Window.Title,
		Transparent: c.Window.Transparent,
		Listener:    l,
	}
	if s.Width == 0 {
		s.Width = screen.DefaultSize
	}
	if s.Height == 0 {
		s.Height = screen.DefaultSize
	}
	s.Surface, _ = parseSurface(c.Window.Surface)
	return s
}
