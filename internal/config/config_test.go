// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/swa-go/swa/driver"
	"github.com/swa-go/swa/screen"
)

func TestParseEmpty(t *testing.T) {
	got, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("empty document (-want +got):\n%s", diff)
	}
}

func TestParseOverlay(t *testing.T) {
	const doc = `
backend: headless
headless:
  frame_interval: 5ms
log:
  level: 2
  format: json
window:
  title: demo
  surface: gpu
`
	got, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Backend = driver.Headless
	want.Headless.FrameInterval = 5 * time.Millisecond
	want.Log.Level = 2
	want.Log.Format = "json"
	want.Window.Title = "demo"
	want.Window.Surface = "gpu"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse (-want +got):\n%s", diff)
	}
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("windw:\n  title: x\n"))
	if err == nil || !strings.Contains(err.Error(), "windw") {
		t.Errorf("got %v, want an error naming the unknown field", err)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Backend = "wayland"
	c.Log.Backend = "syslog"
	c.Log.Level = -1
	c.Window.Surface = "vulkan"
	c.Window.MinWidth = 10000
	err := c.Validate()
	if got := len(multierr.Errors(err)); got != 5 {
		t.Errorf("got %d errors, want 5: %v", got, err)
	}
	for _, field := range []string{"backend", "log.backend", "log.level", "window.surface", "window.min_width"} {
		if !strings.Contains(err.Error(), field+":") {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	c.Inspect.Addr = "localhost:6060"
	b, err := c.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "frame_interval: 16.666666ms") {
		t.Errorf("durations not written as strings:\n%s", b)
	}
	got, err := Parse(strings.NewReader(string(b)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swa.yaml")
	if err := os.WriteFile(path, []byte("backend: x11\nx11:\n  display: \":1\"\n  disable_shm: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	dc := c.Driver()
	if dc.Backend != driver.X11 || dc.X11.Display != ":1" || !dc.X11.DisableSHM {
		t.Errorf("Driver() = %+v", dc)
	}
	if dc.Headless.Width != 800 {
		t.Errorf("headless width = %d, want the default 800", dc.Headless.Width)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("Load(missing) = %v, want a not-exist error", err)
	}
}

func TestWindowSettings(t *testing.T) {
	c := Default()
	c.Window.Width = 0
	c.Window.Surface = "gl"
	s := c.WindowSettings(nil)
	if s.Width != screen.DefaultSize || s.Height != 480 || s.Surface != screen.SurfaceGL || s.Title != "swa" {
		t.Errorf("WindowSettings = %+v", s)
	}
}
