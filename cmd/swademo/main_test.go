// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/swa-go/swa/internal/config"
	"github.com/swa-go/swa/screen"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "config", "show", "--backend", "headless", "--log-level", "3")
	if err != nil {
		t.Fatal(err)
	}
	got, err := config.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parsing output: %v\n%s", err, out)
	}
	want := config.Default()
	want.Backend = "headless"
	want.Log.Level = 3
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config show (-want +got):\n%s", diff)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swa.yaml")
	if err := os.WriteFile(path, []byte("backend: headless\nwindow:\n  title: from file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "title: from file") {
		t.Errorf("config show output lacks file title:\n%s", out)
	}
}

func TestInvalidBackend(t *testing.T) {
	if _, err := execute(t, "config", "show", "--backend", "wayland"); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestCaps(t *testing.T) {
	out, err := execute(t, "caps", "--backend", "headless", "--log-backend", "discard")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("caps printed %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "backend: headless" {
		t.Errorf("first line = %q", lines[0])
	}
	caps, ok := strings.CutPrefix(lines[2], "window (buffer): ")
	if !ok {
		t.Fatalf("window line = %q", lines[2])
	}
	if names := strings.Fields(caps); !slices.Contains(names, "buffer") || !slices.Contains(names, "vsync") {
		t.Errorf("window caps = %q, want buffer and vsync", caps)
	}
}

func TestRunFrames(t *testing.T) {
	if _, err := execute(t, "run", "--backend", "headless", "--log-backend", "discard", "--frames", "3"); err != nil {
		t.Fatal(err)
	}
}

func TestRunInspect(t *testing.T) {
	_, err := execute(t, "run", "--backend", "headless", "--log-backend", "discard",
		"--frames", "2", "--inspect", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
}

func TestSquare(t *testing.T) {
	for _, tt := range []struct {
		width, height, frame int
		want                 image.Rectangle
	}{
		{100, 40, 0, image.Rect(0, 10, 20, 30)},
		{100, 40, 5, image.Rect(20, 10, 40, 30)},
		// Bounces back after reaching the right edge at x = 80.
		{100, 40, 25, image.Rect(60, 10, 80, 30)},
		{10, 10, 3, image.Rect(2, 2, 7, 7)},
		{1, 1, 7, image.Rect(0, 0, 1, 1)},
	} {
		if got := square(tt.width, tt.height, tt.frame); got != tt.want {
			t.Errorf("square(%d, %d, %d) = %v, want %v", tt.width, tt.height, tt.frame, got, tt.want)
		}
	}
}

func TestPaint(t *testing.T) {
	const w, h = 16, 8
	for _, format := range []screen.PixelFormat{screen.FormatBGRA8, screen.FormatRGBA8} {
		img := screen.Image{Pix: make([]byte, 4*w*h), Stride: 4 * w, Width: w, Height: h, Format: format}
		p := newPainter()
		if err := p.paint(img, 10); err != nil {
			t.Fatal(err)
		}
		// The square covers rows 2 to 5, so the first row is background.
		bg := background(10)
		px := img.Pix[4*(w-1) : 4*w]
		want := []byte{bg.R, bg.G, bg.B, bg.A}
		if format == screen.FormatBGRA8 {
			want = []byte{bg.B, bg.G, bg.R, bg.A}
		}
		if diff := cmp.Diff(want, px); diff != "" {
			t.Errorf("%v: background pixel (-want +got):\n%s", format, diff)
		}
		if got := p.canvas.RGBAAt(0, 0); got != (color.RGBA{bg.R, bg.G, bg.B, bg.A}) {
			t.Errorf("%v: canvas(0, 0) = %v, want %v", format, got, bg)
		}
	}
}

func TestPaintUnknownFormat(t *testing.T) {
	img := screen.Image{Pix: make([]byte, 16), Stride: 8, Width: 2, Height: 2}
	if err := newPainter().paint(img, 0); err == nil {
		t.Error("paint accepted an unknown format")
	}
}
