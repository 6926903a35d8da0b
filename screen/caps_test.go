// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/swa-go/swa/native"
)

func TestCapsString(t *testing.T) {
	tests := []struct {
		c    Caps
		want string
	}{
		{0, "none"},
		{CapBufferSurface, "buffer"},
		{CapVsync | CapTitle, "vsync|title"},
		{CapDecorationQuery | CapGL, "gl|decoration-query"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Caps(%#x).String() = %q, want %q", uint32(tt.c), got, tt.want)
		}
	}
	if got, want := len(capNames), 19; got != want {
		t.Errorf("len(capNames) = %d, want %d", got, want)
	}
}

// allFeatures returns Features with every field set.
func allFeatures() native.Features {
	var f native.Features
	v := reflect.ValueOf(&f).Elem()
	for i := 0; i < v.NumField(); i++ {
		v.Field(i).SetBool(true)
	}
	return f
}

func TestDisplayCapsEmpty(t *testing.T) {
	if got := displayCaps(native.Features{}); got != 0 {
		t.Errorf("displayCaps(zero) = %v, want none", got)
	}
}

func TestDisplayCapsAll(t *testing.T) {
	got := displayCaps(allFeatures())
	want := Caps(1<<len(capNames) - 1)
	if got != want {
		t.Errorf("displayCaps(all) = %v, want %v", got, want)
	}
}

// TestWindowCapsSubset checks that no window ever has a capability its
// display lacks, for every single-feature display and every window config.
func TestWindowCapsSubset(t *testing.T) {
	var displays []native.Features
	displays = append(displays, native.Features{}, allFeatures())
	n := reflect.TypeOf(native.Features{}).NumField()
	for i := 0; i < n; i++ {
		var f native.Features
		reflect.ValueOf(&f).Elem().Field(i).SetBool(true)
		displays = append(displays, f)
	}
	surfaces := []SurfaceType{SurfaceNone, SurfaceBuffer, SurfaceGL, SurfaceGPU}
	for _, f := range displays {
		dc := displayCaps(f)
		for _, s := range surfaces {
			for _, transparent := range []bool{false, true} {
				wc := windowCaps(dc, native.WindowConfig{Surface: s, Transparent: transparent})
				if wc&^dc != 0 {
					t.Errorf("display %v, surface %v, transparent %v: window caps %v not a subset",
						dc, s, transparent, wc)
				}
			}
		}
	}
}

func TestWindowCaps(t *testing.T) {
	dc := displayCaps(allFeatures())
	got := windowCaps(dc, native.WindowConfig{Surface: SurfaceBuffer}).Names()
	want := []string{
		"buffer", "vsync", "cursor", "position", "resize", "size-limits", "title",
		"visibility", "minimize", "maximize", "fullscreen", "decoration-query",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("window caps mismatch (-want +got):\n%s", diff)
	}
	if wc := windowCaps(dc, native.WindowConfig{Surface: SurfaceGL, Transparent: true}); !wc.Has(CapGL|CapTransparency) || wc.Has(CapBufferSurface) {
		t.Errorf("gl transparent window caps = %v", wc)
	}
}
