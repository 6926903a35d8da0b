// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/swa-go/swa/driver/headless"
	"github.com/swa-go/swa/native"
)

func TestBufferLifecycle(t *testing.T) {
	d, c := newDisplay(t, headless.Options{})
	var drawErr error
	var strides []int
	l := ListenerFuncs{OnDraw: func(w *Window) {
		img, err := w.Buffer()
		if err != nil {
			drawErr = err
			return
		}
		strides = append(strides, img.Stride)
		if got, want := len(img.Pix), img.Stride*int(img.Height); got < want {
			t.Errorf("len(Pix) = %d, want at least %d", got, want)
		}
		if img.Format != FormatBGRA8 {
			t.Errorf("Format = %v, want bgra8", img.Format)
		}
		// Paint the last pixel.
		off := img.Stride*int(img.Height-1) + 4*int(img.Width-1)
		copy(img.Pix[off:], []byte{1, 2, 3, 4})
		if err := w.ApplyBuffer(); err != nil {
			drawErr = err
		}
	}}
	w := createWindow(t, d, WindowSettings{Width: 800, Height: 600, Surface: SurfaceBuffer, Listener: l})
	dispatch(t, d)

	c.Resize(w.ID(), 400, 300)
	dispatch(t, d)

	if drawErr != nil {
		t.Fatal(drawErr)
	}
	if diff := cmp.Diff([]int{3200, 1600}, strides); diff != "" {
		t.Errorf("strides mismatch (-want +got):\n%s", diff)
	}
	pix, fw, fh, n := c.Window(w.ID()).Presented()
	if fw != 400 || fh != 300 || n != 2 {
		t.Errorf("Presented: got %dx%d n=%d, want 400x300 n=2", fw, fh, n)
	}
	if got := pix[len(pix)-4:]; !cmp.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("last pixel = %v, want [1 2 3 4]", got)
	}
	st := c.Stats()
	if st.Allocs != 2 || st.Releases != 1 {
		t.Errorf("Allocs, Releases = %d, %d, want 2, 1", st.Allocs, st.Releases)
	}
	if st.BeginDraws != st.EndDraws {
		t.Errorf("BeginDraws %d != EndDraws %d", st.BeginDraws, st.EndDraws)
	}
}

func TestBufferReusedAtSameSize(t *testing.T) {
	d, c := newDisplay(t, headless.Options{})
	w := createWindow(t, d, WindowSettings{Width: 10, Height: 10, Surface: SurfaceBuffer})
	for i := 0; i < 3; i++ {
		if _, err := w.Buffer(); err != nil {
			t.Fatal(err)
		}
		if err := w.ApplyBuffer(); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Stats().Allocs; got != 1 {
		t.Errorf("Allocs = %d, want 1", got)
	}
}

func TestBufferMisuse(t *testing.T) {
	d, _ := newDisplay(t, headless.Options{})
	w := createWindow(t, d, WindowSettings{Width: 10, Height: 10, Surface: SurfaceBuffer})

	if err := w.ApplyBuffer(); !errors.Is(err, ErrNoActiveSurface) {
		t.Errorf("ApplyBuffer without Buffer: got %v, want ErrNoActiveSurface", err)
	}
	img, err := w.Buffer()
	if err != nil {
		t.Fatal(err)
	}
	for i := range img.Pix {
		img.Pix[i] = 0xab
	}
	if _, err := w.Buffer(); !errors.Is(err, ErrSurfaceAcquired) {
		t.Errorf("second Buffer: got %v, want ErrSurfaceAcquired", err)
	}
	for i, b := range img.Pix {
		if b != 0xab {
			t.Fatalf("second Buffer changed pixel byte %d to %#x", i, b)
		}
	}
	if err := w.ApplyBuffer(); err != nil {
		t.Errorf("ApplyBuffer after misuse: %v", err)
	}
	if err := w.ApplyBuffer(); !errors.Is(err, ErrNoActiveSurface) {
		t.Errorf("second ApplyBuffer: got %v, want ErrNoActiveSurface", err)
	}
	if _, err := w.SurfaceHandle(); !errors.Is(err, ErrWrongSurface) {
		t.Errorf("SurfaceHandle on buffer window: got %v, want ErrWrongSurface", err)
	}
}

func TestSurfaceHandle(t *testing.T) {
	d, _ := newDisplay(t, headless.Options{})
	for _, s := range []SurfaceType{SurfaceGL, SurfaceGPU} {
		w := createWindow(t, d, WindowSettings{Width: 10, Height: 10, Surface: s})
		if _, err := w.Buffer(); !errors.Is(err, ErrWrongSurface) {
			t.Errorf("%v: Buffer: got %v, want ErrWrongSurface", s, err)
		}
		h, err := w.SurfaceHandle()
		if err != nil {
			t.Fatalf("%v: SurfaceHandle: %v", s, err)
		}
		if want := (headless.Handle{Window: w.ID(), Surface: s}); h != want {
			t.Errorf("%v: SurfaceHandle = %v, want %v", s, h, want)
		}
	}
}

func TestBufferFailuresLeaveSurfaceIdle(t *testing.T) {
	boom := errors.New("boom")
	for _, op := range []headless.Op{headless.OpAlloc, headless.OpBeginDraw} {
		t.Run(string(op), func(t *testing.T) {
			d, c := newDisplay(t, headless.Options{})
			w := createWindow(t, d, WindowSettings{Width: 10, Height: 10, Surface: SurfaceBuffer})
			c.FailNext(op, boom)
			_, err := w.Buffer()
			var rerr *ResourceError
			if !errors.As(err, &rerr) || !errors.Is(err, boom) {
				t.Fatalf("Buffer: got %v, want a ResourceError wrapping %v", err, boom)
			}
			if _, err := w.Buffer(); err != nil {
				t.Errorf("Buffer after failure: %v", err)
			}
			if err := w.ApplyBuffer(); err != nil {
				t.Errorf("ApplyBuffer: %v", err)
			}
			if st := c.Stats(); st.BeginDraws != st.EndDraws {
				t.Errorf("BeginDraws %d != EndDraws %d", st.BeginDraws, st.EndDraws)
			}
		})
	}
}

func TestApplyFailureReleasesSurface(t *testing.T) {
	d, c := newDisplay(t, headless.Options{})
	w := createWindow(t, d, WindowSettings{Width: 10, Height: 10, Surface: SurfaceBuffer})
	if _, err := w.Buffer(); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	c.FailNext(headless.OpPresent, boom)
	var rerr *ResourceError
	if err := w.ApplyBuffer(); !errors.As(err, &rerr) {
		t.Fatalf("ApplyBuffer: got %v, want a ResourceError", err)
	}
	if _, err := w.Buffer(); err != nil {
		t.Errorf("Buffer after failed apply: %v", err)
	}
}

func TestBufferZeroSize(t *testing.T) {
	d, c := newDisplay(t, headless.Options{})
	w := createWindow(t, d, WindowSettings{Width: 0, Height: 0, Surface: SurfaceBuffer})
	var rerr *ResourceError
	if _, err := w.Buffer(); !errors.As(err, &rerr) {
		t.Errorf("Buffer at 0x0: got %v, want a ResourceError", err)
	}
	if st := c.Stats(); st.BeginDraws != 0 || st.Allocs != 0 {
		t.Errorf("native calls at 0x0: %+v", st)
	}
	if err := w.ApplyBuffer(); !errors.Is(err, ErrNoActiveSurface) {
		t.Errorf("ApplyBuffer: got %v, want ErrNoActiveSurface", err)
	}
}

func TestRefreshVsync(t *testing.T) {
	d, c := newDisplay(t, headless.Options{})
	draws := 0
	w := createWindow(t, d, WindowSettings{
		Width:    10,
		Height:   10,
		Surface:  SurfaceBuffer,
		Listener: ListenerFuncs{OnDraw: func(*Window) { draws++ }},
	})
	dispatch(t, d)
	draws = 0
	if !w.Capabilities().Has(CapVsync) {
		t.Fatalf("window caps %v lack vsync", w.Capabilities())
	}

	if err := w.Refresh(); err != nil {
		t.Fatal(err)
	}
	if draws != 0 {
		t.Errorf("draws after Refresh = %d, want 0 until the frame", draws)
	}
	for i := 0; i < 3; i++ {
		if err := w.Refresh(); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.PendingFrames(); got != 1 {
		t.Errorf("PendingFrames = %d, want 1", got)
	}

	// The first frame draws and requests one more for the deferred redraws.
	c.FireFrames()
	dispatch(t, d)
	if draws != 1 {
		t.Errorf("draws after first frame = %d, want 1", draws)
	}
	if got := c.PendingFrames(); got != 1 {
		t.Errorf("PendingFrames after first frame = %d, want 1", got)
	}

	c.FireFrames()
	dispatch(t, d)
	if draws != 2 {
		t.Errorf("draws after second frame = %d, want 2", draws)
	}
	if got := c.PendingFrames(); got != 0 {
		t.Errorf("PendingFrames after second frame = %d, want 0", got)
	}
	if got := c.Stats().FrameRequests; got != 2 {
		t.Errorf("FrameRequests = %d, want 2", got)
	}
}

func TestRefreshWithoutVsync(t *testing.T) {
	f := headless.DefaultFeatures()
	f.FrameNotify = false
	d, c := newDisplay(t, headless.Options{Features: &f})
	draws := 0
	w := createWindow(t, d, WindowSettings{
		Width:    10,
		Height:   10,
		Listener: ListenerFuncs{OnDraw: func(*Window) { draws++ }},
	})
	for i := 0; i < 2; i++ {
		if err := w.Refresh(); err != nil {
			t.Fatal(err)
		}
	}
	if draws != 2 {
		t.Errorf("draws = %d, want 2", draws)
	}
	if got := c.Stats().FrameRequests; got != 0 {
		t.Errorf("FrameRequests = %d, want 0", got)
	}
}

func TestStaleFrameIgnored(t *testing.T) {
	d, c := newDisplay(t, headless.Options{})
	draws := 0
	w := createWindow(t, d, WindowSettings{
		Width:    10,
		Height:   10,
		Listener: ListenerFuncs{OnDraw: func(*Window) { draws++ }},
	})
	dispatch(t, d)
	draws = 0

	c.Inject(native.FrameEvent{Window: w.ID(), Token: 42})
	dispatch(t, d)
	if draws != 0 {
		t.Errorf("draws after unrequested frame = %d, want 0", draws)
	}

	if err := w.Refresh(); err != nil {
		t.Fatal(err)
	}
	c.Inject(native.FrameEvent{Window: w.ID(), Token: 42})
	dispatch(t, d)
	if draws != 0 {
		t.Errorf("draws after mismatched frame = %d, want 0", draws)
	}
	c.FireFrames()
	dispatch(t, d)
	if draws != 1 {
		t.Errorf("draws = %d, want 1", draws)
	}
}

func TestRequestFrameFailure(t *testing.T) {
	d, c := newDisplay(t, headless.Options{})
	w := createWindow(t, d, WindowSettings{Width: 10, Height: 10})
	c.FailNext(headless.OpRequestFrame, errors.New("no frames"))
	var rerr *ResourceError
	if err := w.Refresh(); !errors.As(err, &rerr) {
		t.Fatalf("Refresh: got %v, want a ResourceError", err)
	}
	if err := w.Refresh(); err != nil {
		t.Fatalf("Refresh after failure: %v", err)
	}
	if got := c.PendingFrames(); got != 1 {
		t.Errorf("PendingFrames = %d, want 1", got)
	}
}

func TestDestroyCancelsFrame(t *testing.T) {
	d, c := newDisplay(t, headless.Options{})
	w := createWindow(t, d, WindowSettings{Width: 10, Height: 10, Surface: SurfaceBuffer})
	if err := w.Refresh(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Buffer(); err != nil {
		t.Fatal(err)
	}
	if err := w.Destroy(); err != nil {
		t.Fatal(err)
	}
	st := c.Stats()
	if st.FrameCancels != 1 {
		t.Errorf("FrameCancels = %d, want 1", st.FrameCancels)
	}
	if st.Releases != st.Allocs || st.EndDraws != st.BeginDraws {
		t.Errorf("leaked native resources: %+v", st)
	}
	if _, err := w.Buffer(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Buffer after Destroy: got %v, want ErrDestroyed", err)
	}
}
