// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspect

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gorilla/websocket"

	"github.com/swa-go/swa/driver/headless"
	"github.com/swa-go/swa/screen"
)

func newDisplay(t *testing.T) *screen.Display {
	t.Helper()
	d, err := screen.New(headless.Open(headless.Options{Width: 32, Height: 16}), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Destroy() })
	return d
}

func TestCaptureAndListener(t *testing.T) {
	d := newDisplay(t)
	hub := NewHub()
	ch := hub.subscribe()
	defer hub.unsubscribe(ch)

	draws := 0
	w, err := d.CreateWindow(screen.WindowSettings{
		Width:    screen.DefaultSize,
		Height:   screen.DefaultSize,
		Surface:  screen.SurfaceBuffer,
		Listener: hub.Listener(screen.ListenerFuncs{OnDraw: func(*screen.Window) { draws++ }}),
	})
	if err != nil {
		t.Fatal(err)
	}
	w.SetState(screen.StateMaximized)
	d.Dispatch(false)

	if draws == 0 {
		t.Error("wrapped listener not called")
	}
	var kinds []string
	for len(ch) > 0 {
		rec := <-ch
		if rec.Window != uint64(w.ID()) {
			t.Errorf("record for window %d, want %d", rec.Window, w.ID())
		}
		kinds = append(kinds, rec.Kind)
	}
	if !cmp.Equal(kinds, []string{"draw", "state"}, cmpopts.EquateEmpty()) {
		t.Errorf("recorded kinds %v, want [draw state]", kinds)
	}

	snap := Capture(d, "headless")
	want := []WindowInfo{{
		ID:      uint64(w.ID()),
		Width:   32,
		Height:  16,
		State:   "maximized",
		Surface: "buffer",
		Caps:    w.Capabilities().Names(),
	}}
	if diff := cmp.Diff(want, snap.Windows); diff != "" {
		t.Errorf("snapshot windows (-want +got):\n%s", diff)
	}
	if snap.Backend != "headless" || len(snap.Caps) == 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func get(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK && v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func TestServer(t *testing.T) {
	hub := NewHub()
	hub.Publish(Snapshot{
		Backend: "headless",
		Caps:    []string{"buffer", "vsync"},
		Windows: []WindowInfo{{ID: 3, Width: 10, Height: 20, State: "normal", Surface: "buffer", Caps: []string{"vsync"}}},
	})
	srv := httptest.NewServer(NewServer(hub, logr.Discard()))
	defer srv.Close()

	var caps struct {
		Backend string   `json:"backend"`
		Caps    []string `json:"caps"`
	}
	if code := get(t, srv.URL+"/api/caps", &caps); code != http.StatusOK {
		t.Fatalf("GET /api/caps: %d", code)
	}
	if caps.Backend != "headless" || !cmp.Equal(caps.Caps, []string{"buffer", "vsync"}) {
		t.Errorf("caps = %+v", caps)
	}

	var windows []WindowInfo
	if code := get(t, srv.URL+"/api/windows", &windows); code != http.StatusOK {
		t.Fatalf("GET /api/windows: %d", code)
	}
	if len(windows) != 1 || windows[0].ID != 3 {
		t.Errorf("windows = %+v", windows)
	}

	var one WindowInfo
	if code := get(t, srv.URL+"/api/windows/3", &one); code != http.StatusOK {
		t.Fatalf("GET /api/windows/3: %d", code)
	}
	if one.Height != 20 {
		t.Errorf("window = %+v", one)
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/windows/4", http.StatusNotFound},
		{"/api/windows/x", http.StatusNotFound},
		{"/api/health", http.StatusOK},
	}
	for _, tt := range tests {
		if code := get(t, srv.URL+tt.path, nil); code != tt.want {
			t.Errorf("GET %s: %d, want %d", tt.path, code, tt.want)
		}
	}

	resp, err := http.Post(srv.URL+"/api/caps", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/caps: %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}

func (h *Hub) numSubscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func TestEventStream(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(NewServer(hub, logr.Discard()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for hub.numSubscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("server never subscribed")
		}
		time.Sleep(time.Millisecond)
	}

	for i := 0; i < 3; i++ {
		hub.Record(Record{Window: 1, Kind: "draw", Detail: fmt.Sprint(i)})
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for i := 0; i < 3; i++ {
		var rec Record
		if err := conn.ReadJSON(&rec); err != nil {
			t.Fatal(err)
		}
		if rec.Kind != "draw" || rec.Detail != fmt.Sprint(i) {
			t.Errorf("record %d = %+v", i, rec)
		}
	}

	conn.Close()
	for hub.numSubscribers() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("server kept the subscription after the client left")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRecordDropsForSlowSubscriber(t *testing.T) {
	hub := NewHub()
	ch := hub.subscribe()
	defer hub.unsubscribe(ch)
	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Record(Record{Kind: "draw"})
	}
	if got := hub.Dropped(); got != 5 {
		t.Errorf("Dropped = %d, want 5", got)
	}
}
