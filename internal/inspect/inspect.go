// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inspect serves a debugging view of a display over HTTP.
//
// A Display may only be used on its dispatch goroutine, so the server never
// touches it. The dispatching goroutine publishes snapshots and event
// records to a Hub, and the server reads from the Hub:
//
//	GET /api/health
//	GET /api/caps
//	GET /api/windows
//	GET /api/windows/{id}
//	GET /api/events    (websocket stream of Records)
package inspect

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/swa-go/swa/screen"
)

// Snapshot is the state of a display at one point in time.
type Snapshot struct {
	Backend string       `json:"backend"`
	Caps    []string     `json:"caps"`
	Windows []WindowInfo `json:"windows"`
	Taken   time.Time    `json:"taken"`
}

type WindowInfo struct {
	ID      uint64   `json:"id"`
	Width   uint32   `json:"width"`
	Height  uint32   `json:"height"`
	State   string   `json:"state"`
	Surface string   `json:"surface"`
	Caps    []string `json:"caps"`
}

// Record describes one listener callback.
type Record struct {
	Window uint64    `json:"window"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail,omitempty"`
	Time   time.Time `json:"time"`
}

// Capture snapshots d. It must be called on d's dispatch goroutine.
func Capture(d *screen.Display, backend string) Snapshot {
	s := Snapshot{
		Backend: backend,
		Caps:    nonNil(d.Capabilities().Names()),
		Windows: []WindowInfo{},
		Taken:   time.Now(),
	}
	d.ForEachWindow(func(w *screen.Window) {
		width, height := w.Size()
		s.Windows = append(s.Windows, WindowInfo{
			ID:      uint64(w.ID()),
			Width:   width,
			Height:  height,
			State:   w.State().String(),
			Surface: w.Surface().String(),
			Caps:    nonNil(w.Capabilities().Names()),
		})
	})
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// subscriberBuffer is how many records a slow websocket client may lag
// behind before records are dropped for it.
const subscriberBuffer = 64

// Hub holds the latest snapshot and fans out records. It is safe for
// concurrent use.
type Hub struct {
	mu      sync.Mutex
	snap    Snapshot
	subs    map[chan Record]struct{}
	dropped int
}

func NewHub() *Hub {
	return &Hub{
		snap: Snapshot{Caps: []string{}, Windows: []WindowInfo{}},
		subs: map[chan Record]struct{}{},
	}
}

// Publish replaces the snapshot.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	h.snap = s
	h.mu.Unlock()
}

// Snapshot returns the last published snapshot.
func (h *Hub) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snap
}

// Record sends r to every subscriber without blocking.
func (h *Hub) Record(r Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- r:
		default:
			h.dropped++
		}
	}
}

// Dropped returns how many records were not delivered to slow subscribers.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

func (h *Hub) subscribe() chan Record {
	ch := make(chan Record, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan Record) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// Listener returns a Listener that records every callback to h before
// passing it to next.
func (h *Hub) Listener(next screen.Listener) screen.Listener {
	if next == nil {
		next = screen.ListenerFuncs{}
	}
	return &recorder{h: h, next: next}
}

type recorder struct {
	h    *Hub
	next screen.Listener
}

func (r *recorder) record(w *screen.Window, kind, detail string) {
	r.h.Record(Record{Window: uint64(w.ID()), Kind: kind, Detail: detail, Time: time.Now()})
}

func (r *recorder) Draw(w *screen.Window) {
	r.record(w, "draw", "")
	r.next.Draw(w)
}

func (r *recorder) Resize(w *screen.Window, width, height uint32) {
	r.record(w, "resize", sizeString(width, height))
	r.next.Resize(w, width, height)
}

func (r *recorder) Close(w *screen.Window) {
	r.record(w, "close", "")
	r.next.Close(w)
}

func (r *recorder) State(w *screen.Window, s screen.State) {
	r.record(w, "state", s.String())
	r.next.State(w, s)
}

func (r *recorder) Focus(w *screen.Window, focused bool) {
	detail := "out"
	if focused {
		detail = "in"
	}
	r.record(w, "focus", detail)
	r.next.Focus(w, focused)
}

func (r *recorder) Key(w *screen.Window, e key.Event) {
	r.record(w, "key", e.String())
	r.next.Key(w, e)
}

func (r *recorder) Mouse(w *screen.Window, e mouse.Event) {
	// Motion is too frequent to be useful in the stream.
	if e.Button != mouse.ButtonNone || e.Direction != mouse.DirNone {
		r.record(w, "mouse", fmt.Sprintf("button %d %v at %.0f,%.0f", e.Button, e.Direction, e.X, e.Y))
	}
	r.next.Mouse(w, e)
}

func sizeString(width, height uint32) string {
	return fmt.Sprintf("%dx%d", width, height)
}
