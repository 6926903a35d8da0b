// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x11driver

import (
	"sort"
	"sync"
	"time"

	"github.com/swa-go/swa/native"
)

// frameClock answers frame requests on the next tick of a fixed-rate clock.
// Ticks are aligned to the clock's start time, so windows requesting frames
// at different moments are notified together.
type frameClock struct {
	interval time.Duration
	start    time.Time
	send     func(native.FrameEvent)
	now      func() time.Time

	mu      sync.Mutex
	next    native.FrameToken
	pending map[native.FrameToken]native.WindowID
	timer   *time.Timer
	stopped bool
}

func newFrameClock(interval time.Duration, send func(native.FrameEvent)) *frameClock {
	if interval <= 0 {
		interval = time.Second / defaultRefreshRate
	}
	return &frameClock{
		interval: interval,
		start:    time.Now(),
		send:     send,
		now:      time.Now,
		pending:  map[native.FrameToken]native.WindowID{},
	}
}

// untilTick returns the time from t to the next tick strictly after t.
func (fc *frameClock) untilTick(t time.Time) time.Duration {
	elapsed := t.Sub(fc.start)
	if elapsed < 0 {
		return -elapsed
	}
	return fc.interval - elapsed%fc.interval
}

func (fc *frameClock) request(id native.WindowID) native.FrameToken {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.next++
	fc.pending[fc.next] = id
	if fc.timer == nil && !fc.stopped {
		fc.timer = time.AfterFunc(fc.untilTick(fc.now()), fc.fire)
	}
	return fc.next
}

func (fc *frameClock) cancel(tok native.FrameToken) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	delete(fc.pending, tok)
}

// fire delivers every pending request, oldest first.
func (fc *frameClock) fire() {
	fc.mu.Lock()
	fc.timer = nil
	if fc.stopped {
		fc.mu.Unlock()
		return
	}
	evs := make([]native.FrameEvent, 0, len(fc.pending))
	for tok, id := range fc.pending {
		evs = append(evs, native.FrameEvent{Window: id, Token: tok})
	}
	clear(fc.pending)
	fc.mu.Unlock()

	sort.Slice(evs, func(i, j int) bool { return evs[i].Token < evs[j].Token })
	for _, ev := range evs {
		fc.send(ev)
	}
}

func (fc *frameClock) stop() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.stopped = true
	if fc.timer != nil {
		fc.timer.Stop()
		fc.timer = nil
	}
}
