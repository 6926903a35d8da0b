// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/swa-go/swa/native"
)

func ids(r *registry) []native.WindowID {
	var got []native.WindowID
	r.forEach(func(w *Window) { got = append(got, w.id) })
	return got
}

func TestRegistryInsertRemove(t *testing.T) {
	r := newRegistry()
	ws := make([]*Window, 4)
	for i := range ws {
		ws[i] = &Window{id: native.WindowID(i + 1), slot: noSlot}
		r.insert(ws[i])
	}
	if diff := cmp.Diff([]native.WindowID{4, 3, 2, 1}, ids(&r)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	r.remove(ws[2])
	r.remove(ws[0])
	r.remove(ws[0]) // no-op
	if got, want := r.len(), 2; got != want {
		t.Errorf("len: got %d, want %d", got, want)
	}
	if diff := cmp.Diff([]native.WindowID{4, 2}, ids(&r)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if w := r.lookup(3); w != nil {
		t.Errorf("lookup(3): got window %d, want nil", w.id)
	}
	if w := r.lookup(4); w != ws[3] {
		t.Errorf("lookup(4): got %v, want window 4", w)
	}

	// Freed slots are reused.
	w5 := &Window{id: 5, slot: noSlot}
	r.insert(w5)
	if got, want := len(r.slots), 4; got != want {
		t.Errorf("slots: got %d, want %d", got, want)
	}
	if diff := cmp.Diff([]native.WindowID{5, 4, 2}, ids(&r)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryRemoveDuringIteration(t *testing.T) {
	r := newRegistry()
	for i := 1; i <= 3; i++ {
		r.insert(&Window{id: native.WindowID(i), slot: noSlot})
	}
	var visited []native.WindowID
	r.forEach(func(w *Window) {
		visited = append(visited, w.id)
		r.remove(w)
	})
	if diff := cmp.Diff([]native.WindowID{3, 2, 1}, visited); diff != "" {
		t.Errorf("visited mismatch (-want +got):\n%s", diff)
	}
	if r.len() != 0 || r.head != noSlot {
		t.Errorf("registry not empty: len %d head %d", r.len(), r.head)
	}
}

func TestRegistryRemoveOtherDuringIteration(t *testing.T) {
	for _, tt := range []struct {
		name    string
		at      native.WindowID // window whose callback removes
		remove  []int           // indices into ws
		visited []native.WindowID
	}{
		{"next", 4, []int{2}, []native.WindowID{4, 2, 1}},
		{"next two", 4, []int{2, 1}, []native.WindowID{4, 1}},
		{"already visited", 2, []int{3}, []native.WindowID{4, 3, 2, 1}},
		{"self and next", 3, []int{2, 1}, []native.WindowID{4, 3, 1}},
		{"all remaining", 4, []int{2, 1, 0}, []native.WindowID{4}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry()
			ws := make([]*Window, 4)
			for i := range ws {
				ws[i] = &Window{id: native.WindowID(i + 1), slot: noSlot}
				r.insert(ws[i])
			}
			var visited []native.WindowID
			r.forEach(func(w *Window) {
				visited = append(visited, w.id)
				if w.id == tt.at {
					for _, i := range tt.remove {
						r.remove(ws[i])
					}
				}
			})
			if diff := cmp.Diff(tt.visited, visited); diff != "" {
				t.Errorf("visited mismatch (-want +got):\n%s", diff)
			}
			if got, want := r.len(), 4-len(tt.remove); got != want {
				t.Errorf("len: got %d, want %d", got, want)
			}
			if len(r.cursors) != 0 {
				t.Errorf("cursors left after iteration: %v", r.cursors)
			}
		})
	}
}

func TestRegistryNestedIteration(t *testing.T) {
	r := newRegistry()
	ws := make([]*Window, 3)
	for i := range ws {
		ws[i] = &Window{id: native.WindowID(i + 1), slot: noSlot}
		r.insert(ws[i])
	}
	var outer []native.WindowID
	r.forEach(func(w *Window) {
		outer = append(outer, w.id)
		if w.id == 3 {
			// The inner pass removes window 2, which the outer pass is
			// about to visit.
			r.forEach(func(w *Window) {
				if w.id == 2 {
					r.remove(w)
				}
			})
		}
	})
	if diff := cmp.Diff([]native.WindowID{3, 1}, outer); diff != "" {
		t.Errorf("outer visited mismatch (-want +got):\n%s", diff)
	}
}
