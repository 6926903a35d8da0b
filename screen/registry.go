// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package screen

import "github.com/swa-go/swa/native"

const noSlot = -1

// registry holds the live windows of a Display. Windows live in an arena of
// slots linked by index into an insertion-ordered list, newest first. Freed
// slots are recycled through a free list.
type registry struct {
	slots []slot
	free  []int32
	head  int32
	byID  map[native.WindowID]int32
	n     int

	// cursors holds the next slot of each active forEach, innermost last.
	// remove advances a cursor past the slot it unlinks.
	cursors []int32
}

type slot struct {
	w          *Window
	prev, next int32
}

func newRegistry() registry {
	return registry{
		head: noSlot,
		byID: map[native.WindowID]int32{},
	}
}

// insert adds w at the head of the list and records its slot in w.
func (r *registry) insert(w *Window) {
	var i int32
	if n := len(r.free); n > 0 {
		i = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		i = int32(len(r.slots) - 1)
	}
	s := &r.slots[i]
	s.w = w
	s.prev = noSlot
	s.next = r.head
	if r.head != noSlot {
		r.slots[r.head].prev = i
	}
	r.head = i
	r.byID[w.id] = i
	r.n++
	w.slot = i
}

// remove unlinks w. It is a no-op if w is not registered.
func (r *registry) remove(w *Window) {
	i := w.slot
	if i == noSlot || r.slots[i].w != w {
		return
	}
	s := &r.slots[i]
	if s.prev != noSlot {
		r.slots[s.prev].next = s.next
	} else {
		r.head = s.next
	}
	if s.next != noSlot {
		r.slots[s.next].prev = s.prev
	}
	if r.byID[w.id] == i {
		delete(r.byID, w.id)
	}
	for k, c := range r.cursors {
		if c == i {
			r.cursors[k] = s.next
		}
	}
	*s = slot{prev: noSlot, next: noSlot}
	r.free = append(r.free, i)
	r.n--
	w.slot = noSlot
}

func (r *registry) lookup(id native.WindowID) *Window {
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	return r.slots[i].w
}

func (r *registry) len() int { return r.n }

// forEach calls fn for every registered window, newest first. fn may remove
// any window, including the one it is called with; removed windows are not
// visited afterwards. Windows inserted by fn are not visited.
func (r *registry) forEach(fn func(w *Window)) {
	k := len(r.cursors)
	r.cursors = append(r.cursors, noSlot)
	defer func() { r.cursors = r.cursors[:k] }()
	for i := r.head; i != noSlot; i = r.cursors[k] {
		r.cursors[k] = r.slots[i].next
		fn(r.slots[i].w)
	}
}
