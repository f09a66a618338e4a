// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package arena implements a generational slot allocator. It gives callers
// stable integer handles to entries that remain valid across insertion and
// removal of unrelated entries, without the iterator-stable linked
// containers that the algorithms in this module were originally expressed
// against.
package arena

// Handle identifies a slot. The zero Handle never refers to a live entry
// (index 0 is reserved as a sentinel so zero values are recognizably
// invalid).
type Handle struct {
	Index      int32
	Generation uint32
}

// Valid reports whether h could possibly refer to a live entry. It does not
// consult any Arena, so it cannot by itself detect a handle whose slot has
// been freed and reused for a different entry.
func (h Handle) Valid() bool {
	return h.Index > 0
}

type slot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// Arena is a fixed-slot store of T with generational handles. The zero value
// is ready to use.
type Arena[T any] struct {
	slots    []slot[T]
	freeList []int32
	liveLen  int
}

// Insert stores value in a free (or freshly appended) slot and returns its
// handle.
func (a *Arena[T]) Insert(value T) Handle {
	var idx int32
	if n := len(a.freeList); n > 0 {
		idx = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
	} else {
		if len(a.slots) == 0 {
			// Reserve index 0 as the invalid sentinel.
			a.slots = append(a.slots, slot[T]{})
		}
		idx = int32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}
	s := &a.slots[idx]
	s.value = value
	s.live = true
	a.liveLen++
	return Handle{Index: idx, Generation: s.generation}
}

// Get returns the value stored at h and whether h refers to a live entry.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	if !a.valid(h) {
		var zero T
		return zero, false
	}
	return a.slots[h.Index].value, true
}

// MustGet returns the value stored at h, panicking if h is stale or unknown.
func (a *Arena[T]) MustGet(h Handle) T {
	v, ok := a.Get(h)
	if !ok {
		panic("arena: invalid handle")
	}
	return v
}

// Set overwrites the value stored at h. Panics if h is stale or unknown.
func (a *Arena[T]) Set(h Handle, value T) {
	if !a.valid(h) {
		panic("arena: invalid handle")
	}
	a.slots[h.Index].value = value
}

// Ptr returns a pointer to the value stored at h for in-place and/or atomic
// field access. The pointer is valid only until the next Insert, since
// growing the backing slice may relocate it. Panics if h is stale or
// unknown.
func (a *Arena[T]) Ptr(h Handle) *T {
	if !a.valid(h) {
		panic("arena: invalid handle")
	}
	return &a.slots[h.Index].value
}

// Remove frees the slot referred to by h, bumping its generation so any
// other outstanding handle into the same slot is invalidated. Panics if h is
// stale or unknown.
func (a *Arena[T]) Remove(h Handle) {
	if !a.valid(h) {
		panic("arena: invalid handle")
	}
	s := &a.slots[h.Index]
	var zero T
	s.value = zero
	s.live = false
	s.generation++
	a.freeList = append(a.freeList, h.Index)
	a.liveLen--
}

func (a *Arena[T]) valid(h Handle) bool {
	return h.Valid() && int(h.Index) < len(a.slots) && a.slots[h.Index].live && a.slots[h.Index].generation == h.Generation
}

// Len returns the number of live entries.
func (a *Arena[T]) Len() int {
	return a.liveLen
}

// Reserve pre-grows the arena so that the next n inserts do not need to grow
// the backing slice, so a Ptr obtained after Reserve stays valid across
// them. Reserve itself may relocate the backing slice, invalidating any Ptr
// obtained before the call.
func (a *Arena[T]) Reserve(n int) {
	need := n - len(a.freeList)
	if need <= 0 {
		return
	}
	if len(a.slots) == 0 {
		a.slots = append(a.slots, slot[T]{})
	}
	a.slots = append(a.slots, make([]slot[T], need)...)
	for i := len(a.slots) - need; i < len(a.slots); i++ {
		a.freeList = append(a.freeList, int32(i))
	}
}
