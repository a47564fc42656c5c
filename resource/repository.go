// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"
	"iter"
)

// ID is an opaque handle to a value of type T stored in a Repository.
//
// IDs compare and hash by slot index only. The type parameter carries no
// runtime payload.
type ID[T any] struct {
	index int
}

// NewID returns the identifier for slot index i.
func NewID[T any](i int) ID[T] {
	return ID[T]{index: i}
}

// Index returns the slot index of the identifier.
func (id ID[T]) Index() int {
	return id.index
}

// String implements fmt.Stringer.
func (id ID[T]) String() string {
	return fmt.Sprintf("ID(%d)", id.index)
}

// slot is one entry of a Repository. An empty slot has occupied == false.
type slot[T any] struct {
	value      T
	occupied   bool
	generation uint64
}

// Repository is an ordered slot array of values with per-slot generations.
//
// The zero value is an empty repository ready for use.
type Repository[T any] struct {
	slots []slot[T]
}

// NewRepository returns an empty repository.
func NewRepository[T any]() *Repository[T] {
	return &Repository[T]{}
}

// Add stores value and returns its identifier.
//
// With a nil id the value is appended at the next index. Otherwise it is
// written to that exact slot, growing the array with empty slots as needed.
// Either way the slot's generation is incremented, so a freshly appended
// value has generation 1.
func (r *Repository[T]) Add(value T, id *ID[T]) ID[T] {
	index := len(r.slots)
	if id != nil {
		index = id.index
	}
	if index < 0 {
		panic(fmt.Sprintf("resource: negative slot index %d", index))
	}
	if index >= len(r.slots) {
		r.slots = append(r.slots, make([]slot[T], index+1-len(r.slots))...)
	}

	s := &r.slots[index]
	s.value = value
	s.occupied = true
	s.generation++

	return ID[T]{index: index}
}

// Get returns the value stored at id. The boolean is false when the slot is
// empty or out of range.
func (r *Repository[T]) Get(id ID[T]) (T, bool) {
	if !r.inRange(id) || !r.slots[id.index].occupied {
		var zero T
		return zero, false
	}
	return r.slots[id.index].value, true
}

// GetMut returns a pointer to the value stored at id, or nil when the slot is
// empty or out of range. The pointer is invalidated by the next Add that grows
// the repository.
func (r *Repository[T]) GetMut(id ID[T]) *T {
	if !r.inRange(id) || !r.slots[id.index].occupied {
		return nil
	}
	return &r.slots[id.index].value
}

// MustGet returns the value stored at id and panics if there is none.
//
// Use it only where the caller has already established that the resource
// exists. A panic here means the caller's bookkeeping is wrong.
func (r *Repository[T]) MustGet(id ID[T]) T {
	v, ok := r.Get(id)
	if !ok {
		panic(fmt.Sprintf("resource: no value at %v (repository has %d slots)", id, len(r.slots)))
	}
	return v
}

// Generation returns the number of writes made to the slot at id.
// It is 0 for a slot that was never written.
func (r *Repository[T]) Generation(id ID[T]) uint64 {
	if !r.inRange(id) {
		return 0
	}
	return r.slots[id.index].generation
}

// Len returns the number of slots, including empty ones.
func (r *Repository[T]) Len() int {
	return len(r.slots)
}

// All iterates over the occupied slots in index order.
func (r *Repository[T]) All() iter.Seq2[ID[T], T] {
	return func(yield func(ID[T], T) bool) {
		for i := range r.slots {
			if !r.slots[i].occupied {
				continue
			}
			if !yield(ID[T]{index: i}, r.slots[i].value) {
				return
			}
		}
	}
}

// Clear empties every slot. Slot count and generations are kept.
func (r *Repository[T]) Clear() {
	for i := range r.slots {
		var zero T
		r.slots[i].value = zero
		r.slots[i].occupied = false
	}
}

func (r *Repository[T]) inRange(id ID[T]) bool {
	return id.index >= 0 && id.index < len(r.slots)
}
