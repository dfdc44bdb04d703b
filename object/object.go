// Package object implements the reference-counted handle that every
// long-lived polymorphic kind in the core builds on: shapes,
// materials, emissive materials, lights, scenes, and top-level
// spectra/reflectors (spec.md §3 "Lifecycles", §4.1 "Object model").
//
// Per the design notes in spec.md §9, the C original's
// operation-table-plus-opaque-state pattern is realized here as a Go
// interface (the type parameter T, instantiated per kind by the
// shape/material/light/... packages) plus an optional destructor,
// rather than as a literal vtable struct — Go interfaces already give
// every kind both dynamic dispatch for the general case and the
// option of static dispatch for built-in lobes that skip the
// interface entirely.
package object

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/irisphysx/iris/internal/ierr"
)

// VTable carries the one piece of behavior an interface alone can't
// express: what to do when the last reference goes away. Free may be
// nil if T needs no cleanup beyond normal garbage collection.
type VTable[T any] struct {
	Free func(state T)
}

// Handle is a shared, reference-counted owner of a T. The zero value
// is not usable; construct one with Allocate.
type Handle[T any] struct {
	vtable  *VTable[T]
	state   T
	count   atomic.Int32
	debugID uuid.UUID
}

// Allocate creates a Handle with an initial reference count of one.
// It fails with an invalid-argument error if vtable is nil, matching
// spec.md §4.1's allocation failure modes (the Go realization has no
// separate size/alignment/state-blob arguments to validate, since T
// is a real Go value, not an opaque byte blob). Every Handle is
// stamped with a debug uuid at construction, for log correlation only
// (DebugID, never part of the hashing/equality contract).
func Allocate[T any](vtable *VTable[T], state T) (*Handle[T], error) {
	if vtable == nil {
		return nil, ierr.InvalidArg(0, "nil vtable")
	}
	h := &Handle[T]{vtable: vtable, state: state, debugID: uuid.New()}
	h.count.Store(1)
	return h, nil
}

// DebugID returns h's construction-time uuid, for log correlation
// only.
func DebugID[T any](h *Handle[T]) uuid.UUID {
	if h == nil {
		return uuid.UUID{}
	}
	return h.debugID
}

// Retain atomically increments h's reference count and returns h, so
// call sites can write `kept := object.Retain(borrowed)`. Retaining a
// nil Handle is a no-op and returns nil.
func Retain[T any](h *Handle[T]) *Handle[T] {
	if h == nil {
		return nil
	}
	h.count.Add(1)
	return h
}

// Release atomically decrements h's reference count. The caller must
// not use h again afterward unless it still holds another reference.
// When the count reaches zero, the vtable's Free callback (if any)
// runs exactly once; the acquire-release ordering of atomic.Int32
// guarantees Free observes the writes of every prior user of h.
// Releasing a nil Handle is a no-op.
func Release[T any](h *Handle[T]) {
	if h == nil {
		return
	}
	if h.count.Add(-1) == 0 && h.vtable != nil && h.vtable.Free != nil {
		h.vtable.Free(h.state)
	}
}

// State returns the wrapped value. It does not affect the reference
// count; the caller must already hold a reference to h.
func State[T any](h *Handle[T]) T { return h.state }

// RefCount returns h's current reference count, for tests and
// diagnostics only — production code must never branch on it.
func RefCount[T any](h *Handle[T]) int32 {
	if h == nil {
		return 0
	}
	return h.count.Load()
}
