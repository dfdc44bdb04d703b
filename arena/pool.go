package arena

// Pool is a resettable, typed allocator: the same cursor/block
// discipline as Arena, but backed by a slice of T rather than bytes,
// so values containing pointers or interfaces (composite spectra,
// BSDFs) stay visible to the garbage collector. See the package
// doc comment for why this split exists.
//
// The zero value is a ready-to-use, empty Pool.
type Pool[T any] struct {
	slab   []T
	cursor int
}

// New returns a pointer to a fresh, zero-valued T. Like Arena.Allocate,
// it reuses space behind the cursor when available and only grows the
// backing slice when the cursor has caught up to its end. Pointers
// returned by New remain valid for the lifetime of the process even
// after the slab grows (Go never moves or frees memory that is still
// reachable through a live pointer) — only Reset semantically
// invalidates them, by allowing a later New call to overwrite the
// same slot.
func (p *Pool[T]) New() *T {
	if p.cursor < len(p.slab) {
		v := &p.slab[p.cursor]
		p.cursor++
		var zero T
		*v = zero
		return v
	}
	p.slab = append(p.slab, *new(T))
	v := &p.slab[len(p.slab)-1]
	p.cursor = len(p.slab)
	return v
}

// Reset moves the cursor back to the head, reusing the whole backing
// slice for the next round of New calls.
func (p *Pool[T]) Reset() { p.cursor = 0 }

// Len reports how many T values the pool has backing storage for,
// independent of the cursor position.
func (p *Pool[T]) Len() int { return len(p.slab) }
