// Package arena implements the resettable dynamic allocator of
// spec.md §4.2: a free-list-backed pool that hands out aligned,
// multi-section blocks and can be reset to reuse all of its memory at
// once, without ever returning memory to the system until Destroy.
//
// Arena is the byte-oriented half of the design: it backs allocations
// that are plain data with no Go pointers inside them (texture
// coordinate blobs, hit-test scratch records). Allocations that must
// hold pointers or interface values (composite spectra/reflectors,
// BSDFs) use Pool instead (pool.go), which keeps the same
// cursor/reset discipline but stays inside Go's type system so the
// garbage collector can trace references correctly; the collector
// does not scan a []byte for pointers, so a byte-addressed arena
// cannot safely hold those.
package arena

import (
	"unsafe"

	"github.com/irisphysx/iris/internal/ierr"
)

// Layout describes the primary-header and optional data regions of a
// single allocation, per spec.md §4.2 ("every allocation supports one
// primary header region and up to one optional data region").
type Layout struct {
	Size  int
	Align int

	// DataSize/DataAlign describe the optional secondary region. A
	// DataSize of 0 means no secondary region is requested.
	DataSize  int
	DataAlign int
}

func (l Layout) validate() error {
	if l.Size <= 0 {
		return ierr.InvalidArg(0, "size must be positive")
	}
	if !isPow2(l.Align) {
		return ierr.InvalidCombination(0, "alignment is not a power of two")
	}
	if l.Size%l.Align != 0 {
		return ierr.InvalidCombination(0, "size is not a multiple of alignment")
	}
	if l.DataSize < 0 {
		return ierr.InvalidArg(1, "data size must be non-negative")
	}
	if l.DataSize > 0 {
		if !isPow2(l.DataAlign) {
			return ierr.InvalidCombination(1, "data alignment is not a power of two")
		}
		if l.DataSize%l.DataAlign != 0 {
			return ierr.InvalidCombination(1, "data size is not a multiple of data alignment")
		}
	}
	return nil
}

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }

// total returns the worst-case byte count needed to place both
// regions left to right with minimal padding, and the alignment the
// backing block itself must satisfy.
func (l Layout) total() (size int, align int) {
	align = l.Align
	if l.DataAlign > align {
		align = l.DataAlign
	}
	off := l.Size
	if l.DataSize > 0 {
		off = alignUp(off, l.DataAlign)
		off += l.DataSize
	}
	return off, align
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// block is one heterogeneous, contiguously-backed allocation.
type block struct {
	mem   []byte
	align int
}

// Arena is a resettable pool of byte blocks.
//
// The zero value is a ready-to-use, empty Arena.
type Arena struct {
	blocks []block
	cursor int
}

// Allocation is the result of Allocate: independent views into one
// contiguous block, per the layout requested.
type Allocation struct {
	Primary []byte
	Data    []byte // nil if no data region was requested

	idx int // block index, used by FreeAllExcept
}

// Allocate hands out a block satisfying layout, advancing the
// internal cursor. If the cursor already points past the end of the
// block sequence, a fresh block is appended. Otherwise, if the
// current block is large enough it is reused in place; otherwise it
// is grown (the realloc path: prior contents are NOT preserved,
// matching spec.md §4.2).
func (a *Arena) Allocate(l Layout) (Allocation, error) {
	if err := l.validate(); err != nil {
		return Allocation{}, err
	}
	need, align := l.total()

	var b *block
	idx := a.cursor
	if idx < len(a.blocks) {
		b = &a.blocks[idx]
		if len(b.mem) < need || b.align < align {
			b.mem = alignedBytes(need, align)
			b.align = align
		}
	} else {
		a.blocks = append(a.blocks, block{
			mem:   alignedBytes(need, align),
			align: align,
		})
		b = &a.blocks[idx]
	}
	a.cursor++

	alloc := Allocation{idx: idx}
	alloc.Primary = b.mem[:l.Size]
	if l.DataSize > 0 {
		off := alignUp(l.Size, l.DataAlign)
		alloc.Data = b.mem[off : off+l.DataSize]
	}
	return alloc, nil
}

// alignedBytes returns a zeroed slice of length need whose first byte
// sits at an address that is a multiple of align. It over-allocates
// by align-1 bytes and slices forward to the first aligned address;
// Go's heap does not move objects, so the address stays aligned for
// the slice's lifetime.
func alignedBytes(need, align int) []byte {
	buf := make([]byte, need+align-1)
	addr := int(uintptr(unsafe.Pointer(&buf[0])))
	off := alignUp(addr, align) - addr
	return buf[off : off+need : off+need]
}

// FreeAll resets the cursor to the head of the block sequence. No
// memory is returned to the system; the next Allocate call reuses the
// first block.
func (a *Arena) FreeAll() { a.cursor = 0 }

// FreeAllExcept moves the block identified by tok to the head of the
// sequence, preserving its contents byte-for-byte, then resets the
// cursor as FreeAll does. The caller uses this to keep one specific
// allocation alive across a reset.
func (a *Arena) FreeAllExcept(tok Allocation) {
	if tok.idx > 0 && tok.idx < len(a.blocks) {
		a.blocks[0], a.blocks[tok.idx] = a.blocks[tok.idx], a.blocks[0]
	}
	a.cursor = 0
}

// Destroy releases every block to the system. The Arena is left
// empty and ready for reuse, equivalent to a zero value.
func (a *Arena) Destroy() {
	a.blocks = nil
	a.cursor = 0
}

// Len reports the number of blocks currently backing the arena
// (allocated so far across its lifetime, including ones behind the
// cursor after a reset). Exposed for tests exercising the replay
// property in spec.md §8.
func (a *Arena) Len() int { return len(a.blocks) }
