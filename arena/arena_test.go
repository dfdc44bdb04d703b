package arena

import (
	"testing"
	"unsafe"
)

func TestAllocateAlignment(t *testing.T) {
	var a Arena
	alloc, err := a.Allocate(Layout{Size: 16, Align: 16, DataSize: 8, DataAlign: 8})
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if len(alloc.Primary) != 16 {
		t.Fatalf("Primary len = %d, want 16", len(alloc.Primary))
	}
	if len(alloc.Data) != 8 {
		t.Fatalf("Data len = %d, want 8", len(alloc.Data))
	}
	if p := uintptr(unsafe.Pointer(&alloc.Primary[0])); p%16 != 0 {
		t.Fatalf("Primary at %#x, want 16-byte aligned", p)
	}
	if p := uintptr(unsafe.Pointer(&alloc.Data[0])); p%8 != 0 {
		t.Fatalf("Data at %#x, want 8-byte aligned", p)
	}
}

func TestInvalidLayout(t *testing.T) {
	var a Arena
	cases := []Layout{
		{Size: 0, Align: 8},
		{Size: 8, Align: 3},
		{Size: 10, Align: 8},
		{Size: 8, Align: 8, DataSize: 3, DataAlign: 8},
	}
	for i, l := range cases {
		if _, err := a.Allocate(l); err == nil {
			t.Fatalf("case %d: expected error for layout %+v", i, l)
		}
	}
}

func TestFreeAllReplay(t *testing.T) {
	var a Arena
	const n = 2000
	for i := 0; i < n; i++ {
		if _, err := a.Allocate(Layout{Size: 32, Align: 16}); err != nil {
			t.Fatalf("allocate %d: %v", i, err)
		}
	}
	blocksAfterFirstPass := a.Len()

	a.FreeAll()

	for i := 0; i < n; i++ {
		if _, err := a.Allocate(Layout{Size: 32, Align: 16}); err != nil {
			t.Fatalf("replay allocate %d: %v", i, err)
		}
	}
	if a.Len() != blocksAfterFirstPass {
		t.Fatalf("replay grew block count: %d -> %d", blocksAfterFirstPass, a.Len())
	}
}

func TestFreeAllExceptPreservesContents(t *testing.T) {
	var a Arena
	first, err := a.Allocate(Layout{Size: 8, Align: 8})
	if err != nil {
		t.Fatal(err)
	}
	copy(first.Primary, []byte("sentinl!"))

	for i := 0; i < 10; i++ {
		if _, err := a.Allocate(Layout{Size: 8, Align: 8}); err != nil {
			t.Fatal(err)
		}
	}

	a.FreeAllExcept(first)

	next, err := a.Allocate(Layout{Size: 8, Align: 8})
	if err != nil {
		t.Fatal(err)
	}
	if string(next.Primary) != "sentinl!" {
		t.Fatalf("FreeAllExcept did not preserve contents: got %q", next.Primary)
	}
}

func TestPoolReplay(t *testing.T) {
	type payload struct {
		n    int
		next *payload
	}
	var p Pool[payload]
	const n = 500
	for i := 0; i < n; i++ {
		v := p.New()
		v.n = i
	}
	if p.Len() != n {
		t.Fatalf("Len() = %d, want %d", p.Len(), n)
	}
	p.Reset()
	for i := 0; i < n; i++ {
		v := p.New()
		if v.n != 0 {
			t.Fatalf("New() after Reset did not zero slot %d: got %d", i, v.n)
		}
		v.n = i
	}
	if p.Len() != n {
		t.Fatalf("Reset grew backing storage: Len() = %d, want %d", p.Len(), n)
	}
}
