package rng

import "testing"

func TestDefaultRangeAndDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		x := a.Float1D()
		y := b.Float1D()
		if x != y {
			t.Fatalf("same seed diverged at %d: %v != %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("Float1D out of [0,1): %v", x)
		}
	}
	u, v := a.Float2D()
	if u < 0 || u >= 1 || v < 0 || v >= 1 {
		t.Fatalf("Float2D out of [0,1): %v, %v", u, v)
	}
}
