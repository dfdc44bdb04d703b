package spectrum

import (
	"testing"

	"github.com/irisphysx/iris/reflector"
)

const testWavelength = 550

func TestAddIdentity(t *testing.T) {
	var c Compositor
	s := Uniform(3)
	if got := c.Add(s, nil).Sample(testWavelength); got != 3 {
		t.Fatalf("Add(s, nil) = %v, want 3", got)
	}
	if got := c.Add(nil, s).Sample(testWavelength); got != 3 {
		t.Fatalf("Add(nil, s) = %v, want 3", got)
	}
}

func TestAttenuate(t *testing.T) {
	var c Compositor
	s := Uniform(5)
	if got := c.Attenuate(s, 0); got != nil {
		t.Fatalf("Attenuate(s, 0) = %v, want nil", got)
	}
	if got := c.Attenuate(s, 1).Sample(testWavelength); got != 5 {
		t.Fatalf("Attenuate(s, 1) = %v, want 5", got)
	}
	if got := c.Attenuate(s, 2).Sample(testWavelength); got != 10 {
		t.Fatalf("Attenuate(s, 2) = %v, want 10", got)
	}
}

func TestAttenuatedAddMatchesFusedDefinition(t *testing.T) {
	var c Compositor
	add, att := Uniform(2), Uniform(3)
	k := float32(4)
	got := c.AttenuatedAdd(add, att, k).Sample(testWavelength)
	want := float32(add) + k*float32(att)
	if got != want {
		t.Fatalf("AttenuatedAdd = %v, want %v", got, want)
	}
}

func TestReflect(t *testing.T) {
	var c Compositor
	s := Uniform(4)
	r := reflector.Uniform(0.5)
	got := c.Reflect(s, r).Sample(testWavelength)
	if want := float32(4) * 0.5; got != want {
		t.Fatalf("Reflect = %v, want %v", got, want)
	}
}

func TestAttenuatedReflectMatchesFusedDefinition(t *testing.T) {
	var c Compositor
	s := Uniform(4)
	r := reflector.Uniform(0.5)
	k := float32(2)
	got := c.AttenuatedReflect(s, r, k).Sample(testWavelength)
	want := k * float32(s) * float32(r.Reflectance(testWavelength))
	if got != want {
		t.Fatalf("AttenuatedReflect = %v, want %v", got, want)
	}
}

func TestCompositesAreNonNegative(t *testing.T) {
	var c Compositor
	s0, s1 := Uniform(1), Uniform(2)
	r := reflector.Uniform(0.3)
	outputs := []Spectrum{
		c.Add(s0, s1),
		c.Attenuate(s0, 3),
		c.AttenuatedAdd(s0, s1, 5),
		c.Reflect(s0, r),
		c.AttenuatedReflect(s0, r, 7),
	}
	for i, o := range outputs {
		if v := o.Sample(testWavelength); v < 0 {
			t.Fatalf("output %d sampled negative: %v", i, v)
		}
	}
}

func TestResetReusesStorage(t *testing.T) {
	var c Compositor
	for i := 0; i < 100; i++ {
		c.Add(Uniform(1), Uniform(2))
	}
	before := c.pool.Len()
	c.Reset()
	for i := 0; i < 100; i++ {
		c.Add(Uniform(1), Uniform(2))
	}
	if c.pool.Len() != before {
		t.Fatalf("Reset then replay grew storage: %d -> %d", before, c.pool.Len())
	}
}
