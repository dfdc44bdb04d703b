package spectrum

import (
	"github.com/irisphysx/iris/arena"
	"github.com/irisphysx/iris/reflector"
)

// Compositor produces arena-scoped composite Spectrums, per
// spec.md §4.3's spectrum compositor: add, attenuate, the fused
// attenuated_add, reflect (spectrum x reflector -> spectrum), and the
// fused attenuated_reflect. As with reflector.Compositor, composites
// are represented as a lazy two-operand AST rather than a memoized
// array; see spec.md §4.3's "Implementation freedom" note and §8's
// algebraic laws, which this representation satisfies by
// construction.
type Compositor struct {
	pool arena.Pool[composite]
}

// Reset releases every composite the Compositor has produced. The
// caller resets it once per ray invocation, alongside the Arena(s) it
// shares a lifetime with (spec.md §5).
func (c *Compositor) Reset() { c.pool.Reset() }

type op int

const (
	opAdd op = iota
	opAttenuate
	opAttenuatedAdd
	opReflect
	opAttenuatedReflect
)

type composite struct {
	op     op
	a      Spectrum            // the spectrum operand (both ops)
	b      Spectrum            // second spectrum operand (add, attenuated_add)
	refl   reflector.Reflector // reflector operand (reflect, attenuated_reflect)
	factor float32             // k (attenuate, attenuated_add, attenuated_reflect)
}

func (c *composite) Sample(wavelengthNM float32) float32 {
	switch c.op {
	case opAdd:
		return sampleOrZero(c.a, wavelengthNM) + sampleOrZero(c.b, wavelengthNM)
	case opAttenuate:
		return c.factor * sampleOrZero(c.a, wavelengthNM)
	case opAttenuatedAdd:
		return sampleOrZero(c.a, wavelengthNM) + c.factor*sampleOrZero(c.b, wavelengthNM)
	case opReflect:
		return sampleOrZero(c.a, wavelengthNM) * reflectOrZero(c.refl, wavelengthNM)
	case opAttenuatedReflect:
		return c.factor * sampleOrZero(c.a, wavelengthNM) * reflectOrZero(c.refl, wavelengthNM)
	default:
		return 0
	}
}

func sampleOrZero(s Spectrum, wavelengthNM float32) float32 {
	if s == nil {
		return 0
	}
	return s.Sample(wavelengthNM)
}

func reflectOrZero(r reflector.Reflector, wavelengthNM float32) float32 {
	if r == nil {
		return 0
	}
	return r.Reflectance(wavelengthNM)
}

// Add returns a Spectrum computing s0(λ) + s1(λ). Either operand may
// be nil, treated as the additive identity.
func (c *Compositor) Add(s0, s1 Spectrum) Spectrum {
	if s0 == nil {
		return s1
	}
	if s1 == nil {
		return s0
	}
	v := c.pool.New()
	*v = composite{op: opAdd, a: s0, b: s1}
	return v
}

// Attenuate returns a Spectrum computing k*s(λ), with k finite and
// non-negative. A nil s, or k == 0, yields the nil (zero) spectrum.
func (c *Compositor) Attenuate(s Spectrum, k float32) Spectrum {
	if s == nil || k == 0 {
		return nil
	}
	if k == 1 {
		return s
	}
	v := c.pool.New()
	*v = composite{op: opAttenuate, a: s, factor: k}
	return v
}

// AttenuatedAdd returns a Spectrum computing add(λ) + k*att(λ) in one
// fused node.
func (c *Compositor) AttenuatedAdd(add, att Spectrum, k float32) Spectrum {
	if att == nil || k == 0 {
		return add
	}
	if add == nil {
		return c.Attenuate(att, k)
	}
	v := c.pool.New()
	*v = composite{op: opAttenuatedAdd, a: add, b: att, factor: k}
	return v
}

// Reflect returns a Spectrum computing s(λ)*r(λ).
func (c *Compositor) Reflect(s Spectrum, r reflector.Reflector) Spectrum {
	if s == nil || r == nil {
		return nil
	}
	v := c.pool.New()
	*v = composite{op: opReflect, a: s, refl: r}
	return v
}

// AttenuatedReflect returns a Spectrum computing k*s(λ)*r(λ) in one
// fused node.
func (c *Compositor) AttenuatedReflect(s Spectrum, r reflector.Reflector, k float32) Spectrum {
	if s == nil || r == nil || k == 0 {
		return nil
	}
	v := c.pool.New()
	*v = composite{op: opAttenuatedReflect, a: s, refl: r, factor: k}
	return v
}
