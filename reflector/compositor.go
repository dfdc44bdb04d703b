package reflector

import "github.com/irisphysx/iris/arena"

// Compositor produces arena-scoped composite Reflectors, per
// spec.md §4.3's reflector compositor. A Compositor is owned by one
// ray context at a time; Reset ties its composites' lifetime to that
// context exactly as the arena.Pool it wraps does.
type Compositor struct {
	pool arena.Pool[composite]
}

// Reset releases every composite the Compositor has produced,
// reusing the backing storage for the next ray. It is the caller's
// responsibility to call Reset between ray invocations (spec.md §5).
func (c *Compositor) Reset() { c.pool.Reset() }

type op int

const (
	opAdd op = iota
	opAttenuate
	opMultiply
)

// composite is the single concrete representation backing every
// compositor output: a lazy two-operand AST node, evaluated on
// Reflectance/Albedo rather than memoized into an array. Spec.md
// §4.3 leaves this an implementation choice as long as the algebraic
// laws of §8 hold, which a lazy node composed this way satisfies by
// construction (each law is just how the three ops are defined).
type composite struct {
	op     op
	a, b   Reflector // b is nil for Attenuate
	factor float32   // scale used by Attenuate
}

func (c *composite) Reflectance(wavelengthNM float32) float32 {
	switch c.op {
	case opAdd:
		return sampleOrZero(c.a, wavelengthNM) + sampleOrZero(c.b, wavelengthNM)
	case opAttenuate:
		return c.factor * sampleOrZero(c.a, wavelengthNM)
	case opMultiply:
		return sampleOrZero(c.a, wavelengthNM) * sampleOrZero(c.b, wavelengthNM)
	default:
		return 0
	}
}

func (c *composite) Albedo() float32 {
	switch c.op {
	case opAdd:
		return albedoOrZero(c.a) + albedoOrZero(c.b)
	case opAttenuate:
		return c.factor * albedoOrZero(c.a)
	case opMultiply:
		return albedoOrZero(c.a) * albedoOrZero(c.b)
	default:
		return 0
	}
}

func sampleOrZero(r Reflector, wavelengthNM float32) float32 {
	if r == nil {
		return 0
	}
	return r.Reflectance(wavelengthNM)
}

func albedoOrZero(r Reflector) float32 {
	if r == nil {
		return 0
	}
	return r.Albedo()
}

// Add returns a Reflector computing r0(λ) + r1(λ). Either operand may
// be nil, treated as the additive identity.
func (c *Compositor) Add(r0, r1 Reflector) Reflector {
	if r0 == nil {
		return r1
	}
	if r1 == nil {
		return r0
	}
	v := c.pool.New()
	*v = composite{op: opAdd, a: r0, b: r1}
	return v
}

// Attenuate returns a Reflector computing k*r(λ), with k finite and
// non-negative. A nil r is treated as the zero reflector.
func (c *Compositor) Attenuate(r Reflector, k float32) Reflector {
	if r == nil || k == 0 {
		return nil
	}
	if k == 1 {
		return r
	}
	v := c.pool.New()
	*v = composite{op: opAttenuate, a: r, factor: k}
	return v
}

// Multiply returns a Reflector computing r0(λ)*r1(λ). A nil operand
// makes the whole product the zero reflector.
func (c *Compositor) Multiply(r0, r1 Reflector) Reflector {
	if r0 == nil || r1 == nil {
		return nil
	}
	v := c.pool.New()
	*v = composite{op: opMultiply, a: r0, b: r1}
	return v
}
