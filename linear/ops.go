package linear

import "math"

// Free-function, value-semantics wrappers over the pointer-receiver
// API above. The core packages pass vectors by value at call sites
// that read better as expressions (ray directions, BSDF samples) than
// as in-place mutation, so both styles coexist here.

// AddV3 returns l + r.
func AddV3(l, r V3) (v V3) { v.Add(&l, &r); return }

// SubV3 returns l - r.
func SubV3(l, r V3) (v V3) { v.Sub(&l, &r); return }

// ScaleV3 returns s*w.
func ScaleV3(s float32, w V3) (v V3) { v.Scale(s, &w); return }

// DotV3 returns l . r.
func DotV3(l, r V3) float32 { return l.Dot(&r) }

// LenV3 returns the length of v.
func LenV3(v V3) float32 { return v.Len() }

// NormV3 returns w normalized. The zero vector is returned unchanged.
func NormV3(w V3) V3 {
	if l := w.Len(); l != 0 {
		var v V3
		v.Scale(1/l, &w)
		return v
	}
	return w
}

// Cross returns l x r.
func Cross(l, r V3) (v V3) { v.Cross(&l, &r); return }

// NegV3 returns -v.
func NegV3(v V3) V3 { return ScaleV3(-1, v) }

// Reflect returns i reflected about n (n must be normalized and point
// against the incident direction, as in i.Dot(n) < 0).
func Reflect(i, n V3) V3 {
	return SubV3(i, ScaleV3(2*DotV3(i, n), n))
}

// Refract returns the refraction of i about n for a relative index of
// refraction eta = etaIncident/etaTransmitted, and reports whether the
// ray is not totally internally reflected.
//
// i and n must be normalized, with n on the incident side (i.e.
// i.Dot(n) <= 0).
func Refract(i, n V3, eta float32) (t V3, ok bool) {
	cosI := -DotV3(i, n)
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T >= 1 {
		return V3{}, false
	}
	cosT := float32(math.Sqrt(float64(1 - sin2T)))
	t = AddV3(ScaleV3(eta, i), ScaleV3(eta*cosI-cosT, n))
	return t, true
}

// ONB builds an orthonormal basis (tangent, bitangent) around the unit
// vector n, using Duff et al.'s branchless construction.
func ONB(n V3) (t, b V3) {
	sign := float32(1)
	if n[2] < 0 {
		sign = -1
	}
	a := -1 / (sign + n[2])
	c := n[0] * n[1] * a
	t = V3{1 + sign*n[0]*n[0]*a, sign * c, -sign * n[0]}
	b = V3{c, sign + n[1]*n[1]*a, -n[1]}
	return
}
