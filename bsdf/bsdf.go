// Package bsdf implements the BRDF/BSDF kind of spec.md §3/§4.3/§4.9:
// an arena-scoped triple of operations {sample, evaluate-reflectance,
// evaluate-reflectance-with-pdf} plus an is-diffuse flag, with BSDFs
// additionally carrying a diffuse-only sample operation and distinct
// surface/shading normals. Concrete lobes are grounded on
// original_source/iris_physx/bsdf.c and its sibling per-lobe .c files;
// the sample/evaluate contract is exact, the concrete microfacet
// formulas are a documented simplification since spec.md explicitly
// scopes "specific BRDF/BSDF lobe formulas beyond the interface" out
// of the core (§1 "Explicitly out of scope").
package bsdf

import (
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
)

// LobeType tags whether a Sample came from a delta (specular) lobe or
// a finite-pdf (diffuse/glossy) one, per spec.md §9's recommendation
// to use an enumerated tag rather than a raw-float pdf=+Inf check at
// call sites (the sentinel still appears in Sample.PDF itself, for
// code that legitimately needs the float).
type LobeType int

const (
	LobeDiffuse LobeType = iota
	LobeSpecular
)

// Sample is the result of a BSDF/BRDF sampling operation: the lobe's
// value at the sampled direction, the direction itself, the
// probability density (in solid angle; +Inf is the specular
// sentinel), and the lobe type.
type Sample struct {
	F    reflector.Reflector
	Wi   linear.V3
	PDF  float32
	Type LobeType
}

// BRDF is the simpler, transmission-free variant used for reflectors
// that never need distinct surface/shading normals (spec.md §3).
type BRDF interface {
	IsDiffuse() bool
	Sample(wo, n linear.V3, rng rng.Source, c *reflector.Compositor) (Sample, error)
	Evaluate(wo, n, wi linear.V3, c *reflector.Compositor) (reflector.Reflector, error)
	EvaluateWithPDF(wo, n, wi linear.V3, c *reflector.Compositor) (reflector.Reflector, float32, error)
}

// BSDF extends BRDF with a transmission-aware evaluator and a
// diffuse-only sampler, and takes distinct surface and shading
// normals at every call (spec.md §3's "BRDF / BSDF" entry).
type BSDF interface {
	IsDiffuse() bool

	// Sample draws a full (possibly specular) outgoing direction.
	Sample(wo, surfaceNormal, shadingNormal linear.V3, rng rng.Source, c *reflector.Compositor) (Sample, error)

	// SampleDiffuse draws only from the non-specular component. Per
	// spec.md §9's open question, every implementation in this
	// package enforces that a specular result here is itself an
	// error (ierr.CodeInvalidResult) — not just the integrator's call
	// site.
	SampleDiffuse(wo, surfaceNormal, shadingNormal linear.V3, rng rng.Source, c *reflector.Compositor) (Sample, error)

	// EvaluateDiffuseWithPDF is compute_diffuse_with_pdf from spec.md
	// §4.8 step 5: the diffuse-only reflectance and pdf at an
	// explicit incident direction, with transmitted reporting whether
	// wi crossed to the geometric back side.
	EvaluateDiffuseWithPDF(wo, shadingNormal, wi linear.V3, transmitted bool, c *reflector.Compositor) (reflector.Reflector, float32, error)
}
