// Package light implements the Light kind of spec.md §3/§4.6/§4.7: a
// polymorphic (shape, environment, or delta-direction) source the path
// tracer's next-event estimation and MIS bookkeeping both drive
// through the same three-operation contract. Grounded on
// original_source/iris_physx/light.c's generic light vtable (sample,
// emission-along-ray, emission-along-ray-with-pdf) and its
// area_light.c/environmental_light.c concrete kinds.
package light

import (
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
	"github.com/irisphysx/iris/spectrum"

	"github.com/irisphysx/iris/raytracer"
)

// Light is spec.md §3's light contract. x and n (in SampleFromPoint)
// are the world-space shading point and its shading normal; wi is a
// world-space direction toward the light. pdf follows the same
// sentinel convention as bsdf.Sample.PDF: +Inf marks a delta
// (point/directional) light the integrator must weight at 1 rather
// than through the power heuristic (spec.md §4.8 step 5).
type Light interface {
	// SampleFromPoint draws one direction toward the light from x,
	// returning its incident spectrum, direction, and solid-angle pdf.
	// A zero pdf means the light contributes nothing along the drawn
	// direction (occluded, or the sample missed the light entirely).
	SampleFromPoint(x, n linear.V3, vt *raytracer.VisibilityTester, rngSrc rng.Source, c *reflector.Compositor) (spectrum.Spectrum, linear.V3, float32, error)

	// EmissionAlongRay evaluates the light's radiance along ray with
	// no sampling, for the case a BSDF-sampled ray happens to escape
	// toward the light (spec.md §4.6 "emission-along-ray").
	EmissionAlongRay(ray geom.Ray) (spectrum.Spectrum, error)

	// EmissionAlongRayWithPDF additionally reports the solid-angle pdf
	// the light's own sampling strategy would have assigned to ray's
	// direction, used by the integrator's MIS weight on a BSDF-sampled
	// bounce (spec.md §4.8 step 6).
	EmissionAlongRayWithPDF(ray geom.Ray) (spectrum.Spectrum, float32, error)
}
