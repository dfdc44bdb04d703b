package light

import (
	"math"

	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/raytracer"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
	"github.com/irisphysx/iris/spectrum"
)

// Directional is a delta light at infinite distance, supplemented
// beyond the distilled spec per SPEC_FULL.md §5 — every one of
// spec.md §8's end-to-end scenarios needs one, grounded on
// original_source/iris_advanced_toolkit's directional-light sampling
// helper. It never appears as a background: a BSDF-sampled ray has
// zero probability of landing exactly on its direction, so
// EmissionAlongRay(WithPDF) always report no contribution, matching
// how the integrator only ever reaches a delta light through
// next-event estimation.
type Directional struct {
	ToLight  linear.V3 // normalized direction from any point toward the light
	Radiance spectrum.Spectrum
}

// SampleFromPoint implements Light. There is nothing to sample: the
// direction and spectrum are fixed, only occlusion is tested. The pdf
// sentinel of +Inf signals a delta light to the integrator's power
// heuristic (spec.md §4.8 step 5: "If light is delta-distributed,
// weight = 1").
func (d *Directional) SampleFromPoint(x, n linear.V3, vt *raytracer.VisibilityTester, rngSrc rng.Source, c *reflector.Compositor) (spectrum.Spectrum, linear.V3, float32, error) {
	wi := linear.NormV3(d.ToLight)
	visible, err := vt.TestAnyDistance(geom.Ray{Origin: x, Dir: wi})
	if err != nil {
		return nil, linear.V3{}, 0, err
	}
	if !visible {
		return d.Radiance, wi, 0, nil
	}
	return d.Radiance, wi, float32(math.Inf(1)), nil
}

// EmissionAlongRay always reports no contribution: a directional
// light has zero angular extent, so a BSDF-sampled ray can never land
// on it.
func (d *Directional) EmissionAlongRay(ray geom.Ray) (spectrum.Spectrum, error) {
	return nil, nil
}

func (d *Directional) EmissionAlongRayWithPDF(ray geom.Ray) (spectrum.Spectrum, float32, error) {
	return nil, 0, nil
}
