package bsdf

import (
	"math"

	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
)

// mirrorBSDF is the perfect-specular lobe of spec.md §4.9: f =
// reflector/cos(theta), so that f·cos(theta), the factor the
// integrator applies on a specular bounce, equals the reflector; wi =
// reflect(wo, n), pdf = +Inf, tagged specular. It has no diffuse
// component at all.
type mirrorBSDF struct {
	reflectance reflector.Reflector
}

func (m *mirrorBSDF) IsDiffuse() bool { return false }

func (m *mirrorBSDF) Sample(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	cosTheta := linear.DotV3(wo, shadingNormal)
	if cosTheta <= 0 {
		return Sample{PDF: 0}, nil
	}
	wi := linear.SubV3(linear.ScaleV3(2*cosTheta, shadingNormal), wo)
	return Sample{
		F:    c.Attenuate(m.reflectance, 1/cosTheta),
		Wi:   wi,
		PDF:  float32(math.Inf(1)),
		Type: LobeSpecular,
	}, nil
}

// SampleDiffuse always fails: a mirror has no diffuse component to
// sample, and per spec.md §9's open question this package enforces
// the "specular sample from the diffuse sampler is an error"
// invariant at every layer, not just the integrator's call site.
func (m *mirrorBSDF) SampleDiffuse(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	return Sample{}, ierr.InvalidResult("diffuse sample requested from a specular-only BSDF")
}

func (m *mirrorBSDF) EvaluateDiffuseWithPDF(wo, shadingNormal, wi linear.V3, transmitted bool, c *reflector.Compositor) (reflector.Reflector, float32, error) {
	return nil, 0, nil
}
