package bsdf

import (
	"math"

	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
)

const invPi = float32(1 / math.Pi)

// lambertianBSDF is f = reflectance/π, sampled by cosine-weighted
// hemisphere sampling about the shading normal (spec.md §4.9). It has
// no specular component, so Sample and SampleDiffuse coincide.
type lambertianBSDF struct {
	reflectance reflector.Reflector
}

func (l *lambertianBSDF) IsDiffuse() bool { return true }

func (l *lambertianBSDF) Sample(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	return l.sampleCosineHemisphere(shadingNormal, r, c)
}

func (l *lambertianBSDF) SampleDiffuse(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	return l.sampleCosineHemisphere(shadingNormal, r, c)
}

func (l *lambertianBSDF) sampleCosineHemisphere(shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	u1, u2 := r.Float2D()
	wi := cosineHemisphere(u1, u2, shadingNormal)
	cosTheta := linear.DotV3(wi, shadingNormal)
	if cosTheta <= 0 {
		return Sample{PDF: 0}, nil
	}
	return Sample{
		F:    c.Attenuate(l.reflectance, invPi),
		Wi:   wi,
		PDF:  cosTheta * invPi,
		Type: LobeDiffuse,
	}, nil
}

func (l *lambertianBSDF) EvaluateDiffuseWithPDF(wo, shadingNormal, wi linear.V3, transmitted bool, c *reflector.Compositor) (reflector.Reflector, float32, error) {
	if transmitted {
		return nil, 0, nil
	}
	cosTheta := linear.DotV3(wi, shadingNormal)
	if cosTheta <= 0 {
		return nil, 0, nil
	}
	return c.Attenuate(l.reflectance, invPi), cosTheta * invPi, nil
}

// cosineHemisphere draws a direction from the cosine-weighted
// hemisphere about n using Malley's method (uniform disk sample
// projected up), built in the ONB around n.
func cosineHemisphere(u1, u2 float32, n linear.V3) linear.V3 {
	r := float32(math.Sqrt(float64(u1)))
	theta := 2 * math.Pi * u2
	x := r * float32(math.Cos(float64(theta)))
	y := r * float32(math.Sin(float64(theta)))
	z := float32(math.Sqrt(float64(max32(0, 1-u1))))

	t, b := linear.ONB(n)
	return linear.AddV3(linear.AddV3(linear.ScaleV3(x, t), linear.ScaleV3(y, b)), linear.ScaleV3(z, n))
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
