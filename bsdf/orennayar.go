package bsdf

import (
	"math"

	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
)

// orenNayarBSDF is the diffuse-only, roughness-parameterised lobe of
// spec.md §4.9: a closed-form approximation of rough diffuse
// reflectance (Oren & Nayar 1994), parameterised by a roughness σ in
// degrees with derived coefficients A and B.
type orenNayarBSDF struct {
	reflectance reflector.Reflector
	a, b        float32
}

func newOrenNayar(r reflector.Reflector, sigmaDegrees float32) orenNayarBSDF {
	sigma := sigmaDegrees * float32(math.Pi) / 180
	sigma2 := sigma * sigma
	return orenNayarBSDF{
		reflectance: r,
		a:           1 - sigma2/(2*(sigma2+0.33)),
		b:           0.45 * sigma2 / (sigma2 + 0.09),
	}
}

func (o *orenNayarBSDF) IsDiffuse() bool { return true }

func (o *orenNayarBSDF) Sample(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	return o.sampleCosineHemisphere(wo, shadingNormal, r, c)
}

func (o *orenNayarBSDF) SampleDiffuse(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	return o.sampleCosineHemisphere(wo, shadingNormal, r, c)
}

func (o *orenNayarBSDF) sampleCosineHemisphere(wo, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	u1, u2 := r.Float2D()
	wi := cosineHemisphere(u1, u2, shadingNormal)
	cosTheta := linear.DotV3(wi, shadingNormal)
	if cosTheta <= 0 {
		return Sample{PDF: 0}, nil
	}
	f, _, err := o.EvaluateDiffuseWithPDF(wo, shadingNormal, wi, false, c)
	if err != nil {
		return Sample{}, err
	}
	return Sample{F: f, Wi: wi, PDF: cosTheta * invPi, Type: LobeDiffuse}, nil
}

func (o *orenNayarBSDF) EvaluateDiffuseWithPDF(wo, shadingNormal, wi linear.V3, transmitted bool, c *reflector.Compositor) (reflector.Reflector, float32, error) {
	if transmitted {
		return nil, 0, nil
	}
	cosThetaI := linear.DotV3(wi, shadingNormal)
	cosThetaO := linear.DotV3(wo, shadingNormal)
	if cosThetaI <= 0 || cosThetaO <= 0 {
		return nil, 0, nil
	}
	sinThetaI := float32(math.Sqrt(float64(max32(0, 1-cosThetaI*cosThetaI))))
	sinThetaO := float32(math.Sqrt(float64(max32(0, 1-cosThetaO*cosThetaO))))

	// Project wo and wi onto the tangent plane to recover cos(phi_i -
	// phi_o) without building an explicit azimuthal angle.
	cosDeltaPhi := azimuthalCosDelta(wo, wi, shadingNormal, cosThetaO, cosThetaI, sinThetaO, sinThetaI)

	sinAlpha, cosBeta := sinThetaI, cosThetaO
	if cosThetaI > cosThetaO {
		sinAlpha, cosBeta = sinThetaO, cosThetaI
	}
	var tanBeta float32
	if cosBeta > 1e-6 {
		sinBeta := float32(math.Sqrt(float64(max32(0, 1-cosBeta*cosBeta))))
		tanBeta = sinBeta / cosBeta
	}

	oren := o.a + o.b*cosDeltaPhi*sinAlpha*tanBeta
	return c.Attenuate(o.reflectance, invPi*oren), cosThetaI * invPi, nil
}

// azimuthalCosDelta returns cos(phi_i - phi_o) for wi, wo measured
// against the tangent frame built around n, without computing either
// angle explicitly.
func azimuthalCosDelta(wo, wi, n linear.V3, cosThetaO, cosThetaI, sinThetaO, sinThetaI float32) float32 {
	if sinThetaI <= 1e-6 || sinThetaO <= 1e-6 {
		return 0
	}
	t, b := linear.ONB(n)
	wiProj := linear.SubV3(wi, linear.ScaleV3(cosThetaI, n))
	woProj := linear.SubV3(wo, linear.ScaleV3(cosThetaO, n))
	wiT, wiB := linear.DotV3(wiProj, t)/sinThetaI, linear.DotV3(wiProj, b)/sinThetaI
	woT, woB := linear.DotV3(woProj, t)/sinThetaO, linear.DotV3(woProj, b)/sinThetaO
	return max32(0, wiT*woT+wiB*woB)
}
