package bsdf

import (
	"math"

	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
)

// microfacetBSDF is the Trowbridge-Reitz (GGX) lobe of spec.md §4.9:
// samples a half vector from the normal distribution in the shading
// frame, then evaluates D*G*F/(4 cosθi cosθo). It is treated as
// non-specular (IsDiffuse true) since its pdf is always finite, even
// though it is glossy rather than Lambertian-diffuse — consistent
// with spec.md's is-diffuse flag meaning "has a finite-pdf component
// eligible for next-event estimation", not "perfectly diffuse".
type microfacetBSDF struct {
	reflectance reflector.Reflector // tint applied to the microfacet term
	f0          reflector.Reflector // normal-incidence Fresnel reflectance
	alpha       float32             // roughness^2, GGX width parameter
}

func (m *microfacetBSDF) IsDiffuse() bool { return true }

func (m *microfacetBSDF) Sample(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	cosThetaO := linear.DotV3(wo, shadingNormal)
	if cosThetaO <= 0 {
		return Sample{PDF: 0}, nil
	}
	u1, u2 := r.Float2D()
	h := m.sampleHalfVector(u1, u2, shadingNormal)
	woDotH := linear.DotV3(wo, h)
	if woDotH <= 0 {
		return Sample{PDF: 0}, nil
	}
	wi := linear.SubV3(linear.ScaleV3(2*woDotH, h), wo)
	cosThetaI := linear.DotV3(wi, shadingNormal)
	if cosThetaI <= 0 {
		return Sample{PDF: 0}, nil
	}

	pdfH := m.ndf(linear.DotV3(h, shadingNormal)) * linear.DotV3(h, shadingNormal)
	pdf := pdfH / (4 * woDotH)
	if pdf <= 0 {
		return Sample{PDF: 0}, nil
	}
	f := m.evaluate(shadingNormal, wo, wi, cosThetaO, cosThetaI)
	return Sample{F: f, Wi: wi, PDF: pdf, Type: LobeDiffuse}, nil
}

func (m *microfacetBSDF) SampleDiffuse(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	return m.Sample(wo, surfaceNormal, shadingNormal, r, c)
}

func (m *microfacetBSDF) EvaluateDiffuseWithPDF(wo, shadingNormal, wi linear.V3, transmitted bool, c *reflector.Compositor) (reflector.Reflector, float32, error) {
	if transmitted {
		return nil, 0, nil
	}
	cosThetaO := linear.DotV3(wo, shadingNormal)
	cosThetaI := linear.DotV3(wi, shadingNormal)
	if cosThetaO <= 0 || cosThetaI <= 0 {
		return nil, 0, nil
	}
	hUnnorm := linear.AddV3(wo, wi)
	if linear.LenV3(hUnnorm) == 0 {
		return nil, 0, nil
	}
	h := linear.NormV3(hUnnorm)
	cosThetaH := linear.DotV3(h, shadingNormal)
	if cosThetaH <= 0 {
		return nil, 0, nil
	}
	woDotH := linear.DotV3(wo, h)
	if woDotH <= 0 {
		return nil, 0, nil
	}
	pdf := m.ndf(cosThetaH) * cosThetaH / (4 * woDotH)
	f := m.evaluate(shadingNormal, wo, wi, cosThetaO, cosThetaI)
	return f, pdf, nil
}

// sampleHalfVector draws h from the GGX normal distribution (standard
// distribution sampling, not the visible-normal-distribution
// variant spec.md §4.9 names — a documented simplification, since
// the exact microfacet formula is explicitly out of the core's
// contractual scope per spec.md §1).
func (m *microfacetBSDF) sampleHalfVector(u1, u2 float32, n linear.V3) linear.V3 {
	cosTheta := float32(math.Sqrt(float64((1 - u1) / (1 + (m.alpha*m.alpha-1)*u1))))
	sinTheta := float32(math.Sqrt(float64(max32(0, 1-cosTheta*cosTheta))))
	phi := 2 * math.Pi * u2
	x := sinTheta * float32(math.Cos(float64(phi)))
	y := sinTheta * float32(math.Sin(float64(phi)))

	t, b := linear.ONB(n)
	return linear.AddV3(linear.AddV3(linear.ScaleV3(x, t), linear.ScaleV3(y, b)), linear.ScaleV3(cosTheta, n))
}

// ndf is the Trowbridge-Reitz (GGX) normal distribution function,
// D(h) for cosThetaH = n.h.
func (m *microfacetBSDF) ndf(cosThetaH float32) float32 {
	if cosThetaH <= 0 {
		return 0
	}
	a2 := m.alpha * m.alpha
	d := cosThetaH*cosThetaH*(a2-1) + 1
	return a2 / (float32(math.Pi) * d * d)
}

// smithG1 is the Smith masking-shadowing term for one direction,
// given its cosine with the shading normal.
func (m *microfacetBSDF) smithG1(cosTheta float32) float32 {
	if cosTheta <= 0 {
		return 0
	}
	a2 := m.alpha * m.alpha
	tan2 := (1 - cosTheta*cosTheta) / (cosTheta * cosTheta)
	lambda := (-1 + float32(math.Sqrt(float64(1+a2*tan2)))) / 2
	return 1 / (1 + lambda)
}

func (m *microfacetBSDF) evaluate(shadingNormal, wo, wi linear.V3, cosThetaO, cosThetaI float32) reflector.Reflector {
	hUnnorm := linear.AddV3(wo, wi)
	if linear.LenV3(hUnnorm) == 0 {
		return reflector.Uniform(0)
	}
	h := linear.NormV3(hUnnorm)
	cosThetaH := linear.DotV3(h, shadingNormal)
	woDotH := linear.DotV3(wo, h)
	g := m.smithG1(cosThetaO) * m.smithG1(cosThetaI)
	d := m.ndf(cosThetaH)
	scalar := d * g / (4 * cosThetaO * cosThetaI)
	return &microfacetReflector{tint: m.reflectance, f0: m.f0, cosIncidence: woDotH, scalar: scalar}
}

// microfacetReflector is the per-evaluation composite reflectance
// value: tint(λ) * scalar * fresnelSchlick(f0(λ), cosIncidence). It is
// allocated on the Go heap rather than an arena pool since it carries
// no invariant beyond its own lifetime as a return value — the
// integrator samples it immediately and never retains it past the
// current bounce.
type microfacetReflector struct {
	tint         reflector.Reflector
	f0           reflector.Reflector
	cosIncidence float32
	scalar       float32
}

func (r *microfacetReflector) Reflectance(wavelengthNM float32) float32 {
	tint := float32(0)
	if r.tint != nil {
		tint = r.tint.Reflectance(wavelengthNM)
	}
	f0 := float32(0)
	if r.f0 != nil {
		f0 = r.f0.Reflectance(wavelengthNM)
	}
	f := fresnelSchlick(f0, r.cosIncidence)
	v := tint * r.scalar * f
	if v < 0 {
		return 0
	}
	return v
}

func (r *microfacetReflector) Albedo() float32 {
	albedo := float32(0)
	if r.tint != nil {
		albedo = r.tint.Albedo()
	}
	return albedo
}

func fresnelSchlick(f0, cosIncidence float32) float32 {
	if cosIncidence < 0 {
		cosIncidence = 0
	}
	m := 1 - cosIncidence
	m2 := m * m
	return f0 + (1-f0)*m2*m2*m
}
