// Package integrator implements the Monte-Carlo path tracer and the
// per-ray render harness of spec.md §4.8/component 9. Grounded on
// original_source/iris_physx/integrator.c and integrator_vtable.h for
// the bounce state machine's exact step order, next-event estimation,
// and Russian-roulette termination.
package integrator

import (
	"math"

	"github.com/irisphysx/iris/arena"
	"github.com/irisphysx/iris/bsdf"
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/light"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/raytracer"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
	"github.com/irisphysx/iris/spectrum"
)

// Config carries the path tracer's tunable knobs (spec.md §4.8): the
// starting ray epsilon, the depth below which Russian roulette is
// disabled, the hard bounce cutoff, and the floor on the roulette
// termination probability q = max(RouletteFloor, 1 - max(r,g,b))
// (max(r,g,b) in the color space is approximated here by
// a Reflector's Albedo hint since path_throughput never leaves the
// spectral domain).
type Config struct {
	Epsilon       float32
	RouletteDepth int
	MaxDepth      int
	RouletteFloor float32
}

// PathTracer estimates radiance along a camera ray by the state
// machine of spec.md §4.8. One PathTracer is shared across many rays;
// all per-ray state lives in the allocators and compositors passed to
// Li.
type PathTracer struct {
	Context *raytracer.Context
	Lights  *LightSampler
	Config  Config
}

// Stats reports what happened along one Li call, consumed by the
// harness for diagnostics (spec.md component 9's "tone-map callback"
// sits downstream of this, not inside the integrator itself).
type Stats struct {
	Bounces            int
	RouletteTerminated bool
}

// Li runs the full bounce loop of spec.md §4.8 starting from rd,
// returning the estimated output spectrum.
func (pt *PathTracer) Li(rd geom.Differential, texAlloc *arena.Arena, bsdfAlloc *bsdf.Allocator, reflComp *reflector.Compositor, specComp *spectrum.Compositor, rngSrc rng.Source) (spectrum.Spectrum, Stats, error) {
	vt := raytracer.NewVisibilityTester(pt.Context.Trace, pt.Config.Epsilon)

	var output spectrum.Spectrum
	var pathThroughput reflector.Reflector = reflector.Perfect
	lastWasSpecular := true
	differential := rd
	stats := Stats{}

	for bounce := 0; ; bounce++ {
		stats.Bounces = bounce
		res, err := pt.Context.Resolve(differential, texAlloc, bsdfAlloc, reflComp)
		if err != nil {
			return nil, stats, err
		}

		if (bounce == 0 || lastWasSpecular) && res.Emitted != nil {
			output = specComp.Add(output, specComp.Reflect(res.Emitted, pathThroughput))
		}

		if res.BSDF == nil {
			stats.Bounces = bounce
			return output, stats, nil
		}

		wo := linear.NormV3(linear.NegV3(differential.Ray.Dir))

		var selected light.Light
		var pmf float32
		if res.BSDF.IsDiffuse() {
			selected, pmf = pt.Lights.Sample(rngSrc.Float1D())
			if selected != nil {
				if err := pt.nextEventEstimation(selected, pmf, res, wo, vt, rngSrc, reflComp, specComp, pathThroughput, &output); err != nil {
					return nil, stats, err
				}
			}
		}

		sample, err := res.BSDF.Sample(wo, res.SurfaceNormal, res.ShadingNormal, rngSrc, reflComp)
		if err != nil {
			return nil, stats, err
		}
		if sample.PDF == 0 || sample.F == nil {
			stats.Bounces = bounce
			return output, stats, nil
		}

		cosTheta := absf32(linear.DotV3(sample.Wi, res.ShadingNormal))
		if cosTheta <= 0 {
			stats.Bounces = bounce
			return output, stats, nil
		}

		var throughputScale float32
		if sample.Type == bsdf.LobeSpecular {
			throughputScale = cosTheta
		} else {
			throughputScale = cosTheta / sample.PDF
		}
		pathThroughput = reflComp.Attenuate(reflComp.Multiply(pathThroughput, sample.F), throughputScale)
		lastWasSpecular = sample.Type == bsdf.LobeSpecular

		if !lastWasSpecular && selected != nil {
			nextRay := geom.Ray{Origin: res.Intersection.WorldPoint, Dir: sample.Wi}
			Lem, lightPDF, err := selected.EmissionAlongRayWithPDF(nextRay)
			if err != nil {
				return nil, stats, err
			}
			if Lem != nil && lightPDF > 0 {
				effLightPDF := lightPDF * pmf
				w := powerHeuristic(sample.PDF, effLightPDF)
				output = specComp.Add(output, specComp.Reflect(Lem, reflComp.Attenuate(pathThroughput, w)))
			}
		}

		if pathThroughput == nil {
			stats.Bounces = bounce
			return output, stats, nil
		}

		if bounce >= pt.Config.RouletteDepth {
			q := maxf32(pt.Config.RouletteFloor, 1-pathThroughput.Albedo())
			if rngSrc.Float1D() < q {
				stats.Bounces = bounce
				stats.RouletteTerminated = true
				return output, stats, nil
			}
			pathThroughput = reflComp.Attenuate(pathThroughput, 1/(1-q))
		}

		if bounce+1 >= pt.Config.MaxDepth {
			stats.Bounces = bounce + 1
			return output, stats, nil
		}

		differential = geom.Differential{Ray: geom.Ray{Origin: res.Intersection.WorldPoint, Dir: sample.Wi}}
	}
}

// nextEventEstimation implements spec.md §4.8 step 5: sample the
// selected light, weight by the power heuristic, and add its
// contribution into output.
func (pt *PathTracer) nextEventEstimation(selected light.Light, pmf float32, res raytracer.Result, wo linear.V3, vt *raytracer.VisibilityTester, rngSrc rng.Source, reflComp *reflector.Compositor, specComp *spectrum.Compositor, pathThroughput reflector.Reflector, output *spectrum.Spectrum) error {
	Li, wi, lightPDF, err := selected.SampleFromPoint(res.Intersection.WorldPoint, res.ShadingNormal, vt, rngSrc, reflComp)
	if err != nil {
		return err
	}
	if Li == nil || lightPDF <= 0 {
		return nil
	}
	effLightPDF := lightPDF
	if !math.IsInf(float64(lightPDF), 1) {
		effLightPDF = lightPDF * pmf
	}

	transmitted := linear.DotV3(wi, res.SurfaceNormal) < 0
	f, pdfBSDF, err := res.BSDF.EvaluateDiffuseWithPDF(wo, res.ShadingNormal, wi, transmitted, reflComp)
	if err != nil {
		return err
	}
	if f == nil {
		return nil
	}

	cosThetaI := absf32(linear.DotV3(wi, res.ShadingNormal))

	var scale float32
	if math.IsInf(float64(effLightPDF), 1) {
		scale = cosThetaI // weight = 1, delta light's own pdf is definitionally 1
	} else {
		w := powerHeuristic(effLightPDF, pdfBSDF)
		scale = w * cosThetaI / effLightPDF
	}

	combined := reflComp.Multiply(pathThroughput, f)
	*output = specComp.Add(*output, specComp.AttenuatedReflect(Li, combined, scale))
	return nil
}

// powerHeuristic is the two-sample power heuristic (exponent 2) of
// spec.md §4.8 step 5/6's MIS weight.
func powerHeuristic(pdfA, pdfB float32) float32 {
	a2 := pdfA * pdfA
	b2 := pdfB * pdfB
	if a2+b2 == 0 {
		return 0
	}
	return a2 / (a2 + b2)
}

func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
