package integrator

import (
	"github.com/irisphysx/iris/arena"
	"github.com/irisphysx/iris/bsdf"
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/render/log"
	"github.com/irisphysx/iris/rng"
	"github.com/irisphysx/iris/spectrum"
)

// ToneMap converts an estimated output spectrum into whatever device
// color the caller's renderer stores (spec.md component 9: "the
// renderer converts to color for storage" — the conversion itself,
// e.g. via package colorimetry, is the caller's business).
type ToneMap func(spectrum.Spectrum) (r, g, b float32)

// Harness owns the per-ray allocators a PathTracer needs and runs the
// reset/integrate/tone-map cycle of spec.md §5 once per camera ray:
// "every per-ray allocator is reset before starting and never shared
// across rays." One Harness belongs to exactly one thread.
type Harness struct {
	Tracer *PathTracer

	TexAlloc *arena.Arena
	BSDF     *bsdf.Allocator
	Reflect  *reflector.Compositor
	Spectral *spectrum.Compositor
}

// NewHarness builds a Harness with freshly zero-valued allocators,
// ready for its first ray.
func NewHarness(tracer *PathTracer) *Harness {
	return &Harness{
		Tracer:   tracer,
		TexAlloc: &arena.Arena{},
		BSDF:     &bsdf.Allocator{},
		Reflect:  &reflector.Compositor{},
		Spectral: &spectrum.Compositor{},
	}
}

// RenderRay resets every per-ray allocator, runs the path tracer, and
// hands the result to tone. It is safe to call repeatedly from the
// same goroutine, one ray at a time.
func (h *Harness) RenderRay(rd geom.Differential, rngSrc rng.Source, tone ToneMap) (r, g, b float32, err error) {
	h.TexAlloc.FreeAll()
	h.BSDF.Reset()
	h.Reflect.Reset()
	h.Spectral.Reset()

	output, stats, err := h.Tracer.Li(rd, h.TexAlloc, h.BSDF, h.Reflect, h.Spectral, rngSrc)
	if err != nil {
		log.Error("sample failed", "err", err, "bounces", stats.Bounces)
		return 0, 0, 0, err
	}
	if stats.RouletteTerminated {
		log.Debug("path terminated by roulette", "bounces", stats.Bounces)
	}
	r, g, b = tone(output)
	return r, g, b, nil
}
