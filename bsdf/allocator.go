package bsdf

import (
	"github.com/irisphysx/iris/arena"
	"github.com/irisphysx/iris/reflector"
)

// Allocator is the per-ray BSDF allocator of spec.md §4.3: it stores
// the state blob for each concrete lobe and returns a non-owning
// reference tied to the arena's lifetime. Each lobe type gets its own
// arena.Pool, matching the compositors' pattern of a typed,
// GC-visible slab per composite kind rather than one untyped byte
// arena (see arena/arena.go's package doc comment for why).
type Allocator struct {
	lambertian arena.Pool[lambertianBSDF]
	orenNayar  arena.Pool[orenNayarBSDF]
	mirror     arena.Pool[mirrorBSDF]
	microfacet arena.Pool[microfacetBSDF]
	aggregate  arena.Pool[aggregateBSDF]
}

// Reset discards every BSDF the Allocator has produced. Called once
// per ray invocation alongside the compositors and other per-ray
// arenas (spec.md §5).
func (a *Allocator) Reset() {
	a.lambertian.Reset()
	a.orenNayar.Reset()
	a.mirror.Reset()
	a.microfacet.Reset()
	a.aggregate.Reset()
}

// NewLambertian allocates a Lambertian BSDF: f = reflectance/π,
// cosine-weighted hemisphere sampling about the shading normal
// (spec.md §4.9).
func (a *Allocator) NewLambertian(r reflector.Reflector) BSDF {
	v := a.lambertian.New()
	*v = lambertianBSDF{reflectance: r}
	return v
}

// NewOrenNayar allocates an Oren-Nayar BSDF parameterised by
// roughness σ in degrees (spec.md §4.9).
func (a *Allocator) NewOrenNayar(r reflector.Reflector, sigmaDegrees float32) BSDF {
	v := a.orenNayar.New()
	*v = newOrenNayar(r, sigmaDegrees)
	return v
}

// NewMirror allocates a perfect-specular mirror BSDF (spec.md §4.9).
func (a *Allocator) NewMirror(r reflector.Reflector) BSDF {
	v := a.mirror.New()
	*v = mirrorBSDF{reflectance: r}
	return v
}

// NewMicrofacet allocates a Trowbridge-Reitz (GGX) microfacet BSDF
// with a Schlick Fresnel term (spec.md §4.9). roughness is in (0,1],
// with smaller values producing a narrower, glossier lobe; f0 is the
// normal-incidence Fresnel reflectance hint.
func (a *Allocator) NewMicrofacet(r reflector.Reflector, roughness float32, f0 reflector.Reflector) BSDF {
	v := a.microfacet.New()
	*v = microfacetBSDF{reflectance: r, alpha: roughness * roughness, f0: f0}
	return v
}

// NewAggregate allocates an aggregate BSDF over up to 8 children
// (spec.md §4.9). Extra children beyond 8 are rejected by returning a
// nil BSDF; callers that need more lobes must compose aggregates of
// aggregates, which this package deliberately does not do implicitly.
func (a *Allocator) NewAggregate(children ...BSDF) BSDF {
	if len(children) == 0 || len(children) > maxAggregateChildren {
		return nil
	}
	v := a.aggregate.New()
	v.children = v.storage[:0]
	v.children = append(v.children, children...)
	return v
}
