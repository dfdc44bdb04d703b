// Package material implements the Material and EmissiveMaterial kinds
// of spec.md §3: long-lived, shared mappings from a shading point to
// a BSDF (Material) or an emitted Spectrum (EmissiveMaterial).
package material

import (
	"github.com/irisphysx/iris/bsdf"
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/spectrum"
	"github.com/irisphysx/iris/texture"
)

// Material maps an intersection plus precomputed texture coordinates
// to a BSDF (spec.md §4.5 step 7): `sample(intersection, auxiliary
// data, coordinates, BSDF allocator, reflector compositor) -> BSDF`.
type Material interface {
	Sample(inter geom.Intersection, aux any, coords any, alloc *bsdf.Allocator, c *reflector.Compositor) (bsdf.BSDF, error)
}

// EmissiveMaterial maps a model-space hit point plus auxiliary data
// to a Spectrum (spec.md §3). An emissive shape's face exposes one of
// these alongside get-emissive-material, sample-face, and
// compute-pdf-by-solid-angle (spec.md §3's emissive-shape tri-method
// contract).
type EmissiveMaterial interface {
	Emission(modelPoint linear.V3, aux any) (spectrum.Spectrum, error)
}

// Uniform is an EmissiveMaterial that emits the same long-lived
// Spectrum regardless of hit point, the simplest case exercised by
// spec.md §8 scenario 3 (an emissive triangle with a uniform area
// light).
type Uniform struct {
	Spectrum spectrum.Spectrum
}

func (u Uniform) Emission(modelPoint linear.V3, aux any) (spectrum.Spectrum, error) {
	return u.Spectrum, nil
}

// VertexColor is the barycentric triangle material of spec.md §8
// scenario 1: it interpolates three vertex reflectors by the
// barycentric weight of the model-space hit point against the
// triangle's vertices, then shades as Lambertian. Supplemented beyond
// the distilled spec per SPEC_FULL.md §5, grounded on
// original_source's triangle shape sample code and the teacher's
// TexRef-less BaseColor pattern in engine/material/material.go.
type VertexColor struct {
	P0, P1, P2 linear.V3
	R0, R1, R2 reflector.Reflector
}

// Sample implements Material. It ignores aux and coords: the
// barycentric weight is recovered directly from the model-space hit
// point against the material's own copy of the triangle's vertices,
// the same recovery texture.TriangleUVMap performs for UV coordinates.
func (v VertexColor) Sample(inter geom.Intersection, aux any, coords any, alloc *bsdf.Allocator, c *reflector.Compositor) (bsdf.BSDF, error) {
	w0, w1, w2, ok := texture.Barycentric(v.P0, v.P1, v.P2, inter.ModelPoint)
	if !ok {
		return nil, ierr.InvalidResult("degenerate triangle in vertex color material")
	}
	refl := c.Add(c.Add(c.Attenuate(v.R0, w0), c.Attenuate(v.R1, w1)), c.Attenuate(v.R2, w2))
	return alloc.NewLambertian(refl), nil
}

// Mirror is a Material producing a perfect-specular BSDF tinted by
// reflectance, used by spec.md §8 scenario 4's mirror sphere.
type Mirror struct {
	Reflectance reflector.Reflector
}

func (m Mirror) Sample(inter geom.Intersection, aux any, coords any, alloc *bsdf.Allocator, c *reflector.Compositor) (bsdf.BSDF, error) {
	return alloc.NewMirror(m.Reflectance), nil
}
