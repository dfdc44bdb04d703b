// Package texture implements the texture-coordinate map, normal map,
// and concrete image-texture kinds of spec.md §3/§4.5/§4.9, adapted
// from the teacher's GPU-resident texture model
// (gviegas-neo3/engine/texture/texture.go, engine/material/material.go's
// TexRef/UVSet) down to a plain in-memory float sampler — there is no
// GPU, no descriptor set, and no image file format here; SPEC_FULL.md
// keeps those concerns external.
package texture

import (
	"unsafe"

	"github.com/irisphysx/iris/arena"
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
)

// CoordMap computes the opaque per-hit coordinate blob a shape's face
// contributes (spec.md §4.5 step 6). The allocator is the per-ray
// texture-coordinate allocator (spec.md §4.3): a byte-oriented arena,
// since a coordinate blob is POD with no Go pointers inside it.
type CoordMap interface {
	Compute(inter geom.Intersection, alloc *arena.Arena) (any, error)
}

// NormalTag says whether a NormalMap's returned normal is already in
// world space or still needs the inverse-transpose transform spec.md
// §4.5 step 8 describes.
type NormalTag int

const (
	NormalSpaceModel NormalTag = iota
	NormalSpaceWorld
)

// NormalMap perturbs the geometric normal at a hit (spec.md §4.5 step
// 8). aux is the shape's opaque per-hit data; coords is whatever the
// face's CoordMap produced. Only the originating shape's collaborators
// are expected to know how to interpret aux and coords (spec.md §9
// "Opaque per-shape auxiliary data").
type NormalMap interface {
	Compute(inter geom.Intersection, modelNormal, worldNormal linear.V3, aux any, coords any) (n linear.V3, tag NormalTag, err error)
}

// UV is the concrete coordinate-blob layout produced by TriangleUVMap
// and consumed by Image. Downstream code recovers it from the opaque
// any with AsUV.
type UV struct {
	U, V float32
}

// AsUV downcasts an opaque coordinate blob to *UV, reporting whether
// coords actually came from a UV-producing CoordMap.
func AsUV(coords any) (*UV, bool) {
	uv, ok := coords.(*UV)
	return uv, ok
}

// allocUV places a UV value inside the byte-oriented arena and returns
// a pointer into it. UV holds only float32 fields, so reinterpreting
// the arena's raw bytes as *UV carries no Go pointers the garbage
// collector would need to trace — exactly the POD case arena.Arena is
// for (see arena.go's package doc comment).
func allocUV(a *arena.Arena, uv UV) (*UV, error) {
	alloc, err := a.Allocate(arena.Layout{
		Size:  int(unsafe.Sizeof(UV{})),
		Align: int(unsafe.Alignof(UV{})),
	})
	if err != nil {
		return nil, err
	}
	p := (*UV)(unsafe.Pointer(&alloc.Primary[0]))
	*p = uv
	return p, nil
}

// TriangleUVMap is a CoordMap bound to one triangle face: given the
// model-space hit point it recovers barycentric weights against the
// face's three vertices and interpolates their UV coordinates.
// Grounded on original_source/iris_physx/shape.c's triangle texture
// coordinate sample, which does the same barycentric recovery from a
// model-space point rather than carrying (u,v) forward from
// intersection time.
type TriangleUVMap struct {
	P0, P1, P2    linear.V3
	UV0, UV1, UV2 UV
}

// Compute implements CoordMap.
func (m TriangleUVMap) Compute(inter geom.Intersection, alloc *arena.Arena) (any, error) {
	w0, w1, w2, ok := Barycentric(m.P0, m.P1, m.P2, inter.ModelPoint)
	if !ok {
		return nil, ierr.InvalidResult("degenerate triangle in texture coordinate map")
	}
	uv := UV{
		U: w0*m.UV0.U + w1*m.UV1.U + w2*m.UV2.U,
		V: w0*m.UV0.V + w1*m.UV1.V + w2*m.UV2.V,
	}
	return allocUV(alloc, uv)
}

// Barycentric recovers the barycentric weights of p against triangle
// (p0, p1, p2), assuming p lies in the triangle's plane. ok is false
// for a degenerate (zero-area) triangle.
func Barycentric(p0, p1, p2, p linear.V3) (w0, w1, w2 float32, ok bool) {
	e0 := linear.SubV3(p1, p0)
	e1 := linear.SubV3(p2, p0)
	e2 := linear.SubV3(p, p0)
	d00 := linear.DotV3(e0, e0)
	d01 := linear.DotV3(e0, e1)
	d11 := linear.DotV3(e1, e1)
	d20 := linear.DotV3(e2, e0)
	d21 := linear.DotV3(e2, e1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return 0, 0, 0, false
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return u, v, w, true
}

// Image is a concrete texture (spec.md component 1's "texture" kind):
// a width x height grid of reflectors sampled by bilinearly filtered
// UV lookup, adapted from engine/texture/texture.go's 2D image layout
// without its GPU residency.
type Image struct {
	Width, Height int
	Texels        []reflector.Reflector // row-major, len == Width*Height
}

// Sample bilinearly filters the four texels surrounding (u, v) — each
// wrapped to [0,1) — and returns a Compositor-scoped composite
// reflector computing the blend. c must share the calling ray's
// lifetime.
func (img *Image) Sample(u, v float32, c *reflector.Compositor) reflector.Reflector {
	if img.Width <= 0 || img.Height <= 0 || len(img.Texels) == 0 {
		return reflector.Uniform(0)
	}
	u = wrap01(u)
	v = wrap01(v)

	fx := u*float32(img.Width) - 0.5
	fy := v*float32(img.Height) - 0.5
	x0 := wrapInt(int(floor(fx)), img.Width)
	y0 := wrapInt(int(floor(fy)), img.Height)
	x1 := wrapInt(x0+1, img.Width)
	y1 := wrapInt(y0+1, img.Height)
	tx := fx - floor(fx)
	ty := fy - floor(fy)

	t00 := img.at(x0, y0)
	t10 := img.at(x1, y0)
	t01 := img.at(x0, y1)
	t11 := img.at(x1, y1)

	top := c.Add(c.Attenuate(t00, 1-tx), c.Attenuate(t10, tx))
	bottom := c.Add(c.Attenuate(t01, 1-tx), c.Attenuate(t11, tx))
	return c.Add(c.Attenuate(top, 1-ty), c.Attenuate(bottom, ty))
}

func (img *Image) at(x, y int) reflector.Reflector {
	r := img.Texels[y*img.Width+x]
	if r == nil {
		return reflector.Uniform(0)
	}
	return r
}

func wrap01(x float32) float32 {
	x -= floor(x)
	if x < 0 {
		x += 1
	}
	return x
}

func wrapInt(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}

func floor(x float32) float32 {
	i := float32(int(x))
	if x < 0 && i != x {
		return i - 1
	}
	return i
}
