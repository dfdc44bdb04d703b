package shape

import (
	"math"

	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/material"
	"github.com/irisphysx/iris/texture"
)

// Triangle's two faces, matching spec.md §3's "e.g. front=0, back=1".
const (
	TriangleFront = 0
	TriangleBack  = 1
)

// Triangle is a flat, model-space triangle with independent
// front/back materials, an optional front-face emissive material
// (spec.md §8 scenario 3's area light), and optional per-face texture
// collaborators. Grounded on
// original_source/iris_physx/triangle.c for the geometric formulas
// (Möller-Trumbore intersection, area-weighted point sampling).
type Triangle struct {
	P0, P1, P2 linear.V3

	FrontMaterial, BackMaterial   material.Material
	FrontEmissive                 material.EmissiveMaterial
	FrontCoordMap, BackCoordMap   texture.CoordMap
	FrontNormalMap, BackNormalMap texture.NormalMap

	normal linear.V3
	area   float32
}

// NewTriangle validates the triangle is non-degenerate and
// precomputes its normal and area.
func NewTriangle(p0, p1, p2 linear.V3) (*Triangle, error) {
	e1 := linear.SubV3(p1, p0)
	e2 := linear.SubV3(p2, p0)
	cr := linear.Cross(e1, e2)
	l := linear.LenV3(cr)
	if l == 0 {
		return nil, ierr.InvalidCombination(0, "degenerate triangle (zero area)")
	}
	return &Triangle{
		P0: p0, P1: p1, P2: p2,
		normal: linear.ScaleV3(1/l, cr),
		area:   l / 2,
	}, nil
}

func (t *Triangle) Bounds() geom.Bounds {
	min := func(a, b float32) float32 {
		if a < b {
			return a
		}
		return b
	}
	max := func(a, b float32) float32 {
		if a > b {
			return a
		}
		return b
	}
	var out geom.Bounds
	for i := 0; i < 3; i++ {
		out.Min[i] = min(t.P0[i], min(t.P1[i], t.P2[i]))
		out.Max[i] = max(t.P0[i], max(t.P1[i], t.P2[i]))
	}
	return out
}

// Trace implements Möller-Trumbore intersection, reporting
// ierr.ErrNoIntersection when the ray misses or lands outside
// [tMin, tMax).
func (t *Triangle) Trace(ray geom.Ray, tMin, tMax float32) (*geom.Hit, error) {
	const epsilon = 1e-8
	e1 := linear.SubV3(t.P1, t.P0)
	e2 := linear.SubV3(t.P2, t.P0)
	pvec := linear.Cross(ray.Dir, e2)
	det := linear.DotV3(e1, pvec)
	if det > -epsilon && det < epsilon {
		return nil, ierr.ErrNoIntersection
	}
	invDet := 1 / det
	tvec := linear.SubV3(ray.Origin, t.P0)
	u := linear.DotV3(tvec, pvec) * invDet
	if u < 0 || u > 1 {
		return nil, ierr.ErrNoIntersection
	}
	qvec := linear.Cross(tvec, e1)
	v := linear.DotV3(ray.Dir, qvec) * invDet
	if v < 0 || u+v > 1 {
		return nil, ierr.ErrNoIntersection
	}
	dist := linear.DotV3(e2, qvec) * invDet
	if dist < tMin || dist >= tMax {
		return nil, ierr.ErrNoIntersection
	}

	face := TriangleFront
	if linear.DotV3(ray.Dir, t.normal) > 0 {
		face = TriangleBack
	}
	return &geom.Hit{
		Distance:  dist,
		Face:      face,
		FrontFace: TriangleFront,
		BackFace:  TriangleBack,
		Owner:     t,
	}, nil
}

func (t *Triangle) GeometricNormal(modelPoint linear.V3, face int) (linear.V3, error) {
	if err := validateFace(face, 2); err != nil {
		return linear.V3{}, err
	}
	if face == TriangleFront {
		return t.normal, nil
	}
	return linear.NegV3(t.normal), nil
}

func (t *Triangle) MaterialForFace(face int) (material.Material, error) {
	if err := validateFace(face, 2); err != nil {
		return nil, err
	}
	if face == TriangleFront {
		return t.FrontMaterial, nil
	}
	return t.BackMaterial, nil
}

func (t *Triangle) EmissiveMaterialForFace(face int) (material.EmissiveMaterial, error) {
	if err := validateFace(face, 2); err != nil {
		return nil, err
	}
	if face == TriangleFront {
		return t.FrontEmissive, nil
	}
	return nil, nil
}

func (t *Triangle) SamplePointOnFace(face int, u1, u2 float32) (linear.V3, error) {
	if err := validateFace(face, 2); err != nil {
		return linear.V3{}, err
	}
	su1 := float32(math.Sqrt(float64(u1)))
	w0 := 1 - su1
	w1 := su1 * (1 - u2)
	w2 := su1 * u2
	p := linear.AddV3(linear.AddV3(linear.ScaleV3(w0, t.P0), linear.ScaleV3(w1, t.P1)), linear.ScaleV3(w2, t.P2))
	return p, nil
}

func (t *Triangle) PDFBySolidAngleToFace(face int, x, y linear.V3) (float32, error) {
	n, err := t.GeometricNormal(y, face)
	if err != nil {
		return 0, err
	}
	d := linear.SubV3(y, x)
	dist2 := linear.DotV3(d, d)
	if dist2 == 0 {
		return 0, nil
	}
	cosTheta := linear.DotV3(linear.NormV3(d), n)
	if cosTheta < 0 {
		cosTheta = -cosTheta
	}
	if cosTheta == 0 || t.area == 0 {
		return 0, nil
	}
	return dist2 / (cosTheta * t.area), nil
}

func (t *Triangle) NormalMapForFace(face int) (texture.NormalMap, error) {
	if err := validateFace(face, 2); err != nil {
		return nil, err
	}
	if face == TriangleFront {
		return t.FrontNormalMap, nil
	}
	return t.BackNormalMap, nil
}

func (t *Triangle) TextureCoordMapForFace(face int) (texture.CoordMap, error) {
	if err := validateFace(face, 2); err != nil {
		return nil, err
	}
	if face == TriangleFront {
		return t.FrontCoordMap, nil
	}
	return t.BackCoordMap, nil
}
