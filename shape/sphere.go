package shape

import (
	"math"

	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/material"
	"github.com/irisphysx/iris/texture"
)

// Sphere's two faces: the outward-facing surface a ray entering from
// outside strikes first (front=0), and the inward-facing surface seen
// from inside the sphere (back=1).
const (
	SphereFront = 0
	SphereBack  = 1
)

// Sphere is a model-space sphere, used by spec.md §8 scenario 4's
// mirror sphere. Grounded on
// original_source/iris_physx/sphere.c for the quadratic intersection
// and uniform-area point sampling.
type Sphere struct {
	Center linear.V3
	Radius float32

	FrontMaterial, BackMaterial material.Material
	FrontEmissive, BackEmissive material.EmissiveMaterial
}

// NewSphere validates Radius > 0.
func NewSphere(center linear.V3, radius float32) (*Sphere, error) {
	if radius <= 0 {
		return nil, ierr.InvalidArg(1, "radius must be positive")
	}
	return &Sphere{Center: center, Radius: radius}, nil
}

func (s *Sphere) Bounds() geom.Bounds {
	r := linear.V3{s.Radius, s.Radius, s.Radius}
	return geom.Bounds{Min: linear.SubV3(s.Center, r), Max: linear.AddV3(s.Center, r)}
}

func (s *Sphere) Trace(ray geom.Ray, tMin, tMax float32) (*geom.Hit, error) {
	oc := linear.SubV3(ray.Origin, s.Center)
	a := linear.DotV3(ray.Dir, ray.Dir)
	if a == 0 {
		return nil, ierr.ErrNoIntersection
	}
	b := 2 * linear.DotV3(oc, ray.Dir)
	cc := linear.DotV3(oc, oc) - s.Radius*s.Radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return nil, ierr.ErrNoIntersection
	}
	sqrtDisc := float32(math.Sqrt(float64(disc)))
	t0 := (-b - sqrtDisc) / (2 * a)
	t1 := (-b + sqrtDisc) / (2 * a)

	for _, t := range [2]float32{t0, t1} {
		if t < tMin || t >= tMax {
			continue
		}
		p := ray.At(t)
		n := linear.NormV3(linear.SubV3(p, s.Center))
		face := SphereFront
		if linear.DotV3(ray.Dir, n) > 0 {
			face = SphereBack
		}
		return &geom.Hit{
			Distance:  t,
			Face:      face,
			FrontFace: SphereFront,
			BackFace:  SphereBack,
			Owner:     s,
		}, nil
	}
	return nil, ierr.ErrNoIntersection
}

func (s *Sphere) GeometricNormal(modelPoint linear.V3, face int) (linear.V3, error) {
	if err := validateFace(face, 2); err != nil {
		return linear.V3{}, err
	}
	n := linear.NormV3(linear.SubV3(modelPoint, s.Center))
	if face == SphereBack {
		return linear.NegV3(n), nil
	}
	return n, nil
}

func (s *Sphere) MaterialForFace(face int) (material.Material, error) {
	if err := validateFace(face, 2); err != nil {
		return nil, err
	}
	if face == SphereFront {
		return s.FrontMaterial, nil
	}
	return s.BackMaterial, nil
}

func (s *Sphere) EmissiveMaterialForFace(face int) (material.EmissiveMaterial, error) {
	if err := validateFace(face, 2); err != nil {
		return nil, err
	}
	if face == SphereFront {
		return s.FrontEmissive, nil
	}
	return s.BackEmissive, nil
}

func (s *Sphere) SamplePointOnFace(face int, u1, u2 float32) (linear.V3, error) {
	if err := validateFace(face, 2); err != nil {
		return linear.V3{}, err
	}
	z := 1 - 2*u1
	r := float32(math.Sqrt(float64(max32(0, 1-z*z))))
	phi := 2 * math.Pi * u2
	x := r * float32(math.Cos(float64(phi)))
	y := r * float32(math.Sin(float64(phi)))
	dir := linear.V3{x, y, z}
	return linear.AddV3(s.Center, linear.ScaleV3(s.Radius, dir)), nil
}

func (s *Sphere) PDFBySolidAngleToFace(face int, x, y linear.V3) (float32, error) {
	n, err := s.GeometricNormal(y, face)
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
	area := 4 * float32(math.Pi) * s.Radius * s.Radius
	if cosTheta == 0 || area == 0 {
		return 0, nil
	}
	return dist2 / (cosTheta * area), nil
}

func (s *Sphere) NormalMapForFace(face int) (texture.NormalMap, error) {
	if err := validateFace(face, 2); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Sphere) TextureCoordMapForFace(face int) (texture.CoordMap, error) {
	if err := validateFace(face, 2); err != nil {
		return nil, err
	}
	return nil, nil
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
