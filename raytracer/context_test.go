package raytracer

import (
	"errors"
	"testing"

	"github.com/irisphysx/iris/arena"
	"github.com/irisphysx/iris/bsdf"
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/material"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/shape"
	"github.com/irisphysx/iris/spectrum"
)

func singleTriangleTrace(tri *shape.Triangle) Trace {
	return func(ray geom.Ray, tMin, tMax float32) (*geom.Hit, error) {
		return tri.Trace(ray, tMin, tMax)
	}
}

func freshAllocators() (*arena.Arena, *bsdf.Allocator, *reflector.Compositor) {
	return &arena.Arena{}, &bsdf.Allocator{}, &reflector.Compositor{}
}

func TestResolveHitWithMaterialProducesBSDF(t *testing.T) {
	tri, err := shape.NewTriangle(linear.V3{0, 0, 0}, linear.V3{0, 1, 0}, linear.V3{1, 0, 0})
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	tri.FrontMaterial = material.Mirror{Reflectance: reflector.Uniform(0.9)}

	rc := &Context{Trace: singleTriangleTrace(tri), Epsilon: 1e-4}
	rd := geom.Differential{Ray: geom.Ray{Origin: linear.V3{0.2, 0.2, -1}, Dir: linear.V3{0, 0, 1}}}

	texAlloc, bsdfAlloc, refl := freshAllocators()
	res, err := rc.Resolve(rd, texAlloc, bsdfAlloc, refl)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.BSDF == nil {
		t.Fatalf("Resolve should produce a BSDF when the struck face has a material")
	}
	if res.BSDF.IsDiffuse() {
		t.Fatalf("mirror material should produce a non-diffuse BSDF")
	}
	if res.SurfaceNormal != (linear.V3{0, 0, -1}) {
		t.Fatalf("SurfaceNormal = %v, want front-facing normal", res.SurfaceNormal)
	}
}

func TestResolveHitWithoutMaterialReturnsNilBSDF(t *testing.T) {
	tri, _ := shape.NewTriangle(linear.V3{0, 0, 0}, linear.V3{0, 1, 0}, linear.V3{1, 0, 0})
	tri.FrontEmissive = material.Uniform{Spectrum: spectrum.Uniform(1)}

	rc := &Context{Trace: singleTriangleTrace(tri), Epsilon: 1e-4}
	rd := geom.Differential{Ray: geom.Ray{Origin: linear.V3{0.2, 0.2, -1}, Dir: linear.V3{0, 0, 1}}}

	texAlloc, bsdfAlloc, refl := freshAllocators()
	res, err := rc.Resolve(rd, texAlloc, bsdfAlloc, refl)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.BSDF != nil {
		t.Fatalf("Resolve should report a nil BSDF when the struck face has no material")
	}
	if res.Emitted == nil {
		t.Fatalf("Resolve should still report the face's emission")
	}
}

func TestResolveMissWithoutEnvironmentIsEmpty(t *testing.T) {
	miss := func(ray geom.Ray, tMin, tMax float32) (*geom.Hit, error) {
		return nil, ierr.ErrNoIntersection
	}
	rc := &Context{Trace: miss, Epsilon: 1e-4}
	rd := geom.Differential{Ray: geom.Ray{Origin: linear.V3{0, 0, -1}, Dir: linear.V3{0, 0, 1}}}

	texAlloc, bsdfAlloc, refl := freshAllocators()
	res, err := rc.Resolve(rd, texAlloc, bsdfAlloc, refl)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.BSDF != nil || res.Emitted != nil {
		t.Fatalf("Resolve with no hit and no environment should return an empty Result, got %+v", res)
	}
}

type fakeEnvironment struct {
	s spectrum.Spectrum
}

func (f fakeEnvironment) EmissionAlongRay(ray geom.Ray) (spectrum.Spectrum, error) {
	return f.s, nil
}

func TestResolveMissWithEnvironmentReportsEmission(t *testing.T) {
	miss := func(ray geom.Ray, tMin, tMax float32) (*geom.Hit, error) {
		return nil, ierr.ErrNoIntersection
	}
	env := fakeEnvironment{s: spectrum.Uniform(2.5)}
	rc := &Context{Trace: miss, Environment: env, Epsilon: 1e-4}
	rd := geom.Differential{Ray: geom.Ray{Origin: linear.V3{0, 0, -1}, Dir: linear.V3{0, 0, 1}}}

	texAlloc, bsdfAlloc, refl := freshAllocators()
	res, err := rc.Resolve(rd, texAlloc, bsdfAlloc, refl)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Emitted != env.s {
		t.Fatalf("Resolve should forward the environment's emission")
	}
	if res.BSDF != nil {
		t.Fatalf("environment resolution should never produce a BSDF")
	}
}

func TestResolvePropagatesTraceError(t *testing.T) {
	boom := errors.New("boom")
	rc := &Context{Trace: func(ray geom.Ray, tMin, tMax float32) (*geom.Hit, error) {
		return nil, boom
	}, Epsilon: 1e-4}
	rd := geom.Differential{Ray: geom.Ray{Origin: linear.V3{0, 0, -1}, Dir: linear.V3{0, 0, 1}}}

	texAlloc, bsdfAlloc, refl := freshAllocators()
	if _, err := rc.Resolve(rd, texAlloc, bsdfAlloc, refl); !errors.Is(err, boom) {
		t.Fatalf("Resolve should propagate non-ErrNoIntersection trace errors, got %v", err)
	}
}
