package material

import (
	"testing"

	"github.com/irisphysx/iris/bsdf"
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
)

func TestVertexColorInterpolatesAtVertices(t *testing.T) {
	m := VertexColor{
		P0: linear.V3{0, 0, 0}, P1: linear.V3{1, 0, 0}, P2: linear.V3{0, 1, 0},
		R0: reflector.Uniform(1), R1: reflector.Uniform(0), R2: reflector.Uniform(0),
	}
	var alloc bsdf.Allocator
	var c reflector.Compositor
	inter := geom.Intersection{ModelPoint: m.P0}
	b, err := m.Sample(inter, nil, nil, &alloc, &c)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if b == nil {
		t.Fatalf("Sample returned a nil BSDF")
	}
}

func TestVertexColorDegenerateTriangle(t *testing.T) {
	p := linear.V3{0, 0, 0}
	m := VertexColor{P0: p, P1: p, P2: p, R0: reflector.Uniform(1), R1: reflector.Uniform(1), R2: reflector.Uniform(1)}
	var alloc bsdf.Allocator
	var c reflector.Compositor
	_, err := m.Sample(geom.Intersection{ModelPoint: p}, nil, nil, &alloc, &c)
	if err == nil {
		t.Fatalf("expected an error for a degenerate triangle")
	}
}

func TestMirrorMaterialProducesSpecularBSDF(t *testing.T) {
	m := Mirror{Reflectance: reflector.Uniform(0.9)}
	var alloc bsdf.Allocator
	var c reflector.Compositor
	b, err := m.Sample(geom.Intersection{}, nil, nil, &alloc, &c)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if b.IsDiffuse() {
		t.Fatalf("mirror material's BSDF should not be diffuse")
	}
}
