package shape

import (
	"errors"
	"testing"

	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
)

func TestTriangleFrontBackHit(t *testing.T) {
	tri, err := NewTriangle(linear.V3{0, 0, 0}, linear.V3{0, 1, 0}, linear.V3{1, 0, 0})
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	front := geom.Ray{Origin: linear.V3{0.2, 0.2, -1}, Dir: linear.V3{0, 0, 1}}
	hit, err := tri.Trace(front, 0, 1e30)
	if err != nil {
		t.Fatalf("Trace front: %v", err)
	}
	if hit.Face != TriangleFront {
		t.Fatalf("Face = %v, want front", hit.Face)
	}

	back := geom.Ray{Origin: linear.V3{0.2, 0.2, 1}, Dir: linear.V3{0, 0, -1}}
	hit, err = tri.Trace(back, 0, 1e30)
	if err != nil {
		t.Fatalf("Trace back: %v", err)
	}
	if hit.Face != TriangleBack {
		t.Fatalf("Face = %v, want back", hit.Face)
	}
}

func TestTriangleMiss(t *testing.T) {
	tri, _ := NewTriangle(linear.V3{0, 0, 0}, linear.V3{1, 0, 0}, linear.V3{0, 1, 0})
	ray := geom.Ray{Origin: linear.V3{5, 5, -1}, Dir: linear.V3{0, 0, 1}}
	if _, err := tri.Trace(ray, 0, 1e30); !errors.Is(err, ierr.ErrNoIntersection) {
		t.Fatalf("Trace miss = %v, want ErrNoIntersection", err)
	}
}

func TestDegenerateTriangleRejected(t *testing.T) {
	p := linear.V3{1, 1, 1}
	if _, err := NewTriangle(p, p, p); err == nil {
		t.Fatalf("NewTriangle should reject a zero-area triangle")
	}
}

func TestTriangleFaceValidation(t *testing.T) {
	tri, _ := NewTriangle(linear.V3{0, 0, 0}, linear.V3{1, 0, 0}, linear.V3{0, 1, 0})
	if _, err := tri.MaterialForFace(2); err == nil {
		t.Fatalf("MaterialForFace(2) should fail for a 2-face shape")
	}
}

func TestTriangleSamplePointOnFaceInsideTriangle(t *testing.T) {
	tri, _ := NewTriangle(linear.V3{0, 0, 0}, linear.V3{1, 0, 0}, linear.V3{0, 1, 0})
	p, err := tri.SamplePointOnFace(TriangleFront, 0.3, 0.6)
	if err != nil {
		t.Fatalf("SamplePointOnFace: %v", err)
	}
	if p[0] < 0 || p[1] < 0 || p[0]+p[1] > 1.0001 {
		t.Fatalf("sampled point %v lies outside the triangle", p)
	}
}

func TestSphereFrontBackHit(t *testing.T) {
	s, err := NewSphere(linear.V3{0, 0, 0}, 1)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	outside := geom.Ray{Origin: linear.V3{0, 0, -3}, Dir: linear.V3{0, 0, 1}}
	hit, err := s.Trace(outside, 0, 1e30)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if hit.Face != SphereFront {
		t.Fatalf("Face = %v, want front (hit from outside)", hit.Face)
	}
	if abs32(hit.Distance-2) > 1e-4 {
		t.Fatalf("Distance = %v, want 2", hit.Distance)
	}

	inside := geom.Ray{Origin: linear.V3{0, 0, 0}, Dir: linear.V3{0, 0, 1}}
	hit, err = s.Trace(inside, 0, 1e30)
	if err != nil {
		t.Fatalf("Trace from inside: %v", err)
	}
	if hit.Face != SphereBack {
		t.Fatalf("Face = %v, want back (hit from inside)", hit.Face)
	}
}

func TestSphereMiss(t *testing.T) {
	s, _ := NewSphere(linear.V3{0, 0, 0}, 1)
	ray := geom.Ray{Origin: linear.V3{5, 5, -3}, Dir: linear.V3{0, 0, 1}}
	if _, err := s.Trace(ray, 0, 1e30); !errors.Is(err, ierr.ErrNoIntersection) {
		t.Fatalf("Trace miss = %v, want ErrNoIntersection", err)
	}
}

func TestInvalidRadiusRejected(t *testing.T) {
	if _, err := NewSphere(linear.V3{}, 0); err == nil {
		t.Fatalf("NewSphere should reject a non-positive radius")
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
