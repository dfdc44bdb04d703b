package texture

import (
	"testing"

	"github.com/irisphysx/iris/arena"
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
)

func TestBarycentricVertices(t *testing.T) {
	p0 := linear.V3{0, 0, 0}
	p1 := linear.V3{1, 0, 0}
	p2 := linear.V3{0, 1, 0}
	for _, tc := range []struct {
		p          linear.V3
		w0, w1, w2 float32
	}{
		{p0, 1, 0, 0},
		{p1, 0, 1, 0},
		{p2, 0, 0, 1},
	} {
		w0, w1, w2, ok := Barycentric(p0, p1, p2, tc.p)
		if !ok {
			t.Fatalf("Barycentric reported degenerate for a valid triangle")
		}
		if abs(w0-tc.w0) > 1e-5 || abs(w1-tc.w1) > 1e-5 || abs(w2-tc.w2) > 1e-5 {
			t.Fatalf("Barycentric(%v) = (%v,%v,%v), want (%v,%v,%v)", tc.p, w0, w1, w2, tc.w0, tc.w1, tc.w2)
		}
	}
}

func TestBarycentricDegenerate(t *testing.T) {
	p0 := linear.V3{0, 0, 0}
	if _, _, _, ok := Barycentric(p0, p0, p0, p0); ok {
		t.Fatalf("Barycentric should report degenerate for a zero-area triangle")
	}
}

func TestTriangleUVMapInterpolates(t *testing.T) {
	m := TriangleUVMap{
		P0: linear.V3{0, 0, 0}, P1: linear.V3{1, 0, 0}, P2: linear.V3{0, 1, 0},
		UV0: UV{0, 0}, UV1: UV{1, 0}, UV2: UV{0, 1},
	}
	var a arena.Arena
	inter := geom.Intersection{ModelPoint: linear.V3{0.5, 0.5, 0}}
	coords, err := m.Compute(inter, &a)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	uv, ok := AsUV(coords)
	if !ok {
		t.Fatalf("AsUV failed on TriangleUVMap output")
	}
	if abs(uv.U-0.5) > 1e-5 || abs(uv.V-0.5) > 1e-5 {
		t.Fatalf("interpolated UV = %v, want (0.5, 0.5)", uv)
	}
}

func TestImageSampleAtTexelCenter(t *testing.T) {
	img := &Image{
		Width: 2, Height: 1,
		Texels: []reflector.Reflector{reflector.Uniform(0.2), reflector.Uniform(0.8)},
	}
	var c reflector.Compositor
	got := img.Sample(0.25, 0.5, &c).Reflectance(550)
	if abs(got-0.2) > 1e-4 {
		t.Fatalf("Sample at first texel center = %v, want ~0.2", got)
	}
}

func TestImageSampleEmpty(t *testing.T) {
	img := &Image{}
	var c reflector.Compositor
	if got := img.Sample(0.5, 0.5, &c).Reflectance(550); got != 0 {
		t.Fatalf("empty Image.Sample = %v, want 0", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
