package bsdf

import (
	"math"
	"testing"

	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
)

var up = linear.V3{0, 0, 1}

func TestLambertianEnergyConservation(t *testing.T) {
	var alloc Allocator
	var c reflector.Compositor
	b := alloc.NewLambertian(reflector.Uniform(0.6))
	r := rng.New(1)

	// Monte Carlo estimate of integral f * cos(theta) dOmega via
	// cosine-weighted importance sampling: since pdf = cos/pi, the
	// estimator reduces to the mean of (f * pi), which the law of
	// large numbers drives to R (spec.md §8's energy conservation
	// check).
	const n = 20000
	var sum float32
	for i := 0; i < n; i++ {
		s, err := b.Sample(up, up, up, r, &c)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if s.PDF == 0 {
			continue
		}
		cosTheta := linear.DotV3(s.Wi, up)
		sum += s.F.Reflectance(550) * cosTheta / s.PDF
	}
	mean := sum / n
	if mean > 0.6+0.02 || mean < 0.6-0.02 {
		t.Fatalf("energy estimate = %v, want ~0.6", mean)
	}
}

func TestMirrorIsSpecular(t *testing.T) {
	var alloc Allocator
	var c reflector.Compositor
	b := alloc.NewMirror(reflector.Uniform(1))
	r := rng.New(2)

	s, err := b.Sample(up, up, up, r, &c)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if s.Type != LobeSpecular {
		t.Fatalf("mirror sample type = %v, want specular", s.Type)
	}
	if !math.IsInf(float64(s.PDF), 1) {
		t.Fatalf("mirror pdf = %v, want +Inf", s.PDF)
	}
	if linear.DotV3(s.Wi, up) <= 0.99 {
		t.Fatalf("reflecting straight up off a flat normal should bounce straight back up: got %v", s.Wi)
	}
}

func TestMirrorSampleDiffuseIsError(t *testing.T) {
	var alloc Allocator
	var c reflector.Compositor
	b := alloc.NewMirror(reflector.Uniform(1))
	r := rng.New(3)
	if _, err := b.SampleDiffuse(up, up, up, r, &c); err == nil {
		t.Fatalf("SampleDiffuse on a mirror should fail, not silently succeed")
	}
}

func TestAggregateRefusesTooManyChildren(t *testing.T) {
	var alloc Allocator
	children := make([]BSDF, maxAggregateChildren+1)
	for i := range children {
		children[i] = alloc.NewLambertian(reflector.Uniform(0.5))
	}
	if alloc.NewAggregate(children...) != nil {
		t.Fatalf("NewAggregate should reject more than %d children", maxAggregateChildren)
	}
}

func TestAggregateIsDiffuseReflectsChildren(t *testing.T) {
	var alloc Allocator
	mirror := alloc.NewMirror(reflector.Uniform(1))
	agg := alloc.NewAggregate(mirror)
	if agg.IsDiffuse() {
		t.Fatalf("aggregate of only specular children should report IsDiffuse() = false")
	}

	lamb := alloc.NewLambertian(reflector.Uniform(0.5))
	agg2 := alloc.NewAggregate(mirror, lamb)
	if !agg2.IsDiffuse() {
		t.Fatalf("aggregate containing a diffuse child should report IsDiffuse() = true")
	}
}

func TestAllocatorResetReusesStorage(t *testing.T) {
	var alloc Allocator
	for i := 0; i < 50; i++ {
		alloc.NewLambertian(reflector.Uniform(0.5))
	}
	before := alloc.lambertian.Len()
	alloc.Reset()
	for i := 0; i < 50; i++ {
		alloc.NewLambertian(reflector.Uniform(0.5))
	}
	if alloc.lambertian.Len() != before {
		t.Fatalf("Reset then replay grew storage: %d -> %d", before, alloc.lambertian.Len())
	}
}
