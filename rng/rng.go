// Package rng defines the random-source contract consumed by BSDF
// sampling, light sampling, and the path-tracer integrator. The core
// never owns the actual generator — spec.md §6 lists "rng" among the
// values passed into shading callbacks from outside — so this package
// is just the narrow interface plus one concrete, dependency-free
// implementation for tests and single-threaded harness use.
package rng

import "math/rand"

// Source produces the two shapes of randomness the shading pipeline
// needs: a single uniform scalar in [0,1) (Russian roulette, light
// selection) and a pair of uniform scalars in [0,1) (hemisphere
// sampling, microfacet half-vector sampling).
type Source interface {
	Float1D() float32
	Float2D() (float32, float32)
}

// Default wraps math/rand.Rand as a Source. It is not safe for
// concurrent use by multiple goroutines, matching spec.md §5's
// requirement that a ray context (and everything it touches, rng
// included) belongs to exactly one thread at a time.
type Default struct {
	r *rand.Rand
}

// New returns a Default seeded deterministically from seed, so tests
// can reproduce a sampling sequence exactly.
func New(seed int64) *Default {
	return &Default{r: rand.New(rand.NewSource(seed))}
}

func (d *Default) Float1D() float32 { return float32(d.r.Float64()) }

func (d *Default) Float2D() (float32, float32) {
	return float32(d.r.Float64()), float32(d.r.Float64())
}
