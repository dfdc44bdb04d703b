// Package scene implements spec.md §3's Scene entity: "exposes
// {trace(ray) -> hits} and owns an optional environmental light."
// Adapted from the teacher's scene/scene.go (a Scene struct wrapping
// one embedded collaborator with an Init-style constructor) — here
// the wrapped collaborator is a raytracer.Trace closure plus an
// optional environment instead of a node.Graph, since spec.md §1
// explicitly places BVH/spatial-index construction outside the core:
// a Scene is handed a working trace closure by its (external) owner,
// it never builds one itself.
package scene

import (
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/raytracer"
	"github.com/irisphysx/iris/shape"
)

// Scene is spec.md §3's Scene entity. The zero value is not usable;
// build one with New.
type Scene struct {
	trace        raytracer.Trace
	environment  raytracer.EnvironmentLight // nil if the scene has none
	modelToWorld func(owner shape.Shape) *linear.M4
}

// New builds a Scene from a caller-supplied trace closure (spec.md
// §1: "the core only consumes a trace closure") and an optional
// environmental light. trace must not be nil; environment may be nil.
func New(trace raytracer.Trace, environment raytracer.EnvironmentLight) *Scene {
	if trace == nil {
		panic("scene.New: nil trace")
	}
	return &Scene{trace: trace, environment: environment}
}

// WithTransforms attaches a model-to-world lookup used by Context's
// instancing support (spec.md §4.5 step 4); the default Scene treats
// every shape as already expressed in world space.
func (s *Scene) WithTransforms(modelToWorld func(owner shape.Shape) *linear.M4) *Scene {
	s.modelToWorld = modelToWorld
	return s
}

// Trace finds the closest hit along ray within [tMin, tMax),
// forwarding to the closure this Scene was built with (spec.md §3:
// "exposes {trace(ray) -> hits}").
func (s *Scene) Trace(ray geom.Ray, tMin, tMax float32) (*geom.Hit, error) {
	return s.trace(ray, tMin, tMax)
}

// Environment returns the scene's attached environmental light, or
// nil if none was configured.
func (s *Scene) Environment() raytracer.EnvironmentLight {
	return s.environment
}

// NewContext builds a raytracer.Context wired to this Scene's trace
// closure, environment, and transform lookup, ready for Resolve calls
// (spec.md §4.5). epsilon is the starting ray epsilon (spec.md §4.8).
func (s *Scene) NewContext(epsilon float32) *raytracer.Context {
	return &raytracer.Context{
		Trace:        s.Trace,
		Environment:  s.environment,
		Epsilon:      epsilon,
		ModelToWorld: s.modelToWorld,
	}
}
