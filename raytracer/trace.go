// Package raytracer implements the visibility tester and ray tracer
// context of spec.md §4.4/§4.5 — "the hardest single piece of
// plumbing" the core exposes. Grounded on
// original_source/iris_physx/visibility_tester.c, ray_tracer.c, and
// ray_tracer_context.c for the exact step order and failure
// propagation.
package raytracer

import "github.com/irisphysx/iris/geom"

// Trace is the closest-hit closure the core consumes from outside
// (spec.md §1: "the core only consumes a trace closure"; BVH
// construction and traversal are an external collaborator's concern).
// It reports the closest hit with Distance in [tMin, tMax), or
// ierr.ErrNoIntersection when nothing is struck in that range.
type Trace func(ray geom.Ray, tMin, tMax float32) (*geom.Hit, error)
