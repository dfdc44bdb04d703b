// Package geom holds the transient, per-ray record types of
// spec.md §3 (Intersection, Hit) plus the small value types (Ray,
// Bounds) every other package needs, kept dependency-free (only
// linear) so that shape, texture, material, light, and raytracer can
// all import it without cycles.
package geom

import "github.com/irisphysx/iris/linear"

// Ray is a half-infinite line, origin + direction. Direction is not
// required to be normalized by this type, but every core operation
// that consumes a Ray documents whether it expects one.
type Ray struct {
	Origin linear.V3
	Dir    linear.V3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) linear.V3 {
	return linear.AddV3(r.Origin, linear.ScaleV3(t, r.Dir))
}

// Differential augments a Ray with the screen-space partial
// derivatives used for texture filtering (spec.md §3 "Intersection").
type Differential struct {
	Ray  Ray
	DPDX linear.V3
	DPDY linear.V3
}

// Bounds is an axis-aligned bounding box in whatever space the
// owning Shape reports it in (model space, per spec.md §4).
type Bounds struct {
	Min, Max linear.V3
}

// Union returns the smallest Bounds containing both a and b.
func Union(a, b Bounds) Bounds {
	min := func(x, y float32) float32 {
		if x < y {
			return x
		}
		return y
	}
	max := func(x, y float32) float32 {
		if x > y {
			return x
		}
		return y
	}
	var out Bounds
	for i := range out.Min {
		out.Min[i] = min(a.Min[i], b.Min[i])
		out.Max[i] = max(a.Max[i], b.Max[i])
	}
	return out
}

// Intersection is the transient record built by the ray tracer
// context (spec.md §3 "Intersection", §4.5 step 5): the ray
// differential plus the hit point in both model and world space and
// the world-space geometric normal, everything downstream texture
// coordinate maps, materials, and normal maps consume.
type Intersection struct {
	Differential Differential
	ModelPoint   linear.V3
	WorldPoint   linear.V3
	WorldNormal  linear.V3
}

// Hit is the transient result of a successful Shape.Trace call
// (spec.md §3 "Hit"): a distance along the ray, which shape-local
// face the ray actually struck plus the shape's declared front/back
// face ids (so callers like the area-light wrapper can compare "the
// face I'm lighting" against "the face this ray hit"), the Shape
// (shape.Shape, held as any so this leaf package stays import-free of
// shape) that produced the hit, and an opaque per-shape auxiliary blob
// that only the originating shape's collaborators (its Material,
// EmissiveMaterial, NormalMap, CoordMap) interpret (spec.md §9
// "Opaque per-shape auxiliary data").
type Hit struct {
	Distance  float32
	Face      int
	FrontFace int
	BackFace  int
	Owner     any
	Aux       any
}
