// Package shape implements the Shape kind of spec.md §3/§4.5: the
// hardest single piece of plumbing the core exposes, described as
// "explicitly out of scope" for its BVH/spatial-index concerns but
// very much in scope for the per-primitive geometric contract a BVH
// (an external collaborator) would sit on top of. Concrete shapes are
// grounded on original_source/iris_physx/shape.c and its triangle/
// sphere siblings, since spec.md §1 excludes concrete geometric
// formulas from the core's own responsibility but SPEC_FULL.md §4.6
// supplements two shapes so the rest of the pipeline (materials,
// lights, the ray tracer context) has real collaborators to drive.
package shape

import (
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/material"
	"github.com/irisphysx/iris/texture"
)

// Shape is spec.md §3's Shape contract, long-lived and shared: trace,
// bounds, geometric normal, material/emissive-material lookup by
// face, emission sampling by face, and the per-face texture
// collaborators. Faces are a per-shape small index (front=0, back=1
// for both shapes in this package).
type Shape interface {
	// Trace finds the closest hit along ray within [tMin, tMax), or
	// reports ierr.ErrNoIntersection.
	Trace(ray geom.Ray, tMin, tMax float32) (*geom.Hit, error)

	Bounds() geom.Bounds

	// GeometricNormal returns the model-space geometric normal at
	// modelPoint for the given face.
	GeometricNormal(modelPoint linear.V3, face int) (linear.V3, error)

	// MaterialForFace returns the face's Material, or nil if the face
	// has none (spec.md §4.5 step 3: "If absent, return... BSDF =
	// null").
	MaterialForFace(face int) (material.Material, error)

	// EmissiveMaterialForFace returns the face's EmissiveMaterial, or
	// nil if the face does not emit. A shape exposes either all three
	// of {EmissiveMaterialForFace, SamplePointOnFace,
	// PDFBySolidAngleToFace} for an emissive face, or none of them
	// (spec.md §3 "Key invariants").
	EmissiveMaterialForFace(face int) (material.EmissiveMaterial, error)

	// SamplePointOnFace draws a model-space point on face from u1, u2
	// (each in [0,1)), uniformly by area.
	SamplePointOnFace(face int, u1, u2 float32) (linear.V3, error)

	// PDFBySolidAngleToFace converts the face's uniform-area sampling
	// density to a solid-angle pdf as seen from model-space point x
	// toward model-space point y on the face (spec.md §4.6 step 4).
	// Per spec.md §9's open question, this assumes the face is convex
	// and does not validate it.
	PDFBySolidAngleToFace(face int, x, y linear.V3) (float32, error)

	// NormalMapForFace returns the face's NormalMap, or nil if none.
	NormalMapForFace(face int) (texture.NormalMap, error)

	// TextureCoordMapForFace returns the face's CoordMap, or nil if
	// none.
	TextureCoordMapForFace(face int) (texture.CoordMap, error)
}

// validateFace is the shared out-of-range guard every concrete shape
// applies at every face-indexed entry point (spec.md §3: "passing an
// out-of-range face id fails with an invalid-argument error kind
// rather than producing undefined behavior").
func validateFace(face, numFaces int) error {
	if face < 0 || face >= numFaces {
		return ierr.InvalidArg(0, "face id out of range")
	}
	return nil
}
