package light

import (
	"errors"
	"math"

	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/object"
	"github.com/irisphysx/iris/raytracer"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
	"github.com/irisphysx/iris/shape"
	"github.com/irisphysx/iris/spectrum"
)

// AreaLight adapts (shape, face id, optional model-to-world matrix)
// into a Light (spec.md §4.6). It retains the wrapped shape handles on
// construction and releases them in Free, per spec.md §4.6's "The
// adapter retains the wrapped shape and matrix on creation and
// releases them at free time" — the matrix itself is a plain value
// copy here, so only the shape handles carry reference counts.
type AreaLight struct {
	light        *object.Handle[shape.Shape] // the light-carrying shape
	tracing      *object.Handle[shape.Shape] // the shape actually traced
	face         int
	modelToWorld *linear.M4 // nil means the shape is already in world space
}

// NewAreaLight builds the common case where the traced shape and the
// light-carrying shape are the same object.
func NewAreaLight(s *object.Handle[shape.Shape], face int, modelToWorld *linear.M4) *AreaLight {
	kept := object.Retain(s)
	return &AreaLight{light: kept, tracing: object.Retain(kept), face: face, modelToWorld: modelToWorld}
}

// NewNestedAreaLight builds the variant spec.md §4.6 calls out where
// the shape a ray must be traced against differs from the
// light-carrying shape (e.g. a light embedded inside a surrounding
// hull). The hit-matching rule in match additionally consults
// geom.Hit.Aux so a composite tracing shape can report back which
// embedded shape it actually struck.
func NewNestedAreaLight(tracingShape, lightShape *object.Handle[shape.Shape], face int, modelToWorld *linear.M4) *AreaLight {
	return &AreaLight{
		light:        object.Retain(lightShape),
		tracing:      object.Retain(tracingShape),
		face:         face,
		modelToWorld: modelToWorld,
	}
}

// Free releases the retained shape handles. The AreaLight must not be
// used again afterward.
func (a *AreaLight) Free() {
	object.Release(a.light)
	object.Release(a.tracing)
}

func (a *AreaLight) toModel(worldPoint linear.V3) linear.V3 {
	if a.modelToWorld == nil {
		return worldPoint
	}
	var inv linear.M4
	inv.Invert(a.modelToWorld)
	return linear.TransformPoint(&inv, worldPoint)
}

func (a *AreaLight) toModelDir(worldDir linear.V3) linear.V3 {
	if a.modelToWorld == nil {
		return worldDir
	}
	var inv linear.M4
	inv.Invert(a.modelToWorld)
	return linear.TransformDirection(&inv, worldDir)
}

func (a *AreaLight) toWorld(modelPoint linear.V3) linear.V3 {
	if a.modelToWorld == nil {
		return modelPoint
	}
	return linear.TransformPoint(a.modelToWorld, modelPoint)
}

// match reports whether hit struck the light-carrying shape's target
// face: directly (the traced shape is the light shape) or, in the
// nested variant, via the shape's own report of which embedded shape
// it actually hit (hit.Aux).
func (a *AreaLight) match(hit *geom.Hit) bool {
	if hit.Face != a.face {
		return false
	}
	lightShape := object.State(a.light)
	if hit.Owner == any(lightShape) {
		return true
	}
	return hit.Aux != nil && hit.Aux == any(lightShape)
}

// SampleFromPoint implements spec.md §4.6's sample-from-point.
func (a *AreaLight) SampleFromPoint(x, n linear.V3, vt *raytracer.VisibilityTester, rngSrc rng.Source, c *reflector.Compositor) (spectrum.Spectrum, linear.V3, float32, error) {
	lightShape := object.State(a.light)
	tracingShape := object.State(a.tracing)

	u1, u2 := rngSrc.Float2D()
	yModel, err := lightShape.SamplePointOnFace(a.face, u1, u2)
	if err != nil {
		return nil, linear.V3{}, 0, err
	}
	yWorld := a.toWorld(yModel)

	wi := linear.SubV3(yWorld, x)
	dist := float32(math.Sqrt(float64(linear.DotV3(wi, wi))))
	if dist == 0 {
		return nil, linear.V3{}, 0, nil
	}
	wi = linear.ScaleV3(1/dist, wi)

	xModel := a.toModel(x)
	modelDir := a.toModelDir(wi)
	ray := geom.Ray{Origin: xModel, Dir: modelDir}

	hit, err := tracingShape.Trace(ray, 0, float32(math.Inf(1)))
	if err != nil {
		if errors.Is(err, ierr.ErrNoIntersection) {
			return nil, wi, 0, nil
		}
		return nil, linear.V3{}, 0, err
	}
	if !a.match(hit) {
		return nil, wi, 0, nil
	}

	modelHitPoint := ray.At(hit.Distance)
	em, err := lightShape.EmissiveMaterialForFace(a.face)
	if err != nil {
		return nil, linear.V3{}, 0, err
	}
	if em == nil {
		return nil, wi, 0, nil
	}
	emitted, err := em.Emission(modelHitPoint, hit.Aux)
	if err != nil {
		return nil, linear.V3{}, 0, err
	}
	if emitted == nil {
		return nil, wi, 0, nil
	}

	pdf, err := lightShape.PDFBySolidAngleToFace(a.face, xModel, yModel)
	if err != nil {
		return nil, linear.V3{}, 0, err
	}
	if pdf <= 0 || math.IsInf(float64(pdf), 1) {
		return nil, wi, 0, nil
	}

	visible, err := vt.Test(geom.Ray{Origin: x, Dir: wi}, dist)
	if err != nil {
		return nil, linear.V3{}, 0, err
	}
	if !visible {
		return emitted, wi, 0, nil
	}

	return emitted, wi, pdf, nil
}

// EmissionAlongRay implements spec.md §4.6's emission-along-ray: the
// trace-and-match step alone, with no shape sampling.
func (a *AreaLight) EmissionAlongRay(ray geom.Ray) (spectrum.Spectrum, error) {
	emitted, _, _, err := a.traceAndEvaluate(ray)
	return emitted, err
}

// EmissionAlongRayWithPDF implements spec.md §4.6's
// emission-along-ray-with-pdf: trace, match, and additionally convert
// the hit into a solid-angle pdf as seen from ray's origin.
func (a *AreaLight) EmissionAlongRayWithPDF(ray geom.Ray) (spectrum.Spectrum, float32, error) {
	emitted, modelHitPoint, matched, err := a.traceAndEvaluate(ray)
	if err != nil || !matched || emitted == nil {
		return emitted, 0, err
	}
	lightShape := object.State(a.light)
	xModel := a.toModel(ray.Origin)
	pdf, err := lightShape.PDFBySolidAngleToFace(a.face, xModel, modelHitPoint)
	if err != nil {
		return nil, 0, err
	}
	if pdf <= 0 || math.IsInf(float64(pdf), 1) {
		return nil, 0, nil
	}
	return emitted, pdf, nil
}

func (a *AreaLight) traceAndEvaluate(worldRay geom.Ray) (spectrum.Spectrum, linear.V3, bool, error) {
	tracingShape := object.State(a.tracing)
	lightShape := object.State(a.light)

	modelRay := geom.Ray{Origin: a.toModel(worldRay.Origin), Dir: a.toModelDir(worldRay.Dir)}
	hit, err := tracingShape.Trace(modelRay, 0, float32(math.Inf(1)))
	if err != nil {
		if errors.Is(err, ierr.ErrNoIntersection) {
			return nil, linear.V3{}, false, nil
		}
		return nil, linear.V3{}, false, err
	}
	if !a.match(hit) {
		return nil, linear.V3{}, false, nil
	}

	modelHitPoint := modelRay.At(hit.Distance)
	em, err := lightShape.EmissiveMaterialForFace(a.face)
	if err != nil || em == nil {
		return nil, modelHitPoint, true, err
	}
	emitted, err := em.Emission(modelHitPoint, hit.Aux)
	return emitted, modelHitPoint, true, err
}
