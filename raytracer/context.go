package raytracer

import (
	"errors"
	"math"

	"github.com/irisphysx/iris/arena"
	"github.com/irisphysx/iris/bsdf"
	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/shape"
	"github.com/irisphysx/iris/spectrum"
	"github.com/irisphysx/iris/texture"
)

// EnvironmentLight is the minimal collaborator Context needs from an
// attached environmental light (spec.md §4.5 step 9): evaluate
// emitted radiance along a ray direction when nothing was hit.
// Package light's Environment satisfies this structurally, so
// raytracer never imports light (which itself imports raytracer for
// VisibilityTester) — this narrow interface is how the two packages
// avoid a cycle.
type EnvironmentLight interface {
	EmissionAlongRay(ray geom.Ray) (spectrum.Spectrum, error)
}

// Context runs the nine-step hit-resolution procedure of spec.md §4.5.
// One Context is created per thread/renderer and reused across rays
// (spec.md §4.3); it holds no per-ray state itself — the allocators
// passed to Resolve are what carry per-ray lifetime.
type Context struct {
	Trace       Trace
	Environment EnvironmentLight // nil if the scene has none
	Epsilon     float32

	// ModelToWorld looks up a shape's model-to-world matrix, or
	// returns nil for an identity transform. Left nil entirely treats
	// every shape as already expressed in world space, the common
	// case for every concrete shape in package shape (which stores
	// its geometry directly, with no separate instance transform).
	ModelToWorld func(owner shape.Shape) *linear.M4
}

// Result is what Resolve produces: spec.md §4.5's "(emitted light,
// BSDF, hit point, surface normal, shading normal)". A nil BSDF with
// a non-nil Emitted is the "material absent" / "ray escaped to the
// environment" case (steps 3 and 9); both nil means the ray hit
// nothing and there is no environment.
type Result struct {
	Emitted       spectrum.Spectrum
	BSDF          bsdf.BSDF
	Intersection  geom.Intersection
	SurfaceNormal linear.V3
	ShadingNormal linear.V3
}

// Resolve implements spec.md §4.5 steps 1-9. texAlloc backs texture
// coordinate blobs (POD, byte arena); bsdfAlloc and reflComp are the
// per-ray BSDF and reflector-compositor allocators used to build the
// material's BSDF.
func (rc *Context) Resolve(rd geom.Differential, texAlloc *arena.Arena, bsdfAlloc *bsdf.Allocator, reflComp *reflector.Compositor) (Result, error) {
	hit, err := rc.Trace(rd.Ray, rc.Epsilon, float32(math.Inf(1)))
	if err != nil {
		if errors.Is(err, ierr.ErrNoIntersection) {
			return rc.resolveEnvironment(rd)
		}
		return Result{}, err
	}

	owner, ok := hit.Owner.(shape.Shape)
	if !ok {
		return Result{}, ierr.InvalidResult("hit owner does not implement shape.Shape")
	}

	modelPoint := rd.Ray.At(hit.Distance)

	emitted, err := rc.emission(owner, hit, modelPoint)
	if err != nil {
		return Result{}, err
	}

	mat, err := owner.MaterialForFace(hit.Face)
	if err != nil {
		return Result{}, err
	}
	if mat == nil {
		return Result{Emitted: emitted}, nil
	}

	modelNormal, err := owner.GeometricNormal(modelPoint, hit.Face)
	if err != nil {
		return Result{}, err
	}
	if !finiteNonZero(modelNormal) {
		return Result{}, ierr.InvalidResult("shape reported a non-finite or zero geometric normal")
	}

	m2w := rc.transformFor(owner)
	worldPoint, worldNormal := modelPoint, modelNormal
	if m2w != nil {
		worldPoint = linear.TransformPoint(m2w, modelPoint)
		invT := linear.InvertTranspose(m2w)
		worldNormal = linear.TransformNormal(&invT, modelNormal)
	}

	inter := geom.Intersection{
		Differential: rd,
		ModelPoint:   modelPoint,
		WorldPoint:   worldPoint,
		WorldNormal:  worldNormal,
	}

	coords, err := rc.textureCoords(owner, hit, inter, texAlloc)
	if err != nil {
		return Result{}, err
	}

	b, err := mat.Sample(inter, hit.Aux, coords, bsdfAlloc, reflComp)
	if err != nil {
		return Result{}, err
	}

	shadingNormal, err := rc.shadingNormal(owner, hit, inter, modelNormal, worldNormal, coords, m2w)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Emitted:       emitted,
		BSDF:          b,
		Intersection:  inter,
		SurfaceNormal: worldNormal,
		ShadingNormal: shadingNormal,
	}, nil
}

func (rc *Context) resolveEnvironment(rd geom.Differential) (Result, error) {
	if rc.Environment == nil {
		return Result{}, nil
	}
	s, err := rc.Environment.EmissionAlongRay(rd.Ray)
	if err != nil {
		return Result{}, err
	}
	return Result{Emitted: s}, nil
}

func (rc *Context) emission(owner shape.Shape, hit *geom.Hit, modelPoint linear.V3) (spectrum.Spectrum, error) {
	em, err := owner.EmissiveMaterialForFace(hit.Face)
	if err != nil || em == nil {
		return nil, err
	}
	return em.Emission(modelPoint, hit.Aux)
}

func (rc *Context) textureCoords(owner shape.Shape, hit *geom.Hit, inter geom.Intersection, texAlloc *arena.Arena) (any, error) {
	cm, err := owner.TextureCoordMapForFace(hit.Face)
	if err != nil || cm == nil {
		return nil, err
	}
	return cm.Compute(inter, texAlloc)
}

func (rc *Context) shadingNormal(owner shape.Shape, hit *geom.Hit, inter geom.Intersection, modelNormal, worldNormal linear.V3, coords any, m2w *linear.M4) (linear.V3, error) {
	nm, err := owner.NormalMapForFace(hit.Face)
	if err != nil {
		return linear.V3{}, err
	}
	if nm == nil {
		return worldNormal, nil
	}
	n, tag, err := nm.Compute(inter, modelNormal, worldNormal, hit.Aux, coords)
	if err != nil {
		return linear.V3{}, err
	}
	if tag == texture.NormalSpaceModel && m2w != nil {
		invT := linear.InvertTranspose(m2w)
		n = linear.TransformNormal(&invT, n)
	} else {
		n = linear.NormV3(n)
	}
	if !finiteNonZero(n) {
		return linear.V3{}, ierr.InvalidResult("normal map produced a non-finite or zero normal")
	}
	return n, nil
}

func (rc *Context) transformFor(owner shape.Shape) *linear.M4 {
	if rc.ModelToWorld == nil {
		return nil
	}
	return rc.ModelToWorld(owner)
}

func finiteNonZero(v linear.V3) bool {
	zero := true
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
		if c != 0 {
			zero = false
		}
	}
	return !zero
}
