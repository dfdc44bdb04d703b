package light

import (
	"math"

	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/raytracer"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
	"github.com/irisphysx/iris/spectrum"
)

const invFourPi = 1 / (4 * math.Pi)

// Radiance is the environmental-light kind's own radiance function: a
// direction (not necessarily a ray origin, since the environment is
// infinitely distant) mapped to incident Spectrum.
type Radiance interface {
	Along(direction linear.V3) (spectrum.Spectrum, error)
}

// UniformRadiance is a Radiance returning the same Spectrum from every
// direction, the simplest environmental light and the one spec.md §8's
// scenarios exercise.
type UniformRadiance struct {
	Spectrum spectrum.Spectrum
}

func (u UniformRadiance) Along(direction linear.V3) (spectrum.Spectrum, error) {
	return u.Spectrum, nil
}

// Environment wraps a Radiance into a Light (spec.md §4.7): sampling
// draws a uniform direction over the sphere and weights it with the
// corresponding constant solid-angle pdf, since nothing here knows the
// Radiance's own importance structure; emission queries simply forward
// to Radiance.Along. Grounded on
// original_source/iris_physx/environmental_light.c's vtable, which
// likewise separates "sample" from the two emission queries.
//
// Environment also satisfies raytracer.EnvironmentLight, so a Context
// can hold one directly without raytracer importing this package.
type Environment struct {
	Radiance Radiance
}

var _ raytracer.EnvironmentLight = (*Environment)(nil)

// SampleFromPoint implements Light; its geometry test is always an
// unbounded shadow ray (spec.md §4.7 "test_any_distance").
func (e *Environment) SampleFromPoint(x, n linear.V3, vt *raytracer.VisibilityTester, rngSrc rng.Source, c *reflector.Compositor) (spectrum.Spectrum, linear.V3, float32, error) {
	u1, u2 := rngSrc.Float2D()
	dir := uniformSphere(u1, u2)

	s, err := e.Radiance.Along(dir)
	if err != nil {
		return nil, linear.V3{}, 0, err
	}
	if s == nil {
		return nil, dir, 0, nil
	}

	visible, err := vt.TestAnyDistance(geom.Ray{Origin: x, Dir: dir})
	if err != nil {
		return nil, linear.V3{}, 0, err
	}
	if !visible {
		return s, dir, 0, nil
	}
	return s, dir, float32(invFourPi), nil
}

func (e *Environment) EmissionAlongRay(ray geom.Ray) (spectrum.Spectrum, error) {
	return e.Radiance.Along(linear.NormV3(ray.Dir))
}

func (e *Environment) EmissionAlongRayWithPDF(ray geom.Ray) (spectrum.Spectrum, float32, error) {
	s, err := e.EmissionAlongRay(ray)
	if err != nil || s == nil {
		return s, 0, err
	}
	return s, float32(invFourPi), nil
}

// uniformSphere maps (u1, u2) in [0,1)^2 to a uniformly distributed
// unit direction, the same construction shape.Sphere.SamplePointOnFace
// uses for its own uniform-area sampling.
func uniformSphere(u1, u2 float32) linear.V3 {
	z := 1 - 2*u1
	r := float32(math.Sqrt(float64(max32(0, 1-z*z))))
	phi := 2 * math.Pi * u2
	return linear.V3{r * float32(math.Cos(float64(phi))), r * float32(math.Sin(float64(phi))), z}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
