// Package colorimetry implements spec.md component 9, the "color
// integrator / extrapolator": the one place spectra and reflectors
// cross into device RGB, "used at the boundary only" (spec.md §2).
// Nothing upstream of this package ever samples a spectrum for
// display purposes; the integrator works entirely in spectral space
// until a ToneMap callback (package integrator) hands a result here.
//
// Grounded on spec.md component 9's own description of its job (CIE
// XYZ integration, then a device-color matrix) and on
// noisetorch-NoiseTorch's vendored aarzilli/nucular/shiny.go
// fontWidthCache for the "memoize an expensive per-key integral in an
// LRU sized to the working set" idiom this package reuses for
// long-lived spectra, since re-integrating a scene's light spectra
// once per camera sample would dominate render time for no benefit
// (the spectrum is immutable after scene construction).
package colorimetry

import (
	"math"

	lru "github.com/hashicorp/golang-lru"

	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/spectrum"
)

// XYZ is a CIE 1931 tristimulus value.
type XYZ struct {
	X, Y, Z float32
}

// cacheSize bounds the number of distinct long-lived Spectrum
// identities memoized at once; scenes with more unique emissive
// spectra than this simply re-integrate on a cache miss, matching the
// font-width cache's own "size the cache to the working set, tolerate
// misses beyond it" policy.
const cacheSize = 256

// Extrapolator converts Spectrum/Reflector values to XYZ and sRGB,
// memoizing the XYZ integral of long-lived spectra keyed by pointer
// identity. The zero value is not usable; build one with New.
type Extrapolator struct {
	cache      *lru.Cache
	wavelength samplePlan
}

// samplePlan is the fixed wavelength range (nm) and step this
// Extrapolator numerically integrates over. Built once by New; the
// matching-function weights at each wavelength come from the analytic
// CIE 1931 approximation in cie.go (Wyman/Sloan/Shirley's multi-lobe
// Gaussian fit), evaluated per sample rather than stored, not a large
// tabulated dataset, since the fit is accurate to within rendering
// tolerance and needs no embedded table.
type samplePlan struct {
	lo, hi float32
	step   float32
}

// New builds an Extrapolator sampling the visible range 380-720nm in
// 5nm steps (69 samples), the same step size original ray tracers in
// this lineage use for spectral-to-RGB integration.
func New() *Extrapolator {
	c, err := lru.New(cacheSize)
	if err != nil {
		// lru.New only fails for size <= 0, which cacheSize never is.
		panic("colorimetry: New: " + err.Error())
	}
	return &Extrapolator{cache: c, wavelength: samplePlan{lo: 380, hi: 720, step: 5}}
}

// SpectrumXYZ integrates s against the CIE 1931 color-matching
// functions, memoizing the result when s is a long-lived (pointer-
// identity-stable) Spectrum. Arena-scoped composite spectra have no
// stable identity across rays, so callers typically only cache
// top-level scene spectra (light emission profiles); passing a
// composite is correct, just uncached.
func (e *Extrapolator) SpectrumXYZ(s spectrum.Spectrum) XYZ {
	if s == nil {
		return XYZ{}
	}
	if v, ok := e.cache.Get(s); ok {
		return v.(XYZ)
	}
	xyz := e.integrateSpectrum(s)
	e.cache.Add(s, xyz)
	return xyz
}

// ReflectorXYZ integrates r's reflectance against the CIE 1931
// color-matching functions under an equal-energy illuminant, yielding
// the reflector's own XYZ (not a lit appearance) — used when a caller
// wants to preview a material's base color rather than rendered
// radiance.
func (e *Extrapolator) ReflectorXYZ(r reflector.Reflector) XYZ {
	if r == nil {
		return XYZ{}
	}
	return e.integrate(r.Reflectance)
}

func (e *Extrapolator) integrateSpectrum(s spectrum.Spectrum) XYZ {
	return e.integrate(s.Sample)
}

// integrate numerically integrates valueAt against the CIE 1931
// color-matching functions over e.wavelength, normalizing by the
// integral of the y-bar curve so a flat, unit-valued valueAt yields
// Y = 1 regardless of sample spacing.
func (e *Extrapolator) integrate(valueAt func(wavelengthNM float32) float32) XYZ {
	var xyz XYZ
	var normalization float32
	for lambda := e.wavelength.lo; lambda <= e.wavelength.hi; lambda += e.wavelength.step {
		x, y, z := cieMatch(lambda)
		v := valueAt(lambda)
		xyz.X += x * v
		xyz.Y += y * v
		xyz.Z += z * v
		normalization += y
	}
	if normalization > 0 {
		xyz.X /= normalization
		xyz.Y /= normalization
		xyz.Z /= normalization
	}
	return xyz
}

// ToSRGB converts xyz to linear sRGB, per the standard CIE XYZ (D65)
// -> linear-sRGB matrix. It performs no gamma encoding; spec.md §1
// excludes "color-space conversion matrices" beyond this one
// boundary transform, and gamma/display encoding is the external
// renderer's concern (e.g. the PFM writer).
func ToSRGB(xyz XYZ) (r, g, b float32) {
	r = 3.2406*xyz.X - 1.5372*xyz.Y - 0.4986*xyz.Z
	g = -0.9689*xyz.X + 1.8758*xyz.Y + 0.0415*xyz.Z
	b = 0.0557*xyz.X - 0.2040*xyz.Y + 1.0570*xyz.Z
	return clampNonNeg(r), clampNonNeg(g), clampNonNeg(b)
}

func clampNonNeg(v float32) float32 {
	if v < 0 || math.IsNaN(float64(v)) {
		return 0
	}
	return v
}
