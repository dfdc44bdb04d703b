package colorimetry

import "math"

// cieMatch evaluates the CIE 1931 2-degree standard observer color
// matching functions at wavelengthNM using the multi-lobe Gaussian
// fit of Wyman, Sloan & Shirley ("Simple Analytic Approximations to
// the CIE XYZ Color Matching Functions", JCGT 2013) — standard,
// publicly documented color-science constants, not scene-description
// data, so embedding them here does not pull this package toward the
// parser/file-format concerns spec.md §1 excludes.
func cieMatch(wavelengthNM float32) (x, y, z float32) {
	l := float64(wavelengthNM)
	x = float32(gauss(l, 1.056, 599.8, 37.9, 31.0) +
		gauss(l, 0.362, 442.0, 16.0, 26.7) -
		gauss(l, 0.065, 501.1, 20.4, 26.2))
	y = float32(gauss(l, 0.821, 568.8, 46.9, 40.5) +
		gauss(l, 0.286, 530.9, 16.3, 31.1))
	z = float32(gauss(l, 1.217, 437.0, 11.8, 36.0) +
		gauss(l, 0.681, 459.0, 26.0, 13.8))
	return x, y, z
}

// gauss evaluates an asymmetric Gaussian lobe: a, mu are the peak
// height and center; sigma1/sigma2 are the standard deviations used
// below/above the center, matching the fit's own asymmetric form.
func gauss(t, a, mu, sigma1, sigma2 float64) float64 {
	var sigma float64
	if t < mu {
		sigma = sigma1
	} else {
		sigma = sigma2
	}
	v := (t - mu) / sigma
	return a * math.Exp(-0.5*v*v)
}
