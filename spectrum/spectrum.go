// Package spectrum implements the Spectrum kind of spec.md §3: a
// function wavelength -> non-negative radiance, with both long-lived
// (shared, heap) and short-lived (arena-scoped composite) lifetimes.
package spectrum

// Spectrum samples radiance at a wavelength, in nanometers. Every
// concrete implementation must return a non-negative value for any
// finite, positive wavelength (spec.md §3 "Key invariants").
type Spectrum interface {
	Sample(wavelengthNM float32) float32
}

// Uniform is a long-lived, wavelength-independent spectrum: a flat
// emission or transmission profile, e.g. an already-converted RGB
// light color (the conversion itself is the colorimetry package's
// job, used only at the device-color boundary per spec.md component 9).
type Uniform float32

func (u Uniform) Sample(float32) float32 { return float32(u) }
