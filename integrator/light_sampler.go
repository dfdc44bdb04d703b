package integrator

import "github.com/irisphysx/iris/light"

// LightSampler picks one light per next-event-estimation call (spec.md
// §4.8 step 5: "sample one light via the light sampler"). Spec.md
// leaves the selection strategy unspecified beyond that single line;
// this package supplies the simplest well-formed one, a uniform pick
// over a fixed list, documented as an Open Question decision in
// DESIGN.md.
type LightSampler struct {
	Lights []light.Light
}

// Sample selects a light using u in [0,1) and reports the selection
// probability mass alongside it. A LightSampler with no lights always
// returns (nil, 0).
func (s *LightSampler) Sample(u float32) (light.Light, float32) {
	n := len(s.Lights)
	if n == 0 {
		return nil, 0
	}
	idx := int(u * float32(n))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return s.Lights[idx], 1 / float32(n)
}
