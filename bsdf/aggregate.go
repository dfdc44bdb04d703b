package bsdf

import (
	"github.com/irisphysx/iris/internal/ierr"
	"github.com/irisphysx/iris/linear"
	"github.com/irisphysx/iris/reflector"
	"github.com/irisphysx/iris/rng"
)

// maxAggregateChildren is the fixed fan-in of spec.md §4.9's aggregate
// BSDF ("up to 8 child BSDFs").
const maxAggregateChildren = 8

// aggregateBSDF combines up to 8 child BSDFs: sampling picks a
// uniform child, then averages the diffuse pdf of every other child
// at the sampled direction for MIS (spec.md §4.9). storage backs
// children with no extra heap allocation per aggregate.
type aggregateBSDF struct {
	storage  [maxAggregateChildren]BSDF
	children []BSDF
}

func (a *aggregateBSDF) IsDiffuse() bool {
	for _, ch := range a.children {
		if ch.IsDiffuse() {
			return true
		}
	}
	return false
}

func (a *aggregateBSDF) Sample(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	n := len(a.children)
	if n == 0 {
		return Sample{}, ierr.InvalidResult("aggregate BSDF has no children")
	}
	idx := pickChild(r, n)
	s, err := a.children[idx].Sample(wo, surfaceNormal, shadingNormal, r, c)
	if err != nil || s.PDF == 0 || s.Type == LobeSpecular {
		return s, err
	}
	s.PDF = a.averagedPDF(wo, shadingNormal, s, idx, n, c)
	return s, nil
}

func (a *aggregateBSDF) SampleDiffuse(wo, surfaceNormal, shadingNormal linear.V3, r rng.Source, c *reflector.Compositor) (Sample, error) {
	var diffuse []int
	for i, ch := range a.children {
		if ch.IsDiffuse() {
			diffuse = append(diffuse, i)
		}
	}
	if len(diffuse) == 0 {
		return Sample{}, ierr.InvalidResult("aggregate BSDF has no diffuse component to sample")
	}
	idx := diffuse[pickChild(r, len(diffuse))]
	s, err := a.children[idx].SampleDiffuse(wo, surfaceNormal, shadingNormal, r, c)
	if err != nil {
		return Sample{}, err
	}
	if s.Type == LobeSpecular {
		return Sample{}, ierr.InvalidResult("child diffuse sampler returned a specular sample")
	}
	if s.PDF == 0 {
		return s, nil
	}
	s.PDF = a.averagedPDF(wo, shadingNormal, s, idx, len(a.children), c)
	return s, nil
}

// averagedPDF sums the sampled child's own pdf with the diffuse pdf of
// every other child evaluated at the same direction, then divides by
// the total child count (spec.md §4.9: "averages").
func (a *aggregateBSDF) averagedPDF(wo, shadingNormal linear.V3, s Sample, sampledIdx, total int, c *reflector.Compositor) float32 {
	transmitted := linear.DotV3(s.Wi, shadingNormal) < 0
	sum := s.PDF
	for j, ch := range a.children {
		if j == sampledIdx || !ch.IsDiffuse() {
			continue
		}
		_, pdf, err := ch.EvaluateDiffuseWithPDF(wo, shadingNormal, s.Wi, transmitted, c)
		if err == nil {
			sum += pdf
		}
	}
	return sum / float32(total)
}

func (a *aggregateBSDF) EvaluateDiffuseWithPDF(wo, shadingNormal, wi linear.V3, transmitted bool, c *reflector.Compositor) (reflector.Reflector, float32, error) {
	var fSum reflector.Reflector
	var pdfSum float32
	any := false
	for _, ch := range a.children {
		if !ch.IsDiffuse() {
			continue
		}
		f, pdf, err := ch.EvaluateDiffuseWithPDF(wo, shadingNormal, wi, transmitted, c)
		if err != nil {
			return nil, 0, err
		}
		if f == nil {
			continue
		}
		fSum = c.Add(fSum, f)
		pdfSum += pdf
		any = true
	}
	if !any {
		return nil, 0, nil
	}
	return fSum, pdfSum / float32(len(a.children)), nil
}

func pickChild(r rng.Source, n int) int {
	idx := int(r.Float1D() * float32(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}
