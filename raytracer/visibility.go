package raytracer

import (
	"errors"
	"math"

	"github.com/irisphysx/iris/geom"
	"github.com/irisphysx/iris/internal/ierr"
)

// VisibilityTester wraps a trace closure and an epsilon shadow-acne
// guard (spec.md §4.4). Its two operations are pure, synchronous
// shadow-ray queries; it holds no mutable state of its own after
// construction.
type VisibilityTester struct {
	trace   Trace
	epsilon float32
}

// NewVisibilityTester clamps a negative epsilon to zero rather than
// rejecting it, matching original_source/iris_physx/visibility_tester.c's
// defensive clamp.
func NewVisibilityTester(trace Trace, epsilon float32) *VisibilityTester {
	if epsilon < 0 {
		epsilon = 0
	}
	return &VisibilityTester{trace: trace, epsilon: epsilon}
}

// Test reports whether no geometry lies along ray within
// (epsilon, distance-epsilon) (spec.md §4.4). distance < 0 is an
// invalid argument.
func (vt *VisibilityTester) Test(ray geom.Ray, distance float32) (bool, error) {
	if distance < 0 {
		return false, ierr.InvalidArg(1, "distance must be non-negative")
	}
	tMax := distance - vt.epsilon
	if tMax <= vt.epsilon {
		// The open window is empty or inverted: nothing can occupy it.
		return true, nil
	}
	return vt.probe(ray, tMax)
}

// TestAnyDistance is Test with distance = +Inf, used for directional
// and environmental lights (spec.md §4.4).
func (vt *VisibilityTester) TestAnyDistance(ray geom.Ray) (bool, error) {
	return vt.probe(ray, float32(math.Inf(1)))
}

func (vt *VisibilityTester) probe(ray geom.Ray, tMax float32) (bool, error) {
	_, err := vt.trace(ray, vt.epsilon, tMax)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, ierr.ErrNoIntersection) {
		return true, nil
	}
	return false, err
}
