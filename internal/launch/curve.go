package launch

import (
	"fmt"
	"sort"
)

// CurvePoint is one control point of a tension curve.
type CurvePoint struct {
	Pull    float64 `yaml:"pull"`
	Tension float64 `yaml:"tension"`
}

// TensionCurve maps normalized pull distance [0,1] to launch-force scaling
// [0,1] by linear interpolation between control points. Valid curves are
// monotonically non-decreasing and anchored at (0,0) and (1,1).
type TensionCurve struct {
	Points []CurvePoint `yaml:"points"`
}

// DefaultTensionCurve gives a soft initial pull that stiffens toward full
// extension.
func DefaultTensionCurve() TensionCurve {
	return TensionCurve{Points: []CurvePoint{
		{Pull: 0, Tension: 0},
		{Pull: 0.5, Tension: 0.7},
		{Pull: 1, Tension: 1},
	}}
}

// Validate checks the curve anchors, ordering and monotonicity.
func (c TensionCurve) Validate() error {
	if len(c.Points) < 2 {
		return fmt.Errorf("tension curve needs at least 2 points, got %d", len(c.Points))
	}
	first, last := c.Points[0], c.Points[len(c.Points)-1]
	if first.Pull != 0 || first.Tension != 0 {
		return fmt.Errorf("tension curve must start at (0,0), got (%g,%g)", first.Pull, first.Tension)
	}
	if last.Pull != 1 || last.Tension != 1 {
		return fmt.Errorf("tension curve must end at (1,1), got (%g,%g)", last.Pull, last.Tension)
	}
	for i := 1; i < len(c.Points); i++ {
		if c.Points[i].Pull <= c.Points[i-1].Pull {
			return fmt.Errorf("tension curve pull values must strictly increase at point %d", i)
		}
		if c.Points[i].Tension < c.Points[i-1].Tension {
			return fmt.Errorf("tension curve must be non-decreasing at point %d", i)
		}
	}
	return nil
}

// Sample evaluates the curve at normalized pull t, clamped to [0,1].
func (c TensionCurve) Sample(t float64) float64 {
	if len(c.Points) == 0 {
		return t
	}
	if t <= c.Points[0].Pull {
		return c.Points[0].Tension
	}
	last := c.Points[len(c.Points)-1]
	if t >= last.Pull {
		return last.Tension
	}
	i := sort.Search(len(c.Points), func(i int) bool { return c.Points[i].Pull > t })
	lo, hi := c.Points[i-1], c.Points[i]
	frac := (t - lo.Pull) / (hi.Pull - lo.Pull)
	return lo.Tension + frac*(hi.Tension-lo.Tension)
}
