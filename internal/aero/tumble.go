package aero

import (
	"math/rand"

	"github.com/t-aulia/glidesim/internal/vec"
)

const (
	// DefaultTumbleTorque is the base destabilizing torque magnitude.
	DefaultTumbleTorque = 2.0

	// UnbalancedFactor scales tumble torque for structurally unbalanced
	// designs.
	UnbalancedFactor = 1.5
)

// Tumbler injects a fresh random torque each tick while the body is stalled
// or built unbalanced. The noise is intentionally unsmoothed: the point is
// visible chaos, not a physical instability model.
type Tumbler struct {
	BaseTorque float64
	rng        *rand.Rand
}

// NewTumbler returns a tumbler drawing from the given source. Tests inject
// a seeded source for deterministic torque sequences.
func NewTumbler(rng *rand.Rand) *Tumbler {
	return &Tumbler{BaseTorque: DefaultTumbleTorque, rng: rng}
}

// Torque returns this tick's destabilizing torque. Each axis is drawn
// independently and uniformly from [-m, +m] where m is the base magnitude,
// times UnbalancedFactor for unbalanced designs. Zero when the body is
// neither stalled nor unbalanced.
func (t *Tumbler) Torque(stalled, unbalanced bool) vec.Vec3 {
	if !stalled && !unbalanced {
		return vec.Vec3{}
	}
	m := t.BaseTorque
	if unbalanced {
		m *= UnbalancedFactor
	}
	return vec.Vec3{
		X: t.uniform(m),
		Y: t.uniform(m),
		Z: t.uniform(m),
	}
}

func (t *Tumbler) uniform(m float64) float64 {
	return (t.rng.Float64()*2 - 1) * m
}
