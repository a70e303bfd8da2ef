package aero

import (
	"math"

	"github.com/t-aulia/glidesim/internal/vec"
)

const (
	// DefaultMinFlyingSpeed is the slowest speed that can sustain flight.
	DefaultMinFlyingSpeed = 3.0

	// DefaultCriticalAngle is the angle of attack past which the wing
	// stalls outright. Distinct from SoftStallAngle, which only begins
	// the lift efficiency falloff.
	DefaultCriticalAngle = 20.0 * math.Pi / 180
)

// StallDetector judges each tick whether the body can sustain flight.
type StallDetector struct {
	MinFlyingSpeed float64
	CriticalAngle  float64
}

// NewStallDetector returns a detector with the default thresholds.
func NewStallDetector() *StallDetector {
	return &StallDetector{
		MinFlyingSpeed: DefaultMinFlyingSpeed,
		CriticalAngle:  DefaultCriticalAngle,
	}
}

// Stalled reports whether the body is stalled: too slow to fly regardless
// of attitude, or past the critical angle of attack regardless of speed.
func (s *StallDetector) Stalled(velocity vec.Vec3, orient vec.Basis) bool {
	if velocity.Len() < s.MinFlyingSpeed {
		return true
	}
	return AngleOfAttack(velocity, orient) > s.CriticalAngle
}
