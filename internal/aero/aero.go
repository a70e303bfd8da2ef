// Package aero computes the per-tick aerodynamic forces acting on a flying
// body: quadratic drag opposing motion, lift along the body up axis with
// angle-of-attack efficiency falloff, stall judgment, and tumble torque.
package aero

import (
	"math"

	"github.com/t-aulia/glidesim/internal/vec"
)

const (
	// AirDensity is the sea-level air density in kg/m^3.
	AirDensity = 1.225

	// MinDragSpeed is the speed below which drag is zeroed so a near-rest
	// body is not jittered by a vanishing force direction.
	MinDragSpeed = 0.1

	// MinLiftSpeed is the minimum total speed for any lift generation.
	MinLiftSpeed = 1.0

	// SoftStallAngle is where lift efficiency starts degrading.
	SoftStallAngle = 15.0 * math.Pi / 180

	// FalloffSpan is the angle-of-attack range over which efficiency
	// degrades from full to the floor.
	FalloffSpan = 30.0 * math.Pi / 180

	// EfficiencyFloor keeps lift continuous instead of cutting to zero
	// past the falloff range.
	EfficiencyFloor = 0.1

	// BankThreshold is the bank angle beyond which the lift vector tilts.
	BankThreshold = 5.0 * math.Pi / 180
)

// Coefficients hold the per-design lift and drag coefficients. They are
// supplied by the plane configuration and never mutated here.
type Coefficients struct {
	Lift float64 `yaml:"lift"`
	Drag float64 `yaml:"drag"`
}

// Data is the transient per-tick force breakdown. It is recomputed from the
// current velocity and orientation every step and never cached.
type Data struct {
	Lift  vec.Vec3
	Drag  vec.Vec3
	Total vec.Vec3

	Airspeed        float64
	ForwardAirspeed float64
	AngleOfAttack   float64
	LiftEfficiency  float64
}

// Model computes lift and drag from velocity, orientation and coefficients.
type Model struct {
	Coeff Coefficients
}

// NewModel returns a force model for the given coefficients.
func NewModel(c Coefficients) *Model {
	return &Model{Coeff: c}
}

// Forces computes the force breakdown for one tick. The angle of attack is
// reported from the current velocity and orientation even when the lift
// gate zeroes the force itself.
func (m *Model) Forces(velocity vec.Vec3, orient vec.Basis) Data {
	d := Data{
		Airspeed:      velocity.Len(),
		AngleOfAttack: AngleOfAttack(velocity, orient),
	}

	d.Drag = m.drag(velocity, d.Airspeed)
	d.Lift, d.ForwardAirspeed, d.LiftEfficiency = m.lift(velocity, orient, d.Airspeed, d.AngleOfAttack)
	d.Total = d.Lift.Add(d.Drag)

	return d
}

// drag opposes the velocity with the standard quadratic law. Below
// MinDragSpeed the force is zero: normalizing a near-zero velocity would
// produce an arbitrary direction.
func (m *Model) drag(velocity vec.Vec3, speed float64) vec.Vec3 {
	if speed < MinDragSpeed {
		return vec.Vec3{}
	}
	magnitude := 0.5 * AirDensity * speed * speed * m.Coeff.Drag
	return velocity.Normalize().Scale(-magnitude)
}

// lift acts along the body up axis, scaled by forward airspeed squared and
// an angle-of-attack efficiency. Moving backward or too slowly generates
// no lift at all.
func (m *Model) lift(velocity vec.Vec3, orient vec.Basis, speed, aoa float64) (force vec.Vec3, forward, eff float64) {
	forward = velocity.Dot(orient.Forward)
	if forward <= 0 || speed < MinLiftSpeed {
		return vec.Vec3{}, forward, 0
	}

	eff = Efficiency(aoa)
	magnitude := 0.5 * AirDensity * forward * forward * m.Coeff.Lift * eff

	dir := orient.Up
	if bank := orient.BankAngle(); math.Abs(bank) > BankThreshold {
		// tilt the lift vector into the turn by half the bank angle
		dir = dir.RotateAround(orient.Forward, bank/2)
	}

	return dir.Scale(magnitude), forward, eff
}

// Efficiency maps an angle of attack to a lift multiplier: full lift up to
// the soft-stall knee, then a linear falloff to EfficiencyFloor.
func Efficiency(aoa float64) float64 {
	if aoa <= SoftStallAngle {
		return 1.0
	}
	excess := aoa - SoftStallAngle
	if excess >= FalloffSpan {
		return EfficiencyFloor
	}
	return 1.0 - (1.0-EfficiencyFloor)*(excess/FalloffSpan)
}

// AngleOfAttack returns the angle between the velocity and the body forward
// axis, or zero when the velocity is degenerate.
func AngleOfAttack(velocity vec.Vec3, orient vec.Basis) float64 {
	vhat := velocity.Normalize()
	if vhat.IsZero() {
		return 0
	}
	cos := math.Max(-1, math.Min(1, vhat.Dot(orient.Forward)))
	return math.Acos(cos)
}
