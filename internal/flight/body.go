// Package flight owns the rigid-body state of the airplane and advances it
// one fixed timestep at a time, pulling forces from the aero model and
// torque from the tumbler.
package flight

import (
	"math"

	"go.uber.org/zap"

	"github.com/t-aulia/glidesim/internal/aero"
	"github.com/t-aulia/glidesim/internal/vec"
)

const (
	// Gravity is the downward acceleration in m/s^2.
	Gravity = 9.81

	// LandingAltitude and LandingSpeed must both be satisfied for a
	// landing: altitude alone would end flights mid-bounce.
	LandingAltitude = 1.0
	LandingSpeed    = 2.0

	// DefaultInertia is the rotational inertia of a small model plane.
	DefaultInertia = 0.05

	// AngularDamping bleeds rotation so tumbles decay once torque stops.
	AngularDamping = 0.8
)

// State is the rigid-body state. It is owned exclusively by Body and
// mutated only inside Step and Launch.
type State struct {
	Pos    vec.Vec3
	Vel    vec.Vec3
	AngVel vec.Vec3
	Orient vec.Basis
	Mass   float64
}

// Data is the read-only telemetry snapshot exposed to camera and UI
// consumers. Two snapshots without an intervening Step are identical.
type Data struct {
	Position vec.Vec3
	Velocity vec.Vec3
	Speed    float64
	Altitude float64
	Distance float64
	Time     float64
	Status   Status
	Stalled  bool
	Aero     aero.Data
}

// Listener receives flight lifecycle events.
type Listener interface {
	FlightEnded(final Data)
}

type nopListener struct{}

func (nopListener) FlightEnded(Data) {}

// Config holds the externally supplied body parameters.
type Config struct {
	Mass       float64 `yaml:"mass"`
	Inertia    float64 `yaml:"inertia"`
	Unbalanced bool    `yaml:"unbalanced"`
}

// Body integrates the airplane through one flight: Grounded before launch,
// Flying (or Stalled/Tumbling) in the air, Grounded again after landing.
// Landing is terminal for the flight; Reset starts a new one.
type Body struct {
	state    State
	status   Status
	stalled  bool
	lastAero aero.Data

	inertia    float64
	unbalanced bool
	launchPos  vec.Vec3
	elapsed    float64

	model    *aero.Model
	detector *aero.StallDetector
	tumbler  *aero.Tumbler

	listener Listener
	log      *zap.Logger
}

// New builds a grounded body at the origin with the given design. Mass must
// be positive; a non-positive mass is clamped to a small minimum rather
// than allowed to corrupt the integrator.
func New(cfg Config, model *aero.Model, detector *aero.StallDetector, tumbler *aero.Tumbler) *Body {
	mass := cfg.Mass
	if mass <= 0 {
		mass = 1e-3
	}
	inertia := cfg.Inertia
	if inertia <= 0 {
		inertia = DefaultInertia
	}
	return &Body{
		state: State{
			Orient: vec.IdentityBasis(),
			Mass:   mass,
		},
		status:     Grounded,
		inertia:    inertia,
		unbalanced: cfg.Unbalanced,
		model:      model,
		detector:   detector,
		tumbler:    tumbler,
		listener:   nopListener{},
		log:        zap.NewNop(),
	}
}

// SetListener installs a lifecycle listener. Nil restores the no-op.
func (b *Body) SetListener(ls Listener) {
	if ls == nil {
		b.listener = nopListener{}
		return
	}
	b.listener = ls
}

// SetLogger installs a diagnostic logger. Nil restores the no-op.
func (b *Body) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	b.log = log
}

// PlaceAt moves a grounded body to a start position with the given heading.
func (b *Body) PlaceAt(pos vec.Vec3, orient vec.Basis) {
	if b.status.Airborne() {
		b.log.Warn("place ignored: body airborne")
		return
	}
	b.state.Pos = pos
	b.state.Orient = orient
}

// Launch transitions Grounded to Flying with the given initial velocity and
// points the nose along it. Launching an airborne body is a no-op with a
// diagnostic.
func (b *Body) Launch(initial vec.Vec3) {
	if b.status.Airborne() {
		b.log.Warn("launch ignored: already airborne",
			zap.String("status", b.status.String()))
		return
	}
	b.state.Vel = initial
	b.state.AngVel = vec.Vec3{}
	if !initial.IsZero() {
		b.state.Orient = vec.BasisFromForward(initial)
	}
	b.launchPos = b.state.Pos
	b.elapsed = 0
	b.status = Flying
	b.stalled = false
}

// Step advances the body by dt seconds. Called once per fixed physics tick
// by the surrounding loop. A grounded body is kinematic and does not move;
// airborne, gravity applies every tick and aerodynamics, stall and tumble
// on top of it.
func (b *Body) Step(dt float64) {
	if dt <= 0 || !b.status.Airborne() {
		return
	}

	b.lastAero = b.model.Forces(b.state.Vel, b.state.Orient)
	force := vec.Vec3{Y: -Gravity * b.state.Mass}.Add(b.lastAero.Total)

	b.stalled = b.detector.Stalled(b.state.Vel, b.state.Orient)

	torque := b.tumbler.Torque(b.stalled, b.unbalanced)
	angAccel := torque.Scale(1 / b.inertia).Sub(b.state.AngVel.Scale(AngularDamping))
	b.state.AngVel = b.state.AngVel.Add(angAccel.Scale(dt))

	// semi-implicit Euler: velocity first, then position from the new velocity
	accel := force.Scale(1 / b.state.Mass)
	b.state.Vel = b.state.Vel.Add(accel.Scale(dt))
	b.state.Pos = b.state.Pos.Add(b.state.Vel.Scale(dt))

	if w := b.state.AngVel.Len(); w > 1e-9 {
		axis := b.state.AngVel.Scale(1 / w)
		b.state.Orient = b.state.Orient.Rotate(axis, w*dt).Renormalize()
	}

	b.elapsed += dt
	b.updateStatus()
	b.checkLanding()
}

// GroundContact forces an immediate landing, used by collision collaborators.
func (b *Body) GroundContact() {
	if !b.status.Airborne() {
		return
	}
	b.land()
}

func (b *Body) updateStatus() {
	switch {
	case b.stalled && !b.state.AngVel.IsZero():
		b.status = Tumbling
	case b.stalled:
		b.status = Stalled
	default:
		b.status = Flying
	}
}

func (b *Body) checkLanding() {
	if b.state.Pos.Y < 0 {
		// ground plane contact
		b.state.Pos.Y = 0
		b.land()
		return
	}
	if b.state.Pos.Y < LandingAltitude && b.state.Vel.Len() < LandingSpeed {
		b.land()
	}
}

func (b *Body) land() {
	b.status = Grounded
	b.stalled = false
	b.state.Vel = vec.Vec3{}
	b.state.AngVel = vec.Vec3{}
	b.listener.FlightEnded(b.Data())
}

// Reset returns a landed body to its pre-launch state at the origin,
// keeping the design parameters.
func (b *Body) Reset() {
	if b.status.Airborne() {
		b.log.Warn("reset ignored: body airborne")
		return
	}
	b.state.Pos = vec.Vec3{}
	b.state.Vel = vec.Vec3{}
	b.state.AngVel = vec.Vec3{}
	b.state.Orient = vec.IdentityBasis()
	b.lastAero = aero.Data{}
	b.elapsed = 0
	b.status = Grounded
}

// Status returns the current flight phase.
func (b *Body) Status() Status { return b.status }

// State returns a copy of the rigid-body state.
func (b *Body) State() State { return b.state }

// Data returns the telemetry snapshot for the current tick. It reads but
// never mutates body state.
func (b *Body) Data() Data {
	horiz := b.state.Pos.Sub(b.launchPos)
	horiz.Y = 0
	return Data{
		Position: b.state.Pos,
		Velocity: b.state.Vel,
		Speed:    b.state.Vel.Len(),
		Altitude: b.state.Pos.Y,
		Distance: horiz.Len(),
		Time:     b.elapsed,
		Status:   b.status,
		Stalled:  b.stalled,
		Aero:     b.lastAero,
	}
}

// IsValid reports whether the state is free of NaN/Inf.
func (b *Body) IsValid() bool {
	return b.state.Pos.IsValid() && b.state.Vel.IsValid() &&
		b.state.AngVel.IsValid() && !math.IsNaN(b.state.Mass)
}
