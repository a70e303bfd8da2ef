package flight

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-aulia/glidesim/internal/aero"
	"github.com/t-aulia/glidesim/internal/vec"
)

func newTestBody(cfg Config, coeff aero.Coefficients, seed int64) *Body {
	return New(cfg,
		aero.NewModel(coeff),
		aero.NewStallDetector(),
		aero.NewTumbler(rand.New(rand.NewSource(seed))),
	)
}

func trainerBody(seed int64) *Body {
	return newTestBody(
		Config{Mass: 0.05, Inertia: 0.05},
		aero.Coefficients{Lift: 0.1, Drag: 0.02},
		seed,
	)
}

type endRecorder struct {
	ended []Data
}

func (e *endRecorder) FlightEnded(final Data) { e.ended = append(e.ended, final) }

func TestLaunchTransition(t *testing.T) {
	b := trainerBody(1)
	require.Equal(t, Grounded, b.Status())

	b.Launch(vec.New(0, 3, 10))

	assert.Equal(t, Flying, b.Status())
	assert.Equal(t, vec.New(0, 3, 10), b.State().Vel)
	// nose follows the launch velocity
	assert.InDelta(t, 1.0, b.State().Orient.Forward.Dot(vec.New(0, 3, 10).Normalize()), 1e-9)
}

func TestLaunchWhileAirborneIgnored(t *testing.T) {
	b := trainerBody(1)
	b.Launch(vec.New(0, 3, 10))

	b.Launch(vec.New(0, 100, 0))

	assert.Equal(t, vec.New(0, 3, 10), b.State().Vel, "second launch must not overwrite velocity")
}

func TestGravityOnlyBallistic(t *testing.T) {
	// zero coefficients isolate the integrator: pure projectile motion
	b := newTestBody(Config{Mass: 0.05}, aero.Coefficients{}, 1)
	b.PlaceAt(vec.New(0, 50, 0), vec.IdentityBasis())
	b.Launch(vec.New(0, 0, 10))

	dt := 1.0 / 60.0
	steps := 60 // one second
	for i := 0; i < steps; i++ {
		b.Step(dt)
	}

	st := b.State()
	// semi-implicit Euler: vy = -g*t exactly, z = v0*t exactly
	assert.InDelta(t, -Gravity, st.Vel.Y, 1e-9)
	assert.InDelta(t, 10.0, st.Pos.Z, 1e-9)
	// position lags the analytic parabola by at most g*dt*t
	analytic := 50 - 0.5*Gravity
	assert.InDelta(t, analytic, st.Pos.Y, Gravity*dt+1e-9)
}

func TestNoLandingMidBounce(t *testing.T) {
	// low altitude but fast: both landing conditions must hold
	b := trainerBody(1)
	b.PlaceAt(vec.New(0, 0.5, 0), vec.IdentityBasis())
	b.Launch(vec.New(0, 2, 10))

	b.Step(1.0 / 60.0)

	assert.True(t, b.Status().Airborne(), "fast pass below landing altitude must not land")
}

func TestLandingSlowAndLow(t *testing.T) {
	b := trainerBody(1)
	rec := &endRecorder{}
	b.SetListener(rec)

	b.PlaceAt(vec.New(0, 0.5, 0), vec.IdentityBasis())
	b.Launch(vec.New(0, 0, 1))

	b.Step(1.0 / 60.0)

	assert.Equal(t, Grounded, b.Status())
	require.Len(t, rec.ended, 1)
	assert.Equal(t, Grounded, rec.ended[0].Status)
}

func TestGroundPlaneContact(t *testing.T) {
	b := trainerBody(1)
	b.PlaceAt(vec.New(0, 0.01, 0), vec.IdentityBasis())
	b.Launch(vec.New(0, -20, 0))

	b.Step(1.0 / 60.0)

	assert.Equal(t, Grounded, b.Status())
	assert.GreaterOrEqual(t, b.State().Pos.Y, 0.0)
}

func TestZeroPullLaunchLandsGracefully(t *testing.T) {
	b := trainerBody(1)
	b.Launch(vec.Vec3{})

	b.Step(1.0 / 60.0)

	assert.Equal(t, Grounded, b.Status())
	assert.True(t, b.IsValid())
}

func TestGroundContactCollision(t *testing.T) {
	b := trainerBody(1)
	b.PlaceAt(vec.New(0, 30, 0), vec.IdentityBasis())
	b.Launch(vec.New(0, 0, 12))

	b.GroundContact()

	assert.Equal(t, Grounded, b.Status())
}

func TestUnbalancedStallTumbles(t *testing.T) {
	b := newTestBody(
		Config{Mass: 0.05, Inertia: 0.05, Unbalanced: true},
		aero.Coefficients{Lift: 0.1, Drag: 0.02},
		7,
	)
	b.PlaceAt(vec.New(0, 50, 0), vec.IdentityBasis())
	b.Launch(vec.New(0, 0, 2)) // below minimum flying speed

	b.Step(1.0 / 60.0)

	require.True(t, b.Data().Stalled)
	assert.Equal(t, Tumbling, b.Status())
	assert.False(t, b.State().AngVel.IsZero(), "tumble torque must spin the body")
}

func TestTumbleTorqueStopsWhenClear(t *testing.T) {
	b := trainerBody(3)
	b.PlaceAt(vec.New(0, 50, 0), vec.IdentityBasis())
	b.Launch(vec.New(0, 0, 12))

	b.Step(1.0 / 60.0)

	assert.Equal(t, Flying, b.Status())
	assert.True(t, b.State().AngVel.IsZero(), "no torque in clean flight")
}

func TestDataIdempotent(t *testing.T) {
	b := trainerBody(1)
	b.PlaceAt(vec.New(0, 20, 0), vec.IdentityBasis())
	b.Launch(vec.New(0, 3, 10))
	b.Step(1.0 / 60.0)

	first := b.Data()
	second := b.Data()

	assert.Equal(t, first, second, "telemetry must be stable between ticks")
}

func TestDataDistanceHorizontal(t *testing.T) {
	b := newTestBody(Config{Mass: 0.05}, aero.Coefficients{}, 1)
	b.PlaceAt(vec.New(0, 100, 0), vec.IdentityBasis())
	b.Launch(vec.New(0, 0, 10))

	for i := 0; i < 60; i++ {
		b.Step(1.0 / 60.0)
	}

	d := b.Data()
	// altitude loss must not count toward range
	assert.InDelta(t, 10.0, d.Distance, 1e-9)
	assert.InDelta(t, 1.0, d.Time, 1e-9)
}

func TestMassClampedPositive(t *testing.T) {
	b := newTestBody(Config{Mass: -1}, aero.Coefficients{}, 1)
	assert.Greater(t, b.State().Mass, 0.0)
}

func TestResetAfterLanding(t *testing.T) {
	b := trainerBody(1)
	b.Launch(vec.Vec3{})
	b.Step(1.0 / 60.0)
	require.Equal(t, Grounded, b.Status())

	b.Reset()

	st := b.State()
	assert.True(t, st.Pos.IsZero())
	assert.True(t, st.Vel.IsZero())
	assert.False(t, math.Signbit(st.Mass))
}
