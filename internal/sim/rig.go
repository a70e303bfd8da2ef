package sim

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/t-aulia/glidesim/internal/aero"
	"github.com/t-aulia/glidesim/internal/flight"
	"github.com/t-aulia/glidesim/internal/launch"
	"github.com/t-aulia/glidesim/internal/vec"
)

// Rig assembles a launcher and a flight body into one playable unit, with
// the launcher's release wired straight into the body.
type Rig struct {
	Launcher *launch.Launcher
	Body     *flight.Body
}

// NewRig builds a rig at the origin firing along +Z. The rng seeds the
// tumble torque so runs are reproducible.
func NewRig(plane flight.Config, coeff aero.Coefficients, lcfg launch.Config, rng *rand.Rand) *Rig {
	model := aero.NewModel(coeff)
	detector := aero.NewStallDetector()
	tumbler := aero.NewTumbler(rng)

	body := flight.New(plane, model, detector, tumbler)
	launcher := launch.New(lcfg, vec.Vec3{}, vec.IdentityBasis())

	r := &Rig{Launcher: launcher, Body: body}
	launcher.SetListener(&rigListener{body: body})
	return r
}

// SetLogger installs the diagnostic logger on both halves of the rig.
func (r *Rig) SetLogger(log *zap.Logger) {
	r.Launcher.SetLogger(log)
	r.Body.SetLogger(log)
}

// Fire runs the full pull gesture at the given fraction of maximum pull and
// returns the launch velocity. The gesture goes through the same
// start/update/release path a touch input would.
func (r *Rig) Fire(fraction float64, maxPull float64) (vec.Vec3, bool) {
	start := vec.Vec3{}
	r.Launcher.StartPull(start)

	backward := vec.Vec3{Z: -1}
	r.Launcher.UpdatePull(start.Add(backward.Scale(fraction * maxPull)))

	return r.Launcher.Release()
}

// rigListener hands released velocities to the body.
type rigListener struct {
	body *flight.Body
}

func (l *rigListener) PullUpdated(distance, force float64) {}

func (l *rigListener) Launched(velocity vec.Vec3) {
	l.body.Launch(velocity)
}
