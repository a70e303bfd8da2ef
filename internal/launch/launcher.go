// Package launch converts a pull gesture on the elastic launcher into an
// initial flight velocity through a configurable tension curve.
package launch

import (
	"go.uber.org/zap"

	"github.com/t-aulia/glidesim/internal/vec"
)

// UpwardComponent is the vertical fraction of launch speed added on
// release. This is the simple-launcher policy: velocity points along the
// launcher forward axis plus 0.3x speed straight up.
const UpwardComponent = 0.3

// Phase is the gesture state of the launcher.
type Phase int

const (
	Idle Phase = iota
	Pulling
)

func (p Phase) String() string {
	if p == Pulling {
		return "pulling"
	}
	return "idle"
}

// Listener receives launcher events. The zero-value launcher uses a no-op
// listener, so wiring one up is optional.
type Listener interface {
	// PullUpdated fires on every pull update with the clamped distance
	// and the tension-scaled force preview.
	PullUpdated(distance, force float64)
	// Launched fires once on release with the initial velocity.
	Launched(velocity vec.Vec3)
}

type nopListener struct{}

func (nopListener) PullUpdated(float64, float64) {}
func (nopListener) Launched(vec.Vec3)            {}

// Config holds the externally supplied launcher tuning.
type Config struct {
	MaxPullDistance float64      `yaml:"max_pull_distance"`
	ForceMultiplier float64      `yaml:"force_multiplier"`
	Curve           TensionCurve `yaml:"tension_curve"`
}

// DefaultConfig returns a launcher tuned for the stock plane designs.
func DefaultConfig() Config {
	return Config{
		MaxPullDistance: 5.0,
		ForceMultiplier: 12.0,
		Curve:           DefaultTensionCurve(),
	}
}

// Launcher is the pull-gesture state machine. Position and orientation are
// fixed at construction; the gesture mutates only the pull state. Invalid
// calls (pulling with nothing attached, updating while idle) are no-ops
// with a diagnostic rather than errors.
type Launcher struct {
	cfg      Config
	position vec.Vec3
	orient   vec.Basis

	phase    Phase
	attached bool
	refPos   vec.Vec3
	pullDist float64

	listener Listener
	log      *zap.Logger
}

// New creates a launcher at the given position, firing along the forward
// axis of orient.
func New(cfg Config, position vec.Vec3, orient vec.Basis) *Launcher {
	return &Launcher{
		cfg:      cfg,
		position: position,
		orient:   orient,
		attached: true,
		listener: nopListener{},
		log:      zap.NewNop(),
	}
}

// SetListener installs an event listener. A nil listener restores the no-op.
func (l *Launcher) SetListener(ls Listener) {
	if ls == nil {
		l.listener = nopListener{}
		return
	}
	l.listener = ls
}

// SetLogger installs a diagnostic logger. A nil logger restores the no-op.
func (l *Launcher) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	l.log = log
}

// Attach loads a plane onto the launcher, readying a new pull cycle.
func (l *Launcher) Attach() {
	l.attached = true
	l.reset()
}

// Phase returns the current gesture phase.
func (l *Launcher) Phase() Phase { return l.phase }

// PullDistance returns the current clamped pull distance.
func (l *Launcher) PullDistance() float64 { return l.pullDist }

// PullNormalized returns the pull distance scaled into [0,1].
func (l *Launcher) PullNormalized() float64 {
	if l.cfg.MaxPullDistance <= 0 {
		return 0
	}
	return l.pullDist / l.cfg.MaxPullDistance
}

// StartPull begins a pull gesture at the given world position. Requires an
// attached plane.
func (l *Launcher) StartPull(worldPos vec.Vec3) {
	if !l.attached {
		l.log.Warn("pull ignored: no plane attached")
		return
	}
	if l.phase == Pulling {
		l.log.Debug("pull restarted mid-gesture")
	}
	l.phase = Pulling
	l.refPos = worldPos
	l.pullDist = 0
}

// UpdatePull projects the displacement from the pull start onto the
// launcher backward axis, clamps it to [0,max] and reports the tension to
// the listener.
func (l *Launcher) UpdatePull(worldPos vec.Vec3) {
	if l.phase != Pulling {
		l.log.Debug("pull update ignored: not pulling")
		return
	}
	backward := l.orient.Forward.Scale(-1)
	projected := worldPos.Sub(l.refPos).Dot(backward)
	l.pullDist = clamp(projected, 0, l.cfg.MaxPullDistance)

	tension := l.cfg.Curve.Sample(l.PullNormalized())
	l.listener.PullUpdated(l.pullDist, tension*l.cfg.ForceMultiplier)
}

// Release ends the gesture and produces the launch velocity: tension-scaled
// speed along the launcher forward axis plus an upward component. The ok
// result is false when no gesture was in progress. A zero pull releases at
// speed zero rather than failing.
func (l *Launcher) Release() (velocity vec.Vec3, ok bool) {
	if l.phase != Pulling {
		l.log.Debug("release ignored: not pulling")
		return vec.Vec3{}, false
	}

	tension := l.cfg.Curve.Sample(l.PullNormalized())
	speed := tension * l.cfg.ForceMultiplier

	velocity = l.orient.Forward.Scale(speed).Add(vec.Vec3{Y: UpwardComponent * speed})

	l.attached = false
	l.reset()
	l.listener.Launched(velocity)
	return velocity, true
}

// Cancel discards the gesture without launching.
func (l *Launcher) Cancel() {
	if l.phase != Pulling {
		l.log.Debug("cancel ignored: not pulling")
		return
	}
	l.reset()
	l.listener.PullUpdated(0, 0)
}

func (l *Launcher) reset() {
	l.phase = Idle
	l.pullDist = 0
	l.refPos = vec.Vec3{}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
