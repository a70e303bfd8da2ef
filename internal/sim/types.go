package sim

import (
	"errors"
	"fmt"

	"github.com/t-aulia/glidesim/internal/flight"
)

// Config controls a simulated flight run. Randomness is not configured
// here: the tumble RNG is injected when the rig is built.
type Config struct {
	Dt          float64
	MaxDuration float64
	Validate    bool
}

// DefaultConfig targets the fixed 60 Hz physics step with a generous
// flight duration cap.
func DefaultConfig() Config {
	return Config{
		Dt:          1.0 / 60.0,
		MaxDuration: 120.0,
		Validate:    true,
	}
}

// Frame is one recorded tick of telemetry.
type Frame struct {
	Time float64
	Data flight.Data
}

// Result collects a full flight run.
type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	Landed     bool
	StepsTaken int
}

// Final returns the last recorded frame, or a zero frame for empty runs.
func (r *Result) Final() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

// Metric accumulates a scalar over a flight, in the Observe/Value/Reset
// shape shared by all telemetry metrics.
type Metric interface {
	Name() string
	Observe(d flight.Data, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every simulated tick.
type Observer interface {
	OnStep(d flight.Data, t float64)
}

// ErrInvalidState indicates the body state picked up NaN or Inf.
var ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

// SimError wraps a failure with its position in the run.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
