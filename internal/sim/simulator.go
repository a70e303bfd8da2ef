// Package sim drives a flight body through a full launch-to-landing run on
// a fixed timestep, recording telemetry frames and feeding metrics and
// observers along the way.
package sim

import (
	"context"
	"fmt"

	"github.com/t-aulia/glidesim/internal/flight"
	"github.com/t-aulia/glidesim/internal/vec"
)

type Simulator struct {
	body      *flight.Body
	metrics   []Metric
	observers []Observer
}

func New(body *flight.Body) *Simulator {
	return &Simulator{
		body:      body,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run launches the body with the given initial velocity and steps until it
// lands or the duration cap is reached. A body already launched (through
// the rig's gesture path) keeps its velocity. The initial frame is
// recorded before the first step.
func (s *Simulator) Run(ctx context.Context, initial vec.Vec3, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.MaxDuration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	if s.body.Status() == flight.Grounded {
		s.body.Launch(initial)
	}

	t := 0.0
	result.Frames = append(result.Frames, Frame{Time: t, Data: s.body.Data()})

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.body.Step(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		d := s.body.Data()
		result.Frames = append(result.Frames, Frame{Time: t, Data: d})

		for _, m := range s.metrics {
			m.Observe(d, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(d, t)
		}

		if cfg.Validate && !s.body.IsValid() {
			return result, SimError{Time: t, Step: i, Message: ErrInvalidState.Error()}
		}

		if d.Status == flight.Grounded {
			result.Landed = true
			break
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the flight, handing each frame to the callback.
// Returning false from the callback stops the run early.
func (s *Simulator) RunWithCallback(ctx context.Context, initial vec.Vec3, cfg Config, callback func(flight.Data, float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	if s.body.Status() == flight.Grounded {
		s.body.Launch(initial)
	}
	t := 0.0

	for t < cfg.MaxDuration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.body.Step(cfg.Dt)
		t += cfg.Dt

		d := s.body.Data()
		if !callback(d, t) {
			return nil
		}
		if d.Status == flight.Grounded {
			return nil
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive, got %f", cfg.MaxDuration)
	}
	return nil
}
