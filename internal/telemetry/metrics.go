// Package telemetry provides flight metrics in the shared
// Observe/Value/Reset shape: horizontal range, peak altitude, air time and
// the fraction of the flight spent stalled.
package telemetry

import (
	"github.com/t-aulia/glidesim/internal/flight"
	"github.com/t-aulia/glidesim/internal/sim"
)

// Distance tracks the farthest horizontal range reached from the launch
// point. Range is the reward currency of the game, so this is the headline
// metric.
type Distance struct {
	max float64
}

func NewDistance() *Distance { return &Distance{} }

func (d *Distance) Name() string { return "distance" }

func (d *Distance) Observe(data flight.Data, t float64) {
	if data.Distance > d.max {
		d.max = data.Distance
	}
}

func (d *Distance) Value() float64 { return d.max }
func (d *Distance) Reset()         { d.max = 0 }

// PeakAltitude tracks the highest point of the arc.
type PeakAltitude struct {
	max float64
}

func NewPeakAltitude() *PeakAltitude { return &PeakAltitude{} }

func (p *PeakAltitude) Name() string { return "peak_altitude" }

func (p *PeakAltitude) Observe(data flight.Data, t float64) {
	if data.Altitude > p.max {
		p.max = data.Altitude
	}
}

func (p *PeakAltitude) Value() float64 { return p.max }
func (p *PeakAltitude) Reset()         { p.max = 0 }

// AirTime records how long the body stayed airborne.
type AirTime struct {
	last float64
}

func NewAirTime() *AirTime { return &AirTime{} }

func (a *AirTime) Name() string { return "air_time" }

func (a *AirTime) Observe(data flight.Data, t float64) {
	if data.Status.Airborne() {
		a.last = t
	}
}

func (a *AirTime) Value() float64 { return a.last }
func (a *AirTime) Reset()         { a.last = 0 }

// StallFraction reports the share of observed ticks spent stalled.
type StallFraction struct {
	stalled int
	samples int
}

func NewStallFraction() *StallFraction { return &StallFraction{} }

func (s *StallFraction) Name() string { return "stall_fraction" }

func (s *StallFraction) Observe(data flight.Data, t float64) {
	s.samples++
	if data.Stalled {
		s.stalled++
	}
}

func (s *StallFraction) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.stalled) / float64(s.samples)
}

func (s *StallFraction) Reset() {
	s.stalled = 0
	s.samples = 0
}

// Defaults returns the standard metric set for a flight run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewDistance(),
		NewPeakAltitude(),
		NewAirTime(),
		NewStallFraction(),
	}
}
