// Package viz renders a live terminal view of a flight: telemetry panel on
// the left, altitude trace on the right, stepped at a fixed frame rate.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/t-aulia/glidesim/internal/flight"
	"github.com/t-aulia/glidesim/internal/sim"
	"github.com/t-aulia/glidesim/internal/vec"
)

const historyCapacity = 600

// TickMsg drives the frame clock.
type TickMsg time.Time

// Model is the bubbletea model for the live flight view.
type Model struct {
	rig      *sim.Rig
	velocity vec.Vec3
	dt       float64
	fps      int
	pull     float64
	maxPull  float64

	t        float64
	running  bool
	launched bool
	altitude []float64
	speed    []float64
	plane    string
}

// NewModel prepares a live view that fires the rig on start.
func NewModel(rig *sim.Rig, pull, maxPull, dt float64, fps int, plane string) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		rig:      rig,
		dt:       dt,
		fps:      fps,
		pull:     pull,
		maxPull:  maxPull,
		running:  true,
		altitude: make([]float64, 0, historyCapacity),
		speed:    make([]float64, 0, historyCapacity),
		plane:    plane,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
		return m, nil

	case TickMsg:
		if !m.launched {
			v, ok := m.rig.Fire(m.pull, m.maxPull)
			m.velocity = v
			m.launched = ok
		}

		if m.running && m.rig.Body.Status().Airborne() {
			// physics runs at its own fixed dt, several steps per frame
			steps := int(1.0/(float64(m.fps)*m.dt) + 0.5)
			if steps < 1 {
				steps = 1
			}
			for i := 0; i < steps; i++ {
				m.rig.Body.Step(m.dt)
				m.t += m.dt
				if !m.rig.Body.Status().Airborne() {
					break
				}
			}

			d := m.rig.Body.Data()
			m.altitude = append(m.altitude, d.Altitude)
			m.speed = append(m.speed, d.Speed)
			if len(m.altitude) > historyCapacity {
				m.altitude = m.altitude[1:]
				m.speed = m.speed[1:]
			}
		}

		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	d := m.rig.Body.Data()

	var stats strings.Builder
	stats.WriteString(headerStyle.Render(fmt.Sprintf("glidesim — %s", m.plane)))
	stats.WriteString("\n\n")

	writeStat(&stats, "status", statusText(d.Status))
	writeStat(&stats, "launch", fmt.Sprintf("%.2f m/s", m.velocity.Len()))
	writeStat(&stats, "time", fmt.Sprintf("%.2f s", d.Time))
	writeStat(&stats, "altitude", fmt.Sprintf("%.2f m", d.Altitude))
	writeStat(&stats, "distance", fmt.Sprintf("%.2f m", d.Distance))
	writeStat(&stats, "speed", fmt.Sprintf("%.2f m/s", d.Speed))
	writeStat(&stats, "aoa", fmt.Sprintf("%.1f°", d.Aero.AngleOfAttack*180/math.Pi))
	writeStat(&stats, "lift", fmt.Sprintf("%.3f N", d.Aero.Lift.Len()))
	writeStat(&stats, "drag", fmt.Sprintf("%.3f N", d.Aero.Drag.Len()))

	graph := ""
	if len(m.altitude) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(m.altitude,
			asciigraph.Height(12),
			asciigraph.Width(60),
			asciigraph.Caption("altitude (m)"),
		))
	}

	help := helpStyle.Render("space pause · q quit")

	left := statsStyle.Render(stats.String())
	return canvasStyle.Render(left + "\n" + graph + "\n" + help)
}

func writeStat(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

func statusText(s flight.Status) string {
	switch s {
	case flight.Stalled, flight.Tumbling:
		return alertStyle.Render(s.String())
	default:
		return s.String()
	}
}
