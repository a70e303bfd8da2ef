package storage

import (
	"encoding/json"
	"io"

	"github.com/t-aulia/glidesim/internal/sim"
)

// ExportData is the JSON export schema for a flight run.
type ExportData struct {
	ID       string             `json:"id"`
	Plane    string             `json:"plane"`
	Dt       float64            `json:"dt"`
	Pull     float64            `json:"pull"`
	Landed   bool               `json:"landed"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Frames   [][]float64        `json:"frames"`
	Statuses []string           `json:"statuses"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run's export record to w.
func ExportJSON(w io.Writer, meta *RunMetadata, rows [][]float64, statuses []string) error {
	times := make([]float64, len(rows))
	frames := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) > 0 {
			times[i] = row[0]
			frames[i] = row[1:]
		}
	}

	data := ExportData{
		ID:       meta.ID,
		Plane:    meta.Plane,
		Dt:       meta.Dt,
		Pull:     meta.Pull,
		Landed:   meta.Landed,
		Steps:    meta.Steps,
		Times:    times,
		Frames:   frames,
		Statuses: statuses,
		Metrics:  meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportResultJSON writes a freshly simulated result without a stored run.
func ExportResultJSON(w io.Writer, plane string, dt, pull float64, result *sim.Result) error {
	times := make([]float64, len(result.Frames))
	frames := make([][]float64, len(result.Frames))
	statuses := make([]string, len(result.Frames))
	for i, f := range result.Frames {
		d := f.Data
		times[i] = f.Time
		frames[i] = []float64{
			d.Position.X, d.Position.Y, d.Position.Z,
			d.Velocity.X, d.Velocity.Y, d.Velocity.Z,
			d.Speed, d.Altitude, d.Distance, d.Aero.AngleOfAttack,
		}
		statuses[i] = d.Status.String()
	}

	data := ExportData{
		Plane:    plane,
		Dt:       dt,
		Pull:     pull,
		Landed:   result.Landed,
		Steps:    result.StepsTaken,
		Times:    times,
		Frames:   frames,
		Statuses: statuses,
		Metrics:  result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
