// Package storage persists flight runs under a data directory, one
// subdirectory per run with metadata.json and frames.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/t-aulia/glidesim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored flight.
type RunMetadata struct {
	ID        string             `json:"id"`
	Plane     string             `json:"plane"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Pull      float64            `json:"pull"`
	Landed    bool               `json:"landed"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// frame columns stored per tick.
var frameHeader = []string{
	"time", "x", "y", "z", "vx", "vy", "vz",
	"speed", "altitude", "distance", "aoa", "status",
}

// Save writes a run directory and returns its ID.
func (s *Store) Save(plane string, dt, pull float64, seed int64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", plane, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Plane:     plane,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Pull:      pull,
		Landed:    result.Landed,
		Steps:     result.StepsTaken,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(frameHeader); err != nil {
		return "", err
	}

	for _, f := range result.Frames {
		d := f.Data
		row := []string{
			fmtFloat(f.Time),
			fmtFloat(d.Position.X), fmtFloat(d.Position.Y), fmtFloat(d.Position.Z),
			fmtFloat(d.Velocity.X), fmtFloat(d.Velocity.Y), fmtFloat(d.Velocity.Z),
			fmtFloat(d.Speed), fmtFloat(d.Altitude), fmtFloat(d.Distance),
			fmtFloat(d.Aero.AngleOfAttack),
			d.Status.String(),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns metadata for every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

// Load returns the metadata of one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads the stored numeric columns of a run. The trailing status
// column is returned separately.
func (s *Store) LoadFrames(runID string) (rows [][]float64, statuses []string, err error) {
	csvPath := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []string{}, nil
	}

	rows = make([][]float64, 0, len(records)-1)
	statuses = make([]string, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		row := make([]float64, 0, len(record)-1)
		bad := false
		for j := 0; j < len(record)-1; j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				bad = true
				break
			}
			row = append(row, val)
		}
		if bad {
			continue
		}

		rows = append(rows, row)
		statuses = append(statuses, record[len(record)-1])
	}

	return rows, statuses, nil
}
