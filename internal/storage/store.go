// Package storage persists simulation runs: a metadata.json per run
// plus the tracked body's per-tick state as track.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/orbitlab/internal/sim"
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

type RunMetadata struct {
	ID              string    `json:"id"`
	Scenario        string    `json:"scenario"`
	Timestamp       time.Time `json:"timestamp"`
	G               float64   `json:"g"`
	Dt              float64   `json:"dt"`
	Duration        float64   `json:"duration"`
	Tracked         string    `json:"tracked"`
	Central         string    `json:"central"`
	StepsTaken      int       `json:"steps_taken"`
	DegenerateTicks int       `json:"degenerate_ticks"`
}

var trackHeader = []string{"time", "x", "y", "vx", "vy", "radius", "sma", "ecc"}

// Save writes a run under a fresh ID and returns it. Invalid samples
// keep their kinematic columns and record NaN for the element columns,
// so a track row exists for every tick.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.StepsTaken = result.StepsTaken
	meta.DegenerateTicks = result.DegenerateTicks

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

	csvFile, err := os.Create(filepath.Join(runDir, "track.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(trackHeader); err != nil {
		return "", err
	}

	for _, sample := range result.Samples {
		sma, ecc := math.NaN(), math.NaN()
		if sample.Valid {
			sma = sample.Elements.SemiMajorAxis
			ecc = sample.Elements.Eccentricity
		}

		row := []string{
			formatFloat(sample.Time),
			formatFloat(sample.X),
			formatFloat(sample.Y),
			formatFloat(sample.VX),
			formatFloat(sample.VY),
			formatFloat(sample.Radius),
			formatFloat(sma),
			formatFloat(ecc),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// TrackPoint is one parsed row of a run's track.csv.
type TrackPoint struct {
	Time   float64
	X, Y   float64
	VX, VY float64
	Radius float64
	SMA    float64 // NaN on degenerate ticks
	Ecc    float64 // NaN on degenerate ticks
}

func (s *Store) LoadTrack(runID string) ([]TrackPoint, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "track.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []TrackPoint{}, nil
	}

	points := make([]TrackPoint, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(trackHeader) {
			return nil, fmt.Errorf("run %s: malformed track row with %d columns", runID, len(record))
		}

		vals := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: parsing track: %w", runID, err)
			}
			vals[i] = v
		}

		points = append(points, TrackPoint{
			Time: vals[0], X: vals[1], Y: vals[2],
			VX: vals[3], VY: vals[4],
			Radius: vals[5], SMA: vals[6], Ecc: vals[7],
		})
	}

	return points, nil
}
