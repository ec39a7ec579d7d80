package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ljcell/internal/config"
	"github.com/san-kum/ljcell/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var samplesHeader = []string{"step", "time", "kinetic", "potential", "total", "temperature", "momentum"}

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
	ID           string             `json:"id"`
	Preset       string             `json:"preset,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	Config       config.Config      `json:"config"`
	Steps        int                `json:"steps"`
	Elapsed      float64            `json:"elapsed_seconds"`
	Interactions int                `json:"interactions"`
	EnergyDrift  float64            `json:"energy_drift"`
	Metrics      map[string]float64 `json:"metrics"`
}

// NewRunID names a run after its preset, or "run" when there is none.
func NewRunID(preset string, now time.Time) string {
	if preset == "" {
		preset = "run"
	}
	return fmt.Sprintf("%s_%d", preset, now.UnixNano())
}

// Save writes meta and samples under a fresh run directory. If meta.ID is
// empty one is generated from the preset.
func (s *Store) Save(meta *RunMetadata, samples []sim.Sample) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = NewRunID(meta.Preset, meta.Timestamp)
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), samples); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(samplesHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Step),
			formatFloat(smp.Time),
			formatFloat(smp.Kinetic),
			formatFloat(smp.Potential),
			formatFloat(smp.Total),
			formatFloat(smp.Temperature),
			formatFloat(smp.Momentum),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns all readable runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(samplesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", samplesFile, i+2, err)
		}
		var vals [6]float64
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(record[j+1], 64); err != nil {
				return nil, fmt.Errorf("%s line %d: %w", samplesFile, i+2, err)
			}
		}
		samples = append(samples, sim.Sample{
			Step:        step,
			Time:        vals[0],
			Kinetic:     vals[1],
			Potential:   vals[2],
			Total:       vals[3],
			Temperature: vals[4],
			Momentum:    vals[5],
		})
	}
	return samples, nil
}

// SamplesPath is the CSV location for a run, for export.
func (s *Store) SamplesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, samplesFile)
}
