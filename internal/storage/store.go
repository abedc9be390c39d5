// Package storage keeps recorded runs on disk. Each run is a directory
// holding metadata.json and samples.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/pulsejet/internal/metrics"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	FPS        int                `json:"fps"`
	Duration   float64            `json:"duration"`
	Controller string             `json:"controller"`
	Scenario   string             `json:"scenario,omitempty"`
	Design     string             `json:"design"`
	TubeLength float64            `json:"tube_length"`
	Pulse      float64            `json:"pulse_frequency"`
	FuelFlow   float64            `json:"fuel_flow"`
	Samples    int                `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
}

var sampleHeader = []string{
	"time", "tube_length", "pulse_frequency", "fuel_flow",
	"thrust", "chamber_temp", "resonance", "particles", "control",
}

// Save writes a run and fills in its ID, timestamp and sample count.
func (s *Store) Save(meta RunMetadata, samples []metrics.Sample) (string, error) {
	if meta.Name == "" {
		meta.Name = "run"
	}
	meta.Timestamp = time.Now()
	meta.Samples = len(samples)

	runID, runDir, err := s.newRunDir(meta.Name, meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, smp := range samples {
		if err := w.Write(sampleRow(smp)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(name string, ts time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", name, ts.Unix())
	for i := 1; ; i++ {
		id := base
		if i > 1 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		if err := os.MkdirAll(s.baseDir, 0755); err != nil {
			return "", "", err
		}
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
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

func sampleRow(s metrics.Sample) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		f(s.Time),
		f(s.Params.TubeLength),
		f(s.Params.PulseFrequency),
		f(s.Params.FuelFlow),
		f(s.Telemetry.Thrust),
		f(s.Telemetry.ChamberTemp),
		f(s.Telemetry.Resonance),
		strconv.Itoa(s.Particles),
		f(s.Control),
	}
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads back the recorded frames. Telemetry is recomputed from
// the stored knobs except where the file carries it.
func (s *Store) LoadSamples(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}
	defer file.Close()
	return ReadSamples(file)
}

// ReadSamples parses samples.csv content. Malformed rows are skipped.
func ReadSamples(r io.Reader) ([]metrics.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	out := make([]metrics.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 4 {
			continue
		}
		vals := make([]float64, len(rec))
		ok := true
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		p := params.Default()
		p.TubeLength, p.PulseFrequency, p.FuelFlow = vals[1], vals[2], vals[3]
		smp := metrics.Sample{
			Time:      vals[0],
			Params:    p,
			Telemetry: telemetry.FromParams(p),
		}
		if len(vals) >= len(sampleHeader) {
			smp.Telemetry.Thrust = vals[4]
			smp.Telemetry.ChamberTemp = vals[5]
			smp.Telemetry.Resonance = vals[6]
			smp.Particles = int(vals[7])
			smp.Control = vals[8]
		}
		out = append(out, smp)
	}
	return out, nil
}
