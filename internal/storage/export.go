package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/pulsejet/internal/metrics"
)

type ExportData struct {
	Run         RunMetadata        `json:"run"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	Thrust      []float64          `json:"thrust"`
	ChamberTemp []float64          `json:"chamber_temp"`
	Resonance   []float64          `json:"resonance"`
	Knobs       [][3]float64       `json:"knobs"`
	Controls    []float64          `json:"controls"`
	Metrics     map[string]float64 `json:"metrics"`
}

// NewExport lays the samples out column-wise. Knobs rows are tube length,
// pulse frequency and fuel flow.
func NewExport(meta RunMetadata, samples []metrics.Sample) ExportData {
	n := len(samples)
	d := ExportData{
		Run:         meta,
		Steps:       n,
		Times:       make([]float64, n),
		Thrust:      make([]float64, n),
		ChamberTemp: make([]float64, n),
		Resonance:   make([]float64, n),
		Knobs:       make([][3]float64, n),
		Controls:    make([]float64, n),
		Metrics:     meta.Metrics,
	}
	for i, s := range samples {
		d.Times[i] = s.Time
		d.Thrust[i] = s.Telemetry.Thrust
		d.ChamberTemp[i] = s.Telemetry.ChamberTemp
		d.Resonance[i] = s.Telemetry.Resonance
		d.Knobs[i] = [3]float64{s.Params.TubeLength, s.Params.PulseFrequency, s.Params.FuelFlow}
		d.Controls[i] = s.Control
	}
	return d
}

func ExportJSON(w io.Writer, meta RunMetadata, samples []metrics.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExport(meta, samples))
}
