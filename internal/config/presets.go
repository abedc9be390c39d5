package config

import (
	"fmt"
	"strings"

	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
)

// Presets are the scenario operating points, from idle-low to the edge of
// the envelope.
var Presets = []params.Preset{
	{Name: "Min", TubeLength: 0.6, PulseFrequency: 5, FuelFlow: 0.2},
	{Name: "Idle", TubeLength: 1.2, PulseFrequency: 10, FuelFlow: 0.25},
	{Name: "Cruise", TubeLength: 1.4, PulseFrequency: 30, FuelFlow: 0.5},
	{Name: "Boost", TubeLength: 1.6, PulseFrequency: 80, FuelFlow: 0.8},
	{Name: "Max", TubeLength: 2.2, PulseFrequency: 250, FuelFlow: 1.0},
}

// GetPreset finds a preset by case-insensitive name or by its 1-based
// position.
func GetPreset(name string) (params.Preset, error) {
	key := strings.TrimSpace(name)
	for i, pr := range Presets {
		if strings.EqualFold(pr.Name, key) || key == fmt.Sprint(i+1) {
			return pr, nil
		}
	}
	return params.Preset{}, fmt.Errorf("preset %q: %w", name, dynamo.ErrUnknownPreset)
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for _, pr := range Presets {
		names = append(names, pr.Name)
	}
	return names
}
