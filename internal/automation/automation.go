package automation

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/san-kum/pulsejet/internal/config"
	"github.com/san-kum/pulsejet/internal/params"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted run of the engine controls, used for offline
// renders and analysis.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Duration    float64 `yaml:"duration"` // seconds; defaults to one second past the last step
	Steps       []Step  `yaml:"steps"`
}

// Step changes the controls at a point in simulated time. Unset knobs keep
// their previous value. With Glide the knobs move linearly from the
// previous step instead of jumping.
type Step struct {
	At             float64  `yaml:"at"`
	Preset         string   `yaml:"preset,omitempty"`
	TubeLength     *float64 `yaml:"tube_length,omitempty"`
	PulseFrequency *float64 `yaml:"pulse_frequency,omitempty"`
	FuelFlow       *float64 `yaml:"fuel_flow,omitempty"`
	Design         string   `yaml:"design,omitempty"`
	Glide          bool     `yaml:"glide,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// Length is the scenario's running time.
func (s *Scenario) Length() time.Duration {
	d := s.Duration
	if d <= 0 {
		for _, st := range s.Steps {
			d = max(d, st.At+1)
		}
	}
	return time.Duration(d * float64(time.Second))
}

type keyframe struct {
	at    float64
	p     params.Params
	glide bool
}

// Schedule resolves the steps against base and returns the parameters in
// effect at any simulated time.
func (s *Scenario) Schedule(base params.Params) (func(simTime float64) params.Params, error) {
	steps := append([]Step(nil), s.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	keys := []keyframe{{at: 0, p: base}}
	cur := base
	for i, st := range steps {
		if st.At < 0 {
			return nil, fmt.Errorf("step %d: negative time %v", i+1, st.At)
		}
		if st.Preset != "" {
			pr, err := config.GetPreset(st.Preset)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			cur = cur.Apply(pr)
		}
		if st.TubeLength != nil {
			cur = cur.Set(params.FieldTubeLength, *st.TubeLength)
		}
		if st.PulseFrequency != nil {
			cur = cur.Set(params.FieldPulseFrequency, *st.PulseFrequency)
		}
		if st.FuelFlow != nil {
			cur = cur.Set(params.FieldFuelFlow, *st.FuelFlow)
		}
		if st.Design != "" {
			d, err := params.ParseDesign(st.Design)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			cur.Design = d
		}
		keys = append(keys, keyframe{at: st.At, p: cur, glide: st.Glide})
	}

	return func(t float64) params.Params {
		i := sort.Search(len(keys), func(i int) bool { return keys[i].at > t }) - 1
		if i < 0 {
			i = 0
		}
		k := keys[i]
		if i+1 < len(keys) && keys[i+1].glide {
			next := keys[i+1]
			if span := next.at - k.at; span > 0 {
				return lerp(k.p, next.p, (t-k.at)/span)
			}
		}
		return k.p
	}, nil
}

func lerp(a, b params.Params, k float64) params.Params {
	out := b
	for _, f := range params.Fields() {
		out = out.Set(f, a.Get(f)+(b.Get(f)-a.Get(f))*k)
	}
	return out
}
