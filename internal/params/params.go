// Package params defines the parameter snapshot that every part of the
// simulation core reads, and the single-writer store that publishes it.
package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/pulsejet/internal/dynamo"
)

const (
	MinTubeLength     = 0.6
	MaxTubeLength     = 2.2
	MinPulseFrequency = 5.0
	MaxPulseFrequency = 250.0
	MinFuelFlow       = 0.2
	MaxFuelFlow       = 1.0

	DefaultTubeLength     = 1.4
	DefaultPulseFrequency = 15.0
	DefaultFuelFlow       = 0.7
	DefaultExhaustColor   = "#68e0ff"
)

// Design selects the decorative skin drawn around the combustion chamber.
type Design int

const (
	DesignV1 Design = iota
	DesignBuzzBomb
	DesignMotorcycle
	DesignGoKart
	DesignModelAircraft
	numDesigns
)

var designNames = [numDesigns]string{
	"V-1 flying bomb",
	"Buzz Bomb drone",
	"Pulse jet motorcycle",
	"Pulse jet go-kart",
	"Model aircraft",
}

func (d Design) String() string {
	if d < 0 || d >= numDesigns {
		return designNames[DesignV1]
	}
	return designNames[d]
}

// Next cycles to the following design, wrapping around.
func (d Design) Next() Design {
	if d < 0 {
		return DesignV1
	}
	return (d + 1) % numDesigns
}

// Designs lists every design in display order.
func Designs() []Design {
	out := make([]Design, numDesigns)
	for i := range out {
		out[i] = Design(i)
	}
	return out
}

// ParseDesign accepts the display name (case-insensitive) or the index.
func ParseDesign(s string) (Design, error) {
	s = strings.TrimSpace(s)
	for i, name := range designNames {
		if strings.EqualFold(name, s) {
			return Design(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < int(numDesigns) {
		return Design(n), nil
	}
	return DesignV1, fmt.Errorf("design %q: %w", s, dynamo.ErrParameterBounds)
}

// Camera selects the scene view.
type Camera int

const (
	CameraSide Camera = iota
	CameraCutaway
	CameraChamber
	numCameras
)

var cameraNames = [numCameras]string{"Side", "Cutaway", "Chamber"}

func (c Camera) String() string {
	if c < 0 || c >= numCameras {
		return cameraNames[CameraSide]
	}
	return cameraNames[c]
}

// Normalize maps out-of-range values to the side view.
func (c Camera) Normalize() Camera {
	if c < 0 || c >= numCameras {
		return CameraSide
	}
	return c
}

func (c Camera) Next() Camera {
	if c < 0 {
		return CameraSide
	}
	return (c + 1) % numCameras
}

// Color is an sRGB triple.
type Color struct {
	R, G, B uint8
}

// ParseColor reads "#rgb" or "#rrggbb".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("color %q: %w", s, dynamo.ErrParameterBounds)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Params is an immutable snapshot of the user-controlled parameters. It is
// passed by value; holders never observe later writes.
type Params struct {
	TubeLength     float64
	PulseFrequency float64
	FuelFlow       float64
	ExhaustColor   Color
	Design         Design
	Muted          bool
	Paused         bool
	Camera         Camera

	ShowArrows bool
	ShowHeat   bool
	ShowWaves  bool
}

// Default mirrors the control surface's start-up state. Sound starts muted.
func Default() Params {
	c, _ := ParseColor(DefaultExhaustColor)
	return Params{
		TubeLength:     DefaultTubeLength,
		PulseFrequency: DefaultPulseFrequency,
		FuelFlow:       DefaultFuelFlow,
		ExhaustColor:   c,
		Design:         DesignV1,
		Muted:          true,
		Camera:         CameraSide,
		ShowArrows:     true,
		ShowHeat:       true,
		ShowWaves:      true,
	}
}

// Clamped returns p with every numeric field forced into its declared range.
func (p Params) Clamped() Params {
	p.TubeLength = dynamo.Clamp(p.TubeLength, MinTubeLength, MaxTubeLength)
	p.PulseFrequency = dynamo.Clamp(p.PulseFrequency, MinPulseFrequency, MaxPulseFrequency)
	p.FuelFlow = dynamo.Clamp(p.FuelFlow, MinFuelFlow, MaxFuelFlow)
	if p.Camera < 0 || p.Camera >= numCameras {
		p.Camera = CameraSide
	}
	if p.Design < 0 || p.Design >= numDesigns {
		p.Design = DesignV1
	}
	return p
}

// Validate reports the first field outside its declared range.
func (p Params) Validate() error {
	check := func(name string, v, lo, hi float64) error {
		if math.IsNaN(v) || v < lo || v > hi {
			return fmt.Errorf("%s=%g not in [%g,%g]: %w", name, v, lo, hi, dynamo.ErrParameterBounds)
		}
		return nil
	}
	if err := check("tube_length", p.TubeLength, MinTubeLength, MaxTubeLength); err != nil {
		return err
	}
	if err := check("pulse_frequency", p.PulseFrequency, MinPulseFrequency, MaxPulseFrequency); err != nil {
		return err
	}
	if err := check("fuel_flow", p.FuelFlow, MinFuelFlow, MaxFuelFlow); err != nil {
		return err
	}
	if p.Camera < 0 || p.Camera >= numCameras {
		return fmt.Errorf("camera=%d: %w", p.Camera, dynamo.ErrParameterBounds)
	}
	return nil
}

// Phase is the combustion oscillator sin(2π·f·t). Positive means the
// exhaust stroke.
func (p Params) Phase(simTime float64) float64 {
	return math.Sin(2 * math.Pi * p.PulseFrequency * simTime)
}

// Overloaded reports whether the engine is running past its safe envelope.
// The scene shows a blast effect in that case.
func (p Params) Overloaded() bool {
	return p.FuelFlow > 0.95 || p.PulseFrequency > 240
}

// Preset is a named operating point for the three physical knobs.
type Preset struct {
	Name           string  `yaml:"name" mapstructure:"name"`
	TubeLength     float64 `yaml:"tube_length" mapstructure:"tube_length"`
	PulseFrequency float64 `yaml:"pulse_frequency" mapstructure:"pulse_frequency"`
	FuelFlow       float64 `yaml:"fuel_flow" mapstructure:"fuel_flow"`
}

// Apply copies the preset's knobs onto p, leaving toggles untouched.
func (p Params) Apply(pr Preset) Params {
	p.TubeLength = pr.TubeLength
	p.PulseFrequency = pr.PulseFrequency
	p.FuelFlow = pr.FuelFlow
	return p
}
