package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Engine.TubeLength != params.DefaultTubeLength {
		t.Errorf("expected tube %v, got %v", params.DefaultTubeLength, cfg.Engine.TubeLength)
	}
	if !cfg.Engine.StartMuted {
		t.Error("sound should start muted")
	}
	if cfg.Audio.MuteRampMS != 15 {
		t.Errorf("expected 15ms ramp, got %d", cfg.Audio.MuteRampMS)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if p != params.Default() {
		t.Errorf("default config params differ from params.Default: %+v", p)
	}
}

func TestGetPreset(t *testing.T) {
	pr, err := GetPreset("cruise")
	if err != nil {
		t.Fatal(err)
	}
	if pr.PulseFrequency != 30 {
		t.Errorf("expected 30 Hz, got %v", pr.PulseFrequency)
	}

	pr, err = GetPreset("5")
	if err != nil || pr.Name != "Max" {
		t.Errorf("expected Max by index, got %v (%v)", pr.Name, err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("warp")
	if !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetsWithinBounds(t *testing.T) {
	for _, pr := range Presets {
		p := params.Default().Apply(pr)
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s out of range: %v", pr.Name, err)
		}
	}
	if len(ListPresets()) != 5 {
		t.Errorf("expected 5 presets, got %v", ListPresets())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulsejet.yaml")
	data := []byte(`
log_level: debug
engine:
  fuel_flow: 0.9
  design: "Model aircraft"
audio:
  backend: oto
  mute_ramp_ms: 30
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PULSEJET_ENGINE_PULSE_FREQUENCY", "120")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.Engine.FuelFlow != 0.9 {
		t.Errorf("fuel = %v", cfg.Engine.FuelFlow)
	}
	if cfg.Engine.PulseFrequency != 120 {
		t.Errorf("env override not applied, pulse = %v", cfg.Engine.PulseFrequency)
	}
	if cfg.Engine.TubeLength != params.DefaultTubeLength {
		t.Errorf("missing key should keep default, tube = %v", cfg.Engine.TubeLength)
	}
	if cfg.AudioConfig().MuteRamp != 30*time.Millisecond {
		t.Errorf("ramp = %v", cfg.AudioConfig().MuteRamp)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.Design != params.DesignModelAircraft {
		t.Errorf("design = %v", p.Design)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParamsClampsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.FuelFlow = 3
	cfg.Engine.ExhaustColor = "chartreuse"
	cfg.Engine.Camera = 9

	p, err := cfg.Params()
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected bounds error, got %v", err)
	}
	if p.FuelFlow != params.MaxFuelFlow {
		t.Errorf("fuel should clamp to %v, got %v", params.MaxFuelFlow, p.FuelFlow)
	}
	if p.Camera != params.CameraSide {
		t.Errorf("camera should fall back to side, got %v", p.Camera)
	}
	if p.ExhaustColor != params.Default().ExhaustColor {
		t.Error("bad color should keep the default")
	}
}

func TestParamsPresetWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Preset = "boost"
	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.PulseFrequency != 80 || p.FuelFlow != 0.8 {
		t.Errorf("preset not applied: %+v", p)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Audio.Backend = "none"
	cfg.Display.FPS = 30

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Audio.Backend != "none" || got.Display.FPS != 30 {
		t.Errorf("round trip lost values: %+v", got)
	}
}
