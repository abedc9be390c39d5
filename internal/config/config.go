package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/san-kum/pulsejet/internal/audio"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFPS    = 60
	EnvPrefix     = "PULSEJET"
)

type Config struct {
	LogLevel  string          `yaml:"log_level" mapstructure:"log_level"`
	LogFile   string          `yaml:"log_file" mapstructure:"log_file"`
	Seed      int64           `yaml:"seed" mapstructure:"seed"`
	Engine    EngineConfig    `yaml:"engine" mapstructure:"engine"`
	Audio     AudioConfig     `yaml:"audio" mapstructure:"audio"`
	Display   DisplayConfig   `yaml:"display" mapstructure:"display"`
	Particles ParticlesConfig `yaml:"particles" mapstructure:"particles"`
}

// EngineConfig is the starting parameter snapshot. Preset, when set, wins
// over the three knobs.
type EngineConfig struct {
	Preset         string  `yaml:"preset" mapstructure:"preset"`
	TubeLength     float64 `yaml:"tube_length" mapstructure:"tube_length"`
	PulseFrequency float64 `yaml:"pulse_frequency" mapstructure:"pulse_frequency"`
	FuelFlow       float64 `yaml:"fuel_flow" mapstructure:"fuel_flow"`
	ExhaustColor   string  `yaml:"exhaust_color" mapstructure:"exhaust_color"`
	Design         string  `yaml:"design" mapstructure:"design"`
	Camera         int     `yaml:"camera" mapstructure:"camera"`
	StartMuted     bool    `yaml:"start_muted" mapstructure:"start_muted"`
}

type AudioConfig struct {
	Backend      string `yaml:"backend" mapstructure:"backend"`
	SampleRate   int    `yaml:"sample_rate" mapstructure:"sample_rate"`
	BufferFrames int    `yaml:"buffer_frames" mapstructure:"buffer_frames"`
	MuteRampMS   int    `yaml:"mute_ramp_ms" mapstructure:"mute_ramp_ms"`
}

type DisplayConfig struct {
	Width      int  `yaml:"width" mapstructure:"width"`
	Height     int  `yaml:"height" mapstructure:"height"`
	FPS        int  `yaml:"fps" mapstructure:"fps"`
	Fullscreen bool `yaml:"fullscreen" mapstructure:"fullscreen"`
	ShowArrows bool `yaml:"show_arrows" mapstructure:"show_arrows"`
	ShowHeat   bool `yaml:"show_heat" mapstructure:"show_heat"`
	ShowWaves  bool `yaml:"show_waves" mapstructure:"show_waves"`
}

type ParticlesConfig struct {
	BaseRate     float64 `yaml:"base_rate" mapstructure:"base_rate"`
	InitialLife  float64 `yaml:"initial_life" mapstructure:"initial_life"`
	Margin       float64 `yaml:"margin" mapstructure:"margin"`
	MaxParticles int     `yaml:"max_particles" mapstructure:"max_particles"`
}

func DefaultConfig() *Config {
	p := params.Default()
	ac := audio.DefaultConfig()
	pc := particles.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Seed:     1,
		Engine: EngineConfig{
			TubeLength:     p.TubeLength,
			PulseFrequency: p.PulseFrequency,
			FuelFlow:       p.FuelFlow,
			ExhaustColor:   p.ExhaustColor.Hex(),
			Design:         p.Design.String(),
			Camera:         int(p.Camera),
			StartMuted:     p.Muted,
		},
		Audio: AudioConfig{
			Backend:      audio.BackendPortAudio,
			SampleRate:   ac.SampleRate,
			BufferFrames: ac.BufferFrames,
			MuteRampMS:   int(ac.MuteRamp / time.Millisecond),
		},
		Display: DisplayConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			FPS:        DefaultFPS,
			ShowArrows: p.ShowArrows,
			ShowHeat:   p.ShowHeat,
			ShowWaves:  p.ShowWaves,
		},
		Particles: ParticlesConfig{
			BaseRate:     pc.BaseRate,
			InitialLife:  pc.InitialLife,
			Margin:       pc.Margin,
			MaxParticles: pc.MaxParticles,
		},
	}
}

// Load reads path (YAML) over the defaults, then applies PULSEJET_*
// environment overrides such as PULSEJET_AUDIO_BACKEND. An empty path
// loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("seed", d.Seed)

	v.SetDefault("engine.preset", d.Engine.Preset)
	v.SetDefault("engine.tube_length", d.Engine.TubeLength)
	v.SetDefault("engine.pulse_frequency", d.Engine.PulseFrequency)
	v.SetDefault("engine.fuel_flow", d.Engine.FuelFlow)
	v.SetDefault("engine.exhaust_color", d.Engine.ExhaustColor)
	v.SetDefault("engine.design", d.Engine.Design)
	v.SetDefault("engine.camera", d.Engine.Camera)
	v.SetDefault("engine.start_muted", d.Engine.StartMuted)

	v.SetDefault("audio.backend", d.Audio.Backend)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.buffer_frames", d.Audio.BufferFrames)
	v.SetDefault("audio.mute_ramp_ms", d.Audio.MuteRampMS)

	v.SetDefault("display.width", d.Display.Width)
	v.SetDefault("display.height", d.Display.Height)
	v.SetDefault("display.fps", d.Display.FPS)
	v.SetDefault("display.fullscreen", d.Display.Fullscreen)
	v.SetDefault("display.show_arrows", d.Display.ShowArrows)
	v.SetDefault("display.show_heat", d.Display.ShowHeat)
	v.SetDefault("display.show_waves", d.Display.ShowWaves)

	v.SetDefault("particles.base_rate", d.Particles.BaseRate)
	v.SetDefault("particles.initial_life", d.Particles.InitialLife)
	v.SetDefault("particles.margin", d.Particles.Margin)
	v.SetDefault("particles.max_particles", d.Particles.MaxParticles)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params builds the starting snapshot. Out-of-range knobs are reported but
// still returned clamped, so a bad file never stops the engine.
func (c *Config) Params() (params.Params, error) {
	p := params.Default()
	var errs []error

	p.TubeLength = c.Engine.TubeLength
	p.PulseFrequency = c.Engine.PulseFrequency
	p.FuelFlow = c.Engine.FuelFlow
	if c.Engine.Preset != "" {
		pr, err := GetPreset(c.Engine.Preset)
		if err != nil {
			errs = append(errs, err)
		} else {
			p = p.Apply(pr)
		}
	}
	if err := p.Validate(); err != nil {
		errs = append(errs, err)
		p = p.Clamped()
	}

	if c.Engine.ExhaustColor != "" {
		col, err := params.ParseColor(c.Engine.ExhaustColor)
		if err != nil {
			errs = append(errs, err)
		} else {
			p.ExhaustColor = col
		}
	}
	if c.Engine.Design != "" {
		d, err := params.ParseDesign(c.Engine.Design)
		if err != nil {
			errs = append(errs, err)
		} else {
			p.Design = d
		}
	}
	p.Camera = params.Camera(c.Engine.Camera).Normalize()
	p.Muted = c.Engine.StartMuted
	p.ShowArrows = c.Display.ShowArrows
	p.ShowHeat = c.Display.ShowHeat
	p.ShowWaves = c.Display.ShowWaves

	return p, errors.Join(errs...)
}

func (c *Config) AudioConfig() audio.Config {
	return audio.Config{
		SampleRate:   c.Audio.SampleRate,
		BufferFrames: c.Audio.BufferFrames,
		MuteRamp:     time.Duration(c.Audio.MuteRampMS) * time.Millisecond,
		Seed:         c.Seed,
	}
}

func (c *Config) ParticleConfig() particles.Config {
	return particles.Config{
		BaseRate:     c.Particles.BaseRate,
		InitialLife:  c.Particles.InitialLife,
		Margin:       c.Particles.Margin,
		MaxParticles: c.Particles.MaxParticles,
	}
}
