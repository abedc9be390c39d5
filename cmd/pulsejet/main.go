package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/audio"
	"github.com/san-kum/pulsejet/internal/config"
	"github.com/san-kum/pulsejet/internal/logging"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	backend    string
	seed       int64
	dataDir    string
	// knob flags shared by the offline commands
	tube       float64
	pulse      float64
	fuel       float64
	preset     string
	design     string
	frameRate  int
	scenarioIn string
)

// main registers the commands. With no subcommand it opens the window.
func main() {
	rootCmd := &cobra.Command{
		Use:          "pulsejet",
		Short:        "pulse-jet engine simulator",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringVar(&backend, "audio", "", fmt.Sprintf("audio backend %v", audio.Backends()))
	pf.Int64Var(&seed, "seed", 0, "random seed (0 keeps the config value)")
	pf.StringVar(&dataDir, "data", ".pulsejet", "data directory for recorded runs")

	rootCmd.AddCommand(
		guiCmd(),
		tuiCmd(),
		liveCmd(),
		playCmd(),
		telemetryCmd(),
		presetsCmd(),
		tuneCmd(),
		renderCmd(),
		analyzeCmd(),
		runCmd(),
		listCmd(),
		showCmd(),
		plotCmd(),
		exportJSONCmd(),
		snapshotCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env is what every command builds from the config file and flags.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	p       params.Params
	logFile *os.File
}

// close releases the log file, if one was opened.
func (e *env) close() {
	if e.logFile == nil {
		return
	}
	if err := e.logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
	}
	e.logFile = nil
}

func loadEnv(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("audio") {
		cfg.Audio.Backend = backend
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	var log zerolog.Logger
	var logFile *os.File
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		log = logging.NewWithFile(cfg.LogLevel, logOut, f)
		logFile = f
	} else {
		log = logging.New(cfg.LogLevel, logOut)
	}

	p, err := cfg.Params()
	if err != nil {
		log.Warn().Err(err).Msg("config has out-of-range engine values, clamped")
	}
	return &env{cfg: cfg, log: log, p: p, logFile: logFile}, nil
}

// knobs applies --preset, --design and any knob flags the user set on top
// of the configured snapshot.
func (e *env) knobs(cmd *cobra.Command) (params.Params, error) {
	p := e.p
	if preset != "" {
		pr, err := config.GetPreset(preset)
		if err != nil {
			return p, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		p = p.Apply(pr)
	}
	if design != "" {
		d, err := params.ParseDesign(design)
		if err != nil {
			return p, err
		}
		p.Design = d
	}
	f := cmd.Flags()
	if f.Changed("tube") {
		p.TubeLength = tube
	}
	if f.Changed("pulse") {
		p.PulseFrequency = pulse
	}
	if f.Changed("fuel") {
		p.FuelFlow = fuel
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func addKnobFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&tube, "tube", params.DefaultTubeLength, "tube length (m)")
	f.Float64Var(&pulse, "pulse", params.DefaultPulseFrequency, "pulse frequency (Hz)")
	f.Float64Var(&fuel, "fuel", params.DefaultFuelFlow, "fuel flow (0.2-1)")
	f.StringVar(&preset, "preset", "", fmt.Sprintf("operating preset %v", config.ListPresets()))
	f.StringVar(&design, "design", "", "airframe design")
}

func (e *env) particles() *particles.System {
	return particles.New(e.cfg.ParticleConfig(), particles.NewRand(e.cfg.Seed))
}

// engine opens the configured audio host. A missing device leaves the
// engine silent rather than failing the command.
func (e *env) engine() *audio.Engine {
	host, err := audio.NewHost(e.cfg.Audio.Backend)
	if err != nil {
		e.log.Warn().Err(err).Str("backend", e.cfg.Audio.Backend).Msg("unknown audio backend, running silent")
		host = audio.UnavailableHost{}
	}
	return audio.NewEngine(host, e.cfg.AudioConfig(), e.log)
}

// Flags whose defaults differ between commands are read back from the
// command rather than bound to a shared variable.
func floatFlag(cmd *cobra.Command, name string) float64 {
	v, _ := cmd.Flags().GetFloat64(name)
	return v
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
