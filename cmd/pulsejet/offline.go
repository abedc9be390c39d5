package main

import (
	"fmt"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pulsejet/internal/analysis"
	"github.com/san-kum/pulsejet/internal/audio"
	"github.com/san-kum/pulsejet/internal/automation"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/sim"
	"github.com/san-kum/pulsejet/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	gainDB  float64
	sweepTo float64
)

// schedule resolves --scenario, then --sweep-to, then a constant snapshot.
func schedule(cmd *cobra.Command, base params.Params) (audio.Schedule, float64, error) {
	if scenarioIn != "" {
		sc, err := automation.LoadScenario(scenarioIn)
		if err != nil {
			return nil, 0, err
		}
		fn, err := sc.Schedule(base)
		if err != nil {
			return nil, 0, err
		}
		d := floatFlag(cmd, "seconds")
		if !cmd.Flags().Changed("seconds") {
			d = sc.Length().Seconds()
		}
		return fn, d, nil
	}
	if cmd.Flags().Changed("sweep-to") {
		f, err := parseField(stringFlag(cmd, "sweep"))
		if err != nil {
			return nil, 0, err
		}
		secs := floatFlag(cmd, "seconds")
		end := base.Set(f, sweepTo)
		return audio.Sweep(base, end, time.Duration(secs*float64(time.Second))), secs, nil
	}
	return audio.Constant(base), floatFlag(cmd, "seconds"), nil
}

func parseField(name string) (params.Field, error) {
	for _, f := range params.Fields() {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown knob %q (tube, pulse or fuel)", name)
}

func addScheduleFlags(cmd *cobra.Command, seconds float64) {
	addKnobFlags(cmd)
	f := cmd.Flags()
	f.Float64("seconds", seconds, "length in seconds")
	f.IntVar(&frameRate, "fps", 60, "parameter update rate")
	f.StringVar(&scenarioIn, "scenario", "", "scenario file (yaml)")
	f.String("sweep", "pulse", "knob to sweep with --sweep-to")
	f.Float64Var(&sweepTo, "sweep-to", 0, "glide the swept knob to this value")
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render the engine sound to a WAV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer e.close()
			base, err := e.knobs(cmd)
			if err != nil {
				return err
			}
			sched, secs, err := schedule(cmd, base)
			if err != nil {
				return err
			}

			s, err := audio.NewSession(e.cfg.AudioConfig(), frameRate, sched, e.log)
			if err != nil {
				return err
			}
			defer s.Close()

			outPath := stringFlag(cmd, "out")
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			start := time.Now()
			d := time.Duration(secs * float64(time.Second))
			if err := audio.WriteWAV(f, s, d, gainDB); err != nil {
				return err
			}
			e.log.Info().
				Str("out", outPath).
				Dur("length", d).
				Dur("elapsed", time.Since(start)).
				Msg("render finished")
			return nil
		},
	}
	addScheduleFlags(cmd, 5)
	cmd.Flags().StringP("out", "o", "pulsejet.wav", "output WAV path")
	cmd.Flags().Float64Var(&gainDB, "gain", 0, "extra gain in dB")
	return cmd
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "render offline and show the engine spectrum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer e.close()
			p, err := e.knobs(cmd)
			if err != nil {
				return err
			}
			s, err := audio.NewSession(e.cfg.AudioConfig(), frameRate, audio.Constant(p), e.log)
			if err != nil {
				return err
			}
			defer s.Close()

			sr := float64(s.SampleRate())
			// skip the fade-in before measuring
			s.RenderMono(int(sr * 0.1))
			samples := s.RenderMono(int(sr * floatFlag(cmd, "seconds")))
			spec := analysis.Analyze(samples, sr)

			fmt.Printf("frequency analysis: tube %.2f m, pulse %.1f Hz, fuel %.2f\n", p.TubeLength, p.PulseFrequency, p.FuelFlow)
			fmt.Printf("samples: %d at %.0f Hz (bin %.2f Hz)\n\n", len(samples), sr, spec.BinHz())

			const maxHz = 2000
			graph := asciigraph.Plot(spec.Bands(80, maxHz),
				asciigraph.Height(15),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("magnitude 0-%d Hz", maxHz)),
			)
			fmt.Println(graph)
			fmt.Println()

			tone := audio.ToneFrequency(p.PulseFrequency, 0)
			fmt.Printf("expected tone: ~%.1f Hz\n", tone)
			for i, pk := range spec.Peaks(5, 20) {
				fmt.Printf("peak %d: %8.2f Hz  %.4f\n", i+1, pk.Hz, pk.Magnitude)
			}
			rate := analysis.PulseRate(samples, sr, params.MinPulseFrequency*0.5, params.MaxPulseFrequency*1.2)
			fmt.Printf("measured pulse rate: %.2f Hz (set %.1f Hz)\n", rate, p.PulseFrequency)
			return nil
		},
	}
	addKnobFlags(cmd)
	cmd.Flags().Float64("seconds", 2, "seconds to analyze")
	cmd.Flags().IntVar(&frameRate, "fps", 60, "parameter update rate")
	return cmd
}

func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "play the engine through the audio device without a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer e.close()
			base, err := e.knobs(cmd)
			if err != nil {
				return err
			}
			sched, secs, err := schedule(cmd, base)
			if err != nil {
				return err
			}

			store := params.NewStore(base)
			engine := e.engine()
			defer engine.Close()

			start := sched(0)
			start.Muted = false
			store.Set(start)
			engine.Init(start)
			if engine.State() != audio.Running {
				return fmt.Errorf("audio backend %q did not start", e.cfg.Audio.Backend)
			}

			driver := sim.New(store, e.particles(), sim.FixedSurface{W: 1280, H: 720}, nil, engine, e.log)
			ctx, cancel := signalContext()
			defer cancel()

			fps := max(frameRate, 1)
			ticker := time.NewTicker(time.Second / time.Duration(fps))
			defer ticker.Stop()
			began := time.Now()
			lastReport := -1

			for {
				t := driver.SimTime()
				if secs > 0 && t >= secs {
					return nil
				}
				p := sched(t)
				p.Muted = false
				store.Set(p)
				driver.Tick(time.Since(began))

				if sec := int(t); sec != lastReport {
					lastReport = sec
					snap := telemetry.FromParams(p)
					e.log.Info().
						Float64("t", t).
						Float64("thrust", snap.Thrust).
						Float64("temp", snap.ChamberTemp).
						Float64("pulse", p.PulseFrequency).
						Msg("playing")
				}

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
	addScheduleFlags(cmd, 0)
	cmd.Flags().Lookup("seconds").Usage = "length in seconds, 0 plays until interrupted"
	return cmd
}
