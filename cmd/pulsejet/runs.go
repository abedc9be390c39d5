package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pulsejet/internal/experiment"
	"github.com/san-kum/pulsejet/internal/export"
	"github.com/san-kum/pulsejet/internal/metrics"
	"github.com/san-kum/pulsejet/internal/storage"
	"github.com/san-kum/pulsejet/internal/viz"
	"github.com/spf13/cobra"
)

var (
	runName    string
	controller string
	ctlOpts    []string
	holdThrust float64
	svgPath    string
	svgScale   float64
	cols, rows int
	snapAt     float64
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "record a headless run to the data directory",
		Args:  cobra.NoArgs,
		RunE:  recordRun,
	}
	addScheduleFlags(cmd, 10)
	f := cmd.Flags()
	f.StringVar(&runName, "name", "run", "run name")
	f.StringVar(&controller, "controller", "none", "governor: none, hold-thrust, pin-tube, pin-pulse, pin-fuel")
	f.StringSliceVar(&ctlOpts, "ctl", nil, "governor options as key=value (target, kp, ki, kd, value)")
	f.Float64Var(&holdThrust, "hold-thrust", 0, "shorthand for --controller hold-thrust --ctl target=N")
	return cmd
}

func parseOpts(kvs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(kvs))
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("governor option %q is not key=value", kv)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("governor option %s: %w", k, err)
		}
		out[strings.TrimSpace(k)] = f
	}
	return out, nil
}

func recordRun(cmd *cobra.Command, args []string) error {
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

	opts, err := parseOpts(ctlOpts)
	if err != nil {
		return err
	}
	if holdThrust > 0 {
		controller = "hold-thrust"
		opts["target"] = holdThrust
	}

	registry := experiment.NewRegistry()
	ctl, err := registry.GetController(controller, opts)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, registry.ListControllers())
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Name:      runName,
		Duration:  secs,
		FPS:       frameRate,
		Seed:      e.cfg.Seed,
		Base:      base,
		Schedule:  sched,
		Particles: e.cfg.ParticleConfig(),
	}, e.log)
	exp.Setup(ctl, registry.DefaultMetrics())

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("recording %s (%.1fs at %d fps)...\n", runName, secs, frameRate)
	result, err := exp.Run(ctx)
	if err != nil {
		if result == nil || len(result.Samples) == 0 {
			return err
		}
		e.log.Warn().Err(err).Int("samples", len(result.Samples)).Msg("run interrupted, saving partial result")
	}

	runID, err := st.Save(storage.RunMetadata{
		Name:       runName,
		Seed:       e.cfg.Seed,
		FPS:        frameRate,
		Duration:   secs,
		Controller: controller,
		Scenario:   scenarioIn,
		Design:     base.Design.String(),
		TubeLength: base.TubeLength,
		Pulse:      base.PulseFrequency,
		FuelFlow:   base.FuelFlow,
		Metrics:    result.Metrics,
	}, result.Samples)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Samples))
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tDURATION\tFPS\tCTRL\tTHRUST\tPEAK TEMP")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%.1fs\t%d\t%s\t%.2f N\t%.0f K\n",
					run.ID,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Duration,
					run.FPS,
					run.Controller,
					run.Metrics["mean_thrust"],
					run.Metrics["peak_temp"],
				)
			}
			return w.Flush()
		},
	}
}

var plotChannels = []struct {
	name string
	pick func(metrics.Sample) float64
}{
	{"thrust (N)", func(s metrics.Sample) float64 { return s.Telemetry.Thrust }},
	{"chamber temp (K)", func(s metrics.Sample) float64 { return s.Telemetry.ChamberTemp }},
	{"resonance", func(s metrics.Sample) float64 { return s.Telemetry.Resonance }},
	{"fuel flow", func(s metrics.Sample) float64 { return s.Params.FuelFlow }},
	{"pulse frequency (Hz)", func(s metrics.Sample) float64 { return s.Params.PulseFrequency }},
}

func plotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			samples, err := st.LoadSamples(args[0])
			if err != nil {
				return err
			}
			if len(samples) == 0 {
				return fmt.Errorf("no data to plot")
			}

			if svgPath != "" {
				pts := make([]export.Point, len(samples))
				for i, s := range samples {
					pts[i] = export.Point{X: s.Time, Y: s.Telemetry.Thrust}
				}
				return os.WriteFile(svgPath, []byte(export.SeriesToSVG(pts, 800, 300, string(viz.ThemeNeon.Flame))), 0644)
			}

			fmt.Printf("run: %s\n", meta.ID)
			fmt.Printf("controller: %s\n", meta.Controller)
			fmt.Printf("samples: %d\n\n", len(samples))

			for _, ch := range plotChannels {
				data := make([]float64, len(samples))
				for i, s := range samples {
					data[i] = ch.pick(s)
				}
				graph := asciigraph.Plot(data,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(ch.name),
				)
				fmt.Println(graph)
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the thrust trace to an SVG file instead")
	return cmd
}

func exportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			samples, err := st.LoadSamples(args[0])
			if err != nil {
				return err
			}

			outPath := stringFlag(cmd, "out")
			if outPath == "" || outPath == "-" {
				return storage.ExportJSON(os.Stdout, *meta, samples)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()
			return storage.ExportJSON(f, *meta, samples)
		},
	}
	cmd.Flags().StringP("out", "o", "", "output path, stdout when empty")
	return cmd
}

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame of the terminal scene to SVG",
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
			theme := viz.GetTheme(themeName)
			canvas, err := viz.Snapshot(p, viz.SnapshotOptions{
				Cols:      cols,
				Rows:      rows,
				At:        snapAt,
				Seed:      e.cfg.Seed,
				Theme:     theme,
				Particles: e.cfg.ParticleConfig(),
			}, e.log)
			if err != nil {
				return err
			}

			svg := export.CanvasToSVG(canvas, theme, svgScale)
			outPath := stringFlag(cmd, "out")
			if outPath == "" || outPath == "-" {
				_, err = fmt.Println(svg)
				return err
			}
			return os.WriteFile(outPath, []byte(svg), 0644)
		},
	}
	addKnobFlags(cmd)
	f := cmd.Flags()
	f.StringP("out", "o", "snapshot.svg", "output path, - for stdout")
	f.StringVar(&themeName, "theme", "neon", "color theme")
	f.IntVar(&cols, "cols", 120, "canvas width in cells")
	f.IntVar(&rows, "rows", 36, "canvas height in cells")
	f.Float64Var(&snapAt, "at", 1.5, "simulated time of the frame (s)")
	f.Float64Var(&svgScale, "scale", 4, "pixels per braille dot")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a recorded run's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := storage.New(dataDir).Load(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		},
	}
}
