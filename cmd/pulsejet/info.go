package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pulsejet/internal/analysis"
	"github.com/san-kum/pulsejet/internal/config"
	"github.com/san-kum/pulsejet/internal/optim"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	sweepSteps int
	objective  string
	gridSteps  int
	maxTemp    float64
	searchKeys []string
)

func telemetryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "print the readouts for an operating point",
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

			if cmd.Flags().Changed("sweep") {
				return printSweep(p, stringFlag(cmd, "sweep"))
			}

			s := telemetry.FromParams(p)
			thrust, temp, rate := s.Dials()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "READOUT\tVALUE\tDIAL")
			fmt.Fprintf(w, "thrust\t%.2f N\t%.0f%%\n", s.Thrust, thrust*100)
			fmt.Fprintf(w, "chamber temp\t%.0f K\t%.0f%%\n", s.ChamberTemp, temp*100)
			fmt.Fprintf(w, "pulse rate\t%.1f Hz\t%.0f%%\n", s.PulseRate, rate*100)
			fmt.Fprintf(w, "resonance\t%.3f\t\n", s.Resonance)
			fmt.Fprintf(w, "ideal tube\t%.3f m\t\n", telemetry.IdealTubeLength(p.FuelFlow))
			if p.Overloaded() {
				fmt.Fprintln(w, "status\tOVERLOAD\t")
			}
			return w.Flush()
		},
	}
	addKnobFlags(cmd)
	cmd.Flags().String("sweep", "tube", "sweep one knob across its range and chart thrust")
	cmd.Flags().IntVar(&sweepSteps, "steps", 80, "sweep resolution")
	return cmd
}

func printSweep(base params.Params, knob string) error {
	f, err := parseField(knob)
	if err != nil {
		return err
	}
	lo, hi, _ := f.Range()
	points := analysis.Sweep(base, f, sweepSteps)

	charts := []struct {
		caption string
		pick    func(telemetry.Snapshot) float64
	}{
		{"thrust (N)", func(s telemetry.Snapshot) float64 { return s.Thrust }},
		{"chamber temp (K)", func(s telemetry.Snapshot) float64 { return s.ChamberTemp }},
	}
	for _, c := range charts {
		graph := asciigraph.Plot(analysis.Series(points, c.pick),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs %s %g-%g %s", c.caption, f, lo, hi, f.Unit())),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list operating presets with their readouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tPRESET\tTUBE\tPULSE\tFUEL\tTHRUST\tTEMP")
			for i, pr := range config.Presets {
				s := telemetry.Compute(pr.TubeLength, pr.FuelFlow, pr.PulseFrequency)
				fmt.Fprintf(w, "%d\t%s\t%.2f m\t%.0f Hz\t%.2f\t%.1f N\t%.0f K\n",
					i+1, pr.Name, pr.TubeLength, pr.PulseFrequency, pr.FuelFlow, s.Thrust, s.ChamberTemp)
			}
			return w.Flush()
		},
	}
}

func tuneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search the knobs for the best operating point",
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
			obj, err := optim.GetObjective(objective)
			if err != nil {
				return err
			}

			axes := make([]optim.Axis, 0, len(searchKeys))
			for _, k := range searchKeys {
				f, err := parseField(k)
				if err != nil {
					return err
				}
				axes = append(axes, optim.Linspace(f, gridSteps))
			}
			gs := optim.NewGridSearch(axes...)
			gs.MaxTemp = maxTemp

			ctx, cancel := signalContext()
			defer cancel()
			start := time.Now()
			res, err := gs.Search(ctx, base, obj)
			if err != nil {
				return err
			}

			fmt.Printf("objective: %s over %v (%d points, %d rejected, %v)\n\n",
				obj.Name, searchKeys, res.Evaluated, res.Rejected, time.Since(start).Round(time.Millisecond))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "tube\t%.3f m\n", res.Params.TubeLength)
			fmt.Fprintf(w, "pulse\t%.1f Hz\n", res.Params.PulseFrequency)
			fmt.Fprintf(w, "fuel\t%.3f\n", res.Params.FuelFlow)
			fmt.Fprintf(w, "thrust\t%.2f N\n", res.Telemetry.Thrust)
			fmt.Fprintf(w, "chamber temp\t%.0f K\n", res.Telemetry.ChamberTemp)
			fmt.Fprintf(w, "resonance\t%.3f\n", res.Telemetry.Resonance)
			return w.Flush()
		},
	}
	addKnobFlags(cmd)
	f := cmd.Flags()
	f.StringVar(&objective, "objective", "efficiency", fmt.Sprintf("objective %v", optim.ObjectiveNames()))
	f.IntVar(&gridSteps, "steps", 41, "grid points per knob")
	f.Float64Var(&maxTemp, "max-temp", 0, "reject points hotter than this (K), 0 disables")
	f.StringSliceVar(&searchKeys, "search", []string{"tube", "fuel"}, "knobs to search")
	return cmd
}
