package main

import (
	"io"
	"os"

	"github.com/san-kum/pulsejet/internal/config"
	"github.com/san-kum/pulsejet/internal/gui"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/viz"
	"github.com/spf13/cobra"
)

var (
	themeName  string
	fullscreen bool
)

func guiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "open the engine window (default)",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addKnobFlags(cmd)
	cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "start fullscreen")
	return cmd
}

func runGUI(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()
	p := e.p
	if cmd.Flags().Lookup("tube") != nil {
		if p, err = e.knobs(cmd); err != nil {
			return err
		}
	}

	d := e.cfg.Display
	opts := gui.Options{
		Width:      d.Width,
		Height:     d.Height,
		FPS:        d.FPS,
		Fullscreen: d.Fullscreen || fullscreen,
		Presets:    config.Presets,
		Seed:       e.cfg.Seed,
	}
	return gui.Run(params.NewStore(p), e.engine(), e.particles(), opts, e.log)
}

// terminalLog drops console lines that would tear the alternate screen. A
// configured log file still receives them.
func terminalLog() io.Writer { return io.Discard }

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal view with an airframe and preset launcher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, terminalLog())
			if err != nil {
				return err
			}
			defer e.close()
			return viz.RunInteractive(params.NewStore(e.p), e.engine(), e.particles(), e.vizOptions(), e.log)
		},
	}
	cmd.Flags().StringVar(&themeName, "theme", "neon", "color theme")
	return cmd
}

func liveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "terminal view straight into the simulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, terminalLog())
			if err != nil {
				return err
			}
			defer e.close()
			p, err := e.knobs(cmd)
			if err != nil {
				return err
			}
			return viz.Run(params.NewStore(p), e.engine(), e.particles(), e.vizOptions(), e.log)
		},
	}
	addKnobFlags(cmd)
	cmd.Flags().StringVar(&themeName, "theme", "neon", "color theme")
	return cmd
}

func (e *env) vizOptions() viz.Options {
	return viz.Options{
		FPS:     min(e.cfg.Display.FPS, 30),
		Theme:   themeName,
		Presets: config.Presets,
		Seed:    e.cfg.Seed,
	}
}
