package main

import (
	"time"

	"HexScene/internal/engine"
	"HexScene/internal/logger"
	"HexScene/internal/physics"
	"HexScene/internal/renderer"
	"HexScene/internal/scene"
	"HexScene/internal/script"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSimulateCommand() *cobra.Command {
	var (
		duration  time.Duration
		stepSpecs []string
		interval  time.Duration
		width     int
		height    int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the scene headless with scripted navigation",
		Long: `Run the scene without a window, feeding scripted host input.

Steps are <time>:<key>=<value>, with keys section, context, reduced,
interacting, nudge and resize, for example:

  hexscene simulate --step 1s:section=3 --step 4s:context=features`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, registry, err := loadSetup(cmd)
			if err != nil {
				return err
			}
			steps, err := script.Parse(stepSpecs)
			if err != nil {
				return err
			}

			r := renderer.NewNullRenderer()
			m, err := engine.NewSceneManager(engine.Options{Config: cfg, Registry: registry, Renderer: r})
			if err != nil {
				return err
			}
			m.OnTransitionComplete(func(ctx scene.Context) {
				logger.Log.Info("Arrived", zap.String("context", string(ctx)), zap.String("atmosphere", string(m.Graph().Rig.Atmosphere)))
			})
			if err := m.Mount(renderer.StaticSurface{Width: width, Height: height}, 0); err != nil {
				return err
			}
			defer m.Unmount()

			src := &engine.SyntheticFrames{Start: physics.FrameStep, Step: physics.FrameStep, Count: int(duration / physics.FrameStep)}
			frames := script.NewFrames(src, m, steps, interval)
			if err := m.Run(cmd.Context(), frames); err != nil {
				return err
			}
			script.Report(m, duration)
			logger.Log.Info("Simulation finished",
				zap.Int64("frames", r.Frames()),
				zap.Int64("uploads", r.Uploads()),
				zap.Int64("releases", r.Releases()))
			return nil
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 10*time.Second, "Simulated time")
	cmd.Flags().StringArrayVar(&stepSpecs, "step", nil, "Scripted input <time>:<key>=<value> (repeatable)")
	cmd.Flags().DurationVar(&interval, "report", time.Second, "Report interval")
	cmd.Flags().IntVar(&width, "width", 1280, "Virtual framebuffer width")
	cmd.Flags().IntVar(&height, "height", 720, "Virtual framebuffer height")
	return cmd
}
