// Command hexscene runs the hexagonal navigation scene in a window, or
// headless for scripted simulations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"HexScene/internal/config"
	"HexScene/internal/logger"
	"HexScene/internal/scene"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath    string
	scenesPath    string
	startContext  string
	startSection  int
	reducedMotion bool
	integrator    string
	debug         bool
	wireframe     bool
)

func main() {
	root := &cobra.Command{
		Use:   "hexscene",
		Short: "Hexagonal 3D navigation scene",
		Long: `hexscene - Hexagonal 3D navigation scene

A rotating hexagon whose six faces are the site sections. Changing the
context eases the camera to that context's viewpoint and swaps its
lighting and decorative models on arrival.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "hexscene.json", "Engine configuration file (JSON)")
	flags.StringVar(&scenesPath, "scenes", "", "Scene table (YAML) replacing the built-in one")
	flags.StringVar(&startContext, "context", "", "Starting context")
	flags.IntVar(&startSection, "section", 0, "Starting section index (0-5)")
	flags.BoolVar(&reducedMotion, "reduced-motion", false, "Shorter transitions, no auto-rotation or ambient motion")
	flags.StringVar(&integrator, "integrator", "", "Rotation spring: frame or harmonic")
	flags.BoolVar(&debug, "debug", false, "Debug logging")

	root.AddCommand(newRunCommand(), newSimulateCommand(), newContextsCommand(), newValidateCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadSetup reads the config file and scene table and applies flag
// overrides.
func loadSetup(cmd *cobra.Command) (config.EngineConfig, *scene.Registry, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		// A broken config file is not worth refusing to start over.
		logger.Log.Warn("Using default configuration", zap.Error(err))
	}

	flags := cmd.Flags()
	if flags.Changed("context") {
		cfg.StartContext = startContext
	}
	if flags.Changed("section") {
		cfg.StartSection = startSection
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("scenes") {
		cfg.SceneTable = scenesPath
	}
	if flags.Changed("wireframe") {
		cfg.Wireframe = wireframe
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	cfg.Normalize()
	// The flag was already applied in PersistentPreRun; the file can still
	// turn debug logging on.
	if cfg.Debug != debug {
		logger.Setup(cfg.Debug)
	}

	registry, err := loadRegistry(cfg.SceneTable)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, registry, nil
}

func loadRegistry(path string) (*scene.Registry, error) {
	if path == "" {
		return scene.DefaultRegistry()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene table: %w", err)
	}
	defer f.Close()
	return scene.LoadRegistry(f)
}
