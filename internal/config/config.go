package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Rotation integrators understood by the engine.
const (
	IntegratorFrame    = "frame"
	IntegratorHarmonic = "harmonic"
)

// Points in a camera transition at which the scene graph is swapped.
const (
	RebuildOnCompletion = "completion"
	RebuildOnStart      = "start"
)

// EngineConfig holds the tunables of the navigation scene. Zero values are
// replaced by Default() values in Normalize.
type EngineConfig struct {
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	Title        string `json:"title"`
	VSync        bool   `json:"vsync"`
	Samples      int    `json:"samples"`

	StartContext  string `json:"start_context"`
	StartSection  int    `json:"start_section"`
	ReducedMotion bool   `json:"reduced_motion"`

	Integrator         string  `json:"integrator"`
	SpringStrength     float64 `json:"spring_strength"`
	Damping            float64 `json:"damping"`
	HarmonicFrequency  float64 `json:"harmonic_frequency"`
	BreathingAmplitude float32 `json:"breathing_amplitude"`
	RebuildOn          string  `json:"rebuild_on"`
	ParticleCount      int     `json:"particle_count"`
	ParticleSeed       int64   `json:"particle_seed"`
	Wireframe          bool    `json:"wireframe"`

	// SceneTable optionally points at a YAML scene table replacing the
	// embedded one.
	SceneTable string `json:"scene_table,omitempty"`
	Debug      bool   `json:"debug"`
}

// Default returns the configuration used when no file is present.
func Default() EngineConfig {
	return EngineConfig{
		WindowWidth:        1280,
		WindowHeight:       720,
		Title:              "HexScene",
		VSync:              true,
		Samples:            4,
		StartContext:       "hero",
		StartSection:       0,
		Integrator:         IntegratorFrame,
		SpringStrength:     0.015,
		Damping:            0.8,
		HarmonicFrequency:  6.0,
		BreathingAmplitude: 0.15,
		RebuildOn:          RebuildOnCompletion,
		ParticleCount:      240,
		ParticleSeed:       7,
	}
}

// Load reads the configuration at path. A missing file yields Default() and
// no error; a malformed file yields Default() and the parse error so the
// caller can decide whether to continue.
func Load(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration as indented JSON, creating parent
// directories when needed.
func (c EngineConfig) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Normalize replaces unset or out of range fields with defaults.
func (c *EngineConfig) Normalize() {
	def := Default()
	if c.WindowWidth <= 0 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = def.WindowHeight
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.StartContext == "" {
		c.StartContext = def.StartContext
	}
	if c.Integrator != IntegratorFrame && c.Integrator != IntegratorHarmonic {
		c.Integrator = def.Integrator
	}
	if c.SpringStrength <= 0 {
		c.SpringStrength = def.SpringStrength
	}
	if c.Damping <= 0 {
		c.Damping = def.Damping
	}
	if c.HarmonicFrequency <= 0 {
		c.HarmonicFrequency = def.HarmonicFrequency
	}
	if c.BreathingAmplitude < 0 {
		c.BreathingAmplitude = 0
	}
	if c.RebuildOn != RebuildOnCompletion && c.RebuildOn != RebuildOnStart {
		c.RebuildOn = def.RebuildOn
	}
	if c.ParticleCount < 0 {
		c.ParticleCount = 0
	}
}
