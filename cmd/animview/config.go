package main

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-actor/engine/loader"
	"github.com/caarlos0/env/v11"
)

// config holds the viewer settings read from ANIMVIEW_* environment variables.
type config struct {
	ModelDir string   `env:"ANIMVIEW_MODEL_DIR" envDefault:"assets"`
	Format   string   `env:"ANIMVIEW_FORMAT" envDefault:"yaml"`
	Model    string   `env:"ANIMVIEW_MODEL" envDefault:"base_anim"`
	Attach   []string `env:"ANIMVIEW_ATTACH" envSeparator:"," envDefault:"walker,torch"`
	Groups   []string `env:"ANIMVIEW_GROUPS" envSeparator:"," envDefault:"Idle,Walk,Wave"`
	Overlay  string   `env:"ANIMVIEW_OVERLAY" envDefault:"Flicker"`
	Loop     bool     `env:"ANIMVIEW_LOOP" envDefault:"true"`
	Speed    float32  `env:"ANIMVIEW_SPEED" envDefault:"0"`
	Actors   int      `env:"ANIMVIEW_ACTORS" envDefault:"1"`
	Workers  int      `env:"ANIMVIEW_WORKERS" envDefault:"0"`
	TickRate float64  `env:"ANIMVIEW_TICK_RATE" envDefault:"60"`
	Ticks    uint64   `env:"ANIMVIEW_TICKS" envDefault:"0"`
	Headless bool     `env:"ANIMVIEW_HEADLESS" envDefault:"false"`
	GPU      bool     `env:"ANIMVIEW_GPU" envDefault:"true"`
	Watch    bool     `env:"ANIMVIEW_WATCH" envDefault:"true"`
	Profile  bool     `env:"ANIMVIEW_PROFILE" envDefault:"false"`
	Quiet    bool     `env:"ANIMVIEW_QUIET" envDefault:"false"`
}

// loadConfig parses the environment and validates the result.
func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	var errs []error
	if _, err := c.backend(); err != nil {
		errs = append(errs, err)
	}
	if c.Model == "" {
		errs = append(errs, errors.New("ANIMVIEW_MODEL must not be empty"))
	}
	if len(c.Groups) == 0 {
		errs = append(errs, errors.New("ANIMVIEW_GROUPS must name at least one group"))
	}
	if c.Actors < 1 {
		errs = append(errs, fmt.Errorf("ANIMVIEW_ACTORS must be positive, got %d", c.Actors))
	}
	if c.Speed < 0 {
		errs = append(errs, fmt.Errorf("ANIMVIEW_SPEED must not be negative, got %v", c.Speed))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("ANIMVIEW_TICK_RATE must be positive, got %v", c.TickRate))
	}
	return errors.Join(errs...)
}

// backend maps ANIMVIEW_FORMAT to a loader backend.
func (c config) backend() (loader.LoaderBackendType, error) {
	switch c.Format {
	case "yaml", "yml":
		return loader.BackendTypeYAML, nil
	case "gltf", "glb":
		return loader.BackendTypeGLTF, nil
	}
	return 0, fmt.Errorf("ANIMVIEW_FORMAT must be yaml or gltf, got %q", c.Format)
}
