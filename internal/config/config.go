// Package config loads and saves simulation configuration: the plane
// design, launcher tuning and run parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/t-aulia/glidesim/internal/aero"
	"github.com/t-aulia/glidesim/internal/flight"
	"github.com/t-aulia/glidesim/internal/launch"
)

const (
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 120.0
	DefaultSeed     = 42
	DefaultPull     = 1.0
)

// Plane is one airplane design as supplied by the building system:
// coefficients, mass and balance are trusted inputs here.
type Plane struct {
	Name       string  `yaml:"name"`
	Mass       float64 `yaml:"mass"`
	Inertia    float64 `yaml:"inertia"`
	Lift       float64 `yaml:"lift"`
	Drag       float64 `yaml:"drag"`
	Unbalanced bool    `yaml:"unbalanced"`
}

// Coefficients extracts the aerodynamic coefficients of the design.
func (p Plane) Coefficients() aero.Coefficients {
	return aero.Coefficients{Lift: p.Lift, Drag: p.Drag}
}

// BodyConfig extracts the rigid-body parameters of the design.
func (p Plane) BodyConfig() flight.Config {
	return flight.Config{Mass: p.Mass, Inertia: p.Inertia, Unbalanced: p.Unbalanced}
}

// Config is the full simulation setup.
type Config struct {
	Plane    Plane         `yaml:"plane"`
	Launcher launch.Config `yaml:"launcher"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Seed     int64         `yaml:"seed"`
	Pull     float64       `yaml:"pull"`
}

// DefaultConfig returns the trainer design on the stock launcher.
func DefaultConfig() *Config {
	return &Config{
		Plane:    Presets["trainer"],
		Launcher: launch.DefaultConfig(),
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Seed:     DefaultSeed,
		Pull:     DefaultPull,
	}
}

// Load reads a config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to a yaml file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the simulator cannot run. Plane
// coefficients themselves are trusted inputs and only sanity-checked.
func (c *Config) Validate() error {
	if c.Plane.Mass <= 0 {
		return fmt.Errorf("plane mass must be positive, got %g", c.Plane.Mass)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.Launcher.MaxPullDistance <= 0 {
		return fmt.Errorf("max pull distance must be positive, got %g", c.Launcher.MaxPullDistance)
	}
	if len(c.Launcher.Curve.Points) > 0 {
		if err := c.Launcher.Curve.Validate(); err != nil {
			return err
		}
	}
	return nil
}
