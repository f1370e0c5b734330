// Package config holds scenario configuration: gravitational constant,
// time step, frame budget, trail capacity, plot extent and the fixed
// body set. Scenarios come from built-in presets or yaml files.
package config

import (
	"fmt"
	"os"

	"github.com/san-kum/orbits/internal/gravity"
	"github.com/san-kum/orbits/internal/trail"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames = 1000
	DefaultExtent = 3e11
)

type Config struct {
	Scenario      string       `yaml:"scenario"`
	G             float64      `yaml:"g"`
	Dt            float64      `yaml:"dt"`
	Frames        int          `yaml:"frames"`
	TrailCapacity int          `yaml:"trail_capacity"`
	Extent        float64      `yaml:"extent"`
	Bodies        []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name    string  `yaml:"name"`
	Mass    float64 `yaml:"mass"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	VX      float64 `yaml:"vx"`
	VY      float64 `yaml:"vy"`
	Color   string  `yaml:"color"`
	Primary bool    `yaml:"primary"`
}

func DefaultConfig() *Config {
	return GetPreset("inner_planets")
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		G:             gravity.DefaultG,
		Dt:            gravity.DefaultDt,
		Frames:        DefaultFrames,
		TrailCapacity: trail.DefaultCapacity,
		Extent:        DefaultExtent,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("scenario %q has no bodies", c.Scenario)
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("body %d (%s): mass must be positive, got %v", i, b.Name, b.Mass)
		}
	}
	return nil
}

// System materializes the configured body set. Each call builds fresh
// bodies, so systems from the same config never alias state.
func (c *Config) System() *gravity.System {
	bodies := make([]*gravity.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = &gravity.Body{
			Name:    b.Name,
			Color:   b.Color,
			Mass:    b.Mass,
			Pos:     r2.Vec{X: b.X, Y: b.Y},
			Vel:     r2.Vec{X: b.VX, Y: b.VY},
			Primary: b.Primary,
		}
	}
	return gravity.NewSystem(c.G, bodies)
}
