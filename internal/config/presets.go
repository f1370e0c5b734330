package config

import (
	"math"

	"github.com/san-kum/orbits/internal/gravity"
	"github.com/san-kum/orbits/internal/trail"
)

func sun() BodyConfig {
	return BodyConfig{Name: "Sun", Mass: 1.989e30, Color: "#ffff00", Primary: true}
}

// Presets are the built-in scenarios. Masses, positions and velocities
// are literal observed values (kg, m, m/s).
var Presets = map[string]*Config{
	"two_body": {
		Scenario:      "two_body",
		G:             gravity.DefaultG,
		Dt:            gravity.DefaultDt,
		Frames:        DefaultFrames,
		TrailCapacity: trail.DefaultCapacity,
		Extent:        2e11,
		Bodies: []BodyConfig{
			sun(),
			{Name: "Earth", Mass: 5.972e24, X: gravity.AU, VY: 2.978e4, Color: "#0000ff"},
		},
	},
	"inner_planets": {
		Scenario:      "inner_planets",
		G:             gravity.DefaultG,
		Dt:            gravity.DefaultDt,
		Frames:        DefaultFrames,
		TrailCapacity: trail.DefaultCapacity,
		Extent:        3e11,
		Bodies: []BodyConfig{
			sun(),
			{Name: "Mercury", Mass: 0.33e24, Y: 0.39 * gravity.AU, VX: -47360, Color: "#808080"},
			{
				Name: "Venus", Mass: 4.8673e24,
				X:     0.73 * gravity.AU * math.Cos(1.25*math.Pi),
				Y:     0.73 * gravity.AU * math.Sin(1.25*math.Pi),
				VX:    35020 * math.Cos(1.75*math.Pi),
				VY:    35020 * math.Sin(1.75*math.Pi),
				Color: "#ffa500",
			},
			{Name: "Earth", Mass: 5.972e24, X: gravity.AU, VY: 2.978e4, Color: "#0000ff"},
			{Name: "Mars", Mass: 0.64e24, Y: -1.5 * gravity.AU, VX: 24080, Color: "#ff0000"},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	// Copy so callers can tweak without mutating the preset table.
	cp := *cfg
	cp.Bodies = append([]BodyConfig(nil), cfg.Bodies...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
