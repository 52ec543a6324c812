package config

import (
	"sort"

	"github.com/san-kum/cursorsim/internal/cursor"
	"github.com/san-kum/cursorsim/internal/effects"
	"github.com/san-kum/cursorsim/internal/smoothing"
)

func preset(strategy string, tune func(*cursor.Config), fx ...effects.Spec) *Config {
	cfg := DefaultConfig()
	cfg.Controller.Strategy = strategy
	if tune != nil {
		tune(&cfg.Controller)
	}
	cfg.Effects = fx
	return cfg
}

var Presets = map[string]*Config{
	"snappy": preset(smoothing.KindLerp.String(), func(c *cursor.Config) {
		c.Lerp.Damping = 25
	}),
	"floaty": preset(smoothing.KindSpring.String(), func(c *cursor.Config) {
		c.Spring.Stiffness = 60
		c.Spring.Damping = 6
	}),
	"eased": preset(smoothing.KindEasing.String(), func(c *cursor.Config) {
		c.Easing.Duration = 0.4
		c.Easing.Easing = "easeInOutCubic"
	}),
	"shaky": preset(smoothing.KindLerp.String(), nil,
		effects.Spec{Name: effects.NameHandShake, Params: map[string]float64{"intensity": 0.006}},
	),
	"dreamy": preset(smoothing.KindSpring.String(), func(c *cursor.Config) {
		c.Spring.Stiffness = 80
		c.Spring.Damping = 12
	},
		effects.Spec{Name: effects.NameIdleDrift, Pattern: "figure8"},
		effects.Spec{Name: effects.NameHandShake},
	),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
