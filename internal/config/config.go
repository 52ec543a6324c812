// Package config loads cursorsim configuration from YAML or TOML files and
// builds controllers from it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/cursorsim/internal/cursor"
	"github.com/san-kum/cursorsim/internal/effects"
	"github.com/san-kum/cursorsim/internal/input"
	"github.com/san-kum/cursorsim/internal/sim"
	"github.com/san-kum/cursorsim/internal/smoothing"
)

const (
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 3.0
	DefaultSource   = "step"
)

type Config struct {
	Controller cursor.Config  `yaml:"controller" toml:"controller"`
	Effects    []effects.Spec `yaml:"effects" toml:"effects"`
	Run        RunConfig      `yaml:"run" toml:"run"`
}

// RunConfig drives offline replays; the live view ignores it.
type RunConfig struct {
	Dt       float64 `yaml:"dt" toml:"dt"`
	Duration float64 `yaml:"duration" toml:"duration"`
	Seed     int64   `yaml:"seed" toml:"seed"`
	Source   string  `yaml:"source" toml:"source"`
}

func DefaultConfig() *Config {
	return &Config{
		Controller: cursor.DefaultConfig(),
		Run: RunConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
			Source:   DefaultSource,
		},
	}
}

// Load decodes path onto DefaultConfig. Files ending in .toml are TOML,
// everything else is YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return filepath.Ext(path) == ".toml"
}

// Validate reports every problem in c, joined.
func (c *Config) Validate() error {
	var errs []error

	if _, err := smoothing.ParseKind(c.Controller.Strategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := smoothing.EasingFunc(c.Controller.Easing.Easing); err != nil {
		errs = append(errs, err)
	}
	for i, spec := range c.Effects {
		if _, err := effects.New(spec); err != nil {
			errs = append(errs, fmt.Errorf("effects[%d]: %w", i, err))
		}
	}
	if c.Run.Dt <= 0 {
		errs = append(errs, fmt.Errorf("run.dt must be positive, got %g", c.Run.Dt))
	}
	if c.Run.Duration <= 0 {
		errs = append(errs, fmt.Errorf("run.duration must be positive, got %g", c.Run.Duration))
	}
	if _, err := input.NewSource(c.Run.Source, c.Run.Seed); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Build returns a controller with the configured strategy and effect pipeline.
func Build(c *Config) (*cursor.Controller, error) {
	if _, err := smoothing.ParseKind(c.Controller.Strategy); err != nil {
		return nil, err
	}

	ctrl := cursor.New(c.Controller)
	for i, spec := range c.Effects {
		e, err := effects.New(spec)
		if err != nil {
			return nil, fmt.Errorf("effects[%d]: %w", i, err)
		}
		ctrl.AddEffect(e)
	}
	return ctrl, nil
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Run.Dt, Duration: c.Run.Duration}
}

func (c *Config) Source() (input.Source, error) {
	return input.NewSource(c.Run.Source, c.Run.Seed)
}

// EffectNames lists the pipeline entries in order, for run metadata.
func (c *Config) EffectNames() []string {
	names := make([]string, len(c.Effects))
	for i, spec := range c.Effects {
		names[i] = spec.Name
		if spec.Pattern != "" {
			names[i] += ":" + spec.Pattern
		}
	}
	return names
}

// Clone copies c deeply enough that the copy's effect list can be edited.
func (c *Config) Clone() *Config {
	out := *c
	out.Effects = make([]effects.Spec, len(c.Effects))
	for i, spec := range c.Effects {
		out.Effects[i] = spec
		if spec.Params != nil {
			out.Effects[i].Params = make(map[string]float64, len(spec.Params))
			for k, v := range spec.Params {
				out.Effects[i].Params[k] = v
			}
		}
	}
	return &out
}
