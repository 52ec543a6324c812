package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cursorsim/internal/effects"
	"github.com/san-kum/cursorsim/internal/motion"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Controller.Strategy != "lerp" {
		t.Errorf("expected strategy lerp, got %s", cfg.Controller.Strategy)
	}
	if cfg.Run.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Run.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("floaty")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Controller.Spring.Stiffness != 60 {
		t.Errorf("expected stiffness 60, got %f", cfg.Controller.Spring.Stiffness)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("shaky")
	cfg.Effects[0].Params["intensity"] = 1
	cfg.Effects = nil

	again := GetPreset("shaky")
	if len(again.Effects) != 1 {
		t.Fatalf("preset effects mutated: %v", again.Effects)
	}
	if again.Effects[0].Params["intensity"] != 0.006 {
		t.Errorf("preset params mutated: %v", again.Effects[0].Params)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 5 {
		t.Errorf("expected 5 presets, got %d", len(presets))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		is     error
	}{
		{"unknown strategy", func(c *Config) { c.Controller.Strategy = "bezier" }, motion.ErrUnknownStrategy},
		{"unknown easing", func(c *Config) { c.Controller.Easing.Easing = "bounce" }, motion.ErrUnknownEasing},
		{"unknown effect", func(c *Config) { c.Effects = append(c.Effects, effectSpec("wobble")) }, motion.ErrUnknownEffect},
		{"bad pattern", func(c *Config) {
			s := effectSpec("drift")
			s.Pattern = "spiral"
			c.Effects = append(c.Effects, s)
		}, motion.ErrUnknownPattern},
		{"bad param", func(c *Config) {
			s := effectSpec("handshake")
			s.Params = map[string]float64{"volume": 1}
			c.Effects = append(c.Effects, s)
		}, motion.ErrUnknownParam},
		{"zero dt", func(c *Config) { c.Run.Dt = 0 }, nil},
		{"negative duration", func(c *Config) { c.Run.Duration = -1 }, nil},
		{"unknown source", func(c *Config) { c.Run.Source = "joystick" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "expected %v in %v", tt.is, err)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	cfg := GetPreset("dreamy")
	ctrl, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, "spring", ctrl.StrategyName())
	assert.Equal(t, 2, ctrl.Effects())
}

func TestBuild_UnknownStrategy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controller.Strategy = "teleport"

	_, err := Build(cfg)
	assert.ErrorIs(t, err, motion.ErrUnknownStrategy)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.yaml")
	data := `
controller:
  strategy: spring
  spring:
    stiffness: 200
effects:
  - name: drift
    pattern: circular
    params:
      intensity: 0.02
run:
  source: circle
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "spring", cfg.Controller.Strategy)
	assert.Equal(t, 200.0, cfg.Controller.Spring.Stiffness)
	assert.Equal(t, 10.0, cfg.Controller.Spring.Damping, "unset fields keep defaults")
	require.Len(t, cfg.Effects, 1)
	assert.Equal(t, "circular", cfg.Effects[0].Pattern)
	assert.Equal(t, 0.02, cfg.Effects[0].Params["intensity"])
	assert.Equal(t, "circle", cfg.Run.Source)
	assert.Equal(t, DefaultDt, cfg.Run.Dt)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.toml")
	data := `
[controller]
strategy = "easing"

[controller.easing]
duration = 0.5
easing = "easeOutQuad"

[[effects]]
name = "handshake"

[run]
duration = 1.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "easing", cfg.Controller.Strategy)
	assert.Equal(t, 0.5, cfg.Controller.Easing.Duration)
	assert.Equal(t, "easeOutQuad", cfg.Controller.Easing.Easing)
	require.Len(t, cfg.Effects, 1)
	assert.Equal(t, "handshake", cfg.Effects[0].Name)
	assert.Equal(t, 1.5, cfg.Run.Duration)
	assert.Equal(t, DefaultSource, cfg.Run.Source)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cursor"+ext)
			want := GetPreset("dreamy")

			require.NoError(t, Save(path, want))
			got, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, want.Controller, got.Controller)
			assert.Equal(t, want.Run, got.Run)
			assert.Equal(t, want.EffectNames(), got.EffectNames())
		})
	}
}

func effectSpec(name string) effects.Spec {
	return effects.Spec{Name: name}
}
