package cursor

import "github.com/san-kum/cursorsim/internal/smoothing"

const DefaultStrategy = "lerp"

// Config selects the active strategy and carries every strategy's settings.
type Config struct {
	Strategy string                 `yaml:"strategy" toml:"strategy" json:"strategy"`
	Lerp     smoothing.LerpConfig   `yaml:"lerp" toml:"lerp" json:"lerp"`
	Spring   smoothing.SpringConfig `yaml:"spring" toml:"spring" json:"spring"`
	Easing   smoothing.EasingConfig `yaml:"easing" toml:"easing" json:"easing"`
}

func DefaultConfig() Config {
	return Config{
		Strategy: DefaultStrategy,
		Lerp:     smoothing.DefaultLerpConfig(),
		Spring:   smoothing.DefaultSpringConfig(),
		Easing:   smoothing.DefaultEasingConfig(),
	}
}
