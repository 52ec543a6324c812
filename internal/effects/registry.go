// Package effects provides the stateful post-processing stages that run after
// smoothing: hand tremor and idle drift.
//
// Effect values hold configuration only. Per-entry time lives in the
// motion.EffectState the controller hands to Apply, so one value can be
// registered any number of times.
package effects

import (
	"fmt"
	"sort"

	"github.com/san-kum/cursorsim/internal/motion"
)

const (
	NameHandShake = "handshake"
	NameIdleDrift = "drift"
)

// Spec describes one pipeline entry in configuration files.
type Spec struct {
	Name    string             `yaml:"name" toml:"name" json:"name"`
	Pattern string             `yaml:"pattern,omitempty" toml:"pattern,omitempty" json:"pattern,omitempty"`
	Params  map[string]float64 `yaml:"params,omitempty" toml:"params,omitempty" json:"params,omitempty"`
}

type configurableEffect interface {
	motion.Effect
	motion.Configurable
}

var factories = map[string]func() configurableEffect{
	NameHandShake: func() configurableEffect { return NewHandShake() },
	NameIdleDrift: func() configurableEffect { return NewIdleDrift() },
}

// New builds an effect from its defaults overridden by spec.
func New(spec Spec) (motion.Effect, error) {
	fn, ok := factories[spec.Name]
	if !ok {
		return nil, &motion.ConfigError{Field: "effect", Value: spec.Name, Err: motion.ErrUnknownEffect}
	}
	e := fn()

	if d, ok := e.(*IdleDrift); ok {
		p, err := ParsePattern(spec.Pattern)
		if err != nil {
			return nil, err
		}
		d.Pattern = p
	} else if spec.Pattern != "" {
		return nil, fmt.Errorf("effect %s: pattern is only valid for %s", spec.Name, NameIdleDrift)
	}

	keys := make([]string, 0, len(spec.Params))
	for k := range spec.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := e.SetParam(k, spec.Params[k]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
