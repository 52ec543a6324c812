package smoothing

import (
	"math"

	"github.com/san-kum/cursorsim/internal/motion"
)

const DefaultLerpDamping = 10.0

type LerpConfig struct {
	Damping float64 `yaml:"damping" toml:"damping" json:"damping"`
}

func DefaultLerpConfig() LerpConfig {
	return LerpConfig{Damping: DefaultLerpDamping}
}

// Lerp is frame-rate independent exponential smoothing. It does not model
// velocity; the incoming velocity is returned unchanged.
type Lerp struct {
	Damping float64
}

func NewLerp(cfg LerpConfig) *Lerp {
	return &Lerp{Damping: cfg.Damping}
}

func (l *Lerp) Name() string { return KindLerp.String() }

func (l *Lerp) Update(current, target motion.Vec2, dt float64, velocity motion.Vec2) (motion.Vec2, motion.Vec2, error) {
	// 1-exp(-k*dt) stays in [0,1) for any dt, unlike k*dt.
	blend := 1.0 - math.Exp(-l.Damping*dt)
	return current.Add(target.Sub(current).Scale(blend)), velocity, nil
}

func (l *Lerp) Params() map[string]float64 {
	return map[string]float64{"damping": l.Damping}
}

func (l *Lerp) SetParam(name string, value float64) error {
	switch name {
	case "damping":
		l.Damping = value
	default:
		return &motion.ConfigError{Field: "lerp", Value: name, Err: motion.ErrUnknownParam}
	}
	return nil
}
