package effects

import (
	"math"

	"github.com/san-kum/cursorsim/internal/motion"
)

const (
	DefaultShakeIntensity     = 0.003
	DefaultShakeFrequency     = 8.0
	DefaultShakeVelocityScale = 0.5
	DefaultShakeMinVelocity   = 0.1
)

// HandShake adds a tremor whose amplitude grows with cursor speed.
type HandShake struct {
	Intensity     float64
	Frequency     float64
	VelocityScale float64
	MinVelocity   float64
}

func NewHandShake() *HandShake {
	return &HandShake{
		Intensity:     DefaultShakeIntensity,
		Frequency:     DefaultShakeFrequency,
		VelocityScale: DefaultShakeVelocityScale,
		MinVelocity:   DefaultShakeMinVelocity,
	}
}

func (h *HandShake) Name() string { return NameHandShake }

func (h *HandShake) Apply(s motion.State, dt float64, es *motion.EffectState) (motion.State, error) {
	es.Time += dt

	speed := s.Velocity.Len()
	velocityFactor := math.Max(0, (speed-h.MinVelocity)*h.VelocityScale)
	amplitude := h.Intensity * (1 + velocityFactor)

	// Different frequency ratios per axis keep x and y decorrelated.
	t := es.Time * h.Frequency * 2 * math.Pi
	s.Position.X += amplitude * math.Sin(t) * math.Cos(t*0.75)
	s.Position.Y += amplitude * math.Cos(t) * math.Sin(t*1.25)

	return s, nil
}

func (h *HandShake) Params() map[string]float64 {
	return map[string]float64{
		"intensity":     h.Intensity,
		"frequency":     h.Frequency,
		"velocityScale": h.VelocityScale,
		"minVelocity":   h.MinVelocity,
	}
}

func (h *HandShake) SetParam(name string, value float64) error {
	switch name {
	case "intensity":
		h.Intensity = value
	case "frequency":
		h.Frequency = value
	case "velocityScale":
		h.VelocityScale = value
	case "minVelocity":
		h.MinVelocity = value
	default:
		return &motion.ConfigError{Field: NameHandShake, Value: name, Err: motion.ErrUnknownParam}
	}
	return nil
}
