package smoothing

import "github.com/san-kum/cursorsim/internal/motion"

const (
	DefaultSpringStiffness = 150.0
	DefaultSpringDamping   = 10.0
)

type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness" toml:"stiffness" json:"stiffness"`
	Damping   float64 `yaml:"damping" toml:"damping" json:"damping"`
}

func DefaultSpringConfig() SpringConfig {
	return SpringConfig{Stiffness: DefaultSpringStiffness, Damping: DefaultSpringDamping}
}

// Spring is a unit-mass spring-damper integrated with semi-implicit Euler.
// Nothing is clamped: stiffness*dt*dt near 1 or above overshoots and can
// diverge.
type Spring struct {
	Stiffness float64
	Damping   float64
}

func NewSpring(cfg SpringConfig) *Spring {
	return &Spring{Stiffness: cfg.Stiffness, Damping: cfg.Damping}
}

func (s *Spring) Name() string { return KindSpring.String() }

func (s *Spring) Update(current, target motion.Vec2, dt float64, velocity motion.Vec2) (motion.Vec2, motion.Vec2, error) {
	force := motion.Vec2{
		X: -s.Stiffness*(current.X-target.X) - s.Damping*velocity.X,
		Y: -s.Stiffness*(current.Y-target.Y) - s.Damping*velocity.Y,
	}

	newVelocity := velocity.Add(force.Scale(dt))
	newPosition := current.Add(newVelocity.Scale(dt))

	return newPosition, newVelocity, nil
}

func (s *Spring) Params() map[string]float64 {
	return map[string]float64{
		"stiffness": s.Stiffness,
		"damping":   s.Damping,
	}
}

func (s *Spring) SetParam(name string, value float64) error {
	switch name {
	case "stiffness":
		s.Stiffness = value
	case "damping":
		s.Damping = value
	default:
		return &motion.ConfigError{Field: "spring", Value: name, Err: motion.ErrUnknownParam}
	}
	return nil
}
