package metrics

import "github.com/san-kum/cursorsim/internal/motion"

// Lag is the mean distance between the smoothed position and the target.
type Lag struct {
	name    string
	sum     float64
	samples int
}

func NewLag() *Lag {
	return &Lag{name: "lag"}
}

func (l *Lag) Name() string { return l.name }

func (l *Lag) Observe(f motion.Frame) {
	l.sum += f.Target.Sub(f.Position).Len()
	l.samples++
}

func (l *Lag) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return l.sum / float64(l.samples)
}

func (l *Lag) Reset() {
	l.sum = 0
	l.samples = 0
}

// MaxSpeed is the largest velocity magnitude seen. Strategies that do not
// model velocity report zero.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(f motion.Frame) {
	if s := f.Velocity.Len(); s > m.max {
		m.max = s
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
