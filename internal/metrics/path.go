package metrics

import "github.com/san-kum/cursorsim/internal/motion"

// PathLength sums the distance travelled by the smoothed position. Shake and
// drift both show up here as extra length over the same script.
type PathLength struct {
	name   string
	length float64
	last   motion.Vec2
	seen   bool
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(f motion.Frame) {
	if p.seen {
		p.length += f.Position.Sub(p.last).Len()
	}
	p.last = f.Position
	p.seen = true
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() {
	p.length = 0
	p.last = motion.Vec2{}
	p.seen = false
}

// Settling is the time of the last frame at which the cursor was farther
// than threshold from its target; it is the settling time for a step input.
// A run that never leaves the threshold reports zero; a run still outside
// the threshold on its last frame reports -1.
type Settling struct {
	name      string
	threshold float64
	lastOut   float64
	outside   bool
}

func NewSettling(threshold float64) *Settling {
	return &Settling{name: "settling_time", threshold: threshold}
}

func (s *Settling) Name() string { return s.name }

func (s *Settling) Observe(f motion.Frame) {
	d := f.Target.Sub(f.Position).Len()
	s.outside = !(d <= s.threshold)
	if s.outside {
		s.lastOut = f.Time
	}
}

func (s *Settling) Value() float64 {
	if s.outside {
		return -1
	}
	return s.lastOut
}

func (s *Settling) Reset() {
	s.lastOut = 0
	s.outside = false
}
