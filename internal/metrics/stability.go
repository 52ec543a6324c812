package metrics

import (
	"math"

	"github.com/san-kum/cursorsim/internal/motion"
)

// Stability is the fraction of frames whose position is finite and within
// threshold on both axes.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f motion.Frame) {
	s.samples++
	p := f.Position
	if !p.IsFinite() || math.Abs(p.X) > s.threshold || math.Abs(p.Y) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
