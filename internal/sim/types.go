package sim

import (
	"fmt"

	"github.com/san-kum/cursorsim/internal/motion"
)

// Metric observes committed frames during a run.
type Metric interface {
	Name() string
	Observe(f motion.Frame)
	Value() float64
	Reset()
}

type Config struct {
	Dt       float64 `yaml:"dt" toml:"dt" json:"dt"`
	Duration float64 `yaml:"duration" toml:"duration" json:"duration"`
}

func DefaultConfig() Config {
	return Config{
		Dt:       1.0 / 60,
		Duration: 3.0,
	}
}

// Steps is the number of frames a run will take.
func (c Config) Steps() int {
	return int(c.Duration/c.Dt + 0.5)
}

type Result struct {
	Frames  []motion.Frame
	Metrics map[string]float64
}

// Positions returns one axis of the recorded positions, 0 for x and 1 for y.
func (r *Result) Positions(axis int) []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		if axis == 0 {
			out[i] = f.Position.X
		} else {
			out[i] = f.Position.Y
		}
	}
	return out
}

// Speeds returns the velocity magnitude per frame.
func (r *Result) Speeds() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Velocity.Len()
	}
	return out
}

type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
