package input

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/cursorsim/internal/motion"
)

// Source produces the raw target at simulated time t.
type Source interface {
	Target(t float64) motion.Vec2
}

// Step holds From until At, then jumps to To.
type Step struct {
	From, To motion.Vec2
	At       float64
}

func (s Step) Target(t float64) motion.Vec2 {
	if t < s.At {
		return s.From
	}
	return s.To
}

// Circle sweeps a circle of Radius around Center at Frequency revolutions
// per second.
type Circle struct {
	Center    motion.Vec2
	Radius    float64
	Frequency float64
}

func (c Circle) Target(t float64) motion.Vec2 {
	a := 2 * math.Pi * c.Frequency * t
	return c.Center.Add(motion.Vec2{X: math.Cos(a), Y: math.Sin(a)}.Scale(c.Radius))
}

// Waypoints holds each point for Hold seconds, cycling.
type Waypoints struct {
	Points []motion.Vec2
	Hold   float64
}

func (w Waypoints) Target(t float64) motion.Vec2 {
	if len(w.Points) == 0 {
		return motion.Vec2{}
	}
	if w.Hold <= 0 {
		return w.Points[0]
	}
	i := int(t/w.Hold) % len(w.Points)
	return w.Points[i]
}

// Jitter adds uniform noise of Amount to another source, emulating a noisy
// pointer.
type Jitter struct {
	Base   Source
	Amount float64
	rng    *rand.Rand
}

func NewJitter(base Source, amount float64, seed int64) *Jitter {
	return &Jitter{Base: base, Amount: amount, rng: rand.New(rand.NewSource(seed))}
}

func (j *Jitter) Target(t float64) motion.Vec2 {
	p := j.Base.Target(t)
	return p.Add(motion.Vec2{
		X: (j.rng.Float64()*2 - 1) * j.Amount,
		Y: (j.rng.Float64()*2 - 1) * j.Amount,
	})
}

var sources = map[string]func(seed int64) Source{
	"step": func(int64) Source {
		return Step{To: motion.Vec2{X: 0.6, Y: 0.4}, At: 0.5}
	},
	"circle": func(int64) Source {
		return Circle{Radius: 0.6, Frequency: 0.5}
	},
	"waypoints": func(int64) Source {
		return Waypoints{
			Points: []motion.Vec2{{X: -0.6, Y: 0.6}, {X: 0.6, Y: 0.6}, {X: 0.6, Y: -0.6}, {X: -0.6, Y: -0.6}},
			Hold:   0.75,
		}
	},
	"jitter": func(seed int64) Source {
		return NewJitter(Circle{Radius: 0.5, Frequency: 0.25}, 0.05, seed)
	},
	"still": func(int64) Source {
		return Step{}
	},
}

// NewSource builds a named scripted source. Seed only affects noisy sources.
func NewSource(name string, seed int64) (Source, error) {
	fn, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", name)
	}
	return fn(seed), nil
}

func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
