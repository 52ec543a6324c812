// Package cursor implements the per-frame cursor controller: one smoothing
// strategy followed by an ordered pipeline of effects.
package cursor

import (
	"fmt"

	"github.com/san-kum/cursorsim/internal/motion"
	"github.com/san-kum/cursorsim/internal/smoothing"
)

type pipelineEntry struct {
	effect motion.Effect
	state  *motion.EffectState
}

// Controller owns the smoothed cursor state. It is not safe for concurrent
// use; SetTarget and Update are expected to run on the same frame loop.
type Controller struct {
	current  motion.Vec2
	target   motion.Vec2
	velocity motion.Vec2
	time     float64

	strategy   string
	strategies map[smoothing.Kind]motion.Strategy

	pipeline  []pipelineEntry
	observers []motion.Observer
}

func New(cfg Config) *Controller {
	return &Controller{
		strategy: cfg.Strategy,
		strategies: map[smoothing.Kind]motion.Strategy{
			smoothing.KindLerp:   smoothing.NewLerp(cfg.Lerp),
			smoothing.KindSpring: smoothing.NewSpring(cfg.Spring),
			smoothing.KindEasing: smoothing.NewEasing(cfg.Easing),
		},
		pipeline:  make([]pipelineEntry, 0),
		observers: make([]motion.Observer, 0),
	}
}

// SetTarget overwrites the raw target. Only the last value before the next
// Update matters.
func (c *Controller) SetTarget(x, y float64) {
	c.target = motion.Vec2{X: x, Y: y}
}

// AddEffect appends e to the pipeline with a fresh private state.
func (c *Controller) AddEffect(e motion.Effect) {
	c.pipeline = append(c.pipeline, pipelineEntry{effect: e, state: &motion.EffectState{}})
}

// ClearEffects drops every pipeline entry together with its state.
func (c *Controller) ClearEffects() {
	c.pipeline = c.pipeline[:0:0]
}

func (c *Controller) Effects() int { return len(c.pipeline) }

func (c *Controller) AddObserver(o motion.Observer) { c.observers = append(c.observers, o) }

// SetStrategy selects the active strategy by name. The name is resolved on
// the next Update, which fails if it is unknown.
func (c *Controller) SetStrategy(name string) { c.strategy = name }

func (c *Controller) StrategyName() string { return c.strategy }

// Strategy returns the instance behind a known strategy name, for tuning.
func (c *Controller) Strategy(name string) (motion.Strategy, error) {
	kind, err := smoothing.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return c.strategies[kind], nil
}

// Tune sets a parameter on the active strategy.
func (c *Controller) Tune(param string, value float64) error {
	strategy, err := c.Strategy(c.strategy)
	if err != nil {
		return err
	}
	t, ok := strategy.(motion.Configurable)
	if !ok {
		return fmt.Errorf("%s: strategy is not tunable", c.strategy)
	}
	return t.SetParam(param, value)
}

// Update advances one frame. On error the position, velocity, elapsed time
// and strategy state are left as they were.
func (c *Controller) Update(dt float64) error {
	strategy, err := c.Strategy(c.strategy)
	if err != nil {
		return err
	}

	restore := func() {}
	if cp, ok := strategy.(motion.Checkpointer); ok {
		restore = cp.Checkpoint()
	}

	pos, vel, err := strategy.Update(c.current, c.target, dt, c.velocity)
	if err != nil {
		restore()
		return fmt.Errorf("%s update: %w", c.strategy, err)
	}

	s := motion.State{Position: pos, Velocity: vel, Target: c.target}
	for i, entry := range c.pipeline {
		s, err = entry.effect.Apply(s, dt, entry.state)
		if err != nil {
			restore()
			if n, ok := entry.effect.(motion.Named); ok {
				return fmt.Errorf("effect %d (%s): %w", i, n.Name(), err)
			}
			return fmt.Errorf("effect %d: %w", i, err)
		}
	}

	c.current = s.Position
	c.velocity = s.Velocity
	c.time += dt

	frame := motion.Frame{Time: c.time, Position: c.current, Velocity: c.velocity, Target: c.target}
	for _, o := range c.observers {
		o.OnFrame(frame)
	}
	return nil
}

// Position returns a copy of the smoothed position.
func (c *Controller) Position() motion.Vec2 { return c.current }

func (c *Controller) Velocity() motion.Vec2 { return c.velocity }

func (c *Controller) Target() motion.Vec2 { return c.target }

// Time is the sum of every successful Update's dt.
func (c *Controller) Time() float64 { return c.time }

// Reset zeroes position, velocity, target and time, re-anchors the easing
// strategy and gives every pipeline entry a fresh state. The pipeline itself
// and the observers are kept.
func (c *Controller) Reset() {
	c.current = motion.Vec2{}
	c.target = motion.Vec2{}
	c.velocity = motion.Vec2{}
	c.time = 0
	if e, ok := c.strategies[smoothing.KindEasing].(*smoothing.Easing); ok {
		e.Reset()
	}
	for i := range c.pipeline {
		c.pipeline[i].state = &motion.EffectState{}
	}
}
