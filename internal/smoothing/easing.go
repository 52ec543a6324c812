package smoothing

import (
	"math"

	"github.com/san-kum/cursorsim/internal/motion"
)

const DefaultEasingDuration = 0.3

type EasingConfig struct {
	Duration float64 `yaml:"duration" toml:"duration" json:"duration"`
	Easing   string  `yaml:"easing" toml:"easing" json:"easing"`
}

func DefaultEasingConfig() EasingConfig {
	return EasingConfig{Duration: DefaultEasingDuration, Easing: DefaultEasingFunc}
}

type easingPhase int

const (
	// phaseCapturing: no snapshot yet, the next update anchors at current.
	phaseCapturing easingPhase = iota
	// phaseAnimating: replaying from the snapshot; holds at the target once
	// elapsed reaches the duration.
	phaseAnimating
)

// Easing replays a fixed-duration eased interpolation from a captured start
// position toward the target. Any change of target, compared with exact
// equality, re-anchors the animation at the current position.
type Easing struct {
	Duration float64
	Func     string

	phase       easingPhase
	startPos    motion.Vec2
	startTarget motion.Vec2
	elapsed     float64
}

func NewEasing(cfg EasingConfig) *Easing {
	return &Easing{Duration: cfg.Duration, Func: cfg.Easing}
}

func (e *Easing) Name() string { return KindEasing.String() }

func (e *Easing) Update(current, target motion.Vec2, dt float64, velocity motion.Vec2) (motion.Vec2, motion.Vec2, error) {
	fn, err := EasingFunc(e.Func)
	if err != nil {
		return current, velocity, err
	}

	if e.phase == phaseCapturing || target != e.startTarget {
		e.startPos = current
		e.startTarget = target
		e.elapsed = 0
		e.phase = phaseAnimating
	}

	e.elapsed += dt

	t := 1.0
	if e.Duration > 0 {
		t = math.Min(e.elapsed/e.Duration, 1.0)
	}

	return e.startPos.Add(target.Sub(e.startPos).Scale(fn(t))), velocity, nil
}

// Elapsed returns the time since the current animation was anchored.
func (e *Easing) Elapsed() float64 { return e.elapsed }

// Animating reports whether the animation is still short of its duration.
func (e *Easing) Animating() bool {
	return e.phase == phaseAnimating && e.elapsed < e.Duration
}

// Checkpoint captures the animation so a failed frame can be rolled back.
func (e *Easing) Checkpoint() func() {
	phase, startPos, startTarget, elapsed := e.phase, e.startPos, e.startTarget, e.elapsed
	return func() {
		e.phase, e.startPos, e.startTarget, e.elapsed = phase, startPos, startTarget, elapsed
	}
}

// Reset drops the snapshot so the next update anchors afresh.
func (e *Easing) Reset() {
	e.phase = phaseCapturing
	e.startPos = motion.Vec2{}
	e.startTarget = motion.Vec2{}
	e.elapsed = 0
}

func (e *Easing) Params() map[string]float64 {
	return map[string]float64{"duration": e.Duration}
}

func (e *Easing) SetParam(name string, value float64) error {
	switch name {
	case "duration":
		e.Duration = value
	default:
		return &motion.ConfigError{Field: "easing", Value: name, Err: motion.ErrUnknownParam}
	}
	return nil
}
