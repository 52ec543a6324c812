package motion

import "math"

// Vec2 is a point or direction in normalized device coordinates.
type Vec2 struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// State is the working value threaded through the effect pipeline.
// Effects return a full replacement; Target passes through by convention.
type State struct {
	Position Vec2
	Velocity Vec2
	Target   Vec2
}

// EffectState is private to a single pipeline entry and survives across frames.
type EffectState struct {
	Time float64
}

// Frame is the committed result of one controller update.
type Frame struct {
	Time     float64 `json:"time"`
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"`
	Target   Vec2    `json:"target"`
}

// Strategy smooths a raw target into a new position and velocity.
type Strategy interface {
	Update(current, target Vec2, dt float64, velocity Vec2) (Vec2, Vec2, error)
}

// Checkpointer is implemented by strategies that keep state between
// updates. Checkpoint returns a func that restores the state as it was.
type Checkpointer interface {
	Checkpoint() (restore func())
}

// Effect transforms the working state after the strategy has run.
type Effect interface {
	Apply(s State, dt float64, es *EffectState) (State, error)
}

// Named is implemented by strategies and effects that report a stable name.
type Named interface {
	Name() string
}

type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

type Observer interface {
	OnFrame(f Frame)
}
