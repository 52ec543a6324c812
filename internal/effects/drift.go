package effects

import (
	"math"

	"github.com/san-kum/cursorsim/internal/motion"
)

const (
	DefaultDriftIntensity   = 0.01
	DefaultDriftFrequency   = 0.25
	DefaultDriftMaxVelocity = 0.5
)

// Pattern selects the shape traced by IdleDrift.
type Pattern int

const (
	PatternOrganic Pattern = iota
	PatternCircular
	PatternFigure8
)

var patternNames = []string{
	PatternOrganic:  "organic",
	PatternCircular: "circular",
	PatternFigure8:  "figure8",
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return "unknown"
	}
	return patternNames[p]
}

// ParsePattern resolves a pattern name; the empty name is organic.
func ParsePattern(name string) (Pattern, error) {
	if name == "" {
		return PatternOrganic, nil
	}
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return 0, &motion.ConfigError{Field: "pattern", Value: name, Err: motion.ErrUnknownPattern}
}

func PatternNames() []string {
	return append([]string(nil), patternNames...)
}

// offset returns the unit-amplitude drift at phase t.
func (p Pattern) offset(t float64) (motion.Vec2, error) {
	switch p {
	case PatternCircular:
		return motion.Vec2{X: math.Cos(t), Y: math.Sin(t)}, nil
	case PatternFigure8:
		return motion.Vec2{X: math.Sin(t), Y: 0.5 * math.Sin(2*t)}, nil
	case PatternOrganic:
		return motion.Vec2{
			X: 0.6*math.Sin(t) + 0.4*math.Sin(t*1.3),
			Y: 0.6*math.Cos(t*0.7) + 0.4*math.Cos(t*1.7),
		}, nil
	}
	return motion.Vec2{}, &motion.ConfigError{Field: "pattern", Value: p.String(), Err: motion.ErrUnknownPattern}
}

// IdleDrift adds micro-movement while the cursor is nearly still and fades
// out linearly as speed approaches MaxVelocity. MaxVelocity of zero is not
// guarded and yields a non-finite amplitude.
type IdleDrift struct {
	Intensity   float64
	Frequency   float64
	MaxVelocity float64
	Pattern     Pattern
}

func NewIdleDrift() *IdleDrift {
	return &IdleDrift{
		Intensity:   DefaultDriftIntensity,
		Frequency:   DefaultDriftFrequency,
		MaxVelocity: DefaultDriftMaxVelocity,
		Pattern:     PatternOrganic,
	}
}

func (d *IdleDrift) Name() string { return NameIdleDrift }

func (d *IdleDrift) Apply(s motion.State, dt float64, es *motion.EffectState) (motion.State, error) {
	t := (es.Time + dt) * d.Frequency * 2 * math.Pi
	off, err := d.Pattern.offset(t)
	if err != nil {
		return s, err
	}
	es.Time += dt

	speed := s.Velocity.Len()
	idleFactor := math.Max(0, 1-speed/d.MaxVelocity)
	amplitude := d.Intensity * idleFactor

	s.Position = s.Position.Add(off.Scale(amplitude))
	return s, nil
}

func (d *IdleDrift) Params() map[string]float64 {
	return map[string]float64{
		"intensity":   d.Intensity,
		"frequency":   d.Frequency,
		"maxVelocity": d.MaxVelocity,
	}
}

func (d *IdleDrift) SetParam(name string, value float64) error {
	switch name {
	case "intensity":
		d.Intensity = value
	case "frequency":
		d.Frequency = value
	case "maxVelocity":
		d.MaxVelocity = value
	default:
		return &motion.ConfigError{Field: NameIdleDrift, Value: name, Err: motion.ErrUnknownParam}
	}
	return nil
}
