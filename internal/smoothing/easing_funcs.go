package smoothing

import (
	"math"
	"sort"

	"github.com/san-kum/cursorsim/internal/motion"
)

const DefaultEasingFunc = "easeOutCubic"

// EaseFunc maps normalized time in [0,1] to eased progress.
type EaseFunc func(t float64) float64

var easingFuncs = map[string]EaseFunc{
	"easeOutCubic": func(t float64) float64 { return 1 - math.Pow(1-t, 3) },
	"easeOutQuad":  func(t float64) float64 { return 1 - (1-t)*(1-t) },
	"easeInOutCubic": func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	},
}

// EasingFunc looks up an easing function by name.
func EasingFunc(name string) (EaseFunc, error) {
	fn, ok := easingFuncs[name]
	if !ok {
		return nil, &motion.ConfigError{Field: "easing", Value: name, Err: motion.ErrUnknownEasing}
	}
	return fn, nil
}

func EasingNames() []string {
	names := make([]string, 0, len(easingFuncs))
	for name := range easingFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
