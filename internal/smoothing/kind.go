// Package smoothing implements the interchangeable strategies that turn a raw
// cursor target into a smoothed position and velocity.
package smoothing

import (
	"github.com/san-kum/cursorsim/internal/motion"
)

// Kind is the closed set of smoothing strategies.
type Kind int

const (
	KindLerp Kind = iota
	KindSpring
	KindEasing
)

var kindNames = map[Kind]string{
	KindLerp:   "lerp",
	KindSpring: "spring",
	KindEasing: "easing",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind resolves a configured strategy name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, &motion.ConfigError{Field: "strategy", Value: name, Err: motion.ErrUnknownStrategy}
}

// Kinds lists every strategy in declaration order.
func Kinds() []Kind {
	return []Kind{KindLerp, KindSpring, KindEasing}
}

// Names lists every strategy name in declaration order.
func Names() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}
