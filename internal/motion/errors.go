package motion

import (
	"errors"
	"fmt"
)

// Configuration errors. They are fatal for the call that hits them and are
// never replaced by a default.
var (
	// ErrUnknownStrategy indicates a strategy name outside the known set.
	ErrUnknownStrategy = errors.New("motion: unknown smoothing strategy")

	// ErrUnknownEasing indicates an easing function name outside the known set.
	ErrUnknownEasing = errors.New("motion: unknown easing function")

	// ErrUnknownEffect indicates an effect name with no registered factory.
	ErrUnknownEffect = errors.New("motion: unknown effect")

	// ErrUnknownPattern indicates an idle-drift pattern outside the known set.
	ErrUnknownPattern = errors.New("motion: unknown drift pattern")

	// ErrUnknownParam indicates a tuning parameter the target does not expose.
	ErrUnknownParam = errors.New("motion: unknown parameter")
)

// ConfigError wraps a configuration error with the offending field and value.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
