package metrics

import "github.com/san-kum/cursorsim/internal/sim"

// Defaults returns the metric set recorded for every stored run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewLag(),
		NewPathLength(),
		NewMaxSpeed(),
		NewSettling(0.01),
		NewStability(10.0),
	}
}
