// Package sim replays a scripted target source through a cursor controller
// at a fixed frame step.
package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/cursorsim/internal/cursor"
	"github.com/san-kum/cursorsim/internal/input"
	"github.com/san-kum/cursorsim/internal/motion"
)

type Simulator struct {
	ctrl    *cursor.Controller
	source  input.Source
	metrics []Metric
	log     *slog.Logger
}

func New(ctrl *cursor.Controller, source input.Source) *Simulator {
	return &Simulator{
		ctrl:    ctrl,
		source:  source,
		metrics: make([]Metric, 0),
		log:     slog.Default(),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Simulator) SetLogger(l *slog.Logger) { s.log = l }

// Run drives the controller for cfg.Duration seconds. The target for each
// frame is sampled at the frame's start time; the recorded frame carries the
// end time.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		Frames:  make([]motion.Frame, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.log.Debug("replay started", "strategy", s.ctrl.StrategyName(), "effects", s.ctrl.Effects(), "steps", steps, "dt", cfg.Dt)

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		target := s.source.Target(t)
		s.ctrl.SetTarget(target.X, target.Y)
		if err := s.ctrl.Update(cfg.Dt); err != nil {
			return result, &StepError{Step: i, Time: t, Wrapped: err}
		}
		t += cfg.Dt

		f := motion.Frame{
			Time:     t,
			Position: s.ctrl.Position(),
			Velocity: s.ctrl.Velocity(),
			Target:   s.ctrl.Target(),
		}
		for _, m := range s.metrics {
			m.Observe(f)
		}
		result.Frames = append(result.Frames, f)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug("replay finished", "frames", len(result.Frames))
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
