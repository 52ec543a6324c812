// Package automation scripts replays: single runs with parameter overrides,
// YAML scenarios of several runs, and one-parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cursorsim/internal/config"
	"github.com/san-kum/cursorsim/internal/effects"
	"github.com/san-kum/cursorsim/internal/metrics"
	"github.com/san-kum/cursorsim/internal/sim"
)

// Replay builds cfg, applies params to the active strategy in name order and
// runs the configured source through it with the default metrics.
func Replay(ctx context.Context, cfg *config.Config, params map[string]float64) (*sim.Result, error) {
	ctrl, err := config.Build(cfg)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := ctrl.Tune(k, params[k]); err != nil {
			return nil, err
		}
	}

	src, err := cfg.Source()
	if err != nil {
		return nil, err
	}

	s := sim.New(ctrl, src)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	return s.Run(ctx, cfg.SimConfig())
}

// Scenario defines a scripted sequence of replays
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides the base configuration for one replay. Zero fields
// keep the base value.
type ScenarioStep struct {
	Preset   string             `yaml:"preset"`
	Strategy string             `yaml:"strategy"`
	Source   string             `yaml:"source"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Seed     int64              `yaml:"seed"`
	Effects  []effects.Spec     `yaml:"effects"`
	Params   map[string]float64 `yaml:"params"`
	SaveAs   string             `yaml:"save_as"`
}

type StepResult struct {
	Step   int
	Label  string
	Config *config.Config
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Resolve merges the step onto base, or onto its preset when one is named.
func (st ScenarioStep) Resolve(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if st.Preset != "" {
		p := config.GetPreset(st.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", st.Preset)
		}
		p.Run = cfg.Run
		cfg = p
	}

	if st.Strategy != "" {
		cfg.Controller.Strategy = st.Strategy
	}
	if st.Source != "" {
		cfg.Run.Source = st.Source
	}
	if st.Duration != 0 {
		cfg.Run.Duration = st.Duration
	}
	if st.Dt != 0 {
		cfg.Run.Dt = st.Dt
	}
	if st.Seed != 0 {
		cfg.Run.Seed = st.Seed
	}
	if st.Effects != nil {
		cfg.Effects = st.Effects
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		label := step.SaveAs
		if label == "" {
			label = cfg.Controller.Strategy
		}
		slog.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "label", label)

		result, err := Replay(ctx, cfg, step.Params)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: i + 1, Label: label, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep replays the base configuration across a range of one
// strategy parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

func RunSweep(ctx context.Context, sweep ParameterSweep, base *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		result, err := Replay(ctx, base, map[string]float64{sweep.ParamName: paramVal})
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{ParamValue: paramVal, Metrics: result.Metrics})
		slog.Debug("sweep step", "param", sweep.ParamName, "value", paramVal, "step", i+1, "of", sweep.NumSteps)
	}

	return results, nil
}
