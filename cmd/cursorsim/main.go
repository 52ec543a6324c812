package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cursorsim/internal/analysis"
	"github.com/san-kum/cursorsim/internal/automation"
	"github.com/san-kum/cursorsim/internal/config"
	"github.com/san-kum/cursorsim/internal/effects"
	"github.com/san-kum/cursorsim/internal/export"
	"github.com/san-kum/cursorsim/internal/logging"
	"github.com/san-kum/cursorsim/internal/metrics"
	"github.com/san-kum/cursorsim/internal/motion"
	"github.com/san-kum/cursorsim/internal/optim"
	"github.com/san-kum/cursorsim/internal/sim"
	"github.com/san-kum/cursorsim/internal/smoothing"
	"github.com/san-kum/cursorsim/internal/storage"
	"github.com/san-kum/cursorsim/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	logFormat  string
	logFile    string
	configFile string
	preset     string
	strategy   string
	dt         float64
	duration   float64
	source     string
	seed       int64
	effectArgs []string
	svgOut     string
	metricName string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	gridSize   int
	saveRuns   bool
	themeName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cursorsim",
		Short:         "smoothed cursor motion lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cursorsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "replay a scripted source through the controller and save the run",
		Args:  cobra.NoArgs,
		RunE:  runReplay,
	}
	addControllerFlags(runCmd)
	addReplayFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with all frames as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [strategy...]",
		Short: "replay the same source through several strategies",
		RunE:  compareStrategies,
	}
	addControllerFlags(compareCmd)
	addReplayFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive the controller with the mouse in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addControllerFlags(liveCmd)
	addControllerFlags(rootCmd)
	for _, c := range []*cobra.Command{liveCmd, rootCmd} {
		c.Flags().StringVar(&themeName, "theme", viz.Themes[0].Name,
			"color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run's cursor and target paths as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "tremor spectrum of position minus target",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search the active strategy's parameters for the lowest metric",
		Args:  cobra.NoArgs,
		RunE:  tuneStrategy,
	}
	addControllerFlags(tuneCmd)
	addReplayFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&metricName, "metric", "lag", "metric to minimize")
	tuneCmd.Flags().IntVar(&gridSize, "grid", 6, "values per parameter")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "replay across a range of one strategy parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepParameter,
	}
	addControllerFlags(sweepCmd)
	addReplayFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 30, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario of replays",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addControllerFlags(scenarioCmd)
	addReplayFlags(scenarioCmd)
	scenarioCmd.Flags().BoolVar(&saveRuns, "save", false, "save every step as a run")

	saveConfigCmd := &cobra.Command{
		Use:   "save-config [file]",
		Short: "write the resolved configuration (yaml or toml by extension)",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}
	addControllerFlags(saveConfigCmd)
	addReplayFlags(saveConfigCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, analyzeCmd,
		compareCmd, tuneCmd, sweepCmd, scenarioCmd, presetsCmd, saveConfigCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addControllerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&strategy, "strategy", smoothing.KindLerp.String(),
		"smoothing strategy ("+strings.Join(smoothing.Names(), ", ")+")")
	cmd.Flags().StringSliceVar(&effectArgs, "effect", nil,
		"append an effect, name or name:pattern ("+strings.Join(effects.Names(), ", ")+")")
}

func addReplayFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&source, "source", config.DefaultSource, "scripted target source")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

func setupLogging(cmd *cobra.Command) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	case cmd.Name() == "live" || cmd.Name() == "cursorsim":
		// The live view owns the terminal.
		out = io.Discard
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Format = format
	cfg.Output = out
	logging.Setup(cfg)
	return nil
}

// loadConfig resolves the configuration; a config file wins over a preset,
// and flags set on the command line win over both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Controller.Strategy = strategy
	}
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Changed("source") {
		cfg.Run.Source = source
	}
	// An unset seed falls back to the time-based flag default.
	if f := flags.Lookup("seed"); f != nil && (f.Changed || cfg.Run.Seed == 0) {
		cfg.Run.Seed = seed
	}
	for _, arg := range effectArgs {
		cfg.Effects = append(cfg.Effects, parseEffectArg(arg))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseEffectArg(arg string) effects.Spec {
	name, pattern, _ := strings.Cut(arg, ":")
	return effects.Spec{Name: name, Pattern: pattern}
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("replaying %s through %s...\n", cfg.Run.Source, cfg.Controller.Strategy)
	start := time.Now()

	result, err := automation.Replay(ctx, cfg, nil)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := saveRun(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Defaults() {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	return nil
}

func saveRun(cfg *config.Config, result *sim.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(storage.RunMetadata{
		Strategy: cfg.Controller.Strategy,
		Source:   cfg.Run.Source,
		Seed:     cfg.Run.Seed,
		Dt:       cfg.Run.Dt,
		Duration: cfg.Run.Duration,
		Effects:  cfg.EffectNames(),
	}, result)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTRATEGY\tSOURCE\tTIME\tDURATION\tDT\tEFFECTS")

	for _, run := range runs {
		fx := strings.Join(run.Effects, ",")
		if fx == "" {
			fx = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Strategy,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			fx,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("strategy: %s\n", meta.Strategy)
	fmt.Printf("samples: %d\n\n", len(frames))

	result := &sim.Result{Frames: frames}
	lag := make([]float64, len(frames))
	for i, f := range frames {
		lag[i] = f.Target.Sub(f.Position).Len()
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"x position", result.Positions(0)},
		{"y position", result.Positions(1)},
		{"speed", result.Speeds()},
		{"distance to target", lag},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	frames, err := storage.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(frames, 600, 600)
	if svg == "" {
		return fmt.Errorf("run %s has fewer than 2 frames", args[0])
	}
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	dt := analysis.SampleInterval(frames)
	if dt <= 0 {
		dt = meta.Dt
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d (dt=%.4fs)\n\n", len(frames), dt)

	for axis, label := range []string{"x", "y"} {
		spec := analysis.NewSpectrum(analysis.Residual(frames, axis), dt)
		if len(spec.Amplitudes) < 2 {
			return fmt.Errorf("not enough samples to analyze")
		}
		freq, amp := spec.Peak()

		graph := asciigraph.Plot(spec.Amplitudes[1:],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s residual spectrum, peak %.2f Hz (amplitude %.5f)", label, freq, amp)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func tuneStrategy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctrl, err := config.Build(cfg)
	if err != nil {
		return err
	}
	strat, err := ctrl.Strategy(cfg.Controller.Strategy)
	if err != nil {
		return err
	}
	tunable, ok := strat.(motion.Configurable)
	if !ok {
		return fmt.Errorf("%s has no tunable parameters", cfg.Controller.Strategy)
	}

	// Each parameter is searched from a tenth to three times its current value.
	var names []string
	var ranges [][]float64
	for name, v := range tunable.Params() {
		names = append(names, name)
		ranges = append(ranges, optim.Linspace(v*0.1, v*3, gridSize))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eval := func(ctx context.Context, params map[string]float64) (map[string]float64, error) {
		result, err := automation.Replay(ctx, cfg, params)
		if err != nil {
			return nil, err
		}
		return result.Metrics, nil
	}

	fmt.Printf("tuning %s on %s for minimum %s...\n", cfg.Controller.Strategy, cfg.Run.Source, metricName)
	best, value, err := optim.NewGridSearch(names, ranges).Search(ctx, eval, metricName)
	if err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6f\n", metricName, value)
	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %.4f\n", k, best[k])
	}
	return nil
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, automation.ParameterSweep{
		ParamName: args[0],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s sweep of %s on %s\n\n", cfg.Controller.Strategy, args[0], cfg.Run.Source)
	fmt.Printf("%-10s  %-10s  %-12s  %-12s  %-10s\n", args[0], "lag", "settling_s", "path_length", "max_speed")
	fmt.Println(strings.Repeat("-", 60))

	lags := make([]float64, len(results))
	for i, r := range results {
		m := r.Metrics
		lags[i] = m["lag"]
		fmt.Printf("%10.4f  %10.4f  %12.4f  %12.4f  %10.4f\n", r.ParamValue, m["lag"], m["settling_time"], m["path_length"], m["max_speed"])
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(lags, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("lag vs "+args[0])))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(ctx, sc, cfg)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tLABEL\tSTRATEGY\tLAG\tSETTLING\tRUN")
	for _, r := range results {
		runID := "-"
		if saveRuns {
			id, saveErr := saveRun(r.Config, r.Result)
			if saveErr != nil {
				return saveErr
			}
			runID = id
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%.4f\t%s\n",
			r.Step, r.Label, r.Config.Controller.Strategy, r.Result.Metrics["lag"], r.Result.Metrics["settling_time"], runID)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}

	return err
}

func compareStrategies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = smoothing.Names()
	}

	sims := make([]*sim.Simulator, len(names))
	for i, name := range names {
		c := cfg.Clone()
		c.Controller.Strategy = name
		ctrl, err := config.Build(c)
		if err != nil {
			return err
		}
		src, err := c.Source()
		if err != nil {
			return err
		}
		sims[i] = sim.New(ctrl, src)
		for _, m := range metrics.Defaults() {
			sims[i].AddMetric(m)
		}
	}

	fmt.Printf("comparing strategies on %s (dt=%.4f, duration=%.1fs)\n\n", cfg.Run.Source, cfg.Run.Dt, cfg.Run.Duration)

	start := time.Now()
	results, err := sim.NewEnsemble(sims...).Run(context.Background(), cfg.SimConfig())
	if err != nil {
		return err
	}
	slog.Debug("comparison finished", "strategies", len(names), "elapsed", time.Since(start))

	fmt.Printf("%-10s  %-10s  %-12s  %-12s  %-10s  %-10s\n", "strategy", "lag", "settling_s", "path_length", "max_speed", "stability")
	fmt.Println(strings.Repeat("-", 72))
	for i, name := range names {
		m := results[i].Metrics
		fmt.Printf("%-10s  %10.4f  %12.4f  %12.4f  %10.4f  %10.4f\n",
			name, m["lag"], m["settling_time"], m["path_length"], m["max_speed"], m["stability"])
	}

	return nil
}

func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	slog.Info("config saved", "path", args[0], "strategy", cfg.Controller.Strategy)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTRATEGY\tEFFECTS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fx := strings.Join(p.EffectNames(), ",")
		if fx == "" {
			fx = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Controller.Strategy, fx)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg)
	if err != nil {
		return err
	}
	if m, err = m.WithTheme(themeName); err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if configFile != "" {
		loader := config.NewLoader(configFile)
		if _, err := loader.Load(); err != nil {
			return err
		}
		loader.OnChange(func(c *config.Config) {
			p.Send(viz.ConfigMsg{Config: c})
		})
		if err := loader.Watch(); err != nil {
			return err
		}
		defer loader.Close()
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
