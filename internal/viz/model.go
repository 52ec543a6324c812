package viz

import (
	"math"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/cursorsim/internal/config"
	"github.com/san-kum/cursorsim/internal/cursor"
	"github.com/san-kum/cursorsim/internal/effects"
	"github.com/san-kum/cursorsim/internal/input"
	"github.com/san-kum/cursorsim/internal/motion"
	"github.com/san-kum/cursorsim/internal/smoothing"
)

const (
	tickRate = time.Second / 60
	// maxFrameDt bounds the step after a stalled frame.
	maxFrameDt      = 0.1
	historyCapacity = 120
	trailCapacity   = 90
	panelWidth      = 42
	tuneStep        = 0.1
)

type TickMsg time.Time

// ConfigMsg delivers a reloaded configuration to a running program, usually
// through tea.Program.Send from a config.Loader callback.
type ConfigMsg struct {
	Config *config.Config
}

type Model struct {
	ctrl *cursor.Controller

	specs     []effects.Spec
	effectsOn bool
	pattern   effects.Pattern

	paramKeys []string
	selected  int

	width, height int
	last          time.Time
	fps           float64
	speedHist     []float64
	trail         []motion.Vec2
	theme         int
	err           error
}

func NewModel(cfg *config.Config) (Model, error) {
	ctrl, err := config.Build(cfg)
	if err != nil {
		return Model{}, err
	}

	specs := cfg.Clone().Effects
	m := Model{
		ctrl:      ctrl,
		specs:     specs,
		effectsOn: len(specs) > 0,
		pattern:   driftPattern(specs),
		width:     80,
		height:    24,
		speedHist: make([]float64, 0, historyCapacity),
		trail:     make([]motion.Vec2, 0, trailCapacity),
	}
	m.refreshParams()
	return m, nil
}

// WithTheme returns the model rendering with the named theme.
func (m Model) WithTheme(name string) (Model, error) {
	i, err := themeIndex(name)
	if err != nil {
		return m, err
	}
	m.theme = i
	return m, nil
}

// Controller exposes the driven controller, for tests and callers that
// observe frames.
func (m Model) Controller() *cursor.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.pointerAt(msg.X, msg.Y)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case TickMsg:
		m.step(time.Time(msg))
		return m, tick()
	case ConfigMsg:
		m.apply(msg.Config)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s":
		m.cycleStrategy()
	case "e":
		m.toggleEffects()
	case "p":
		m.cyclePattern()
	case "tab":
		if len(m.paramKeys) > 0 {
			m.selected = (m.selected + 1) % len(m.paramKeys)
		}
	case "up":
		m.tune(1)
	case "down":
		m.tune(-1)
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	case "r":
		m.reset()
	}
	return m, nil
}

func (m Model) sceneSize() (cols, rows int) {
	return max(m.width-panelWidth, 10), max(m.height-1, 5)
}

// pointerAt retargets the cursor at a terminal cell. Cells outside the
// scene (the side panel) clamp to its edge.
func (m *Model) pointerAt(col, row int) {
	cols, rows := m.sceneSize()
	p := input.FromCell(col, row, cols, rows)
	m.ctrl.SetTarget(clamp(p.X, -1, 1), clamp(p.Y, -1, 1))
}

func (m *Model) step(now time.Time) {
	dt := tickRate.Seconds()
	if !m.last.IsZero() {
		dt = now.Sub(m.last).Seconds()
	}
	if dt <= 0 {
		return
	}
	dt = math.Min(dt, maxFrameDt)
	m.last = now
	m.fps = 1 / dt

	prev := m.ctrl.Position()
	if err := m.ctrl.Update(dt); err != nil {
		m.err = err
		return
	}
	m.err = nil

	pos := m.ctrl.Position()
	if !pos.IsFinite() || !prev.IsFinite() {
		return
	}
	if speed := pos.Sub(prev).Len() / dt; !math.IsInf(speed, 0) {
		m.speedHist = pushBounded(m.speedHist, speed, historyCapacity)
	}
	m.trail = pushBounded(m.trail, motion.Vec2{X: clamp(pos.X, -1, 1), Y: clamp(pos.Y, -1, 1)}, trailCapacity)
}

func (m *Model) cycleStrategy() {
	names := smoothing.Names()
	next := 0
	for i, n := range names {
		if n == m.ctrl.StrategyName() {
			next = (i + 1) % len(names)
		}
	}
	m.ctrl.SetStrategy(names[next])
	m.refreshParams()
}

func (m *Model) configurable() motion.Configurable {
	s, err := m.ctrl.Strategy(m.ctrl.StrategyName())
	if err != nil {
		return nil
	}
	c, _ := s.(motion.Configurable)
	return c
}

func (m *Model) refreshParams() {
	m.paramKeys = nil
	m.selected = 0
	c := m.configurable()
	if c == nil {
		return
	}
	for k := range c.Params() {
		m.paramKeys = append(m.paramKeys, k)
	}
	sort.Strings(m.paramKeys)
}

// tune nudges the selected parameter by tuneStep of its magnitude, never
// below zero.
func (m *Model) tune(dir float64) {
	c := m.configurable()
	if c == nil || len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	v := c.Params()[key]
	next := math.Max(v+dir*math.Max(math.Abs(v)*tuneStep, 0.01), 0)
	m.err = c.SetParam(key, next)
}

func (m *Model) toggleEffects() {
	if m.effectsOn {
		m.ctrl.ClearEffects()
		m.effectsOn = false
		return
	}
	if len(m.specs) == 0 {
		m.specs = []effects.Spec{
			{Name: effects.NameHandShake},
			{Name: effects.NameIdleDrift, Pattern: m.pattern.String()},
		}
	}
	m.err = m.rebuildEffects()
}

func (m *Model) cyclePattern() {
	m.pattern = effects.Pattern((int(m.pattern) + 1) % len(effects.PatternNames()))

	found := false
	for i := range m.specs {
		if m.specs[i].Name == effects.NameIdleDrift {
			m.specs[i].Pattern = m.pattern.String()
			found = true
		}
	}
	if !found {
		m.specs = append(m.specs, effects.Spec{Name: effects.NameIdleDrift, Pattern: m.pattern.String()})
	}
	m.err = m.rebuildEffects()
}

// rebuildEffects replaces the pipeline with fresh entries built from specs.
// On failure the pipeline is left empty and effects are off.
func (m *Model) rebuildEffects() error {
	m.ctrl.ClearEffects()
	m.effectsOn = false
	built := make([]motion.Effect, 0, len(m.specs))
	for _, spec := range m.specs {
		e, err := effects.New(spec)
		if err != nil {
			return err
		}
		built = append(built, e)
	}
	for _, e := range built {
		m.ctrl.AddEffect(e)
	}
	m.effectsOn = true
	return nil
}

// apply retunes the running controller in place so the cursor keeps its
// position across a reload.
func (m *Model) apply(cfg *config.Config) {
	m.ctrl.SetStrategy(cfg.Controller.Strategy)
	applyStrategyConfig(m.ctrl, cfg.Controller)

	m.specs = cfg.Clone().Effects
	m.pattern = driftPattern(m.specs)
	m.err = nil
	if len(m.specs) > 0 {
		m.err = m.rebuildEffects()
	} else {
		m.ctrl.ClearEffects()
		m.effectsOn = false
	}
	m.refreshParams()
}

func (m *Model) reset() {
	m.ctrl.Reset()
	m.last = time.Time{}
	m.err = nil
	m.speedHist = m.speedHist[:0]
	m.trail = m.trail[:0]
}

func applyStrategyConfig(ctrl *cursor.Controller, cfg cursor.Config) {
	for _, k := range smoothing.Kinds() {
		s, err := ctrl.Strategy(k.String())
		if err != nil {
			continue
		}
		switch s := s.(type) {
		case *smoothing.Lerp:
			s.Damping = cfg.Lerp.Damping
		case *smoothing.Spring:
			s.Stiffness = cfg.Spring.Stiffness
			s.Damping = cfg.Spring.Damping
		case *smoothing.Easing:
			s.Duration = cfg.Easing.Duration
			s.Func = cfg.Easing.Easing
		}
	}
}

func driftPattern(specs []effects.Spec) effects.Pattern {
	for _, spec := range specs {
		if spec.Name == effects.NameIdleDrift {
			if p, err := effects.ParsePattern(spec.Pattern); err == nil {
				return p
			}
		}
	}
	return effects.PatternOrganic
}

func pushBounded[T any](s []T, v T, limit int) []T {
	if len(s) >= limit {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
