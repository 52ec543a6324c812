package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cursorsim/internal/input"
	"github.com/san-kum/cursorsim/internal/motion"
	"github.com/san-kum/cursorsim/internal/scene"
	"github.com/san-kum/cursorsim/internal/smoothing"
)

// shadeRamp runs from unlit to fully lit.
var shadeRamp = []rune(" .:-=+*#%@")

const (
	cursorGlyph = '◉'
	targetGlyph = '+'
	// cellAspect is the height/width ratio of a terminal cell.
	cellAspect = 2.0
)

func (m Model) View() string {
	st := newStyles(Themes[m.theme])
	cols, rows := m.sceneSize()

	left := st.scene.Render(m.renderScene(cols, rows))
	right := st.panel.Render(m.renderPanel(st))

	help := st.help.Render("s strategy · e effects · p pattern · tab/↑/↓ tune · t theme · r reset · q quit")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n" + help
}

func shade(intensity float64) rune {
	i := int(intensity * float64(len(shadeRamp)-1))
	return shadeRamp[max(0, min(i, len(shadeRamp)-1))]
}

func cellOf(p motion.Vec2, cols, rows int) (int, int) {
	col := int((p.X + 1) / 2 * float64(cols))
	row := int((1 - p.Y) / 2 * float64(rows))
	return min(max(col, 0), cols-1), min(max(row, 0), rows-1)
}

// renderScene shades every cell by the spotlight aimed through the
// smoothed cursor position.
func (m Model) renderScene(cols, rows int) string {
	aspect := float64(cols) / (float64(rows) * cellAspect)
	light := scene.LightAt(m.ctrl.Position(), aspect)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		for c := range grid[r] {
			ray := scene.Ray(input.FromCell(c, r, cols, rows), aspect, scene.DefaultFOV)
			grid[r][c] = shade(light.Intensity(ray))
		}
	}

	tc, tr := cellOf(m.ctrl.Target(), cols, rows)
	grid[tr][tc] = targetGlyph
	if p := m.ctrl.Position(); p.IsFinite() {
		pc, pr := cellOf(p, cols, rows)
		grid[pr][pc] = cursorGlyph
	}

	var b strings.Builder
	for r, line := range grid {
		b.WriteString(string(line))
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderPanel(st styles) string {
	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	s.WriteString(st.header.Render("CURSORSIM") + "\n")

	row("Strategy", m.ctrl.StrategyName())
	if c := m.configurable(); c != nil {
		params := c.Params()
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-10s %.4g", k, params[k])
			if i == m.selected {
				s.WriteString(st.active.Render("▸ "+line) + "\n")
			} else {
				s.WriteString(st.value.Render("  "+line) + "\n")
			}
		}
	}
	if strat, err := m.ctrl.Strategy(m.ctrl.StrategyName()); err == nil {
		if e, ok := strat.(*smoothing.Easing); ok {
			progress := 1.0
			state := "holding"
			if e.Animating() {
				progress = e.Elapsed() / e.Duration
				state = "animating"
			}
			row("Easing", e.Func+" ("+state+")")
			row("", ProgressBar(progress, 20))
		}
	}

	s.WriteString("\n")
	if m.effectsOn {
		row("Effects", st.on.Render(fmt.Sprintf("on (%d)", m.ctrl.Effects())))
	} else {
		row("Effects", st.off.Render("off"))
	}
	row("Pattern", m.pattern.String())

	pos, vel, tgt := m.ctrl.Position(), m.ctrl.Velocity(), m.ctrl.Target()
	tilt := scene.TiltAt(pos, scene.DefaultMaxTilt)
	s.WriteString("\n")
	row("Position", fmt.Sprintf("%+.3f %+.3f", pos.X, pos.Y))
	row("Velocity", fmt.Sprintf("%+.3f %+.3f", vel.X, vel.Y))
	row("Target", fmt.Sprintf("%+.3f %+.3f", tgt.X, tgt.Y))
	row("Tilt", fmt.Sprintf("%+.3f %+.3f", tilt.Yaw, tilt.Pitch))
	row("Time", fmt.Sprintf("%.2fs", m.ctrl.Time()))
	row("FPS", fmt.Sprintf("%.0f", m.fps))

	if len(m.speedHist) > 1 {
		chart := asciigraph.Plot(m.speedHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	if len(m.trail) > 0 {
		canvas := NewCanvas(16, 4)
		canvas.Polyline(m.trail)
		s.WriteString("\n" + st.graph.Render(canvas.String()) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + st.err.Render(m.err.Error()) + "\n")
	}
	return s.String()
}
