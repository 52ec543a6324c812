// Package export renders recorded runs into standalone files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/cursorsim/internal/motion"
)

const (
	positionColor = "#00ffff"
	targetColor   = "#ff00ff"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

// pathBounds covers the NDC square and every finite point, padded by 10%.
func pathBounds(frames []motion.Frame) bounds {
	b := bounds{minX: -1, maxX: 1, minY: -1, maxY: 1}
	for _, f := range frames {
		for _, p := range []motion.Vec2{f.Position, f.Target} {
			if !p.IsFinite() {
				continue
			}
			b.minX = math.Min(b.minX, p.X)
			b.maxX = math.Max(b.maxX, p.X)
			b.minY = math.Min(b.minY, p.Y)
			b.maxY = math.Max(b.maxY, p.Y)
		}
	}

	padX := (b.maxX - b.minX) * 0.1
	padY := (b.maxY - b.minY) * 0.1
	b.minX -= padX
	b.maxX += padX
	b.minY -= padY
	b.maxY += padY
	return b
}

func (b bounds) project(p motion.Vec2, width, height int) (float64, float64) {
	x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

// writePath appends an SVG path through the finite points, starting a new
// subpath after every gap.
func writePath(sb *strings.Builder, points []motion.Vec2, b bounds, width, height int, stroke string, strokeWidth float64) {
	var d strings.Builder
	pen := false
	for _, p := range points {
		if !p.IsFinite() {
			pen = false
			continue
		}
		x, y := b.project(p, width, height)
		cmd := "L"
		if !pen {
			cmd = "M"
			pen = true
		}
		if d.Len() > 0 {
			d.WriteByte(' ')
		}
		fmt.Fprintf(&d, "%s%.1f,%.1f", cmd, x, y)
	}
	if d.Len() == 0 {
		return
	}
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="%.1f" d="%s"/>
`, stroke, strokeWidth, d.String())
}

// TrajectoryToSVG draws the target path under the smoothed cursor path.
// Fewer than two frames produce an empty string.
func TrajectoryToSVG(frames []motion.Frame, width, height int) string {
	if len(frames) < 2 {
		return ""
	}

	b := pathBounds(frames)
	positions := make([]motion.Vec2, len(frames))
	targets := make([]motion.Vec2, len(frames))
	for i, f := range frames {
		positions[i] = f.Position
		targets[i] = f.Target
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	writePath(&sb, targets, b, width, height, targetColor, 1)
	writePath(&sb, positions, b, width, height, positionColor, 1.5)

	if last := positions[len(positions)-1]; last.IsFinite() {
		x, y := b.project(last, width, height)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, positionColor)
	}

	sb.WriteString("</svg>")
	return sb.String()
}
