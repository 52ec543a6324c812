// Package input turns pointer events and scripted motion into cursor targets
// in normalized device coordinates: x in [-1, 1] left to right, y in [-1, 1]
// bottom to top.
package input

import "github.com/san-kum/cursorsim/internal/motion"

// FromPixels maps a pointer position inside a width x height surface to
// NDC, flipping y. A degenerate surface maps to the origin.
func FromPixels(px, py, width, height float64) motion.Vec2 {
	if width <= 0 || height <= 0 {
		return motion.Vec2{}
	}
	return motion.Vec2{
		X: (px/width)*2 - 1,
		Y: -((py/height)*2 - 1),
	}
}

// FromCell maps a terminal cell to NDC using the cell's center.
func FromCell(col, row, cols, rows int) motion.Vec2 {
	return FromPixels(float64(col)+0.5, float64(row)+0.5, float64(cols), float64(rows))
}
