package scene

import "github.com/san-kum/cursorsim/internal/motion"

const DefaultMaxTilt = 0.15

// Tilt is a small camera rotation that follows the cursor.
type Tilt struct {
	Yaw   float64
	Pitch float64
}

// TiltAt scales the NDC position into yaw/pitch radians, clamped to
// maxTilt in magnitude per axis.
func TiltAt(p motion.Vec2, maxTilt float64) Tilt {
	return Tilt{
		Yaw:   clamp(p.X, -1, 1) * maxTilt,
		Pitch: clamp(p.Y, -1, 1) * maxTilt,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
