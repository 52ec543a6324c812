// Package scene derives the lighting inputs of the textured-quad scene from
// the smoothed cursor position. It only ever receives the position by value.
package scene

import (
	"math"

	"github.com/san-kum/cursorsim/internal/motion"
)

const (
	DefaultFOV          = 45 * math.Pi / 180
	DefaultConeAngle    = 0.2
	DefaultConeSoftness = 0.08
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Ray returns the unit view ray through an NDC point for a camera at the
// origin looking down -Z.
func Ray(p motion.Vec2, aspect, fov float64) Vec3 {
	half := math.Tan(fov / 2)
	return Vec3{p.X * aspect * half, p.Y * half, -1}.Normalize()
}

// Light is a spotlight at the camera aimed through the cursor.
type Light struct {
	Dir      Vec3
	Cone     float64
	Softness float64
}

// LightAt aims the default spotlight through the cursor position.
func LightAt(p motion.Vec2, aspect float64) Light {
	return Light{
		Dir:      Ray(p, aspect, DefaultFOV),
		Cone:     DefaultConeAngle,
		Softness: DefaultConeSoftness,
	}
}

// Intensity is 1 inside the cone, 0 past cone+softness and smoothstepped
// between, for a unit ray from the camera.
func (l Light) Intensity(ray Vec3) float64 {
	inner := math.Cos(l.Cone)
	outer := math.Cos(l.Cone + l.Softness)
	return smoothstep(outer, inner, ray.Dot(l.Dir))
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := math.Max(0, math.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}
