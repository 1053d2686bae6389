// Package fractal implements the CPU side of the kaleidoscopic IFS fractal:
// its shape parameters, a single-precision distance estimator that mirrors the
// GPU shader and helpers for perturbing the shape at runtime.
package fractal

import (
	"fmt"
	"math"

	"github.com/achilleasa/kifs-explorer/types"
)

// Shape holds the parameters that define the fractal surface.
type Shape struct {
	// Uniform scale applied at the end of every fold iteration.
	Scale float32 `json:"scale"`

	// Rotation angles (radians) around the Z and X axes.
	Angle1 float32 `json:"angle1"`
	Angle2 float32 `json:"angle2"`

	// Orbit trap color; only consumed by the renderer.
	Color types.Vec3 `json:"color"`

	// Translation applied after scaling.
	Shift types.Vec3 `json:"shift"`
}

// DefaultShape returns the shape the explorer starts with.
func DefaultShape() Shape {
	return Shape{
		Scale:  1.5,
		Angle1: 2,
		Angle2: math.Pi,
		Color:  types.XYZ(-0.42, -0.38, -0.19),
		Shift:  types.XYZ(-4, -1, -1),
	}
}

// Lerp moves each shape parameter towards target by amount t.
func (s Shape) Lerp(target Shape, t float32) Shape {
	return Shape{
		Scale:  types.Lerp(s.Scale, target.Scale, t),
		Angle1: types.Lerp(s.Angle1, target.Angle1, t),
		Angle2: types.Lerp(s.Angle2, target.Angle2, t),
		Color:  s.Color.Lerp(target.Color, t),
		Shift:  s.Shift.Lerp(target.Shift, t),
	}
}

func (s Shape) String() string {
	return fmt.Sprintf("scale: %3.3f, angle1: %3.3f, angle2: %3.3f, color: %v, shift: %v", s.Scale, s.Angle1, s.Angle2, s.Color, s.Shift)
}
