package types

import (
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

const floatCmpEpsilon float32 = 1e-6

type Vec3 f32.Vec3

// Define a 3 component vector.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Define a vector with all components set to s.
func Splat(s float32) Vec3 {
	return Vec3{s, s, s}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{math32.Abs(v[0]), math32.Abs(v[1]), math32.Abs(v[2])}
}

// Get 3 component vector length. The squared length is accumulated in
// single precision before taking the root.
func (v Vec3) Len() float32 {
	sq := float32(v[0]*v[0]) + float32(v[1]*v[1])
	sq = sq + float32(v[2]*v[2])
	return math32.Sqrt(sq)
}

// Normalize 3 component vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < floatCmpEpsilon {
		return Vec3{}
	}
	l = 1.0 / l
	return Vec3{v[0] * l, v[1] * l, v[2] * l}
}

// Get the largest component.
func (v Vec3) MaxComponent() float32 {
	return max(v[0], max(v[1], v[2]))
}

// Linearly interpolate towards v2. The amount t is clamped to [0, 1].
func (v Vec3) Lerp(v2 Vec3, t float32) Vec3 {
	return Vec3{Lerp(v[0], v2[0], t), Lerp(v[1], v2[1], t), Lerp(v[2], v2[2], t)}
}

// Check whether two vectors are equal within the given tolerance.
func (v Vec3) ApproxEqual(v2 Vec3, tolerance float32) bool {
	return math32.Abs(v[0]-v2[0]) <= tolerance &&
		math32.Abs(v[1]-v2[1]) <= tolerance &&
		math32.Abs(v[2]-v2[2]) <= tolerance
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%3.3f, %3.3f, %3.3f)", v[0], v[1], v[2])
}

// Calc maxcomponent from two vectors
func MaxVec3(v1, v2 Vec3) Vec3 {
	return Vec3{max(v1[0], v2[0]), max(v1[1], v2[1]), max(v1[2], v2[2])}
}
