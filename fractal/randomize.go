package fractal

import (
	"math/rand"

	"github.com/achilleasa/kifs-explorer/types"
)

// Randomizer perturbs shape parameters by a bounded relative amount.
type Randomizer struct {
	rng *rand.Rand

	// Maximum relative change; a value of 0.1 shifts each parameter by up to
	// +-10% of its current value.
	Delta float32
}

// NewRandomizer creates a randomizer that draws from a source seeded with seed.
func NewRandomizer(delta float32, seed int64) *Randomizer {
	return &Randomizer{
		rng:   rand.New(rand.NewSource(seed)),
		Delta: delta,
	}
}

// Value shifts val by a uniformly distributed amount in
// [-Delta*val, Delta*val].
func (r *Randomizer) Value(val float32) float32 {
	lo := -r.Delta * val
	hi := r.Delta * val
	return val + lo + r.rng.Float32()*(hi-lo)
}

// Vec3 applies Value to each vector component independently.
func (r *Randomizer) Vec3(v types.Vec3) types.Vec3 {
	return types.XYZ(r.Value(v[0]), r.Value(v[1]), r.Value(v[2]))
}

// Shape returns a perturbed copy of s.
func (r *Randomizer) Shape(s Shape) Shape {
	return Shape{
		Scale:  r.Value(s.Scale),
		Angle1: r.Value(s.Angle1),
		Angle2: r.Value(s.Angle2),
		Color:  r.Vec3(s.Color),
		Shift:  r.Vec3(s.Shift),
	}
}
