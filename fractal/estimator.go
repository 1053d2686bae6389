package fractal

import (
	"math"

	"github.com/achilleasa/kifs-explorer/types"
)

// Half extent of the box that terminates the fold sequence.
const boxHalfExtent float32 = 6

// Estimate returns a distance bound from p to the fractal surface described by
// shape after running the given number of fold iterations. The result may be
// slightly negative close to (or inside) the surface.
//
// Unlike the shader version, the returned value is not divided by the
// accumulated scale factor. Callers only compare distances against thresholds
// so the relative value is sufficient.
//
// All intermediate products are explicitly converted to float32 which stops
// the compiler from fusing them into FMA instructions; this keeps results
// bit-identical across architectures.
func Estimate(p types.Vec3, iterations int, shape Shape) float32 {
	c1, s1 := sincos(shape.Angle1)
	c2, s2 := sincos(shape.Angle2)

	for i := 0; i < iterations; i++ {
		p = p.Abs()

		// Rotate around Z
		x := float32(c1*p[0]) + float32(s1*p[1])
		y := float32(c1*p[1]) - float32(s1*p[0])
		p[0], p[1] = x, y

		mengerFold(&p)

		// Rotate around X
		y = float32(c2*p[1]) + float32(s2*p[2])
		z := float32(c2*p[2]) - float32(s2*p[1])
		p[1], p[2] = y, z

		p = p.Mul(shape.Scale)
		p = p.Add(shape.Shift)
	}

	return boxDistance(p)
}

// mengerFold sorts the components of p in descending order using three
// pairwise folds. The order of the folds matters as each one operates on the
// output of the previous fold.
func mengerFold(p *types.Vec3) {
	m := min(p[0]-p[1], 0)
	p[0] -= m
	p[1] += m

	m = min(p[0]-p[2], 0)
	p[0] -= m
	p[2] += m

	m = min(p[1]-p[2], 0)
	p[1] -= m
	p[2] += m
}

// boxDistance returns the signed distance from p to an axis aligned box
// centered at the origin.
func boxDistance(p types.Vec3) float32 {
	a := p.Abs().Sub(types.Splat(boxHalfExtent))
	inside := min(a.MaxComponent(), 0)
	return inside + types.MaxVec3(a, types.Vec3{}).Len()
}

func sincos(angle float32) (float32, float32) {
	s, c := math.Sincos(float64(angle))
	return float32(c), float32(s)
}
