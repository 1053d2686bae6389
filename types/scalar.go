package types

// Clamp x to the [0, 1] range.
func Clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Linearly interpolate between a and b. The amount t is clamped to [0, 1] and
// the result is kept inside [min(a,b), max(a,b)] so rounding can never push it
// past either end point.
func Lerp(a, b, t float32) float32 {
	t = Clamp01(t)
	if t == 1 {
		return b
	}
	v := a + float32((b-a)*t)
	return max(min(a, b), min(max(a, b), v))
}
