package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/achilleasa/kifs-explorer/fractal"
	"github.com/achilleasa/kifs-explorer/types"
)

// Smoothed is a low-pass filtered copy of the camera pose and shape. Every
// step moves it towards the raw values by a fixed fraction so it lags behind
// them with an exponentially decaying error.
type Smoothed struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Shape    fractal.Shape
}

func newSmoothed(pose Pose, shape fractal.Shape) Smoothed {
	return Smoothed{
		Position: pose.Position,
		Rotation: pose.Rotation(),
		Shape:    shape,
	}
}

// Step blends the smoothed state towards the supplied raw values.
func (s *Smoothed) Step(pose Pose, shape fractal.Shape, t float32) {
	s.Position = mgl32.Vec3(types.Vec3(s.Position).Lerp(types.Vec3(pose.Position), t))
	s.Rotation = nlerp(s.Rotation, pose.Rotation(), t)
	s.Shape = s.Shape.Lerp(shape, t)
}

// Transform returns the camera to world matrix for the smoothed pose.
func (s *Smoothed) Transform() mgl32.Mat4 {
	return Transform(s.Position, s.Rotation)
}

// nlerp interpolates along the shortest arc and re-normalizes the result.
func nlerp(from, to mgl32.Quat, t float32) mgl32.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}

	// Re-normalizing a converged rotation would drift its low bits.
	t = types.Clamp01(t)
	switch {
	case from == to || t == 0:
		return from
	case t == 1:
		return to
	}
	return mgl32.QuatNlerp(from, to, t)
}
