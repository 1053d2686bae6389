package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Direction uint8

// Camera movement directions. The camera looks down the -Z axis of its local
// frame.
const (
	Forward Direction = iota
	Backward
	Left
	Right
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// Pose describes the camera position and orientation. The orientation is kept
// as Euler angles (degrees) so mouse look can accumulate pitch and yaw without
// introducing roll.
type Pose struct {
	Position mgl32.Vec3 `json:"position"`
	Pitch    float32    `json:"pitch"`
	Yaw      float32    `json:"yaw"`
}

// Rotation returns the orientation quaternion: a yaw around +Y applied after
// a pitch around +X.
func (p Pose) Rotation() mgl32.Quat {
	yawQuat := mgl32.QuatRotate(mgl32.DegToRad(p.Yaw), axisY)
	pitchQuat := mgl32.QuatRotate(mgl32.DegToRad(p.Pitch), axisX)
	return yawQuat.Mul(pitchQuat).Normalize()
}

// Back returns the local +Z axis in world space.
func (p Pose) Back() mgl32.Vec3 {
	return p.Rotation().Rotate(axisZ)
}

// Right returns the local +X axis in world space.
func (p Pose) Right() mgl32.Vec3 {
	return p.Rotation().Rotate(axisX)
}

// Move the camera along dir by the given amount.
func (p *Pose) Move(dir Direction, amount float32) {
	switch dir {
	case Forward:
		p.Position = p.Position.Sub(p.Back().Mul(amount))
	case Backward:
		p.Position = p.Position.Add(p.Back().Mul(amount))
	case Left:
		p.Position = p.Position.Sub(p.Right().Mul(amount))
	case Right:
		p.Position = p.Position.Add(p.Right().Mul(amount))
	}
}

// Look applies mouse look deltas (degrees). Horizontal movement turns the
// camera around the world up axis, vertical movement tilts it.
func (p *Pose) Look(deltaX, deltaY float32) {
	p.Pitch = wrapDegrees(p.Pitch + deltaY)
	p.Yaw = wrapDegrees(p.Yaw - deltaX)
}

func (p Pose) String() string {
	return fmt.Sprintf("pos: (%3.3f, %3.3f, %3.3f), pitch: %3.1f, yaw: %3.1f", p.Position[0], p.Position[1], p.Position[2], p.Pitch, p.Yaw)
}

// Transform composes a camera to world matrix from a position and rotation
// with unit scale.
func Transform(position mgl32.Vec3, rotation mgl32.Quat) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2]).Mul4(rotation.Mat4())
}

// wrapDegrees maps an angle to [0, 360).
func wrapDegrees(deg float32) float32 {
	deg = float32(math.Mod(float64(deg), 360))
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
