package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/achilleasa/kifs-explorer/types"
)

const eps = 1e-5

// Compare vectors component-wise with an absolute tolerance.
func approxVec3(a, b mgl32.Vec3, tolerance float32) bool {
	return types.Vec3(a).ApproxEqual(types.Vec3(b), tolerance)
}

func approxMat4(a, b mgl32.Mat4, tolerance float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tolerance || d < -tolerance {
			return false
		}
	}
	return true
}

// q and -q describe the same rotation.
func sameRotation(a, b mgl32.Quat, tolerance float32) bool {
	d := a.Normalize().Dot(b.Normalize())
	return d >= 1-tolerance || d <= -1+tolerance
}

func TestPoseAxes(t *testing.T) {
	type spec struct {
		pitch, yaw float32
		expBack    mgl32.Vec3
		expRight   mgl32.Vec3
	}
	specs := []spec{
		{0, 0, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{0, 90, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{0, 180, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}},
		{90, 0, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}},
	}

	for index, s := range specs {
		p := Pose{Pitch: s.pitch, Yaw: s.yaw}
		if back := p.Back(); !approxVec3(back, s.expBack, eps) {
			t.Fatalf("[spec %d] expected back axis %v; got %v", index, s.expBack, back)
		}
		if right := p.Right(); !approxVec3(right, s.expRight, eps) {
			t.Fatalf("[spec %d] expected right axis %v; got %v", index, s.expRight, right)
		}
	}
}

func TestPoseMove(t *testing.T) {
	type spec struct {
		dir    Direction
		expPos mgl32.Vec3
	}
	specs := []spec{
		{Forward, mgl32.Vec3{0, 0, 9.5}},
		{Backward, mgl32.Vec3{0, 0, 10.5}},
		{Left, mgl32.Vec3{-0.5, 0, 10}},
		{Right, mgl32.Vec3{0.5, 0, 10}},
	}

	for index, s := range specs {
		p := Pose{Position: mgl32.Vec3{0, 0, 10}}
		p.Move(s.dir, 0.5)
		if !approxVec3(p.Position, s.expPos, eps) {
			t.Fatalf("[spec %d] expected position %v; got %v", index, s.expPos, p.Position)
		}
	}
}

func TestPoseLookWrapsAngles(t *testing.T) {
	var p Pose

	p.Look(10, 5)
	if p.Pitch != 5 || p.Yaw != 350 {
		t.Fatalf("expected pitch 5 and yaw 350; got %f and %f", p.Pitch, p.Yaw)
	}

	p.Look(-20, 720)
	if p.Pitch != 5 || p.Yaw != 10 {
		t.Fatalf("expected pitch 5 and yaw 10; got %f and %f", p.Pitch, p.Yaw)
	}
}

func TestTransform(t *testing.T) {
	pos := mgl32.Vec3{1, 2, 3}
	m := Transform(pos, mgl32.QuatIdent())

	if !approxMat4(m, mgl32.Translate3D(1, 2, 3), eps) {
		t.Fatalf("expected pure translation matrix; got\n%v", m)
	}

	p := Pose{Position: pos, Yaw: 90}
	m = Transform(p.Position, p.Rotation())
	origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !approxVec3(origin, pos, eps) {
		t.Fatalf("expected camera origin to map to %v; got %v", pos, origin)
	}
	back := m.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	if !approxVec3(back, p.Back(), eps) {
		t.Fatalf("expected local +Z to map to %v; got %v", p.Back(), back)
	}
}
