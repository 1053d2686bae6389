package scene

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/achilleasa/kifs-explorer/fractal"
	"github.com/achilleasa/kifs-explorer/quality"
	"github.com/achilleasa/kifs-explorer/types"
)

func newTestController(t *testing.T, mutate func(*Config)) *Controller {
	cfg := DefaultConfig()
	cfg.Seed = 1234
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := NewController(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewControllerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shape.Scale = -1
	if _, err := NewController(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig; got %v", err)
	}
}

func TestInitialParams(t *testing.T) {
	c := newTestController(t, nil)
	params := c.Params()

	if params.Frame != 0 {
		t.Fatalf("expected frame 0; got %d", params.Frame)
	}
	if !approxMat4(params.CamMat, mgl32.Translate3D(0, 0, 10), eps) {
		t.Fatalf("expected camera matrix to translate to (0, 0, 10); got\n%v", params.CamMat)
	}

	shape := fractal.DefaultShape()
	if params.Scale != shape.Scale || params.Angle1 != shape.Angle1 || params.Angle2 != shape.Angle2 ||
		params.Color != shape.Color || params.Shift != shape.Shift {
		t.Fatalf("expected initial params to publish the configured shape; got %+v", params)
	}
	if params.FractalIter != c.Config().MinFractalIter {
		t.Fatalf("expected initial iteration count %d; got %d", c.Config().MinFractalIter, params.FractalIter)
	}
}

func TestTickUpdatesQualityFromRawPosition(t *testing.T) {
	c := newTestController(t, nil)
	params := c.Tick(Input{Forward: true, Viewport: [2]int{640, 480}}, 0)

	exp := quality.Evaluate(fractal.Estimate(types.Vec3(c.Pose().Position), c.Config().MinFractalIter, c.Shape()), c.Config().Quality())
	if params.Quality != exp {
		t.Fatalf("expected quality %+v; got %+v", exp, params.Quality)
	}
	if params.FractalIter != exp.Iterations {
		t.Fatalf("expected fractal iterations %d; got %d", exp.Iterations, params.FractalIter)
	}
	if params.FractalIter < c.Config().MinFractalIter || params.FractalIter > c.Config().MaxFractalIter {
		t.Fatalf("iteration count %d out of bounds", params.FractalIter)
	}
	if params.Resolution != [2]int{640, 480} {
		t.Fatalf("expected resolution 640x480; got %v", params.Resolution)
	}
	if params.Frame != 1 {
		t.Fatalf("expected frame 1; got %d", params.Frame)
	}

	// Zero viewport keeps the last known size
	params = c.Tick(Input{}, 0)
	if params.Resolution != [2]int{640, 480} {
		t.Fatalf("expected resolution to persist; got %v", params.Resolution)
	}
}

func TestMovementUsesPreviousSpeedCap(t *testing.T) {
	c := newTestController(t, func(cfg *Config) { cfg.MaxSpeed = 1 })

	// The first frame moves by the seeded speed (MaxSpeed)
	c.Tick(Input{Forward: true}, 0)
	if z := c.Pose().Position[2]; math.Abs(float64(z-9)) > 1e-5 {
		t.Fatalf("expected first move to use max speed; got z = %f", z)
	}

	speed := c.quality.State().SpeedCap
	if speed <= 0 || speed >= 1 {
		t.Fatalf("expected speed cap below max speed; got %f", speed)
	}

	c.Tick(Input{Forward: true}, 0)
	if z := c.Pose().Position[2]; math.Abs(float64(z-(9-speed))) > 1e-5 {
		t.Fatalf("expected second move to use speed cap %f; got z = %f", speed, z)
	}
}

func TestOnlyOneActionPerFrame(t *testing.T) {
	type spec struct {
		in        Input
		expPos    mgl32.Vec3
		expRandom bool
	}
	specs := []spec{
		{Input{Left: true, Forward: true, Randomize: true}, mgl32.Vec3{-0.01, 0, 10}, false},
		{Input{Right: true, Backward: true}, mgl32.Vec3{0.01, 0, 10}, false},
		{Input{Backward: true, Forward: true}, mgl32.Vec3{0, 0, 10.01}, false},
		{Input{Forward: true, Randomize: true}, mgl32.Vec3{0, 0, 9.99}, false},
		{Input{Randomize: true}, mgl32.Vec3{0, 0, 10}, true},
	}

	for index, s := range specs {
		c := newTestController(t, nil)
		c.Tick(s.in, 0)

		if !approxVec3(c.Pose().Position, s.expPos, eps) {
			t.Fatalf("[spec %d] expected position %v; got %v", index, s.expPos, c.Pose().Position)
		}
		if randomized := c.Shape() != fractal.DefaultShape(); randomized != s.expRandom {
			t.Fatalf("[spec %d] expected randomized = %t; got %t", index, s.expRandom, randomized)
		}
	}
}

func TestRandomizeIsReproducibleAndSmoothed(t *testing.T) {
	a := newTestController(t, nil)
	b := newTestController(t, nil)

	a.Tick(Input{Randomize: true}, 0)
	b.Tick(Input{Randomize: true}, 0)
	if a.Shape() != b.Shape() {
		t.Fatalf("expected equal seeds to produce equal shapes; got %v and %v", a.Shape(), b.Shape())
	}

	// The published shape trails the raw one
	raw := a.Shape()
	published := a.Smoothed().Shape
	def := fractal.DefaultShape()
	if !between(published.Scale, def.Scale, raw.Scale) || published.Scale == raw.Scale {
		t.Fatalf("expected smoothed scale to lie strictly between %f and %f; got %f", def.Scale, raw.Scale, published.Scale)
	}
}

func TestMouseLook(t *testing.T) {
	c := newTestController(t, func(cfg *Config) { cfg.MouseSpeed = 2 })
	c.Tick(Input{MouseX: 5, MouseY: 3}, 0)

	pose := c.Pose()
	if pose.Pitch != 6 || pose.Yaw != 350 {
		t.Fatalf("expected pitch 6 and yaw 350; got %f and %f", pose.Pitch, pose.Yaw)
	}
}

func TestSmoothedPositionLags(t *testing.T) {
	c := newTestController(t, nil)
	for i := 0; i < 10; i++ {
		c.Tick(Input{Forward: true}, 0)
	}

	raw := c.Pose().Position[2]
	smoothed := c.Smoothed().Position[2]
	if !(smoothed > raw && smoothed < 10) {
		t.Fatalf("expected smoothed z to lag between %f and 10; got %f", raw, smoothed)
	}
}

func TestFrameRateIndependentMode(t *testing.T) {
	perFrame := newTestController(t, nil)
	scaled := newTestController(t, func(cfg *Config) { cfg.TargetFPS = 60 })

	// Two per-frame ticks should roughly match a single tick spanning two
	// target frames.
	perFrame.Tick(Input{Forward: true}, 0)
	perFrame.Tick(Input{}, 0)
	scaled.Tick(Input{Forward: true}, time.Second/30)

	if got, exp := scaled.Pose().Position[2], float32(10-2*0.01); math.Abs(float64(got-exp)) > 1e-5 {
		t.Fatalf("expected movement to scale with elapsed frames; got z = %f, want %f", got, exp)
	}

	exp := 1 - (1-perFrame.Config().SmoothSpeed)*(1-perFrame.Config().SmoothSpeed)
	if got := scaled.blendFactor(2); math.Abs(float64(got-exp)) > 1e-5 {
		t.Fatalf("expected blend factor %f for two frames; got %f", exp, got)
	}

	if got := scaled.elapsedFrames(0); got != 1 {
		t.Fatalf("expected zero dt to count as a single frame; got %f", got)
	}
	if got := perFrame.elapsedFrames(time.Second); got != 1 {
		t.Fatalf("expected per-frame mode to ignore dt; got %f", got)
	}
}
