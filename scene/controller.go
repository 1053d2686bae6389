// Package scene owns the explorer state: the raw camera pose and fractal
// shape driven by user input, their smoothed copies that get published to a
// renderer and the quality settings derived from the distance field.
package scene

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/achilleasa/kifs-explorer/fractal"
	"github.com/achilleasa/kifs-explorer/log"
	"github.com/achilleasa/kifs-explorer/quality"
	"github.com/achilleasa/kifs-explorer/types"
)

var logger = log.New("scene")

// Input is a snapshot of the user input for a single frame.
type Input struct {
	// Mouse axis deltas.
	MouseX float32 `json:"mouseX"`
	MouseY float32 `json:"mouseY"`

	// Movement keys currently held down.
	Left     bool `json:"left"`
	Right    bool `json:"right"`
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`

	// Set only on the frame the randomize key was pressed.
	Randomize bool `json:"randomize"`

	// Current viewport dimensions; zero values keep the previous size.
	Viewport [2]int `json:"viewport"`
}

// RenderParams contains everything a renderer needs for drawing a frame.
type RenderParams struct {
	Frame uint64 `json:"frame"`

	// Camera to world transform.
	CamMat mgl32.Mat4 `json:"camMat"`

	// Smoothed shape.
	Scale  float32    `json:"scale"`
	Angle1 float32    `json:"angle1"`
	Angle2 float32    `json:"angle2"`
	Color  types.Vec3 `json:"color"`
	Shift  types.Vec3 `json:"shift"`

	// Iterations to use when ray marching.
	FractalIter int `json:"fractalIter"`

	Resolution [2]int `json:"resolution"`

	Quality quality.State `json:"quality"`
}

// Controller converts per-frame input into render parameters. It is not safe
// for concurrent use; a single render loop is expected to drive it.
type Controller struct {
	cfg Config

	pose  Pose
	shape fractal.Shape

	smoothed   Smoothed
	quality    *quality.Controller
	randomizer *fractal.Randomizer

	// Displacement applied by movement keys. It is the speed cap computed
	// during the previous frame.
	speed float32

	frame    uint64
	viewport [2]int
}

// NewController validates cfg and creates a controller seeded with the
// configured pose and shape.
func NewController(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &Controller{
		cfg:        cfg,
		pose:       cfg.Pose,
		shape:      cfg.Shape,
		smoothed:   newSmoothed(cfg.Pose, cfg.Shape),
		quality:    quality.NewController(cfg.Quality()),
		randomizer: fractal.NewRandomizer(cfg.RandomizeDelta, seed),
		speed:      cfg.MaxSpeed,
	}

	logger.Debugf("initial pose: %v", c.pose)
	logger.Debugf("initial shape: %v", c.shape)
	return c, nil
}

// Config returns the validated controller config.
func (c *Controller) Config() Config {
	return c.cfg
}

// Pose returns the raw camera pose.
func (c *Controller) Pose() Pose {
	return c.pose
}

// Shape returns the raw fractal shape.
func (c *Controller) Shape() fractal.Shape {
	return c.shape
}

// Smoothed returns the smoothed state.
func (c *Controller) Smoothed() Smoothed {
	return c.smoothed
}

// Tick advances the controller by one frame. The elapsed time dt is only
// used when the config specifies a target frame rate.
func (c *Controller) Tick(in Input, dt time.Duration) RenderParams {
	frames := c.elapsedFrames(dt)

	c.handleInput(in, frames)

	state := c.quality.Update(types.Vec3(c.pose.Position), c.shape)
	c.speed = state.SpeedCap

	c.smoothed.Step(c.pose, c.shape, c.blendFactor(frames))

	if in.Viewport[0] > 0 && in.Viewport[1] > 0 {
		c.viewport = in.Viewport
	}
	c.frame++

	return c.Params()
}

// Params returns the render parameters for the current smoothed state.
func (c *Controller) Params() RenderParams {
	s := c.smoothed.Shape
	state := c.quality.State()
	return RenderParams{
		Frame:       c.frame,
		CamMat:      c.smoothed.Transform(),
		Scale:       s.Scale,
		Angle1:      s.Angle1,
		Angle2:      s.Angle2,
		Color:       s.Color,
		Shift:       s.Shift,
		FractalIter: state.Iterations,
		Resolution:  c.viewport,
		Quality:     state,
	}
}

// Only one movement key is honored per frame; randomizing requires that no
// movement key is held.
func (c *Controller) handleInput(in Input, frames float32) {
	c.pose.Look(in.MouseX*c.cfg.MouseSpeed, in.MouseY*c.cfg.MouseSpeed)

	amount := c.speed * frames
	switch {
	case in.Left:
		c.pose.Move(Left, amount)
	case in.Right:
		c.pose.Move(Right, amount)
	case in.Backward:
		c.pose.Move(Backward, amount)
	case in.Forward:
		c.pose.Move(Forward, amount)
	case in.Randomize:
		c.shape = c.randomizer.Shape(c.shape)
		logger.Infof("randomized shape: %v", c.shape)
	}
}

// elapsedFrames returns how many target frames dt spans, or 1 when the
// controller runs in per-frame mode.
func (c *Controller) elapsedFrames(dt time.Duration) float32 {
	if c.cfg.TargetFPS <= 0 || dt <= 0 {
		return 1
	}
	return float32(dt.Seconds()) * c.cfg.TargetFPS
}

func (c *Controller) blendFactor(frames float32) float32 {
	if frames == 1 {
		return c.cfg.SmoothSpeed
	}
	keep := math.Pow(float64(1-c.cfg.SmoothSpeed), float64(frames))
	return types.Clamp01(float32(1 - keep))
}
