// Package quality selects the renderer iteration count and the camera speed
// cap from a cheap distance estimate at the camera position.
package quality

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/achilleasa/kifs-explorer/fractal"
	"github.com/achilleasa/kifs-explorer/types"
)

// Converts estimated distance into a movement speed.
const speedDamping float32 = 1.0 / 100000

// Config controls the quality/speed trade-off.
type Config struct {
	// Iteration bounds. The lower bound is also used when probing the
	// distance field at the camera position.
	MinIterations int
	MaxIterations int

	// Upper bound for the per-frame camera displacement.
	MaxSpeed float32

	// Scales the distance at which the iteration count starts ramping up.
	// Must be positive.
	LodIncreaseStartMultiplier float32
}

// State is the outcome of a quality update.
type State struct {
	// Iteration count the renderer should use.
	Iterations int `json:"iterations"`

	// Max camera displacement for the next frame.
	SpeedCap float32 `json:"speedCap"`

	// Clamped distance estimate at the probed position.
	Distance float32 `json:"distance"`
}

// Controller recomputes the quality state for each frame.
type Controller struct {
	cfg   Config
	state State
}

// NewController creates a controller. The configuration is expected to have
// been validated upstream.
func NewController(cfg Config) *Controller {
	return &Controller{
		cfg: cfg,
		state: State{
			Iterations: cfg.MinIterations,
			SpeedCap:   cfg.MaxSpeed,
		},
	}
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the result of the last update.
func (c *Controller) State() State {
	return c.state
}

// Update probes the distance field at position using the minimum iteration
// count and derives the new quality state.
func (c *Controller) Update(position types.Vec3, shape fractal.Shape) State {
	c.state = Evaluate(fractal.Estimate(position, c.cfg.MinIterations, shape), c.cfg)
	return c.state
}

// Evaluate maps a raw distance estimate to a quality state. Negative
// estimates are treated as zero.
//
// The iteration count is interpolated from MaxIterations (at the surface)
// down to MinIterations (at 1000*LodIncreaseStartMultiplier units away). The
// square root front-loads the increase close to the surface.
func Evaluate(distance float32, cfg Config) State {
	distance = max(distance, 0)

	lod := 1.0 / (1000 * cfg.LodIncreaseStartMultiplier)
	t := types.Clamp01(math32.Sqrt(distance * lod))

	iterations := roundToInt(types.Lerp(float32(cfg.MaxIterations), float32(cfg.MinIterations), t))
	iterations = max(cfg.MinIterations, min(cfg.MaxIterations, iterations))

	return State{
		Iterations: iterations,
		SpeedCap:   min(distance*speedDamping, cfg.MaxSpeed),
		Distance:   distance,
	}
}

// roundToInt rounds half-way values to the nearest even integer.
func roundToInt(v float32) int {
	return int(math.RoundToEven(float64(v)))
}
