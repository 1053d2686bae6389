package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/achilleasa/kifs-explorer/fractal"
	"github.com/achilleasa/kifs-explorer/quality"
)

// Allowed range for the LOD multiplier. Values outside it are clamped.
const (
	minLodMultiplier float32 = 0.1
	maxLodMultiplier float32 = 100
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the explorer settings. It is loaded once at startup.
type Config struct {
	// Iteration bounds for the renderer.
	MinFractalIter int `json:"minFractalIter"`
	MaxFractalIter int `json:"maxFractalIter"`

	// Max camera displacement per frame.
	MaxSpeed float32 `json:"maxSpeed"`

	// Blend factor for smoothing the published parameters; in (0, 1].
	SmoothSpeed float32 `json:"smoothSpeed"`

	// Degrees of rotation per unit of mouse axis movement.
	MouseSpeed float32 `json:"mouseSpeed"`

	// Max relative change applied to each shape parameter when randomizing.
	RandomizeDelta float32 `json:"randomizeDelta"`

	// Distance multiplier where iteration count starts ramping up.
	LodIncreaseStartMultiplier float32 `json:"lodIncreaseStartMultiplier"`

	// If positive, smoothing and movement are normalized to this frame rate
	// using the elapsed frame time. Otherwise they are applied per frame.
	TargetFPS float32 `json:"targetFPS"`

	// Seed for shape randomization. Zero selects a time based seed.
	Seed int64 `json:"seed"`

	// Initial state.
	Shape fractal.Shape `json:"shape"`
	Pose  Pose          `json:"pose"`
}

// DefaultConfig returns the default explorer settings.
func DefaultConfig() Config {
	return Config{
		MinFractalIter:             16,
		MaxFractalIter:             30,
		MaxSpeed:                   0.01,
		SmoothSpeed:                0.03,
		MouseSpeed:                 1,
		RandomizeDelta:             0.1,
		LodIncreaseStartMultiplier: 1,
		Shape:                      fractal.DefaultShape(),
		Pose: Pose{
			Position: mgl32.Vec3{0, 0, 10},
		},
	}
}

// DecodeConfig reads a JSON config from r. Fields missing from the input keep
// their default values.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: could not decode: %s", err)
	}
	return cfg, nil
}

// EncodeConfig writes cfg as indented JSON.
func EncodeConfig(w io.Writer, cfg Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// Validate checks the config for values that would make the distance
// estimator or the LOD computation degenerate. The LOD multiplier is clamped
// into its supported range; the remaining checks reject the config.
func (cfg *Config) Validate() error {
	switch {
	case cfg.MinFractalIter < 0:
		return fmt.Errorf("%w: minFractalIter must not be negative; got %d", ErrInvalidConfig, cfg.MinFractalIter)
	case cfg.MaxFractalIter < cfg.MinFractalIter:
		return fmt.Errorf("%w: maxFractalIter (%d) must not be less than minFractalIter (%d)", ErrInvalidConfig, cfg.MaxFractalIter, cfg.MinFractalIter)
	case cfg.MaxSpeed < 0:
		return fmt.Errorf("%w: maxSpeed must not be negative; got %f", ErrInvalidConfig, cfg.MaxSpeed)
	case cfg.SmoothSpeed <= 0 || cfg.SmoothSpeed > 1:
		return fmt.Errorf("%w: smoothSpeed must be in (0, 1]; got %f", ErrInvalidConfig, cfg.SmoothSpeed)
	case cfg.RandomizeDelta < 0 || cfg.RandomizeDelta > 1:
		return fmt.Errorf("%w: randomizeDelta must be in [0, 1]; got %f", ErrInvalidConfig, cfg.RandomizeDelta)
	case cfg.LodIncreaseStartMultiplier <= 0:
		return fmt.Errorf("%w: lodIncreaseStartMultiplier must be positive; got %f", ErrInvalidConfig, cfg.LodIncreaseStartMultiplier)
	case cfg.Shape.Scale <= 0:
		return fmt.Errorf("%w: shape scale must be positive; got %f", ErrInvalidConfig, cfg.Shape.Scale)
	case cfg.TargetFPS < 0:
		return fmt.Errorf("%w: targetFPS must not be negative; got %f", ErrInvalidConfig, cfg.TargetFPS)
	}

	if clamped := max(minLodMultiplier, min(maxLodMultiplier, cfg.LodIncreaseStartMultiplier)); clamped != cfg.LodIncreaseStartMultiplier {
		logger.Warningf("clamping lodIncreaseStartMultiplier %f to %f", cfg.LodIncreaseStartMultiplier, clamped)
		cfg.LodIncreaseStartMultiplier = clamped
	}

	return nil
}

// Quality returns the quality controller settings.
func (cfg Config) Quality() quality.Config {
	return quality.Config{
		MinIterations:              cfg.MinFractalIter,
		MaxIterations:              cfg.MaxFractalIter,
		MaxSpeed:                   cfg.MaxSpeed,
		LodIncreaseStartMultiplier: cfg.LodIncreaseStartMultiplier,
	}
}
