package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/achilleasa/kifs-explorer/fractal"
	"github.com/achilleasa/kifs-explorer/quality"
	"github.com/achilleasa/kifs-explorer/types"
)

// Display the distance estimate and derived quality settings for a set of
// points along a ray.
func Probe(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx, "")
	if err != nil {
		return err
	}

	from := types.Vec3(cfg.Pose.Position)
	if ctx.IsSet("from") {
		if from, err = parseVec3(ctx.String("from")); err != nil {
			return err
		}
	}

	dir, err := parseVec3(ctx.String("dir"))
	if err != nil {
		return err
	}
	if dir.Len() == 0 {
		return fmt.Errorf("probe direction must be non-zero")
	}
	dir = dir.Normalize()

	steps := ctx.Int("steps")
	step := float32(ctx.Float64("step"))
	qcfg := cfg.Quality()

	table, buf := newTable("Step", "Position", "Distance", "Iterations", "Speed cap")
	for i := 0; i < steps; i++ {
		pos := from.Add(dir.Mul(step * float32(i)))
		state := quality.Evaluate(fractal.Estimate(pos, qcfg.MinIterations, cfg.Shape), qcfg)
		table.Append([]string{
			fmt.Sprintf("%d", i),
			pos.String(),
			fmt.Sprintf("%.4f", state.Distance),
			fmt.Sprintf("%d", state.Iterations),
			fmt.Sprintf("%.6f", state.SpeedCap),
		})
	}
	table.Render()

	logger.Noticef("probe results (shape %v)\n%s", cfg.Shape, buf.String())
	return nil
}
