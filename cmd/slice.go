package cmd

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/achilleasa/kifs-explorer/field"
	"github.com/achilleasa/kifs-explorer/types"
)

// Export a cross-section of the distance field as a PNG image.
func Slice(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx, "")
	if err != nil {
		return err
	}

	center := types.Vec3(cfg.Pose.Position)
	if ctx.IsSet("center") {
		if center, err = parseVec3(ctx.String("center")); err != nil {
			return err
		}
	}

	size := ctx.Int("size")
	extent := float32(ctx.Float64("extent"))
	iterations := ctx.Int("iter")
	if iterations <= 0 {
		iterations = cfg.MaxFractalIter
	}

	plane := field.Plane{
		Center: center,
		U:      types.XYZ(extent, 0, 0),
		V:      types.XYZ(0, extent, 0),
		W:      size,
		H:      size,
	}

	scheduler := field.NaiveScheduler()
	if ctx.Bool("balance") {
		scheduler = field.PerfectScheduler()
	}
	sampler := field.NewSampler(ctx.Int("workers"), scheduler)

	// Each pass feeds its block timings to the scheduler of the next one.
	passes := max(ctx.Int("passes"), 1)
	var grid *field.Grid
	for pass := 1; pass <= passes; pass++ {
		start := time.Now()
		if grid, err = sampler.Sample(context.Background(), plane, iterations, cfg.Shape); err != nil {
			return err
		}
		logger.Infof("pass %d/%d completed in %s", pass, passes, time.Since(start))
	}
	lo, hi := grid.MinMax()
	logger.Noticef("sampled %dx%d slice around %v in %d pass(es) (distance range [%.4f, %.4f])", size, size, center, passes, lo, hi)

	// Stats reflect the last pass only.
	table, buf := newTable("Worker", "Rows", "Time")
	for idx, st := range sampler.Stats() {
		table.Append([]string{fmt.Sprintf("%d", idx), fmt.Sprintf("%d", st.BlockH), st.BlockTime.String()})
	}
	table.Render()
	logger.Infof("worker statistics\n%s", buf.String())

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, grid.Image()); err != nil {
		return fmt.Errorf("error encoding png file: %s", err)
	}
	logger.Noticef("wrote slice to %s", out)
	return nil
}
