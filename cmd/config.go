package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/kifs-explorer/asset"
	"github.com/achilleasa/kifs-explorer/renderer"
	"github.com/achilleasa/kifs-explorer/scene"
	"github.com/achilleasa/kifs-explorer/types"
)

// Load the controller config from the --config flag (or path, if not empty),
// apply any command line overrides and validate the result.
func loadConfig(ctx *cli.Context, path string) (scene.Config, error) {
	if path == "" {
		path = ctx.GlobalString("config")
	}

	cfg := scene.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = asset.LoadConfig(context.Background(), path); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet("min-iter") {
		cfg.MinFractalIter = ctx.GlobalInt("min-iter")
	}
	if ctx.GlobalIsSet("max-iter") {
		cfg.MaxFractalIter = ctx.GlobalInt("max-iter")
	}
	if ctx.GlobalIsSet("max-speed") {
		cfg.MaxSpeed = float32(ctx.GlobalFloat64("max-speed"))
	}
	if ctx.GlobalIsSet("target-fps") {
		cfg.TargetFPS = float32(ctx.GlobalFloat64("target-fps"))
	}
	if ctx.GlobalIsSet("seed") {
		cfg.Seed = ctx.GlobalInt64("seed")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logger.Debugf("using config: %+v", cfg)
	return cfg, nil
}

// Parse a vector in "x,y,z" format.
func parseVec3(val string) (types.Vec3, error) {
	var v types.Vec3
	parts := strings.Split(val, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("invalid vector %q; expected x,y,z", val)
	}
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return v, fmt.Errorf("invalid vector %q: %s", val, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func displayFrameStats(stats renderer.FrameStats) {
	if stats.Frames == 0 {
		return
	}
	logger.Noticef("frame statistics\n%s", stats.Table())
}

func newTable(header ...string) (*tablewriter.Table, *bytes.Buffer) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader(header)
	return table, &buf
}
