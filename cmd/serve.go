package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/achilleasa/kifs-explorer/renderer"
	"github.com/achilleasa/kifs-explorer/scene"
)

// Drive the scene controller from websocket clients.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx, "")
	if err != nil {
		return err
	}

	ctrl, err := scene.NewController(cfg)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := renderer.NewStreamServer(renderer.StreamOptions{OriginPatterns: ctx.StringSlice("origin")})
	opts := renderer.HeadlessOptions{
		Rate:  ctx.Int("hz"),
		Ticks: uint64(ctx.Int64("ticks")),
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, ctx.String("addr"))
	})
	g.Go(func() error {
		defer srv.Close()

		stats, err := renderer.RunHeadless(gctx, opts, renderer.ControllerTick(ctrl, srv.Input, srv))
		displayFrameStats(stats)
		if errors.Is(err, context.Canceled) || errors.Is(err, renderer.ErrServerClosed) {
			return nil
		}
		return err
	})

	if err = g.Wait(); err != nil {
		return err
	}

	logger.Noticef("final pose: %v", ctrl.Pose())
	return nil
}
