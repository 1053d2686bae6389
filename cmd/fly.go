package cmd

import (
	"context"
	"errors"

	"github.com/ncruces/zenity"
	"github.com/urfave/cli"

	"github.com/achilleasa/kifs-explorer/asset"
	"github.com/achilleasa/kifs-explorer/renderer"
	"github.com/achilleasa/kifs-explorer/renderer/interactive"
	"github.com/achilleasa/kifs-explorer/scene"
)

// Explore the fractal in an interactive window.
func Fly(ctx *cli.Context) error {
	setupLogging(ctx)

	var configPath string
	if ctx.Bool("pick-config") {
		var err error
		if configPath, err = pickConfigFile(); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	ctrl, err := scene.NewController(cfg)
	if err != nil {
		return err
	}

	opts := renderer.Options{
		FrameW: uint32(ctx.Int("width")),
		FrameH: uint32(ctx.Int("height")),
		Title:  "kifs-explorer",
	}

	// Optionally mirror frames to websocket clients
	if addr := ctx.String("mirror"); addr != "" {
		mirrorCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// The window drives the controller; mirror clients only watch.
		srv := renderer.NewStreamServer(renderer.StreamOptions{
			OriginPatterns: ctx.StringSlice("origin"),
			IgnoreInput:    true,
		})
		go func() {
			if err := srv.ListenAndServe(mirrorCtx, addr); err != nil && !errors.Is(err, renderer.ErrServerClosed) {
				logger.Errorf("mirror server failed: %s", err)
			}
		}()
		opts.Mirrors = append(opts.Mirrors, renderer.BackendFunc(func(params scene.RenderParams) error {
			// Ignore mirror shutdown while the window is still open
			if err := srv.Publish(params); err != nil && !errors.Is(err, renderer.ErrServerClosed) {
				return err
			}
			return nil
		}))
	}

	r, err := interactive.NewInteractive(ctrl, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Notice("WASD to move, mouse to look, R to randomize, Esc to release the cursor and quit")
	err = r.Render()
	displayFrameStats(r.Stats())
	if err != nil {
		return err
	}

	if out := ctx.String("save-config"); out != "" {
		cfg.Pose = ctrl.Pose()
		cfg.Shape = ctrl.Shape()
		if err = asset.SaveConfig(out, cfg); err != nil {
			return err
		}
		logger.Noticef("saved current pose and shape to %s", out)
	}

	return nil
}

// Open a native file dialog for selecting a config file. An empty path is
// returned if the dialog was cancelled.
func pickConfigFile() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Open explorer config"),
		zenity.FileFilters{{
			Name:     "Explorer config",
			Patterns: []string{"*.json"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			logger.Notice("config selection cancelled; using defaults")
			return "", nil
		}
		return "", err
	}
	return path, nil
}
