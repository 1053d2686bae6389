package renderer

import (
	"context"
	"time"

	"github.com/achilleasa/kifs-explorer/scene"
)

// HeadlessOptions controls the window-less render loop.
type HeadlessOptions struct {
	// Tick rate in Hz.
	Rate int

	// Stop after this many ticks; 0 runs until the context is cancelled.
	Ticks uint64
}

// A TickFunc advances the scene by dt and returns the resulting frame.
type TickFunc func(dt time.Duration) (scene.RenderParams, error)

// ControllerTick returns a TickFunc that feeds the controller with input
// pulled from src and publishes every frame to backend.
func ControllerTick(ctrl *scene.Controller, src func() scene.Input, backend Backend) TickFunc {
	return func(dt time.Duration) (scene.RenderParams, error) {
		params := ctrl.Tick(src(), dt)
		if backend == nil {
			return params, nil
		}
		return params, backend.Publish(params)
	}
}

// RunHeadless invokes tick at a fixed rate until the tick budget is exhausted
// or ctx is cancelled. It returns the collected frame statistics along with
// ctx.Err() if the loop was cancelled.
func RunHeadless(ctx context.Context, opts HeadlessOptions, tick TickFunc) (FrameStats, error) {
	var stats FrameStats
	if opts.Rate <= 0 {
		return stats, ErrInvalidRate
	}

	period := time.Second / time.Duration(opts.Rate)
	if period <= 0 {
		return stats, ErrInvalidRate
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			params, err := tick(dt)
			if err != nil {
				return stats, err
			}

			end := time.Now()
			stats.Record(end, end.Sub(now), params.FractalIter)
			if opts.Ticks > 0 && stats.Frames >= opts.Ticks {
				return stats, nil
			}
		}
	}
}
