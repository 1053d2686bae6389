package renderer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/achilleasa/kifs-explorer/scene"
)

func TestRunHeadlessTickBudget(t *testing.T) {
	var calls int
	stats, err := RunHeadless(context.Background(), HeadlessOptions{Rate: 1000, Ticks: 5}, func(dt time.Duration) (scene.RenderParams, error) {
		calls++
		if dt <= 0 {
			t.Errorf("expected positive dt; got %s", dt)
		}
		return scene.RenderParams{FractalIter: 20}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 5 || stats.Frames != 5 {
		t.Fatalf("expected 5 ticks; got %d calls and %d recorded frames", calls, stats.Frames)
	}
	if stats.Iterations[20] != 5 {
		t.Fatalf("expected all frames to be recorded with 20 iterations; got %v", stats.Iterations)
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, err := RunHeadless(ctx, HeadlessOptions{Rate: 1000}, func(time.Duration) (scene.RenderParams, error) {
		cancel()
		return scene.RenderParams{}, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
}

func TestRunHeadlessErrors(t *testing.T) {
	if _, err := RunHeadless(context.Background(), HeadlessOptions{}, nil); err != ErrInvalidRate {
		t.Fatalf("expected ErrInvalidRate; got %v", err)
	}

	expErr := errors.New("publish failed")
	_, err := RunHeadless(context.Background(), HeadlessOptions{Rate: 1000}, func(time.Duration) (scene.RenderParams, error) {
		return scene.RenderParams{}, expErr
	})
	if err != expErr {
		t.Fatalf("expected tick error to be propagated; got %v", err)
	}
}

func TestControllerTick(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.Seed = 1
	ctrl, err := scene.NewController(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var published []scene.RenderParams
	backend := BackendFunc(func(params scene.RenderParams) error {
		published = append(published, params)
		return nil
	})
	src := func() scene.Input { return scene.Input{Forward: true, Viewport: [2]int{320, 200}} }

	_, err = RunHeadless(context.Background(), HeadlessOptions{Rate: 1000, Ticks: 3}, ControllerTick(ctrl, src, Multi(backend, backend)))
	if err != nil {
		t.Fatal(err)
	}

	if len(published) != 6 {
		t.Fatalf("expected each frame to be published to both backends; got %d", len(published))
	}
	last := published[len(published)-1]
	if last.Frame != 3 || last.Resolution != [2]int{320, 200} {
		t.Fatalf("unexpected final frame %+v", last)
	}
	if z := ctrl.Pose().Position[2]; z >= cfg.Pose.Position[2] {
		t.Fatalf("expected camera to move forward; got z = %f", z)
	}
}
