//go:build ebiten

package interactive

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/achilleasa/kifs-explorer/renderer"
	"github.com/achilleasa/kifs-explorer/scene"
)

//go:embed shaders/kifs.kage
var kageShaderSource []byte

// An interactive renderer backed by Ebitengine.
type ebitenRenderer struct {
	ctrl    *scene.Controller
	opts    renderer.Options
	tracker *renderer.InputTracker
	stats   renderer.FrameStats
	shader  *ebiten.Shader

	params  scene.RenderParams
	last    time.Time
	closing bool
	err     error

	// Size of the screen as reported by Layout.
	screenW, screenH int
}

// NewInteractive compiles the Kage shader and prepares the game window. The
// returned renderer ticks ctrl once per game update.
func NewInteractive(ctrl *scene.Controller, opts renderer.Options) (renderer.Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	shader, err := ebiten.NewShader(kageShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile kage shader: %s", err)
	}

	viewport := opts.Viewport()
	ebiten.SetWindowSize(viewport[0], viewport[1])
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return &ebitenRenderer{
		ctrl:    ctrl,
		opts:    opts,
		tracker: renderer.NewInputTracker(),
		shader:  shader,
		params:  ctrl.Params(),
		screenW: viewport[0],
		screenH: viewport[1],
	}, nil
}

// Render runs the game loop until the window is closed.
func (r *ebitenRenderer) Render() error {
	r.captureCursor(true)
	r.last = time.Now()

	err := ebiten.RunGame(r)
	if errors.Is(err, ebiten.Termination) {
		return r.err
	}
	return err
}

// Close requests the game loop to terminate.
func (r *ebitenRenderer) Close() {
	r.closing = true
}

// Stats returns the statistics for the frames rendered so far.
func (r *ebitenRenderer) Stats() renderer.FrameStats {
	return r.stats
}

func (r *ebitenRenderer) Update() error {
	if r.closing || r.err != nil {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		// Release the cursor first; a second press quits
		if ebiten.CursorMode() == ebiten.CursorModeCaptured {
			r.captureCursor(false)
		} else {
			return ebiten.Termination
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && ebiten.CursorMode() != ebiten.CursorModeCaptured {
		r.captureCursor(true)
	}

	start := time.Now()
	dt := start.Sub(r.last)
	r.last = start

	state := renderer.DeviceState{
		Left:      ebiten.IsKeyPressed(ebiten.KeyA),
		Right:     ebiten.IsKeyPressed(ebiten.KeyD),
		Forward:   ebiten.IsKeyPressed(ebiten.KeyW),
		Backward:  ebiten.IsKeyPressed(ebiten.KeyS),
		Randomize: ebiten.IsKeyPressed(ebiten.KeyR),
		Viewport:  [2]int{r.screenW, r.screenH},
	}
	if ebiten.CursorMode() == ebiten.CursorModeCaptured {
		x, y := ebiten.CursorPosition()
		state.CursorX, state.CursorY = float64(x), float64(y)
	}

	r.params = r.ctrl.Tick(r.tracker.Next(state), dt)
	if err := publishMirrors(r.opts, r.params); err != nil {
		r.err = err
		return ebiten.Termination
	}

	end := time.Now()
	r.stats.Record(end, end.Sub(start), r.params.FractalIter)
	return nil
}

func (r *ebitenRenderer) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	p := r.params

	opts := &ebiten.DrawRectShaderOptions{}
	opts.Uniforms = map[string]any{
		"CamMat":      p.CamMat[:],
		"Scale":       p.Scale,
		"Ang1":        p.Angle1,
		"Ang2":        p.Angle2,
		"Color":       p.Color[:],
		"Shift":       p.Shift[:],
		"FractalIter": p.FractalIter,
		"Resolution":  []float32{float32(bounds.Dx()), float32(bounds.Dy())},
	}
	screen.DrawRectShader(bounds.Dx(), bounds.Dy(), r.shader, opts)
}

func (r *ebitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.screenW, r.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (r *ebitenRenderer) captureCursor(capture bool) {
	if capture {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	r.tracker.Reset()
	logger.Debugf("cursor captured: %t", capture)
}
