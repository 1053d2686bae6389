package renderer

import "github.com/achilleasa/kifs-explorer/scene"

// Coefficient for converting cursor deltas in pixels to mouse axis values.
const DefaultMouseSensitivity float32 = 0.1

// DeviceState is the raw keyboard and cursor state polled from a window.
type DeviceState struct {
	CursorX, CursorY float64

	Left, Right, Forward, Backward bool

	// Held state of the randomize key.
	Randomize bool

	Viewport [2]int
}

// InputTracker converts successive device state snapshots into per-frame
// controller input. Cursor positions become axis deltas and the randomize key
// is reported only on the frame it goes down.
type InputTracker struct {
	Sensitivity float32

	haveCursor    bool
	lastX, lastY  float64
	randomizeDown bool
}

// NewInputTracker creates a tracker using the default mouse sensitivity.
func NewInputTracker() *InputTracker {
	return &InputTracker{Sensitivity: DefaultMouseSensitivity}
}

// Reset forgets the last cursor position so the next sample yields no mouse
// movement. Call it whenever the cursor is captured or released.
func (t *InputTracker) Reset() {
	t.haveCursor = false
}

// Next returns the controller input for the supplied device state.
func (t *InputTracker) Next(state DeviceState) scene.Input {
	in := scene.Input{
		Left:     state.Left,
		Right:    state.Right,
		Forward:  state.Forward,
		Backward: state.Backward,
		Viewport: state.Viewport,
	}

	if t.haveCursor {
		// Screen y grows downwards while the mouse axis grows upwards.
		in.MouseX = float32(state.CursorX-t.lastX) * t.Sensitivity
		in.MouseY = -float32(state.CursorY-t.lastY) * t.Sensitivity
	}
	t.lastX, t.lastY = state.CursorX, state.CursorY
	t.haveCursor = true

	in.Randomize = state.Randomize && !t.randomizeDown
	t.randomizeDown = state.Randomize

	return in
}
