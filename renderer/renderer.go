package renderer

import "github.com/achilleasa/kifs-explorer/scene"

type Renderer interface {
	// Render frames until the renderer is closed.
	Render() error

	// Shutdown renderer and release any attached resources.
	Close()

	// Get render statistics.
	Stats() FrameStats
}

// A Backend receives the render parameters for every frame produced by a
// scene controller.
type Backend interface {
	Publish(params scene.RenderParams) error
}

// BackendFunc adapts a plain function to the Backend interface.
type BackendFunc func(params scene.RenderParams) error

func (f BackendFunc) Publish(params scene.RenderParams) error {
	return f(params)
}

// Multi returns a Backend that publishes to each of the supplied backends in
// turn and stops at the first error.
func Multi(backends ...Backend) Backend {
	return BackendFunc(func(params scene.RenderParams) error {
		for _, b := range backends {
			if err := b.Publish(params); err != nil {
				return err
			}
		}
		return nil
	})
}
