// Package interactive provides windowed frontends that drive a scene
// controller from keyboard and mouse input and ray-march the fractal on the
// GPU. The default build uses GLFW and OpenGL 2.1; building with the ebiten
// tag switches to an Ebitengine frontend with an equivalent Kage shader.
package interactive

import (
	"github.com/achilleasa/kifs-explorer/log"
	"github.com/achilleasa/kifs-explorer/renderer"
	"github.com/achilleasa/kifs-explorer/scene"
)

var logger = log.New("interactive")

// Publish the frame to any mirrors attached to the renderer options.
func publishMirrors(opts renderer.Options, params scene.RenderParams) error {
	if len(opts.Mirrors) == 0 {
		return nil
	}
	return renderer.Multi(opts.Mirrors...).Publish(params)
}
