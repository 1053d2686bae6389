package field

import (
	"image"
	"image/color"
	"math"
)

// Color used for samples on or inside the surface.
var insideColor = color.NRGBA{R: 255, G: 140, B: 0, A: 255}

// Grid holds distance samples in row-major order.
type Grid struct {
	W, H int
	Data []float32
}

func newGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Data: make([]float32, w*h)}
}

// At returns the sample at pixel (x, y).
func (g *Grid) At(x, y int) float32 {
	return g.Data[y*g.W+x]
}

// MinMax returns the smallest and largest sample.
func (g *Grid) MinMax() (float32, float32) {
	if len(g.Data) == 0 {
		return 0, 0
	}
	lo, hi := g.Data[0], g.Data[0]
	for _, d := range g.Data[1:] {
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}

// Image maps the samples to an image. Points on or inside the surface are
// painted in a solid color while positive distances map to a logarithmic
// grayscale ramp that is brightest next to the surface.
func (g *Grid) Image() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
	_, hi := g.MinMax()
	norm := math.Log1p(math.Max(float64(hi), 0))

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			d := g.At(x, y)
			if d <= 0 {
				img.SetNRGBA(x, y, insideColor)
				continue
			}

			v := 1.0
			if norm > 0 {
				v = 1 - math.Log1p(float64(d))/norm
			}
			c := uint8(math.Round(255 * v))
			img.SetNRGBA(x, y, color.NRGBA{R: c, G: c, B: c, A: 255})
		}
	}
	return img
}
