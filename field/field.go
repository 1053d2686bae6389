// Package field samples the fractal distance estimator over planar
// cross-sections. Rows are split into blocks by a BlockScheduler and
// evaluated concurrently by a pool of workers.
package field

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/achilleasa/kifs-explorer/fractal"
	"github.com/achilleasa/kifs-explorer/log"
	"github.com/achilleasa/kifs-explorer/types"
)

var ErrEmptyPlane = errors.New("field: sampling plane has no pixels")

var logger = log.New("field")

// Plane describes a rectangular grid of sample points. Center is the middle
// of the grid while U and V are the half-extent vectors along the grid's rows
// and columns. Row 0 lies at Center+V.
type Plane struct {
	Center types.Vec3
	U, V   types.Vec3

	W, H int
}

// Point returns the world-space sample position for pixel (x, y).
func (p Plane) Point(x, y int) types.Vec3 {
	u := 2*(float32(x)+0.5)/float32(p.W) - 1
	v := 1 - 2*(float32(y)+0.5)/float32(p.H)
	return p.Center.Add(p.U.Mul(u)).Add(p.V.Mul(v))
}

// Sampler evaluates the distance estimator over planes using a fixed pool
// of workers.
type Sampler struct {
	scheduler BlockScheduler
	workers   int
	stats     []BlockStats
}

// NewSampler creates a sampler with the specified number of workers. A
// non-positive worker count selects runtime.NumCPU workers.
func NewSampler(workers int, scheduler BlockScheduler) *Sampler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if scheduler == nil {
		scheduler = NaiveScheduler()
	}
	return &Sampler{
		scheduler: scheduler,
		workers:   workers,
		stats:     make([]BlockStats, workers),
	}
}

// Stats returns the block statistics collected during the last pass.
func (s *Sampler) Stats() []BlockStats {
	return append([]BlockStats(nil), s.stats...)
}

// Sample evaluates the estimator at every plane pixel.
func (s *Sampler) Sample(ctx context.Context, plane Plane, iterations int, shape fractal.Shape) (*Grid, error) {
	if plane.W <= 0 || plane.H <= 0 {
		return nil, ErrEmptyPlane
	}

	grid := newGrid(plane.W, plane.H)
	blockAssignment := s.scheduler.Schedule(s.stats, uint32(plane.H))

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	var blockY uint32
	for idx, blockH := range blockAssignment {
		if blockH == 0 {
			s.stats[idx] = BlockStats{}
			continue
		}

		idx, y0, y1 := idx, int(blockY), int(blockY+blockH)
		blockY += blockH
		g.Go(func() error {
			blockStart := time.Now()
			for y := y0; y < y1; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				row := grid.Data[y*grid.W : (y+1)*grid.W]
				for x := range row {
					row[x] = fractal.Estimate(plane.Point(x, y), iterations, shape)
				}
			}
			s.stats[idx] = BlockStats{BlockH: uint32(y1 - y0), BlockTime: time.Since(blockStart)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debugf("sampled %dx%d plane with %d workers in %s", plane.W, plane.H, s.workers, time.Since(start))
	return grid, nil
}
