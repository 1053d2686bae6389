package renderer

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
)

type FrameStats struct {
	// Number of rendered frames.
	Frames uint64

	// Wall-clock time between the first and the last recorded frame.
	WallTime time.Duration

	// Accumulated, fastest and slowest frame time.
	RenderTime   time.Duration
	MinFrameTime time.Duration
	MaxFrameTime time.Duration

	// Number of frames rendered with each fractal iteration count.
	Iterations map[int]uint64

	start time.Time
}

// Record adds a frame that took frameTime to render with the specified
// iteration count. The frame is assumed to have finished at now.
func (s *FrameStats) Record(now time.Time, frameTime time.Duration, iterations int) {
	if s.Frames == 0 {
		s.start = now.Add(-frameTime)
		s.MinFrameTime = frameTime
		s.MaxFrameTime = frameTime
	}
	if s.Iterations == nil {
		s.Iterations = make(map[int]uint64)
	}

	s.Frames++
	s.RenderTime += frameTime
	s.WallTime = now.Sub(s.start)
	s.MinFrameTime = min(s.MinFrameTime, frameTime)
	s.MaxFrameTime = max(s.MaxFrameTime, frameTime)
	s.Iterations[iterations]++
}

// AvgFrameTime returns the mean frame render time.
func (s FrameStats) AvgFrameTime() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.RenderTime / time.Duration(s.Frames)
}

// FPS returns the effective frame rate over the recorded wall time.
func (s FrameStats) FPS() float64 {
	if s.WallTime <= 0 {
		return 0
	}
	return float64(s.Frames) / s.WallTime.Seconds()
}

// Table builds a tabular representation of the frame statistics.
func (s FrameStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Frames", fmt.Sprintf("%d", s.Frames)})
	table.Append([]string{"Wall time", s.WallTime.String()})
	table.Append([]string{"FPS", fmt.Sprintf("%3.1f", s.FPS())})
	table.Append([]string{"Avg frame time", s.AvgFrameTime().String()})
	table.Append([]string{"Min frame time", s.MinFrameTime.String()})
	table.Append([]string{"Max frame time", s.MaxFrameTime.String()})

	iterations := make([]int, 0, len(s.Iterations))
	for it := range s.Iterations {
		iterations = append(iterations, it)
	}
	sort.Ints(iterations)
	for _, it := range iterations {
		count := s.Iterations[it]
		table.Append([]string{
			fmt.Sprintf("Frames @ %d iterations", it),
			fmt.Sprintf("%d (%02.1f %%)", count, 100*float64(count)/float64(s.Frames)),
		})
	}

	table.Render()
	return buf.String()
}
