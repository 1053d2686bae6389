package field

import (
	"math"
	"time"
)

// BlockStats describes the block processed by a worker during the previous
// sampling pass.
type BlockStats struct {
	// The block height in rows.
	BlockH uint32

	// The time for processing this block.
	BlockTime time.Duration
}

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame rows into blocks of variable height and assign them to
	// a pool of workers. Stats from the previous pass, if any, are provided
	// in the same order as the returned assignment.
	Schedule(stats []BlockStats, frameH uint32) []uint32
}

type naiveScheduler struct{}

// NaiveScheduler splits the frame evenly between workers. Any remaining rows
// are assigned to the first worker.
func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

func (naiveScheduler) Schedule(stats []BlockStats, frameH uint32) []uint32 {
	return evenSplit(len(stats), frameH)
}

// The perfect scheduler assumes that the volume of work between two
// subsequent passes is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// PerfectScheduler uses the block times of the previous pass to assign more
// rows to faster workers.
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// The workload for worker w and pass i+1 is estimated as:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(stats []BlockStats, frameH uint32) []uint32 {
	// If this is the first time we schedule, the number of workers changed or
	// we lack timing info, fall back to an even split
	if len(sch.blockAssignment) != len(stats) || !haveTimings(stats) {
		sch.blockAssignment = evenSplit(len(stats), frameH)
		return sch.blockAssignment
	}

	var total float64
	for _, st := range stats {
		total += float64(st.BlockH) / float64(st.BlockTime)
	}

	scaler := float64(frameH) / total
	var scheduledRows uint32
	for idx, st := range stats {
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(float64(st.BlockH)/float64(st.BlockTime)*scaler)))
		scheduledRows += sch.blockAssignment[idx]
	}

	// In case rows don't add up to the frame height append the missing ones
	// to the first worker or take the excess away from the largest blocks
	for scheduledRows < frameH {
		sch.blockAssignment[0]++
		scheduledRows++
	}
	for scheduledRows > frameH {
		largest := 0
		for idx, rows := range sch.blockAssignment {
			if rows > sch.blockAssignment[largest] {
				largest = idx
			}
		}
		sch.blockAssignment[largest]--
		scheduledRows--
	}

	return sch.blockAssignment
}

func haveTimings(stats []BlockStats) bool {
	for _, st := range stats {
		if st.BlockH == 0 || st.BlockTime <= 0 {
			return false
		}
	}
	return len(stats) > 0
}

func evenSplit(workers int, frameH uint32) []uint32 {
	if workers <= 0 {
		return nil
	}
	blockAssignment := make([]uint32, workers)
	rows := frameH / uint32(workers)
	for idx := range blockAssignment {
		blockAssignment[idx] = rows
	}
	blockAssignment[0] += frameH - rows*uint32(workers)
	return blockAssignment
}
