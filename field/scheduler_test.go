package field

import (
	"testing"
	"time"
)

func TestNaiveScheduler(t *testing.T) {
	type spec struct {
		workers int
		frameH  uint32
		exp     []uint32
	}
	specs := []spec{
		{2, 10, []uint32{5, 5}},
		{3, 10, []uint32{4, 3, 3}},
		{4, 3, []uint32{3, 0, 0, 0}},
		{1, 7, []uint32{7}},
	}

	for index, s := range specs {
		blockAssignment := NaiveScheduler().Schedule(make([]BlockStats, s.workers), s.frameH)
		if len(blockAssignment) != len(s.exp) {
			t.Fatalf("[spec %d] expected %d blocks; got %d", index, len(s.exp), len(blockAssignment))
		}
		for i, rows := range blockAssignment {
			if rows != s.exp[i] {
				t.Fatalf("[spec %d] expected worker %d to be assigned %d rows; got %d", index, i, s.exp[i], rows)
			}
		}
	}
}

func TestPerfectScheduler(t *testing.T) {
	type spec struct {
		frameH   uint32
		rTime1   time.Duration
		rTime2   time.Duration
		expRows1 uint32
		expRows2 uint32
	}
	specs := []spec{
		// First call always behaves like the naive scheduler
		{10, time.Duration(1), time.Duration(5), 5, 5},
		// Second call should use the block times to assign rows
		{10, time.Duration(1), time.Duration(5), 9, 1},
		// This time worker 2 performed much better
		{10, time.Duration(5), time.Duration(1), 7, 3},
	}

	stats := make([]BlockStats, 2)
	sch := PerfectScheduler()
	for index, s := range specs {
		stats[0].BlockTime = s.rTime1
		stats[1].BlockTime = s.rTime2

		blockAssignment := sch.Schedule(stats, s.frameH)

		if blockAssignment[0] != s.expRows1 {
			t.Fatalf("[spec %d] expected worker 0 to be assigned %d rows; got %d", index, s.expRows1, blockAssignment[0])
		}

		if blockAssignment[1] != s.expRows2 {
			t.Fatalf("[spec %d] expected worker 1 to be assigned %d rows; got %d", index, s.expRows2, blockAssignment[1])
		}

		stats[0].BlockH = blockAssignment[0]
		stats[1].BlockH = blockAssignment[1]
	}
}

func TestPerfectSchedulerKeepsRowCount(t *testing.T) {
	stats := []BlockStats{
		{BlockH: 1, BlockTime: time.Hour},
		{BlockH: 1, BlockTime: time.Hour},
		{BlockH: 8, BlockTime: time.Nanosecond},
	}

	// Skip the initial even split
	sch := &perfectScheduler{blockAssignment: make([]uint32, 3)}
	blockAssignment := sch.Schedule(stats, 10)

	var total uint32
	for _, rows := range blockAssignment {
		if rows == 0 {
			t.Fatalf("expected every worker to receive at least one row; got %v", blockAssignment)
		}
		total += rows
	}
	if total != 10 {
		t.Fatalf("expected blocks to cover 10 rows; got %d (%v)", total, blockAssignment)
	}
}
