package treesort

import "time"

// Stats describes a completed sort run.
type Stats struct {
	Workers     int
	Records     int64
	Merges      int
	MergedBytes int64         // bytes written back by pairwise merges
	Elapsed     time.Duration // from worker release to worker 0 finishing
	Blocks      []Block       // initial partition, before any merge
}

// RecordsPerSecond returns sort throughput for the run.
func (s *Stats) RecordsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Records) / s.Elapsed.Seconds()
}
