/*
DESCRIPTION
  stats.go defines Stats, the per-log frame/byte counters accumulated by
  the frame-loop driver, mirroring original_source's parser::Stats.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package blackbox

// Stats accumulates counts of every frame kind successfully decoded,
// the number of frames dropped to corruption or truncation, and the
// total bytes consumed by the frame section.
type Stats struct {
	IntraCount      int
	InterCount      int
	SlowCount       int
	GPSCount        int
	GPSHomeCount    int
	EventCount      int
	CorruptedFrames int
	BytesConsumed   int
}

// TotalFrames returns the number of successfully decoded data frames of
// every kind, not counting events.
func (s Stats) TotalFrames() int {
	return s.IntraCount + s.InterCount + s.SlowCount + s.GPSCount + s.GPSHomeCount
}
