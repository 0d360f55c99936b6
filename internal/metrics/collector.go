// Package metrics collects atomic counters for the pipeline: records
// accepted, dropped, rotated, bytes written, and cell growth.
package metrics

import "sync/atomic"

// Collector accumulates counters for a single logger instance. All fields
// are updated with atomic operations so producers and the drainer never
// contend on a mutex just to bump a counter.
type Collector struct {
	accepted      uint64
	dropped       uint64
	filtered      uint64
	sampledOut    uint64
	rotations     uint64
	bytesWritten  uint64
	cellsGrown    uint64
	shortWrites   uint64
}

// NewCollector returns a zeroed Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Snapshot is a point-in-time, read-only view of the counters.
type Snapshot struct {
	Accepted     uint64
	Dropped      uint64
	Filtered     uint64
	SampledOut   uint64
	Rotations    uint64
	BytesWritten uint64
	CellsGrown   uint64
	ShortWrites  uint64
	CellCount    int
}

// TrackAccepted records a record that entered the pipeline.
func (c *Collector) TrackAccepted() { atomic.AddUint64(&c.accepted, 1) }

// TrackDropped records a record lost to backoff or the memory ceiling.
func (c *Collector) TrackDropped() { atomic.AddUint64(&c.dropped, 1) }

// TrackFiltered records a record rejected by a filter hook before reaching
// the pipeline.
func (c *Collector) TrackFiltered() { atomic.AddUint64(&c.filtered, 1) }

// TrackSampledOut records a record skipped by the sampling policy.
func (c *Collector) TrackSampledOut() { atomic.AddUint64(&c.sampledOut, 1) }

// TrackRotation records a completed size-based rotation. Day rollovers are
// not counted.
func (c *Collector) TrackRotation() { atomic.AddUint64(&c.rotations, 1) }

// TrackBytesWritten adds n bytes to the running total written to disk.
func (c *Collector) TrackBytesWritten(n int) { atomic.AddUint64(&c.bytesWritten, uint64(n)) }

// TrackCellGrowth records the ring inserting a new cell.
func (c *Collector) TrackCellGrowth() { atomic.AddUint64(&c.cellsGrown, 1) }

// TrackShortWrite records a write to the sink that wrote fewer bytes than
// requested even after the recovery policy's retries.
func (c *Collector) TrackShortWrite() { atomic.AddUint64(&c.shortWrites, 1) }

// Snapshot returns the current counter values. cellCount is supplied by the
// caller since cell count is owned by the ring, not the collector.
func (c *Collector) Snapshot(cellCount int) Snapshot {
	return Snapshot{
		Accepted:     atomic.LoadUint64(&c.accepted),
		Dropped:      atomic.LoadUint64(&c.dropped),
		Filtered:     atomic.LoadUint64(&c.filtered),
		SampledOut:   atomic.LoadUint64(&c.sampledOut),
		Rotations:    atomic.LoadUint64(&c.rotations),
		BytesWritten: atomic.LoadUint64(&c.bytesWritten),
		CellsGrown:   atomic.LoadUint64(&c.cellsGrown),
		ShortWrites:  atomic.LoadUint64(&c.shortWrites),
		CellCount:    cellCount,
	}
}
