package ringlog

import "github.com/ringlog/ringlog/internal/metrics"

// Snapshot is a point-in-time view of a Logger's counters. Safe for
// concurrent use; obtaining one never blocks on the pipeline mutex for
// more than the time it takes to read the current cell count.
type Snapshot = metrics.Snapshot

// Metrics returns the logger's current counters.
func (l *Logger) Metrics() Snapshot {
	return l.metrics.Snapshot(l.pipeline.CellCount())
}
