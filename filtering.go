package ringlog

// FilterFunc decides whether a record should continue toward the pipeline.
// It runs on the producer's goroutine before the record is formatted, so a
// cheap filter can save real formatting cost on records that will be
// dropped anyway.
type FilterFunc func(level int, msg string) bool

// passesFilters reports whether every configured filter accepts the
// record. An empty filter list always passes.
func (l *Logger) passesFilters(level int, msg string) bool {
	for _, f := range l.cfg.Filters {
		if f == nil {
			continue
		}
		if !f(level, msg) {
			return false
		}
	}
	return true
}
