package ringlog

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/ringlog/ringlog/internal/bufpool"
	"github.com/ringlog/ringlog/internal/tid"
)

// callerSkip is the number of stack frames between runtime.Caller and the
// original application call site: callerInfo -> formatRecord -> log ->
// (the frame that called log) -> caller. log is called both by the
// Logger's own level methods (Info, Warn, ...) and directly by the
// package-level singleton functions in facade.go, which sit at the same
// stack depth above log that the level methods do, so no separate skip
// accounting is needed for the two call paths.
const callerSkip = 4

// log is the common path every level method, its aliases, and the
// package-level singleton functions all funnel through directly: level
// gate, filter/sampling hooks, formatting, then handoff to the pipeline. It
// never blocks on I/O and never returns an error.
func (l *Logger) log(level int, format string, args ...interface{}) {
	if level != FATAL && level > l.cfg.Level {
		return
	}

	msg := fmt.Sprintf(format, args...)

	if !l.passesFilters(level, msg) {
		l.metrics.TrackFiltered()
		return
	}
	if !l.sampler.allow(level, msg) {
		l.metrics.TrackSampledOut()
		return
	}

	line := l.formatRecord(level, msg)
	l.pipeline.Append(line)
}

func (l *Logger) formatRecord(level int, msg string) []byte {
	_, millis := l.clock.Observe()
	ts := l.clock.Format()

	file, lineNo, fn := callerInfo()

	buf := bufpool.Get()
	defer bufpool.Put(buf)

	fmt.Fprintf(buf, "[%s][%s.%03d][%d]%s:%d(%s): %s\n",
		levelTag(level), ts, millis, tid.Get(), file, lineNo, fn, msg)

	out := buf.Bytes()
	if len(out) > MaxRecordLen {
		out = out[:MaxRecordLen-1]
		out = append(out, '\n')
	}

	// Copy out of the pooled buffer: the buffer is returned to the pool
	// (and may be reused by another goroutine) before the pipeline gets a
	// chance to copy these bytes into a cell.
	line := make([]byte, len(out))
	copy(line, out)
	return line
}

func callerInfo() (file string, line int, fn string) {
	pc, f, ln, ok := runtime.Caller(callerSkip)
	if !ok {
		return "???", 0, "???"
	}
	file = filepath.Base(f)
	line = ln
	fn = "???"
	if details := runtime.FuncForPC(pc); details != nil {
		fn = filepath.Base(details.Name())
	}
	return file, line, fn
}
