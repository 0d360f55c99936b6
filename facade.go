package ringlog

import (
	"os"
	"sync"
)

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
	defaultErr    error
	defaultCfg    = DefaultConfig()
	initDone      bool
	initMu        sync.Mutex
)

// SetCellSize overrides the ring's per-cell capacity for the process-wide
// singleton constructed by Init. It clamps to [MinCellSize, MaxCellSize]
// and must be called before the first Init; the package-level log calls
// do nothing until Init has run. Calls after Init are no-ops, matching
// the original library's "must be called before first log" contract.
func SetCellSize(bytes int) {
	initMu.Lock()
	defer initMu.Unlock()
	if initDone {
		return
	}
	defaultCfg.CellSize = clampCellSize(bytes)
}

// Init creates dir if it doesn't exist, sets the minimum severity level,
// and lazily constructs the process-wide singleton Logger used by the
// package-level Trace...Fatal functions. Init is idempotent: a second call
// is a no-op that returns nil.
func Init(dir, prog string, level int) error {
	initMu.Lock()
	defer initMu.Unlock()
	if initDone {
		return nil
	}
	initDone = true

	// A directory that cannot be created is not reported here: the sink
	// diverts output to /dev/null when it finds the directory unusable.
	_ = os.MkdirAll(dir, 0777)

	cfg := defaultCfg
	cfg.Dir = dir
	cfg.Prog = prog
	cfg.Level = clampLevel(level)

	defaultOnce.Do(func() {
		defaultLogger, defaultErr = New(cfg)
	})
	return defaultErr
}

func defaultLoggerOrNil() *Logger {
	initMu.Lock()
	defer initMu.Unlock()
	return defaultLogger
}

// These call l.log directly rather than going through the Logger's own
// Fatal/.../Trace methods: those methods sit at the exact stack depth
// above log that this function sits at above l.log, so calling log
// directly keeps callerInfo's recorded file:line pointing at the user's
// call site instead of one frame short, into this file.

// Fatal logs at FATAL severity on the process-wide singleton. A no-op if
// Init was never called.
func Fatal(format string, args ...interface{}) {
	if l := defaultLoggerOrNil(); l != nil {
		l.log(FATAL, format, args...)
	}
}

// Error logs at ERROR severity on the process-wide singleton.
func Error(format string, args ...interface{}) {
	if l := defaultLoggerOrNil(); l != nil {
		l.log(ERROR, format, args...)
	}
}

// Warn logs at WARN severity on the process-wide singleton.
func Warn(format string, args ...interface{}) {
	if l := defaultLoggerOrNil(); l != nil {
		l.log(WARN, format, args...)
	}
}

// Info logs at INFO severity on the process-wide singleton.
func Info(format string, args ...interface{}) {
	if l := defaultLoggerOrNil(); l != nil {
		l.log(INFO, format, args...)
	}
}

// Normal is an alias for Info on the process-wide singleton.
func Normal(format string, args ...interface{}) {
	if l := defaultLoggerOrNil(); l != nil {
		l.log(INFO, format, args...)
	}
}

// Debug logs at DEBUG severity on the process-wide singleton.
func Debug(format string, args ...interface{}) {
	if l := defaultLoggerOrNil(); l != nil {
		l.log(DEBUG, format, args...)
	}
}

// Trace logs at TRACE severity on the process-wide singleton.
func Trace(format string, args ...interface{}) {
	if l := defaultLoggerOrNil(); l != nil {
		l.log(TRACE, format, args...)
	}
}

// Flush flushes the process-wide singleton. A no-op if Init was never
// called.
func Flush() error {
	if l := defaultLoggerOrNil(); l != nil {
		return l.Flush()
	}
	return nil
}

// Close closes the process-wide singleton. A no-op if Init was never
// called.
func Close() error {
	if l := defaultLoggerOrNil(); l != nil {
		return l.Close()
	}
	return nil
}
