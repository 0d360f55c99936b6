package ringlog

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrorCode enumerates the construct-time and lifecycle failures that
// reach a caller as an error. Everything on the producer-facing logging
// path (Trace...Fatal) is best-effort and never returns an error.
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInvalidConfig
	ErrCodeDirUnavailable
	ErrCodeAlreadyClosed
	ErrCodeShutdownTimeout
)

// LogError is a structured error carrying the operation, path, and
// underlying cause, in the spirit of the teacher codebase's FlexLogError.
type LogError struct {
	Code ErrorCode
	Op   string
	Path string
	Err  error
	Time time.Time
}

func (e *LogError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("ringlog: %s failed on %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("ringlog: %s failed: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *LogError) Unwrap() error { return e.Err }

// Is reports equality by error code, so callers can compare against a
// bare &LogError{Code: ErrCodeAlreadyClosed} without matching Path/Err/Time.
func (e *LogError) Is(target error) bool {
	t, ok := target.(*LogError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newLogError(code ErrorCode, op, path string, err error) *LogError {
	return &LogError{Code: code, Op: op, Path: path, Err: errors.WithStack(err), Time: time.Now()}
}

var (
	// ErrAlreadyClosed is returned by Flush/Close on a logger that has
	// already been closed.
	ErrAlreadyClosed = &LogError{Code: ErrCodeAlreadyClosed, Op: "close"}
)
