// Package ringlog is an in-process, asynchronous, leveled text logger.
// Producer goroutines format a record and hand it to a bounded
// multi-producer/single-consumer ring buffer; a single background
// goroutine drains that ring to disk with size-based rotation and
// day-based rollover. Logging calls never perform disk I/O and are
// best-effort: under sustained overflow, records are silently dropped
// rather than blocking a caller.
package ringlog

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ringlog/ringlog/internal/metrics"
	"github.com/ringlog/ringlog/internal/pipeline"
	"github.com/ringlog/ringlog/internal/sink"
	"github.com/ringlog/ringlog/internal/timecache"
)

var errEmptyDir = fmt.Errorf("Dir must be set")

// Logger is an independent, fully-configured logging pipeline. Construct
// one with New or NewBuilder for embedding in a larger program; use Init
// and the package-level functions for the common single-logger-per-process
// case.
type Logger struct {
	cfg Config

	pipeline *pipeline.Pipeline
	rotator  *sink.Rotator
	clock    *timecache.Cache
	metrics  *metrics.Collector
	sampler  *sampler

	closeOnce sync.Once
	closed    atomic.Bool
	drainDone chan struct{}
}

// New constructs an independent Logger from cfg. The background drainer
// goroutine is started before New returns.
func New(cfg Config) (*Logger, error) {
	cfg = cfg.normalized()
	if cfg.Dir == "" {
		return nil, newLogError(ErrCodeInvalidConfig, "new", "", errEmptyDir)
	}
	if cfg.Prog == "" {
		cfg.Prog = "app"
	}

	m := metrics.NewCollector()
	l := &Logger{
		cfg:       cfg,
		pipeline:  pipeline.New(cfg.CellCount, cfg.CellSize, cfg.MemCap, m),
		rotator:   sink.New(cfg.Dir, cfg.Prog, cfg.MaxFileSize, m),
		clock:     timecache.New(),
		metrics:   m,
		sampler:   newSampler(cfg),
		drainDone: make(chan struct{}),
	}
	go l.drain()
	return l, nil
}

// drain is the single background goroutine that persists drained cells to
// disk. It runs until Close/Flush stops the pipeline and every remaining
// cell has been written.
func (l *Logger) drain() {
	defer close(l.drainDone)
	for {
		c, ok := l.pipeline.WaitForWork()
		if !ok {
			l.rotator.Close()
			return
		}

		year, mon, day := l.clock.Date()
		if err := l.rotator.DecideFile(year, mon, day); err != nil {
			// The cell stays FULL and is retried on the next tick, one
			// second later: a rotation or reopen failure is usually
			// transient (a full disk, a moment where the target directory
			// isn't there yet), and the rotator has already emitted a
			// rate-limited diagnostic for it.
			time.Sleep(time.Second)
			continue
		}
		l.rotator.Write(c.Bytes())

		l.pipeline.FinishDrain(c)
	}
}

// Flush blocks until every record currently queued has been written to
// disk, then returns. The logger remains usable afterward. Flush polls for
// an empty pipeline rather than tearing down the drainer, since a caller
// may keep logging once Flush returns. Returns ErrAlreadyClosed if the
// logger has already been closed.
func (l *Logger) Flush() error {
	if l.closed.Load() {
		return ErrAlreadyClosed
	}
	for !l.pipeline.Drained() {
		time.Sleep(flushPollInterval)
	}
	return nil
}

// Close performs a graceful shutdown: it waits for every already-queued
// record (including a trailing partial cell) to be written, then releases
// the sink's file handle. A Logger must not be used after Close returns.
// Calling Close again returns ErrAlreadyClosed.
func (l *Logger) Close() error {
	wasOpen := false
	l.closeOnce.Do(func() {
		wasOpen = true
		l.pipeline.Stop()
		<-l.drainDone
		l.closed.Store(true)
	})
	if !wasOpen {
		return ErrAlreadyClosed
	}
	return nil
}
