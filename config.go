package ringlog

import "time"

// Cell size bounds. See REDESIGN FLAGS in SPEC_FULL.md: the shipped default
// of 30 MiB sits inside this range, which was widened on its lower bound
// from a distilled-but-inconsistent 90 MiB floor specifically so the
// default needs no silent change.
const (
	MinCellSize     = 16 * 1024 * 1024
	MaxCellSize     = 1024 * 1024 * 1024
	DefaultCellSize = 30 * 1024 * 1024

	// DefaultCellCount is how many cells the ring starts with.
	DefaultCellCount = 3

	// DefaultMemCap is the hard ceiling across every cell in the ring,
	// including cells added by elastic growth.
	DefaultMemCap int64 = 3 * 1024 * 1024 * 1024

	// DefaultMaxFileSize is the size threshold that triggers rotation of
	// the primary log file.
	DefaultMaxFileSize int64 = 1024 * 1024 * 1024

	// MaxRecordLen truncates any formatted record longer than this many
	// bytes before it reaches the pipeline.
	MaxRecordLen = 4096
)

// Config configures a Logger. Use NewBuilder for a fluent construction
// path, or populate a Config and pass it to New directly.
type Config struct {
	// Dir is the directory log files are written to. Created on first use
	// if it doesn't exist; if it can't be created or isn't writable, all
	// output is silently diverted to /dev/null.
	Dir string

	// Prog names the program in the log file name:
	// "<Prog>.<YYYYMMDD>.<pid>.log".
	Prog string

	// Level is the minimum severity that gets enqueued; records less
	// severe than Level (numerically larger) are dropped by the level
	// check before formatting. FATAL is always enqueued regardless.
	Level int

	// CellSize is the capacity of each ring cell in bytes, clamped to
	// [MinCellSize, MaxCellSize]. Zero selects DefaultCellSize.
	CellSize int

	// CellCount is how many cells the ring starts with. Zero selects
	// DefaultCellCount.
	CellCount int

	// MemCap is the hard ceiling, in bytes, across all cells including
	// growth. Zero selects DefaultMemCap.
	MemCap int64

	// MaxFileSize is the rotation threshold in bytes. Zero selects
	// DefaultMaxFileSize.
	MaxFileSize int64

	// Filters are evaluated, in order, before a record is formatted; any
	// filter returning false drops the record. Optional.
	Filters []FilterFunc

	// SamplingStrategy and SamplingRate configure optional volume
	// sampling, evaluated after Filters. SamplingNone (the zero value)
	// logs every record that survives filtering.
	SamplingStrategy SamplingStrategy
	SamplingRate     float64

	// SampleKeyFunc is consulted by SamplingConsistent to derive the
	// stable key a record is hashed on. Required when SamplingStrategy is
	// SamplingConsistent; ignored otherwise.
	SampleKeyFunc func(level int, msg string) string
}

// DefaultConfig returns a Config with every optional field at its default.
// Dir and Prog are still the caller's responsibility to set.
func DefaultConfig() Config {
	return Config{
		Level:       TRACE,
		CellSize:    DefaultCellSize,
		CellCount:   DefaultCellCount,
		MemCap:      DefaultMemCap,
		MaxFileSize: DefaultMaxFileSize,
	}
}

func (c Config) normalized() Config {
	if c.CellSize == 0 {
		c.CellSize = DefaultCellSize
	}
	c.CellSize = clampCellSize(c.CellSize)
	if c.CellCount == 0 {
		c.CellCount = DefaultCellCount
	}
	if c.MemCap == 0 {
		c.MemCap = DefaultMemCap
	}
	if c.MaxFileSize == 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.Level == 0 {
		c.Level = TRACE
	} else {
		c.Level = clampLevel(c.Level)
	}
	return c
}

func clampCellSize(n int) int {
	if n < MinCellSize {
		return MinCellSize
	}
	if n > MaxCellSize {
		return MaxCellSize
	}
	return n
}

// flushPollInterval is unused by the pipeline itself (whose drainer blocks
// on a condition variable) but is kept as the polling granularity for
// Logger.Flush's wait-for-drain loop.
const flushPollInterval = 5 * time.Millisecond
