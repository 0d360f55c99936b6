package ringlog

import "fmt"

// Builder provides a fluent interface for constructing a Logger, in the
// style of the teacher codebase's own Builder.
type Builder struct {
	cfg Config
	err error
}

// NewBuilder returns a Builder seeded with DefaultConfig.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// WithDir sets the log directory.
func (b *Builder) WithDir(dir string) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.Dir = dir
	return b
}

// WithProgramName sets the program name embedded in log file names.
func (b *Builder) WithProgramName(prog string) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.Prog = prog
	return b
}

// WithLevel sets the minimum enqueued severity.
func (b *Builder) WithLevel(level int) *Builder {
	if b.err != nil {
		return b
	}
	if level < FATAL || level > TRACE {
		b.err = newLogError(ErrCodeInvalidConfig, "config", "", errInvalidLevel(level))
		return b
	}
	b.cfg.Level = level
	return b
}

// WithCellSize sets the ring's per-cell capacity in bytes, clamped to
// [MinCellSize, MaxCellSize].
func (b *Builder) WithCellSize(bytes int) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.CellSize = clampCellSize(bytes)
	return b
}

// WithCellCount sets how many cells the ring starts with.
func (b *Builder) WithCellCount(n int) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.CellCount = n
	return b
}

// WithMemCap sets the hard ceiling across every cell including growth.
func (b *Builder) WithMemCap(bytes int64) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.MemCap = bytes
	return b
}

// WithRotation sets the size threshold that triggers file rotation.
func (b *Builder) WithRotation(maxFileSize int64) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.MaxFileSize = maxFileSize
	return b
}

// WithFilter appends a filter to the chain evaluated before formatting.
func (b *Builder) WithFilter(f FilterFunc) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.Filters = append(b.cfg.Filters, f)
	return b
}

// WithSampling configures the sampling strategy and rate.
func (b *Builder) WithSampling(strategy SamplingStrategy, rate float64) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.SamplingStrategy = strategy
	b.cfg.SamplingRate = rate
	return b
}

// WithSampleKeyFunc supplies the key function SamplingConsistent hashes
// records on.
func (b *Builder) WithSampleKeyFunc(fn func(level int, msg string) string) *Builder {
	if b.err != nil {
		return b
	}
	b.cfg.SampleKeyFunc = fn
	return b
}

// Build constructs the Logger, or returns the first configuration error
// encountered by any With* call.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cfg)
}

func errInvalidLevel(level int) error {
	return fmt.Errorf("invalid level %d (must be between FATAL and TRACE)", level)
}
