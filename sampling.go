package ringlog

import (
	"crypto/rand"
	"encoding/binary"
	"hash/fnv"
	"sync/atomic"
)

// SamplingStrategy selects how sampler.allow decides whether a record that
// survived filtering is actually logged.
type SamplingStrategy int

const (
	// SamplingNone logs every record. The zero value.
	SamplingNone SamplingStrategy = iota
	// SamplingInterval logs every Nth record, where N = 1/SamplingRate
	// truncated toward zero, and at least 1.
	SamplingInterval
	// SamplingRandom logs each record independently with probability
	// SamplingRate, using a cryptographic random source rather than
	// math/rand for the coin flip.
	SamplingRandom
	// SamplingConsistent hashes a stable key (from Config.SampleKeyFunc)
	// so that all records sharing a key are sampled the same way.
	SamplingConsistent
)

type sampler struct {
	strategy SamplingStrategy
	rate     float64
	keyFunc  func(level int, msg string) string
	counter  uint64
}

func newSampler(cfg Config) *sampler {
	return &sampler{strategy: cfg.SamplingStrategy, rate: cfg.SamplingRate, keyFunc: cfg.SampleKeyFunc}
}

// allow reports whether the record should proceed to formatting and the
// pipeline.
func (s *sampler) allow(level int, msg string) bool {
	switch s.strategy {
	case SamplingNone:
		return true

	case SamplingInterval:
		n := intervalFromRate(s.rate)
		if n <= 1 {
			return true
		}
		c := atomic.AddUint64(&s.counter, 1)
		return c%uint64(n) == 0

	case SamplingRandom:
		return cryptoRandFloat() < s.rate

	case SamplingConsistent:
		if s.keyFunc == nil {
			return true
		}
		h := fnv.New32a()
		h.Write([]byte(s.keyFunc(level, msg)))
		frac := float64(h.Sum32()) / float64(^uint32(0))
		return frac < s.rate

	default:
		return true
	}
}

func intervalFromRate(rate float64) int {
	if rate <= 0 {
		return 1
	}
	n := int(1 / rate)
	if n < 1 {
		n = 1
	}
	return n
}

// cryptoRandFloat returns a uniform float64 in [0,1), sourced from
// crypto/rand rather than math/rand so sampling decisions aren't
// predictable from a seed an attacker could guess — the same reasoning the
// teacher codebase's sampling manager applies.
func cryptoRandFloat() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}
