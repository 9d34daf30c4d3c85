// Package entropy provides the randomness every stochastic rule draws from.
// Sessions use a seeded source so a run can be replayed from its seed and
// journal; tests use a scripted Sequence to force specific branches.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mrand "math/rand"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float() float64
}

// Seeded is a deterministic Source backed by math/rand.
type Seeded struct {
	seed int64
	rng  *mrand.Rand
}

// NewSeeded creates a deterministic source. A zero seed draws one from crypto/rand.
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = CryptoSeed()
	}
	return &Seeded{seed: seed, rng: mrand.New(mrand.NewSource(seed))}
}

// Seed returns the seed this source was created with.
func (s *Seeded) Seed() int64 { return s.seed }

// Float returns the next value in [0, 1).
func (s *Seeded) Float() float64 { return s.rng.Float64() }

// Sequence replays a fixed list of values, then repeats the last one.
// An empty Sequence always yields 0.
type Sequence struct {
	vals []float64
	pos  int
}

// NewSequence creates a scripted source.
func NewSequence(vals ...float64) *Sequence {
	return &Sequence{vals: vals}
}

// Float returns the next scripted value.
func (q *Sequence) Float() float64 {
	if len(q.vals) == 0 {
		return 0
	}
	if q.pos >= len(q.vals) {
		return q.vals[len(q.vals)-1]
	}
	v := q.vals[q.pos]
	q.pos++
	return v
}

// Constant always yields the same value.
type Constant float64

// Float returns the constant.
func (c Constant) Float() float64 { return float64(c) }

// Chance reports whether a roll lands under p.
func Chance(src Source, p float64) bool {
	return src.Float() < p
}

// IntRange returns an integer in [lo, hi] inclusive.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := int(math.Floor(src.Float() * float64(hi-lo+1)))
	if n > hi-lo {
		n = hi - lo
	}
	return lo + n
}

// Jitter returns base offset by up to ±spread.
func Jitter(src Source, base, spread float64) float64 {
	return base + (src.Float()*2-1)*spread
}

// Pick returns an index in [0, n). n must be positive.
func Pick(src Source, n int) int {
	return IntRange(src, 0, n-1)
}

// CryptoSeed derives a non-zero seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen but return a fixed seed as a safe default.
		return 42
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
