package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededIsDeterministic(t *testing.T) {
	a, b := NewSeeded(99), NewSeeded(99)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float(), b.Float())
	}
	assert.Equal(t, int64(99), a.Seed())
}

func TestZeroSeedDrawsOne(t *testing.T) {
	s := NewSeeded(0)
	assert.NotZero(t, s.Seed())
	assert.Positive(t, CryptoSeed())
}

func TestSequence(t *testing.T) {
	q := NewSequence(0.1, 0.7)
	assert.Equal(t, 0.1, q.Float())
	assert.Equal(t, 0.7, q.Float())
	assert.Equal(t, 0.7, q.Float(), "repeats the last value")
	assert.Zero(t, NewSequence().Float())
}

func TestIntRangeIsInclusive(t *testing.T) {
	assert.Equal(t, 3, IntRange(Constant(0), 3, 7))
	assert.Equal(t, 7, IntRange(Constant(0.9999999), 3, 7))
	assert.Equal(t, 5, IntRange(Constant(0.5), 3, 7))
	assert.Equal(t, 4, IntRange(Constant(0.5), 4, 4))
	assert.Equal(t, 4, IntRange(Constant(0.5), 4, 1), "inverted range collapses to lo")

	src := NewSeeded(3)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		n := IntRange(src, 1, 6)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 6)
		seen[n] = true
	}
	assert.Len(t, seen, 6)
}

func TestChanceAndPick(t *testing.T) {
	assert.True(t, Chance(Constant(0.2), 0.3))
	assert.False(t, Chance(Constant(0.3), 0.3))
	assert.False(t, Chance(Constant(0), 0), "zero probability never fires")
	assert.Equal(t, 2, Pick(Constant(0.99), 3))
	assert.Equal(t, 0, Pick(Constant(0), 3))
}

func TestJitter(t *testing.T) {
	assert.Equal(t, 8.0, Jitter(Constant(0), 10, 2))
	assert.Equal(t, 10.0, Jitter(Constant(0.5), 10, 2))
}
