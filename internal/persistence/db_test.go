package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/state"
	"github.com/talgya/streetsim/internal/stats"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func finished(elapsed int, stage state.Stage, cause string) state.State {
	s := state.New()
	s.Screen = state.ScreenPlaying
	s.Stats.ElapsedSeconds = elapsed
	s.Stats.FundingStage = stage
	s.Log("session", "hit the streets")
	if cause != "" {
		s.EndGame(cause)
	}
	return s
}

func TestRecordAndReadRun(t *testing.T) {
	db := openTemp(t)
	r := engine.Run{ID: uuid.New(), Seed: 99, Started: time.Now().Add(-time.Minute)}
	s := finished(321, state.StageSeed, stats.CauseFroze)

	require.NoError(t, db.RecordRun(r, s, time.Now()))

	rec, err := db.Run(r.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(99), rec.Seed)
	assert.Equal(t, OutcomeGameOver, rec.Outcome)
	assert.Equal(t, stats.CauseFroze, rec.Cause)
	assert.Equal(t, 321, rec.Elapsed)
	assert.Equal(t, state.StageSeed.String(), rec.Stage)
	assert.True(t, rec.HasDog)

	events, err := db.RunEvents(r.ID.String())
	require.NoError(t, err)
	require.Len(t, events, len(s.Events))
	assert.Equal(t, "session", events[0].Category)
	assert.Equal(t, "gameover", events[len(events)-1].Category)
}

func TestRecordRunIsIdempotent(t *testing.T) {
	db := openTemp(t)
	r := engine.Run{ID: uuid.New(), Seed: 1, Started: time.Now()}
	s := finished(10, state.StageBootstrap, "")
	require.NoError(t, db.RecordRun(r, s, time.Now()))
	require.NoError(t, db.RecordRun(r, s, time.Now()))

	events, err := db.RunEvents(r.ID.String())
	require.NoError(t, err)
	assert.Len(t, events, len(s.Events))

	counts, err := db.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{OutcomeAbandoned: 1}, counts)
}

func TestUnknownRun(t *testing.T) {
	_, err := openTemp(t).Run(uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBestAndRecentRuns(t *testing.T) {
	db := openTemp(t)
	base := time.Now()
	seed := func(stage state.Stage, elapsed int, endedAgo time.Duration) uuid.UUID {
		r := engine.Run{ID: uuid.New(), Started: base.Add(-time.Hour)}
		require.NoError(t, db.RecordRun(r, finished(elapsed, stage, stats.CauseStarved), base.Add(-endedAgo)))
		return r.ID
	}
	long := seed(state.StageBootstrap, 900, 3*time.Minute)
	funded := seed(state.StageSeriesA, 100, 2*time.Minute)
	latest := seed(state.StagePreSeed, 50, time.Minute)

	best, err := db.BestRuns(2)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, funded.String(), best[0].ID)
	assert.Equal(t, latest.String(), best[1].ID)

	recent, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, latest.String(), recent[0].ID)
	assert.Equal(t, long.String(), recent[2].ID)
}

func TestOutcome(t *testing.T) {
	s := state.New()
	assert.Equal(t, OutcomeAbandoned, Outcome(s))
	s.Screen = state.ScreenPlaying
	s.Win()
	assert.Equal(t, OutcomeVictory, Outcome(s))
}

func TestMeta(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, db.SaveMeta("last_seed", "42"))
	require.NoError(t, db.SaveMeta("last_seed", "43"))
	v, err := db.GetMeta("last_seed")
	require.NoError(t, err)
	assert.Equal(t, "43", v)
}
