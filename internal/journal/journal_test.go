package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/state"
)

func script() []engine.Transition {
	ts := []engine.Transition{{Cmd: &engine.Command{Op: engine.OpStart}}}
	for i := 0; i < 300; i++ {
		ts = append(ts, engine.Transition{Tick: true})
		switch i % 10 {
		case 3:
			ts = append(ts, engine.Transition{Cmd: &engine.Command{Op: engine.OpMove, Dir: 1}})
		case 4:
			ts = append(ts, engine.Transition{Cmd: &engine.Command{Op: engine.OpMoveStop}})
		case 8:
			ts = append(ts, engine.Transition{Cmd: &engine.Command{Op: engine.OpInteract}})
		}
	}
	return ts
}

// record plays the script the way a session would and journals it.
func record(t *testing.T, dir string, h Header) (string, state.State) {
	t.Helper()
	w, err := Create(dir, h)
	require.NoError(t, err)
	env := engine.NewEnv(h.Rules, h.Seed)
	s := state.New()
	for _, tr := range script() {
		s = tr.Apply(s, env)
		require.NoError(t, w.Record(tr, s))
	}
	require.NoError(t, w.Close())
	return w.Path(), s
}

func header() Header {
	return Header{
		SessionID: uuid.New(),
		Seed:      2024,
		Rules:     engine.DefaultRules(),
		Started:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRoundTripAndReplay(t *testing.T) {
	dir := t.TempDir()
	h := header()
	path, final := record(t, dir, h)
	assert.Equal(t, FileName(h.SessionID), filepath.Base(path))

	gotH, entries, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, h.SessionID, gotH.SessionID)
	assert.Equal(t, h.Seed, gotH.Seed)
	assert.Equal(t, h.Rules, gotH.Rules)
	assert.Equal(t, Version, gotH.Version)
	assert.True(t, h.Started.Equal(gotH.Started))
	require.Len(t, entries, len(script()))

	replayed, err := Replay(gotH, entries)
	require.NoError(t, err)
	assert.Equal(t, Digest(final), Digest(replayed))
}

func TestReplayDetectsTampering(t *testing.T) {
	h := header()
	path, _ := record(t, t.TempDir(), h)
	_, entries, err := Read(path)
	require.NoError(t, err)

	entries[10].Digest = "0000000000000000"
	_, err = Replay(h, entries)
	assert.ErrorContains(t, err, "digest mismatch at seq 11")

	_, entries, _ = Read(path)
	entries[5].Seq = 99
	_, err = Replay(h, entries)
	assert.ErrorContains(t, err, "out of order")
}

func TestReplayWithDifferentSeedDiverges(t *testing.T) {
	h := header()
	path, _ := record(t, t.TempDir(), h)
	_, entries, err := Read(path)
	require.NoError(t, err)
	h.Seed++
	_, err = Replay(h, entries)
	assert.Error(t, err)
}

func TestRecordAfterCloseFails(t *testing.T) {
	w, err := Create(t.TempDir(), header())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Error(t, w.Record(engine.Transition{Tick: true}, state.New()))
	assert.NoError(t, w.Close())
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session-bad.jsonl.zst")
	require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0o644))
	_, _, err := Read(path)
	assert.Error(t, err)

	_, _, err = Read(filepath.Join(t.TempDir(), "missing.jsonl.zst"))
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	a, b := header(), header()
	record(t, dir, a)
	record(t, dir, b)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	files, err := List(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDigestSensitive(t *testing.T) {
	s := state.New()
	d := Digest(s)
	s.Stats.Money++
	assert.NotEqual(t, d, Digest(s))
}
