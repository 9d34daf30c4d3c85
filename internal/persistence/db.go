// Package persistence keeps the run ledger: one row per finished
// play-through plus the event log it ended with.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/state"
)

// Run outcomes.
const (
	OutcomeVictory   = "victory"
	OutcomeGameOver  = "game_over"
	OutcomeAbandoned = "abandoned"
)

// ErrNotFound is returned for an unknown run id.
var ErrNotFound = errors.New("run not found")

// DB wraps a SQLite connection for the run ledger.
type DB struct {
	conn *sqlx.DB
}

// RunRecord is one ledger row.
type RunRecord struct {
	ID        string    `db:"id" json:"id"`
	Seed      int64     `db:"seed" json:"seed"`
	StartedAt time.Time `db:"started_at" json:"started_at"`
	EndedAt   time.Time `db:"ended_at" json:"ended_at"`
	Outcome   string    `db:"outcome" json:"outcome"`
	Cause     string    `db:"cause" json:"cause,omitempty"`
	Elapsed   int       `db:"elapsed" json:"elapsed"`
	Stage     string    `db:"stage" json:"stage"`
	Money     int       `db:"money" json:"money"`
	District  string    `db:"district" json:"district"`
	HasDog    bool      `db:"has_dog" json:"has_dog"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TIMESTAMP NOT NULL,
		ended_at TIMESTAMP NOT NULL,
		outcome TEXT NOT NULL,
		cause TEXT NOT NULL DEFAULT '',
		elapsed INTEGER NOT NULL,
		stage TEXT NOT NULL,
		stage_rank INTEGER NOT NULL,
		money INTEGER NOT NULL,
		district TEXT NOT NULL,
		has_dog INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ledger_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_ended ON runs(ended_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Outcome classifies how a snapshot's run ended.
func Outcome(s state.State) string {
	switch {
	case s.Flags.IsVictory:
		return OutcomeVictory
	case s.Flags.IsGameOver:
		return OutcomeGameOver
	}
	return OutcomeAbandoned
}

// RecordRun writes a finished run and its event log.
func (db *DB) RecordRun(r engine.Run, s state.State, ended time.Time) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO runs
		(id, seed, started_at, ended_at, outcome, cause, elapsed, stage, stage_rank, money, district, has_dog)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Seed, r.Started.UTC(), ended.UTC(), Outcome(s), s.Flags.GameOverCause,
		s.Stats.ElapsedSeconds, s.Stats.FundingStage.String(), int(s.Stats.FundingStage),
		s.Stats.Money, s.World.District.String(), s.Stats.HasDog,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}

	if _, err := tx.Exec("DELETE FROM events WHERE run_id = ?", r.ID.String()); err != nil {
		return err
	}
	stmt, err := tx.Preparex("INSERT INTO events (run_id, tick, description, category) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range s.Events {
		if _, err := stmt.Exec(r.ID.String(), e.Tick, e.Description, e.Category); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("run recorded", "run", r.ID, "outcome", Outcome(s), "events", len(s.Events))
	return nil
}

const runColumns = `id, seed, started_at, ended_at, outcome, cause, elapsed, stage, money, district, has_dog`

// Run returns one ledger row.
func (db *DB) Run(id string) (RunRecord, error) {
	var rec RunRecord
	err := db.conn.Get(&rec, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	return rec, err
}

// RecentRuns returns the most recently ended runs.
func (db *DB) RecentRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := db.conn.Select(&runs,
		"SELECT "+runColumns+" FROM runs ORDER BY ended_at DESC LIMIT ?", limit)
	return runs, err
}

// BestRuns ranks runs by funding stage reached, then by time survived.
func (db *DB) BestRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := db.conn.Select(&runs,
		"SELECT "+runColumns+" FROM runs ORDER BY stage_rank DESC, elapsed DESC LIMIT ?", limit)
	return runs, err
}

// RunEvents returns a run's event log, oldest first.
func (db *DB) RunEvents(id string) ([]state.Event, error) {
	var events []state.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events WHERE run_id = ? ORDER BY id", id)
	return events, err
}

// CountRuns returns how many runs ended with each outcome.
func (db *DB) CountRuns() (map[string]int, error) {
	rows := []struct {
		Outcome string `db:"outcome"`
		N       int    `db:"n"`
	}{}
	if err := db.conn.Select(&rows, "SELECT outcome, COUNT(*) AS n FROM runs GROUP BY outcome"); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Outcome] = r.N
	}
	return out, nil
}

// SaveMeta stores a key-value pair in ledger metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO ledger_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM ledger_meta WHERE key = ?", key)
	return value, err
}
