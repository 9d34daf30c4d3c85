package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings are the process-level knobs read from the environment.
type Settings struct {
	Addr       string     // STREETSIM_ADDR
	TuningPath string     // STREETSIM_TUNING
	Seed       int64      // STREETSIM_SEED; 0 keeps the tuning's seed
	DBPath     string     // STREETSIM_DB; empty disables the run ledger
	JournalDir string     // STREETSIM_JOURNAL_DIR; empty disables journaling
	Difficulty string     // STREETSIM_DIFFICULTY
	LogLevel   slog.Level // STREETSIM_LOG_LEVEL
}

// LoadDotEnv reads .env files into the environment if any exist. Missing
// files are not an error; variables already set win.
func LoadDotEnv(files ...string) error {
	var found []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			found = append(found, f)
		}
	}
	if len(found) == 0 {
		return nil
	}
	if err := godotenv.Load(found...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// FromEnv reads Settings using lookup, normally os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Settings, error) {
	get := func(k, def string) string {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}
	s := Settings{
		Addr:       get("STREETSIM_ADDR", ":8080"),
		TuningPath: get("STREETSIM_TUNING", ""),
		DBPath:     get("STREETSIM_DB", ""),
		JournalDir: get("STREETSIM_JOURNAL_DIR", ""),
		Difficulty: get("STREETSIM_DIFFICULTY", ""),
	}
	if v := get("STREETSIM_SEED", ""); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return s, fmt.Errorf("STREETSIM_SEED: %w", err)
		}
		s.Seed = seed
	}
	if err := s.LogLevel.UnmarshalText([]byte(get("STREETSIM_LOG_LEVEL", "INFO"))); err != nil {
		return s, fmt.Errorf("STREETSIM_LOG_LEVEL: %w", err)
	}
	return s, nil
}

// Tuning resolves the difficulty preset, the optional tuning file and the
// seed override into the tuning a session runs under.
func (s Settings) Tuning() (Tuning, error) {
	t, err := Preset(s.Difficulty)
	if err != nil {
		return t, err
	}
	if s.TuningPath != "" {
		if t, err = Load(s.TuningPath, t); err != nil {
			return t, err
		}
	}
	if s.Seed != 0 {
		t.Seed = s.Seed
	}
	return t, nil
}
