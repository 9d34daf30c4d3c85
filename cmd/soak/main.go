// Command soak plays many seeded sessions under the autopilot, headless and
// as fast as the engine allows, and prints how each run ended.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"

	"github.com/talgya/streetsim/internal/autopilot"
	"github.com/talgya/streetsim/internal/config"
	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/journal"
	"github.com/talgya/streetsim/internal/persistence"
	"github.com/talgya/streetsim/internal/state"
)

var (
	header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cell   = lipgloss.NewStyle().Padding(0, 1)
	won    = cell.Foreground(lipgloss.Color("42"))
	lost   = cell.Foreground(lipgloss.Color("203"))
	border = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type result struct {
	run   engine.Run
	final state.State
	pilot *autopilot.Pilot
}

func main() {
	runs := flag.Int("runs", 20, "number of sessions to play")
	ticks := flag.Int("ticks", 3600, "simulated seconds per session at most")
	firstSeed := flag.Int64("seed", 1, "seed of the first session; later sessions count up")
	risky := flag.Bool("risky", false, "let the pilot gamble, use and steal")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	settings, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// Per-tick engine chatter would drown the table.
	level := settings.LogLevel
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	tuning, err := settings.Tuning()
	if err != nil {
		slog.Error("failed to load tuning", "error", err)
		os.Exit(1)
	}

	var db *persistence.DB
	if settings.DBPath != "" {
		db, err = persistence.Open(settings.DBPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	policy := autopilot.DefaultPolicy()
	policy.Risky = *risky

	start := time.Now()
	results := make([]result, 0, *runs)
	for i := 0; i < *runs; i++ {
		r, err := play(*firstSeed+int64(i), *ticks, tuning, policy, settings.JournalDir)
		if err != nil {
			slog.Error("soak run failed", "seed", *firstSeed+int64(i), "error", err)
			os.Exit(1)
		}
		if db != nil {
			if err := db.RecordRun(r.run, r.final, time.Now()); err != nil {
				slog.Error("failed to record run", "run", r.run.ID, "error", err)
			}
		}
		results = append(results, r)
	}

	fmt.Println(render(results))
	fmt.Println(summary(results, time.Since(start)))
}

// play drives one session to its end or the tick limit, journaling it when
// dir is set.
func play(seed int64, ticks int, tuning config.Tuning, policy autopilot.Policy, dir string) (result, error) {
	run := engine.Run{ID: uuid.New(), Seed: seed, Started: time.Now()}
	env := engine.NewEnv(tuning.Rules, seed)
	pilot := autopilot.New(policy)

	if dir == "" {
		final := pilot.Drive(state.New(), env, ticks, nil)
		return result{run: run, final: final, pilot: pilot}, nil
	}

	jw, err := journal.Create(dir, journal.Header{
		SessionID: run.ID,
		Seed:      seed,
		Rules:     tuning.Rules,
		Started:   run.Started,
	})
	if err != nil {
		return result{}, err
	}
	defer func() {
		if err := jw.Close(); err != nil {
			slog.Error("journal close failed", "path", jw.Path(), "error", err)
		}
	}()

	var werr error
	final := pilot.Drive(state.New(), env, ticks, func(t engine.Transition, next state.State) {
		if werr == nil {
			werr = jw.Record(t, next)
		}
	})
	if werr != nil {
		return result{}, fmt.Errorf("journal %s: %w", jw.Path(), werr)
	}
	return result{run: run, final: final, pilot: pilot}, nil
}

func render(results []result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		st := r.final.Stats
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.run.Seed),
			persistence.Outcome(r.final),
			cause(r.final),
			fmt.Sprintf("%d", st.ElapsedSeconds),
			st.FundingStage.String(),
			fmt.Sprintf("$%d", st.Money),
			fmt.Sprintf("%t", st.HasDog),
			strings.Join(r.pilot.Memory.Top(3), " "),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		BorderHeader(true).
		BorderRow(false).
		Headers("Seed", "Outcome", "Cause", "Seconds", "Stage", "Money", "Dog", "Most used").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 1 && row >= 0 && row < len(results) {
				if results[row].final.Flags.IsVictory {
					return won
				}
				if results[row].final.Flags.IsGameOver {
					return lost
				}
			}
			return cell
		})
	return t.Render()
}

func cause(s state.State) string {
	if s.Flags.IsGameOver {
		return s.Flags.GameOverCause
	}
	return "-"
}

func summary(results []result, took time.Duration) string {
	var victories, over, ticks int
	for _, r := range results {
		switch {
		case r.final.Flags.IsVictory:
			victories++
		case r.final.Flags.IsGameOver:
			over++
		}
		ticks += r.final.Stats.ElapsedSeconds
	}
	avg := 0
	if len(results) > 0 {
		avg = ticks / len(results)
	}
	return fmt.Sprintf("%d runs in %s: %d IPOs, %d game overs, %d still standing, %d seconds survived on average",
		len(results), took.Round(time.Millisecond), victories, over, len(results)-victories-over, avg)
}
