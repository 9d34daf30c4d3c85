// Command streetsim runs one survival session and serves it over HTTP and
// WebSocket.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/streetsim/internal/api"
	"github.com/talgya/streetsim/internal/config"
	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/journal"
	"github.com/talgya/streetsim/internal/persistence"
	"github.com/talgya/streetsim/internal/state"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	settings, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: settings.LogLevel,
	}))
	slog.SetDefault(logger)

	tuning, err := settings.Tuning()
	if err != nil {
		slog.Error("failed to load tuning", "error", err)
		os.Exit(1)
	}

	sess := engine.NewSession(tuning.SessionOptions())
	slog.Info("Street Survival: from the sidewalk to the IPO",
		"seed", sess.Seed(),
		"difficulty", settings.Difficulty,
		"tick", tuning.TickInterval(),
	)

	// ── Run ledger ────────────────────────────────────────────────────
	var db *persistence.DB
	if settings.DBPath != "" {
		os.MkdirAll(filepath.Dir(settings.DBPath), 0755)
		db, err = persistence.Open(settings.DBPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if counts, err := db.CountRuns(); err == nil {
			slog.Info("run ledger opened", "path", settings.DBPath, "runs", counts)
		}
		if err := db.SaveMeta("last_seed", strconv.FormatInt(sess.Seed(), 10)); err != nil {
			slog.Warn("failed to save meta", "error", err)
		}
		sess.OnEnd = func(r engine.Run, s state.State) {
			if err := db.RecordRun(r, s, time.Now()); err != nil {
				slog.Error("failed to record run", "run", r.ID, "error", err)
				return
			}
			slog.Info("run recorded", "run", r.ID, "outcome", persistence.Outcome(s))
		}
	} else {
		slog.Warn("STREETSIM_DB not set, runs will not be recorded")
	}

	// ── Journal ───────────────────────────────────────────────────────
	var jw *journal.Writer
	if settings.JournalDir != "" {
		jw, err = journal.Create(settings.JournalDir, journal.Header{
			SessionID: uuid.New(),
			Seed:      sess.Seed(),
			Rules:     tuning.Rules,
			Started:   time.Now(),
		})
		if err != nil {
			slog.Error("failed to create journal", "error", err)
			os.Exit(1)
		}
		slog.Info("journaling session", "path", jw.Path())
		sess.OnTransition = func(t engine.Transition, next state.State) {
			if err := jw.Record(t, next); err != nil {
				slog.Error("journal write failed", "error", err)
			}
		}
		// Flush once a simulated minute so a crash loses little.
		sess.OnMinute = func(state.State) {
			if err := jw.Flush(); err != nil {
				slog.Error("journal flush failed", "error", err)
			}
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Session:  sess,
		DB:       db,
		LockHold: tuning.LockHold(),
		Addr:     settings.Addr,
	}
	httpServer := apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			slog.Warn("HTTP shutdown", "error", err)
		}
		sess.Stop()
	}()

	fmt.Printf("\nAPI: http://localhost%s/api/v1/state\n", settings.Addr)
	fmt.Println("Waiting for a player... (Ctrl+C to stop)")

	sess.Run()

	if jw != nil {
		if err := jw.Close(); err != nil {
			slog.Error("journal close failed", "error", err)
		}
		fmt.Printf("Journal written to %s\n", jw.Path())
	}
	fmt.Println("Session stopped.")
}
