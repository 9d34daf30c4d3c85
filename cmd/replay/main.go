// Command replay re-runs session journals against the engine and checks that
// every recorded snapshot digest still comes out the same.
//
// Usage:
//
//	replay FILE...      verify the given journals
//	replay -dir DIR     verify every journal in DIR
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/talgya/streetsim/internal/journal"
)

func main() {
	dir := flag.String("dir", "", "verify every journal in this directory")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	paths := flag.Args()
	if *dir != "" {
		found, err := journal.List(*dir)
		if err != nil {
			slog.Error("failed to list journals", "dir", *dir, "error", err)
			os.Exit(1)
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: replay [-dir DIR] [FILE...]")
		os.Exit(2)
	}

	failed := 0
	for _, path := range paths {
		if err := verify(path); err != nil {
			slog.Error("replay failed", "path", path, "error", err)
			failed++
		}
	}
	fmt.Printf("%d journals checked, %d failed\n", len(paths), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func verify(path string) error {
	h, entries, err := journal.Read(path)
	if err != nil {
		return err
	}
	final, err := journal.Replay(h, entries)
	if err != nil {
		return err
	}
	outcome := "in play"
	switch {
	case final.Flags.IsVictory:
		outcome = "victory"
	case final.Flags.IsGameOver:
		outcome = "game over: " + final.Flags.GameOverCause
	}
	slog.Info("replay ok",
		"session", h.SessionID,
		"seed", h.Seed,
		"entries", len(entries),
		"elapsed", final.Stats.ElapsedSeconds,
		"stage", final.Stats.FundingStage,
		"outcome", outcome,
	)
	return nil
}
