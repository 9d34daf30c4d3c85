// Package api serves a running session over HTTP and WebSocket.
// GET endpoints observe; POST endpoints and the stream feed player input.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talgya/streetsim/internal/actions"
	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/persistence"
)

const maxStreamConns = 8

// Server serves one session.
type Server struct {
	Session  *engine.Session
	DB       *persistence.DB // nil disables the /runs endpoints
	Clock    actions.Clock   // nil uses the wall clock
	LockHold time.Duration
	Addr     string

	// The lock shared by plain HTTP clients; each stream gets its own.
	httpLock *actions.Lock

	streamConns atomic.Int32
	upgrader    websocket.Upgrader
}

// Handler builds the routing table.
func (s *Server) Handler() http.Handler {
	s.httpLock = s.newLock()
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 16 * 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	restartLimiter := NewRateLimiter(5, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/state", s.handleState)
	mux.HandleFunc("GET /api/v1/actions", s.handleActions)
	mux.HandleFunc("POST /api/v1/input", s.handleInput)
	mux.HandleFunc("POST /api/v1/restart", RateLimitMiddleware(restartLimiter, s.handleRestart))
	mux.HandleFunc("GET /api/v1/stream", s.handleStream)

	mux.HandleFunc("GET /api/v1/runs", s.handleRuns)
	mux.HandleFunc("GET /api/v1/runs/best", s.handleBestRuns)
	mux.HandleFunc("GET /api/v1/runs/{id}", s.handleRun)
	return corsMiddleware(mux)
}

func (s *Server) newLock() *actions.Lock {
	return actions.NewLock(s.Clock, s.LockHold)
}

// Start begins serving in a goroutine. Shut the returned server down to stop.
func (s *Server) Start() *http.Server {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", s.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
	return srv
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// STREETSIM_CORS_ORIGINS adds a comma-separated list to the localhost
// dev servers that are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("STREETSIM_CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, view(s.Session.Snapshot(), s.httpLock))
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	snap := s.Session.Snapshot()
	resolved := actions.Resolve(&snap)
	writeJSON(w, map[string]any{
		"resolved": resolved,
		"shown":    s.httpLock.Observe(resolved),
	})
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&in); err != nil {
		http.Error(w, "invalid input: "+err.Error(), http.StatusBadRequest)
		return
	}
	// Bring the lock up to date so a slot press runs what is on screen now.
	view(s.Session.Snapshot(), s.httpLock)
	cmd, ok, err := command(in, s.httpLock)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap := s.Session.Snapshot()
	if ok {
		snap = s.Session.Send(cmd)
	}
	writeJSON(w, view(snap, s.httpLock))
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.httpLock.Reset()
	snap := s.Session.Send(engine.Command{Op: engine.OpRestart})
	slog.Info("session restarted", "remote", r.RemoteAddr)
	writeJSON(w, view(snap, s.httpLock))
}

func (s *Server) ledger(w http.ResponseWriter) bool {
	if s.DB == nil {
		http.Error(w, "run ledger disabled (no STREETSIM_DB set)", http.StatusNotFound)
		return false
	}
	return true
}

func limitParam(r *http.Request, def, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if !s.ledger(w) {
		return
	}
	runs, err := s.DB.RecentRuns(limitParam(r, 20, 200))
	if err != nil {
		slog.Error("recent runs", "error", err)
		http.Error(w, "ledger error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

func (s *Server) handleBestRuns(w http.ResponseWriter, r *http.Request) {
	if !s.ledger(w) {
		return
	}
	runs, err := s.DB.BestRuns(limitParam(r, 10, 100))
	if err != nil {
		slog.Error("best runs", "error", err)
		http.Error(w, "ledger error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !s.ledger(w) {
		return
	}
	id := r.PathValue("id")
	run, err := s.DB.Run(id)
	if errors.Is(err, persistence.ErrNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("run lookup", "run", id, "error", err)
		http.Error(w, "ledger error", http.StatusInternalServerError)
		return
	}
	events, err := s.DB.RunEvents(id)
	if err != nil {
		slog.Error("run events", "run", id, "error", err)
		http.Error(w, "ledger error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"run": run, "events": events})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
