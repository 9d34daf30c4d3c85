package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	streamPingEvery = 25 * time.Second
	streamReadWait  = 60 * time.Second
	streamWriteWait = 10 * time.Second
)

// streamMsg is pushed to stream clients.
type streamMsg struct {
	Type  string `json:"type"` // "view" or "error"
	View  *View  `json:"view,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleStream upgrades to a websocket that pushes a View on every new
// snapshot and accepts Input messages. Each connection has its own lock.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.streamConns.Load() >= maxStreamConns {
		http.Error(w, "too many stream connections", http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("stream upgrade", "error", err)
		return
	}
	s.streamConns.Add(1)
	defer s.streamConns.Add(-1)
	defer conn.Close()

	lock := s.newLock()
	updates, unsubscribe := s.Session.Subscribe()
	defer unsubscribe()

	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(streamReadWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamReadWait))
	})

	// Only the writer goroutine touches the connection's write side.
	out := make(chan streamMsg, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer conn.Close() // unblocks the reader if a write fails
		ping := time.NewTicker(streamPingEvery)
		defer ping.Stop()
		send := func(m streamMsg) bool {
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			return conn.WriteJSON(m) == nil
		}
		first := view(s.Session.Snapshot(), lock)
		if !send(streamMsg{Type: "view", View: &first}) {
			return
		}
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				v := view(snap, lock)
				if !send(streamMsg{Type: "view", View: &v}) {
					return
				}
			case m, ok := <-out:
				if !ok {
					return
				}
				if !send(m) {
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	slog.Info("stream connected", "remote", r.RemoteAddr)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var in Input
		if err := json.Unmarshal(msg, &in); err != nil {
			s.reply(out, done, streamMsg{Type: "error", Error: "invalid input: " + err.Error()})
			continue
		}
		cmd, ok, err := command(in, lock)
		if err != nil {
			s.reply(out, done, streamMsg{Type: "error", Error: err.Error()})
			continue
		}
		if ok {
			// The resulting snapshot reaches the client through the
			// subscription.
			s.Session.Send(cmd)
		}
	}
	close(out)
	<-done
	slog.Info("stream disconnected", "remote", r.RemoteAddr)
}

func (s *Server) reply(out chan<- streamMsg, done <-chan struct{}, m streamMsg) {
	select {
	case out <- m:
	case <-done:
	}
}
