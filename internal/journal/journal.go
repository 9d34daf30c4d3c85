// Package journal records a session as zstd-compressed JSON lines: a header
// carrying the seed and rules, then one entry per applied transition with a
// digest of the snapshot it produced. Replaying the entries against the
// header reproduces the session and checks every digest on the way.
package journal

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/state"
)

// Version is bumped whenever a transition's meaning changes.
const Version = 1

// Header opens every journal file.
type Header struct {
	Version   int          `json:"version"`
	SessionID uuid.UUID    `json:"session_id"`
	Seed      int64        `json:"seed"`
	Rules     engine.Rules `json:"rules"`
	Started   time.Time    `json:"started"`
}

// Entry is one journaled transition.
type Entry struct {
	Seq    uint64            `json:"seq"`
	T      engine.Transition `json:"t"`
	Digest string            `json:"digest"`
}

// Digest fingerprints a snapshot.
func Digest(s state.State) string {
	b, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("journal: snapshot not serializable: %v", err))
	}
	h := fnv.New64a()
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}

// FileName is the journal file name of a session.
func FileName(id uuid.UUID) string {
	return "session-" + id.String() + ".jsonl.zst"
}

// Writer appends entries to one session's journal.
type Writer struct {
	mu   sync.Mutex
	path string
	seq  uint64
	f    *os.File
	enc  *zstd.Encoder
	w    *bufio.Writer
}

// Create starts a journal for h in dir.
func Create(dir string, h Header) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal dir: %w", err)
	}
	if h.Version == 0 {
		h.Version = Version
	}
	path := filepath.Join(dir, FileName(h.SessionID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("journal encoder: %w", err)
	}
	w := &Writer{path: path, f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}
	if err := w.writeLine(h); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Path returns the file being written.
func (w *Writer) Path() string { return w.path }

// Record appends a transition and the snapshot it produced.
func (w *Writer) Record(t engine.Transition, next state.State) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return errors.New("journal closed")
	}
	w.seq++
	return w.writeLine(Entry{Seq: w.seq, T: t, Digest: Digest(next)})
}

func (w *Writer) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("journal encode: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("journal write: %w", err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("journal write: %w", err)
	}
	return nil
}

// Flush pushes buffered entries through the compressor.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

// Close flushes and closes the journal.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var err error
	if w.w != nil {
		err = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	return err
}

// Read loads a journal file.
func Read(path string) (Header, []Entry, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return h, nil, err
		}
		return h, nil, fmt.Errorf("%s: empty journal", filepath.Base(path))
	}
	if err := json.Unmarshal(sc.Bytes(), &h); err != nil {
		return h, nil, fmt.Errorf("%s: header: %w", filepath.Base(path), err)
	}
	if h.Version != Version {
		return h, nil, fmt.Errorf("%s: journal version %d, want %d", filepath.Base(path), h.Version, Version)
	}

	var entries []Entry
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return h, entries, fmt.Errorf("%s: entry %d: %w", filepath.Base(path), len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	return h, entries, sc.Err()
}

// List returns the journal files in dir, oldest name first.
func List(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "session-") && strings.HasSuffix(name, ".jsonl.zst") {
			out = append(out, filepath.Join(dir, name))
		}
	}
	sort.Strings(out)
	return out, nil
}

// Replay reruns entries from a fresh title snapshot. It stops at the first
// digest mismatch and returns the snapshot reached so far.
func Replay(h Header, entries []Entry) (state.State, error) {
	env := engine.NewEnv(h.Rules, h.Seed)
	s := state.New()
	for i, e := range entries {
		if want := uint64(i + 1); e.Seq != want {
			return s, fmt.Errorf("entry %d: sequence %d out of order", want, e.Seq)
		}
		s = e.T.Apply(s, env)
		if got := Digest(s); got != e.Digest {
			return s, fmt.Errorf("digest mismatch at seq %d: got=%s want=%s", e.Seq, got, e.Digest)
		}
	}
	return s, nil
}
