package actions

import (
	"sync"
	"time"
)

// DefaultHold is how long a changed triple stays on screen before it may
// change again.
const DefaultHold = 400 * time.Millisecond

// Lock freezes the displayed triple for a hold period after every change,
// so a press always runs what the player saw. One Lock serves one viewer.
type Lock struct {
	mu      sync.Mutex
	clock   Clock
	hold    time.Duration
	shown   Triple
	changed time.Time
	primed  bool
}

// NewLock creates a lock. A nil clock uses the wall clock.
func NewLock(clock Clock, hold time.Duration) *Lock {
	if clock == nil {
		clock = RealClock{}
	}
	return &Lock{clock: clock, hold: hold}
}

// Observe offers a freshly resolved triple and returns what should be
// displayed now.
func (l *Lock) Observe(resolved Triple) Triple {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	switch {
	case !l.primed:
		l.primed = true
	case resolved == l.shown:
		return l.shown
	case now.Sub(l.changed) < l.hold:
		return l.shown
	}
	l.shown = resolved
	l.changed = now
	return l.shown
}

// Shown returns the currently displayed triple.
func (l *Lock) Shown() Triple {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shown
}

// Reset forgets the displayed triple, as on restart.
func (l *Lock) Reset() {
	l.mu.Lock()
	l.primed = false
	l.shown = Triple{}
	l.mu.Unlock()
}
