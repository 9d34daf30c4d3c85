// Package autopilot plays a session without a human at the controls. Each
// decision triages the snapshot, picks at most one input, and remembers what
// it did. Soak runs and long-run tests drive the engine through it.
package autopilot

import (
	"github.com/talgya/streetsim/internal/state"
)

// Level is how close the player is to collapse.
type Level uint8

const (
	Healthy Level = iota
	Watch
	Warning
	Critical
)

func (l Level) String() string {
	switch l {
	case Watch:
		return "WATCH"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	}
	return "HEALTHY"
}

// Vital thresholds, on the 0..100 stat scale.
const (
	criticalBelow = 15.0
	warningBelow  = 30.0
	watchBelow    = 50.0
)

// Health holds the signals a decision is based on. Computed fresh from each
// snapshot; nothing is carried between calls.
type Health struct {
	Hunger  float64
	Warmth  float64
	Hope    float64
	Money   int
	Weakest string // "hunger", "warmth" or "hope"
	Level   Level
	DogNeed bool // the dog needs feeding
}

// Triage computes Health from s.
func Triage(s *state.State) Health {
	st := &s.Stats
	h := Health{
		Hunger:  st.Hunger,
		Warmth:  st.Warmth,
		Hope:    st.Hope,
		Money:   st.Money,
		Weakest: "hunger",
		DogNeed: st.HasDog && (st.DogHealth < 70 || st.DogLowHungerTicks > 0 || st.DogSick),
	}
	low := st.Hunger
	if st.Warmth < low {
		low, h.Weakest = st.Warmth, "warmth"
	}
	if st.Hope < low {
		low, h.Weakest = st.Hope, "hope"
	}

	switch {
	case low < criticalBelow:
		h.Level = Critical
	case low < warningBelow:
		h.Level = Warning
	case low < watchBelow:
		h.Level = Watch
	}
	return h
}

// Vital returns the named stat.
func (h Health) Vital(name string) float64 {
	switch name {
	case "warmth":
		return h.Warmth
	case "hope":
		return h.Hope
	}
	return h.Hunger
}
