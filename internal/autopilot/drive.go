package autopilot

import (
	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/state"
)

// Recorder receives every transition a drive applies, in order.
type Recorder func(t engine.Transition, next state.State)

// Drive plays s forward for at most ticks simulated seconds. Each second the
// pilot may send one command, then the clock ticks. It stops early once the
// session ends.
func (p *Pilot) Drive(s state.State, env engine.Env, ticks int, rec Recorder) state.State {
	apply := func(t engine.Transition) {
		s = t.Apply(s, env)
		if rec != nil {
			rec(t, s)
		}
	}
	for i := 0; i < ticks && !s.Ended(); i++ {
		if d, ok := p.Next(s); ok {
			cmd := d.Cmd
			apply(engine.Transition{Cmd: &cmd})
		}
		if s.Playing() && !s.Flags.IsPaused {
			apply(engine.Transition{Tick: true})
		}
	}
	return s
}
