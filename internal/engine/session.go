package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/state"
	"github.com/talgya/streetsim/internal/weather"
)

// TicksPerMinute is how often the session reports a summary.
const TicksPerMinute = 60

// Transition is one input a session applied to its snapshot: either a tick
// or a command. A seed plus its transitions reproduces a session exactly.
type Transition struct {
	Tick bool     `json:"tick,omitempty"`
	Cmd  *Command `json:"cmd,omitempty"`
}

// Apply runs the transition against s.
func (t Transition) Apply(s state.State, env Env) state.State {
	if t.Cmd != nil {
		return Apply(s, *t.Cmd, env)
	}
	return Step(s, env)
}

// NewEnv builds the environment a seeded session runs in.
func NewEnv(rules Rules, seed int64) Env {
	return Env{
		Rules:   rules,
		Rand:    entropy.NewSeeded(seed),
		Weather: weather.NewSampler(seed),
	}
}

// Run identifies one play-through, from start to game over, victory or
// shutdown.
type Run struct {
	ID      uuid.UUID `json:"id"`
	Seed    int64     `json:"seed"`
	Started time.Time `json:"started"`
}

// Options configure a Session.
type Options struct {
	Seed           int64
	Rules          Rules
	TickInterval   time.Duration // default 1s
	RepeatInterval time.Duration // move repeat while held; default 150ms
}

type request struct {
	cmd   Command
	reply chan state.State
}

// Session serializes ticks and player commands against one snapshot. All
// mutation happens on the Run goroutine; readers get immutable snapshots.
type Session struct {
	seed           int64
	env            Env
	tickInterval   time.Duration
	repeatInterval time.Duration

	inbox chan request
	quit  chan struct{}
	done  chan struct{}

	mu   sync.RWMutex
	cur  state.State
	run  Run
	subs map[chan state.State]struct{}

	// Callbacks, populated during setup and invoked on the Run goroutine.
	OnTransition func(t Transition, next state.State) // every applied tick or command
	OnMinute     func(s state.State)                  // every simulated minute of play
	OnEnd        func(r Run, s state.State)           // game over, victory, or abandoned on stop
}

// NewSession creates a session on the title screen.
func NewSession(opts Options) *Session {
	seed := opts.Seed
	if seed == 0 {
		seed = entropy.CryptoSeed()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.RepeatInterval <= 0 {
		opts.RepeatInterval = 150 * time.Millisecond
	}
	return &Session{
		seed:           seed,
		env:            NewEnv(opts.Rules, seed),
		tickInterval:   opts.TickInterval,
		repeatInterval: opts.RepeatInterval,
		inbox:          make(chan request, 64),
		quit:           make(chan struct{}),
		done:           make(chan struct{}),
		cur:            state.New(),
		subs:           make(map[chan state.State]struct{}),
	}
}

// Seed returns the seed the session's randomness was derived from.
func (s *Session) Seed() int64 { return s.seed }

// Snapshot returns the current snapshot.
func (s *Session) Snapshot() state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// CurrentRun returns the play-through in progress, if any.
func (s *Session) CurrentRun() (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.run, s.run.ID != uuid.Nil
}

// Subscribe returns a channel that receives every new snapshot. Slow
// subscribers miss snapshots rather than stall the session. Call the
// returned func to unsubscribe.
func (s *Session) Subscribe() (<-chan state.State, func()) {
	ch := make(chan state.State, 8)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
		})
	}
}

// Send queues a command and waits for the snapshot it produced. It returns
// the current snapshot unchanged once the session has stopped.
func (s *Session) Send(cmd Command) state.State {
	req := request{cmd: cmd, reply: make(chan state.State, 1)}
	select {
	case s.inbox <- req:
	case <-s.done:
		return s.Snapshot()
	}
	select {
	case next := <-req.reply:
		return next
	case <-s.done:
		return s.Snapshot()
	}
}

// Stop halts the Run loop and waits for it to exit.
func (s *Session) Stop() {
	select {
	case <-s.quit:
	default:
		close(s.quit)
	}
	<-s.done
}

// Run drives the session until Stop is called.
func (s *Session) Run() {
	defer close(s.done)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	// A nil channel never fires, so the repeat case is idle until a move
	// starts.
	var repeat *time.Ticker
	var repeatC <-chan time.Time
	var repeatDir int
	stopRepeat := func() {
		if repeat != nil {
			repeat.Stop()
			repeat, repeatC = nil, nil
		}
	}
	defer stopRepeat()

	slog.Info("session started", "seed", s.seed, "interval", s.tickInterval)
	for {
		select {
		case <-s.quit:
			s.abandon()
			slog.Info("session stopped", "elapsed", s.Snapshot().Stats.ElapsedSeconds)
			return
		case req := <-s.inbox:
			switch req.cmd.Op {
			case OpMove:
				repeatDir = req.cmd.Dir
				if repeat == nil {
					repeat = time.NewTicker(s.repeatInterval)
					repeatC = repeat.C
				}
			case OpMoveStop, OpRestart:
				stopRepeat()
			}
			cmd := req.cmd
			req.reply <- s.apply(Transition{Cmd: &cmd})
		case <-repeatC:
			cur := s.Snapshot()
			if !cur.Playing() || cur.Flags.IsPaused || cur.Player.Locomotion == state.LocoCollapsed {
				stopRepeat()
				continue
			}
			s.apply(Transition{Cmd: &Command{Op: OpMove, Dir: repeatDir}})
		case <-ticker.C:
			s.apply(Transition{Tick: true})
		}
	}
}

// apply runs one transition and publishes the result.
func (s *Session) apply(t Transition) state.State {
	prev := s.Snapshot()
	if t.Tick && (!prev.Playing() || prev.Flags.IsPaused) {
		return prev
	}
	next := t.Apply(prev, s.env)
	if s.OnTransition != nil {
		s.OnTransition(t, next)
	}

	s.mu.Lock()
	s.cur = next
	if t.Cmd != nil && t.Cmd.Op == OpStart && prev.Screen == state.ScreenTitle {
		s.run = Run{ID: uuid.New(), Seed: s.seed, Started: time.Now()}
	}
	if t.Cmd != nil && t.Cmd.Op == OpRestart {
		s.run = Run{}
	}
	run := s.run
	for ch := range s.subs {
		select {
		case ch <- next:
		default:
		}
	}
	s.mu.Unlock()

	if t.Tick && next.Stats.ElapsedSeconds != prev.Stats.ElapsedSeconds && next.Stats.ElapsedSeconds%TicksPerMinute == 0 {
		s.report(next)
	}
	if !prev.Ended() && next.Ended() {
		s.finish(run, next)
	}
	return next
}

func (s *Session) report(st state.State) {
	slog.Info("minute report",
		"elapsed", st.Stats.ElapsedSeconds,
		"district", st.World.District,
		"time", st.World.TimeOfDay,
		"hunger", int(st.Stats.Hunger),
		"warmth", int(st.Stats.Warmth),
		"hope", int(st.Stats.Hope),
		"money", st.Stats.Money,
		"stage", st.Stats.FundingStage,
		"pedestrians", len(st.Entities.Pedestrians),
	)
	if s.OnMinute != nil {
		s.OnMinute(st)
	}
}

func (s *Session) finish(r Run, st state.State) {
	if st.Flags.IsVictory {
		slog.Info("victory", "run", r.ID, "elapsed", st.Stats.ElapsedSeconds, "money", st.Stats.Money)
	} else {
		slog.Info("game over", "run", r.ID, "cause", st.Flags.GameOverCause, "elapsed", st.Stats.ElapsedSeconds)
	}
	if s.OnEnd != nil {
		s.OnEnd(r, st)
	}
}

// abandon reports a run still in play when the session shuts down.
func (s *Session) abandon() {
	r, ok := s.CurrentRun()
	st := s.Snapshot()
	if !ok || st.Ended() || s.OnEnd == nil {
		return
	}
	s.OnEnd(r, st)
}
