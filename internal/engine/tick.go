// Package engine composes every subsystem into whole-snapshot transitions.
// Step advances one simulated second; Apply runs one player command. Both
// take the previous snapshot by value and return the next one, and both
// settle cross-system invariants (clamping, game over) before returning.
package engine

import (
	"github.com/talgya/streetsim/internal/encounters"
	"github.com/talgya/streetsim/internal/entities"
	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/state"
	"github.com/talgya/streetsim/internal/stats"
	"github.com/talgya/streetsim/internal/weather"
	"github.com/talgya/streetsim/internal/world"
)

// Rules is the tunable balance a session runs under.
type Rules struct {
	Stats       stats.Params `yaml:"stats" json:"stats"`
	StepSize    float64      `yaml:"step_size" json:"step_size"`       // lateral units per move step
	ScrollScale float64      `yaml:"scroll_scale" json:"scroll_scale"` // world units per lateral unit scrolled
}

// DefaultRules returns the stock balance.
func DefaultRules() Rules {
	return Rules{
		Stats:       stats.DefaultParams(),
		StepSize:    2.5,
		ScrollScale: 20,
	}
}

// Env is what a transition draws on besides the snapshot.
type Env struct {
	Rules   Rules
	Rand    entropy.Source
	Weather *weather.Sampler // nil keeps the weather as it is
}

// Step advances the world by one tick. A snapshot that is not in play, or
// is paused, comes back unchanged.
func Step(prev state.State, env Env) state.State {
	if !prev.Playing() || prev.Flags.IsPaused {
		return prev
	}
	s := prev.Clone()
	s.Stats.ElapsedSeconds++
	s.Refresh()
	sampleWeather(&s, env.Weather)
	s.Flags.CountDown()

	stats.Advance(&s, env.Rules.Stats, env.Rand)
	entities.Update(&s, env.Rand)
	rest(&s)
	encounters.PoliceCheck(&s, env.Rand)
	if !s.Ended() {
		encounters.Ambient(&s, env.Rand)
	}
	openPurseWindow(&s)
	refreshAvailability(&s)
	settle(&s)
	return s
}

// settle enforces the cross-system invariants every transition ends with.
func settle(s *state.State) {
	s.Stats.Clamp()
	s.PruneReferences()
	stats.CheckGameOver(s)
}

func sampleWeather(s *state.State, wx *weather.Sampler) {
	if wx == nil {
		return
	}
	c := wx.Sample(s.Stats.ElapsedSeconds, s.World.TimeOfDay)
	sim := weather.MapToSim(c)
	s.World.Weather = c
	s.World.WeatherDesc = sim.Description
	s.World.WarmthDecayMod = sim.WarmthDecayMod
}

// Rest gains per tick while bedded down.
const (
	shelterWarmth = 1.0
	shelterHope   = 0.1
	benchWarmth   = 0.3
)

// rest applies the comfort of lying down in a sleepable zone.
func rest(s *state.State) {
	if s.Player.Locomotion != state.LocoDucking {
		return
	}
	switch s.World.Zone {
	case world.ZoneShelter:
		s.Stats.Warmth += shelterWarmth
		s.Stats.Hope += shelterHope
	case world.ZoneBench:
		s.Stats.Warmth += benchWarmth
	}
}
