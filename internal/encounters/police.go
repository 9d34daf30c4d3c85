package encounters

import (
	"math"

	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/state"
)

// Catch tuning.
const (
	CatchReach   = 10.0
	catchBase    = 0.25
	arrestChance = 0.35
	pushbackHope = 10.0
)

// Catch is the result of an officer reaching the player.
type Catch uint8

const (
	CatchNone Catch = iota
	CatchArrest
	CatchPushback
)

// Exposed reports whether the player is somewhere an officer would bother
// with: bedded down, or out in plain view.
func Exposed(s *state.State) bool {
	z := s.World.Zone
	sleeping := z.Sleepable() && s.Player.Locomotion == state.LocoDucking
	return sleeping || z.Visible()
}

// CatchChance is the per-tick catch probability when conditions hold.
func CatchChance(s *state.State) float64 {
	return catchBase * (0.5 + s.Effective(modifiers.KeyCop))
}

// PoliceCheck rolls for a catch once per tick. Only an active officer within
// reach of an exposed player with a fresh crime on record can catch.
func PoliceCheck(s *state.State, src entropy.Source) Catch {
	cop := &s.Entities.Police
	if !cop.Active || math.Abs(cop.X-s.Player.X) >= CatchReach {
		return CatchNone
	}
	if !Exposed(s) || !s.Flags.RecentCrime() {
		return CatchNone
	}
	if !entropy.Chance(src, CatchChance(s)) {
		return CatchNone
	}
	if entropy.Chance(src, arrestChance) {
		s.Say("Cuffs. The back of the cruiser smells like every bad night in this city.")
		s.EndGame("arrested")
		return CatchArrest
	}
	s.Player.X = state.LateralCenter
	s.Stats.Hope -= pushbackHope
	s.Stats.Clamp()
	cop.Active = false
	s.Say("\"Move along.\" The officer walks you down the block.")
	s.Log("police", "moved along")
	return CatchPushback
}
