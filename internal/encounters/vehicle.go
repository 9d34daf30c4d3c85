// Package encounters resolves everything the player can get into with other
// people: cars pulling over, marks on the sidewalk, dealers, the police, and
// the random kindnesses and cruelties of the street.
//
// Every function mutates the snapshot it is handed, which is always a fresh
// clone owned by the caller, and leaves stats clamped.
package encounters

import (
	"github.com/talgya/streetsim/internal/entities"
	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/state"
)

// VehiclePhase buckets a session by how long it has survived and how many
// cars it has dealt with.
type VehiclePhase uint8

const (
	PhaseEarly VehiclePhase = iota
	PhaseMid
	PhaseLate
)

// VehicleOutcome is the result of approaching a stopped car.
type VehicleOutcome uint8

const (
	VehicleNothing VehicleOutcome = iota
	VehicleFatal
	VehicleInjured
	VehicleNeutral
	VehicleReward
)

// vehicleTable holds the disjoint outcome probabilities of a phase. Mass
// left over is VehicleNothing.
type vehicleTable struct {
	Fatal, Injured, Neutral, Reward float64
}

var vehicleTables = [...]vehicleTable{
	PhaseEarly: {Fatal: 0.02, Injured: 0.10, Neutral: 0.30, Reward: 0.45},
	PhaseMid:   {Fatal: 0.05, Injured: 0.18, Neutral: 0.27, Reward: 0.35},
	PhaseLate:  {Fatal: 0.12, Injured: 0.25, Neutral: 0.25, Reward: 0.25},
}

// Phase returns the vehicle phase for the session so far.
func Phase(s *state.State) VehiclePhase {
	elapsed, count := s.Stats.ElapsedSeconds, s.Flags.EncounterCount
	switch {
	case elapsed >= 1800 || count >= 5:
		return PhaseLate
	case elapsed < 600 && count < 2:
		return PhaseEarly
	}
	return PhaseMid
}

// Approach walks up to the stopped car and resolves what happens.
func Approach(s *state.State, src entropy.Source) VehicleOutcome {
	if _, ok := s.ActiveEncounter(); !ok {
		return VehicleNothing
	}
	t := vehicleTables[Phase(s)]
	r := src.Float()
	out := VehicleNothing
	switch {
	case r < t.Fatal:
		out = VehicleFatal
	case r < t.Fatal+t.Injured:
		out = VehicleInjured
	case r < t.Fatal+t.Injured+t.Neutral:
		out = VehicleNeutral
	case r < t.Fatal+t.Injured+t.Neutral+t.Reward:
		out = VehicleReward
	}

	st := &s.Stats
	switch out {
	case VehicleFatal:
		s.Say("You got into the wrong car.")
		s.EndGame("got into the wrong car")
	case VehicleInjured:
		st.Hope -= 15
		st.Hunger -= 10
		st.Warmth -= 5
		s.Say("It goes bad fast. You tumble out onto the curb.")
	case VehicleNeutral:
		s.Say("The driver looks you over and changes their mind.")
	case VehicleReward:
		amount := entropy.IntRange(src, 15, 40)
		st.Money += amount
		st.Hope -= 8
		s.Notify(moneyToast(amount))
		s.Say("You don't talk about it. The money is real.")
	default:
		s.Say("The car pulls away before you reach it.")
	}
	s.Log("encounter", "approached a car")
	clearEncounter(s)
	return out
}

// Ignore waves the stopped car on.
func Ignore(s *state.State) {
	if _, ok := s.ActiveEncounter(); !ok {
		return
	}
	s.Say("You keep your eyes on the sidewalk. The car moves on.")
	clearEncounter(s)
}

func clearEncounter(s *state.State) {
	entities.CloseEncounter(s)
	s.Stats.Clamp()
}
