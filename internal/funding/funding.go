// Package funding is the startup's financing ladder, from bootstrapping in a
// doorway to ringing the bell at the IPO.
package funding

import (
	"fmt"

	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/state"
)

// Terms are the stakes of pitching out of a stage.
type Terms struct {
	Reward      int     `json:"reward"`
	SuccessP    float64 `json:"success_p"`
	HungerCost  float64 `json:"hunger_cost"`
	HopePenalty float64 `json:"hope_penalty"`
}

var ladder = [state.NumStages - 1]Terms{
	state.StageBootstrap: {Reward: 50, SuccessP: 0.35, HungerCost: 10, HopePenalty: 5},
	state.StagePreSeed:   {Reward: 150, SuccessP: 0.25, HungerCost: 15, HopePenalty: 8},
	state.StageSeed:      {Reward: 500, SuccessP: 0.18, HungerCost: 20, HopePenalty: 10},
	state.StageSeriesA:   {Reward: 1500, SuccessP: 0.12, HungerCost: 25, HopePenalty: 12},
	state.StageSeriesB:   {Reward: 5000, SuccessP: 0.08, HungerCost: 30, HopePenalty: 15},
	state.StageSeriesC:   {Reward: 20000, SuccessP: 0.05, HungerCost: 35, HopePenalty: 20},
}

// Pitch outcome tuning.
const (
	DeckBonus       = 0.1
	SuccessHopeGain = 15.0
)

// TermsFor returns the terms of pitching out of a non-terminal stage.
func TermsFor(st state.Stage) Terms {
	if st >= state.StageIPO {
		panic(fmt.Sprintf("funding: stage %d has no next round", st))
	}
	return ladder[st]
}

// Terminal reports whether the stage ends the ladder.
func Terminal(st state.Stage) bool {
	return st == state.StageIPO
}

// Outcome is the result of a pitch.
type Outcome uint8

const (
	OutcomeNone Outcome = iota // pitch not possible
	OutcomeTooTired
	OutcomeRejected
	OutcomeFunded
	OutcomeIPO
)

// SuccessChance is the effective probability of the next round closing.
func SuccessChance(st *state.Stats) float64 {
	p := TermsFor(st.FundingStage).SuccessP
	if st.HasPitchDeck {
		p += DeckBonus
	}
	return p
}

// Pitch pitches investors for the next round on s in place.
func Pitch(s *state.State, src entropy.Source) Outcome {
	st := &s.Stats
	if !s.Playing() || Terminal(st.FundingStage) {
		return OutcomeNone
	}
	terms := TermsFor(st.FundingStage)
	if st.Hunger < terms.HungerCost {
		return OutcomeTooTired
	}
	st.Hunger -= terms.HungerCost

	if !entropy.Chance(src, SuccessChance(st)) {
		st.Hope -= terms.HopePenalty
		s.Say("They love the vision. They'll circle back. They won't.")
		s.Log("funding", fmt.Sprintf("%s pitch rejected", st.FundingStage+1))
		st.Clamp()
		return OutcomeRejected
	}

	st.FundingStage++
	st.Money += terms.Reward
	st.Hope += SuccessHopeGain
	st.Clamp()
	s.Notify(fmt.Sprintf("+$%d", terms.Reward))
	s.Log("funding", fmt.Sprintf("closed %s: $%d", st.FundingStage, terms.Reward))
	if Terminal(st.FundingStage) {
		s.Say("The bell rings on the exchange floor. You're a public company.")
		s.Win()
		return OutcomeIPO
	}
	s.Say(fmt.Sprintf("Term sheet signed. Welcome to %s.", st.FundingStage))
	return OutcomeFunded
}
