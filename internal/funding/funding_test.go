package funding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/state"
)

func playing() state.State {
	s := state.New()
	s.Screen = state.ScreenPlaying
	s.Stats.Hunger = 100
	return s
}

func TestPitchTooHungryIsAbsorbed(t *testing.T) {
	s := playing()
	s.Stats.Hunger = 5
	assert.Equal(t, OutcomeTooTired, Pitch(&s, entropy.Constant(0)))
	assert.Equal(t, state.StageBootstrap, s.Stats.FundingStage)
	assert.Equal(t, 5.0, s.Stats.Hunger)
}

func TestPitchFailureAppliesOnlyHopePenalty(t *testing.T) {
	s := playing()
	money := s.Stats.Money
	assert.Equal(t, OutcomeRejected, Pitch(&s, entropy.Constant(0.99)))
	terms := TermsFor(state.StageBootstrap)
	assert.Equal(t, 60-terms.HopePenalty, s.Stats.Hope)
	assert.Equal(t, 100-terms.HungerCost, s.Stats.Hunger)
	assert.Equal(t, money, s.Stats.Money)
	assert.Equal(t, state.StageBootstrap, s.Stats.FundingStage)
}

func TestPitchSuccessAdvancesOneStage(t *testing.T) {
	s := playing()
	assert.Equal(t, OutcomeFunded, Pitch(&s, entropy.Constant(0)))
	assert.Equal(t, state.StagePreSeed, s.Stats.FundingStage)
	assert.Equal(t, 12+TermsFor(state.StageBootstrap).Reward, s.Stats.Money)
	assert.Equal(t, 60+SuccessHopeGain, s.Stats.Hope)
}

func TestDeckBonus(t *testing.T) {
	s := playing()
	base := SuccessChance(&s.Stats)
	s.Stats.HasPitchDeck = true
	assert.InDelta(t, base+DeckBonus, SuccessChance(&s.Stats), 1e-9)

	// A roll between the base and boosted chance only closes with the deck.
	roll := entropy.Constant(base + DeckBonus/2)
	assert.Equal(t, OutcomeFunded, Pitch(&s, roll))
}

func TestPenultimatePitchWinsAndLocks(t *testing.T) {
	s := playing()
	s.Stats.FundingStage = state.StageSeriesC

	require.Equal(t, OutcomeIPO, Pitch(&s, entropy.Constant(0)))
	assert.Equal(t, state.StageIPO, s.Stats.FundingStage)
	assert.True(t, s.Flags.IsVictory)
	assert.True(t, s.Flags.IsPaused)

	before := s.Clone()
	assert.Equal(t, OutcomeNone, Pitch(&s, entropy.Constant(0)))
	assert.Equal(t, before.Stats, s.Stats)
}

func TestStagesNeverRegress(t *testing.T) {
	s := playing()
	src := entropy.NewSeeded(5)
	prev := s.Stats.FundingStage
	for i := 0; i < 500 && !s.Ended(); i++ {
		s.Stats.Hunger = 100
		s.Stats.Hope = 100
		Pitch(&s, src)
		require.GreaterOrEqual(t, s.Stats.FundingStage, prev)
		require.LessOrEqual(t, int(s.Stats.FundingStage), int(prev)+1)
		prev = s.Stats.FundingStage
	}
}

func TestTermsForTerminalPanics(t *testing.T) {
	assert.Panics(t, func() { TermsFor(state.StageIPO) })
}
