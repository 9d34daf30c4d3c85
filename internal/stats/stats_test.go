package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/state"
)

// calm never trips a probability roll.
var calm = entropy.Constant(0.999)

func playing() state.State {
	s := state.New()
	s.Screen = state.ScreenPlaying
	s.Stats.HasDog = false
	return s
}

func TestHighBoostsHopeOverBaseline(t *testing.T) {
	p := DefaultParams()

	high := playing()
	high.Stats.Stimulant = 31
	Advance(&high, p, calm)

	base := playing()
	Advance(&base, p, calm)

	assert.Less(t, high.Stats.Stimulant, 31.0)
	assert.Greater(t, high.Stats.Hope, base.Stats.Hope)
	assert.Less(t, high.Stats.Hunger, base.Stats.Hunger)
}

func TestCrashAppliesOnceOnDownwardCrossing(t *testing.T) {
	p := DefaultParams()
	s := playing()
	s.Stats.Stimulant = 30.4

	Advance(&s, p, calm)
	first := s.Stats.Hope
	assert.Equal(t, "The high drops out from under you.", s.Flags.Narrative)

	ref := playing()
	ref.Stats.Stimulant = 25
	Advance(&ref, p, calm)
	assert.InDelta(t, ref.Stats.Hope-p.CrashHopeLoss, first, 1e-9)

	hope := s.Stats.Hope
	Advance(&s, p, calm)
	assert.InDelta(t, hope-p.HopeDecay, s.Stats.Hope, 1e-9, "no second crash below the threshold")
}

func TestParanoiaSummonsPoliceAndRaisesPenalty(t *testing.T) {
	p := DefaultParams()
	s := playing()
	s.Stats.Stimulant = 60

	Advance(&s, p, entropy.NewSequence(0))

	assert.True(t, s.Entities.Police.Active)
	assert.InDelta(t, p.ParanoiaPenalty, s.Stats.HopeDecayPenalty, 1e-9)
}

func TestWithdrawalHallucination(t *testing.T) {
	p := DefaultParams()
	s := playing()
	s.Stats.Stimulant = 10
	ref := playing()
	ref.Stats.Stimulant = 10

	Advance(&s, p, entropy.NewSequence(0.01))
	Advance(&ref, p, calm)

	assert.InDelta(t, ref.Stats.Hope-p.HallucinationHopeLoss, s.Stats.Hope, 1e-9)
	assert.InDelta(t, ref.Stats.Hunger-p.HallucinationHungerLoss, s.Stats.Hunger, 1e-9)
}

func TestHopeDecayScalesWithPenalty(t *testing.T) {
	p := DefaultParams()
	s := playing()
	s.Stats.HopeDecayPenalty = 1
	Advance(&s, p, calm)
	assert.InDelta(t, 60-2*p.HopeDecay, s.Stats.Hope, 1e-9)
}

func TestTripQuartersWarmthLossAndExpires(t *testing.T) {
	p := DefaultParams()
	s := playing()
	s.Flags.TripTicks = 2
	warm := s.Stats.Warmth

	Advance(&s, p, calm)
	loss := p.WarmthDecay[s.World.TimeOfDay] / 4
	assert.InDelta(t, warm-loss+p.TripWarmthGain, s.Stats.Warmth, 1e-9)
	assert.Equal(t, 1, s.Flags.TripTicks)

	hope := s.Stats.Hope
	Advance(&s, p, calm)
	assert.Zero(t, s.Flags.TripTicks)
	assert.InDelta(t, hope-p.HopeDecay+p.TripHopeGain-p.TripExpiryHopeLoss, s.Stats.Hope, 1e-9)
}

func TestTripTipSaysWhatItCost(t *testing.T) {
	p := DefaultParams()
	s := playing()
	s.Stats.Money = 50
	s.Flags.TripTicks = p.TripFlavorEvery + 1

	Advance(&s, p, calm)
	assert.Equal(t, 45, s.Stats.Money)
	assert.Equal(t, "You tip a street mime $5. It felt important at the time.", s.Flags.Narrative)

	broke := playing()
	broke.Stats.Money = 0
	broke.Flags.TripTicks = p.TripFlavorEvery + 1
	Advance(&broke, p, calm)
	assert.Zero(t, broke.Stats.Money)
	assert.Equal(t, tripFlavors[0], broke.Flags.Narrative)
}

func TestWarmthFollowsWeather(t *testing.T) {
	p := DefaultParams()
	s := playing()
	s.World.WarmthDecayMod = 2
	Advance(&s, p, calm)
	assert.InDelta(t, 70-2*p.WarmthDecay[s.World.TimeOfDay], s.Stats.Warmth, 1e-9)
}

func TestDogLossAppliedExactlyOnce(t *testing.T) {
	p := DefaultParams()
	s := playing()
	s.Stats.HasDog = true
	s.Stats.DogHealth = 0.4
	s.Stats.Hunger = 10

	Advance(&s, p, calm)
	require.False(t, s.Stats.HasDog)
	assert.InDelta(t, p.DogLossDecayPenalty, s.Stats.HopeDecayPenalty, 1e-9)
	hope := s.Stats.Hope

	Advance(&s, p, calm)
	assert.False(t, s.Stats.HasDog)
	assert.InDelta(t, p.DogLossDecayPenalty, s.Stats.HopeDecayPenalty, 1e-9)
	assert.InDelta(t, hope-p.HopeDecay*(1+p.DogLossDecayPenalty), s.Stats.Hope, 1e-9)
}

func TestDogGetsSickAfterSustainedHunger(t *testing.T) {
	p := DefaultParams()
	s := playing()
	s.Stats.HasDog = true
	s.Stats.Hunger = 20
	s.Stats.Hope = 100
	s.Stats.Warmth = 100
	for i := 0; i <= p.DogSickAfter; i++ {
		s.Stats.Hunger = 20
		Advance(&s, p, calm)
	}
	assert.True(t, s.Stats.DogSick)
	assert.True(t, s.Stats.HasDog)
}

func TestStatsStayClamped(t *testing.T) {
	p := DefaultParams()
	src := entropy.NewSeeded(7)
	s := playing()
	s.Stats.HasDog = true
	s.Stats.Stimulant = 99
	s.Flags.TripTicks = 40
	for i := 0; i < 500; i++ {
		Advance(&s, p, src)
		st := s.Stats
		for _, v := range []float64{st.Hunger, st.Warmth, st.Hope, st.Stimulant} {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 100.0)
		}
		require.GreaterOrEqual(t, st.Money, 0)
	}
}

func TestCheckGameOverCauses(t *testing.T) {
	cases := []struct {
		name  string
		set   func(*state.Stats)
		cause string
	}{
		{"starved", func(st *state.Stats) { st.Hunger = 0 }, CauseStarved},
		{"froze", func(st *state.Stats) { st.Warmth = 0 }, CauseFroze},
		{"gave up", func(st *state.Stats) { st.Hope = 0 }, CauseGaveUp},
		{"overdosed", func(st *state.Stats) { st.Stimulant = 100 }, CauseOverdosed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := playing()
			tc.set(&s.Stats)
			require.True(t, CheckGameOver(&s))
			assert.True(t, s.Flags.IsGameOver)
			assert.Equal(t, tc.cause, s.Flags.GameOverCause)
			assert.False(t, CheckGameOver(&s), "latched once")
		})
	}
}
