package autopilot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/streetsim/internal/actions"
	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/state"
	"github.com/talgya/streetsim/internal/world"
)

func playing() state.State {
	s := state.New()
	s.Screen = state.ScreenPlaying
	return s
}

func TestTriageLevels(t *testing.T) {
	tests := []struct {
		hunger, warmth, hope float64
		level                Level
		weakest              string
	}{
		{80, 80, 80, Healthy, "hunger"},
		{45, 80, 80, Watch, "hunger"},
		{80, 25, 80, Warning, "warmth"},
		{80, 80, 10, Critical, "hope"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.level, tt.weakest), func(t *testing.T) {
			s := playing()
			s.Stats.Hunger, s.Stats.Warmth, s.Stats.Hope = tt.hunger, tt.warmth, tt.hope
			h := Triage(&s)
			assert.Equal(t, tt.level, h.Level)
			assert.Equal(t, tt.weakest, h.Weakest)
		})
	}
}

func TestStartsFromTitle(t *testing.T) {
	p := New(DefaultPolicy())
	d, ok := p.Next(state.New())
	require.True(t, ok)
	assert.Equal(t, engine.OpStart, d.Cmd.Op)

	last, ok := p.Memory.Last()
	require.True(t, ok)
	assert.Equal(t, "start", last.Action)
}

func TestNothingToDoAfterEnd(t *testing.T) {
	s := playing()
	s.EndGame("test")
	_, ok := New(DefaultPolicy()).Next(s)
	assert.False(t, ok)
}

func TestResumesWhenPaused(t *testing.T) {
	s := playing()
	s.Flags.IsPaused = true
	d, ok := New(DefaultPolicy()).Next(s)
	require.True(t, ok)
	assert.Equal(t, engine.OpPause, d.Cmd.Op)
}

func TestShopBuysThenLeaves(t *testing.T) {
	s := playing()
	s.Flags.ShopMode = true
	s.World.Venue.Type = world.VenueCornerStore
	s.Stats.Hunger = 30
	s.Stats.Money = 12

	d, ok := New(DefaultPolicy()).Next(s)
	require.True(t, ok)
	assert.Equal(t, engine.Command{Op: engine.OpBuyItem, Index: 0}, d.Cmd)

	s.Stats.Money = 2
	d, _ = New(DefaultPolicy()).Next(s)
	assert.Equal(t, engine.OpExitShop, d.Cmd.Op)
}

func TestDogFoodWhenDogIsHungry(t *testing.T) {
	h := Health{Hunger: 90, Warmth: 90, Hope: 90, Money: 20, DogNeed: true}
	i, ok := bestItem(engine.ShopItems(world.VenueCornerStore), h)
	require.True(t, ok)
	assert.True(t, engine.ShopItems(world.VenueCornerStore)[i].DogFood)
}

func TestPitchNeedsReserves(t *testing.T) {
	p := New(DefaultPolicy())
	pitch := actions.Action{Kind: actions.KindPitchInvestors}

	s := playing()
	s.Stats.Hunger, s.Stats.Hope = 90, 60
	score, _ := p.score(&s, Triage(&s), pitch)
	assert.Greater(t, score, 0.0)

	s.Stats.Hope = 20
	score, _ = p.score(&s, Triage(&s), pitch)
	assert.Zero(t, score)

	s.Stats.Hope, s.Stats.FundingStage = 90, state.StageIPO
	score, _ = p.score(&s, Triage(&s), pitch)
	assert.Zero(t, score)
}

func TestSafePolicySkipsVice(t *testing.T) {
	s := playing()
	s.Stats.Hope, s.Stats.Money = 20, 30
	gamble := actions.Action{Kind: actions.KindGamble}

	score, _ := New(DefaultPolicy()).score(&s, Triage(&s), gamble)
	assert.Zero(t, score)

	risky := DefaultPolicy()
	risky.Risky = true
	score, _ = New(risky).score(&s, Triage(&s), gamble)
	assert.Greater(t, score, 0.0)
}

func TestSacrificeIsLastResort(t *testing.T) {
	s := playing()
	s.Stats.Hunger = 10
	sacrifice := actions.Action{Kind: actions.KindSacrificeCompanion}
	p := New(DefaultPolicy())

	score, _ := p.score(&s, Triage(&s), sacrifice)
	assert.Zero(t, score, "still has belongings and cash")

	s.Stats.HasWatch, s.Stats.HasLaptop, s.Stats.HasPhone = false, false, false
	s.Stats.Money = 0
	score, _ = p.score(&s, Triage(&s), sacrifice)
	assert.Greater(t, score, 0.0)
}

func TestImproved(t *testing.T) {
	h := Health{Hunger: 50, Warmth: 50, Hope: 50, Money: 5}
	assert.False(t, improved(h, h))
	better := h
	better.Money++
	assert.True(t, improved(h, better))
}

func TestMemoryTrims(t *testing.T) {
	m := NewMemory()
	for i := 0; i < 25; i++ {
		action := "move"
		if i%5 == 0 {
			action = "buy_meal"
		}
		m.Record(Record{Tick: i, Action: action, Level: "HEALTHY"})
	}
	assert.Len(t, m.Records, maxRecords)
	assert.Equal(t, 24, m.Records[maxRecords-1].Tick)
	assert.Equal(t, []string{"move×20", "buy_meal×5"}, m.Top(5))
	assert.Contains(t, m.Format(), "t=24 move [HEALTHY]")
}

func TestDriveIsDeterministic(t *testing.T) {
	run := func() (state.State, []engine.Transition) {
		var log []engine.Transition
		env := engine.NewEnv(engine.DefaultRules(), 11)
		final := New(DefaultPolicy()).Drive(state.New(), env, 900, func(tr engine.Transition, _ state.State) {
			log = append(log, tr)
		})
		return final, log
	}
	a, logA := run()
	b, logB := run()
	assert.Equal(t, a, b)
	assert.Equal(t, logA, logB)

	// The recorded transitions alone reproduce the drive.
	env := engine.NewEnv(engine.DefaultRules(), 11)
	s := state.New()
	for _, tr := range logA {
		s = tr.Apply(s, env)
	}
	assert.Equal(t, a, s)
}

func TestDriveKeepsStatsInRange(t *testing.T) {
	risky := DefaultPolicy()
	risky.Risky = true
	for seed := int64(1); seed <= 5; seed++ {
		env := engine.NewEnv(engine.DefaultRules(), seed)
		s := New(risky).Drive(state.New(), env, 1200, func(_ engine.Transition, next state.State) {
			st := next.Stats
			for _, v := range []float64{st.Hunger, st.Warmth, st.Hope, st.Stimulant, st.DogHealth} {
				require.GreaterOrEqual(t, v, 0.0)
				require.LessOrEqual(t, v, 100.0)
			}
			require.GreaterOrEqual(t, st.Money, 0)
		})
		assert.Equal(t, state.ScreenPlaying, s.Screen, "seed %d", seed)
		assert.Positive(t, s.Stats.ElapsedSeconds, "seed %d", seed)
	}
}
