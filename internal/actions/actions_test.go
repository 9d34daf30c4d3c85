package actions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/state"
	"github.com/talgya/streetsim/internal/world"
)

func playing() state.State {
	s := state.New()
	s.Screen = state.ScreenPlaying
	return s
}

func TestResolveEmptyOffScreen(t *testing.T) {
	s := state.New()
	assert.Equal(t, Triple{}, Resolve(&s))

	s = playing()
	s.Flags.ShopMode = true
	assert.Equal(t, Triple{}, Resolve(&s))

	s = playing()
	s.EndGame("starved")
	assert.Equal(t, Triple{}, Resolve(&s))
}

func TestResolveIsPure(t *testing.T) {
	s := playing()
	s.Entities.Vehicles = []state.Vehicle{{ID: 4, Encounter: true, Stopped: true}}
	s.Flags.PedTarget = 7
	s.Flags.PedActions = state.PedActionSet(0).With(state.PedPitch).With(state.PedConfront)
	s.Flags.Desperation = state.DesperationSet(0).With(state.DespSellBelongings)
	before := s.Clone()

	first := Resolve(&s)
	second := Resolve(&s)
	assert.Equal(t, first, second)
	assert.Equal(t, before, s)
}

func TestResolvePriority(t *testing.T) {
	s := playing()
	s.Entities.Vehicles = []state.Vehicle{{ID: 4, Encounter: true, Stopped: true}}
	s.Flags.DealerTarget = 9
	s.Flags.PedTarget = 7
	s.Flags.PedActions = state.PedActionSet(0).With(state.PedSteal).With(state.PedPitch).With(state.PedTrade).With(state.PedConfront)

	got := Resolve(&s)
	assert.Equal(t, Action{Kind: KindApproach, Target: 4, Label: "Approach the car"}, got.A)
	assert.Equal(t, KindPitch, got.B.Kind)
	assert.Equal(t, KindTrade, got.C.Kind, "trade wins over confront")
}

func TestResolveDealerThenSteal(t *testing.T) {
	s := playing()
	s.Flags.DealerTarget = 9
	s.Flags.PedTarget = 7
	s.Flags.PedActions = state.PedActionSet(0).With(state.PedSteal).With(state.PedConfront)

	got := Resolve(&s)
	assert.Equal(t, KindBuyDrugs, got.A.Kind)
	assert.Equal(t, uint64(9), got.A.Target)
	assert.False(t, got.B.Set())
	assert.Equal(t, KindConfront, got.C.Kind)
}

func TestResolvePurseWindowFillsBAndC(t *testing.T) {
	s := playing()
	s.Flags.PurseTarget = 5
	got := Resolve(&s)
	assert.Equal(t, KindGrab, got.B.Kind)
	assert.Equal(t, KindGrab, got.C.Kind)

	s.Flags.PedActions = state.PedActionSet(0).With(state.PedPitch)
	s.Flags.PedTarget = 6
	got = Resolve(&s)
	assert.False(t, got.Contains(KindGrab), "pedestrian actions close the purse window")
}

func TestResolveDesperationFillsInOrder(t *testing.T) {
	s := playing()
	s.Flags.Desperation = state.DesperationSet(0).
		With(state.DespBuyStimulant).
		With(state.DespTheft).
		With(state.DespSacrificeCompanion).
		With(state.DespSellBelongings)

	got := Resolve(&s)
	assert.Equal(t, KindTheft, got.A.Kind)
	assert.Equal(t, KindSellBelongings, got.B.Kind)
	assert.Equal(t, KindSacrificeCompanion, got.C.Kind)
}

func TestResolveZoneDefaultFillsA(t *testing.T) {
	s := playing()
	for x := state.LateralMin; x <= state.LateralMax; x++ {
		_, z := world.VenueAt(s.World.ScrollOffset, x)
		if z == world.ZoneNone {
			continue
		}
		s.Player.X = x
		s.Refresh()
		got := Resolve(&s)
		require.Equal(t, ZoneDefault(z), got.A, "zone %s", z)
		assert.False(t, got.B.Set())
	}
}

func TestResolveTakeInAlley(t *testing.T) {
	s := playing()
	for x := state.LateralMin; x <= state.LateralMax; x++ {
		if _, z := world.VenueAt(0, x); z == world.ZoneAlley {
			s.Player.X = x
			break
		}
	}
	s.Refresh()
	require.Equal(t, world.ZoneAlley, s.World.Zone)
	assert.Equal(t, KindScore, Resolve(&s).A.Kind)

	s.Stats.HallucinogenCharges = 1
	assert.Equal(t, KindTakeHallucinogen, Resolve(&s).A.Kind)

	s.Flags.TripTicks = 10
	assert.Equal(t, KindScore, Resolve(&s).A.Kind)
}

func TestEveryZoneHasDefault(t *testing.T) {
	for z := world.ZoneFood; z <= world.ZonePlaza; z++ {
		assert.True(t, ZoneDefault(z).Set(), "zone %s", z)
	}
	assert.False(t, ZoneDefault(world.ZoneNone).Set())
}

func TestParseKindRoundTrip(t *testing.T) {
	for k := KindApproach; k <= KindPanhandle; k++ {
		got, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("fly")
	assert.False(t, ok)
}

func TestLockHoldsChangedTriple(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	lock := NewLock(clock, DefaultHold)

	first := Triple{A: Action{Kind: KindBuyMeal}}
	second := Triple{A: Action{Kind: KindSteal, Target: 3}}
	third := Triple{A: Action{Kind: KindPanhandle}}

	assert.Equal(t, first, lock.Observe(first))

	clock.Advance(DefaultHold)
	assert.Equal(t, second, lock.Observe(second), "hold elapsed, change allowed")

	clock.Advance(time.Millisecond)
	assert.Equal(t, second, lock.Observe(third), "changed just now, frozen")

	clock.Advance(DefaultHold - 2*time.Millisecond)
	assert.Equal(t, second, lock.Observe(third))

	clock.Advance(time.Millisecond)
	assert.Equal(t, third, lock.Observe(third))
	assert.Equal(t, third, lock.Shown())
}

func TestLockSameTripleDoesNotRestartHold(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	lock := NewLock(clock, DefaultHold)
	a := Triple{A: Action{Kind: KindBuyMeal}}
	b := Triple{A: Action{Kind: KindGamble}}

	lock.Observe(a)
	for i := 0; i < 4; i++ {
		clock.Advance(100 * time.Millisecond)
		lock.Observe(a)
	}
	assert.Equal(t, b, lock.Observe(b))
}

func TestLockReset(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	lock := NewLock(clock, DefaultHold)
	lock.Observe(Triple{A: Action{Kind: KindBuyMeal}})
	lock.Reset()
	next := Triple{A: Action{Kind: KindDig}}
	assert.Equal(t, next, lock.Observe(next))
}

func TestResolveUsesTargetIDs(t *testing.T) {
	s := playing()
	s.Entities.Pedestrians = []state.Pedestrian{{ID: 12, Archetype: modifiers.ArchTourist}}
	s.Flags.PedTarget = 12
	s.Flags.PedActions = state.PedActionSet(0).With(state.PedSteal)
	assert.Equal(t, uint64(12), Resolve(&s).A.Target)
}
