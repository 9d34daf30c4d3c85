// Package actions decides what the three context buttons do for a snapshot,
// and holds the lock that keeps a displayed choice from changing under a
// player's thumb.
package actions

import (
	"fmt"

	"github.com/talgya/streetsim/internal/state"
	"github.com/talgya/streetsim/internal/world"
)

// Kind tags an action descriptor.
type Kind uint8

const (
	KindNone Kind = iota

	KindApproach
	KindBuyDrugs
	KindTakeHallucinogen

	KindSteal
	KindPitch
	KindTrade
	KindConfront
	KindGrab

	KindTheft
	KindSellBelongings
	KindSacrificeCompanion
	KindBuyStimulant
	KindPurseSteal

	KindBuyMeal
	KindEnterShop
	KindSleep
	KindSleepRough
	KindScore
	KindPitchInvestors
	KindAskCharity
	KindGamble
	KindPawn
	KindDig
	KindPanhandle
)

var kindNames = [...]string{
	KindNone:               "none",
	KindApproach:           "approach",
	KindBuyDrugs:           "buy",
	KindTakeHallucinogen:   "take",
	KindSteal:              "steal",
	KindPitch:              "pitch",
	KindTrade:              "trade",
	KindConfront:           "confront",
	KindGrab:               "grab",
	KindTheft:              "theft",
	KindSellBelongings:     "sell_belongings",
	KindSacrificeCompanion: "sacrifice_companion",
	KindBuyStimulant:       "buy_stimulant",
	KindPurseSteal:         "purse_steal",
	KindBuyMeal:            "buy_meal",
	KindEnterShop:          "enter_shop",
	KindSleep:              "sleep",
	KindSleepRough:         "sleep_rough",
	KindScore:              "score",
	KindPitchInvestors:     "pitch_investors",
	KindAskCharity:         "ask_charity",
	KindGamble:             "gamble",
	KindPawn:               "pawn",
	KindDig:                "dig",
	KindPanhandle:          "panhandle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a wire name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// MarshalText encodes the wire name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a wire name.
func (k *Kind) UnmarshalText(b []byte) error {
	v, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown action %q", b)
	}
	*k = v
	return nil
}

// Action is one slot's descriptor. Target is the entity acted on, if any.
type Action struct {
	Kind   Kind   `json:"kind"`
	Target uint64 `json:"target,omitempty"`
	Label  string `json:"label"`
}

// Set reports whether the slot holds an action.
func (a Action) Set() bool { return a.Kind != KindNone }

// Triple is the three context slots.
type Triple struct {
	A Action `json:"a"`
	B Action `json:"b"`
	C Action `json:"c"`
}

// Slots returns pointers to A, B and C in order.
func (t *Triple) Slots() [3]*Action {
	return [3]*Action{&t.A, &t.B, &t.C}
}

// Contains reports whether any slot holds an action of kind k.
func (t Triple) Contains(k Kind) bool {
	return t.A.Kind == k || t.B.Kind == k || t.C.Kind == k
}

var desperationActions = [...]Action{
	state.DespTheft:              {Kind: KindTheft, Label: "Shoplift"},
	state.DespSellBelongings:     {Kind: KindSellBelongings, Label: "Sell your stuff"},
	state.DespSacrificeCompanion: {Kind: KindSacrificeCompanion, Label: "Give up the dog"},
	state.DespBuyStimulant:       {Kind: KindBuyStimulant, Label: "Buy a bump"},
	state.DespPurseSteal:         {Kind: KindPurseSteal, Label: "Snatch a purse"},
}

var zoneDefaults = map[world.Zone]Action{
	world.ZoneFood:     {Kind: KindBuyMeal, Label: "Buy a meal"},
	world.ZoneShop:     {Kind: KindEnterShop, Label: "Go inside"},
	world.ZoneShelter:  {Kind: KindSleep, Label: "Sleep"},
	world.ZoneBench:    {Kind: KindSleepRough, Label: "Sleep rough"},
	world.ZoneAlley:    {Kind: KindScore, Label: "Score"},
	world.ZonePitch:    {Kind: KindPitchInvestors, Label: "Pitch investors"},
	world.ZoneCharity:  {Kind: KindAskCharity, Label: "Ask for help"},
	world.ZoneGamble:   {Kind: KindGamble, Label: "Gamble"},
	world.ZonePawn:     {Kind: KindPawn, Label: "Pawn something"},
	world.ZoneDumpster: {Kind: KindDig, Label: "Dig through"},
	world.ZonePlaza:    {Kind: KindPanhandle, Label: "Panhandle"},
}

// ZoneDefault returns the default action of a zone, or none.
func ZoneDefault(z world.Zone) Action {
	return zoneDefaults[z]
}

// Resolve maps a snapshot to its three context slots. Rules run in strict
// priority order and only ever fill empty slots. It reads s and nothing
// else.
func Resolve(s *state.State) Triple {
	var t Triple
	if !s.Playing() || s.Flags.IsPaused || s.Flags.ShopMode || s.Flags.FreezeTicks > 0 {
		return t
	}
	f := &s.Flags

	if v, ok := s.ActiveEncounter(); ok {
		t.A = Action{Kind: KindApproach, Target: v.ID, Label: "Approach the car"}
	}

	if f.DealerTarget != 0 && !t.A.Set() {
		t.A = Action{Kind: KindBuyDrugs, Target: f.DealerTarget, Label: "Buy"}
	}

	if s.World.Zone == world.ZoneAlley && s.Stats.HallucinogenCharges > 0 && f.TripTicks == 0 && !t.A.Set() {
		t.A = Action{Kind: KindTakeHallucinogen, Label: "Drop a tab"}
	}

	if f.PedActions != 0 {
		if f.PedActions.Has(state.PedSteal) && !t.A.Set() {
			t.A = Action{Kind: KindSteal, Target: f.PedTarget, Label: "Steal"}
		}
		if f.PedActions.Has(state.PedPitch) && !t.B.Set() {
			t.B = Action{Kind: KindPitch, Target: f.PedTarget, Label: "Pitch"}
		}
		if !t.C.Set() {
			switch {
			case f.PedActions.Has(state.PedTrade):
				t.C = Action{Kind: KindTrade, Target: f.PedTarget, Label: "Trade"}
			case f.PedActions.Has(state.PedConfront):
				t.C = Action{Kind: KindConfront, Target: f.PedTarget, Label: "Confront"}
			}
		}
	}

	if f.PurseTarget != 0 && f.PedActions == 0 {
		grab := Action{Kind: KindGrab, Target: f.PurseTarget, Label: "Grab"}
		if !t.B.Set() {
			t.B = grab
		}
		if !t.C.Set() {
			t.C = grab
		}
	}

	for _, d := range f.Desperation.List() {
		a := desperationActions[d]
		if d == state.DespPurseSteal {
			a.Target = f.PurseTarget
		}
		fill(&t, a)
	}

	if !t.A.Set() {
		t.A = ZoneDefault(s.World.Zone)
	}
	return t
}

// fill puts a into the first empty slot, if any.
func fill(t *Triple, a Action) {
	for _, slot := range t.Slots() {
		if !slot.Set() {
			*slot = a
			return
		}
	}
}
