package engine

import (
	"github.com/talgya/streetsim/internal/actions"
	"github.com/talgya/streetsim/internal/encounters"
	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/funding"
	"github.com/talgya/streetsim/internal/state"
	"github.com/talgya/streetsim/internal/world"
)

// Op names a player command.
type Op string

const (
	OpStart    Op = "start"
	OpRestart  Op = "restart"
	OpPause    Op = "pause"
	OpMove     Op = "move" // one step; the session repeats it while held
	OpMoveStop Op = "move_stop"
	OpDuck     Op = "duck"
	OpInteract Op = "interact"
	OpPress    Op = "press"
	OpBuyItem  Op = "buy_item"
	OpExitShop Op = "exit_shop"
)

// Command is one player input, as journaled.
type Command struct {
	Op     Op             `json:"op"`
	Dir    int            `json:"dir,omitempty"`    // OpMove: -1 left, 1 right
	Down   bool           `json:"down,omitempty"`   // OpDuck
	Action actions.Action `json:"action,omitempty"` // OpPress: the action that was displayed
	Index  int            `json:"index,omitempty"`  // OpBuyItem
}

// Apply runs one command against a snapshot. Inputs that do not apply come
// back as the unchanged snapshot; once the session has ended only restart
// does anything.
func Apply(prev state.State, cmd Command, env Env) state.State {
	switch cmd.Op {
	case OpRestart:
		return state.New()
	case OpStart:
		if prev.Screen != state.ScreenTitle {
			return prev
		}
		s := prev.Clone()
		s.Screen = state.ScreenPlaying
		s.Refresh()
		sampleWeather(&s, env.Weather)
		s.Log("session", "hit the streets")
		refreshAvailability(&s)
		return s
	case OpPause:
		if !prev.Playing() {
			return prev
		}
		s := prev.Clone()
		s.Flags.IsPaused = !s.Flags.IsPaused
		return s
	}

	if !prev.Playing() || prev.Flags.IsPaused {
		return prev
	}
	s := prev.Clone()
	if !dispatch(&s, cmd, env) {
		return prev
	}
	refreshAvailability(&s)
	settle(&s)
	return s
}

// frozenOps are absorbed while the freeze counter runs.
var frozenOps = map[Op]bool{
	OpMove: true, OpDuck: true, OpInteract: true, OpPress: true, OpBuyItem: true,
}

// dispatch mutates s for cmd and reports whether anything happened.
func dispatch(s *state.State, cmd Command, env Env) bool {
	if s.Flags.FreezeTicks > 0 && frozenOps[cmd.Op] {
		return false
	}
	switch cmd.Op {
	case OpMove:
		if s.Flags.ShopMode {
			return false
		}
		return move(s, cmd.Dir, env.Rules)
	case OpMoveStop:
		if s.Player.Locomotion != state.LocoWalking {
			return false
		}
		s.Player.Locomotion = state.LocoIdle
		return true
	case OpDuck:
		return duck(s, cmd.Down)
	case OpInteract:
		return interact(s, env)
	case OpPress:
		if s.Flags.ShopMode {
			return false
		}
		return execute(s, cmd.Action, env)
	case OpBuyItem:
		return buyItem(s, cmd.Index)
	case OpExitShop:
		if !s.Flags.ShopMode {
			return false
		}
		s.Flags.ShopMode = false
		s.Flags.ShopVenue = ""
		return true
	}
	return false
}

func duck(s *state.State, down bool) bool {
	p := &s.Player
	switch {
	case down && p.Locomotion != state.LocoDucking:
		p.Locomotion = state.LocoDucking
	case !down && p.Locomotion == state.LocoDucking:
		p.Locomotion = state.LocoIdle
	default:
		return false
	}
	return true
}

// interact waves off a stopped car, steps out of a shop, or runs the
// current zone's default action.
func interact(s *state.State, env Env) bool {
	if _, ok := s.ActiveEncounter(); ok {
		encounters.Ignore(s)
		return true
	}
	if s.Flags.ShopMode {
		s.Flags.ShopMode = false
		s.Flags.ShopVenue = ""
		return true
	}
	a := actions.ZoneDefault(s.World.Zone)
	if !a.Set() {
		return false
	}
	return execute(s, a, env)
}

var pedActions = map[actions.Kind]state.PedAction{
	actions.KindSteal:    state.PedSteal,
	actions.KindPitch:    state.PedPitch,
	actions.KindTrade:    state.PedTrade,
	actions.KindConfront: state.PedConfront,
}

// execute runs a displayed action if it still applies to s.
func execute(s *state.State, a actions.Action, env Env) bool {
	src := env.Rand
	switch a.Kind {
	case actions.KindNone:
		return false

	case actions.KindApproach:
		if _, ok := s.ActiveEncounter(); !ok {
			return false
		}
		encounters.Approach(s, src)
		return true
	case actions.KindBuyDrugs:
		if s.Flags.DealerTarget != a.Target {
			return false
		}
		return encounters.BuyFromDealer(s, src) != encounters.DealNone
	case actions.KindTakeHallucinogen:
		if s.World.Zone != world.ZoneAlley {
			return false
		}
		return encounters.TakeHallucinogen(s, env.Rules.Stats.TripLength)

	case actions.KindSteal, actions.KindPitch, actions.KindTrade, actions.KindConfront:
		// The mark must still be the one in reach, and the action still on offer.
		if a.Target == 0 || s.Flags.PedTarget != a.Target || !s.Flags.PedActions.Has(pedActions[a.Kind]) {
			return false
		}
		if _, ok := s.Pedestrian(a.Target); !ok {
			return false
		}
		var out encounters.Outcome
		switch a.Kind {
		case actions.KindSteal:
			out = encounters.Steal(s, src)
		case actions.KindPitch:
			out = encounters.PitchPerson(s, src)
		case actions.KindTrade:
			out = encounters.Trade(s, src)
		default:
			out = encounters.Confront(s, src)
		}
		return out != encounters.OutcomeNone
	case actions.KindGrab:
		return grab(s, a.Target, src)

	case actions.KindTheft:
		if !s.Flags.Desperation.Has(state.DespTheft) {
			return false
		}
		shoplift(s, src)
		return true
	case actions.KindSellBelongings:
		if !s.Flags.Desperation.Has(state.DespSellBelongings) {
			return false
		}
		return sellBelongings(s, false)
	case actions.KindSacrificeCompanion:
		if !s.Flags.Desperation.Has(state.DespSacrificeCompanion) {
			return false
		}
		sacrificeCompanion(s, env.Rules)
		return true
	case actions.KindBuyStimulant:
		if !s.Flags.Desperation.Has(state.DespBuyStimulant) {
			return false
		}
		return buyStreetStimulant(s)
	case actions.KindPurseSteal:
		if !s.Flags.Desperation.Has(state.DespPurseSteal) {
			return false
		}
		return grab(s, a.Target, src)

	case actions.KindPitchInvestors:
		if s.World.Zone != world.ZonePitch {
			return false
		}
		out := funding.Pitch(s, src)
		return out != funding.OutcomeNone && out != funding.OutcomeTooTired
	}

	// Everything left is a venue default, valid only in its own zone.
	if actions.ZoneDefault(s.World.Zone).Kind != a.Kind {
		return false
	}
	return zoneAction(s, a.Kind, src)
}

func grab(s *state.State, id uint64, src entropy.Source) bool {
	if _, ok := s.Pedestrian(id); !ok {
		return false
	}
	s.Flags.PurseTarget = id
	return encounters.GrabPurse(s, src) != encounters.OutcomeNone
}
