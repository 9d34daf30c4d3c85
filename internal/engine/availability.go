package engine

import (
	"math"

	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/state"
)

// Interaction reach, in lateral units.
const (
	PedReach    = 8.0
	DealerReach = 10.0
	PurseReach  = 4.0
)

// Desperation thresholds.
const (
	desperateHunger  = 20.0
	desperateVitals  = 30.0
	criticalVitals   = 15.0
	brokeBelow       = 5
	confrontBelow    = 10
	hopelessBelow    = 25.0
	streetStimPrice  = 10
	streetStimDose   = 20.0
	streetStimSupply = 0.3
)

// refreshAvailability recomputes targets, offered pedestrian actions and
// desperation actions from the snapshot.
func refreshAvailability(s *state.State) {
	f := &s.Flags
	f.PedTarget, f.PedActions, f.DealerTarget = 0, 0, 0

	var target *state.Pedestrian
	best := PedReach
	for i := range s.Entities.Pedestrians {
		p := &s.Entities.Pedestrians[i]
		d := math.Abs(p.X - s.Player.X)
		if p.Archetype == modifiers.ArchDealer {
			if d < DealerReach {
				f.DealerTarget = p.ID
			}
			continue
		}
		if d < best {
			best, target = d, p
		}
	}

	// Only a player standing still can work a mark.
	if target != nil && s.Player.Locomotion == state.LocoIdle {
		f.PedTarget = target.ID
		set := state.PedActionSet(0).With(state.PedPitch)
		if target.Stealable {
			set = set.With(state.PedSteal)
		}
		if s.Stats.HallucinogenCharges > 0 {
			set = set.With(state.PedTrade)
		}
		if s.Stats.Money < confrontBelow || s.Stats.Hunger < desperateVitals {
			set = set.With(state.PedConfront)
		}
		f.PedActions = set
	}

	f.Desperation = desperation(s)
}

func desperation(s *state.State) state.DesperationSet {
	st := &s.Stats
	var set state.DesperationSet
	if st.Hunger < desperateHunger && st.Money < brokeBelow {
		set = set.With(state.DespTheft)
	}
	if st.HasAsset() && st.Money < brokeBelow && (st.Hunger < desperateVitals || st.Warmth < desperateVitals) {
		set = set.With(state.DespSellBelongings)
	}
	if st.HasDog && (st.Hunger < criticalVitals || st.Warmth < criticalVitals || st.Hope < criticalVitals) {
		set = set.With(state.DespSacrificeCompanion)
	}
	if st.Hope < hopelessBelow && st.Money >= streetStimPrice && s.Effective(modifiers.KeyDrug) >= streetStimSupply {
		set = set.With(state.DespBuyStimulant)
	}
	if st.Money == 0 && s.Flags.PurseTarget != 0 {
		set = set.With(state.DespPurseSteal)
	}
	return set
}

// openPurseWindow gives a walking player a brief chance at a bag swinging
// past.
func openPurseWindow(s *state.State) {
	f := &s.Flags
	if f.PurseTarget != 0 || s.Player.Locomotion != state.LocoWalking {
		return
	}
	for _, p := range s.Entities.Pedestrians {
		if p.Stealable && p.Archetype != modifiers.ArchDealer && math.Abs(p.X-s.Player.X) < PurseReach {
			f.PurseTarget = p.ID
			f.PurseTicks = state.PurseTicks
			return
		}
	}
}
