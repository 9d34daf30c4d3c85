package encounters

import (
	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/state"
	"github.com/talgya/streetsim/internal/world"
)

// Deal is the result of a purchase.
type Deal uint8

const (
	DealNone Deal = iota // no seller or no money
	DealStimulant
	DealHallucinogen
	DealScammed
	DealBadBatch
)

// Street prices and doses.
const (
	dealerStimChance = 0.65
	stimDose         = 25.0
	alleyDose        = 20.0

	// AlleyDrugFloor is the effective drug modifier an alley needs to have
	// someone selling in it.
	AlleyDrugFloor = 0.4
	alleyScam      = 0.2
	alleyBadBatch  = 0.1
)

// BuyFromDealer buys from the lurking dealer next to the player. The
// product and price are rolled first; a price the player can't cover is
// absorbed and nothing changes.
func BuyFromDealer(s *state.State, src entropy.Source) Deal {
	if _, ok := s.Pedestrian(s.Flags.DealerTarget); !ok {
		return DealNone
	}
	st := &s.Stats
	if entropy.Chance(src, dealerStimChance) {
		price := entropy.IntRange(src, 10, 20)
		if st.Money < price {
			return DealNone
		}
		st.Spend(price)
		st.Stimulant += stimDose
		s.Say("A folded paper packet changes hands.")
		s.Log("drugs", "bought stimulant from a dealer")
		st.Clamp()
		return DealStimulant
	}
	price := entropy.IntRange(src, 15, 25)
	if st.Money < price {
		return DealNone
	}
	st.Spend(price)
	st.HallucinogenCharges++
	s.Say("A tab of blotter paper, printed with a tiny Golden Gate.")
	s.Log("drugs", "bought a hallucinogen charge")
	st.Clamp()
	return DealHallucinogen
}

// AlleyOpen reports whether anyone is selling in the current alley.
func AlleyOpen(s *state.State) bool {
	return s.World.Zone == world.ZoneAlley && s.Effective(modifiers.KeyDrug) >= AlleyDrugFloor
}

// BuyInAlley scores from whoever is working the alley: cheaper than a
// dealer, and riskier.
func BuyInAlley(s *state.State, src entropy.Source) Deal {
	if !AlleyOpen(s) {
		return DealNone
	}
	st := &s.Stats
	price := entropy.IntRange(src, 5, 12)
	if st.Money < price {
		return DealNone
	}
	st.Spend(price)

	var d Deal
	r := src.Float()
	switch {
	case r < alleyScam:
		d = DealScammed
		s.Say("It's crushed aspirin. The guy is already gone.")
	case r < alleyScam+alleyBadBatch:
		d = DealBadBatch
		st.Stimulant += alleyDose
		st.Hope -= 8
		st.Hunger -= 5
		s.Say("Something is wrong with this batch.")
	default:
		d = DealStimulant
		st.Stimulant += alleyDose
		s.Say("You duck behind the dumpster and use.")
	}
	s.Log("drugs", "scored in an alley")
	st.Clamp()
	return d
}

// TakeHallucinogen starts a trip lasting length ticks.
func TakeHallucinogen(s *state.State, length int) bool {
	if s.Stats.HallucinogenCharges < 1 || s.Flags.TripTicks > 0 {
		return false
	}
	s.Stats.HallucinogenCharges--
	s.Flags.TripTicks = length
	s.Say("The fog starts to breathe.")
	s.Log("drugs", "started a trip")
	return true
}
