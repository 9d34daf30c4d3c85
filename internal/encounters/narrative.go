package encounters

import (
	"fmt"

	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/state"
)

// Ambient event odds per tick, before district scaling.
const (
	kindnessChance     = 0.004
	nightAttackChance  = 0.0015
	coldSicknessChance = 0.02
	coldSicknessBelow  = 25.0
	dealerOfferChance  = 0.01
	tabOfferChance     = 0.005

	// CreditTrapPenalty is added to the hope-decay penalty when a dealer
	// fronts product on credit. It is never repaid.
	CreditTrapPenalty = 0.1
)

// Ambient rolls the independent low-probability events of a tick. Each roll
// happens regardless of the others.
func Ambient(s *state.State, src entropy.Source) {
	st := &s.Stats

	if entropy.Chance(src, kindnessChance*s.Effective(modifiers.KeyKindness)) {
		if entropy.Chance(src, 0.5) {
			gift := entropy.IntRange(src, 1, 10)
			st.Money += gift
			s.Notify(moneyToast(gift))
			s.Say("A stranger hands you a folded bill without a word.")
		} else {
			st.Hunger += 15
			s.Say("Someone leaves a warm burrito next to you.")
		}
		s.Log("narrative", "kindness")
	}

	if s.World.TimeOfDay == modifiers.Night &&
		entropy.Chance(src, nightAttackChance*s.Effective(modifiers.KeyViolence)) {
		s.Say("Footsteps behind you, then nothing.")
		s.EndGame("attacked in the night")
		return
	}

	if st.Warmth < coldSicknessBelow && entropy.Chance(src, coldSicknessChance) {
		st.Hope -= 5
		st.Hunger -= 5
		s.Say("Your cough has a rattle in it now.")
		s.Log("narrative", "cold sickness")
	}

	if s.Effective(modifiers.KeyDrug) > modifiers.DealerThreshold && entropy.Chance(src, dealerOfferChance) {
		dealerOffer(s, src)
	}

	if entropy.Chance(src, tabOfferChance*s.Effective(modifiers.KeyDrug)) {
		st.HallucinogenCharges++
		s.Say("A dreadlocked stranger presses a tab into your palm. \"For the journey.\"")
		s.Log("narrative", "given a hallucinogen")
	}
	st.Clamp()
}

func dealerOffer(s *state.State, src entropy.Source) {
	st := &s.Stats
	switch entropy.Pick(src, 4) {
	case 0:
		st.Stimulant += 15
		s.Say("\"First one's free.\" It always is.")
	case 1:
		lost := st.Spend(entropy.IntRange(src, 3, 8))
		if lost > 0 {
			s.Notify(fmt.Sprintf("-$%d", lost))
		}
		s.Say("They take your money and vanish onto a bus.")
	case 2:
		st.Stimulant += 25
		st.HopeDecayPenalty += CreditTrapPenalty
		s.Say("\"Pay me later.\" You both know what later means.")
		s.Log("drugs", "took product on credit")
	default:
		s.Say("\"You need anything?\" You do. You say no.")
	}
}
