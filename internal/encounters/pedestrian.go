package encounters

import (
	"fmt"

	"github.com/talgya/streetsim/internal/entities"
	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/state"
)

// Outcome is the branch a pedestrian interaction resolved into.
type Outcome uint8

const (
	OutcomeNone Outcome = iota // no valid target

	StealKindness
	StealShout
	StealPanic
	StealSuccess

	PitchSuccess
	PitchIgnored
	PitchSecurity
	PitchRejected

	TradeAccepted
	TradeDisgusted
	TradeIgnored
	TradeTrap

	ConfrontLoot
	ConfrontRetaliation
	ConfrontPolice
	ConfrontFled
)

// Cooldowns, in ticks, that mark an illicit act as recent.
const (
	TheftCooldown    = 30
	ViolenceCooldown = 40
)

// Branch widths, tuned by feel.
const (
	stealPanicChance    = 0.2
	pitchIgnoreChance   = 0.45
	pitchSecurityChance = 0.15
	tradeDisgustChance  = 0.3
	tradeShareChance    = 0.25
	confrontLootChance  = 0.5
	confrontRetaliation = 0.6
	confrontPolice      = 0.2
)

func moneyToast(n int) string { return fmt.Sprintf("+$%d", n) }

// target returns the pedestrian currently targeted for an action.
func target(s *state.State) (state.Pedestrian, bool) {
	return s.Pedestrian(s.Flags.PedTarget)
}

// finish retires the acted-on pedestrian and clamps.
func finish(s *state.State, p state.Pedestrian, what string) {
	s.RetirePedestrian(p.ID)
	s.Stats.Clamp()
	s.Log("encounter", fmt.Sprintf("%s a %s", what, p.Archetype))
}

// Steal lifts from the targeted pedestrian.
func Steal(s *state.State, src entropy.Source) Outcome {
	p, ok := target(s)
	if !ok {
		return OutcomeNone
	}
	prof := modifiers.ProfileOf(p.Archetype).Steal
	kind := prof.KindnessChance * (0.5 + s.Effective(modifiers.KeyKindness))
	shout := prof.ShoutChance * (0.5 + s.Effective(modifiers.KeyCop))
	st := &s.Stats

	var out Outcome
	r := src.Float()
	switch {
	case r < kind:
		out = StealKindness
		gift := entropy.IntRange(src, 1, 5)
		st.Money += gift
		st.Hope += 5
		s.Notify(moneyToast(gift))
		s.Say(fmt.Sprintf("The %s catches your hand, then presses a few dollars into it.", p.Archetype))
	case r < kind+shout:
		out = StealShout
		st.Hope -= 5
		s.Flags.TheftCooldown = TheftCooldown
		entities.Summon(s)
		s.Say(fmt.Sprintf("The %s yells for the police.", p.Archetype))
	case r < kind+shout+stealPanicChance:
		out = StealPanic
		s.Flags.TheftCooldown = TheftCooldown / 2
		s.Say("You fumble it. They bolt.")
	default:
		out = StealSuccess
		take := entropy.IntRange(src, prof.MoneyMin, prof.MoneyMax)
		take = int(float64(take) * (0.75 + s.Effective(modifiers.KeyTheft)/2))
		st.Money += take
		st.Hope -= 2
		s.Flags.TheftCooldown = TheftCooldown
		s.Notify(moneyToast(take))
		s.Say("Clean lift. Nobody noticed. You noticed.")
	}
	finish(s, p, "stole from")
	return out
}

// PitchPerson pitches the startup to the targeted pedestrian. Only the
// success branch grants money.
func PitchPerson(s *state.State, src entropy.Source) Outcome {
	p, ok := target(s)
	if !ok {
		return OutcomeNone
	}
	prof := modifiers.ProfileOf(p.Archetype).Social
	success := prof.PitchSuccess * (0.5 + s.Effective(modifiers.KeyPitch))
	security := pitchSecurityChance * (0.5 + s.Effective(modifiers.KeyCop))
	st := &s.Stats

	var out Outcome
	r := src.Float()
	switch {
	case r < success:
		out = PitchSuccess
		amount := entropy.IntRange(src, 5, 20)
		st.Money += amount
		st.Hope += 5
		s.Notify(moneyToast(amount))
		s.Say(fmt.Sprintf("The %s Venmos you. \"Keep building.\"", p.Archetype))
	case r < success+pitchIgnoreChance:
		out = PitchIgnored
		st.Hope -= 1
		s.Say("They walk past like you're a parking meter.")
	case r < success+pitchIgnoreChance+security:
		out = PitchSecurity
		st.Hope -= 3
		entities.Summon(s)
		s.Say("\"Security!\" Someone is on the phone already.")
	default:
		out = PitchRejected
		st.Hope -= 4
		s.Say("\"That's not a business, that's a cry for help.\"")
	}
	finish(s, p, "pitched")
	return out
}

// Trade offers a hallucinogen charge to the targeted pedestrian. A police
// target is always a trap.
func Trade(s *state.State, src entropy.Source) Outcome {
	p, ok := target(s)
	if !ok || s.Stats.HallucinogenCharges < 1 {
		return OutcomeNone
	}
	st := &s.Stats
	if p.Archetype.IsPolice() {
		st.HallucinogenCharges--
		s.Say("A badge comes out of the jacket. It was a setup.")
		finish(s, p, "sold to")
		s.EndGame("arrested selling to a cop")
		return TradeTrap
	}
	will := modifiers.ProfileOf(p.Archetype).Social.TradeWillingness

	var out Outcome
	r := src.Float()
	switch {
	case r < will:
		out = TradeAccepted
		st.HallucinogenCharges--
		amount := entropy.IntRange(src, 15, 30)
		st.Money += amount
		s.Notify(moneyToast(amount))
		if entropy.Chance(src, tradeShareChance) {
			st.Hunger += 10
			s.Say("Deal. They split their burrito with you too.")
		} else {
			s.Say("Deal. Cash changes hands fast.")
		}
	case r < will+tradeDisgustChance:
		out = TradeDisgusted
		st.Hope -= 3
		s.Say("They look at you like you're something on their shoe.")
	default:
		out = TradeIgnored
		s.Say("They don't even slow down.")
	}
	finish(s, p, "offered a trade to")
	return out
}

// Confront shakes down the targeted pedestrian.
func Confront(s *state.State, src entropy.Source) Outcome {
	p, ok := target(s)
	if !ok {
		return OutcomeNone
	}
	prof := modifiers.ProfileOf(p.Archetype)
	loot := (1 - prof.Social.Retaliation) * confrontLootChance
	retal := prof.Social.Retaliation * confrontRetaliation
	police := confrontPolice * (0.5 + s.Effective(modifiers.KeyCop))
	st := &s.Stats
	s.Flags.ViolenceCooldown = ViolenceCooldown

	var out Outcome
	r := src.Float()
	switch {
	case r < loot:
		out = ConfrontLoot
		take := entropy.IntRange(src, prof.Steal.MoneyMin, prof.Steal.MoneyMax)
		st.Money += take
		st.Hope -= 5
		s.Notify(moneyToast(take))
		s.Say("They go down. You take what falls out.")
	case r < loot+retal:
		out = ConfrontRetaliation
		st.Hope -= 10
		st.Hunger -= 8
		st.Warmth -= 5
		s.Say("They fight back harder than you did.")
	case r < loot+retal+police:
		out = ConfrontPolice
		entities.Summon(s)
		s.Say("A siren chirps at the end of the block.")
	default:
		out = ConfrontFled
		st.Hope -= 2
		s.Say("They run. You're left shouting at nobody.")
	}
	finish(s, p, "confronted")
	return out
}

// GrabPurse snatches from a stealable pedestrian passing close by.
func GrabPurse(s *state.State, src entropy.Source) Outcome {
	p, ok := s.Pedestrian(s.Flags.PurseTarget)
	if !ok {
		return OutcomeNone
	}
	st := &s.Stats
	s.Flags.TheftCooldown = TheftCooldown

	var out Outcome
	if entropy.Chance(src, 0.5*(0.5+s.Effective(modifiers.KeyTheft))) {
		out = StealSuccess
		prof := modifiers.ProfileOf(p.Archetype).Steal
		take := entropy.IntRange(src, prof.MoneyMin, prof.MoneyMax)
		st.Money += take
		s.Notify(moneyToast(take))
		s.Say("You grab the bag and keep walking.")
	} else {
		out = StealShout
		st.Hope -= 5
		entities.Summon(s)
		s.Say("The strap holds. Everyone turns to look.")
	}
	finish(s, p, "grabbed at")
	return out
}
