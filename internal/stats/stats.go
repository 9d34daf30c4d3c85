// Package stats advances the player's survival resources once per tick:
// decay, the stimulant high/withdrawal/crash cycle, hallucinogen trips,
// warmth loss under the current weather, and the companion dog.
package stats

import (
	"fmt"

	"github.com/talgya/streetsim/internal/entities"
	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/state"
)

// Params tunes the stat engine.
type Params struct {
	HungerDecay    float64 `yaml:"hunger_decay" json:"hunger_decay"`
	HopeDecay      float64 `yaml:"hope_decay" json:"hope_decay"`
	StimulantDecay float64 `yaml:"stimulant_decay" json:"stimulant_decay"`

	HighThreshold     float64 `yaml:"high_threshold" json:"high_threshold"`
	WithdrawalCeiling float64 `yaml:"withdrawal_ceiling" json:"withdrawal_ceiling"`

	HighHopeGain    float64 `yaml:"high_hope_gain" json:"high_hope_gain"`
	HighHungerDrain float64 `yaml:"high_hunger_drain" json:"high_hunger_drain"`
	HighWarmthGain  float64 `yaml:"high_warmth_gain" json:"high_warmth_gain"`

	ParanoiaChance   float64 `yaml:"paranoia_chance" json:"paranoia_chance"`
	ParanoiaHopeLoss float64 `yaml:"paranoia_hope_loss" json:"paranoia_hope_loss"`
	ParanoiaPenalty  float64 `yaml:"paranoia_penalty" json:"paranoia_penalty"`

	HallucinationChance     float64 `yaml:"hallucination_chance" json:"hallucination_chance"`
	HallucinationHopeLoss   float64 `yaml:"hallucination_hope_loss" json:"hallucination_hope_loss"`
	HallucinationHungerLoss float64 `yaml:"hallucination_hunger_loss" json:"hallucination_hunger_loss"`

	CrashHopeLoss   float64 `yaml:"crash_hope_loss" json:"crash_hope_loss"`
	CrashWarmthLoss float64 `yaml:"crash_warmth_loss" json:"crash_warmth_loss"`

	// WarmthDecay is the base warmth loss per tick in each time of day.
	WarmthDecay [modifiers.NumTimesOfDay]float64 `yaml:"warmth_decay" json:"warmth_decay"`

	TripLength           int     `yaml:"trip_length" json:"trip_length"`
	TripHopeGain         float64 `yaml:"trip_hope_gain" json:"trip_hope_gain"`
	TripHungerGain       float64 `yaml:"trip_hunger_gain" json:"trip_hunger_gain"`
	TripWarmthGain       float64 `yaml:"trip_warmth_gain" json:"trip_warmth_gain"`
	TripFlavorEvery      int     `yaml:"trip_flavor_every" json:"trip_flavor_every"`
	TripExpiryHopeLoss   float64 `yaml:"trip_expiry_hope_loss" json:"trip_expiry_hope_loss"`
	TripExpiryHungerLoss float64 `yaml:"trip_expiry_hunger_loss" json:"trip_expiry_hunger_loss"`

	DogHopeGain         float64 `yaml:"dog_hope_gain" json:"dog_hope_gain"`
	DogWarmthGain       float64 `yaml:"dog_warmth_gain" json:"dog_warmth_gain"`
	DogHungerThreshold  float64 `yaml:"dog_hunger_threshold" json:"dog_hunger_threshold"`
	DogHealthDrain      float64 `yaml:"dog_health_drain" json:"dog_health_drain"`
	DogHealthRegen      float64 `yaml:"dog_health_regen" json:"dog_health_regen"`
	DogSickAfter        int     `yaml:"dog_sick_after" json:"dog_sick_after"`
	DogLossHopeLoss     float64 `yaml:"dog_loss_hope_loss" json:"dog_loss_hope_loss"`
	DogLossDecayPenalty float64 `yaml:"dog_loss_decay_penalty" json:"dog_loss_decay_penalty"`
}

// DefaultParams returns the stock balance.
func DefaultParams() Params {
	return Params{
		HungerDecay:    0.5,
		HopeDecay:      0.3,
		StimulantDecay: 0.5,

		HighThreshold:     30,
		WithdrawalCeiling: 20,

		HighHopeGain:    0.8,
		HighHungerDrain: 0.4,
		HighWarmthGain:  0.5,

		ParanoiaChance:   0.03,
		ParanoiaHopeLoss: 2,
		ParanoiaPenalty:  0.02,

		HallucinationChance:     0.05,
		HallucinationHopeLoss:   3,
		HallucinationHungerLoss: 2,

		CrashHopeLoss:   10,
		CrashWarmthLoss: 5,

		WarmthDecay: [modifiers.NumTimesOfDay]float64{
			modifiers.Morning:   0.3,
			modifiers.Afternoon: 0.2,
			modifiers.Evening:   0.5,
			modifiers.Night:     0.9,
		},

		TripLength:           60,
		TripHopeGain:         0.5,
		TripHungerGain:       0.2,
		TripWarmthGain:       0.3,
		TripFlavorEvery:      5,
		TripExpiryHopeLoss:   8,
		TripExpiryHungerLoss: 5,

		DogHopeGain:         0.2,
		DogWarmthGain:       0.2,
		DogHungerThreshold:  25,
		DogHealthDrain:      0.5,
		DogHealthRegen:      0.1,
		DogSickAfter:        30,
		DogLossHopeLoss:     25,
		DogLossDecayPenalty: 0.25,
	}
}

// Advance applies one tick of stat changes to s in place. s is a fresh
// clone owned by the caller.
func Advance(s *state.State, p Params, src entropy.Source) {
	st := &s.Stats

	st.Hunger -= p.HungerDecay
	st.Hope -= p.HopeDecay * (1 + st.HopeDecayPenalty)

	before := st.Stimulant
	if st.Stimulant > 0 {
		st.Stimulant -= p.StimulantDecay
		if st.Stimulant < 0 {
			st.Stimulant = 0
		}
	}
	intoxication(s, p, src, before)

	warmth(s, p)
	trip(s, p, src)
	companion(s, p)

	st.Clamp()
}

func intoxication(s *state.State, p Params, src entropy.Source, before float64) {
	st := &s.Stats
	switch {
	case st.Stimulant > p.HighThreshold:
		st.Hope += p.HighHopeGain
		st.Hunger -= p.HighHungerDrain
		st.Warmth += p.HighWarmthGain
		if entropy.Chance(src, p.ParanoiaChance) {
			st.Hope -= p.ParanoiaHopeLoss
			st.HopeDecayPenalty += p.ParanoiaPenalty
			entities.Summon(s)
			s.Say("Every face on Market St is a cop. One of them actually is.")
			s.Log("stats", "paranoia")
		}
	case st.Stimulant > 0 && st.Stimulant <= p.WithdrawalCeiling:
		if entropy.Chance(src, p.HallucinationChance) {
			st.Hope -= p.HallucinationHopeLoss
			st.Hunger -= p.HallucinationHungerLoss
			s.Say("The bus shelter ad is whispering your burn rate.")
			s.Log("stats", "withdrawal hallucination")
		}
	}
	if before > p.HighThreshold && st.Stimulant <= p.HighThreshold {
		st.Hope -= p.CrashHopeLoss
		st.Warmth -= p.CrashWarmthLoss
		s.Say("The high drops out from under you.")
		s.Log("stats", "crash")
	}
}

func warmth(s *state.State, p Params) {
	loss := p.WarmthDecay[s.World.TimeOfDay] * s.World.WarmthDecayMod
	if s.Flags.TripTicks > 0 {
		loss /= 4
	}
	s.Stats.Warmth -= loss
}

var tripFlavors = []string{
	"The Transamerica Pyramid winks at you.",
	"A seagull explains Series A dilution. It makes sense.",
	"The fog is made of tiny investors.",
	"You tip a street mime $%d. It felt important at the time.",
}

// forfeitFlavor is the index of the flavor that costs money. Its text takes
// the amount.
const forfeitFlavor = 3

func trip(s *state.State, p Params, src entropy.Source) {
	f := &s.Flags
	if f.TripTicks <= 0 {
		return
	}
	st := &s.Stats
	st.Hope += p.TripHopeGain
	st.Hunger += p.TripHungerGain
	st.Warmth += p.TripWarmthGain

	f.TripTicks--
	if f.TripTicks == 0 {
		st.Hope -= p.TripExpiryHopeLoss
		st.Hunger -= p.TripExpiryHungerLoss
		s.Say("The colors drain back out of the city.")
		s.Log("stats", "trip ended")
		return
	}
	if p.TripFlavorEvery > 0 && f.TripTicks%p.TripFlavorEvery == 0 {
		i := entropy.Pick(src, len(tripFlavors))
		if i == forfeitFlavor {
			if lost := st.Spend(entropy.IntRange(src, 1, 5)); lost > 0 {
				s.Say(fmt.Sprintf(tripFlavors[i], lost))
				return
			}
			i = 0
		}
		s.Say(tripFlavors[i])
	}
}

func companion(s *state.State, p Params) {
	st := &s.Stats
	if !st.HasDog {
		return
	}
	if !st.DogSick {
		st.Hope += p.DogHopeGain
		st.Warmth += p.DogWarmthGain
	}
	if st.Hunger < p.DogHungerThreshold {
		st.DogLowHungerTicks++
		st.DogHealth -= p.DogHealthDrain
		if st.DogLowHungerTicks > p.DogSickAfter && !st.DogSick {
			st.DogSick = true
			s.Say("Your dog won't eat the scraps anymore.")
			s.Log("stats", "dog sick")
		}
	} else {
		st.DogLowHungerTicks = 0
		st.DogHealth += p.DogHealthRegen
		if st.DogSick && st.DogHealth >= 50 {
			st.DogSick = false
		}
	}
	if st.DogHealth <= 0 {
		LoseDog(s, p.DogLossHopeLoss, p.DogLossDecayPenalty)
		s.Say("Your dog curls up in the doorway and doesn't get up.")
	}
}

// LoseDog removes the companion with its one-time hope hit and a lasting
// hope-decay penalty. It is a no-op without a dog.
func LoseDog(s *state.State, hopeLoss, decayPenalty float64) {
	st := &s.Stats
	if !st.HasDog {
		return
	}
	st.HasDog = false
	st.DogSick = false
	st.DogHealth = 0
	st.DogLowHungerTicks = 0
	st.Hope -= hopeLoss
	st.HopeDecayPenalty += decayPenalty
	s.Log("stats", "lost the dog")
}

// Game-over causes.
const (
	CauseStarved   = "starved"
	CauseFroze     = "froze to death"
	CauseGaveUp    = "gave up"
	CauseOverdosed = "overdosed"
)

// CheckGameOver latches game over the first time a survival stat bottoms
// out or the stimulant maxes. It reports whether it ended the game.
func CheckGameOver(s *state.State) bool {
	if s.Ended() {
		return false
	}
	st := &s.Stats
	switch {
	case st.Hunger <= 0:
		return s.EndGame(CauseStarved)
	case st.Warmth <= 0:
		return s.EndGame(CauseFroze)
	case st.Hope <= 0:
		return s.EndGame(CauseGaveUp)
	case st.Stimulant >= 100:
		return s.EndGame(CauseOverdosed)
	}
	return false
}
