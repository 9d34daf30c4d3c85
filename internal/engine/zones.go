package engine

import (
	"fmt"

	"github.com/talgya/streetsim/internal/actions"
	"github.com/talgya/streetsim/internal/encounters"
	"github.com/talgya/streetsim/internal/entities"
	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/state"
	"github.com/talgya/streetsim/internal/stats"
	"github.com/talgya/streetsim/internal/world"
)

// Venue economics.
const (
	mealPrice       = 8
	taqueriaPrice   = 6
	mealHunger      = 35.0
	mealHope        = 3.0
	shelterGate     = 0.3
	gambleStake     = 5
	gambleBaseWin   = 0.35
	gambleBiasWin   = 0.15
	freeVenueWait   = 5 // ticks between charity, panhandling and dumpster dives
	sacrificeFee    = 40
	sacrificeFreeze = 3
)

// Pawn prices for each belonging. Selling one on the street fetches half.
const (
	pawnWatch  = 25
	pawnLaptop = 60
	pawnPhone  = 35
)

// zoneAction runs the default action of the zone the player stands in.
func zoneAction(s *state.State, k actions.Kind, src entropy.Source) bool {
	switch k {
	case actions.KindBuyMeal:
		return buyMeal(s)
	case actions.KindEnterShop:
		s.Flags.ShopMode = true
		s.Flags.ShopVenue = s.World.Venue.Name
		return true
	case actions.KindSleep:
		return sleepInShelter(s)
	case actions.KindSleepRough:
		if s.Player.Locomotion == state.LocoDucking {
			return false
		}
		s.Player.Locomotion = state.LocoDucking
		s.Stats.Warmth += 8
		s.Stats.Hope -= 2
		s.Say("Cardboard and a wall at your back. It'll do.")
		return true
	case actions.KindScore:
		return encounters.BuyInAlley(s, src) != encounters.DealNone
	case actions.KindAskCharity:
		return askCharity(s, src)
	case actions.KindGamble:
		return gamble(s, src)
	case actions.KindPawn:
		return sellBelongings(s, true)
	case actions.KindDig:
		return dig(s, src)
	case actions.KindPanhandle:
		return panhandle(s, src)
	}
	return false
}

func buyMeal(s *state.State) bool {
	price := mealPrice
	if s.World.Venue.Type == world.VenueTaqueria {
		price = taqueriaPrice
	}
	if s.Stats.Money < price {
		return false
	}
	s.Stats.Spend(price)
	s.Stats.Hunger += mealHunger
	s.Stats.Hope += mealHope
	s.Notify(fmt.Sprintf("-$%d", price))
	s.Say("A hot plate. For a minute you feel like a person.")
	return true
}

func sleepInShelter(s *state.State) bool {
	// Already bedded down; the night's comfort comes from resting each tick.
	if s.Player.Locomotion == state.LocoDucking {
		return false
	}
	if s.Effective(modifiers.KeyShelter) <= shelterGate {
		s.Say("Beds are full. Come back earlier.")
		return true
	}
	s.Player.Locomotion = state.LocoDucking
	s.Stats.Warmth += 25
	s.Stats.Hope += 5
	s.Stats.Hunger -= 5
	s.Say("A cot, a blanket, someone snoring two rows over.")
	s.Log("zone", "slept at "+s.World.Venue.Name)
	return true
}

func askCharity(s *state.State, src entropy.Source) bool {
	if s.Flags.ZoneCooldown > 0 {
		return false
	}
	s.Flags.ZoneCooldown = freeVenueWait
	if !entropy.Chance(src, 0.4+0.4*s.Effective(modifiers.KeyKindness)) {
		s.Say("Come back tomorrow, they say. They said that yesterday.")
		return true
	}
	s.Stats.Hunger += 20
	s.Stats.Hope += 5
	s.Say("A bowl of soup and a volunteer who remembers your name.")
	return true
}

func panhandle(s *state.State, src entropy.Source) bool {
	if s.Flags.ZoneCooldown > 0 {
		return false
	}
	s.Flags.ZoneCooldown = freeVenueWait
	if !entropy.Chance(src, 0.3+0.5*s.Effective(modifiers.KeyKindness)) {
		s.Stats.Hope--
		s.Say("A hundred people walk by. None of them look.")
		return true
	}
	take := entropy.IntRange(src, 1, 6)
	s.Stats.Money += take
	s.Notify(fmt.Sprintf("+$%d", take))
	return true
}

func gamble(s *state.State, src entropy.Source) bool {
	if s.Stats.Money < gambleStake {
		return false
	}
	if entropy.Chance(src, gambleBaseWin+gambleBiasWin*s.Effective(modifiers.KeyGambling)) {
		s.Stats.Money += gambleStake
		s.Stats.Hope += 3
		s.Notify(fmt.Sprintf("+$%d", gambleStake))
		s.Say("The dealer slides chips your way.")
	} else {
		s.Stats.Spend(gambleStake)
		s.Stats.Hope -= 3
		s.Notify(fmt.Sprintf("-$%d", gambleStake))
		s.Say("House wins. House always wins.")
	}
	return true
}

// sellBelongings parts with the most valuable belonging left. At a pawn
// counter it fetches full price.
func sellBelongings(s *state.State, pawnShop bool) bool {
	st := &s.Stats
	var what string
	var price int
	switch {
	case st.HasLaptop:
		st.HasLaptop, what, price = false, "laptop", pawnLaptop
	case st.HasPhone:
		st.HasPhone, what, price = false, "phone", pawnPhone
	case st.HasWatch:
		st.HasWatch, what, price = false, "watch", pawnWatch
	default:
		return false
	}
	if !pawnShop {
		price /= 2
	}
	st.Money += price
	s.Notify(fmt.Sprintf("+$%d", price))
	s.Log("zone", fmt.Sprintf("sold the %s for $%d", what, price))
	return true
}

func dig(s *state.State, src entropy.Source) bool {
	if s.Flags.ZoneCooldown > 0 {
		return false
	}
	s.Flags.ZoneCooldown = freeVenueWait
	st := &s.Stats
	r := src.Float()
	switch {
	case r < 0.05 && !st.HasPitchDeck:
		st.HasPitchDeck = true
		st.Hope += 10
		s.Say("Someone threw out a pitch deck. Series A, glossy. You can use this.")
		s.Log("zone", "found a pitch deck")
	case r < 0.1:
		st.HallucinogenCharges++
		s.Say("A tiny foil packet wedged under a lid.")
	case r < 0.55:
		st.Hunger += 10
		st.Hope -= 2
		s.Say("Half a sandwich. You don't ask questions.")
	default:
		st.Hope -= 3
		s.Say("Nothing but wet cardboard.")
	}
	return true
}

func shoplift(s *state.State, src entropy.Source) {
	s.Flags.TheftCooldown = encounters.TheftCooldown
	if entropy.Chance(src, 0.5+0.3*s.Effective(modifiers.KeyTheft)) {
		s.Stats.Hunger += 20
		s.Say("A sandwich under the jacket. Nobody saw.")
		return
	}
	s.Stats.Hope -= 5
	entities.Summon(s)
	s.Say("The clerk is already on the phone.")
}

// sacrificeCompanion gives the dog up for cash. The moment costs a few
// ticks in which the player can do nothing.
func sacrificeCompanion(s *state.State, r Rules) {
	s.Stats.Money += sacrificeFee
	stats.LoseDog(s, r.Stats.DogLossHopeLoss, r.Stats.DogLossDecayPenalty)
	s.Flags.FreezeTicks = sacrificeFreeze
	s.Notify(fmt.Sprintf("+$%d", sacrificeFee))
	s.Say("You hand over the leash and don't look back.")
}

func buyStreetStimulant(s *state.State) bool {
	if s.Stats.Money < streetStimPrice {
		return false
	}
	s.Stats.Spend(streetStimPrice)
	s.Stats.Stimulant += streetStimDose
	s.Notify(fmt.Sprintf("-$%d", streetStimPrice))
	s.Say("A bump off a key. The street gets sharper.")
	return true
}

// ShopItem is something on a shop counter.
type ShopItem struct {
	Name    string  `json:"name"`
	Price   int     `json:"price"`
	Hunger  float64 `json:"hunger"`
	Warmth  float64 `json:"warmth"`
	Hope    float64 `json:"hope"`
	Stim    float64 `json:"stimulant"`
	DogFood bool    `json:"dog_food,omitempty"`
}

var (
	itemCoffee      = ShopItem{Name: "Coffee", Price: 3, Warmth: 8, Hope: 2, Stim: 5}
	itemBagel       = ShopItem{Name: "Bagel", Price: 4, Hunger: 15}
	itemEnergyDrink = ShopItem{Name: "Energy drink", Price: 4, Hunger: 3, Stim: 12}
	itemHandWarmers = ShopItem{Name: "Hand warmers", Price: 5, Warmth: 15}
	itemDogFood     = ShopItem{Name: "Dog food", Price: 6, DogFood: true}
)

var shopShelves = map[world.VenueType][]ShopItem{
	world.VenueCoffeeShop:  {itemCoffee, itemBagel},
	world.VenueCornerStore: {itemBagel, itemEnergyDrink, itemHandWarmers, itemDogFood},
}

// ShopItems lists what the venue sells, in counter order.
func ShopItems(t world.VenueType) []ShopItem {
	return shopShelves[t]
}

func buyItem(s *state.State, index int) bool {
	if !s.Flags.ShopMode {
		return false
	}
	items := ShopItems(s.World.Venue.Type)
	if index < 0 || index >= len(items) {
		return false
	}
	it := items[index]
	st := &s.Stats
	if st.Money < it.Price || (it.DogFood && !st.HasDog) {
		return false
	}
	st.Spend(it.Price)
	st.Hunger += it.Hunger
	st.Warmth += it.Warmth
	st.Hope += it.Hope
	st.Stimulant += it.Stim
	if it.DogFood {
		st.DogHealth += 30
		st.DogLowHungerTicks = 0
		st.DogSick = false
	}
	s.Notify(fmt.Sprintf("-$%d", it.Price))
	return true
}
