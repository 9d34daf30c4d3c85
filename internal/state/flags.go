package state

// Desperation is a fallback action offered when survival gets critical.
type Desperation uint8

// Order here is the order the resolver fills slots in.
const (
	DespTheft Desperation = iota
	DespSellBelongings
	DespSacrificeCompanion
	DespBuyStimulant
	DespPurseSteal
	numDesperation
)

// DesperationSet is a bitmask of offered desperation actions.
type DesperationSet uint8

// Has reports whether d is offered.
func (s DesperationSet) Has(d Desperation) bool { return s&(1<<d) != 0 }

// With returns the set with d added.
func (s DesperationSet) With(d Desperation) DesperationSet { return s | 1<<d }

// List returns the offered actions in resolver order.
func (s DesperationSet) List() []Desperation {
	var out []Desperation
	for d := Desperation(0); d < numDesperation; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// PedAction is an interaction offered against the targeted pedestrian.
type PedAction uint8

const (
	PedSteal PedAction = iota
	PedPitch
	PedTrade
	PedConfront
)

// PedActionSet is a bitmask of offered pedestrian actions.
type PedActionSet uint8

// Has reports whether a is offered.
func (s PedActionSet) Has(a PedAction) bool { return s&(1<<a) != 0 }

// With returns the set with a added.
func (s PedActionSet) With(a PedAction) PedActionSet { return s | 1<<a }

// Countdown durations, in ticks.
const (
	NarrativeTicks = 5
	ToastTicks     = 3
	PurseTicks     = 4
)

// Flags holds run latches, cooldowns, availability sets and display timers.
// Every timer is a countdown decremented by the tick driver.
type Flags struct {
	IsPaused      bool   `json:"is_paused"`
	IsGameOver    bool   `json:"is_game_over"`
	GameOverCause string `json:"game_over_cause,omitempty"`
	IsVictory     bool   `json:"is_victory"`

	TripTicks int `json:"trip_ticks"`

	TheftCooldown    int `json:"theft_cooldown"`
	ViolenceCooldown int `json:"violence_cooldown"`
	CarCooldown      int `json:"car_cooldown"`
	EncounterCount   int `json:"encounter_count"`

	Desperation  DesperationSet `json:"desperation"`
	PedActions   PedActionSet   `json:"ped_actions"`
	PedTarget    uint64         `json:"ped_target,omitempty"`
	DealerTarget uint64         `json:"dealer_target,omitempty"`
	PurseTarget  uint64         `json:"purse_target,omitempty"`
	PurseTicks   int            `json:"purse_ticks"`

	ShopMode  bool   `json:"shop_mode"`
	ShopVenue string `json:"shop_venue,omitempty"`

	Narrative      string `json:"narrative,omitempty"`
	NarrativeTicks int    `json:"narrative_ticks"`
	Toast          string `json:"toast,omitempty"`
	ToastTicks     int    `json:"toast_ticks"`

	// FreezeTicks absorbs movement and slot presses while > 0.
	FreezeTicks int `json:"freeze_ticks"`
	// ZoneCooldown blocks the free venue actions while > 0.
	ZoneCooldown int `json:"zone_cooldown"`
}

// RecentCrime reports whether an illicit action is still fresh.
func (f *Flags) RecentCrime() bool {
	return f.TheftCooldown > 0 || f.ViolenceCooldown > 0
}

// Say shows narrative text, replacing any still on screen.
func (s *State) Say(text string) {
	s.Flags.Narrative = text
	s.Flags.NarrativeTicks = NarrativeTicks
}

// Notify shows a transaction toast, replacing any still on screen.
func (s *State) Notify(text string) {
	s.Flags.Toast = text
	s.Flags.ToastTicks = ToastTicks
}

// CountDown advances every display and cooldown timer by one tick. Expiring
// display timers clear only their display text.
func (f *Flags) CountDown() {
	dec := func(v *int) {
		if *v > 0 {
			*v--
		}
	}
	dec(&f.TheftCooldown)
	dec(&f.ViolenceCooldown)
	dec(&f.CarCooldown)
	dec(&f.FreezeTicks)
	dec(&f.ZoneCooldown)
	if f.NarrativeTicks > 0 {
		f.NarrativeTicks--
		if f.NarrativeTicks == 0 {
			f.Narrative = ""
		}
	}
	if f.ToastTicks > 0 {
		f.ToastTicks--
		if f.ToastTicks == 0 {
			f.Toast = ""
		}
	}
	if f.PurseTicks > 0 {
		f.PurseTicks--
		if f.PurseTicks == 0 {
			f.PurseTarget = 0
		}
	}
}
