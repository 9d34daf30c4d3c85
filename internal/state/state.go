// Package state defines the world snapshot every transition consumes and
// produces. A State is a value: transitions Clone the previous snapshot,
// mutate the copy, and hand it back. Nothing outside the engine holds a
// pointer into a live snapshot.
package state

import (
	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/weather"
	"github.com/talgya/streetsim/internal/world"
)

// Screen is the top-level mode.
type Screen uint8

const (
	ScreenTitle Screen = iota
	ScreenPlaying
)

// Stage is a step of the startup funding ladder.
type Stage uint8

const (
	StageBootstrap Stage = iota
	StagePreSeed
	StageSeed
	StageSeriesA
	StageSeriesB
	StageSeriesC
	StageIPO
)

// NumStages counts every stage including the terminal one.
const NumStages = 7

func (s Stage) String() string {
	switch s {
	case StageBootstrap:
		return "bootstrap"
	case StagePreSeed:
		return "pre-seed"
	case StageSeed:
		return "seed"
	case StageSeriesA:
		return "series A"
	case StageSeriesB:
		return "series B"
	case StageSeriesC:
		return "series C"
	case StageIPO:
		return "IPO"
	}
	return "unknown"
}

// Locomotion is what the player's body is doing.
type Locomotion uint8

const (
	LocoIdle Locomotion = iota
	LocoWalking
	LocoDucking
	LocoCollapsed
)

// Facing is a lateral direction.
type Facing int8

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// Lateral bounds, in screen units.
const (
	LateralMin    = 5.0
	LateralMax    = 90.0
	LateralCenter = 47.5
	VisibleMin    = -10.0 // entities past these edges are retired
	VisibleMax    = 110.0
)

// Stats holds the player's survival resources. Percentages live in [0,100].
type Stats struct {
	Hunger              float64 `json:"hunger"` // 100 is full, 0 is starving
	Warmth              float64 `json:"warmth"`
	Hope                float64 `json:"hope"`
	Stimulant           float64 `json:"stimulant"`
	HallucinogenCharges int     `json:"hallucinogen_charges"`
	Money               int     `json:"money"`
	ElapsedSeconds      int     `json:"elapsed_seconds"`

	HasWatch  bool `json:"has_watch"`
	HasLaptop bool `json:"has_laptop"`
	HasPhone  bool `json:"has_phone"`

	FundingStage Stage `json:"funding_stage"`
	HasPitchDeck bool  `json:"has_pitch_deck"` // found item that improves investor pitches

	HasDog            bool    `json:"has_dog"`
	DogHealth         float64 `json:"dog_health"`
	DogLowHungerTicks int     `json:"dog_low_hunger_ticks"`
	DogSick           bool    `json:"dog_sick"`

	// HopeDecayPenalty scales hope decay upward. It only ever grows: dealer
	// credit traps, paranoia and losing the dog all add to it, and nothing
	// repays it.
	HopeDecayPenalty float64 `json:"hope_decay_penalty"`
}

// Clamp pins every percentage into [0,100] and every count at or above 0.
func (s *Stats) Clamp() {
	s.Hunger = clampPct(s.Hunger)
	s.Warmth = clampPct(s.Warmth)
	s.Hope = clampPct(s.Hope)
	s.Stimulant = clampPct(s.Stimulant)
	s.DogHealth = clampPct(s.DogHealth)
	if s.HallucinogenCharges < 0 {
		s.HallucinogenCharges = 0
	}
	if s.Money < 0 {
		s.Money = 0
	}
}

// Spend removes up to amount money and returns what was actually taken.
func (s *Stats) Spend(amount int) int {
	if amount > s.Money {
		amount = s.Money
	}
	if amount < 0 {
		amount = 0
	}
	s.Money -= amount
	return amount
}

// HasAsset reports whether any sellable belonging remains.
func (s *Stats) HasAsset() bool {
	return s.HasWatch || s.HasLaptop || s.HasPhone
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Player is the player's body on screen.
type Player struct {
	X          float64    `json:"x"`
	Facing     Facing     `json:"facing"`
	Locomotion Locomotion `json:"locomotion"`
}

// World is the player's place in the city. Everything but ScrollOffset and
// the weather is derived by Refresh.
type World struct {
	ScrollOffset float64             `json:"scroll_offset"`
	District     modifiers.District  `json:"district"`
	Blend        float64             `json:"blend"`
	TimeOfDay    modifiers.TimeOfDay `json:"time_of_day"`
	Venue        world.Venue         `json:"venue"`
	Zone         world.Zone          `json:"zone"`

	Weather        weather.Conditions `json:"weather"`
	WeatherDesc    string             `json:"weather_desc"`
	WarmthDecayMod float64            `json:"warmth_decay_mod"`
}

// Event is a notable occurrence in the session.
type Event struct {
	Tick        int    `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "stats", "encounter", "police", "funding", "narrative", ...
}

// MaxEvents bounds the event log carried on a snapshot.
const MaxEvents = 50

// State is the single root aggregate of a session.
type State struct {
	Screen   Screen   `json:"screen"`
	Stats    Stats    `json:"stats"`
	Player   Player   `json:"player"`
	World    World    `json:"world"`
	Entities Entities `json:"entities"`
	Flags    Flags    `json:"flags"`
	NextID   uint64   `json:"next_id"`
	Events   []Event  `json:"events"`
}

// New returns the fixed initial snapshot on the title screen.
func New() State {
	s := State{
		Screen: ScreenTitle,
		Stats: Stats{
			Hunger:    70,
			Warmth:    70,
			Hope:      60,
			Money:     12,
			HasWatch:  true,
			HasLaptop: true,
			HasPhone:  true,
			HasDog:    true,
			DogHealth: 100,
		},
		Player: Player{X: LateralCenter, Facing: FacingRight, Locomotion: LocoIdle},
		World:  World{WarmthDecayMod: 1},
		NextID: 1,
	}
	s.Refresh()
	return s
}

// Clone returns a deep copy safe to mutate.
func (s State) Clone() State {
	c := s
	c.Entities.Pedestrians = append([]Pedestrian(nil), s.Entities.Pedestrians...)
	c.Entities.Vehicles = append([]Vehicle(nil), s.Entities.Vehicles...)
	c.Events = append([]Event(nil), s.Events...)
	return c
}

// Refresh recomputes the world fields derived from scroll offset, player
// position and elapsed time.
func (s *State) Refresh() {
	s.World.District, s.World.Blend = world.DistrictBlend(s.World.ScrollOffset)
	s.World.TimeOfDay = modifiers.TimeAt(s.Stats.ElapsedSeconds)
	s.World.Venue, s.World.Zone = world.VenueAt(s.World.ScrollOffset, s.Player.X)
}

// Effective is shorthand for the current district/time modifier of a key.
func (s *State) Effective(k modifiers.Key) float64 {
	return modifiers.EffectiveModifier(s.World.District, k, s.World.TimeOfDay)
}

// Playing reports whether gameplay may mutate the snapshot.
func (s *State) Playing() bool {
	return s.Screen == ScreenPlaying && !s.Flags.IsGameOver && !s.Flags.IsVictory
}

// Ended reports whether the session reached game over or victory.
func (s *State) Ended() bool {
	return s.Flags.IsGameOver || s.Flags.IsVictory
}

// EndGame latches game over with a cause. It is a no-op once the session
// has ended either way.
func (s *State) EndGame(cause string) bool {
	if s.Ended() {
		return false
	}
	s.Flags.IsGameOver = true
	s.Flags.GameOverCause = cause
	s.Player.Locomotion = LocoCollapsed
	s.Log("gameover", cause)
	return true
}

// Win latches victory and pauses the session.
func (s *State) Win() bool {
	if s.Ended() {
		return false
	}
	s.Flags.IsVictory = true
	s.Flags.IsPaused = true
	s.Log("funding", "rang the bell at the IPO")
	return true
}

// NewID issues the next entity id. Ids are never reused within a session.
func (s *State) NewID() uint64 {
	id := s.NextID
	s.NextID++
	return id
}

// Log appends an event, keeping the most recent MaxEvents.
func (s *State) Log(category, desc string) {
	s.Events = append(s.Events, Event{Tick: s.Stats.ElapsedSeconds, Description: desc, Category: category})
	if len(s.Events) > MaxEvents {
		s.Events = s.Events[len(s.Events)-MaxEvents:]
	}
}
