// Package entities spawns, advances and retires everything that moves on
// screen besides the player: pedestrians, the lurking dealer, cars on the
// road lane, the patrolling officer and the occasional coyote.
package entities

import (
	"math"

	"github.com/talgya/streetsim/internal/entropy"
	"github.com/talgya/streetsim/internal/modifiers"
	"github.com/talgya/streetsim/internal/state"
)

// Lifecycle tuning, tuned by feel.
const (
	EntryLeft  = state.VisibleMin + 5
	EntryRight = state.VisibleMax - 5

	PedBurstChance = 0.35
	PedBaseCap     = 6.0
	PedBaseSpeed   = 2.5
	PedSpeedSpread = 1.0
	PedMaxBurst    = 3

	DealerChance    = 0.05
	DealerLurkMin   = 40
	DealerLurkMax   = 80
	DealerWalkSpeed = 1.5

	VehicleChance   = 0.2
	VehicleCap      = 3
	VehicleMinSpeed = 6
	VehicleMaxSpeed = 10
	VehicleVariants = 5

	EncounterReach     = 6.0
	EncounterBase      = 0.15
	EncounterDecay     = 0.15
	EncounterFloor     = 0.1
	EncounterCooldown  = 30
	StoppedSpeedFactor = 0.5

	PoliceMaxInterval = 120
	PoliceMinInterval = 30
	PoliceCopScale    = 60
	PoliceBaseChance  = 0.5
	PoliceCopChance   = 0.3
	PoliceSpeed       = 3.0

	WildlifePeriod      = 300
	WildlifeWindowStart = 240
	WildlifeWindowEnd   = 270
	WildlifeChance      = 0.2
	WildlifeSpeed       = 4.0
)

// Update runs one tick of the entity lifecycle on s in place.
func Update(s *state.State, src entropy.Source) {
	advancePedestrians(s)
	spawnPedestrians(s, src)
	spawnDealer(s, src)
	advanceVehicles(s)
	spawnVehicle(s, src)
	stopForEncounter(s, src)
	patrol(s, src)
	wildlife(s, src)
	s.PruneReferences()
}

func offscreen(x float64) bool {
	return x < state.VisibleMin || x > state.VisibleMax
}

func advancePedestrians(s *state.State) {
	peds := s.Entities.Pedestrians[:0]
	for _, p := range s.Entities.Pedestrians {
		if p.LurkTicks > 0 {
			p.LurkTicks--
			if p.LurkTicks == 0 {
				p.Speed = DealerWalkSpeed
			}
		} else {
			p.X += p.Speed * float64(p.Facing)
		}
		if offscreen(p.X) {
			continue
		}
		peds = append(peds, p)
	}
	s.Entities.Pedestrians = peds
}

// PedestrianCap is the population ceiling for a district at a time of day.
func PedestrianCap(d modifiers.District, t modifiers.TimeOfDay) int {
	return int(math.Round(PedBaseCap * modifiers.Profile(t).CrowdDensity * modifiers.Info(d).Density))
}

func spawnPedestrians(s *state.State, src entropy.Source) {
	info := modifiers.Info(s.World.District)
	crowd := modifiers.Profile(s.World.TimeOfDay).CrowdDensity
	if !entropy.Chance(src, PedBurstChance*crowd*info.Density) {
		return
	}
	room := PedestrianCap(s.World.District, s.World.TimeOfDay) - len(s.Entities.Pedestrians)
	n := entropy.IntRange(src, 1, PedMaxBurst)
	if n > room {
		n = room
	}
	for i := 0; i < n; i++ {
		arch := modifiers.WeightedDraw(info.Crowd, src)
		p := state.Pedestrian{
			ID:        s.NewID(),
			Speed:     math.Max(0.5, entropy.Jitter(src, PedBaseSpeed, PedSpeedSpread)),
			Archetype: arch,
			Stealable: entropy.Chance(src, modifiers.ProfileOf(arch).Steal.CarryChance),
		}
		if entropy.Chance(src, 0.5) {
			p.X, p.Facing = EntryLeft, state.FacingRight
		} else {
			p.X, p.Facing = EntryRight, state.FacingLeft
		}
		s.Entities.Pedestrians = append(s.Entities.Pedestrians, p)
	}
}

// HasDealer reports whether a dealer is on screen.
func HasDealer(s *state.State) bool {
	for _, p := range s.Entities.Pedestrians {
		if p.Archetype == modifiers.ArchDealer {
			return true
		}
	}
	return false
}

func spawnDealer(s *state.State, src entropy.Source) {
	if modifiers.Info(s.World.District).Bias.Drug <= modifiers.DealerThreshold || HasDealer(s) {
		return
	}
	if !entropy.Chance(src, DealerChance) {
		return
	}
	facing := state.FacingRight
	if entropy.Chance(src, 0.5) {
		facing = state.FacingLeft
	}
	s.Entities.Pedestrians = append(s.Entities.Pedestrians, state.Pedestrian{
		ID:        s.NewID(),
		X:         15 + src.Float()*70,
		Facing:    facing,
		Archetype: modifiers.ArchDealer,
		LurkTicks: entropy.IntRange(src, DealerLurkMin, DealerLurkMax),
	})
}

func advanceVehicles(s *state.State) {
	vs := s.Entities.Vehicles[:0]
	lost := false
	for _, v := range s.Entities.Vehicles {
		if v.Stopped {
			v.Speed *= StoppedSpeedFactor
			if math.Abs(v.Speed) < 0.1 {
				v.Speed = 0
			}
		}
		v.X += v.Speed
		if offscreen(v.X) {
			lost = lost || v.Encounter
			continue
		}
		vs = append(vs, v)
	}
	s.Entities.Vehicles = vs
	// Walking away from a stopped car still counts as turning it down.
	if lost {
		CloseEncounter(s)
		s.Say("You leave the car idling behind you. It gives up and pulls away.")
	}
}

// CloseEncounter clears every encounter car and counts the encounter against
// the session, however it ended.
func CloseEncounter(s *state.State) {
	s.ClearEncounters()
	s.Flags.EncounterCount++
	s.Flags.CarCooldown = EncounterCooldown
}

func spawnVehicle(s *state.State, src entropy.Source) {
	if len(s.Entities.Vehicles) >= VehicleCap {
		return
	}
	if !entropy.Chance(src, VehicleChance*modifiers.Profile(s.World.TimeOfDay).CrowdDensity) {
		return
	}
	s.Entities.Vehicles = append(s.Entities.Vehicles, state.Vehicle{
		ID:      s.NewID(),
		X:       EntryRight,
		Speed:   -float64(entropy.IntRange(src, VehicleMinSpeed, VehicleMaxSpeed)),
		Variant: entropy.Pick(src, VehicleVariants),
	})
}

// EncounterChance is the per-tick chance a passing car pulls over.
func EncounterChance(s *state.State) float64 {
	decay := math.Max(EncounterFloor, 1-EncounterDecay*float64(s.Flags.EncounterCount))
	return EncounterBase * s.Effective(modifiers.KeySexTrade) * decay
}

func stopForEncounter(s *state.State, src entropy.Source) {
	if s.Flags.CarCooldown > 0 {
		return
	}
	if _, ok := s.ActiveEncounter(); ok {
		return
	}
	for i := range s.Entities.Vehicles {
		v := &s.Entities.Vehicles[i]
		if v.Stopped || math.Abs(v.X-s.Player.X) >= EncounterReach {
			continue
		}
		if entropy.Chance(src, EncounterChance(s)) {
			v.Stopped = true
			v.Encounter = true
			v.Speed = 0
			s.Say("A car slows to a stop beside you. The window rolls down.")
			s.Log("encounter", "car pulled over")
		}
		return
	}
}

// SweepInterval is how often, in ticks, a patrol may start.
func SweepInterval(s *state.State) int {
	cop := s.Effective(modifiers.KeyCop)
	return max(PoliceMinInterval, PoliceMaxInterval-int(cop*PoliceCopScale))
}

func patrol(s *state.State, src entropy.Source) {
	cop := &s.Entities.Police
	if cop.Active {
		cop.X += PoliceSpeed * float64(cop.Facing)
		if offscreen(cop.X) {
			cop.Active = false
		}
		return
	}
	elapsed := s.Stats.ElapsedSeconds
	if elapsed == 0 || elapsed%SweepInterval(s) != 0 {
		return
	}
	if !entropy.Chance(src, PoliceBaseChance+s.Effective(modifiers.KeyCop)*PoliceCopChance) {
		return
	}
	cop.Active = true
	if entropy.Chance(src, 0.5) {
		cop.X, cop.Facing = EntryLeft, state.FacingRight
	} else {
		cop.X, cop.Facing = EntryRight, state.FacingLeft
	}
	s.Log("police", "patrol sweep")
}

// Summon activates the officer at the screen edge farther from the player,
// walking toward them. It is a no-op while a patrol is already out.
func Summon(s *state.State) {
	cop := &s.Entities.Police
	if cop.Active {
		return
	}
	cop.Active = true
	if s.Player.X < state.LateralCenter {
		cop.X, cop.Facing = EntryRight, state.FacingLeft
	} else {
		cop.X, cop.Facing = EntryLeft, state.FacingRight
	}
	s.Log("police", "officer called")
}

// InWildlifeWindow reports whether elapsed falls in the coyote window.
func InWildlifeWindow(elapsed int) bool {
	m := elapsed % WildlifePeriod
	return m >= WildlifeWindowStart && m < WildlifeWindowEnd
}

func wildlife(s *state.State, src entropy.Source) {
	w := &s.Entities.Wildlife
	if !InWildlifeWindow(s.Stats.ElapsedSeconds) {
		w.Active = false
		return
	}
	if w.Active {
		w.X += WildlifeSpeed
		if offscreen(w.X) {
			w.Active = false
		}
		return
	}
	if entropy.Chance(src, s.Effective(modifiers.KeyWildlife)*WildlifeChance) {
		w.Active = true
		w.X = EntryLeft
	}
}
