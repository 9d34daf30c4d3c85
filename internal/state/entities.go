package state

import "github.com/talgya/streetsim/internal/modifiers"

// Pedestrian is a non-player walker.
type Pedestrian struct {
	ID        uint64              `json:"id"`
	X         float64             `json:"x"`
	Speed     float64             `json:"speed"`
	Facing    Facing              `json:"facing"`
	Archetype modifiers.Archetype `json:"archetype"`
	Stealable bool                `json:"stealable"`
	LurkTicks int                 `json:"lurk_ticks,omitempty"` // dealers hold position while > 0
}

// Vehicle is a car on the road lane.
type Vehicle struct {
	ID        uint64  `json:"id"`
	X         float64 `json:"x"`
	Speed     float64 `json:"speed"`
	Stopped   bool    `json:"stopped"`
	Encounter bool    `json:"encounter"`
	Variant   int     `json:"variant"`
}

// PoliceOfficer is the single patrolling officer.
type PoliceOfficer struct {
	X      float64 `json:"x"`
	Active bool    `json:"active"`
	Facing Facing  `json:"facing"`
}

// Wildlife is the cosmetic coyote cameo.
type Wildlife struct {
	X      float64 `json:"x"`
	Active bool    `json:"active"`
}

// Entities holds everything on screen besides the player.
type Entities struct {
	Pedestrians []Pedestrian  `json:"pedestrians"`
	Vehicles    []Vehicle     `json:"vehicles"`
	Police      PoliceOfficer `json:"police"`
	Wildlife    Wildlife      `json:"wildlife"`
}

// Pedestrian returns the pedestrian with id, if still in the world.
func (s *State) Pedestrian(id uint64) (Pedestrian, bool) {
	if id == 0 {
		return Pedestrian{}, false
	}
	for _, p := range s.Entities.Pedestrians {
		if p.ID == id {
			return p, true
		}
	}
	return Pedestrian{}, false
}

// RetirePedestrian removes a pedestrian and every reference to it.
func (s *State) RetirePedestrian(id uint64) {
	peds := s.Entities.Pedestrians[:0]
	for _, p := range s.Entities.Pedestrians {
		if p.ID != id {
			peds = append(peds, p)
		}
	}
	s.Entities.Pedestrians = peds
	s.forget(id)
}

// forget clears flag references to a retired entity id.
func (s *State) forget(id uint64) {
	f := &s.Flags
	if f.PedTarget == id {
		f.PedTarget = 0
		f.PedActions = 0
	}
	if f.DealerTarget == id {
		f.DealerTarget = 0
	}
	if f.PurseTarget == id {
		f.PurseTarget = 0
		f.PurseTicks = 0
	}
}

// PruneReferences drops flag references to pedestrians no longer present.
func (s *State) PruneReferences() {
	for _, id := range []uint64{s.Flags.PedTarget, s.Flags.DealerTarget, s.Flags.PurseTarget} {
		if id == 0 {
			continue
		}
		if _, ok := s.Pedestrian(id); !ok {
			s.forget(id)
		}
	}
}

// ActiveEncounter returns the encounter vehicle, if any.
func (s *State) ActiveEncounter() (Vehicle, bool) {
	for _, v := range s.Entities.Vehicles {
		if v.Encounter {
			return v, true
		}
	}
	return Vehicle{}, false
}

// ClearEncounters removes every encounter-flagged vehicle.
func (s *State) ClearEncounters() {
	vs := s.Entities.Vehicles[:0]
	for _, v := range s.Entities.Vehicles {
		if !v.Encounter {
			vs = append(vs, v)
		}
	}
	s.Entities.Vehicles = vs
}

// ShiftEntities moves everything on screen by dx, used when the world scrolls.
func (s *State) ShiftEntities(dx float64) {
	for i := range s.Entities.Pedestrians {
		s.Entities.Pedestrians[i].X += dx
	}
	for i := range s.Entities.Vehicles {
		s.Entities.Vehicles[i].X += dx
	}
	if s.Entities.Police.Active {
		s.Entities.Police.X += dx
	}
	if s.Entities.Wildlife.Active {
		s.Entities.Wildlife.X += dx
	}
}
