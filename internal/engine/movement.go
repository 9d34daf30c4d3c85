package engine

import (
	"github.com/talgya/streetsim/internal/state"
)

// Camera box: the player walks freely inside it and pushes the street past
// the screen beyond it.
const (
	CameraMin = 25.0
	CameraMax = 75.0
)

// move takes one lateral step. Past the camera box the overflow scrolls the
// world instead and every on-screen entity slides the opposite way.
func move(s *state.State, dir int, r Rules) bool {
	p := &s.Player
	if dir == 0 || p.Locomotion == state.LocoCollapsed {
		return false
	}
	if dir < 0 {
		dir = -1
		p.Facing = state.FacingLeft
	} else {
		dir = 1
		p.Facing = state.FacingRight
	}
	p.Locomotion = state.LocoWalking

	x := p.X + float64(dir)*r.StepSize
	var overflow float64
	switch {
	case x > CameraMax:
		overflow = x - CameraMax
		x = CameraMax
	case x < CameraMin:
		overflow = x - CameraMin
		x = CameraMin
	}
	if overflow != 0 {
		s.World.ScrollOffset += overflow * r.ScrollScale
		s.ShiftEntities(-overflow)
	}
	p.X = clampLateral(x)
	s.Refresh()
	return true
}

func clampLateral(x float64) float64 {
	if x < state.LateralMin {
		return state.LateralMin
	}
	if x > state.LateralMax {
		return state.LateralMax
	}
	return x
}
