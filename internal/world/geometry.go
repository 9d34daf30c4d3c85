// Package world projects the continuous scroll offset onto the city: which
// district the player stands in, how far toward the next one, and which
// venue is in front of them. Every function here is a pure projection.
package world

import (
	"math"

	"github.com/talgya/streetsim/internal/modifiers"
)

// districtWidths is the width of each district segment in world units.
var districtWidths = [modifiers.NumDistricts]float64{
	modifiers.DistrictTenderloin: 2400,
	modifiers.DistrictSoMa:       3000,
	modifiers.DistrictFinancial:  2600,
	modifiers.DistrictChinatown:  1800,
	modifiers.DistrictNorthBeach: 2000,
	modifiers.DistrictMarina:     2200,
	modifiers.DistrictHaight:     1800,
	modifiers.DistrictMission:    2800,
	modifiers.DistrictCastro:     1600,
}

// CycleLength is the total width of one loop through every district.
var CycleLength = func() float64 {
	total := 0.0
	for _, w := range districtWidths {
		total += w
	}
	return total
}()

// Width returns the width of a district segment.
func Width(d modifiers.District) float64 {
	return districtWidths[d]
}

// floorMod wraps x into [0, m) for negative x as well.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}

// DistrictAt returns the district containing a scroll offset.
func DistrictAt(offset float64) modifiers.District {
	d, _ := DistrictBlend(offset)
	return d
}

// DistrictBlend returns the district at offset and the fractional position
// inside it, in [0,1), toward the next district in the cycle.
func DistrictBlend(offset float64) (modifiers.District, float64) {
	pos := floorMod(offset, CycleLength)
	start := 0.0
	for i, w := range districtWidths {
		if pos < start+w {
			return modifiers.District(i), (pos - start) / w
		}
		start += w
	}
	// Only reachable through float rounding at the very end of the cycle.
	return modifiers.District(modifiers.NumDistricts - 1), 0
}
