// Package modifiers holds the static lookup data that biases every random
// draw in the simulation: per-district economics, per-district crowd makeup,
// time-of-day multipliers, and per-archetype outcome tables.
package modifiers

import "fmt"

// District is one of the nine cyclically ordered city segments.
type District uint8

const (
	DistrictTenderloin District = iota
	DistrictSoMa
	DistrictFinancial
	DistrictChinatown
	DistrictNorthBeach
	DistrictMarina
	DistrictHaight
	DistrictMission
	DistrictCastro
)

// NumDistricts is the length of the district cycle.
const NumDistricts = 9

// Bias holds a district's economic leanings, each in [0,1].
type Bias struct {
	Food     float64 `json:"food" yaml:"food"`
	SexTrade float64 `json:"sex_trade" yaml:"sex_trade"`
	Theft    float64 `json:"theft" yaml:"theft"`
	Drug     float64 `json:"drug" yaml:"drug"`
	Cop      float64 `json:"cop" yaml:"cop"`
	Kindness float64 `json:"kindness" yaml:"kindness"`
	Shelter  float64 `json:"shelter" yaml:"shelter"`
	Violence float64 `json:"violence" yaml:"violence"`
	Gambling float64 `json:"gambling" yaml:"gambling"`
	Pitch    float64 `json:"pitch" yaml:"pitch"`
	Wildlife float64 `json:"wildlife" yaml:"wildlife"`
}

// DistrictInfo is the full static profile of a district.
type DistrictInfo struct {
	Name    string
	Density float64 // crowd scale applied to pedestrian bursts and population cap
	Bias    Bias
	Crowd   []Weighted[Archetype]
}

var districtTable = [NumDistricts]DistrictInfo{
	DistrictTenderloin: {
		Name:    "Tenderloin",
		Density: 1.0,
		Bias:    Bias{Food: 0.5, SexTrade: 0.8, Theft: 0.7, Drug: 0.9, Cop: 0.6, Kindness: 0.4, Shelter: 0.8, Violence: 0.8, Gambling: 0.3, Pitch: 0.05, Wildlife: 0.1},
		Crowd: []Weighted[Archetype]{
			{ArchJunkie, 5}, {ArchCommuter, 3}, {ArchUndercover, 2}, {ArchStudent, 1.5}, {ArchTourist, 1}, {ArchGrandma, 1},
		},
	},
	DistrictSoMa: {
		Name:    "SoMa",
		Density: 1.1,
		Bias:    Bias{Food: 0.6, SexTrade: 0.4, Theft: 0.5, Drug: 0.6, Cop: 0.5, Kindness: 0.3, Shelter: 0.5, Violence: 0.5, Gambling: 0.2, Pitch: 0.7, Wildlife: 0.1},
		Crowd: []Weighted[Archetype]{
			{ArchTechWorker, 6}, {ArchCommuter, 3}, {ArchInvestor, 1.5}, {ArchJunkie, 1.5}, {ArchHipster, 1}, {ArchUndercover, 1},
		},
	},
	DistrictFinancial: {
		Name:    "Financial District",
		Density: 1.4,
		Bias:    Bias{Food: 0.7, SexTrade: 0.2, Theft: 0.4, Drug: 0.2, Cop: 0.8, Kindness: 0.2, Shelter: 0.1, Violence: 0.2, Gambling: 0.1, Pitch: 0.9, Wildlife: 0.05},
		Crowd: []Weighted[Archetype]{
			{ArchExecutive, 6}, {ArchCommuter, 4}, {ArchInvestor, 3}, {ArchTechWorker, 2}, {ArchTourist, 1}, {ArchUndercover, 1},
		},
	},
	DistrictChinatown: {
		Name:    "Chinatown",
		Density: 1.3,
		Bias:    Bias{Food: 0.9, SexTrade: 0.2, Theft: 0.3, Drug: 0.2, Cop: 0.4, Kindness: 0.5, Shelter: 0.2, Violence: 0.2, Gambling: 0.8, Pitch: 0.2, Wildlife: 0.1},
		Crowd: []Weighted[Archetype]{
			{ArchTourist, 5}, {ArchGrandma, 4}, {ArchCommuter, 2}, {ArchStudent, 1}, {ArchUndercover, 0.5},
		},
	},
	DistrictNorthBeach: {
		Name:    "North Beach",
		Density: 1.0,
		Bias:    Bias{Food: 0.7, SexTrade: 0.6, Theft: 0.4, Drug: 0.4, Cop: 0.4, Kindness: 0.4, Shelter: 0.1, Violence: 0.4, Gambling: 0.6, Pitch: 0.3, Wildlife: 0.4},
		Crowd: []Weighted[Archetype]{
			{ArchTourist, 5}, {ArchHipster, 2}, {ArchExecutive, 1.5}, {ArchStudent, 1}, {ArchJunkie, 1}, {ArchUndercover, 0.5},
		},
	},
	DistrictMarina: {
		Name:    "Marina",
		Density: 0.8,
		Bias:    Bias{Food: 0.6, SexTrade: 0.1, Theft: 0.5, Drug: 0.2, Cop: 0.5, Kindness: 0.3, Shelter: 0.05, Violence: 0.1, Gambling: 0.1, Pitch: 0.5, Wildlife: 0.7},
		Crowd: []Weighted[Archetype]{
			{ArchTechWorker, 4}, {ArchExecutive, 3}, {ArchInvestor, 2}, {ArchGrandma, 1}, {ArchTourist, 1}, {ArchUndercover, 0.5},
		},
	},
	DistrictHaight: {
		Name:    "Haight",
		Density: 0.9,
		Bias:    Bias{Food: 0.5, SexTrade: 0.2, Theft: 0.4, Drug: 0.7, Cop: 0.3, Kindness: 0.7, Shelter: 0.3, Violence: 0.3, Gambling: 0.1, Pitch: 0.2, Wildlife: 0.6},
		Crowd: []Weighted[Archetype]{
			{ArchHipster, 5}, {ArchTourist, 3}, {ArchJunkie, 2}, {ArchStudent, 2}, {ArchUndercover, 0.5},
		},
	},
	DistrictMission: {
		Name:    "Mission",
		Density: 1.1,
		Bias:    Bias{Food: 0.8, SexTrade: 0.4, Theft: 0.5, Drug: 0.6, Cop: 0.4, Kindness: 0.6, Shelter: 0.5, Violence: 0.5, Gambling: 0.3, Pitch: 0.6, Wildlife: 0.3},
		Crowd: []Weighted[Archetype]{
			{ArchHipster, 4}, {ArchTechWorker, 3}, {ArchGrandma, 2}, {ArchCommuter, 2}, {ArchJunkie, 1.5}, {ArchInvestor, 0.5}, {ArchUndercover, 1},
		},
	},
	DistrictCastro: {
		Name:    "Castro",
		Density: 0.9,
		Bias:    Bias{Food: 0.6, SexTrade: 0.5, Theft: 0.3, Drug: 0.5, Cop: 0.3, Kindness: 0.8, Shelter: 0.4, Violence: 0.2, Gambling: 0.2, Pitch: 0.3, Wildlife: 0.3},
		Crowd: []Weighted[Archetype]{
			{ArchHipster, 3}, {ArchTourist, 3}, {ArchTechWorker, 2}, {ArchGrandma, 1.5}, {ArchStudent, 1}, {ArchUndercover, 0.5},
		},
	},
}

// Info returns the static profile for a district. An out-of-range district
// is a programming error.
func Info(d District) DistrictInfo {
	if int(d) >= NumDistricts {
		panic(fmt.Sprintf("modifiers: unknown district %d", d))
	}
	return districtTable[d]
}

// String returns the district's display name.
func (d District) String() string {
	return Info(d).Name
}

// Next returns the following district in the cycle.
func (d District) Next() District {
	return District((int(d) + 1) % NumDistricts)
}

// Value returns the base bias for a key. Every key is mapped; an unknown key panics.
func (b Bias) Value(k Key) float64 {
	switch k {
	case KeyFood:
		return b.Food
	case KeySexTrade:
		return b.SexTrade
	case KeyTheft:
		return b.Theft
	case KeyDrug:
		return b.Drug
	case KeyCop:
		return b.Cop
	case KeyKindness:
		return b.Kindness
	case KeyShelter:
		return b.Shelter
	case KeyViolence:
		return b.Violence
	case KeyGambling:
		return b.Gambling
	case KeyPitch:
		return b.Pitch
	case KeyWildlife:
		return b.Wildlife
	}
	panic(fmt.Sprintf("modifiers: unmapped bias key %d", k))
}
