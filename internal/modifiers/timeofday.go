package modifiers

import "fmt"

// TimeOfDay is the coarse daily phase. It cycles every TicksPerPhase ticks.
type TimeOfDay uint8

const (
	Morning TimeOfDay = iota
	Afternoon
	Evening
	Night
)

// NumTimesOfDay is the length of the daily cycle.
const NumTimesOfDay = 4

// TicksPerPhase is how many ticks each time-of-day phase lasts.
const TicksPerPhase = 90

// TimeProfile holds the multipliers a phase applies.
type TimeProfile struct {
	CrimeMultiplier  float64
	CrowdDensity     float64
	ServiceAvailable bool
	NeonIntensity    float64
}

var timeTable = [NumTimesOfDay]TimeProfile{
	Morning:   {CrimeMultiplier: 0.6, CrowdDensity: 1.0, ServiceAvailable: true, NeonIntensity: 0.1},
	Afternoon: {CrimeMultiplier: 0.8, CrowdDensity: 1.2, ServiceAvailable: true, NeonIntensity: 0.0},
	Evening:   {CrimeMultiplier: 1.2, CrowdDensity: 0.9, ServiceAvailable: true, NeonIntensity: 0.7},
	Night:     {CrimeMultiplier: 1.6, CrowdDensity: 0.5, ServiceAvailable: false, NeonIntensity: 1.0},
}

// Profile returns the multipliers for a phase.
func Profile(t TimeOfDay) TimeProfile {
	if int(t) >= NumTimesOfDay {
		panic(fmt.Sprintf("modifiers: unknown time of day %d", t))
	}
	return timeTable[t]
}

// TimeAt derives the phase from elapsed seconds.
func TimeAt(elapsed int) TimeOfDay {
	if elapsed < 0 {
		elapsed = 0
	}
	return TimeOfDay((elapsed / TicksPerPhase) % NumTimesOfDay)
}

func (t TimeOfDay) String() string {
	switch t {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	case Night:
		return "night"
	default:
		return "unknown"
	}
}

// Key names one bias in a district profile.
type Key uint8

const (
	KeyFood Key = iota
	KeySexTrade
	KeyTheft
	KeyDrug
	KeyCop
	KeyKindness
	KeyShelter
	KeyViolence
	KeyGambling
	KeyPitch
	KeyWildlife
)

// EffectiveModifier scales a district bias by the time-of-day profile.
// Crime-adjacent keys follow the crime multiplier; availability keys drop to
// 30% when services are closed; everything else is the base value.
func EffectiveModifier(d District, k Key, t TimeOfDay) float64 {
	base := Info(d).Bias.Value(k)
	p := Profile(t)
	switch k {
	case KeyTheft, KeyViolence, KeyDrug, KeySexTrade:
		return base * p.CrimeMultiplier
	case KeyShelter, KeyPitch:
		if p.ServiceAvailable {
			return base
		}
		return base * 0.3
	case KeyFood, KeyCop, KeyKindness, KeyGambling, KeyWildlife:
		return base
	}
	panic(fmt.Sprintf("modifiers: unmapped modifier key %d", k))
}
