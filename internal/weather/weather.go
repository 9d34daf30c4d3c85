// Package weather produces the street's weather from seeded simplex noise so
// a session replays identically from its seed. Conditions are mapped to the
// multipliers the stat engine applies to warmth.
package weather

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/streetsim/internal/modifiers"
)

// noiseScale converts elapsed seconds to noise-space distance; weather fronts
// drift over a few simulated minutes.
const noiseScale = 1.0 / 180.0

// Conditions holds sampled weather.
type Conditions struct {
	Temp    float64 `json:"temp"` // Celsius
	Wind    float64 `json:"wind"` // 0 calm to 1 gale
	IsFog   bool    `json:"is_fog"`
	IsRain  bool    `json:"is_rain"`
	IsStorm bool    `json:"is_storm"`
}

// Sampler draws conditions from three independent noise fields.
type Sampler struct {
	temp opensimplex.Noise
	wind opensimplex.Noise
	wet  opensimplex.Noise
}

// NewSampler creates a sampler for a session seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{
		temp: opensimplex.NewNormalized(seed),
		wind: opensimplex.NewNormalized(seed + 1),
		wet:  opensimplex.NewNormalized(seed + 2),
	}
}

// baseTemp is the typical temperature of each phase.
var baseTemp = [modifiers.NumTimesOfDay]float64{
	modifiers.Morning:   12,
	modifiers.Afternoon: 17,
	modifiers.Evening:   13,
	modifiers.Night:     9,
}

// Sample returns the conditions at an elapsed time.
func (s *Sampler) Sample(elapsed int, t modifiers.TimeOfDay) Conditions {
	x := float64(elapsed) * noiseScale
	tn := s.temp.Eval2(x, 0.5)
	wn := s.wind.Eval2(x, 1.5)
	rn := s.wet.Eval2(x, 2.5)

	c := Conditions{
		Temp: baseTemp[t] + (tn-0.5)*8,
		Wind: wn,
	}
	// Fog rolls in on cool, still stretches.
	c.IsFog = tn < 0.45 && wn < 0.6
	c.IsRain = rn > 0.72
	c.IsStorm = c.IsRain && wn > 0.8
	return c
}

// SimWeather holds simulation-mapped weather modifiers.
type SimWeather struct {
	WarmthDecayMod float64 `json:"warmth_decay_mod"`
	Description    string  `json:"description"`
}

// MapToSim converts conditions to the warmth-decay multiplier.
func MapToSim(c Conditions) SimWeather {
	// 15C is neutral; every 15 degrees colder doubles the chill.
	mod := 1 + (15-c.Temp)/15
	if mod < 0.5 {
		mod = 0.5
	}
	if mod > 2 {
		mod = 2
	}

	desc := "clear skies"
	switch {
	case c.IsStorm:
		mod *= 1.8
		desc = "a howling storm"
	case c.IsRain:
		mod *= 1.4
		desc = "cold rain"
	case c.IsFog:
		mod *= 1.15
		desc = "Karl the Fog"
	case c.Temp < 10:
		desc = "a biting chill"
	}
	return SimWeather{WarmthDecayMod: mod, Description: desc}
}
