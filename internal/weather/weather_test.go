package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/streetsim/internal/modifiers"
)

func TestSamplerReplaysFromSeed(t *testing.T) {
	a, b := NewSampler(5), NewSampler(5)
	for tick := 0; tick < 600; tick += 7 {
		tod := modifiers.TimeAt(tick)
		assert.Equal(t, a.Sample(tick, tod), b.Sample(tick, tod))
	}
}

func TestSampleRanges(t *testing.T) {
	s := NewSampler(17)
	for tick := 0; tick < 3600; tick += 11 {
		c := s.Sample(tick, modifiers.TimeAt(tick))
		assert.GreaterOrEqual(t, c.Wind, 0.0)
		assert.LessOrEqual(t, c.Wind, 1.0)
		assert.InDelta(t, 13, c.Temp, 8.5)
		if c.IsStorm {
			assert.True(t, c.IsRain)
		}
	}
}

func TestMapToSim(t *testing.T) {
	tests := []struct {
		name string
		c    Conditions
		mod  float64
		desc string
	}{
		{"neutral", Conditions{Temp: 15}, 1, "clear skies"},
		{"warm floor", Conditions{Temp: 40}, 0.5, "clear skies"},
		{"cold cap", Conditions{Temp: -30}, 2, "a biting chill"},
		{"chill", Conditions{Temp: 9}, 1.4, "a biting chill"},
		{"fog", Conditions{Temp: 15, IsFog: true}, 1.15, "Karl the Fog"},
		{"rain", Conditions{Temp: 15, IsRain: true}, 1.4, "cold rain"},
		{"storm", Conditions{Temp: 15, IsRain: true, IsStorm: true}, 1.8, "a howling storm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapToSim(tt.c)
			assert.InDelta(t, tt.mod, got.WarmthDecayMod, 1e-9)
			assert.Equal(t, tt.desc, got.Description)
		})
	}
}
