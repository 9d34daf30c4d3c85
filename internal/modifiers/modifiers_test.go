package modifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/streetsim/internal/entropy"
)

func TestWeightedDraw(t *testing.T) {
	table := []Weighted[string]{{"a", 1}, {"b", 1}, {"c", 2}}
	assert.Equal(t, "a", WeightedDraw(table, entropy.Constant(0)))
	assert.Equal(t, "a", WeightedDraw(table, entropy.Constant(0.25)))
	assert.Equal(t, "b", WeightedDraw(table, entropy.Constant(0.4)))
	assert.Equal(t, "c", WeightedDraw(table, entropy.Constant(0.9)))
	assert.Equal(t, "a", WeightedDraw(table, entropy.Constant(1)))
	assert.Equal(t, "", WeightedDraw[string](nil, entropy.Constant(0.5)))
	assert.Equal(t, "x", WeightedDraw([]Weighted[string]{{"x", 0}, {"y", 0}}, entropy.Constant(0.5)))
}

func TestWeightedDrawSingleEntry(t *testing.T) {
	table := []Weighted[Archetype]{{ArchTourist, 3}}
	for r := 0.0; r < 1; r += 0.01 {
		require.Equal(t, ArchTourist, WeightedDraw(table, entropy.Constant(r)))
	}
}

func TestWeightedDrawConsumesOneValue(t *testing.T) {
	seq := entropy.NewSequence(0.9, 0.1)
	WeightedDraw([]Weighted[int]{}, seq)
	assert.Equal(t, 0.1, seq.Float())
}

func TestTimeAt(t *testing.T) {
	assert.Equal(t, Morning, TimeAt(0))
	assert.Equal(t, Morning, TimeAt(-10))
	assert.Equal(t, Afternoon, TimeAt(TicksPerPhase))
	assert.Equal(t, Night, TimeAt(3*TicksPerPhase+1))
	assert.Equal(t, Morning, TimeAt(4*TicksPerPhase))
	assert.Panics(t, func() { Profile(TimeOfDay(9)) })
}

func TestEffectiveModifier(t *testing.T) {
	base := Info(DistrictTenderloin).Bias
	assert.InDelta(t, base.Drug*1.6, EffectiveModifier(DistrictTenderloin, KeyDrug, Night), 1e-9)
	assert.InDelta(t, base.Shelter*0.3, EffectiveModifier(DistrictTenderloin, KeyShelter, Night), 1e-9)
	assert.InDelta(t, base.Shelter, EffectiveModifier(DistrictTenderloin, KeyShelter, Morning), 1e-9)
	assert.InDelta(t, base.Kindness, EffectiveModifier(DistrictTenderloin, KeyKindness, Night), 1e-9)
	assert.Panics(t, func() { EffectiveModifier(DistrictTenderloin, Key(99), Night) })
}

func TestDistrictTables(t *testing.T) {
	for d := District(0); d < NumDistricts; d++ {
		info := Info(d)
		require.NotEmpty(t, info.Name)
		require.NotEmpty(t, info.Crowd, info.Name)
		for _, w := range info.Crowd {
			assert.NotEqual(t, ArchDealer, w.Value, "dealers never come from a crowd table")
			assert.Positive(t, w.Weight)
		}
		for k := KeyFood; k <= KeyWildlife; k++ {
			v := info.Bias.Value(k)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.Equal(t, DistrictTenderloin, DistrictCastro.Next())
	assert.Panics(t, func() { Info(District(NumDistricts)) })
}

func TestArchetypes(t *testing.T) {
	for a := Archetype(0); a < NumArchetypes; a++ {
		p := ProfileOf(a)
		assert.NotEmpty(t, p.Name)
		assert.LessOrEqual(t, p.Steal.MoneyMin, p.Steal.MoneyMax, p.Name)
	}
	assert.True(t, ArchUndercover.IsPolice())
	assert.False(t, ArchTourist.IsPolice())
	assert.Panics(t, func() { ProfileOf(Archetype(NumArchetypes)) })
}
