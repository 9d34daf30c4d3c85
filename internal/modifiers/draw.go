package modifiers

import "github.com/talgya/streetsim/internal/entropy"

// Weighted is one entry of a weighted table. Weights need not sum to 1.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedDraw consumes exactly one value from src and walks the table,
// subtracting weights until the roll goes non-positive. A roll of 1.0, a
// zero-weight table, or a walk that falls off the end all return the first
// entry. An empty table returns the zero value.
func WeightedDraw[T any](table []Weighted[T], src entropy.Source) T {
	r := src.Float()
	var zero T
	if len(table) == 0 {
		return zero
	}
	if r >= 1 {
		return table[0].Value
	}

	total := 0.0
	for _, e := range table {
		total += e.Weight
	}
	roll := r * total
	for _, e := range table {
		roll -= e.Weight
		if roll <= 0 {
			return e.Value
		}
	}
	return table[0].Value
}
