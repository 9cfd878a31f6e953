package cuckoo

import (
	"cmp"
	"slices"
)

// Nest is a candidate solution: a position in the search box and the fitness
// evaluated at that position.
type Nest struct {
	Position []float64
	Fitness  float64
}

// Clone returns a deep copy of the nest so that no two nests share a position slice.
func (n Nest) Clone() Nest {
	return Nest{
		Position: slices.Clone(n.Position),
		Fitness:  n.Fitness,
	}
}

// Population is an ordered collection of nests, best first once sorted.
type Population []Nest

// Sort orders the population by fitness, highest first. Ties keep no particular order.
func (p Population) Sort() {
	slices.SortFunc(p, func(a, b Nest) int {
		return cmp.Compare(b.Fitness, a.Fitness)
	})
}

// IsSorted reports whether every nest is at least as fit as its successor.
func (p Population) IsSorted() bool {
	for i := 1; i < len(p); i++ {
		if p[i-1].Fitness < p[i].Fitness {
			return false
		}
	}
	return true
}

// Best returns the first nest. The population must be sorted and non-empty.
func (p Population) Best() Nest {
	return p[0]
}

// Worst returns the last nest. The population must be sorted and non-empty.
func (p Population) Worst() Nest {
	return p[len(p)-1]
}

// Clone deep-copies every nest.
func (p Population) Clone() Population {
	out := make(Population, len(p))
	for i, n := range p {
		out[i] = n.Clone()
	}
	return out
}
