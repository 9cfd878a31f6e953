package benchmark

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/cuckoofit/internal/cuckoo"
)

// Problem is a named fitness landscape with its search box and known optimum.
type Problem struct {
	Name      string
	Dimension int
	Bounds    cuckoo.Bounds
	Fitness   func([]float64) float64
	// Expected is the known global maximum, also used as the target fitness.
	Expected float64
}

// Paraboloid is -(0.1x² + 0.1y²) + 10 on [-100, 100]², maximum 10 at the origin.
func Paraboloid() Problem {
	return Problem{
		Name:      "paraboloid",
		Dimension: 2,
		Bounds:    cuckoo.NewBounds(2, -100, 100),
		Fitness: func(p []float64) float64 {
			return -(0.1*p[0]*p[0] + 0.1*p[1]*p[1]) + 10
		},
		Expected: 10,
	}
}

// SineSum is 10(sin(0.1x) + sin(0.1y)) on [-100, 100]², maximum 20.
func SineSum() Problem {
	return Problem{
		Name:      "sine",
		Dimension: 2,
		Bounds:    cuckoo.NewBounds(2, -100, 100),
		Fitness: func(p []float64) float64 {
			return 10 * (math.Sin(0.1*p[0]) + math.Sin(0.1*p[1]))
		},
		Expected: 20,
	}
}

// All returns the bundled problems in report order.
func All() []Problem {
	return []Problem{Paraboloid(), SineSum()}
}

// Names lists the registered problem names.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a problem by name.
func Lookup(name string) (Problem, error) {
	for _, p := range All() {
		if p.Name == name {
			return p, nil
		}
	}
	return Problem{}, fmt.Errorf("unknown problem: %s (available: %s)", name, strings.Join(Names(), ", "))
}
