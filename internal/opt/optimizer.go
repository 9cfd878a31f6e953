package opt

import (
	"fmt"

	"github.com/cwbudde/cuckoofit/internal/cuckoo"
)

// Optimizer defines a maximizing optimization algorithm.
type Optimizer interface {
	// Name identifies the algorithm in logs and stored results.
	Name() string

	// Run searches bounds for the position with the highest fitness.
	// Returns the best position, its fitness and the work spent.
	Run(fitness cuckoo.FitnessFunc, bounds cuckoo.Bounds) (cuckoo.Result, error)
}

// Params configures any optimizer built by New.
type Params struct {
	Config cuckoo.Config
	Seed   int64

	// OnGeneration receives per-generation statistics when the algorithm
	// reports them.
	OnGeneration func(cuckoo.GenerationStats)
}

// Algorithms lists the names accepted by New.
var Algorithms = []string{"cuckoo", "mayfly"}

// ReportsGenerations reports whether the named algorithm calls
// Params.OnGeneration. The mayfly library exposes no per-iteration hook.
func ReportsGenerations(name string) bool {
	switch name {
	case "", "cuckoo":
		return true
	default:
		return false
	}
}

// New creates the optimizer registered under name.
func New(name string, p Params) (Optimizer, error) {
	switch name {
	case "", "cuckoo":
		return NewCuckoo(p), nil
	case "mayfly":
		return NewMayfly(p.Config.Generations, p.Config.PopulationSize, p.Seed), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s", name)
	}
}
