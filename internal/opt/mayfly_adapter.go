package opt

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/cuckoofit/internal/cuckoo"
	"github.com/cwbudde/mayfly"
)

// MayflyAdapter wraps the external Mayfly library as a baseline. Mayfly
// minimizes cost, so fitness is negated on the way in and out.
type MayflyAdapter struct {
	maxIters int
	popSize  int
	seed     int64
}

// NewMayfly creates a new Mayfly optimizer adapter
func NewMayfly(maxIters, popSize int, seed int64) Optimizer {
	return &MayflyAdapter{
		maxIters: maxIters,
		popSize:  popSize,
		seed:     seed,
	}
}

// Name returns "mayfly".
func (m *MayflyAdapter) Name() string {
	return "mayfly"
}

// Run executes the Mayfly optimization using the external library
func (m *MayflyAdapter) Run(fitness cuckoo.FitnessFunc, bounds cuckoo.Bounds) (cuckoo.Result, error) {
	dim := bounds.Dim()
	if err := bounds.Validate(dim); err != nil {
		return cuckoo.Result{}, err
	}
	if dim == 0 {
		return cuckoo.Result{}, fmt.Errorf("bounds must have at least one dimension")
	}

	// The library takes scalar bounds shared by every dimension
	lower, upper := bounds.Lower[0], bounds.Upper[0]
	for i := 1; i < dim; i++ {
		if bounds.Lower[i] != lower || bounds.Upper[i] != upper {
			return cuckoo.Result{}, fmt.Errorf("mayfly requires identical bounds in every dimension, dimension %d differs", i)
		}
	}

	var (
		evalErr     error
		evaluations int
	)
	cost := func(x []float64) float64 {
		evaluations++
		if evalErr != nil {
			return math.Inf(1)
		}
		f, err := fitness(x)
		if err != nil {
			evalErr = &cuckoo.EvaluationError{Phase: "mayfly", Position: append([]float64(nil), x...), Err: err}
			return math.Inf(1)
		}
		return -f
	}

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = cost
	config.ProblemSize = dim
	config.MaxIterations = m.maxIters
	config.NPop = m.popSize
	config.LowerBound = lower
	config.UpperBound = upper
	config.Rand = rand.New(rand.NewSource(m.seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		return cuckoo.Result{}, fmt.Errorf("mayfly optimization failed: %w", err)
	}
	if evalErr != nil {
		return cuckoo.Result{}, evalErr
	}

	return cuckoo.Result{
		Position:    append([]float64(nil), result.GlobalBest.Position...),
		Fitness:     -result.GlobalBest.Cost,
		Generations: m.maxIters,
		Evaluations: evaluations,
	}, nil
}
