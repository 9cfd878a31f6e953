package opt

import (
	"github.com/cwbudde/cuckoofit/internal/cuckoo"
)

// CuckooAdapter runs a fresh cuckoo.Engine for every call to Run.
type CuckooAdapter struct {
	params Params
}

// NewCuckoo creates a Cuckoo Search optimizer
func NewCuckoo(p Params) Optimizer {
	return &CuckooAdapter{params: p}
}

// Name returns "cuckoo".
func (c *CuckooAdapter) Name() string {
	return "cuckoo"
}

// Run builds an engine seeded from params and fits it.
func (c *CuckooAdapter) Run(fitness cuckoo.FitnessFunc, bounds cuckoo.Bounds) (cuckoo.Result, error) {
	cfg := c.params.Config
	cfg.Dimension = bounds.Dim()

	engine, err := cuckoo.New(cfg, bounds, fitness, cuckoo.NewSource(c.params.Seed))
	if err != nil {
		return cuckoo.Result{}, err
	}
	if c.params.OnGeneration != nil {
		engine.OnGeneration(c.params.OnGeneration)
	}
	return engine.Fit()
}
