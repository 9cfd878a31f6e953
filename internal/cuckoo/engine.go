package cuckoo

import (
	"fmt"
	"log/slog"
	"slices"
)

// FitnessFunc evaluates a position. Larger values are better.
type FitnessFunc func(position []float64) (float64, error)

// Total adapts a fitness function that cannot fail.
func Total(f func([]float64) float64) FitnessFunc {
	return func(position []float64) (float64, error) {
		return f(position), nil
	}
}

// State is the lifecycle stage of an Engine.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// GenerationStats describes the population after a completed generation.
type GenerationStats struct {
	Generation   int
	BestFitness  float64
	WorstFitness float64
	Evaluations  int
	Replaced     bool // cuckoo replaced the worst nest
}

// Result is the outcome of Fit.
type Result struct {
	Position    []float64
	Fitness     float64
	Generations int
	Evaluations int
}

// Engine runs one Cuckoo Search. It owns its population and cuckoo and is not
// safe for concurrent use; independent engines share nothing.
type Engine struct {
	cfg       Config
	bounds    Bounds
	fitness   FitnessFunc
	src       Source
	levy      *Levy
	deadCount int

	state       State
	nests       Population
	cuckoo      Nest
	generation  int
	evaluations int

	onGeneration func(GenerationStats)
}

// New validates the configuration and bounds and returns an engine ready to Fit.
func New(cfg Config, bounds Bounds, fitness FitnessFunc, src Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := bounds.Validate(cfg.Dimension); err != nil {
		return nil, err
	}
	if fitness == nil {
		return nil, &ConfigError{Field: "FitnessFunc", Reason: "cannot be nil"}
	}
	if src == nil {
		return nil, &ConfigError{Field: "Source", Reason: "cannot be nil"}
	}
	levy, err := NewLevy(cfg.Lambda)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg: cfg,
		bounds: Bounds{
			Lower: slices.Clone(bounds.Lower),
			Upper: slices.Clone(bounds.Upper),
		},
		fitness:   fitness,
		src:       src,
		levy:      levy,
		deadCount: cfg.DeadCount(),
		state:     StateInitializing,
	}
	if e.deadCount == 0 {
		slog.Debug("Dead count is zero, kill and reborn are disabled",
			"dead_fraction", cfg.DeadFraction,
			"population_size", cfg.PopulationSize,
		)
	}
	return e, nil
}

// OnGeneration registers a callback invoked after every completed generation.
func (e *Engine) OnGeneration(fn func(GenerationStats)) {
	e.onGeneration = fn
}

// Fit runs the search to completion and returns the best nest found. An engine
// can be fit only once.
func (e *Engine) Fit() (Result, error) {
	if e.state != StateInitializing {
		return Result{}, ErrAlreadyRun
	}

	if err := e.initialize(); err != nil {
		e.state = StateDone
		return Result{}, err
	}
	e.nests.Sort()
	e.state = StateRunning

	for e.generation < e.cfg.Generations && e.nests.Best().Fitness < e.cfg.TargetFitness {
		prevBest := e.nests.Best().Fitness
		replaced, err := e.step()
		if err != nil {
			e.state = StateDone
			return Result{}, err
		}
		e.generation++

		if best := e.nests.Best().Fitness; best > prevBest {
			slog.Debug("Best fitness improved",
				"generation", e.generation,
				"best_fitness", best,
			)
		}
		if e.onGeneration != nil {
			e.onGeneration(GenerationStats{
				Generation:   e.generation,
				BestFitness:  e.nests.Best().Fitness,
				WorstFitness: e.nests.Worst().Fitness,
				Evaluations:  e.evaluations,
				Replaced:     replaced,
			})
		}
	}
	e.state = StateDone

	best := e.nests.Best()
	slog.Info("Cuckoo search finished",
		"generations", e.generation,
		"evaluations", e.evaluations,
		"best_fitness", best.Fitness,
	)

	return Result{
		Position:    slices.Clone(best.Position),
		Fitness:     best.Fitness,
		Generations: e.generation,
		Evaluations: e.evaluations,
	}, nil
}

// step runs one generation: fly, compare with worst, sort, kill, reborn, sort.
func (e *Engine) step() (bool, error) {
	if err := e.fly(); err != nil {
		return false, err
	}
	replaced := e.replaceWorst()
	e.nests.Sort()
	e.kill()
	if err := e.reborn(); err != nil {
		return replaced, err
	}
	e.nests.Sort()
	return replaced, nil
}

// initialize seeds PopulationSize+1 random nests and one more random nest as
// the starting cuckoo. The population keeps the extra member for its lifetime.
func (e *Engine) initialize() error {
	e.nests = make(Population, 0, e.cfg.PopulationSize+1)
	for i := 0; i < e.cfg.PopulationSize+1; i++ {
		nest, err := e.randomNest("initialize")
		if err != nil {
			return err
		}
		e.nests = append(e.nests, nest)
	}

	cuckoo, err := e.randomNest("initialize")
	if err != nil {
		return err
	}
	e.cuckoo = cuckoo
	return nil
}

// randomNest samples a position uniformly in bounds and evaluates it.
func (e *Engine) randomNest(phase string) (Nest, error) {
	position := e.bounds.Sample(e.src)
	fitness, err := e.evaluate(phase, position)
	if err != nil {
		return Nest{}, err
	}
	return Nest{Position: position, Fitness: fitness}, nil
}

func (e *Engine) evaluate(phase string, position []float64) (float64, error) {
	e.evaluations++
	fitness, err := e.fitness(position)
	if err != nil {
		return 0, &EvaluationError{Phase: phase, Position: slices.Clone(position), Err: err}
	}
	return fitness, nil
}

// fly moves the cuckoo by a scaled Lévy step, clamps it into bounds and
// re-evaluates it.
func (e *Engine) fly() error {
	step := e.levy.Step(e.src, e.cfg.Dimension)
	moved := make([]float64, e.cfg.Dimension)
	for i, x := range e.cuckoo.Position {
		moved[i] = x + e.cfg.StepScale*step[i]
	}
	position := e.bounds.Clamp(moved)

	fitness, err := e.evaluate("flight", position)
	if err != nil {
		return err
	}
	e.cuckoo = Nest{Position: position, Fitness: fitness}
	return nil
}

// replaceWorst puts a copy of the cuckoo in place of the last nest when the
// cuckoo is strictly fitter.
func (e *Engine) replaceWorst() bool {
	last := len(e.nests) - 1
	if e.cuckoo.Fitness > e.nests[last].Fitness {
		e.nests[last] = e.cuckoo.Clone()
		return true
	}
	return false
}

// kill drops the deadCount least fit nests. The population must be sorted.
func (e *Engine) kill() {
	e.nests = e.nests[:len(e.nests)-e.deadCount]
}

// reborn appends deadCount fresh random nests.
func (e *Engine) reborn() error {
	for i := 0; i < e.deadCount; i++ {
		nest, err := e.randomNest("reborn")
		if err != nil {
			return err
		}
		e.nests = append(e.nests, nest)
	}
	return nil
}

// State returns the lifecycle stage.
func (e *Engine) State() State {
	return e.state
}

// Generation returns the number of completed generations.
func (e *Engine) Generation() int {
	return e.generation
}

// Evaluations returns the number of fitness evaluations so far.
func (e *Engine) Evaluations() int {
	return e.evaluations
}

// Population returns a deep copy of the current nests.
func (e *Engine) Population() Population {
	return e.nests.Clone()
}

// Cuckoo returns a copy of the current cuckoo.
func (e *Engine) Cuckoo() Nest {
	return e.cuckoo.Clone()
}

// Config returns the run parameters.
func (e *Engine) Config() Config {
	return e.cfg
}
