package main

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/cuckoofit/internal/benchmark"
	"github.com/cwbudde/cuckoofit/internal/runner"
	"github.com/cwbudde/cuckoofit/internal/store"
	"github.com/cwbudde/cuckoofit/internal/telemetry"
	"github.com/spf13/cobra"
)

// Optimizer flags shared by run and experiment.
var (
	problemName  string
	algorithm    string
	popSize      int
	deadFraction float64
	generations  int
	stepScale    float64
	lambda       float64
	target       float64
	seed         int64
	saveRuns     bool
	traceRuns    bool
)

func addOptimizerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&problemName, "problem", "", "Benchmark problem (paraboloid, sine); empty runs all")
	cmd.Flags().StringVar(&algorithm, "algo", "cuckoo", "Optimizer: cuckoo, mayfly")
	cmd.Flags().IntVar(&popSize, "pop", 50, "Population size")
	cmd.Flags().Float64Var(&deadFraction, "dead", 0.25, "Fraction of nests regenerated each generation")
	cmd.Flags().IntVar(&generations, "generations", 2000, "Max generations")
	cmd.Flags().Float64Var(&stepScale, "step", 1, "Lévy step scale")
	cmd.Flags().Float64Var(&lambda, "lambda", 1.5, "Lévy exponent in (0, 2]")
	cmd.Flags().Float64Var(&target, "target", 0, "Target fitness (default: the problem's known optimum)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().BoolVar(&saveRuns, "save", true, "Persist results to the store")
	cmd.Flags().BoolVar(&traceRuns, "trace", false, "Write per-generation traces under --data-dir")
}

// selectedProblems resolves --problem.
func selectedProblems() ([]benchmark.Problem, error) {
	if problemName == "" {
		return benchmark.All(), nil
	}
	p, err := benchmark.Lookup(problemName)
	if err != nil {
		return nil, err
	}
	return []benchmark.Problem{p}, nil
}

// buildSpec applies the optimizer flags on top of the problem defaults.
func buildSpec(cmd *cobra.Command, problem benchmark.Problem) runner.JobSpec {
	spec := runner.DefaultSpec(problem)
	spec.Algorithm = algorithm
	spec.Config.PopulationSize = popSize
	spec.Config.DeadFraction = deadFraction
	spec.Config.Generations = generations
	spec.Config.StepScale = stepScale
	spec.Config.Lambda = lambda
	spec.Config.Seed = seed
	if cmd.Flags().Changed("target") {
		spec.Config.TargetFitness = target
	}
	spec.Trace = traceRuns
	return spec
}

// newManager wires the store, trace directory and metrics into a job manager.
// The returned cleanup closes the store.
func newManager(cmd *cobra.Command) (*runner.Manager, func(), error) {
	opts := runner.Options{}
	if traceRuns {
		opts.TraceDir = dataDir
	}

	recorder, err := telemetry.NewRecorder()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}
	opts.Recorder = recorder

	cleanup := func() {}
	if saveRuns {
		s, err := openStore(cmd.Context())
		if err != nil {
			return nil, nil, err
		}
		opts.Store = s
		cleanup = func() {
			if err := store.CloseIfSupported(s); err != nil {
				slog.Warn("Failed to close store", "error", err)
			}
		}
	}
	return runner.NewManager(opts), cleanup, nil
}
