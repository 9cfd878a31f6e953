package cuckoo

import (
	"fmt"
	"math"
)

// Config holds the immutable run parameters.
type Config struct {
	// PopulationSize is the nominal number of nests N.
	PopulationSize int

	// Dimension is the length D of every position vector.
	Dimension int

	// DeadFraction is the share of the population discarded and regenerated each
	// generation. The dead count is floor(DeadFraction * PopulationSize); when that
	// rounds down to zero, diversity renewal is disabled.
	DeadFraction float64

	// Generations caps the number of generations.
	Generations int

	// TargetFitness stops the search once the best nest reaches it.
	TargetFitness float64

	// StepScale multiplies every Lévy step.
	StepScale float64

	// Lambda is the Lévy stability exponent, in (0, 2].
	Lambda float64
}

// DefaultConfig returns the parameters used by the bundled scenarios.
func DefaultConfig(dim int) Config {
	return Config{
		PopulationSize: 50,
		Dimension:      dim,
		DeadFraction:   0.25,
		Generations:    2000,
		TargetFitness:  math.Inf(1),
		StepScale:      1,
		Lambda:         1.5,
	}
}

// DeadCount returns the number of nests replaced per generation.
func (c Config) DeadCount() int {
	return int(c.DeadFraction * float64(c.PopulationSize))
}

// Validate reports the first invalid parameter as a *ConfigError.
func (c Config) Validate() error {
	if c.PopulationSize <= 0 {
		return &ConfigError{Field: "PopulationSize", Reason: "must be positive"}
	}
	if c.Dimension <= 0 {
		return &ConfigError{Field: "Dimension", Reason: "must be positive"}
	}
	if math.IsNaN(c.DeadFraction) || c.DeadFraction < 0 || c.DeadFraction > 1 {
		return &ConfigError{Field: "DeadFraction", Reason: fmt.Sprintf("%g is outside [0, 1]", c.DeadFraction)}
	}
	if c.Generations <= 0 {
		return &ConfigError{Field: "Generations", Reason: "must be positive"}
	}
	if math.IsNaN(c.TargetFitness) {
		return &ConfigError{Field: "TargetFitness", Reason: "cannot be NaN"}
	}
	if math.IsNaN(c.StepScale) || math.IsInf(c.StepScale, 0) {
		return &ConfigError{Field: "StepScale", Reason: "must be finite"}
	}
	if math.IsNaN(c.Lambda) || c.Lambda <= 0 || c.Lambda > 2 {
		return &ConfigError{Field: "Lambda", Reason: fmt.Sprintf("%g is outside (0, 2]", c.Lambda)}
	}
	return nil
}
