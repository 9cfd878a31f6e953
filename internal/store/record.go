package store

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"
)

// RunConfig is the persisted copy of the run parameters.
type RunConfig struct {
	PopulationSize int     `json:"populationSize"`
	Dimension      int     `json:"dimension"`
	DeadFraction   float64 `json:"deadFraction"`
	Generations    int     `json:"generations"`
	TargetFitness  float64 `json:"targetFitness"`
	StepScale      float64 `json:"stepScale"`
	Lambda         float64 `json:"lambda"`
	Seed           int64   `json:"seed"`
}

// RunRecord is the final result of a completed run. Intermediate population
// state is never stored.
type RunRecord struct {
	ID        string `json:"id"`
	Problem   string `json:"problem"`
	Algorithm string `json:"algorithm"`

	Config RunConfig `json:"config"`

	BestPosition []float64 `json:"bestPosition"`
	BestFitness  float64   `json:"bestFitness"`

	// Expected is the known optimum of the problem, if any
	Expected float64 `json:"expected"`

	Generations int           `json:"generations"`
	Evaluations int           `json:"evaluations"`
	Elapsed     time.Duration `json:"elapsed"`
	Timestamp   time.Time     `json:"timestamp"`
}

// RunInfo is the listing view of a RunRecord.
type RunInfo struct {
	ID          string    `json:"id"`
	Problem     string    `json:"problem"`
	Algorithm   string    `json:"algorithm"`
	BestFitness float64   `json:"bestFitness"`
	Generations int       `json:"generations"`
	Timestamp   time.Time `json:"timestamp"`
}

// ToInfo converts a full record to its summary.
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		ID:          r.ID,
		Problem:     r.Problem,
		Algorithm:   r.Algorithm,
		BestFitness: r.BestFitness,
		Generations: r.Generations,
		Timestamp:   r.Timestamp,
	}
}

// Validate checks that the record is complete and self-consistent.
func (r *RunRecord) Validate() error {
	if err := ValidateRunID(r.ID); err != nil {
		return err
	}
	if r.Problem == "" {
		return &ValidationError{Field: "Problem", Reason: "cannot be empty"}
	}
	if len(r.BestPosition) == 0 {
		return &ValidationError{Field: "BestPosition", Reason: "cannot be empty"}
	}
	if r.Config.Dimension > 0 && len(r.BestPosition) != r.Config.Dimension {
		return &ValidationError{
			Field:  "BestPosition",
			Reason: fmt.Sprintf("length mismatch: expected %d, got %d", r.Config.Dimension, len(r.BestPosition)),
		}
	}
	// JSON cannot carry NaN or infinities
	if math.IsNaN(r.BestFitness) || math.IsInf(r.BestFitness, 0) {
		return &ValidationError{Field: "BestFitness", Reason: "must be finite"}
	}
	if math.IsInf(r.Config.TargetFitness, 0) || math.IsNaN(r.Config.TargetFitness) {
		return &ValidationError{Field: "Config.TargetFitness", Reason: "must be finite"}
	}
	if r.Generations < 0 {
		return &ValidationError{Field: "Generations", Reason: "cannot be negative"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	return nil
}

// ValidateRunID rejects IDs that are not a single path element, so an ID
// can never address a directory outside <baseDir>/runs.
func ValidateRunID(runID string) error {
	switch {
	case runID == "":
		return &ValidationError{Field: "ID", Reason: "cannot be empty"}
	case runID == "." || runID == "..":
		return &ValidationError{Field: "ID", Reason: "must not be a relative path"}
	case strings.ContainsAny(runID, `/\`) || filepath.Base(runID) != runID:
		return &ValidationError{Field: "ID", Reason: "must not contain path separators"}
	}
	return nil
}

// ValidationError represents a record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
