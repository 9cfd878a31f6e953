package cuckoo

import (
	"errors"
	"fmt"
)

// ErrAlreadyRun is returned by Fit when the engine has already left the
// initializing state.
var ErrAlreadyRun = errors.New("engine has already run")

// ConfigError reports an invalid run parameter. It is detected at construction.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid config: " + e.Field + " " + e.Reason
}

// EvaluationError wraps a failure of the caller's fitness function.
type EvaluationError struct {
	// Phase is where the evaluation happened: "initialize", "flight" or "reborn".
	Phase    string
	Position []float64
	Err      error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("fitness evaluation failed during %s at %v: %v", e.Phase, e.Position, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
