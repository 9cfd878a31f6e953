package store

import "context"

// Store defines the interface for run result persistence.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if the record doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// Save persists a completed run, overwriting any record with the same ID.
	Save(ctx context.Context, record *RunRecord) error

	// Load retrieves the record for the given run.
	// Returns ErrNotFound if no record exists for runID.
	Load(ctx context.Context, runID string) (*RunRecord, error)

	// List returns summaries of all stored runs, newest first.
	List(ctx context.Context) ([]RunInfo, error)

	// Delete removes a run record. FSStore also removes the run's trace.
	// Returns ErrNotFound if no record exists for runID.
	Delete(ctx context.Context, runID string) error
}

// ErrNotFound is returned when a requested run does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
