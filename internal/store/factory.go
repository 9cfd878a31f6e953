package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// NewStore opens the backend named kind rooted at dataDir. "fs" keeps one
// directory per run; "sqlite" uses <dataDir>/runs.db.
func NewStore(ctx context.Context, kind, dataDir string) (Store, error) {
	switch kind {
	case "", "fs":
		return NewFSStore(dataDir)
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
		s := NewSQLiteStore(filepath.Join(dataDir, "runs.db"))
		if err := s.Init(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes stores that hold resources.
func CloseIfSupported(s Store) error {
	closer, ok := s.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
