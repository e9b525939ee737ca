package database

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by Load when nothing has been persisted yet
var ErrNoSnapshot = errors.New("no snapshot")

// Snapshotter persists the whole state as a single document.
// This allows swapping between the JSON file (default) and a SQL row.
type Snapshotter interface {
	// Save overwrites the stored document with s
	Save(ctx context.Context, s *State) error
	// Load returns the stored document, or ErrNoSnapshot
	Load(ctx context.Context) (*State, error)
	Close() error
}
