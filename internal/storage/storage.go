// Package storage persists playthrough snapshots.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

// Storage persists session state and named save slots. Loads return
// (nil, nil) when nothing is stored under the key.
//
// Stored data is decoupled from the caller's pointers: mutating a snapshot
// after SaveSession, or one returned by LoadSession, must not change what is
// persisted. Rollback after a failed turn relies on this.
type Storage interface {
	// SaveSession stores the live snapshot for a playthrough.
	SaveSession(ctx context.Context, id uuid.UUID, snap *state.Snapshot) error
	// LoadSession retrieves a playthrough snapshot.
	LoadSession(ctx context.Context, id uuid.UUID) (*state.Snapshot, error)
	// DeleteSession removes a playthrough.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// SaveSlot stores a snapshot under a player-chosen slot name.
	SaveSlot(ctx context.Context, id uuid.UUID, slot string, snap *state.Snapshot) error
	// LoadSlot retrieves a slot snapshot.
	LoadSlot(ctx context.Context, id uuid.UUID, slot string) (*state.Snapshot, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
	// Close releases resources.
	Close() error
}
