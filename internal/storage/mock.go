package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

// copySnapshot decouples stored data from caller pointers, matching the
// JSON round trip the Redis backend gets for free.
func copySnapshot(snap *state.Snapshot) *state.Snapshot {
	if snap == nil {
		return nil
	}
	cp := *snap
	if snap.State != nil {
		cp.State = snap.State.Clone()
	}
	return &cp
}

// MemoryStorage is an in-memory Storage for tests and offline play.
type MemoryStorage struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*state.Snapshot
	slots    map[string]*state.Snapshot

	// FailNextSave injects one save error, for rollback tests.
	FailNextSave error
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		sessions: make(map[uuid.UUID]*state.Snapshot),
		slots:    make(map[string]*state.Snapshot),
	}
}

func (m *MemoryStorage) SaveSession(ctx context.Context, id uuid.UUID, snap *state.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailNextSave; err != nil {
		m.FailNextSave = nil
		return err
	}
	m.sessions[id] = copySnapshot(snap)
	return nil
}

func (m *MemoryStorage) LoadSession(ctx context.Context, id uuid.UUID) (*state.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySnapshot(m.sessions[id]), nil
}

func (m *MemoryStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStorage) SaveSlot(ctx context.Context, id uuid.UUID, slot string, snap *state.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailNextSave; err != nil {
		m.FailNextSave = nil
		return err
	}
	m.slots[id.String()+":"+slot] = copySnapshot(snap)
	return nil
}

func (m *MemoryStorage) LoadSlot(ctx context.Context, id uuid.UUID, slot string) (*state.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySnapshot(m.slots[id.String()+":"+slot]), nil
}

func (m *MemoryStorage) Ping(ctx context.Context) error { return nil }
func (m *MemoryStorage) Close() error                   { return nil }
