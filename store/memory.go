package store

import (
	"context"
	"sync"
	"time"

	"github.com/setlab/labsched/model"
)

type sessionEntry struct {
	dataset  *model.Dataset
	lastUsed time.Time
}

// MemoryStore is the default in-process dataset store.
type MemoryStore struct {
	mu         sync.RWMutex
	sessions   map[string]*sessionEntry
	generation uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*sessionEntry),
	}
}

func (m *MemoryStore) Replace(_ context.Context, sessionID string, dataset *model.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	dataset.Generation = m.generation
	m.sessions[sessionID] = &sessionEntry{
		dataset:  dataset,
		lastUsed: time.Now(),
	}
	return nil
}

func (m *MemoryStore) Snapshot(_ context.Context, sessionID string) (*model.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNoDataset
	}
	entry.lastUsed = time.Now()
	return entry.dataset, nil
}

func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) Sessions(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = make(map[string]*sessionEntry)
	return nil
}

// Sweep drops sessions idle for longer than ttl and returns how many were
// removed. The Redis backend expires keys natively, so only this store needs
// periodic sweeping.
func (m *MemoryStore) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for id, entry := range m.sessions {
		if entry.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
