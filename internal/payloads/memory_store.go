package payloads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore provides an in-memory payload store for testing and local
// usage. Payloads are deep-copied on both save and load so callers never
// share storage with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	nowFunc func() time.Time
}

type memoryEntry struct {
	payload   Payload
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory payload store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]memoryEntry{},
		nowFunc: time.Now,
	}
}

// SetNowFunc sets a custom time function for testing.
func (s *MemoryStore) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.nowFunc = fn
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (Payload, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if err := ValidateEnvelope(map[string]any(entry.payload)); err != nil {
		return nil, err
	}
	return Clone(entry.payload), nil
}

func (s *MemoryStore) Save(_ context.Context, id string, payload Payload) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("%w: nil payload", ErrPersistFailure)
	}
	if id == "" {
		id = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{payload: Clone(payload), updatedAt: s.nowFunc()}
	return id, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.entries {
		if entry.updatedAt.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}
