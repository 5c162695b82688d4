package artifacts

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps artifacts in process memory. It backs tests and dry runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Name][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Name][]byte)}
}

func (s *MemoryStore) Read(_ context.Context, name Name) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Write(_ context.Context, name Name, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, name Name) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, name Name) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[name]
	return ok, nil
}
