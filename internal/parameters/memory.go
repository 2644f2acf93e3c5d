package parameters

import (
	"context"
	"sync"
)

// MemoryStore keeps parameters in process memory.
type MemoryStore struct {
	mu  sync.RWMutex
	doc map[string]any
}

// NewMemoryStore creates a store seeded with flat dotted keys.
func NewMemoryStore(initial map[string]any) *MemoryStore {
	doc := make(map[string]any)
	for k, v := range initial {
		setPath(doc, k, normalize(v))
	}
	return &MemoryStore{doc: doc}
}

func (s *MemoryStore) All(ctx context.Context) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Flatten(s.doc), nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookup(s.doc, key), nil
}

func (s *MemoryStore) Apply(ctx context.Context, changes ...Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	applyChanges(s.doc, changes)
	return nil
}
