package slack

import "sync"

// store is a small identity memo keyed by platform ID. Lookups during
// streaming and the REST wrappers share it, so access is locked.
type store[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newStore[T any]() *store[T] {
	return &store[T]{items: make(map[string]*T)}
}

func (s *store[T]) get(id string) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

func (s *store[T]) put(id string, item *T) {
	if id == "" || item == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = item
}

func (s *store[T]) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
