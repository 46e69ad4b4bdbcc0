package cart

import (
	"context"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string]Cart
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]Cart)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Get(ctx context.Context, owner string) (Cart, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.m[owner]
	if !ok {
		return Cart{}, false, nil
	}
	return clone(c), true, nil
}

func (s *MemStore) Put(ctx context.Context, owner string, c Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[owner] = clone(c)
	return nil
}

func (s *MemStore) Delete(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, owner)
	return nil
}

// clone keeps callers from aliasing the stored item slice.
func clone(c Cart) Cart {
	if c.Items == nil {
		return Cart{}
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
