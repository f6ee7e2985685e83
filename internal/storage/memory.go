package storage

import (
	"context"
	"sync"

	"github.com/imrishuroy/go-cart-engine/internal/cart"
)

// MemoryStore is an in-memory cart.Store for local runs and tests.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]cart.LineItem
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string][]cart.LineItem),
	}
}

// Load returns the stored items for cartID, or cart.ErrNotFound.
func (s *MemoryStore) Load(ctx context.Context, cartID string) ([]cart.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.carts[cartID]
	if !ok {
		return nil, cart.ErrNotFound
	}
	out := make([]cart.LineItem, len(items))
	copy(out, items)
	return out, nil
}

// Save replaces the stored items for cartID.
func (s *MemoryStore) Save(ctx context.Context, cartID string, items []cart.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]cart.LineItem, len(items))
	copy(stored, items)
	s.carts[cartID] = stored
	return nil
}
