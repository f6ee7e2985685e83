package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Sessions hands out one Engine per cart id so every consumer of the same
// cart observes the same state. Engines are created lazily and restored from
// the store on first access.
type Sessions struct {
	mu      sync.Mutex
	store   Store
	engines map[string]*Engine
}

// NewSessions returns a session manager backed by store.
func NewSessions(store Store) *Sessions {
	return &Sessions{
		store:   store,
		engines: make(map[string]*Engine),
	}
}

// Create starts a new empty cart under a fresh id.
func (s *Sessions) Create() *Engine {
	e := NewEngine(uuid.NewString(), s.store)
	s.mu.Lock()
	s.engines[e.ID()] = e
	s.mu.Unlock()
	return e
}

// Get returns the engine for cartID, creating it (and restoring persisted
// state if any) on first access. An id with no persisted state simply yields
// an empty cart; the caller cannot tell the difference and does not need to.
func (s *Sessions) Get(ctx context.Context, cartID string) *Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.engines[cartID]; ok {
		return e
	}
	// Restore before publishing the engine so a concurrent Get for the same
	// id never observes the pre-restore empty state.
	e := NewEngine(cartID, s.store)
	e.Restore(ctx)
	s.engines[cartID] = e
	return e
}
