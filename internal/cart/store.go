package cart

import (
	"context"
	"errors"
)

// Store is the persistence port for cart state, keyed by cart id.
// The engine treats it as best-effort: a failing Save never rolls back the
// in-memory cart, and a failing Load restores an empty cart.
type Store interface {
	// Load returns the persisted line items for cartID.
	// Returns ErrNotFound when no cart is stored under the key and ErrCorrupt
	// when a stored record cannot be decoded.
	Load(ctx context.Context, cartID string) ([]LineItem, error)

	// Save persists the full line-item list for cartID, replacing any prior state.
	Save(ctx context.Context, cartID string, items []LineItem) error
}

var (
	// ErrNotFound indicates no cart is persisted under the given id.
	ErrNotFound = errors.New("cart not found")
	// ErrCorrupt indicates a persisted record that cannot be decoded
	// (bad money encoding or unknown schema version).
	ErrCorrupt = errors.New("cart record corrupt")
)
