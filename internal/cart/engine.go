package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/imrishuroy/go-cart-engine/internal/catalog"
	"github.com/imrishuroy/go-cart-engine/internal/promo"
)

// Typed results for promo application. These are validation rejections, not
// faults; callers surface them however they like.
var (
	ErrPromoNotFound       = errors.New("promo code not found")
	ErrPromoAlreadyApplied = errors.New("a promo code is already applied")
)

// Engine owns the authoritative in-memory cart for one session.
//
// Line items keep insertion order and are unique per product id. Every stored
// line has quantity >= 1. Mutations update memory first, then persist
// best-effort and notify subscribers; the in-memory state is the source of
// truth for rendering regardless of persistence outcome.
//
// The engine serializes its own operations with a mutex, so two concurrent
// requests against the same cart cannot interleave mid-mutation.
type Engine struct {
	mu    sync.Mutex
	id    string
	store Store
	items []LineItem
	promo *promo.Promo
	subs  []func()
}

// NewEngine returns an empty engine for cartID backed by store.
// Call Restore to pick up previously persisted state.
func NewEngine(cartID string, store Store) *Engine {
	return &Engine{
		id:    cartID,
		store: store,
	}
}

// ID returns the cart id the engine persists under.
func (e *Engine) ID() string { return e.id }

// Restore loads persisted state for this cart. A missing record starts an
// empty cart silently; a corrupt record or read failure also starts empty but
// is logged. Restore never fails the session.
func (e *Engine) Restore(ctx context.Context) {
	items, err := e.store.Load(ctx, e.id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("cart %s: restore failed, starting empty: %v", e.id, err)
		}
		return
	}
	e.mu.Lock()
	e.items = items
	e.mu.Unlock()
}

// AddItem adds quantity units of p to the cart. If the product is already
// present the existing line's quantity is incremented and the original
// price/discount snapshot is kept; otherwise a new line is appended with a
// fresh snapshot. A quantity below 1 is floored to 1. AddItem always succeeds.
func (e *Engine) AddItem(ctx context.Context, p catalog.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	e.mu.Lock()
	if i := e.indexOf(p.ID); i >= 0 {
		e.items[i].Quantity += quantity
	} else {
		e.items = append(e.items, newLineItem(p, quantity))
	}
	e.mu.Unlock()

	e.persist(ctx)
	e.notify()
}

// SetQuantity sets the stored quantity for productID, flooring any value
// below 1 to 1 so the quantity invariant holds no matter what the caller
// sends. Removing a line goes through RemoveItem, never through a zero here.
// Returns false (a no-op) when the product is not in the cart.
func (e *Engine) SetQuantity(ctx context.Context, productID string, quantity int) bool {
	if quantity < 1 {
		quantity = 1
	}

	e.mu.Lock()
	i := e.indexOf(productID)
	if i < 0 {
		e.mu.Unlock()
		return false
	}
	e.items[i].Quantity = quantity
	e.mu.Unlock()

	e.persist(ctx)
	e.notify()
	return true
}

// RemoveItem deletes the line for productID if present. Removing an absent
// product is a no-op so duplicate UI events are harmless.
func (e *Engine) RemoveItem(ctx context.Context, productID string) {
	e.mu.Lock()
	i := e.indexOf(productID)
	if i < 0 {
		e.mu.Unlock()
		return
	}
	e.items = append(e.items[:i], e.items[i+1:]...)
	e.mu.Unlock()

	e.persist(ctx)
	e.notify()
}

// Clear empties the cart and drops any applied promo code.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	e.items = nil
	e.promo = nil
	e.mu.Unlock()

	e.persist(ctx)
	e.notify()
}

// ApplyPromo validates code against the fixed promo table and records it as
// the session's applied promo. Applying on top of an existing promo returns
// ErrPromoAlreadyApplied (clear the cart first); an unknown code returns
// ErrPromoNotFound and leaves state untouched. The applied promo is
// session-scoped and is not persisted.
func (e *Engine) ApplyPromo(code string) (promo.Promo, error) {
	e.mu.Lock()
	if e.promo != nil {
		e.mu.Unlock()
		return promo.Promo{}, ErrPromoAlreadyApplied
	}
	p, ok := promo.Lookup(code)
	if !ok {
		e.mu.Unlock()
		return promo.Promo{}, ErrPromoNotFound
	}
	e.promo = &p
	e.mu.Unlock()

	e.notify()
	return p, nil
}

// Items returns a copy of the cart lines in insertion order.
func (e *Engine) Items() []LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]LineItem, len(e.items))
	copy(out, e.items)
	return out
}

// Promo returns the applied promo, if any.
func (e *Engine) Promo() (promo.Promo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.promo == nil {
		return promo.Promo{}, false
	}
	return *e.promo, true
}

// Subscribe registers fn to run synchronously after every mutation.
// Consumers re-read Items/Promo/totals themselves; no payload is pushed.
func (e *Engine) Subscribe(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// indexOf returns the line index for productID, -1 if absent.
// Caller must hold e.mu.
func (e *Engine) indexOf(productID string) int {
	for i, li := range e.items {
		if li.ProductID == productID {
			return i
		}
	}
	return -1
}

// persist writes the current lines to the store. Failures are logged and
// swallowed; the in-memory cart stays authoritative for the session.
func (e *Engine) persist(ctx context.Context) {
	if err := e.store.Save(ctx, e.id, e.Items()); err != nil {
		log.Printf("cart %s: persist failed, keeping in-memory state: %v", e.id, err)
	}
}

func (e *Engine) notify() {
	e.mu.Lock()
	subs := make([]func(), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
