package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-cart-engine/internal/catalog"
)

// stubStore is a minimal in-memory Store for engine tests. failSave/failLoad
// simulate a persistence layer that is down.
type stubStore struct {
	mu        sync.Mutex
	carts     map[string][]LineItem
	failSave  bool
	loadErr   error
	saveCalls int
}

func newStubStore() *stubStore {
	return &stubStore{carts: map[string][]LineItem{}}
}

func (s *stubStore) Load(ctx context.Context, cartID string) ([]LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	items, ok := s.carts[cartID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *stubStore) Save(ctx context.Context, cartID string, items []LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.failSave {
		return errors.New("storage unavailable")
	}
	s.carts[cartID] = items
	return nil
}

func product(id, price, discount string) catalog.Product {
	return catalog.Product{
		ID:              id,
		Name:            "product " + id,
		Price:           decimal.RequireFromString(price),
		DiscountPercent: decimal.RequireFromString(discount),
	}
}

func TestAddItem_UniquePerProduct(t *testing.T) {
	ctx := context.Background()
	e := NewEngine("c1", newStubStore())

	p := product("p1", "25.00", "20")
	e.AddItem(ctx, p, 1)
	e.AddItem(ctx, p, 1)
	e.AddItem(ctx, p, 3)

	items := e.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddItem_KeepsFirstSnapshot(t *testing.T) {
	ctx := context.Background()
	e := NewEngine("c1", newStubStore())

	e.AddItem(ctx, product("p1", "25.00", "20"), 1)
	// same product id, catalog price changed in the meantime
	e.AddItem(ctx, product("p1", "99.00", "0"), 1)

	items := e.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if !items[0].UnitPrice.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("unit price snapshot was refreshed: %s", items[0].UnitPrice)
	}
	if !items[0].DiscountPercent.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("discount snapshot was refreshed: %s", items[0].DiscountPercent)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	e := NewEngine("c1", newStubStore())

	e.AddItem(ctx, product("p1", "10.00", "0"), 1)
	e.AddItem(ctx, product("p2", "20.00", "0"), 1)
	e.AddItem(ctx, product("p1", "10.00", "0"), 1)
	e.AddItem(ctx, product("p3", "30.00", "0"), 1)

	items := e.Items()
	want := []string{"p1", "p2", "p3"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ProductID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, items[i].ProductID)
		}
	}
}

func TestAddItem_FloorsQuantity(t *testing.T) {
	ctx := context.Background()
	e := NewEngine("c1", newStubStore())

	e.AddItem(ctx, product("p1", "10.00", "0"), -3)
	if got := e.Items()[0].Quantity; got != 1 {
		t.Fatalf("expected quantity floored to 1, got %d", got)
	}
}

func TestSetQuantity_Floor(t *testing.T) {
	ctx := context.Background()
	e := NewEngine("c1", newStubStore())
	e.AddItem(ctx, product("p1", "10.00", "0"), 3)

	for _, q := range []int{0, -1, -100} {
		if !e.SetQuantity(ctx, "p1", q) {
			t.Fatalf("SetQuantity(%d) reported missing product", q)
		}
		if got := e.Items()[0].Quantity; got != 1 {
			t.Fatalf("SetQuantity(%d): expected floor 1, got %d", q, got)
		}
	}

	e.SetQuantity(ctx, "p1", 7)
	if got := e.Items()[0].Quantity; got != 7 {
		t.Fatalf("expected quantity 7, got %d", got)
	}
}

func TestSetQuantity_UnknownProductNoop(t *testing.T) {
	ctx := context.Background()
	e := NewEngine("c1", newStubStore())
	e.AddItem(ctx, product("p1", "10.00", "0"), 2)

	if e.SetQuantity(ctx, "nope", 5) {
		t.Fatal("expected false for unknown product")
	}
	if got := e.Items()[0].Quantity; got != 2 {
		t.Fatalf("unrelated line changed: quantity %d", got)
	}
}

func TestRemoveItem_Idempotent(t *testing.T) {
	ctx := context.Background()
	e := NewEngine("c1", newStubStore())
	e.AddItem(ctx, product("p1", "10.00", "0"), 1)
	e.AddItem(ctx, product("p2", "20.00", "0"), 1)

	e.RemoveItem(ctx, "p1")
	after1 := e.Items()
	e.RemoveItem(ctx, "p1")
	after2 := e.Items()

	if len(after1) != 1 || len(after2) != 1 {
		t.Fatalf("expected 1 item after removals, got %d then %d", len(after1), len(after2))
	}
	if after2[0].ProductID != "p2" {
		t.Fatalf("wrong item left: %s", after2[0].ProductID)
	}
}

func TestClear_EmptiesCartAndPromo(t *testing.T) {
	ctx := context.Background()
	e := NewEngine("c1", newStubStore())
	e.AddItem(ctx, product("p1", "10.00", "0"), 1)
	if _, err := e.ApplyPromo("SAVE20"); err != nil {
		t.Fatalf("ApplyPromo: %v", err)
	}

	e.Clear(ctx)

	if len(e.Items()) != 0 {
		t.Fatal("expected empty cart")
	}
	if _, ok := e.Promo(); ok {
		t.Fatal("expected promo cleared")
	}
	// a new promo can be applied after clearing
	if _, err := e.ApplyPromo("SAVE20"); err != nil {
		t.Fatalf("ApplyPromo after clear: %v", err)
	}
}

func TestApplyPromo_NotFound(t *testing.T) {
	e := NewEngine("c1", newStubStore())

	_, err := e.ApplyPromo("BADCODE")
	if !errors.Is(err, ErrPromoNotFound) {
		t.Fatalf("expected ErrPromoNotFound, got %v", err)
	}
	if _, ok := e.Promo(); ok {
		t.Fatal("promo state changed on failed apply")
	}

	// case-sensitive: lowercase must not match
	if _, err := e.ApplyPromo("save20"); !errors.Is(err, ErrPromoNotFound) {
		t.Fatalf("expected case-sensitive miss, got %v", err)
	}
}

func TestApplyPromo_NoStacking(t *testing.T) {
	e := NewEngine("c1", newStubStore())

	if _, err := e.ApplyPromo("SAVE20"); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, err := e.ApplyPromo("WELCOME10")
	if !errors.Is(err, ErrPromoAlreadyApplied) {
		t.Fatalf("expected ErrPromoAlreadyApplied, got %v", err)
	}
	p, ok := e.Promo()
	if !ok || p.Code != "SAVE20" {
		t.Fatalf("applied promo changed: %+v ok=%v", p, ok)
	}
}

func TestPersistence_BestEffort(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	store.failSave = true
	e := NewEngine("c1", store)

	e.AddItem(ctx, product("p1", "10.00", "0"), 2)

	// write failed, but the in-memory cart is authoritative
	if len(e.Items()) != 1 {
		t.Fatal("in-memory state lost on persistence failure")
	}
	if store.saveCalls == 0 {
		t.Fatal("expected a save attempt")
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()

	e1 := NewEngine("c1", store)
	e1.AddItem(ctx, product("p1", "25.00", "20"), 3)
	e1.AddItem(ctx, product("p2", "10.50", "0"), 1)

	e2 := NewEngine("c1", store)
	e2.Restore(ctx)

	items := e2.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 restored items, got %d", len(items))
	}
	if items[0].ProductID != "p1" || items[0].Quantity != 3 {
		t.Fatalf("first line mismatch: %+v", items[0])
	}
	if !items[0].UnitPrice.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("restored price mismatch: %s", items[0].UnitPrice)
	}
}

func TestRestore_FailureStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newStubStore()
	store.loadErr = ErrCorrupt

	e := NewEngine("c1", store)
	e.Restore(ctx)

	if len(e.Items()) != 0 {
		t.Fatal("expected empty cart after corrupt restore")
	}
	// the session keeps working
	e.AddItem(ctx, product("p1", "10.00", "0"), 1)
	if len(e.Items()) != 1 {
		t.Fatal("cart unusable after failed restore")
	}
}

func TestSubscribe_NotifiedOnMutations(t *testing.T) {
	ctx := context.Background()
	e := NewEngine("c1", newStubStore())

	var calls int
	e.Subscribe(func() { calls++ })

	e.AddItem(ctx, product("p1", "10.00", "0"), 1)
	e.SetQuantity(ctx, "p1", 2)
	if _, err := e.ApplyPromo("SAVE20"); err != nil {
		t.Fatalf("ApplyPromo: %v", err)
	}
	e.RemoveItem(ctx, "p1")
	e.Clear(ctx)

	if calls != 5 {
		t.Fatalf("expected 5 notifications, got %d", calls)
	}

	// a rejected promo is not a state change and must not notify
	if _, err := e.ApplyPromo("BADCODE"); err == nil {
		t.Fatal("expected rejection")
	}
	if calls != 5 {
		t.Fatalf("rejected promo notified subscribers: %d calls", calls)
	}
}

func TestLineTotal(t *testing.T) {
	li := LineItem{
		ProductID:       "p1",
		UnitPrice:       decimal.RequireFromString("25.00"),
		DiscountPercent: decimal.RequireFromString("20"),
		Quantity:        3,
	}
	if got := li.LineTotal(); !got.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("expected line total 60, got %s", got)
	}
}
