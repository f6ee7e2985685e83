package cart

import (
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-cart-engine/internal/catalog"
)

// LineItem is one product's entry in the cart: a price/discount snapshot taken
// at add-to-cart time plus a quantity. Name and Image are display-only fields
// carried along from the catalog snapshot.
type LineItem struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	Image           string          `json:"image"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Quantity        int             `json:"quantity"`
}

var hundred = decimal.NewFromInt(100)

// LineTotal is unitPrice × (1 − discountPercent/100) × quantity, unrounded.
func (li LineItem) LineTotal() decimal.Decimal {
	effective := li.UnitPrice.Mul(hundred.Sub(li.DiscountPercent)).Div(hundred)
	return effective.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// newLineItem snapshots a catalog product into a cart line.
func newLineItem(p catalog.Product, quantity int) LineItem {
	return LineItem{
		ProductID:       p.ID,
		Name:            p.Name,
		Image:           p.Image,
		UnitPrice:       p.Price,
		DiscountPercent: p.DiscountPercent,
		Quantity:        quantity,
	}
}
