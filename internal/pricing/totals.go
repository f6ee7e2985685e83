package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-cart-engine/internal/cart"
)

// Context selects which pricing rules apply: the browsing cart summary and
// the checkout summary use different shipping thresholds/fees, and only
// checkout applies tax.
type Context string

const (
	ContextCart     Context = "cart"
	ContextCheckout Context = "checkout"
)

// Rules are the pricing constants for one context. They live here and only
// here so the cart summary and the checkout page cannot disagree.
type Rules struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

var (
	cartRules = Rules{
		FreeShippingThreshold: decimal.RequireFromString("50"),
		FlatShippingFee:       decimal.RequireFromString("5.99"),
		TaxRate:               decimal.Zero,
	}
	checkoutRules = Rules{
		FreeShippingThreshold: decimal.RequireFromString("100"),
		FlatShippingFee:       decimal.RequireFromString("10"),
		TaxRate:               decimal.RequireFromString("0.07"),
	}
)

// RulesFor returns the rule set for ctx. Unknown contexts get cart rules,
// the more conservative of the two.
func RulesFor(ctx Context) Rules {
	if ctx == ContextCheckout {
		return checkoutRules
	}
	return cartRules
}

// OrderTotals is derived state, computed on demand and never stored.
// Values are unrounded; round to 2 places at the display boundary only.
type OrderTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Shipping      decimal.Decimal `json:"shipping"`
	PromoDiscount decimal.Decimal `json:"promo_discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// ComputeTotals derives order totals from the cart lines, the applied promo
// rate (decimal.Zero when none is applied) and the pricing context. It is a
// pure function: no mutation, and identical inputs yield identical outputs.
//
// An empty cart yields all-zero totals; the flat shipping fee is never
// charged against nothing.
func ComputeTotals(items []cart.LineItem, promoRate decimal.Decimal, ctx Context) OrderTotals {
	if len(items) == 0 {
		return OrderTotals{
			Subtotal:      decimal.Zero,
			Shipping:      decimal.Zero,
			PromoDiscount: decimal.Zero,
			Tax:           decimal.Zero,
			Total:         decimal.Zero,
		}
	}

	rules := RulesFor(ctx)

	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.LineTotal())
	}

	shipping := rules.FlatShippingFee
	if subtotal.GreaterThan(rules.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	promoDiscount := subtotal.Mul(promoRate)
	tax := subtotal.Mul(rules.TaxRate)

	return OrderTotals{
		Subtotal:      subtotal,
		Shipping:      shipping,
		PromoDiscount: promoDiscount,
		Tax:           tax,
		Total:         subtotal.Add(shipping).Add(tax).Sub(promoDiscount),
	}
}
