package promo

import "github.com/shopspring/decimal"

// Promo is a redeemable code with a fractional discount rate applied to the
// cart subtotal.
type Promo struct {
	Code string          `json:"code"`
	Rate decimal.Decimal `json:"rate"`
}

// table is the fixed promo catalog. Codes are matched case-sensitively.
// No expiry and no per-user eligibility exist at this level; extending either
// needs a design update, not a bigger map.
var table = map[string]Promo{
	"SAVE20":    {Code: "SAVE20", Rate: decimal.RequireFromString("0.20")},
	"WELCOME10": {Code: "WELCOME10", Rate: decimal.RequireFromString("0.10")},
}

// Lookup returns the promo for code, exact match only.
func Lookup(code string) (Promo, bool) {
	p, ok := table[code]
	return p, ok
}
