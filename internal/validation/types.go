package validation

// AddItemRequest is the payload for POST /carts/:id/items.
// Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// SetQuantityRequest is the payload for PUT /carts/:id/items/:productID.
// Zero or negative quantities are rejected at the boundary; removing a line
// is DELETE, not a zero quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ApplyPromoRequest is the payload for POST /carts/:id/promo.
type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// CheckoutRequest is the payload for POST /carts/:id/checkout. Payment is
// mocked downstream; the form fields are still validated here.
type CheckoutRequest struct {
	Email         string `json:"email" validate:"required,email"`
	FullName      string `json:"full_name" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	PostalCode    string `json:"postal_code" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=credit paypal"`
	CardNumber    string `json:"card_number,omitempty"`
	CardExpiry    string `json:"card_expiry,omitempty"`
	CardCVC       string `json:"card_cvc,omitempty"`
}
