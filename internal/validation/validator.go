package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for CheckoutRequest: the card fields
	// are only required when paying by card.
	v.RegisterStructValidation(checkoutStructValidation, CheckoutRequest{})

	return v
}

// checkoutStructValidation requires card details for the credit payment method.
func checkoutStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)

	if req.PaymentMethod != "credit" {
		return
	}
	if req.CardNumber == "" {
		sl.ReportError(req.CardNumber, "card_number", "CardNumber", "required_with_credit", "")
	}
	if req.CardExpiry == "" {
		sl.ReportError(req.CardExpiry, "card_expiry", "CardExpiry", "required_with_credit", "")
	}
	if req.CardCVC == "" {
		sl.ReportError(req.CardCVC, "card_cvc", "CardCVC", "required_with_credit", "")
	}
}
