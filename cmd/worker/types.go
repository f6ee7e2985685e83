package main

// OrderPlacedMessage is the payload sent from API -> SQS -> Worker when a
// checkout succeeds. Total is the checkout-context grand total, rendered to
// 2 decimal places by the API.
type OrderPlacedMessage struct {
	OrderID string `json:"order_id"`
	CartID  string `json:"cart_id"`
	Email   string `json:"email,omitempty"`
	Total   string `json:"total"`
}
