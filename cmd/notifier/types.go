package main

// OrderEvent is the payload published by the storefront API at checkout and
// consumed here.
type OrderEvent struct {
	Type    string `json:"type"` // order_placed
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
	Title   string `json:"title,omitempty"`
}
