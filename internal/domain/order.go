package domain

import "time"

// Order is the immutable record of a completed checkout. Items and total are
// a full snapshot copy of the source cart at checkout time; orders are
// append-only and never mutated.
type Order struct {
	ID        string     `json:"id"`
	CartID    string     `json:"cartId"`
	Items     []CartItem `json:"items"`
	Total     int64      `json:"total"` // in cents
	Customer  Customer   `json:"customer"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Customer holds the identity resolved at checkout time, either from the
// authenticated user record or from guest-supplied details.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
