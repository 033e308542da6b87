package domain

import "time"

// Cart represents a shopping cart. The cart id is an opaque key: for
// authenticated users it equals the user id, for guests it is a generated
// UUID the client persists across requests.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId,omitempty"`
	Items     []CartItem `json:"items"`
	Subtotal  int64      `json:"subtotal"` // in cents; always Σ price×quantity
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem represents a single line in the cart. Name, image, and price are
// denormalized snapshots captured at add-time; they are not live-synced to the
// product record.
type CartItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	VariantName string `json:"variantName,omitempty"`
	Price       int64  `json:"price"` // in cents, captured at add-time
	Quantity    int    `json:"quantity"`
}

// LineItemID derives the deterministic cart line id for a product variant, so
// repeated add-to-cart of the same variant always maps to the same line.
func LineItemID(productID, variantName string) string {
	if variantName == "" {
		return productID
	}
	return productID + "-" + variantName
}

// RecalculateSubtotal recomputes the subtotal as the exact sum of
// price × quantity over all lines and stores it on the cart.
func (c *Cart) RecalculateSubtotal() {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	c.Subtotal = total
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the cart line matching the given product
// id and variant name. Returns -1 if not found.
func (c *Cart) FindItemIndex(productID, variantName string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].VariantName == variantName {
			return i
		}
	}
	return -1
}
