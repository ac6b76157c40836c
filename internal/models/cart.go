package models

// CartLine is a single line in the shopping cart. Name, price and image are
// snapshots taken from the product at the moment it was added; later catalog
// changes do not flow into existing lines.
//
// Invariants: Quantity >= 1 always (a line dropped to 0 is removed, not
// retained), and at most one line exists per ProductID.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// Cart is the response shape of the optional server-side cart endpoints.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartLine `json:"items"`
}

// CartItemRequest is the payload for POST /cart/items.
type CartItemRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}
