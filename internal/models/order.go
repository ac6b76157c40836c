package models

import "time"

// OrderItem is a frozen snapshot of a cart line at order-creation time.
// It must not reflect later changes to the live product.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// Order is a customer order as returned by the backend. The client holds a
// read-only projection; Status is an opaque label rendered verbatim.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// CreateOrderRequest is the payload for POST /orders: the cart snapshot plus
// a formatted shipping address.
type CreateOrderRequest struct {
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string      `json:"shippingAddress" validate:"required"`
}

// UpdateOrderStatusRequest is the payload for PUT /orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemsFromCart freezes cart lines into order items.
func OrderItemsFromCart(lines []CartLine) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}
	return items
}
