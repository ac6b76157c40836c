package store

import (
	"sync"

	"storefront/internal/models"
)

// CartSlice is the local shopping cart: a pure synchronous reducer with no
// network involvement. Lines are keyed by product id (at most one line per
// product) and the total is always derived from the lines, never stored
// separately.
type CartSlice struct {
	mu     sync.RWMutex
	lines  []models.CartLine
	notify func()
}

// NewCartSlice creates an empty cart.
func NewCartSlice(notify func()) *CartSlice {
	return &CartSlice{notify: notify}
}

// AddToCart merges the product into the cart: an existing line for the same
// product id gains one quantity, otherwise a new line with quantity 1 is
// inserted, snapshotting the product's current name, price and image.
func (s *CartSlice) AddToCart(product models.Product) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			s.lines[i].Quantity++
			s.mu.Unlock()
			s.changed()
			return
		}
	}
	s.lines = append(s.lines, models.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  1,
	})
	s.mu.Unlock()
	s.changed()
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line, consistent with RemoveFromCart; lines are never retained at 0.
// Unknown product ids are a no-op.
func (s *CartSlice) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}

	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			break
		}
	}
	s.mu.Unlock()
	s.changed()
}

// RemoveFromCart deletes the line for the given product id entirely.
func (s *CartSlice) RemoveFromCart(productID string) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.changed()
}

// ClearCart empties the cart. Clearing an empty cart is a valid no-op.
func (s *CartSlice) ClearCart() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
	s.changed()
}

// Lines returns a copy of the cart lines in insertion order.
func (s *CartSlice) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartLine(nil), s.lines...)
}

// Total derives the cart total as the sum of price times quantity over all
// lines. It is recomputed on every call so it can never desynchronize from
// the lines.
func (s *CartSlice) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, line := range s.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// ItemCount is the number of units across all lines, for the header badge.
func (s *CartSlice) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *CartSlice) changed() {
	if s.notify != nil {
		s.notify()
	}
}
