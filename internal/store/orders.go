package store

import (
	"context"

	"storefront/internal/gateway"
	"storefront/internal/models"
)

// OrderSlice holds the order history and the current-order slot. Like the
// product slice, fetches follow replace semantics and stale data stays
// visible while a request is pending. Failures surface as the slice error;
// there are no automatic retries.
type OrderSlice struct {
	base

	listGuard    requestGuard
	currentGuard requestGuard

	orders  []models.Order
	current *models.Order
}

// OrderState is an atomic snapshot of the slice for rendering.
type OrderState struct {
	Orders  []models.Order
	Current *models.Order
	Status  RequestStatus
	Err     string
}

// NewOrderSlice creates an idle order slice bound to the gateway.
func NewOrderSlice(api *gateway.Client, notify func()) *OrderSlice {
	return &OrderSlice{base: newBase(api, notify)}
}

// Snapshot returns a copy of the current state.
func (s *OrderSlice) Snapshot() OrderState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := OrderState{
		Orders: append([]models.Order(nil), s.orders...),
		Status: s.status,
		Err:    s.err,
	}
	if s.current != nil {
		current := *s.current
		state.Current = &current
	}
	return state
}

// CreateOrder submits the frozen cart snapshot and shipping address. On
// success the returned order is prepended to the history and becomes the
// current order. The caller clears the cart only after this returns nil;
// a pending or failed create must leave the cart untouched.
//
// A successful create is always applied, even if a later fetch was issued
// meanwhile: the order exists server-side and dropping it would desync the
// visible history.
func (s *OrderSlice) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	id := s.begin(&s.listGuard)

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		s.fail(&s.listGuard, id, err)
		return nil, err
	}

	s.mu.Lock()
	s.orders = append([]models.Order{*order}, s.orders...)
	s.current = order
	s.status = StatusSucceeded
	s.err = ""
	s.mu.Unlock()
	s.changed()

	return order, nil
}

// FetchOrders replaces the order history with the list the backend returns,
// preserving its most-recent-first ordering.
func (s *OrderSlice) FetchOrders(ctx context.Context) error {
	id := s.begin(&s.listGuard)

	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		s.fail(&s.listGuard, id, err)
		return err
	}

	s.succeed(&s.listGuard, id, func() {
		s.orders = orders
	})
	return nil
}

// FetchOrderByID fills the current-order slot. The history is untouched.
func (s *OrderSlice) FetchOrderByID(ctx context.Context, id string) error {
	reqID := s.begin(&s.currentGuard)

	order, err := s.api.GetOrder(ctx, id)
	if err != nil {
		s.fail(&s.currentGuard, reqID, err)
		return err
	}

	s.succeed(&s.currentGuard, reqID, func() {
		s.current = order
	})
	return nil
}

// ClearError resets a recorded error without touching data or status.
func (s *OrderSlice) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	s.changed()
}
