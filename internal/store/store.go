package store

import (
	"storefront/internal/gateway"
	"storefront/internal/session"
)

// Store bundles the four state slices behind a single change-notification
// channel. Pages read slice snapshots, dispatch operations and re-render
// when the store signals a change.
type Store struct {
	Auth     *AuthSlice
	Products *ProductSlice
	Cart     *CartSlice
	Orders   *OrderSlice

	changes chan struct{}
}

// New wires the slices to the gateway and session manager.
func New(api *gateway.Client, sessions *session.Manager) *Store {
	s := &Store{changes: make(chan struct{}, 1)}
	s.Auth = NewAuthSlice(api, sessions, s.markChanged)
	s.Products = NewProductSlice(api, s.markChanged)
	s.Cart = NewCartSlice(s.markChanged)
	s.Orders = NewOrderSlice(api, s.markChanged)
	return s
}

// Changes delivers a signal after any slice mutation. Signals are
// coalesced: a slow consumer sees at least one signal for a burst of
// mutations, never a backlog.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

func (s *Store) markChanged() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
