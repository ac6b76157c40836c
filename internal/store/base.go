package store

import (
	"sync"

	"storefront/internal/gateway"
)

// base carries what every async slice shares: the gateway, the slice-wide
// status machine and the change notification. State transitions are
// serialized under the lock, so readers always observe exactly one status
// and never a half-applied completion.
type base struct {
	mu     sync.RWMutex
	api    *gateway.Client
	status RequestStatus
	err    string
	notify func()
}

func newBase(api *gateway.Client, notify func()) base {
	return base{api: api, status: StatusIdle, notify: notify}
}

// begin transitions the slice to pending, clears any prior error and issues
// the request id for the given fetch target. Data is not touched: previous
// results stay visible while the request is in flight.
func (b *base) begin(g *requestGuard) uint64 {
	b.mu.Lock()
	b.status = StatusPending
	b.err = ""
	id := g.next()
	b.mu.Unlock()
	b.changed()
	return id
}

// fail records a failed completion. A completion whose id has been
// superseded by a later request for the same target is discarded.
func (b *base) fail(g *requestGuard, id uint64, err error) {
	b.mu.Lock()
	if !g.isLatest(id) {
		b.mu.Unlock()
		return
	}
	b.status = StatusFailed
	b.err = err.Error()
	b.mu.Unlock()
	b.changed()
}

// succeed applies a successful completion atomically with the status
// transition, unless a later request for the same target superseded it.
func (b *base) succeed(g *requestGuard, id uint64, apply func()) {
	b.mu.Lock()
	if !g.isLatest(id) {
		b.mu.Unlock()
		return
	}
	apply()
	b.status = StatusSucceeded
	b.err = ""
	b.mu.Unlock()
	b.changed()
}

// Status returns the slice's request status.
func (b *base) Status() RequestStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

// Err returns the recorded error message, or "" when none is set.
func (b *base) Err() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}

func (b *base) changed() {
	if b.notify != nil {
		b.notify()
	}
}
