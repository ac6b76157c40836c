package store

// RequestStatus is the lifecycle of an asynchronous slice operation.
// Exactly one status holds at a time per slice; entering Pending always
// clears a previous error.
type RequestStatus string

const (
	StatusIdle      RequestStatus = "idle"
	StatusPending   RequestStatus = "pending"
	StatusSucceeded RequestStatus = "succeeded"
	StatusFailed    RequestStatus = "failed"
)

// requestGuard issues a monotonically increasing id per fetch target so
// that completions of superseded requests can be discarded instead of
// overwriting newer state. Callers must hold the slice lock.
type requestGuard struct {
	latest uint64
}

// next issues the id for a newly dispatched request and makes it latest.
func (g *requestGuard) next() uint64 {
	g.latest++
	return g.latest
}

// isLatest reports whether a completing request is still the most recently
// issued one for this target.
func (g *requestGuard) isLatest(id uint64) bool {
	return g.latest == id
}
