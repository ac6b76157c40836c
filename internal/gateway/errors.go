package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// APIError is a server-reported failure: the HTTP status code plus the
// human-readable message from the response body.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a server-reported 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// IsTimeout reports whether err is a network timeout, i.e. no response was
// received within the configured request timeout. Timeouts are distinct
// from server-reported errors: errors.As against *APIError fails for them.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
