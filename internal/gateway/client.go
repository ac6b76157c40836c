package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/session"

	"github.com/google/uuid"
)

// defaultTimeout is the fixed per-call network timeout applied when the
// caller does not configure one.
const defaultTimeout = 10 * time.Second

// Client is the sole component issuing outbound calls to the remote API.
// It attaches the bearer token from the session manager, applies the fixed
// request timeout, and centralizes 401 handling: any unauthorized response
// clears the session and invokes the unauthorized hook, regardless of
// which caller issued the request.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	sessions       *session.Manager
	onUnauthorized func()
}

// Config carries the gateway settings.
type Config struct {
	// BaseURL is the root of the REST API, e.g. "http://localhost:8080/api/v1".
	BaseURL string
	// Timeout is the fixed per-call timeout; defaults to 10 seconds.
	Timeout time.Duration
	// OnUnauthorized is invoked after a 401 has cleared the session. The
	// application installs its login redirect here. Optional.
	OnUnauthorized func()
}

// New creates a gateway client bound to the given session manager.
func New(cfg Config, sessions *session.Manager) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		sessions:       sessions,
		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

// errorBody is the error response shape of the backend.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one request against the API. A JSON body is sent when body is
// non-nil; a 2xx response is decoded into out when out is non-nil. withAuth
// controls the Authorization header: when true and a token is present, the
// request carries "Bearer <token>".
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, withAuth bool) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if withAuth {
		if token := c.sessions.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response received: a network or timeout error, never *APIError.
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}

// handleUnauthorized clears the persisted token and session, then invokes
// the redirect hook. This runs for every 401 the gateway sees.
func (c *Client) handleUnauthorized() {
	if err := c.sessions.Clear(); err != nil {
		log.Printf("Failed to clear session after 401: %v", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// readErrorMessage extracts the server's message from an error response,
// falling back to a generic label when the body is not decodable.
func readErrorMessage(r io.Reader) string {
	var body errorBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return "request failed"
	}
	if body.Error != "" {
		return body.Error
	}
	if body.Message != "" {
		return body.Message
	}
	return "request failed"
}
