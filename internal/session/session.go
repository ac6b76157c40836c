package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// Manager is the process-wide session context: the current identity plus
// the auth token, with explicit read/write/clear operations. It is injected
// into the gateway and the state slices instead of being accessed as
// ambient global storage. All mutation goes through the manager, so
// concurrent readers always observe a complete session or none.
type Manager struct {
	mu      sync.RWMutex
	store   TokenStore
	current *models.Session
}

// NewManager creates a session manager backed by the given token store and
// restores a previously persisted token if one is present and not expired.
// A restored session carries the token only; the identity is filled in once
// the current-user endpoint confirms it.
func NewManager(store TokenStore) (*Manager, error) {
	m := &Manager{store: store}

	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if token == "" {
		return m, nil
	}
	if tokenExpired(token) {
		log.Printf("Discarding expired persisted token")
		if err := store.Clear(); err != nil {
			log.Printf("Failed to clear expired token: %v", err)
		}
		return m, nil
	}
	m.current = &models.Session{AuthToken: token}
	return m, nil
}

// Current returns the session and whether one is present.
func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

// Token returns the auth token, or "" when no session is present.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.AuthToken
}

// Write replaces the session and persists its token. Called on successful
// login or register.
func (m *Manager) Write(sess models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(sess.AuthToken); err != nil {
		return err
	}
	m.current = &sess
	return nil
}

// SetIdentity fills in the user identity while keeping the current token.
// Used when a restored token is confirmed via the current-user endpoint.
// It is a no-op if the session was cleared in the meantime.
func (m *Manager) SetIdentity(sess models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return
	}
	sess.AuthToken = m.current.AuthToken
	m.current = &sess
}

// Clear removes the session and the persisted token. Called on logout and
// on any 401 response. Clearing an absent session is not an error.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	if err := m.store.Clear(); err != nil {
		return err
	}
	return nil
}

// tokenExpired reports whether the JWT's exp claim has passed. The claim is
// read without signature verification; the backend remains the authority
// and will still reject a bad token with a 401.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		// Not a JWT we can read; let the backend decide.
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().Unix() > int64(exp)
}
