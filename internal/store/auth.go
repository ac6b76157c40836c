package store

import (
	"context"
	"log"

	"storefront/internal/gateway"
	"storefront/internal/models"
	"storefront/internal/session"
)

// AuthSlice drives login, register and logout and owns the lifecycle of the
// current session via the session manager. The status machine is
// re-enterable: a failed login can be retried and transitions back through
// pending.
type AuthSlice struct {
	base

	sessions *session.Manager
	guard    requestGuard
}

// AuthState is an atomic snapshot of the slice for rendering.
type AuthState struct {
	Session       models.Session
	Authenticated bool
	Status        RequestStatus
	Err           string
}

// NewAuthSlice creates an idle auth slice.
func NewAuthSlice(api *gateway.Client, sessions *session.Manager, notify func()) *AuthSlice {
	return &AuthSlice{base: newBase(api, notify), sessions: sessions}
}

// Snapshot returns a copy of the current state.
func (s *AuthSlice) Snapshot() AuthState {
	s.mu.RLock()
	status, errMsg := s.status, s.err
	s.mu.RUnlock()

	sess, ok := s.sessions.Current()
	return AuthState{Session: sess, Authenticated: ok, Status: status, Err: errMsg}
}

// Session returns the current session and whether one is present.
func (s *AuthSlice) Session() (models.Session, bool) {
	return s.sessions.Current()
}

// Login authenticates with email and password. On success the session and
// token are stored; on failure the error is recorded and no session exists.
func (s *AuthSlice) Login(ctx context.Context, email, password string) error {
	id := s.begin(&s.guard)

	resp, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.fail(&s.guard, id, err)
		return err
	}

	sess := resp.User
	sess.AuthToken = resp.Token
	if err := s.sessions.Write(sess); err != nil {
		s.fail(&s.guard, id, err)
		return err
	}

	s.succeed(&s.guard, id, func() {})
	return nil
}

// Register creates an account and auto-authenticates exactly like Login.
// Verifying password == confirmPassword is the caller's precondition; the
// slice does not re-check it.
func (s *AuthSlice) Register(ctx context.Context, req models.RegisterRequest) error {
	id := s.begin(&s.guard)

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		s.fail(&s.guard, id, err)
		return err
	}

	sess := resp.User
	sess.AuthToken = resp.Token
	if err := s.sessions.Write(sess); err != nil {
		s.fail(&s.guard, id, err)
		return err
	}

	s.succeed(&s.guard, id, func() {})
	return nil
}

// Logout clears the session and the persisted token immediately. It is
// synchronous and local: no network call is made. A 401 from any gateway
// call forces the same end state.
func (s *AuthSlice) Logout() {
	if err := s.sessions.Clear(); err != nil {
		log.Printf("Failed to clear session on logout: %v", err)
	}

	s.mu.Lock()
	s.status = StatusIdle
	s.err = ""
	s.mu.Unlock()
	s.changed()
}

// LoadCurrentUser restores the identity behind a persisted token via the
// current-user endpoint. Without a token it is a no-op: the slice stays
// idle and unauthenticated.
func (s *AuthSlice) LoadCurrentUser(ctx context.Context) error {
	if s.sessions.Token() == "" {
		return nil
	}

	id := s.begin(&s.guard)

	sess, err := s.api.CurrentUser(ctx)
	if err != nil {
		// A 401 here has already cleared the session via the gateway.
		s.fail(&s.guard, id, err)
		return err
	}

	s.sessions.SetIdentity(*sess)
	s.succeed(&s.guard, id, func() {})
	return nil
}
