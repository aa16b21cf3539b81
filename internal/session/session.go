// Package session owns the auth token lifecycle: restore on start, login,
// signup with auto-login, logout, and expiry on rejection.
package session

import (
	"context"
	"fmt"
	"sync"

	"tada/internal/config"
	"tada/internal/gateway"
	"tada/internal/service"
)

// Session is the single authoritative holder of the auth token. It moves
// between two states, absent and active(token), and is the sole writer of
// the gateway's auth configuration and the persisted token slot.
type Session struct {
	cfg *config.Config
	gw  *gateway.Gateway
	svc service.Service

	mu    sync.RWMutex
	token string
}

// New creates a session in the absent state. svc is used for the login and
// signup calls only.
func New(cfg *config.Config, gw *gateway.Gateway, svc service.Service) *Session {
	return &Session{cfg: cfg, gw: gw, svc: svc}
}

// Restore reads a previously persisted token and, if present, activates
// the session and configures the gateway with it. No network call is made
// and the token is not validated against the server; an expired token
// surfaces as an auth rejection on the first task operation instead.
// Returns whether a session was restored.
func (s *Session) Restore() (bool, error) {
	token, err := s.cfg.ReadToken()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}
	s.activate(token)
	return true, nil
}

// Login exchanges credentials for a token, persists it, and configures the
// gateway before returning, so dependent calls issued afterwards carry the
// new token. On failure the session stays in its prior state.
func (s *Session) Login(ctx context.Context, email, password string) error {
	token, err := s.svc.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.cfg.WriteToken(token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	s.activate(token)
	return nil
}

// Signup registers a new account and, on success, immediately logs in with
// the same credentials. A signup failure short-circuits and never calls
// login.
func (s *Session) Signup(ctx context.Context, name, email, password string) error {
	if err := s.svc.Signup(ctx, name, email, password); err != nil {
		return err
	}
	return s.Login(ctx, email, password)
}

// Logout clears the persisted token, deactivates the session, and removes
// the gateway's auth configuration.
func (s *Session) Logout() error {
	if err := s.cfg.RemoveToken(); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	s.deactivate()
	return nil
}

// Expire tears the session down after an authentication rejection: the
// token is treated as dead everywhere, including the persisted slot.
func (s *Session) Expire() {
	_ = s.cfg.RemoveToken()
	s.deactivate()
}

// Active reports whether a token is held. Presence of a token is the only
// signal; it may still be rejected server-side.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current token, or "" when the session is absent.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) activate(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.gw.UseToken(token)
}

func (s *Session) deactivate() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	s.gw.ClearToken()
}
