package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

// Session is a bearer credential issued by Login. It is passed explicitly
// to the client and destroyed by Logout.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	user      *domain.User
	isNew     bool
}

// NewSession restores a session from a previously issued token.
func NewSession(token string, expiresAt time.Time) *Session {
	return &Session{token: strings.TrimSpace(token), expiresAt: expiresAt}
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// User is the account the session was issued for. It is nil for sessions
// restored with NewSession.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsNewUser reports whether Login created the account.
func (s *Session) IsNewUser() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isNew
}

// Active reports whether the session still carries a token that has not
// expired at now. A zero expiry is treated as open-ended.
func (s *Session) Active(now time.Time) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	return s.expiresAt.IsZero() || now.Before(s.expiresAt)
}

func (s *Session) destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

type loginRequest struct {
	IDToken    string `json:"id_token"`
	DeviceInfo string `json:"device_info,omitempty"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// Login exchanges a Google ID token for a session.
func (c *Client) Login(ctx context.Context, idToken, deviceInfo string) (*Session, error) {
	var resp loginResponse
	err := c.doJSON(ctx, "login", http.MethodPost, "/auth/google", nil, loginRequest{
		IDToken:    idToken,
		DeviceInfo: deviceInfo,
	}, &resp, false)
	if err != nil {
		return nil, err
	}
	return &Session{
		token:     resp.Token,
		expiresAt: resp.ExpiresAt,
		user:      resp.User,
		isNew:     resp.IsNewUser,
	}, nil
}

// Logout revokes the bound session on the server and clears it locally.
// The local session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if c.session == nil {
		return ErrNoSession
	}
	defer c.session.destroy()
	return c.doJSON(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil, nil, true)
}

// Me is the authenticated account with the session expiry.
type Me struct {
	User             *domain.User `json:"user"`
	SessionExpiresAt time.Time    `json:"session_expires_at"`
}

func (c *Client) Me(ctx context.Context) (*Me, error) {
	var me Me
	if err := c.doJSON(ctx, "me", http.MethodGet, "/auth/me", nil, nil, &me, true); err != nil {
		return nil, err
	}
	return &me, nil
}
