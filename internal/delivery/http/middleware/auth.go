package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth.
const (
	UserIDKey    = "user_id"
	SessionIDKey = "session_id"
	TokenKey     = "token"
	PrincipalKey = "principal"
)

// TokenVerifier resolves a bearer token to the session principal.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.Principal, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth rejects requests without a valid bearer session token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			return
		}

		principal, err := m.verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			if !isAuthError(err) {
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to verify session"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, principal.UserID)
		c.Set(SessionIDKey, principal.SessionID)
		c.Set(TokenKey, token)
		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer ..." value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrSessionNotFound) ||
		errors.Is(err, domain.ErrSessionExpired)
}

// CurrentPrincipal returns the principal stored by RequireAuth.
func CurrentPrincipal(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok
}
