package auth

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// IdentityVerifier validates a third-party identity token.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error)
}

type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	verifier    IdentityVerifier
	jwtSecret   []byte
	sessionTTL  time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	verifier IdentityVerifier,
	jwtSecret string,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		verifier:    verifier,
		jwtSecret:   []byte(jwtSecret),
		sessionTTL:  sessionTTL,
		now:         time.Now,
		logger:      logger.Named("auth"),
	}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// LoginWithGoogle verifies a Google ID token, creates the user on first
// login and opens a new session.
func (uc *AuthUseCase) LoginWithGoogle(ctx context.Context, idToken, deviceInfo, ipAddress string) (*AuthResponse, error) {
	identity, err := uc.verifier.Verify(ctx, idToken)
	if err != nil {
		uc.logger.Info("identity token rejected", zap.Error(err))
		return nil, domain.ErrInvalidIdentity
	}

	user, err := uc.userRepo.GetByGoogleSub(ctx, identity.Subject)
	isNewUser := false

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user = &domain.User{
			GoogleSub:   identity.Subject,
			Email:       identity.Email,
			DisplayName: identity.Name,
		}
		if identity.Picture != "" {
			user.AvatarURL = &identity.Picture
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		isNewUser = true
		uc.logger.Info("user registered", zap.String("user_id", user.ID))
	case err != nil:
		return nil, fmt.Errorf("failed to get user: %w", err)
	default:
		if user.Email != identity.Email && identity.Email != "" {
			user.Email = identity.Email
			if err := uc.userRepo.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		}
		if err := uc.userRepo.TouchLastSeen(ctx, user.ID); err != nil {
			uc.logger.Warn("touch last seen failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID, deviceInfo, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsNewUser: isNewUser,
	}, nil
}

// createSession creates a new session and returns JWT token
func (uc *AuthUseCase) createSession(ctx context.Context, userID, deviceInfo, ipAddress string) (string, time.Time, error) {
	now := uc.now()
	expiresAt := now.Add(uc.sessionTTL)
	sessionID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		ID:         sessionID,
		UserID:     userID,
		TokenHash:  hashToken(tokenString),
		DeviceInfo: &deviceInfo,
		IPAddress:  &ipAddress,
		ExpiresAt:  expiresAt,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// VerifyToken checks the JWT signature and expiry and that its session
// has not been revoked.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (*domain.Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return uc.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(uc.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	session, err := uc.sessionRepo.GetByTokenHash(ctx, hashToken(tokenString))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if uc.now().After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	return &domain.Principal{
		UserID:    claims.Subject,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// GetUser returns the account behind a principal.
func (uc *AuthUseCase) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// Logout deletes user session
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	return uc.sessionRepo.DeleteByTokenHash(ctx, hashToken(tokenString))
}

// hashToken digests the token for storage so a leaked sessions table
// cannot be replayed.
func hashToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
