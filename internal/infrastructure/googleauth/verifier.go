package googleauth

import (
	"context"
	"fmt"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"google.golang.org/api/idtoken"
)

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// Verifier checks Google ID tokens issued for the configured OAuth client.
type Verifier struct {
	audience string
	validate validateFunc
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{audience: clientID, validate: idtoken.Validate}
}

// Verify validates signature, audience and expiry and returns the identity
// carried by the token.
func (v *Verifier) Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	if token == "" {
		return nil, domain.ErrInvalidIdentity
	}
	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidIdentity, err)
	}
	if payload.Subject == "" {
		return nil, domain.ErrInvalidIdentity
	}

	identity := &domain.ExternalIdentity{Subject: payload.Subject}
	identity.Email, _ = payload.Claims["email"].(string)
	identity.EmailVerified, _ = payload.Claims["email_verified"].(bool)
	identity.Name, _ = payload.Claims["name"].(string)
	identity.Picture, _ = payload.Claims["picture"].(string)
	return identity, nil
}
