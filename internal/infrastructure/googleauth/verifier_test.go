package googleauth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

func TestVerifyMapsClaims(t *testing.T) {
	v := &Verifier{audience: "client-1", validate: func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "tok", token)
		assert.Equal(t, "client-1", audience)
		return &idtoken.Payload{
			Subject: "sub-42",
			Claims: map[string]interface{}{
				"email":          "ruth@example.com",
				"email_verified": true,
				"name":           "Ruth",
				"picture":        "https://img/ruth.jpg",
			},
		}, nil
	}}

	identity, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, &domain.ExternalIdentity{
		Subject:       "sub-42",
		Email:         "ruth@example.com",
		EmailVerified: true,
		Name:          "Ruth",
		Picture:       "https://img/ruth.jpg",
	}, identity)
}

func TestVerifyRejects(t *testing.T) {
	v := &Verifier{validate: func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("expired")
	}}

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}
