package repository

import (
	"context"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

// ProfileSearch selects discovery candidates. Empty slices and nil
// pointers disable the corresponding condition.
type ProfileSearch struct {
	ExcludeUserIDs     []string
	Interests          []string
	FaithJourneys      []string
	Gender             *string
	OnboardingComplete *bool
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	SearchProfiles(ctx context.Context, search ProfileSearch, limit, offset int) ([]*domain.Profile, error)
}
