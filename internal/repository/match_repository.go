package repository

import (
	"context"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error)
	GetUserMatches(ctx context.Context, userID string, limit, offset int) ([]*domain.Match, error)
	UpdateStatus(ctx context.Context, id string, isActive bool) error
	UpdateAIFields(ctx context.Context, matchID string, explanation string, icebreakers []string) error
}
