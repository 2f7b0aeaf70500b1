package repository

import (
	"context"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

type SwipeRepository interface {
	// Create inserts the swipe unless one already exists for the pair. It
	// reports whether a new row was written; on conflict swipe is filled
	// from the existing row.
	Create(ctx context.Context, swipe *domain.Swipe) (bool, error)
	GetByUsers(ctx context.Context, swiperID, swipedID string) (*domain.Swipe, error)
	CheckMutualLike(ctx context.Context, user1ID, user2ID string) (bool, error)
	GetLikesReceived(ctx context.Context, userID string, limit, offset int) ([]*domain.Swipe, error)
	SwipedUserIDs(ctx context.Context, swiperID string) ([]string, error)
}
