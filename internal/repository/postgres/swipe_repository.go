package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) (bool, error) {
	if swipe.ID == "" {
		swipe.ID = uuid.NewString()
	}
	query := `
		INSERT INTO swipes (id, swiper_id, swiped_id, is_like)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (swiper_id, swiped_id) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, swipe.ID, swipe.SwiperID, swipe.SwipedID, swipe.IsLike).
		Scan(&swipe.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		existing, getErr := r.GetByUsers(ctx, swipe.SwiperID, swipe.SwipedID)
		if getErr != nil {
			return false, getErr
		}
		*swipe = *existing
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *swipeRepository) GetByUsers(ctx context.Context, swiperID, swipedID string) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `SELECT id, swiper_id, swiped_id, is_like, created_at FROM swipes WHERE swiper_id = $1 AND swiped_id = $2`
	if err := r.db.GetContext(ctx, &swipe, query, swiperID, swipedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSwipeNotFound
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) CheckMutualLike(ctx context.Context, user1ID, user2ID string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM swipes
		WHERE is_like = true
		  AND ((swiper_id = $1 AND swiped_id = $2) OR (swiper_id = $2 AND swiped_id = $1))
	`
	if err := r.db.GetContext(ctx, &count, query, user1ID, user2ID); err != nil {
		return false, err
	}
	return count == 2, nil
}

func (r *swipeRepository) GetLikesReceived(ctx context.Context, userID string, limit, offset int) ([]*domain.Swipe, error) {
	var swipes []*domain.Swipe
	// Likes the user has not answered yet.
	query := `
		SELECT s.id, s.swiper_id, s.swiped_id, s.is_like, s.created_at
		FROM swipes s
		WHERE s.swiped_id = $1 AND s.is_like = true
		  AND NOT EXISTS (
			SELECT 1 FROM swipes r WHERE r.swiper_id = $1 AND r.swiped_id = s.swiper_id
		  )
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &swipes, query, userID, limit, offset)
	return swipes, err
}

func (r *swipeRepository) SwipedUserIDs(ctx context.Context, swiperID string) ([]string, error) {
	var ids []string
	query := `SELECT swiped_id FROM swipes WHERE swiper_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, swiperID)
	return ids, err
}
