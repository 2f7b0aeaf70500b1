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

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `
		INSERT INTO users (id, google_sub, email, display_name, avatar_url, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING last_seen_at, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, user.ID, user.GoogleSub, user.Email, user.DisplayName, user.AvatarURL).
		Scan(&user.LastSeenAt, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE google_sub = $1`, sub)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $1, display_name = $2, avatar_url = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.DisplayName, user.AvatarURL, user.ID).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *userRepository) TouchLastSeen(ctx context.Context, id string) error {
	query := `UPDATE users SET last_seen_at = CURRENT_TIMESTAMP WHERE id = $1`
	return execExpectingRow(ctx, r.db, domain.ErrUserNotFound, query, id)
}
