package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type matchRow struct {
	ID          string         `db:"id"`
	User1ID     string         `db:"user1_id"`
	User2ID     string         `db:"user2_id"`
	IsActive    bool           `db:"is_active"`
	Explanation *string        `db:"match_explanation"`
	Icebreakers pq.StringArray `db:"icebreakers"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r *matchRow) toDomain() *domain.Match {
	return &domain.Match{
		ID:          r.ID,
		User1ID:     r.User1ID,
		User2ID:     r.User2ID,
		IsActive:    r.IsActive,
		Explanation: r.Explanation,
		Icebreakers: r.Icebreakers,
		CreatedAt:   r.CreatedAt,
	}
}

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	// Ensure user1_id < user2_id for constraint
	match.User1ID, match.User2ID = domain.OrderedPair(match.User1ID, match.User2ID)
	if match.ID == "" {
		match.ID = uuid.NewString()
	}

	query := `
		INSERT INTO matches (id, user1_id, user2_id, is_active, match_explanation, icebreakers)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, match.ID, match.User1ID, match.User2ID, match.IsActive, match.Explanation, pq.Array(match.Icebreakers)).
		Scan(&match.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// A concurrent like created the match first.
		existing, getErr := r.GetByUsers(ctx, match.User1ID, match.User2ID)
		if getErr != nil {
			return getErr
		}
		*match = *existing
		return nil
	}
	return err
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	var row matchRow
	query := `SELECT * FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error) {
	user1ID, user2ID = domain.OrderedPair(user1ID, user2ID)

	var row matchRow
	query := `SELECT * FROM matches WHERE user1_id = $1 AND user2_id = $2`
	err := r.db.GetContext(ctx, &row, query, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID string, limit, offset int) ([]*domain.Match, error) {
	var rows []matchRow
	query := `
		SELECT * FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND is_active = true
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, err
	}
	matches := make([]*domain.Match, 0, len(rows))
	for i := range rows {
		matches = append(matches, rows[i].toDomain())
	}
	return matches, nil
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id string, isActive bool) error {
	query := `UPDATE matches SET is_active = $1 WHERE id = $2`
	return execExpectingRow(ctx, r.db, domain.ErrMatchNotFound, query, isActive, id)
}

func (r *matchRepository) UpdateAIFields(ctx context.Context, matchID string, explanation string, icebreakers []string) error {
	query := `UPDATE matches SET match_explanation = $1, icebreakers = $2 WHERE id = $3`
	return execExpectingRow(ctx, r.db, domain.ErrMatchNotFound, query, explanation, pq.Array(icebreakers), matchID)
}

// execExpectingRow runs an update or delete and maps "no rows affected" to notFound.
func execExpectingRow(ctx context.Context, db *sqlx.DB, notFound error, query string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
