package match

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"go.uber.org/zap"
)

type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
	logger      *zap.Logger
}

func NewMatchUseCase(matchRepo repository.MatchRepository, profileRepo repository.ProfileRepository, logger *zap.Logger) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		now:         time.Now,
		logger:      logger.Named("match"),
	}
}

// ListMatches returns the user's active matches, newest first, each with
// the other participant's card.
func (uc *MatchUseCase) ListMatches(ctx context.Context, userID string, limit, offset int) ([]domain.MatchView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	ids := make([]string, 0, len(matches)+1)
	ids = append(ids, userID)
	for _, m := range matches {
		other, _ := m.GetOtherUserID(userID)
		ids = append(ids, other)
	}
	profiles, err := uc.profileRepo.GetByUserIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	now := uc.now()
	views := make([]domain.MatchView, 0, len(matches))
	for _, m := range matches {
		other, _ := m.GetOtherUserID(userID)
		p, ok := profiles[other]
		if !ok {
			uc.logger.Warn("match without profile", zap.String("match_id", m.ID), zap.String("user_id", other))
			continue
		}
		card := domain.NewCandidate(p, profiles[userID], now)
		views = append(views, domain.MatchView{Match: m, User: &card})
	}
	return views, nil
}

// Unmatch deactivates a match the user takes part in.
func (uc *MatchUseCase) Unmatch(ctx context.Context, userID, matchID string) error {
	m, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !m.HasUser(userID) {
		return domain.ErrMatchNotFound
	}
	if !m.IsActive {
		return nil
	}
	if err := uc.matchRepo.UpdateStatus(ctx, matchID, false); err != nil {
		return fmt.Errorf("failed to deactivate match: %w", err)
	}
	uc.logger.Info("match deactivated", zap.String("match_id", matchID), zap.String("user_id", userID))
	return nil
}
