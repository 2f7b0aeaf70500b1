package notification

import (
	"context"
	"fmt"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"go.uber.org/zap"
)

// Publisher pushes a stored notification to connected clients.
type Publisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

type NotificationUseCase struct {
	repo      repository.NotificationRepository
	publisher Publisher
	logger    *zap.Logger
}

func NewNotificationUseCase(repo repository.NotificationRepository, publisher Publisher, logger *zap.Logger) *NotificationUseCase {
	return &NotificationUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger.Named("notification"),
	}
}

// Notify stores and publishes an event. Failures are logged and never
// returned: notifications are advisory.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID, actorID string, typ domain.NotificationType, matchID *string) {
	n := &domain.Notification{
		UserID:  userID,
		Type:    typ,
		ActorID: actorID,
		MatchID: matchID,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		uc.logger.Warn("store notification failed",
			zap.String("user_id", userID), zap.String("type", string(typ)), zap.Error(err))
		return
	}
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, n); err != nil {
		uc.logger.Warn("publish notification failed",
			zap.String("user_id", userID), zap.String("type", string(typ)), zap.Error(err))
	}
}

// List returns the user's notifications, newest first.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	items, err := uc.repo.ListByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if items == nil {
		items = []*domain.Notification{}
	}
	return items, nil
}

// MarkRead marks one of the user's notifications as read.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	return uc.repo.MarkRead(ctx, notificationID, userID)
}
