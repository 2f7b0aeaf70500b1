package repository

import (
	"context"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
