package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// NotificationPublisher fans notifications out on per-user pub/sub
// channels for connected clients.
type NotificationPublisher struct {
	client *redis.Client
}

func NewNotificationPublisher(client *redis.Client) *NotificationPublisher {
	return &NotificationPublisher{client: client}
}

func Channel(userID string) string {
	return "notifications:" + userID
}

func (p *NotificationPublisher) Publish(ctx context.Context, n *domain.Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return p.client.Publish(ctx, Channel(n.UserID), raw).Err()
}
