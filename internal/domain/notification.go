package domain

import "time"

type NotificationType string

const (
	NotificationNewMatch     NotificationType = "NEW_MATCH"
	NotificationProfileLiked NotificationType = "PROFILE_LIKED"
)

// Notification is an advisory event. Clients must not treat it as the
// source of truth for match or swipe state.
type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	ActorID   string           `json:"actor_id" db:"actor_id"`
	MatchID   *string          `json:"match_id,omitempty" db:"match_id"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
