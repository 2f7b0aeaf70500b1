package domain

import "time"

type Swipe struct {
	ID        string    `json:"id" db:"id"`
	SwiperID  string    `json:"swiper_id" db:"swiper_id"`
	SwipedID  string    `json:"swiped_id" db:"swiped_id"`
	IsLike    bool      `json:"is_like" db:"is_like"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LikeResult is the outcome of a like; Match and MatchedUser are set only
// when the like completed a mutual match.
type LikeResult struct {
	IsMatch     bool       `json:"is_match"`
	Match       *Match     `json:"match,omitempty"`
	MatchedUser *Candidate `json:"matched_user,omitempty"`
}

// LikeReceived is an incoming like that has not been answered yet.
type LikeReceived struct {
	SwipeID   string     `json:"swipe_id"`
	User      *Candidate `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
}
