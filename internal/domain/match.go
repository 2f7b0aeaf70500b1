package domain

import "time"

type Match struct {
	ID          string    `json:"id" db:"id"`
	User1ID     string    `json:"user1_id" db:"user1_id"`
	User2ID     string    `json:"user2_id" db:"user2_id"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	Explanation *string   `json:"explanation" db:"match_explanation"`
	Icebreakers []string  `json:"icebreakers" db:"icebreakers"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (m *Match) HasUser(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) GetOtherUserID(userID string) (string, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return "", false
}

// OrderedPair returns the two ids with the lexically smaller one first,
// matching the user1_id < user2_id table constraint.
func OrderedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// MatchView is a match as seen by one of its participants.
type MatchView struct {
	Match *Match     `json:"match"`
	User  *Candidate `json:"user"`
}
