// Package testsupport holds in-memory repository fakes shared by use case
// and handler tests.
package testsupport

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"github.com/google/uuid"
)

// Store backs every fake repository with one lock so tests can inspect
// state across repositories consistently.
type Store struct {
	mu            sync.Mutex
	users         map[string]*domain.User
	sessions      map[string]*domain.Session
	profiles      map[string]*domain.Profile
	swipes        []*domain.Swipe
	matches       map[string]*domain.Match
	notifications []*domain.Notification
	seq           int
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*domain.User),
		sessions: make(map[string]*domain.Session),
		profiles: make(map[string]*domain.Profile),
		matches:  make(map[string]*domain.Match),
	}
}

// tick returns strictly increasing timestamps so ordering by creation time
// is deterministic.
func (s *Store) tick() time.Time {
	s.seq++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
}

func (s *Store) Users() repository.UserRepository                 { return userRepo{s} }
func (s *Store) Sessions() repository.SessionRepository           { return sessionRepo{s} }
func (s *Store) Profiles() repository.ProfileRepository           { return profileRepo{s} }
func (s *Store) Swipes() repository.SwipeRepository               { return swipeRepo{s} }
func (s *Store) Matches() repository.MatchRepository              { return matchRepo{s} }
func (s *Store) Notifications() repository.NotificationRepository { return notificationRepo{s} }

// SwipeCount returns how many swipe rows exist.
func (s *Store) SwipeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.swipes)
}

// NotificationsFor returns copies of the user's notifications, oldest first.
func (s *Store) NotificationsFor(userID string) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := r.s.tick()
	u.CreatedAt, u.UpdatedAt, u.LastSeenAt = now, now, &now
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) GetByGoogleSub(_ context.Context, sub string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.GoogleSub == sub {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepo) Update(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	u.UpdatedAt = r.s.tick()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) TouchLastSeen(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	now := r.s.tick()
	u.LastSeenAt = &now
	return nil
}

type sessionRepo struct{ s *Store }

func (r sessionRepo) Create(_ context.Context, sess *domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	sess.CreatedAt = r.s.tick()
	cp := *sess
	r.s.sessions[sess.TokenHash] = &cp
	return nil
}

func (r sessionRepo) GetByTokenHash(_ context.Context, hash string) (*domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[hash]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (r sessionRepo) DeleteByTokenHash(_ context.Context, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[hash]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.s.sessions, hash)
	return nil
}

type profileRepo struct{ s *Store }

func cloneProfile(p *domain.Profile) *domain.Profile {
	cp := *p
	cp.Interests = append([]string(nil), p.Interests...)
	cp.Photos = append([]string(nil), p.Photos...)
	cp.PreferredFaithJourney = append([]string(nil), p.PreferredFaithJourney...)
	return &cp
}

func (r profileRepo) Create(_ context.Context, p *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[p.UserID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := r.s.tick()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.profiles[p.UserID] = cloneProfile(p)
	return nil
}

func (r profileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r profileRepo) GetByUserIDs(_ context.Context, userIDs []string) (map[string]*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*domain.Profile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := r.s.profiles[id]; ok {
			out[id] = cloneProfile(p)
		}
	}
	return out, nil
}

func (r profileRepo) Update(_ context.Context, p *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.profiles[p.UserID]
	if !ok || existing.ID != p.ID {
		return domain.ErrProfileNotFound
	}
	p.UpdatedAt = r.s.tick()
	r.s.profiles[p.UserID] = cloneProfile(p)
	return nil
}

func (r profileRepo) SearchProfiles(_ context.Context, search repository.ProfileSearch, limit, offset int) ([]*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	excluded := make(map[string]bool, len(search.ExcludeUserIDs))
	for _, id := range search.ExcludeUserIDs {
		excluded[id] = true
	}

	var out []*domain.Profile
	for _, p := range r.s.profiles {
		if excluded[p.UserID] {
			continue
		}
		if len(search.Interests) > 0 && len(overlap(search.Interests, p.Interests)) == 0 {
			continue
		}
		if len(search.FaithJourneys) > 0 && !contains(search.FaithJourneys, p.FaithJourney) {
			continue
		}
		if search.Gender != nil && (p.Gender == nil || *p.Gender != *search.Gender) {
			continue
		}
		if search.OnboardingComplete != nil && p.IsOnboardingComplete != *search.OnboardingComplete {
			continue
		}
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func overlap(a, b []string) []string {
	var out []string
	for _, x := range a {
		if contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}

type swipeRepo struct{ s *Store }

func (r swipeRepo) Create(_ context.Context, sw *domain.Swipe) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.swipes {
		if existing.SwiperID == sw.SwiperID && existing.SwipedID == sw.SwipedID {
			*sw = *existing
			return false, nil
		}
	}
	if sw.ID == "" {
		sw.ID = uuid.NewString()
	}
	sw.CreatedAt = r.s.tick()
	cp := *sw
	r.s.swipes = append(r.s.swipes, &cp)
	return true, nil
}

func (r swipeRepo) GetByUsers(_ context.Context, swiperID, swipedID string) (*domain.Swipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sw := range r.s.swipes {
		if sw.SwiperID == swiperID && sw.SwipedID == swipedID {
			cp := *sw
			return &cp, nil
		}
	}
	return nil, domain.ErrSwipeNotFound
}

func (r swipeRepo) CheckMutualLike(_ context.Context, a, b string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, sw := range r.s.swipes {
		if sw.IsLike && ((sw.SwiperID == a && sw.SwipedID == b) || (sw.SwiperID == b && sw.SwipedID == a)) {
			count++
		}
	}
	return count == 2, nil
}

func (r swipeRepo) GetLikesReceived(_ context.Context, userID string, limit, offset int) ([]*domain.Swipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	answered := make(map[string]bool)
	for _, sw := range r.s.swipes {
		if sw.SwiperID == userID {
			answered[sw.SwipedID] = true
		}
	}
	var out []*domain.Swipe
	for i := len(r.s.swipes) - 1; i >= 0; i-- {
		sw := r.s.swipes[i]
		if sw.SwipedID == userID && sw.IsLike && !answered[sw.SwiperID] {
			cp := *sw
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r swipeRepo) SwipedUserIDs(_ context.Context, swiperID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for _, sw := range r.s.swipes {
		if sw.SwiperID == swiperID {
			ids = append(ids, sw.SwipedID)
		}
	}
	return ids, nil
}

type matchRepo struct{ s *Store }

func (r matchRepo) Create(_ context.Context, m *domain.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.User1ID, m.User2ID = domain.OrderedPair(m.User1ID, m.User2ID)
	for _, existing := range r.s.matches {
		if existing.User1ID == m.User1ID && existing.User2ID == m.User2ID {
			*m = *existing
			return nil
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = r.s.tick()
	cp := *m
	r.s.matches[m.ID] = &cp
	return nil
}

func (r matchRepo) GetByID(_ context.Context, id string) (*domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r matchRepo) GetByUsers(_ context.Context, a, b string) (*domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, b = domain.OrderedPair(a, b)
	for _, m := range r.s.matches {
		if m.User1ID == a && m.User2ID == b {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r matchRepo) GetUserMatches(_ context.Context, userID string, limit, offset int) ([]*domain.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.s.matches {
		if m.IsActive && m.HasUser(userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r matchRepo) UpdateStatus(_ context.Context, id string, isActive bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m.IsActive = isActive
	return nil
}

func (r matchRepo) UpdateAIFields(_ context.Context, id string, explanation string, icebreakers []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m.Explanation = &explanation
	m.Icebreakers = append([]string(nil), icebreakers...)
	return nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = r.s.tick()
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r notificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Notification
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if n.UserID != userID || (unreadOnly && n.ReadAt != nil) {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r notificationRepo) MarkRead(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.ID == id && n.UserID == userID {
			if n.ReadAt == nil {
				now := r.s.tick()
				n.ReadAt = &now
			}
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}
