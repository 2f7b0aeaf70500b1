package testsupport

import (
	"context"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

// Member describes a seeded user with a completed profile.
type Member struct {
	Name         string
	Gender       string
	Birthday     time.Time
	FaithJourney string
	Interests    []string
	PrefGender   string
	Lat, Lon     *float64
}

// SeedMember creates a user and an onboarded profile and returns the user id.
func (s *Store) SeedMember(m Member) string {
	ctx := context.Background()
	user := &domain.User{GoogleSub: "sub-" + m.Name, Email: m.Name + "@example.com", DisplayName: m.Name}
	_ = s.Users().Create(ctx, user)

	if m.FaithJourney == "" {
		m.FaithJourney = string(domain.FaithGrowing)
	}
	if m.PrefGender == "" {
		m.PrefGender = "any"
	}
	if m.Birthday.IsZero() {
		m.Birthday = time.Date(1996, 5, 10, 0, 0, 0, 0, time.UTC)
	}
	birthday := m.Birthday
	minAge, maxAge, dist := 18, 99, 500
	profile := &domain.Profile{
		UserID:                user.ID,
		DisplayName:           m.Name,
		Birthday:              &birthday,
		LocationLat:           m.Lat,
		LocationLon:           m.Lon,
		FaithJourney:          m.FaithJourney,
		ChurchAttendance:      string(domain.AttendanceWeekly),
		Interests:             m.Interests,
		RelationshipGoals:     []string{"marriage"},
		PreferredFaithJourney: []string{m.FaithJourney},
		PreferredGender:       &m.PrefGender,
		PrefMinAge:            &minAge,
		PrefMaxAge:            &maxAge,
		PrefMaxDistanceKm:     &dist,
		Photos:                []string{"https://cdn.test/" + m.Name + "/1.jpg", "https://cdn.test/" + m.Name + "/2.jpg"},
		IsOnboardingComplete:  true,
	}
	if m.Gender != "" {
		profile.Gender = &m.Gender
	}
	_ = s.Profiles().Create(ctx, profile)
	return user.ID
}

// StubVerifier accepts tokens of the form "google:<subject>".
type StubVerifier struct{}

func (StubVerifier) Verify(_ context.Context, token string) (*domain.ExternalIdentity, error) {
	const prefix = "google:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return nil, domain.ErrInvalidIdentity
	}
	sub := token[len(prefix):]
	return &domain.ExternalIdentity{Subject: sub, Email: sub + "@example.com", EmailVerified: true, Name: sub}, nil
}
