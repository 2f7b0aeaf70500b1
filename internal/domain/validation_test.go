package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPayload() *OnboardingPayload {
	return &OnboardingPayload{
		Birthday:              time.Date(1995, 3, 4, 0, 0, 0, 0, time.UTC),
		Location:              "Lisbon",
		FaithJourney:          "growing",
		ChurchAttendance:      "weekly",
		Interests:             []string{"hiking"},
		RelationshipGoals:     []string{"marriage"},
		PreferredFaithJourney: []string{"mature"},
		PreferredGender:       "any",
		MinAge:                25,
		MaxAge:                35,
		MaxDistance:           50,
		Photos: []PhotoSlot{
			{Slot: 1, URL: "https://cdn.test/a.jpg"},
			{Slot: 2, URL: "https://cdn.test/b.jpg"},
		},
	}
}

func TestOnboardingPayloadValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(validPayload()))

	p := validPayload()
	p.FaithJourney = "lukewarm"
	assert.Error(t, v.Struct(p))

	p = validPayload()
	p.PreferredFaithJourney = []string{"growing", "nope"}
	assert.Error(t, v.Struct(p))

	p = validPayload()
	p.MinAge, p.MaxAge = 40, 30
	assert.Error(t, v.Struct(p))

	p = validPayload()
	p.Photos = p.Photos[:1]
	assert.Error(t, v.Struct(p))
}

func TestAgeOn(t *testing.T) {
	birthday := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 23, AgeOn(birthday, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, AgeOn(birthday, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, AgeOn(birthday, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCandidateKey(t *testing.T) {
	assert.Equal(t, "a", (&Candidate{ID: "a", LegacyID: "b"}).Key())
	assert.Equal(t, "b", (&Candidate{ID: "  ", LegacyID: "b"}).Key())
	assert.Empty(t, (&Candidate{}).Key())
}

func TestIntersectInterests(t *testing.T) {
	got := IntersectInterests([]string{"Hiking", "music"}, []string{"cooking", "hiking", "Music"})
	assert.Equal(t, []string{"hiking", "Music"}, got)
	assert.Empty(t, IntersectInterests(nil, []string{"x"}))
}

func TestNormalizeAgeRange(t *testing.T) {
	lo, hi := NormalizeAgeRange(50, 10)
	assert.Equal(t, 18, lo)
	assert.Equal(t, 50, hi)
}
