package onboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

func TestBuildPayload(t *testing.T) {
	d := &Draft{
		Birthday:         " 1995-03-14 ",
		Location:         "  Austin ",
		Phone:            "   ",
		Denomination:     "Baptist",
		Bio:              "",
		FaithJourney:     "growing",
		ChurchAttendance: "weekly",
		PreferredGender:  "any",
	}
	d.Interests.Add("Hiking")
	d.Interests.Add(" ")
	d.RelationshipGoals.Add("marriage")
	d.PreferredFaithJourney.Add("growing")
	d.SetMinAge(25)
	d.SetMaxAge(35)
	d.SetMaxDistance(50)
	d.SetPreferredMinHeight(170)
	require.NoError(t, d.AddPhoto(photo("a")))
	require.NoError(t, d.AddPhoto(photo("b")))

	p, err := BuildPayload(d, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC), p.Birthday)
	assert.Equal(t, "Austin", p.Location)
	assert.Nil(t, p.Phone)
	assert.Nil(t, p.Bio)
	assert.Nil(t, p.DisplayName)
	require.NotNil(t, p.Denomination)
	assert.Equal(t, "Baptist", *p.Denomination)
	assert.Equal(t, []string{"Hiking"}, p.Interests)
	assert.Nil(t, p.Hobbies)
	assert.Equal(t, []domain.PhotoSlot{
		{Slot: 1, URL: "https://cdn/a.jpg"},
		{Slot: 2, URL: "https://cdn/b.jpg"},
	}, p.Photos)
	assert.Equal(t, 25, p.MinAge)
	assert.Equal(t, 35, p.MaxAge)
	assert.Equal(t, 50, p.MaxDistance)
	require.NotNil(t, p.PreferredMinHeight)
	assert.Equal(t, 170, *p.PreferredMinHeight)
}

func TestBuildPayloadRejectsMismatchedURLs(t *testing.T) {
	d := &Draft{Birthday: "1995-03-14"}
	require.NoError(t, d.AddPhoto(photo("a")))
	require.NoError(t, d.AddPhoto(photo("b")))

	_, err := BuildPayload(d, []string{"https://cdn/a.jpg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = BuildPayload(d, []string{"https://cdn/a.jpg", " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildPayloadRejectsBadBirthday(t *testing.T) {
	_, err := BuildPayload(&Draft{Birthday: "14/03/1995"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
