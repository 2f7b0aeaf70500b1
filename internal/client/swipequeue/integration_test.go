package swipequeue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdugdh24/faithmatch-backend/internal/client/api"
	"github.com/gdugdh24/faithmatch-backend/internal/client/swipequeue"
	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/testsupport"
	"github.com/gdugdh24/faithmatch-backend/internal/testsupport/apitest"
)

func TestQueueAgainstServer(t *testing.T) {
	srv := apitest.NewServer(t)
	ctx := context.Background()

	base, err := api.New(api.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	viewerSess, err := base.Login(ctx, "google:dana", "")
	require.NoError(t, err)
	viewer := base.WithSession(viewerSess)

	urls, err := viewer.UploadPhotos(ctx, []domain.MediaFile{
		{Filename: "1.jpg", ContentType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF, 1}},
		{Filename: "2.jpg", ContentType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF, 2}},
	})
	require.NoError(t, err)
	_, err = viewer.CompleteOnboarding(ctx, &domain.OnboardingPayload{
		Birthday:              mustDate(t, "1994-07-21"),
		Location:              "Austin",
		FaithJourney:          "growing",
		ChurchAttendance:      "weekly",
		Interests:             []string{"Hiking"},
		RelationshipGoals:     []string{"marriage"},
		PreferredFaithJourney: []string{"growing"},
		PreferredGender:       "any",
		MinAge:                18,
		MaxAge:                99,
		MaxDistance:           500,
		Photos:                []domain.PhotoSlot{{Slot: 1, URL: urls[0]}, {Slot: 2, URL: urls[1]}},
	})
	require.NoError(t, err)

	var ids []string
	for _, name := range []string{"Eli", "Fay", "Gus"} {
		ids = append(ids, srv.Store.SeedMember(testsupport.Member{Name: name, Interests: []string{"Hiking"}}))
	}

	q := swipequeue.New(viewer, viewer, zap.NewNop())
	require.NoError(t, q.Load(ctx, domain.CandidateFilter{Interests: []string{"Hiking"}}))
	require.Equal(t, 3, q.Len())

	head, ok := q.Head()
	require.True(t, ok)
	res, err := q.Like(ctx, head.Key())
	require.NoError(t, err)
	assert.False(t, res.IsMatch)
	assert.Equal(t, 2, q.Len())
	assert.Empty(t, q.Pending())

	for _, c := range q.Candidates() {
		assert.NotEqual(t, head.Key(), c.Key())
		assert.Contains(t, ids, c.Key())
	}

	require.NoError(t, q.Load(ctx, domain.CandidateFilter{Interests: []string{"Hiking"}}))
	assert.Equal(t, 2, q.Len(), "swiped candidates are not offered again")
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
