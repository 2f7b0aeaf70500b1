package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/testsupport"
)

type fakeBio struct {
	got []string
	err error
}

func (f *fakeBio) GenerateBio(_ context.Context, name string, interests []string, faithJourney, verse string) (map[string]string, error) {
	f.got = append([]string{name, faithJourney, verse}, interests...)
	if f.err != nil {
		return nil, f.err
	}
	return map[string]string{"warm": "hello from " + name}, nil
}

type fakeCache struct{ invalidated []string }

func (f *fakeCache) Invalidate(_ context.Context, viewerID string) error {
	f.invalidated = append(f.invalidated, viewerID)
	return nil
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(store *testsupport.Store, bio BioGenerator, cache CacheInvalidator) *ProfileUseCase {
	uc := NewProfileUseCase(store.Profiles(), store.Users(), bio, cache, zap.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func newUser(t *testing.T, store *testsupport.Store, name string) string {
	t.Helper()
	u := &domain.User{GoogleSub: "sub-" + name, Email: name + "@example.com", DisplayName: name}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u.ID
}

func payload() *domain.OnboardingPayload {
	return &domain.OnboardingPayload{
		Birthday:              time.Date(1998, 7, 1, 0, 0, 0, 0, time.UTC),
		Location:              "Austin",
		FaithJourney:          "growing",
		ChurchAttendance:      "weekly",
		Interests:             []string{"worship", "hiking"},
		RelationshipGoals:     []string{"marriage"},
		PreferredFaithJourney: []string{"growing", "mature"},
		PreferredGender:       "female",
		MinAge:                40,
		MaxAge:                30,
		MaxDistance:           900,
		Photos: []domain.PhotoSlot{
			{Slot: 2, URL: "https://cdn.test/b.jpg"},
			{Slot: 1, URL: "https://cdn.test/a.jpg"},
		},
	}
}

func TestCompleteOnboarding(t *testing.T) {
	store := testsupport.NewStore()
	uc := newUseCase(store, nil, nil)
	userID := newUser(t, store, "caleb")

	profile, err := uc.CompleteOnboarding(context.Background(), userID, payload())
	require.NoError(t, err)

	assert.True(t, profile.IsOnboardingComplete)
	assert.Equal(t, "caleb", profile.DisplayName)
	assert.Equal(t, []string{"https://cdn.test/a.jpg", "https://cdn.test/b.jpg"}, profile.Photos)
	assert.Equal(t, 30, *profile.PrefMinAge)
	assert.Equal(t, 40, *profile.PrefMaxAge)
	assert.Equal(t, domain.MaxDistanceKm, *profile.PrefMaxDistanceKm)

	_, err = uc.CompleteOnboarding(context.Background(), userID, payload())
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
}

func TestCompleteOnboardingRejectsMinorsAndSlotGaps(t *testing.T) {
	store := testsupport.NewStore()
	uc := newUseCase(store, nil, nil)
	userID := newUser(t, store, "sam")

	young := payload()
	young.Birthday = fixedNow.AddDate(-17, 0, 0)
	_, err := uc.CompleteOnboarding(context.Background(), userID, young)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	gap := payload()
	gap.Photos[0].Slot = 3
	_, err = uc.CompleteOnboarding(context.Background(), userID, gap)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	one := payload()
	one.Photos = one.Photos[:1]
	_, err = uc.CompleteOnboarding(context.Background(), userID, one)
	assert.ErrorIs(t, err, domain.ErrTooFewPhotos)
}

func TestUpdateProfileClampsAndInvalidates(t *testing.T) {
	store := testsupport.NewStore()
	cache := &fakeCache{}
	uc := newUseCase(store, nil, cache)
	userID := store.SeedMember(testsupport.Member{Name: "lydia"})

	minAge, dist := 120, 0
	profile, err := uc.UpdateProfile(context.Background(), userID, &domain.ProfileUpdate{
		PrefMinAge:        &minAge,
		PrefMaxDistanceKm: &dist,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxAge, *profile.PrefMinAge)
	assert.Equal(t, domain.MaxAge, *profile.PrefMaxAge)
	assert.Equal(t, domain.MinDistanceKm, *profile.PrefMaxDistanceKm)
	assert.Equal(t, []string{userID}, cache.invalidated)

	maxAge := 20
	profile, err = uc.UpdateProfile(context.Background(), userID, &domain.ProfileUpdate{PrefMaxAge: &maxAge})
	require.NoError(t, err)
	assert.Equal(t, 20, *profile.PrefMinAge)
	assert.Equal(t, 20, *profile.PrefMaxAge)

	tooMany := make([]string, domain.MaxInterests+1)
	_, err = uc.UpdateProfile(context.Background(), userID, &domain.ProfileUpdate{Interests: &tooMany})
	assert.ErrorIs(t, err, domain.ErrTooManyInterests)
}

func TestGetProfileByUserIDComputesViewerFields(t *testing.T) {
	store := testsupport.NewStore()
	uc := newUseCase(store, nil, nil)
	lat1, lon1, lat2, lon2 := 52.52, 13.405, 52.52, 13.5
	viewer := store.SeedMember(testsupport.Member{Name: "anna", Interests: []string{"choir", "Hiking"}, Lat: &lat1, Lon: &lon1})
	target := store.SeedMember(testsupport.Member{Name: "ben", Interests: []string{"hiking", "chess"}, Lat: &lat2, Lon: &lon2})

	resp, err := uc.GetProfileByUserID(context.Background(), target, viewer)
	require.NoError(t, err)
	assert.Equal(t, []string{"hiking"}, resp.MatchedInterests)
	require.NotNil(t, resp.DistanceKm)
	assert.InDelta(t, 6.4, *resp.DistanceKm, 0.5)
	assert.Equal(t, 30, resp.Age)

	_, err = uc.GetProfileByUserID(context.Background(), "missing", viewer)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGenerateBio(t *testing.T) {
	store := testsupport.NewStore()
	req := &GenerateBioRequest{DisplayName: "Ruth", Interests: []string{"baking"}, FaithJourney: "mature"}

	_, err := newUseCase(store, nil, nil).GenerateBio(context.Background(), req)
	assert.ErrorIs(t, err, ErrBioUnavailable)

	bio := &fakeBio{}
	out, err := newUseCase(store, bio, nil).GenerateBio(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "hello from Ruth", out["warm"])
	assert.Equal(t, []string{"Ruth", "mature", "", "baking"}, bio.got)

	bio.err = errors.New("quota")
	_, err = newUseCase(store, bio, nil).GenerateBio(context.Background(), req)
	assert.EqualError(t, err, "quota")
}
