package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeMedia struct {
	rec     *recorder
	err     error
	dropURL bool
	started chan struct{}
	release chan struct{}

	mu       sync.Mutex
	uploaded [][]domain.MediaFile
}

func (f *fakeMedia) UploadPhotos(ctx context.Context, photos []domain.MediaFile) ([]string, error) {
	f.rec.add("upload")
	f.mu.Lock()
	f.uploaded = append(f.uploaded, photos)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	urls := make([]string, len(photos))
	for i, p := range photos {
		urls[i] = "https://cdn.test/" + p.Filename
	}
	if f.dropURL && len(urls) > 0 {
		urls = urls[:len(urls)-1]
	}
	return urls, nil
}

type fakeProfiles struct {
	rec      *recorder
	err      error
	payloads []*domain.OnboardingPayload
}

func (f *fakeProfiles) CompleteOnboarding(ctx context.Context, payload *domain.OnboardingPayload) (*domain.Profile, error) {
	f.rec.add("complete")
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return nil, f.err
	}
	photos := make([]string, len(payload.Photos))
	for i, s := range payload.Photos {
		photos[i] = s.URL
	}
	birthday := payload.Birthday
	return &domain.Profile{
		UserID:                "u1",
		Birthday:              &birthday,
		Location:              &payload.Location,
		FaithJourney:          payload.FaithJourney,
		ChurchAttendance:      payload.ChurchAttendance,
		Interests:             payload.Interests,
		RelationshipGoals:     payload.RelationshipGoals,
		PreferredFaithJourney: payload.PreferredFaithJourney,
		PreferredGender:       &payload.PreferredGender,
		PrefMinAge:            &payload.MinAge,
		PrefMaxAge:            &payload.MaxAge,
		PrefMaxDistanceKm:     &payload.MaxDistance,
		Photos:                photos,
		IsOnboardingComplete:  true,
	}, nil
}

type harness struct {
	w        *Wizard
	rec      *recorder
	media    *fakeMedia
	profiles *fakeProfiles
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	rec := &recorder{}
	h := &harness{rec: rec, media: &fakeMedia{rec: rec}, profiles: &fakeProfiles{rec: rec}}
	h.w = NewWizard(h.media, h.profiles, nil, zap.NewNop())
	h.w.now = func() time.Time { return testNow }
	t.Cleanup(h.w.Close)
	return h
}

func fillValid(d *Draft) error {
	d.Birthday = "1995-03-14"
	d.Location = "Austin, TX"
	d.FaithJourney = "growing"
	d.ChurchAttendance = "weekly"
	d.Bio = "   "
	if err := d.AddInterest("Hiking"); err != nil {
		return err
	}
	d.RelationshipGoals.Add("marriage")
	d.PreferredFaithJourney.Add("growing")
	d.PreferredGender = "any"
	d.SetMinAge(25)
	d.SetMaxAge(35)
	d.SetMaxDistance(100)
	if err := d.AddPhoto(photo("1.jpg")); err != nil {
		return err
	}
	return d.AddPhoto(photo("2.jpg"))
}

// advanceTo fills a valid draft and walks forward to the step at index.
func advanceTo(t *testing.T, h *harness, index int) {
	t.Helper()
	require.NoError(t, h.w.Edit(fillValid))
	for i := 0; i < index; i++ {
		res := h.w.Advance(context.Background())
		require.True(t, res.Advanced, res.Message)
	}
	require.Equal(t, index, h.w.Step())
}

func TestStepsOrder(t *testing.T) {
	assert.Equal(t, []string{
		StepProfile, StepAbout, StepGoals, StepPartnerPreferences, StepMatchingPreferences, StepPhotos,
	}, Steps())
}

func TestAdvanceBlockedByEachValidator(t *testing.T) {
	breakers := map[string]func(d *Draft) error{
		StepProfile: func(d *Draft) error {
			d.Location = "  "
			return nil
		},
		StepAbout: func(d *Draft) error {
			d.Interests.Clear()
			return nil
		},
		StepGoals: func(d *Draft) error {
			d.RelationshipGoals.Clear()
			return nil
		},
		StepPartnerPreferences: func(d *Draft) error {
			d.PreferredFaithJourney.Clear()
			return nil
		},
		StepMatchingPreferences: func(d *Draft) error {
			d.SetMaxDistance(0)
			return nil
		},
		StepPhotos: func(d *Draft) error {
			return d.RemovePhoto(0)
		},
	}

	for i, name := range Steps() {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			advanceTo(t, h, i)
			require.NoError(t, h.w.Edit(breakers[name]))

			res := h.w.Advance(context.Background())
			assert.False(t, res.Advanced)
			assert.NoError(t, res.Err)
			assert.Equal(t, i, res.Step)
			assert.Equal(t, name, res.StepName)
			assert.NotEmpty(t, res.Message)
			assert.Equal(t, i, h.w.Step())
			assert.Equal(t, res.Message, h.w.Message())
			assert.Empty(t, h.rec.list())
		})
	}
}

func TestPhotosStepMentionsMinimum(t *testing.T) {
	h := newHarness(t)
	advanceTo(t, h, len(Steps())-1)
	require.NoError(t, h.w.Edit(func(d *Draft) error { return d.RemovePhoto(1) }))

	res := h.w.Advance(context.Background())
	assert.Equal(t, StepPhotos, res.StepName)
	assert.Contains(t, res.Message, "at least 2 photos")
	assert.Empty(t, h.rec.list())
}

func TestProfileStepRejectsUnderage(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.w.Edit(fillValid))
	require.NoError(t, h.w.Edit(func(d *Draft) error {
		d.Birthday = "2010-01-01"
		return nil
	}))

	res := h.w.Advance(context.Background())
	assert.Equal(t, 0, res.Step)
	assert.Contains(t, res.Message, "18")

	require.NoError(t, h.w.Edit(func(d *Draft) error {
		d.Birthday = "not a date"
		return nil
	}))
	res = h.w.Advance(context.Background())
	assert.Equal(t, 0, res.Step)
	assert.Contains(t, res.Message, "Birthday")
}

func TestAdvanceClearsMessage(t *testing.T) {
	h := newHarness(t)
	res := h.w.Advance(context.Background())
	require.NotEmpty(t, res.Message)

	require.NoError(t, h.w.Edit(fillValid))
	res = h.w.Advance(context.Background())
	assert.True(t, res.Advanced)
	assert.Empty(t, res.Message)
	assert.Equal(t, StepAbout, h.w.StepName())
}

func TestTerminalSubmissionUploadsThenCompletes(t *testing.T) {
	h := newHarness(t)
	advanceTo(t, h, len(Steps())-1)

	res := h.w.Advance(context.Background())
	require.NoError(t, res.Err)
	assert.True(t, res.Complete)
	assert.True(t, h.w.Complete())
	assert.Empty(t, h.w.Message())

	assert.Equal(t, []string{"upload", "complete"}, h.rec.list())
	require.Len(t, h.media.uploaded, 1)
	assert.Equal(t, []string{"1.jpg", "2.jpg"}, photoNames(h.media.uploaded[0]))

	require.Len(t, h.profiles.payloads, 1)
	payload := h.profiles.payloads[0]
	assert.Equal(t, []domain.PhotoSlot{
		{Slot: 1, URL: "https://cdn.test/1.jpg"},
		{Slot: 2, URL: "https://cdn.test/2.jpg"},
	}, payload.Photos)
	assert.Nil(t, payload.Bio)
	assert.Equal(t, time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC), payload.Birthday)

	require.NotNil(t, h.w.Profile())
	d := h.w.Draft()
	assert.Equal(t, "1995-03-14", d.Birthday)
	assert.Equal(t, []string{"Hiking"}, d.Interests.Values())
	assert.Zero(t, d.PhotoCount())

	again := h.w.Advance(context.Background())
	assert.ErrorIs(t, again.Err, ErrComplete)
	assert.True(t, again.Complete)
	assert.False(t, again.Advanced)
	assert.Len(t, h.rec.list(), 2, "advancing a complete wizard does nothing")
	assert.ErrorIs(t, h.w.Edit(fillValid), ErrComplete)
	assert.ErrorIs(t, h.w.Retreat(), ErrComplete)
}

func TestUploadFailureKeepsDraftAndStep(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := newHarness(t)
	h.w.logger = zap.New(core)
	h.media.err = errors.New("connection reset")
	advanceTo(t, h, len(Steps())-1)
	before := h.w.Draft()

	res := h.w.Advance(context.Background())
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, h.media.err)
	assert.False(t, res.Complete)
	assert.Equal(t, uploadFailedMessage, res.Message)
	assert.Equal(t, len(Steps())-1, h.w.Step())
	assert.Equal(t, before, h.w.Draft())
	assert.Equal(t, []string{"upload"}, h.rec.list())
	assert.False(t, h.w.Submitting())
	assert.Equal(t, 1, logs.FilterMessage("onboarding submission failed").Len())

	h.media.err = nil
	res = h.w.Advance(context.Background())
	require.NoError(t, res.Err)
	assert.True(t, res.Complete)
	assert.Equal(t, []string{"upload", "upload", "complete"}, h.rec.list())
}

func TestCompletionFailureKeepsDraft(t *testing.T) {
	h := newHarness(t)
	h.profiles.err = fmt.Errorf("status 500")
	advanceTo(t, h, len(Steps())-1)
	before := h.w.Draft()

	res := h.w.Advance(context.Background())
	require.Error(t, res.Err)
	assert.Equal(t, completeFailedMessage, res.Message)
	assert.Equal(t, before, h.w.Draft())
	assert.False(t, h.w.Complete())
	assert.Equal(t, []string{"upload", "complete"}, h.rec.list())
}

func TestPayloadBuildFailureKeepsDraft(t *testing.T) {
	h := newHarness(t)
	h.media.dropURL = true
	advanceTo(t, h, len(Steps())-1)
	before := h.w.Draft()

	res := h.w.Advance(context.Background())
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, domain.ErrInvalidInput)
	assert.Equal(t, prepareFailedMessage, res.Message)
	assert.NotEqual(t, uploadFailedMessage, res.Message)
	assert.Equal(t, before, h.w.Draft())
	assert.False(t, h.w.Complete())
	assert.Equal(t, []string{"upload"}, h.rec.list())
}

func TestSubmissionInFlightRejectsReentry(t *testing.T) {
	h := newHarness(t)
	h.media.started = make(chan struct{}, 1)
	h.media.release = make(chan struct{})
	advanceTo(t, h, len(Steps())-1)

	done := make(chan Result, 1)
	go func() { done <- h.w.Advance(context.Background()) }()
	<-h.media.started

	assert.True(t, h.w.Submitting())
	second := h.w.Advance(context.Background())
	assert.ErrorIs(t, second.Err, ErrSubmissionInFlight)
	assert.ErrorIs(t, h.w.Edit(fillValid), ErrSubmissionInFlight)
	assert.ErrorIs(t, h.w.Retreat(), ErrSubmissionInFlight)

	close(h.media.release)
	first := <-done
	require.NoError(t, first.Err)
	assert.True(t, first.Complete)
	assert.Equal(t, []string{"upload", "complete"}, h.rec.list())
}

func TestRedirectAfterCompletion(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 3000*time.Millisecond, h.w.redirectDelay)

	fired := make(chan struct{}, 1)
	h.w.onRedirect = func() { fired <- struct{}{} }
	h.w.redirectDelay = 10 * time.Millisecond
	advanceTo(t, h, len(Steps())-1)

	require.True(t, h.w.Advance(context.Background()).Complete)
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("redirect did not fire")
	}
	assert.True(t, h.w.Redirected())
}

func TestCloseCancelsRedirect(t *testing.T) {
	h := newHarness(t)
	fired := make(chan struct{}, 1)
	h.w.onRedirect = func() { fired <- struct{}{} }
	h.w.redirectDelay = 50 * time.Millisecond
	advanceTo(t, h, len(Steps())-1)

	require.True(t, h.w.Advance(context.Background()).Complete)
	h.w.Close()

	select {
	case <-fired:
		t.Fatal("redirect fired after close")
	case <-time.After(150 * time.Millisecond):
	}
	assert.False(t, h.w.Redirected())
	assert.ErrorIs(t, h.w.Advance(context.Background()).Err, ErrClosed)
}

func TestRetreat(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.w.Retreat(), ErrAtFirstStep)

	advanceTo(t, h, 2)
	require.NoError(t, h.w.Edit(func(d *Draft) error {
		d.RelationshipGoals.Clear()
		return nil
	}))
	require.NotEmpty(t, h.w.Advance(context.Background()).Message)
	before := h.w.Draft()

	require.NoError(t, h.w.Retreat())
	assert.Equal(t, 1, h.w.Step())
	assert.Empty(t, h.w.Message())
	assert.Equal(t, before, h.w.Draft())
}

func TestEditIsAtomic(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.w.Edit(fillValid))
	before := h.w.Draft()

	err := h.w.Edit(func(d *Draft) error {
		d.Location = "Elsewhere"
		for i := 0; i < domain.MaxInterests+1; i++ {
			if err := d.AddInterest(fmt.Sprintf("i%d", i)); err != nil {
				return err
			}
		}
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrTooManyInterests)
	assert.Equal(t, before, h.w.Draft())

	snapshot := h.w.Draft()
	snapshot.Location = "mutated copy"
	assert.Equal(t, "Austin, TX", h.w.Draft().Location)
}

func TestEditEnforcesInterestCap(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.w.Edit(fillValid))
	before := h.w.Draft()

	err := h.w.Edit(func(d *Draft) error {
		for i := 0; i < domain.MaxInterests+1; i++ {
			d.Interests.Add(fmt.Sprintf("i%d", i))
		}
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrTooManyInterests)
	assert.Equal(t, before, h.w.Draft())

	require.NoError(t, h.w.Edit(func(d *Draft) error {
		d.Interests.Clear()
		for i := 0; i < domain.MaxInterests; i++ {
			d.Interests.Toggle(fmt.Sprintf("i%d", i))
		}
		return nil
	}))
	assert.Equal(t, domain.MaxInterests, h.w.Draft().Interests.Len())
}
