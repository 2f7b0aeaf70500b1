package onboarding_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdugdh24/faithmatch-backend/internal/client/api"
	"github.com/gdugdh24/faithmatch-backend/internal/client/onboarding"
	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/testsupport/apitest"
)

func TestWizardAgainstServer(t *testing.T) {
	srv := apitest.NewServer(t)
	ctx := context.Background()

	base, err := api.New(api.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	sess, err := base.Login(ctx, "google:carol", "")
	require.NoError(t, err)
	client := base.WithSession(sess)

	w := onboarding.NewWizard(client, client, nil, zap.NewNop())
	defer w.Close()

	require.NoError(t, w.Edit(func(d *onboarding.Draft) error {
		d.Birthday = "1992-11-02"
		d.Location = "Denver"
		d.FaithJourney = string(domain.FaithMature)
		d.ChurchAttendance = string(domain.AttendanceMonthly)
		d.FavoriteVerse = " "
		d.Hobbies.Add("Climbing")
		if err := d.AddInterest("Worship music"); err != nil {
			return err
		}
		d.RelationshipGoals.Add("marriage")
		d.PreferredFaithJourney.Add(string(domain.FaithMature))
		d.PreferredGender = "any"
		d.SetMinAge(28)
		d.SetMaxAge(40)
		d.SetMaxDistance(80)
		for _, b := range []byte{1, 2, 3} {
			if err := d.AddPhoto(onboarding.Photo{
				Filename:    "p.jpg",
				ContentType: "image/jpeg",
				Data:        []byte{0xFF, 0xD8, 0xFF, b},
			}); err != nil {
				return err
			}
		}
		return d.MovePhoto(2, 0)
	}))

	var res onboarding.Result
	for i := 0; i < len(onboarding.Steps()); i++ {
		res = w.Advance(ctx)
		require.NoError(t, res.Err)
		require.Empty(t, res.Message)
	}
	require.True(t, res.Complete)

	p, err := client.GetMyProfile(ctx)
	require.NoError(t, err)
	assert.True(t, p.IsOnboardingComplete)
	assert.Len(t, p.Photos, 3)
	assert.Equal(t, w.Profile().Photos, p.Photos)
	assert.Nil(t, p.FavoriteVerse)
	assert.Equal(t, []string{"Climbing"}, p.Hobbies)
	require.NotNil(t, p.PrefMinAge)
	assert.Equal(t, 28, *p.PrefMinAge)
}
