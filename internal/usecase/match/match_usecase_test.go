package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/testsupport"
)

func TestListMatchesAndUnmatch(t *testing.T) {
	store := testsupport.NewStore()
	ctx := context.Background()
	uc := NewMatchUseCase(store.Matches(), store.Profiles(), zap.NewNop())

	me := store.SeedMember(testsupport.Member{Name: "me", Interests: []string{"choir"}})
	first := store.SeedMember(testsupport.Member{Name: "first", Interests: []string{"choir"}})
	second := store.SeedMember(testsupport.Member{Name: "second"})
	outsider := store.SeedMember(testsupport.Member{Name: "outsider"})

	m1 := &domain.Match{User1ID: me, User2ID: first, IsActive: true}
	require.NoError(t, store.Matches().Create(ctx, m1))
	m2 := &domain.Match{User1ID: second, User2ID: me, IsActive: true}
	require.NoError(t, store.Matches().Create(ctx, m2))

	views, err := uc.ListMatches(ctx, me, 0, 0)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second, views[0].User.ID)
	assert.Equal(t, first, views[1].User.ID)
	assert.Equal(t, []string{"choir"}, views[1].User.MatchedInterests)

	assert.ErrorIs(t, uc.Unmatch(ctx, outsider, m1.ID), domain.ErrMatchNotFound)
	assert.ErrorIs(t, uc.Unmatch(ctx, me, "missing"), domain.ErrMatchNotFound)

	require.NoError(t, uc.Unmatch(ctx, me, m1.ID))
	require.NoError(t, uc.Unmatch(ctx, first, m1.ID))

	views, err = uc.ListMatches(ctx, first, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NotNil(t, views)
}
