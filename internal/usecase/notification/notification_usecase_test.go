package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/testsupport"
)

type recordingPublisher struct {
	published []*domain.Notification
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, n *domain.Notification) error {
	p.published = append(p.published, n)
	return p.err
}

func TestNotifyStoresAndPublishes(t *testing.T) {
	store := testsupport.NewStore()
	pub := &recordingPublisher{}
	uc := NewNotificationUseCase(store.Notifications(), pub, zap.NewNop())
	matchID := "m1"

	uc.Notify(context.Background(), "u1", "u2", domain.NotificationNewMatch, &matchID)

	stored := store.NotificationsFor("u1")
	require.Len(t, stored, 1)
	assert.Equal(t, domain.NotificationNewMatch, stored[0].Type)
	assert.Equal(t, "u2", stored[0].ActorID)
	require.Len(t, pub.published, 1)
	assert.Equal(t, stored[0].ID, pub.published[0].ID)
}

func TestNotifySwallowsPublishErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := testsupport.NewStore()
	uc := NewNotificationUseCase(store.Notifications(), &recordingPublisher{err: errors.New("redis down")}, zap.New(core))

	uc.Notify(context.Background(), "u1", "u2", domain.NotificationProfileLiked, nil)

	assert.Len(t, store.NotificationsFor("u1"), 1)
	assert.Equal(t, 1, logs.FilterMessage("publish notification failed").Len())
}

func TestListAndMarkRead(t *testing.T) {
	store := testsupport.NewStore()
	uc := NewNotificationUseCase(store.Notifications(), nil, zap.NewNop())
	ctx := context.Background()

	uc.Notify(ctx, "u1", "a", domain.NotificationProfileLiked, nil)
	uc.Notify(ctx, "u1", "b", domain.NotificationProfileLiked, nil)

	all, err := uc.List(ctx, "u1", false, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ActorID)

	require.NoError(t, uc.MarkRead(ctx, "u1", all[0].ID))
	require.NoError(t, uc.MarkRead(ctx, "u1", all[0].ID))

	unread, err := uc.List(ctx, "u1", true, 10, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "a", unread[0].ActorID)

	assert.ErrorIs(t, uc.MarkRead(ctx, "someone-else", all[1].ID), domain.ErrNotificationNotFound)

	none, err := uc.List(ctx, "u9", false, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}
