package locks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockExcludesUntilReleased(t *testing.T) {
	l := NewLocalLock()
	ctx := context.Background()

	unlock, ok, err := l.TryLock(ctx, "a:b", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(ctx, "a:b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = l.TryLock(ctx, "a:c", time.Minute)
	assert.True(t, ok, "other keys are independent")

	require.NoError(t, unlock(ctx))
	_, ok, _ = l.TryLock(ctx, "a:b", time.Minute)
	assert.True(t, ok)
}

func TestLocalLockExpires(t *testing.T) {
	l := NewLocalLock()
	now := time.Now()
	l.now = func() time.Time { return now }
	ctx := context.Background()

	staleUnlock, ok, _ := l.TryLock(ctx, "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = l.TryLock(ctx, "k", time.Second)
	require.True(t, ok, "expired lock can be taken over")

	// The previous holder must not release the new holder's lock.
	require.NoError(t, staleUnlock(ctx))
	_, ok, _ = l.TryLock(ctx, "k", time.Second)
	assert.False(t, ok)
}
