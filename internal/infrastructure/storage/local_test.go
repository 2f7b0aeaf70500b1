package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

func TestSavePreservesOrder(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalPhotoStore(dir, "http://cdn.test/media")
	require.NoError(t, err)

	files := []domain.MediaFile{
		{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("first")},
		{Filename: "b.png", ContentType: "image/png", Data: []byte("second")},
		{Filename: "c.webp", ContentType: "image/webp", Data: []byte("third")},
	}

	urls, err := store.Save(context.Background(), "user-1", files)
	require.NoError(t, err)
	require.Len(t, urls, 3)

	for i, url := range urls {
		require.True(t, strings.HasPrefix(url, "http://cdn.test/media/user-1/"))
		name := filepath.Base(url)
		data, err := os.ReadFile(filepath.Join(dir, "user-1", name))
		require.NoError(t, err)
		assert.Equal(t, files[i].Data, data)
	}
	assert.True(t, strings.HasSuffix(urls[1], ".png"))
}

func TestSaveRejectsUnsupportedTypeWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalPhotoStore(dir, "http://cdn.test/media")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "user-1", []domain.MediaFile{
		{ContentType: "image/jpeg", Data: []byte("ok")},
		{ContentType: "application/pdf", Data: []byte("nope")},
	})
	require.ErrorIs(t, err, domain.ErrUnsupportedMedia)

	entries, err := os.ReadDir(filepath.Join(dir, "user-1"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveCancelledContextLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalPhotoStore(dir, "http://cdn.test/media")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "user-2", []domain.MediaFile{
		{ContentType: "image/jpeg", Data: []byte("1")},
		{ContentType: "image/jpeg", Data: []byte("2")},
	})
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(filepath.Join(dir, "user-2"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
