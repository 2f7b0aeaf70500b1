package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/storage"
)

func photo(name, contentType string, size int) domain.MediaFile {
	return domain.MediaFile{Filename: name, ContentType: contentType, Data: []byte(strings.Repeat("x", size))}
}

func TestUploadPhotosKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalPhotoStore(dir, "http://localhost/media")
	require.NoError(t, err)
	uc := NewMediaUseCase(store, 1024, zap.NewNop())

	files := []domain.MediaFile{
		photo("first.jpg", "image/jpeg", 10),
		photo("second.png", "image/png", 20),
		photo("third.webp", "image/webp", 30),
	}
	urls, err := uc.UploadPhotos(context.Background(), "u1", files)
	require.NoError(t, err)
	require.Len(t, urls, 3)

	for i, url := range urls {
		assert.True(t, strings.HasPrefix(url, "http://localhost/media/u1/"))
		data, err := os.ReadFile(filepath.Join(dir, "u1", filepath.Base(url)))
		require.NoError(t, err)
		assert.Len(t, data, len(files[i].Data))
	}
	assert.True(t, strings.HasSuffix(urls[1], ".png"))
}

func TestUploadPhotosValidation(t *testing.T) {
	store, err := storage.NewLocalPhotoStore(t.TempDir(), "http://localhost/media")
	require.NoError(t, err)
	uc := NewMediaUseCase(store, 16, zap.NewNop())
	ctx := context.Background()

	_, err = uc.UploadPhotos(ctx, "u1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadPhotos(ctx, "u1", []domain.MediaFile{photo("a.gif", "image/gif", 4)})
	assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)

	_, err = uc.UploadPhotos(ctx, "u1", []domain.MediaFile{photo("a.jpg", "image/jpeg", 17)})
	assert.ErrorIs(t, err, domain.ErrPhotoTooLarge)

	seven := make([]domain.MediaFile, domain.MaxPhotos+1)
	for i := range seven {
		seven[i] = photo("p.jpg", "image/jpeg", 1)
	}
	_, err = uc.UploadPhotos(ctx, "u1", seven)
	assert.ErrorIs(t, err, domain.ErrTooManyPhotos)
}
