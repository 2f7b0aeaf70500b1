package media

import (
	"context"
	"fmt"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"go.uber.org/zap"
)

// PhotoStore persists photos and returns their public URLs in input order.
type PhotoStore interface {
	Save(ctx context.Context, ownerID string, files []domain.MediaFile) ([]string, error)
}

type MediaUseCase struct {
	store    PhotoStore
	maxBytes int64
	logger   *zap.Logger
}

func NewMediaUseCase(store PhotoStore, maxBytes int64, logger *zap.Logger) *MediaUseCase {
	return &MediaUseCase{
		store:    store,
		maxBytes: maxBytes,
		logger:   logger.Named("media"),
	}
}

// UploadPhotos validates and stores an ordered batch of photos. URL i of
// the result belongs to file i.
func (uc *MediaUseCase) UploadPhotos(ctx context.Context, ownerID string, files []domain.MediaFile) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no photos", domain.ErrInvalidInput)
	}
	if len(files) > domain.MaxPhotos {
		return nil, domain.ErrTooManyPhotos
	}
	for i, f := range files {
		if _, ok := domain.PhotoExtension(f.ContentType); !ok {
			return nil, fmt.Errorf("%w: photo %d has type %q", domain.ErrUnsupportedMedia, i+1, f.ContentType)
		}
		if len(f.Data) == 0 {
			return nil, fmt.Errorf("%w: photo %d is empty", domain.ErrInvalidInput, i+1)
		}
		if uc.maxBytes > 0 && int64(len(f.Data)) > uc.maxBytes {
			return nil, fmt.Errorf("%w: photo %d", domain.ErrPhotoTooLarge, i+1)
		}
	}

	urls, err := uc.store.Save(ctx, ownerID, files)
	if err != nil {
		return nil, fmt.Errorf("failed to store photos: %w", err)
	}

	uc.logger.Debug("photos stored", zap.String("user_id", ownerID), zap.Int("count", len(urls)))
	return urls, nil
}
