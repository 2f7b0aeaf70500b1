package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// LocalPhotoStore writes photos below a directory that the HTTP server
// exposes under publicBaseURL.
type LocalPhotoStore struct {
	dir           string
	publicBaseURL string
}

func NewLocalPhotoStore(dir, publicBaseURL string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalPhotoStore{dir: dir, publicBaseURL: publicBaseURL}, nil
}

// Dir is the root directory served as static content.
func (s *LocalPhotoStore) Dir() string {
	return s.dir
}

// Save stores all files or none. The returned URLs are in the same order
// as files.
func (s *LocalPhotoStore) Save(ctx context.Context, ownerID string, files []domain.MediaFile) ([]string, error) {
	ownerDir := filepath.Join(s.dir, ownerID)
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return nil, fmt.Errorf("create owner dir: %w", err)
	}

	names := make([]string, len(files))
	for i, f := range files {
		ext, ok := domain.PhotoExtension(f.ContentType)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, f.ContentType)
		}
		names[i] = uuid.NewString() + ext
	}

	written := make([]bool, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i := range files {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(ownerDir, names[i])
			if err := os.WriteFile(path, files[i].Data, 0o644); err != nil {
				return fmt.Errorf("write photo %d: %w", i+1, err)
			}
			written[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var cleanupErr error
		for i, ok := range written {
			if ok {
				cleanupErr = errors.Join(cleanupErr, os.Remove(filepath.Join(ownerDir, names[i])))
			}
		}
		return nil, errors.Join(err, cleanupErr)
	}

	urls := make([]string, len(files))
	for i, name := range names {
		urls[i] = fmt.Sprintf("%s/%s/%s", s.publicBaseURL, ownerID, name)
	}
	return urls, nil
}
