package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// CandidateCache keeps recent discovery results per viewer and filter.
// Invalidation bumps a per-viewer version so stale entries are never read
// again and simply expire.
type CandidateCache struct {
	client *redis.Client
}

func NewCandidateCache(client *redis.Client) *CandidateCache {
	return &CandidateCache{client: client}
}

func versionKey(viewerID string) string {
	return "discover:" + viewerID + ":version"
}

func (c *CandidateCache) entryKey(ctx context.Context, viewerID, filterKey string) (string, error) {
	version, err := c.client.Get(ctx, versionKey(viewerID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("discover:%s:v%d:%s", viewerID, version, filterKey), nil
}

func (c *CandidateCache) Get(ctx context.Context, viewerID, filterKey string) ([]domain.Candidate, bool, error) {
	key, err := c.entryKey(ctx, viewerID, filterKey)
	if err != nil {
		return nil, false, err
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var candidates []domain.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, false, fmt.Errorf("decode cached candidates: %w", err)
	}
	return candidates, true, nil
}

func (c *CandidateCache) Set(ctx context.Context, viewerID, filterKey string, candidates []domain.Candidate, ttl time.Duration) error {
	key, err := c.entryKey(ctx, viewerID, filterKey)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("encode candidates: %w", err)
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *CandidateCache) Invalidate(ctx context.Context, viewerID string) error {
	return c.client.Incr(ctx, versionKey(viewerID)).Err()
}
