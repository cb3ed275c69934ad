package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

// SegmentationCache stores complete clustering results keyed by cluster
// count. The feature table never changes while the process lives, so a
// TTL is only a safety valve for rolling deployments with fresher data.
type SegmentationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSegmentationCache(client *redis.Client, ttl time.Duration) *SegmentationCache {
	return &SegmentationCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *SegmentationCache) key(nClusters int) string {
	return fmt.Sprintf("segmentation:k=%d", nClusters)
}

// Get returns (nil, nil) on a cache miss.
func (c *SegmentationCache) Get(ctx context.Context, nClusters int) (*domain.Segmentation, error) {
	val, err := c.client.Get(ctx, c.key(nClusters)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get segmentation from Redis: %w", err)
	}

	var seg domain.Segmentation
	if err := json.Unmarshal([]byte(val), &seg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached segmentation: %w", err)
	}

	return &seg, nil
}

func (c *SegmentationCache) Set(ctx context.Context, nClusters int, seg *domain.Segmentation) error {
	jsonData, err := json.Marshal(seg)
	if err != nil {
		return fmt.Errorf("failed to marshal segmentation: %w", err)
	}

	if err := c.client.Set(ctx, c.key(nClusters), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store segmentation in Redis: %w", err)
	}

	return nil
}
