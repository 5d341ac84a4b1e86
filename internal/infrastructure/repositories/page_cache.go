package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/redis/go-redis/v9"
)

// PageCacheImpl implements domain.PageCache using Redis
type PageCacheImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewPageCache creates a new Redis page cache
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCacheImpl {
	return &PageCacheImpl{
		client: client,
		prefix: "page:",
		ttl:    ttl,
	}
}

// Get implements domain.PageCache. Misses and decode failures both report false.
func (c *PageCacheImpl) Get(ctx context.Context, key string) (*domain.PageView, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var view domain.PageView
	if err := json.Unmarshal(data, &view); err != nil || view.Page == nil {
		return nil, false
	}
	return &view, true
}

// Set implements domain.PageCache
func (c *PageCacheImpl) Set(ctx context.Context, key string, view *domain.PageView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal page view: %w", err)
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

// Invalidate drops both cached variants of a page
func (c *PageCacheImpl) Invalidate(ctx context.Context, pageSlug string) error {
	return c.client.Del(ctx, c.prefix+pageSlug, c.prefix+domain.ServicePageKey(pageSlug)).Err()
}

// NoopPageCache is used when no Redis address is configured
type NoopPageCache struct{}

func (NoopPageCache) Get(context.Context, string) (*domain.PageView, bool) { return nil, false }

func (NoopPageCache) Set(context.Context, string, *domain.PageView) error { return nil }

func (NoopPageCache) Invalidate(context.Context, string) error { return nil }

var (
	_ domain.PageCache = (*PageCacheImpl)(nil)
	_ domain.PageCache = NoopPageCache{}
)
