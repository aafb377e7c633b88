package aircraft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache keeps rendered public listing pages in Redis. A nil client disables
// caching. Invalidation bumps a generation counter instead of scanning for
// keys; stale generations fall out via TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedPage struct {
	Items []*Aircraft `json:"items"`
	Total int         `json:"total"`
}

// NewCache creates the listing cache
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

const generationKey = "aircraft:list:gen"

func (c *Cache) key(ctx context.Context, filter Filter) string {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		gen = 0
	}
	return fmt.Sprintf("aircraft:list:%d:%s:%s:%s:%d:%d:%d:%d",
		gen, filter.Status, filter.Category, filter.Make,
		filter.PriceMinCents, filter.PriceMaxCents, filter.Limit, filter.Offset)
}

// Get returns a cached page, or ok=false on miss or disabled cache
func (c *Cache) Get(ctx context.Context, filter Filter) ([]*Aircraft, int, bool) {
	if c == nil || c.client == nil {
		return nil, 0, false
	}

	raw, err := c.client.Get(ctx, c.key(ctx, filter)).Bytes()
	if err != nil {
		return nil, 0, false
	}

	var page cachedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, 0, false
	}
	return page.Items, page.Total, true
}

// Set stores a page. Failures are logged and ignored.
func (c *Cache) Set(ctx context.Context, filter Filter, items []*Aircraft, total int) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(cachedPage{Items: items, Total: total})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(ctx, filter), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to write listing cache")
	}
}

// Invalidate drops all cached pages by advancing the generation
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate listing cache")
	}
}
