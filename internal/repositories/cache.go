package repositories

import (
	"context"
	"sync"
	"time"

	"weather-explorer/internal/models"
	"weather-explorer/pkg/logger"
)

type cacheEntry struct {
	samples   []models.Sample
	expiresAt time.Time
}

// CachedRepository memoizes successful fetches per query key for a TTL.
// Errors are never cached.
type CachedRepository struct {
	next SampleRepository
	ttl  time.Duration
	l    *logger.Logger
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewCachedRepository(next SampleRepository, ttl time.Duration, l *logger.Logger) *CachedRepository {
	return &CachedRepository{
		next:    next,
		ttl:     ttl,
		l:       l,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedRepository) Name() string {
	return c.next.Name() + "+cache"
}

func (c *CachedRepository) FetchSamples(ctx context.Context, key models.QueryKey) ([]models.Sample, error) {
	ck := key.CacheKey()

	c.mu.RLock()
	entry, ok := c.entries[ck]
	c.mu.RUnlock()

	if ok && c.now().Before(entry.expiresAt) {
		c.l.Debug("sample cache hit", map[string]any{"key": ck})
		return entry.samples, nil
	}

	samples, err := c.next.FetchSamples(ctx, key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[ck] = cacheEntry{samples: samples, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return samples, nil
}

// Prune drops expired entries and returns how many were removed.
func (c *CachedRepository) Prune() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *CachedRepository) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
