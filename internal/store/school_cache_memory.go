package store

import (
	"context"
	"sync"
	"time"

	"sarvekshan/internal/model"
)

// memorySchoolCache keeps the single shared entry in process memory. Used in
// tests and when no REDIS_URI is configured. The injectable clock makes the
// 7-day expiry deterministic under test; the shared-expiry + one-shot cleanup
// signal contract is why this does not sit on a generic per-key TTL cache.
type memorySchoolCache struct {
	mu    sync.Mutex
	entry *model.CachedSchools
	ttl   time.Duration

	nowFunc func() time.Time
}

// NewMemorySchoolCache creates an in-memory school cache
func NewMemorySchoolCache() SchoolCache {
	return &memorySchoolCache{
		ttl:     SchoolCacheTTL,
		nowFunc: time.Now,
	}
}

// current returns the live entry, clearing it when expired. Caller holds mu.
func (c *memorySchoolCache) current() (*model.CachedSchools, bool) {
	if c.entry == nil {
		return nil, false
	}
	if c.entry.Expired(c.nowFunc()) {
		c.entry = nil
		return nil, true
	}
	return c.entry, false
}

func (c *memorySchoolCache) AddSchools(_ context.Context, schools []model.School) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, _ := c.current()
	now := c.nowFunc()
	if entry == nil {
		entry = &model.CachedSchools{}
	}
	entry.Schools = mergeSchools(entry.Schools, schools)
	entry.CachedAt = now
	entry.ExpiresAt = now.Add(c.ttl)
	c.entry = entry
	return nil
}

func (c *memorySchoolCache) Lookup(_ context.Context, udise string) (*model.School, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, _ := c.current()
	if entry == nil {
		return nil, nil
	}
	if school := entry.Find(udise); school != nil {
		s := *school
		return &s, nil
	}
	return nil, nil
}

func (c *memorySchoolCache) CleanupExpired(_ context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, cleared := c.current()
	return cleared, nil
}

func (c *memorySchoolCache) Info(_ context.Context) (*model.CacheInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, _ := c.current()
	if entry == nil {
		return nil, nil
	}
	return cacheInfo(entry, c.nowFunc()), nil
}
