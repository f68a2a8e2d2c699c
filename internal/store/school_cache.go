package store

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"sarvekshan/internal/model"
)

// SchoolCacheTTL is the shared offline window for the whole school entry.
const SchoolCacheTTL = 7 * 24 * time.Hour

// SchoolCache is the time-expiring local store of school records used when
// the directory is unreachable. One shared TTL covers the whole entry; a
// merge-add resets it.
type SchoolCache interface {
	// AddSchools merges records into the entry, deduplicating by UDISE code
	// (existing records win), and resets the shared expiry to now + 7 days.
	AddSchools(ctx context.Context, schools []model.School) error
	// Lookup returns the cached school, or (nil, nil) when the entry is
	// absent or expired.
	Lookup(ctx context.Context, udise string) (*model.School, error)
	// CleanupExpired clears an expired or corrupted entry and reports whether
	// anything was cleared, so the shell can tell the user their offline set
	// was invalidated. Never fails on corruption.
	CleanupExpired(ctx context.Context) (bool, error)
	// Info summarizes the current entry, or (nil, nil) when absent/expired.
	Info(ctx context.Context) (*model.CacheInfo, error)
}

const schoolCacheKey = "schools:cache"

type redisSchoolCache struct {
	client *redis.Client
	ttl    time.Duration

	nowFunc func() time.Time
}

// NewRedisSchoolCache creates a redis-backed school cache
func NewRedisSchoolCache(client *redis.Client) SchoolCache {
	return &redisSchoolCache{
		client:  client,
		ttl:     SchoolCacheTTL,
		nowFunc: time.Now,
	}
}

// load returns the current entry, or nil when absent, expired, or corrupted.
// Corrupted entries are cleared in place; the expiry timestamp in the blob is
// authoritative over the redis key TTL so a device clock change still expires.
func (c *redisSchoolCache) load(ctx context.Context) (*model.CachedSchools, bool, error) {
	data, err := c.client.Get(ctx, schoolCacheKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var entry model.CachedSchools
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		// Fail-safe clear, never fatal
		c.client.Del(ctx, schoolCacheKey)
		return nil, true, nil
	}
	if entry.Expired(c.nowFunc()) {
		c.client.Del(ctx, schoolCacheKey)
		return nil, true, nil
	}
	return &entry, false, nil
}

func (c *redisSchoolCache) AddSchools(ctx context.Context, schools []model.School) error {
	entry, _, err := c.load(ctx)
	if err != nil {
		return err
	}
	now := c.nowFunc()
	if entry == nil {
		entry = &model.CachedSchools{}
	}
	entry.Schools = mergeSchools(entry.Schools, schools)
	entry.CachedAt = now
	entry.ExpiresAt = now.Add(c.ttl)

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, schoolCacheKey, data, c.ttl).Err()
}

func (c *redisSchoolCache) Lookup(ctx context.Context, udise string) (*model.School, error) {
	entry, _, err := c.load(ctx)
	if err != nil || entry == nil {
		return nil, err
	}
	return entry.Find(udise), nil
}

func (c *redisSchoolCache) CleanupExpired(ctx context.Context) (bool, error) {
	_, cleared, err := c.load(ctx)
	return cleared, err
}

func (c *redisSchoolCache) Info(ctx context.Context) (*model.CacheInfo, error) {
	entry, _, err := c.load(ctx)
	if err != nil || entry == nil {
		return nil, err
	}
	return cacheInfo(entry, c.nowFunc()), nil
}

// mergeSchools appends newcomers whose UDISE code is not already present.
func mergeSchools(existing, incoming []model.School) []model.School {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s.UDISECode] = true
	}
	merged := existing
	for _, s := range incoming {
		if !seen[s.UDISECode] {
			merged = append(merged, s)
			seen[s.UDISECode] = true
		}
	}
	return merged
}

func cacheInfo(entry *model.CachedSchools, now time.Time) *model.CacheInfo {
	daysLeft := int(math.Ceil(entry.ExpiresAt.Sub(now).Hours() / 24))
	if daysLeft < 0 {
		daysLeft = 0
	}
	return &model.CacheInfo{
		Count:     len(entry.Schools),
		ExpiresAt: entry.ExpiresAt,
		DaysLeft:  daysLeft,
	}
}
