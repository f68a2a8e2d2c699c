package repository

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"sarvekshan/internal/model"
)

const (
	directoryCacheDuration   = 10 * time.Minute
	directoryCleanupInterval = 30 * time.Minute
)

// cachedDirectory is a read-through cache in front of a directory so repeated
// validations of the same code do not re-hit the registry. Negative results
// are not cached; a school may be registered between attempts.
type cachedDirectory struct {
	next  SchoolDirectory
	cache *cache.Cache
}

// NewCachedDirectory wraps a directory with a short-lived lookup cache
func NewCachedDirectory(next SchoolDirectory) SchoolDirectory {
	return &cachedDirectory{
		next:  next,
		cache: cache.New(directoryCacheDuration, directoryCleanupInterval),
	}
}

func (d *cachedDirectory) Resolve(ctx context.Context, udise string) (*model.School, error) {
	if hit, ok := d.cache.Get(udise); ok {
		school := hit.(model.School)
		return &school, nil
	}
	school, err := d.next.Resolve(ctx, udise)
	if err != nil || school == nil {
		return school, err
	}
	d.cache.Set(udise, *school, cache.DefaultExpiration)
	return school, nil
}
