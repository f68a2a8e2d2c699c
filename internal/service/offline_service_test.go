package service

import (
	"context"
	"errors"
	"testing"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/store"
)

func newOfflineService() (*OfflineService, *NetworkService, store.SchoolCache) {
	catalog := repository.NewMockCatalog()
	cache := store.NewMemorySchoolCache()
	network := NewNetworkService()
	svc := NewOfflineService(catalog, cache, network)
	svc.downloadDelay = 0
	return svc, network, cache
}

func TestDownloadSurvey(t *testing.T) {
	svc, network, _ := newOfflineService()
	b := &fakeBroadcaster{}
	svc.SetBroadcaster(b)
	ctx := context.Background()

	if err := svc.DownloadSurvey(ctx, "SCH_2025_001"); err != nil {
		t.Fatalf("DownloadSurvey: %v", err)
	}

	network.SetOnline(false)
	if !network.IsAvailableOffline("SCH_2025_001") {
		t.Error("downloaded survey must be available offline")
	}
	if b.count(EventDownloadProgress) != 3 {
		t.Errorf("download_progress events = %d, want 3", b.count(EventDownloadProgress))
	}
}

func TestDownloadSurveyRequiresNetwork(t *testing.T) {
	svc, network, _ := newOfflineService()
	network.SetOnline(false)

	err := svc.DownloadSurvey(context.Background(), "SCH_2025_001")
	if !errors.Is(err, ErrNetworkRequired) {
		t.Errorf("err = %v, want ErrNetworkRequired", err)
	}
}

func TestDownloadSurveyUnknown(t *testing.T) {
	svc, _, _ := newOfflineService()

	err := svc.DownloadSurvey(context.Background(), "NOPE_2025_999")
	if !errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("err = %v, want ErrSurveyNotFound", err)
	}
}

func TestDownloadSurveyCancelled(t *testing.T) {
	svc, network, _ := newOfflineService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.DownloadSurvey(ctx, "SCH_2025_001")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	network.SetOnline(false)
	if network.IsAvailableOffline("SCH_2025_001") {
		t.Error("cancelled download must not mark the survey available")
	}
}

func TestCacheSchools(t *testing.T) {
	svc, _, _ := newOfflineService()
	b := &fakeBroadcaster{}
	svc.SetBroadcaster(b)
	ctx := context.Background()

	info, err := svc.CacheSchools(ctx, repository.DemoSchools())
	if err != nil {
		t.Fatalf("CacheSchools: %v", err)
	}
	if info.Count != 3 {
		t.Errorf("count = %d, want 3", info.Count)
	}
	if info.DaysLeft != 7 {
		t.Errorf("daysLeft = %d, want 7", info.DaysLeft)
	}
	if b.count(EventSchoolsCached) != 1 {
		t.Errorf("schools_cached events = %d, want 1", b.count(EventSchoolsCached))
	}

	if _, err := svc.CacheSchools(ctx, nil); err == nil {
		t.Error("empty snapshot must be rejected")
	}
}

func TestForegroundClearsExpiredCache(t *testing.T) {
	catalog := repository.NewMockCatalog()
	network := NewNetworkService()

	// expiredCache stands in for a cache whose window lapsed while the
	// app was backgrounded
	cache := &staleCache{}
	svc := NewOfflineService(catalog, cache, network)
	svc.downloadDelay = 0
	b := &fakeBroadcaster{}
	svc.SetBroadcaster(b)

	// Offline: never touch the cache
	network.SetOnline(false)
	svc.Foreground(context.Background())
	if cache.cleanups != 0 {
		t.Error("offline foreground must not run cleanup")
	}

	network.SetOnline(true)
	svc.Foreground(context.Background())
	if cache.cleanups != 1 {
		t.Errorf("cleanups = %d, want 1", cache.cleanups)
	}
	if b.count(EventSchoolCacheExpired) != 1 {
		t.Errorf("school_cache_expired events = %d, want 1", b.count(EventSchoolCacheExpired))
	}
}

// staleCache reports a clear on every cleanup
type staleCache struct {
	cleanups int
}

func (c *staleCache) AddSchools(context.Context, []model.School) error { return nil }
func (c *staleCache) Lookup(context.Context, string) (*model.School, error) {
	return nil, nil
}
func (c *staleCache) CleanupExpired(context.Context) (bool, error) {
	c.cleanups++
	return true, nil
}
func (c *staleCache) Info(context.Context) (*model.CacheInfo, error) { return nil, nil }
