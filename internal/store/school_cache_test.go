package store

import (
	"context"
	"testing"
	"time"

	"sarvekshan/internal/model"
)

func newTestSchoolCache(start time.Time) (*memorySchoolCache, *time.Time) {
	now := start
	cache := NewMemorySchoolCache().(*memorySchoolCache)
	cache.nowFunc = func() time.Time { return now }
	return cache, &now
}

func testSchools() []model.School {
	return []model.School{
		{UDISECode: "12345678901", Name: "Govt Primary School Rajkot", District: "Rajkot"},
		{UDISECode: "23456789012", Name: "Govt Secondary School Ahmedabad", District: "Ahmedabad"},
	}
}

func TestSchoolCacheExpiryWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	cache, _ := newTestSchoolCache(start)
	ctx := context.Background()

	if err := cache.AddSchools(ctx, testSchools()); err != nil {
		t.Fatalf("AddSchools: %v", err)
	}

	info, err := cache.Info(ctx)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info == nil {
		t.Fatal("expected cache info, got nil")
	}
	if info.Count != 2 {
		t.Errorf("count = %d, want 2", info.Count)
	}
	wantExpiry := start.Add(7 * 24 * time.Hour)
	if !info.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expiresAt = %v, want %v", info.ExpiresAt, wantExpiry)
	}
	if info.DaysLeft != 7 {
		t.Errorf("daysLeft = %d, want 7", info.DaysLeft)
	}
}

func TestSchoolCacheLookup(t *testing.T) {
	cache, now := newTestSchoolCache(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if err := cache.AddSchools(ctx, testSchools()); err != nil {
		t.Fatalf("AddSchools: %v", err)
	}

	school, err := cache.Lookup(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if school == nil || school.Name != "Govt Primary School Rajkot" {
		t.Errorf("lookup hit = %+v, want Govt Primary School Rajkot", school)
	}

	school, err = cache.Lookup(ctx, "99999999999")
	if err != nil {
		t.Fatalf("Lookup miss: %v", err)
	}
	if school != nil {
		t.Errorf("expected miss, got %+v", school)
	}

	// Past the 7-day window every lookup misses
	*now = now.Add(7*24*time.Hour + time.Minute)
	school, err = cache.Lookup(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Lookup expired: %v", err)
	}
	if school != nil {
		t.Errorf("expected expired miss, got %+v", school)
	}
}

func TestSchoolCacheMergeDedupe(t *testing.T) {
	cache, _ := newTestSchoolCache(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if err := cache.AddSchools(ctx, testSchools()); err != nil {
		t.Fatalf("AddSchools: %v", err)
	}
	// Re-adding an existing code with a different name must not duplicate
	// or overwrite the stored record
	again := []model.School{
		{UDISECode: "12345678901", Name: "Renamed School"},
		{UDISECode: "34567890123", Name: "Govt High School Surat"},
	}
	if err := cache.AddSchools(ctx, again); err != nil {
		t.Fatalf("AddSchools again: %v", err)
	}

	info, err := cache.Info(ctx)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Count != 3 {
		t.Errorf("count = %d, want 3", info.Count)
	}

	school, err := cache.Lookup(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if school.Name != "Govt Primary School Rajkot" {
		t.Errorf("existing record overwritten: name = %q", school.Name)
	}
}

func TestSchoolCacheTTLResetOnAdd(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	cache, now := newTestSchoolCache(start)
	ctx := context.Background()

	if err := cache.AddSchools(ctx, testSchools()); err != nil {
		t.Fatalf("AddSchools: %v", err)
	}

	*now = now.Add(3 * 24 * time.Hour)
	if err := cache.AddSchools(ctx, []model.School{{UDISECode: "34567890123", Name: "Govt High School Surat"}}); err != nil {
		t.Fatalf("AddSchools: %v", err)
	}

	info, err := cache.Info(ctx)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	wantExpiry := now.Add(7 * 24 * time.Hour)
	if !info.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expiresAt = %v, want %v (window restarts on add)", info.ExpiresAt, wantExpiry)
	}
}

func TestSchoolCacheCleanupSignalsOnce(t *testing.T) {
	cache, now := newTestSchoolCache(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if err := cache.AddSchools(ctx, testSchools()); err != nil {
		t.Fatalf("AddSchools: %v", err)
	}

	cleared, err := cache.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if cleared {
		t.Error("cleanup reported a clear while the cache was fresh")
	}

	*now = now.Add(8 * 24 * time.Hour)
	cleared, err = cache.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if !cleared {
		t.Error("expected first cleanup after expiry to report a clear")
	}

	cleared, err = cache.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if cleared {
		t.Error("second cleanup must not report a clear again")
	}
}

func TestSchoolCacheInfoEmpty(t *testing.T) {
	cache, _ := newTestSchoolCache(time.Now())
	info, err := cache.Info(context.Background())
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil info on empty cache, got %+v", info)
	}
}
