package service

import (
	"context"
	"errors"
	"testing"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/store"
)

func TestValidateFormatGate(t *testing.T) {
	env := newTestEnv(DefaultSessionConfig())
	ctx := context.Background()

	tests := []struct {
		name string
		code string
	}{
		{"too short", "1234567890"},
		{"too long", "123456789012"},
		{"letters", "1234567890a"},
		{"empty", ""},
		{"spaces", "12345 78901"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.validator.Validate(ctx, tt.code)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Validate(%q) err = %v, want ErrInvalidFormat", tt.code, err)
			}
		})
	}
}

func TestValidateOnline(t *testing.T) {
	env := newTestEnv(DefaultSessionConfig())
	ctx := context.Background()

	result, err := env.validator.Validate(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Status != StatusValidated {
		t.Fatalf("status = %s, want validated", result.Status)
	}
	if result.School == nil || result.School.UDISECode != "12345678901" {
		t.Errorf("school = %+v", result.School)
	}
	if result.FromCache {
		t.Error("directory hit must not be marked as cache hit")
	}

	// A well-formed code the directory does not know
	result, err = env.validator.Validate(ctx, "99999999999")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Status != StatusNotFound {
		t.Errorf("status = %s, want not_found", result.Status)
	}
	if result.School != nil {
		t.Errorf("school must be nil on not_found, got %+v", result.School)
	}
}

func TestValidateOffline(t *testing.T) {
	env := newTestEnv(DefaultSessionConfig())
	ctx := context.Background()
	env.network.SetOnline(false)

	// Empty cache: cannot tell whether the school exists
	result, err := env.validator.Validate(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Status != StatusNeedsNetwork {
		t.Errorf("status = %s, want needs_network", result.Status)
	}

	// Cached school validates offline
	err = env.cache.AddSchools(ctx, []model.School{
		{UDISECode: "12345678901", Name: "Govt Primary School Rajkot"},
	})
	if err != nil {
		t.Fatalf("AddSchools: %v", err)
	}
	result, err = env.validator.Validate(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Status != StatusValidated {
		t.Fatalf("status = %s, want validated", result.Status)
	}
	if !result.FromCache {
		t.Error("offline hit must be marked as cache hit")
	}

	// Cached but unknown code still needs the network
	result, err = env.validator.Validate(ctx, "99999999999")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Status != StatusNeedsNetwork {
		t.Errorf("status = %s, want needs_network", result.Status)
	}
}

func TestValidateDirectoryUnreachableFallsBackToCache(t *testing.T) {
	network := NewNetworkService()
	cache := store.NewMemorySchoolCache()
	directory := &stubDirectory{err: errors.New("connection refused")}
	validator := NewValidatorService(directory, cache, network)
	ctx := context.Background()

	err := cache.AddSchools(ctx, []model.School{
		{UDISECode: "12345678901", Name: "Govt Primary School Rajkot"},
	})
	if err != nil {
		t.Fatalf("AddSchools: %v", err)
	}

	result, err := validator.Validate(ctx, "12345678901")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Status != StatusValidated || !result.FromCache {
		t.Errorf("result = %+v, want validated from cache", result)
	}

	result, err = validator.Validate(ctx, "99999999999")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Status != StatusNotFound {
		t.Errorf("status = %s, want not_found", result.Status)
	}
}

var _ repository.SchoolDirectory = (*stubDirectory)(nil)
