package service

import (
	"context"
	"sync"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/store"
)

// fakeBroadcaster records events for assertions
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *fakeBroadcaster) Broadcast(event string, _ interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *fakeBroadcaster) count(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e == event {
			n++
		}
	}
	return n
}

// stubDirectory returns a fixed school or error for any resolve
type stubDirectory struct {
	school *model.School
	err    error
}

func (d *stubDirectory) Resolve(context.Context, string) (*model.School, error) {
	return d.school, d.err
}

// testEnv wires the service stack over in-memory stores and the demo catalog
type testEnv struct {
	network   *NetworkService
	validator *ValidatorService
	sessions  *SessionService
	cache     store.SchoolCache
	drafts    store.DraftStore
	responses store.ResponseStore
	catalog   repository.SurveyCatalog
}

func newTestEnv(cfg SessionConfig) *testEnv {
	catalog := repository.NewMockCatalog()
	directory := repository.NewMockDirectory()
	cache := store.NewMemorySchoolCache()
	drafts := store.NewMemoryDraftStore()
	responses := store.NewMemoryResponseStore()

	network := NewNetworkService()
	validator := NewValidatorService(directory, cache, network)
	sessions := NewSessionService(catalog, validator, network, drafts, responses, cfg)

	return &testEnv{
		network:   network,
		validator: validator,
		sessions:  sessions,
		cache:     cache,
		drafts:    drafts,
		responses: responses,
		catalog:   catalog,
	}
}
