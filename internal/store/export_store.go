package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/redis/go-redis/v9"

	"sarvekshan/internal/model"
)

// ExportStore keeps local copies of rendered response documents so they stay
// downloadable offline.
type ExportStore interface {
	Save(ctx context.Context, export *model.Export) error
	// Get returns the export, or (nil, nil) when unknown.
	Get(ctx context.Context, id string) (*model.Export, error)
	// List returns all exports, newest first.
	List(ctx context.Context) ([]*model.Export, error)
}

const exportsKey = "exports"

type redisExportStore struct {
	client *redis.Client
}

// NewRedisExportStore creates a redis-backed export store
func NewRedisExportStore(client *redis.Client) ExportStore {
	return &redisExportStore{client: client}
}

func (s *redisExportStore) Save(ctx context.Context, export *model.Export) error {
	data, err := json.Marshal(export)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, exportsKey, export.ID, data).Err()
}

func (s *redisExportStore) Get(ctx context.Context, id string) (*model.Export, error) {
	data, err := s.client.HGet(ctx, exportsKey, id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var export model.Export
	if err := json.Unmarshal([]byte(data), &export); err != nil {
		return nil, err
	}
	return &export, nil
}

func (s *redisExportStore) List(ctx context.Context) ([]*model.Export, error) {
	data, err := s.client.HGetAll(ctx, exportsKey).Result()
	if err != nil {
		return nil, err
	}
	exports := make([]*model.Export, 0, len(data))
	for _, jsonStr := range data {
		var export model.Export
		if err := json.Unmarshal([]byte(jsonStr), &export); err != nil {
			continue
		}
		exports = append(exports, &export)
	}
	sortExports(exports)
	return exports, nil
}

func sortExports(exports []*model.Export) {
	sort.Slice(exports, func(i, j int) bool {
		return exports[i].CreatedAt.After(exports[j].CreatedAt)
	})
}
