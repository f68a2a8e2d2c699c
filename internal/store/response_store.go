package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"sarvekshan/internal/model"
)

var (
	// ErrResponseNotFound is returned by UpdateSyncStatus for an unknown survey id.
	ErrResponseNotFound = errors.New("response not found")
	// ErrInvalidSyncTransition rejects any status change except pending -> synced|sync-error.
	ErrInvalidSyncTransition = errors.New("invalid sync status transition")
)

// ResponseStore persists finalized survey responses, one per survey id
// (latest response wins; history reads the stored set).
type ResponseStore interface {
	// Save upserts the response under its survey id.
	Save(ctx context.Context, resp *model.SurveyResponse) error
	// Get returns the stored response, or (nil, nil) when none exists.
	Get(ctx context.Context, surveyID string) (*model.SurveyResponse, error)
	// List returns all stored responses, newest first.
	List(ctx context.Context) ([]*model.SurveyResponse, error)
	// UpdateSyncStatus transitions pending -> synced|sync-error. A synced
	// response is never reverted here; only a fresh Save replaces it.
	UpdateSyncStatus(ctx context.Context, surveyID string, status model.SyncStatus) error
}

const responsesKey = "responses"

type redisResponseStore struct {
	client *redis.Client
}

// NewRedisResponseStore creates a redis-backed response store
func NewRedisResponseStore(client *redis.Client) ResponseStore {
	return &redisResponseStore{client: client}
}

func (s *redisResponseStore) Save(ctx context.Context, resp *model.SurveyResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, responsesKey, resp.SurveyID, data).Err()
}

func (s *redisResponseStore) Get(ctx context.Context, surveyID string) (*model.SurveyResponse, error) {
	data, err := s.client.HGet(ctx, responsesKey, surveyID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var resp model.SurveyResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *redisResponseStore) List(ctx context.Context) ([]*model.SurveyResponse, error) {
	data, err := s.client.HGetAll(ctx, responsesKey).Result()
	if err != nil {
		return nil, err
	}
	responses := make([]*model.SurveyResponse, 0, len(data))
	for _, jsonStr := range data {
		var resp model.SurveyResponse
		if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
			continue
		}
		responses = append(responses, &resp)
	}
	sortResponses(responses)
	return responses, nil
}

func (s *redisResponseStore) UpdateSyncStatus(ctx context.Context, surveyID string, status model.SyncStatus) error {
	resp, err := s.Get(ctx, surveyID)
	if err != nil {
		return err
	}
	if resp == nil {
		return ErrResponseNotFound
	}
	if err := checkSyncTransition(resp.SyncStatus, status); err != nil {
		return err
	}
	resp.SyncStatus = status
	return s.Save(ctx, resp)
}

func checkSyncTransition(from, to model.SyncStatus) error {
	if from != model.SyncPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidSyncTransition, from, to)
	}
	if to != model.SyncSynced && to != model.SyncError {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidSyncTransition, from, to)
	}
	return nil
}

func sortResponses(responses []*model.SurveyResponse) {
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].CompletedAt.After(responses[j].CompletedAt)
	})
}
