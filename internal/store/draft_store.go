package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sarvekshan/internal/model"
)

// DraftStore persists in-progress session snapshots keyed by survey id.
// Writes are best-effort durability against app kill, not a sync mechanism;
// last write wins.
type DraftStore interface {
	Save(ctx context.Context, draft *model.SessionDraft) error
	// Get returns the draft, or (nil, nil) when none exists.
	Get(ctx context.Context, surveyID string) (*model.SessionDraft, error)
	Delete(ctx context.Context, surveyID string) error
}

type redisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore creates a redis-backed draft store
func NewRedisDraftStore(client *redis.Client) DraftStore {
	return &redisDraftStore{
		client: client,
		ttl:    30 * 24 * time.Hour, // abandoned drafts age out eventually
	}
}

func (s *redisDraftStore) key(surveyID string) string {
	return fmt.Sprintf("draft:%s", surveyID)
}

func (s *redisDraftStore) Save(ctx context.Context, draft *model.SessionDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(draft.SurveyID), data, s.ttl).Err()
}

func (s *redisDraftStore) Get(ctx context.Context, surveyID string) (*model.SessionDraft, error) {
	data, err := s.client.Get(ctx, s.key(surveyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft model.SessionDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		// A corrupted draft is dropped rather than surfaced; the inspector
		// starts the survey over instead of being stuck.
		s.client.Del(ctx, s.key(surveyID))
		return nil, nil
	}
	return &draft, nil
}

func (s *redisDraftStore) Delete(ctx context.Context, surveyID string) error {
	return s.client.Del(ctx, s.key(surveyID)).Err()
}
