package store

import (
	"context"
	"sync"

	"sarvekshan/internal/model"
)

// In-memory store implementations, used in tests and when no REDIS_URI is
// configured. Values are copied on the way in and out so callers never share
// state with the store.

type memoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]model.SessionDraft
}

// NewMemoryDraftStore creates an in-memory draft store
func NewMemoryDraftStore() DraftStore {
	return &memoryDraftStore{drafts: make(map[string]model.SessionDraft)}
}

func (s *memoryDraftStore) Save(_ context.Context, draft *model.SessionDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := *draft
	d.Answers = draft.Answers.Clone()
	s.drafts[draft.SurveyID] = d
	return nil
}

func (s *memoryDraftStore) Get(_ context.Context, surveyID string) (*model.SessionDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[surveyID]
	if !ok {
		return nil, nil
	}
	d := draft
	d.Answers = draft.Answers.Clone()
	return &d, nil
}

func (s *memoryDraftStore) Delete(_ context.Context, surveyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, surveyID)
	return nil
}

type memoryResponseStore struct {
	mu        sync.Mutex
	responses map[string]model.SurveyResponse
}

// NewMemoryResponseStore creates an in-memory response store
func NewMemoryResponseStore() ResponseStore {
	return &memoryResponseStore{responses: make(map[string]model.SurveyResponse)}
}

func (s *memoryResponseStore) Save(_ context.Context, resp *model.SurveyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *resp
	r.Answers = resp.Answers.Clone()
	s.responses[resp.SurveyID] = r
	return nil
}

func (s *memoryResponseStore) Get(_ context.Context, surveyID string) (*model.SurveyResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.responses[surveyID]
	if !ok {
		return nil, nil
	}
	r := resp
	r.Answers = resp.Answers.Clone()
	return &r, nil
}

func (s *memoryResponseStore) List(_ context.Context) ([]*model.SurveyResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.SurveyResponse, 0, len(s.responses))
	for id := range s.responses {
		resp := s.responses[id]
		resp.Answers = resp.Answers.Clone()
		out = append(out, &resp)
	}
	sortResponses(out)
	return out, nil
}

func (s *memoryResponseStore) UpdateSyncStatus(_ context.Context, surveyID string, status model.SyncStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.responses[surveyID]
	if !ok {
		return ErrResponseNotFound
	}
	if err := checkSyncTransition(resp.SyncStatus, status); err != nil {
		return err
	}
	resp.SyncStatus = status
	s.responses[surveyID] = resp
	return nil
}

type memoryExportStore struct {
	mu      sync.Mutex
	exports map[string]model.Export
}

// NewMemoryExportStore creates an in-memory export store
func NewMemoryExportStore() ExportStore {
	return &memoryExportStore{exports: make(map[string]model.Export)}
}

func (s *memoryExportStore) Save(_ context.Context, export *model.Export) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exports[export.ID] = *export
	return nil
}

func (s *memoryExportStore) Get(_ context.Context, id string) (*model.Export, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	export, ok := s.exports[id]
	if !ok {
		return nil, nil
	}
	e := export
	return &e, nil
}

func (s *memoryExportStore) List(_ context.Context) ([]*model.Export, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Export, 0, len(s.exports))
	for id := range s.exports {
		export := s.exports[id]
		out = append(out, &export)
	}
	sortExports(out)
	return out, nil
}
