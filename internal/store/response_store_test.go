package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"sarvekshan/internal/model"
)

func sampleResponse(surveyID string, completed time.Time) *model.SurveyResponse {
	rating := 4.0
	return &model.SurveyResponse{
		ID:          "resp-" + surveyID,
		SurveyID:    surveyID,
		SurveyName:  "School Infrastructure Assessment",
		UDISECode:   "12345678901",
		SchoolName:  "Govt Primary School Rajkot",
		Language:    "Hindi",
		SubmittedBy: "Field Inspector",
		Answers: model.Answers{
			"head_name":  {Text: "R. Sharma"},
			"enrollment": {Number: &rating},
			"facilities": {Options: []string{"Library", "Playground"}},
		},
		CompletedAt: completed,
		SyncStatus:  model.SyncPending,
	}
}

func TestResponseStoreUpsert(t *testing.T) {
	s := NewMemoryResponseStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	first := sampleResponse("SCH_2025_001", base)
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A resubmission replaces the stored response for the same survey
	second := sampleResponse("SCH_2025_001", base.Add(time.Hour))
	second.ID = "resp-2"
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(List) = %d, want 1", len(all))
	}
	if all[0].ID != "resp-2" {
		t.Errorf("stored id = %s, want resp-2", all[0].ID)
	}
}

func TestResponseStoreAnswersRoundtrip(t *testing.T) {
	s := NewMemoryResponseStore()
	ctx := context.Background()

	resp := sampleResponse("SCH_2025_001", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	if err := s.Save(ctx, resp); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the caller's copy must not reach the store
	resp.Answers["facilities"].Options[0] = "mutated"

	got, err := s.Get(ctx, "SCH_2025_001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored response")
	}
	if got.Answers["facilities"].Options[0] != "Library" {
		t.Error("store shares answer slices with the caller")
	}
	want := sampleResponse("SCH_2025_001", got.CompletedAt).Answers
	if !reflect.DeepEqual(got.Answers, want) {
		t.Errorf("answers = %+v, want %+v", got.Answers, want)
	}
}

func TestResponseStoreSyncTransitions(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    model.SyncStatus
		to      model.SyncStatus
		wantErr error
	}{
		{"pending to synced", model.SyncPending, model.SyncSynced, nil},
		{"pending to sync-error", model.SyncPending, model.SyncError, nil},
		{"pending to pending", model.SyncPending, model.SyncPending, ErrInvalidSyncTransition},
		{"synced to pending", model.SyncSynced, model.SyncPending, ErrInvalidSyncTransition},
		{"synced to synced", model.SyncSynced, model.SyncSynced, ErrInvalidSyncTransition},
		{"sync-error to synced", model.SyncError, model.SyncSynced, ErrInvalidSyncTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryResponseStore()
			resp := sampleResponse("SCH_2025_001", base)
			resp.SyncStatus = tt.from
			if err := s.Save(ctx, resp); err != nil {
				t.Fatalf("Save: %v", err)
			}

			err := s.UpdateSyncStatus(ctx, "SCH_2025_001", tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateSyncStatus(%s -> %s) = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}

			got, err := s.Get(ctx, "SCH_2025_001")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			wantStatus := tt.from
			if tt.wantErr == nil {
				wantStatus = tt.to
			}
			if got.SyncStatus != wantStatus {
				t.Errorf("status = %s, want %s", got.SyncStatus, wantStatus)
			}
		})
	}
}

func TestResponseStoreUpdateUnknown(t *testing.T) {
	s := NewMemoryResponseStore()
	err := s.UpdateSyncStatus(context.Background(), "missing", model.SyncSynced)
	if !errors.Is(err, ErrResponseNotFound) {
		t.Errorf("err = %v, want ErrResponseNotFound", err)
	}
}

func TestResponseStoreListNewestFirst(t *testing.T) {
	s := NewMemoryResponseStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	if err := s.Save(ctx, sampleResponse("SCH_2025_001", base)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, sampleResponse("HLT_2025_002", base.Add(2*time.Hour))); err != nil {
		t.Fatalf("Save: %v", err)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(List) = %d, want 2", len(all))
	}
	if all[0].SurveyID != "HLT_2025_002" || all[1].SurveyID != "SCH_2025_001" {
		t.Errorf("order = [%s, %s], want newest first", all[0].SurveyID, all[1].SurveyID)
	}
}

func TestDraftStoreRoundtrip(t *testing.T) {
	s := NewMemoryDraftStore()
	ctx := context.Background()

	draft := &model.SessionDraft{
		SurveyID:  "SCH_2025_001",
		Stage:     model.StageAnswering,
		StepIndex: 2,
		Language:  "Hindi",
		Answers:   model.Answers{"head_name": {Text: "R. Sharma"}},
		UpdatedAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := s.Save(ctx, draft); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "SCH_2025_001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.StepIndex != 2 || got.Stage != model.StageAnswering {
		t.Fatalf("draft = %+v", got)
	}

	if err := s.Delete(ctx, "SCH_2025_001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = s.Get(ctx, "SCH_2025_001")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}
