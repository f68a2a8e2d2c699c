package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/store"
)

func TestExportRendersDocument(t *testing.T) {
	responses := store.NewMemoryResponseStore()
	exports := store.NewMemoryExportStore()
	catalog := repository.NewMockCatalog()
	svc := NewExportService(responses, exports, catalog)
	ctx := context.Background()

	count := 240.0
	resp := &model.SurveyResponse{
		ID:          "resp-1",
		SurveyID:    "SCH_2025_001",
		SurveyName:  "Annual School Audit",
		UDISECode:   "12345678901",
		SchoolName:  "Govt Primary School Rajkot",
		Language:    "Hindi",
		SubmittedBy: "Field Inspector",
		Answers: model.Answers{
			"school_name":           {Text: "Govt Primary School Rajkot"},
			"infrastructure_rating": {Option: "Poor"},
			"infrastructure_issues": {Options: []string{"Leaking roof", "No electricity"}},
			"student_count":         {Number: &count},
		},
		CompletedAt: time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC),
		SyncStatus:  model.SyncPending,
	}
	if err := responses.Save(ctx, resp); err != nil {
		t.Fatalf("Save: %v", err)
	}

	export, err := svc.Export(ctx, "SCH_2025_001")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if export.FileName != "Survey_Response_SCH_2025_001_2025-06-10.txt" {
		t.Errorf("fileName = %q", export.FileName)
	}
	if export.Size != len(export.Content) {
		t.Errorf("size = %d, content length = %d", export.Size, len(export.Content))
	}

	for _, want := range []string{
		"Survey Response: Annual School Audit",
		"Survey ID: SCH_2025_001",
		"Completed: 2025-06-10 14:30:00",
		"Submitted By: Field Inspector",
		"School: Govt Primary School Rajkot (UDISE 12345678901)",
		"Language: Hindi",
		"Q: How would you rate the school infrastructure?\nA: Poor",
		"Q: Which infrastructure problems did you observe?\nA: Leaking roof, No electricity",
		"Q: Total number of enrolled students\nA: 240",
	} {
		if !strings.Contains(export.Content, want) {
			t.Errorf("content missing %q\n---\n%s", want, export.Content)
		}
	}

	// Questions render in definition order
	ratingIdx := strings.Index(export.Content, "rate the school infrastructure")
	issuesIdx := strings.Index(export.Content, "infrastructure problems")
	countIdx := strings.Index(export.Content, "enrolled students")
	if !(ratingIdx < issuesIdx && issuesIdx < countIdx) {
		t.Error("answers are not in question order")
	}

	// The export is kept for later listing
	stored, err := svc.Get(ctx, export.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored == nil || stored.Content != export.Content {
		t.Error("export copy not stored")
	}
}

func TestExportWithoutResponse(t *testing.T) {
	svc := NewExportService(store.NewMemoryResponseStore(), store.NewMemoryExportStore(), repository.NewMockCatalog())

	_, err := svc.Export(context.Background(), "SCH_2025_001")
	if err == nil {
		t.Fatal("expected error for missing response")
	}
	if err != store.ErrResponseNotFound {
		t.Errorf("err = %v, want ErrResponseNotFound", err)
	}
}
