package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/store"
)

// ExportService renders submitted responses as shareable text documents and
// keeps a copy of every generated export.
type ExportService struct {
	responses store.ResponseStore
	exports   store.ExportStore
	catalog   repository.SurveyCatalog
}

// NewExportService creates a new export service
func NewExportService(responses store.ResponseStore, exports store.ExportStore, catalog repository.SurveyCatalog) *ExportService {
	return &ExportService{
		responses: responses,
		exports:   exports,
		catalog:   catalog,
	}
}

// Export renders the response for a survey as a text document, stores a
// copy, and returns it.
func (s *ExportService) Export(ctx context.Context, surveyID string) (*model.Export, error) {
	resp, err := s.responses.Get(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, store.ErrResponseNotFound
	}

	survey, err := s.catalog.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("loading survey %s: %w", surveyID, err)
	}

	content := renderResponse(resp, survey)
	export := &model.Export{
		ID:         uuid.New().String(),
		SurveyID:   surveyID,
		SurveyName: resp.SurveyName,
		FileName:   fmt.Sprintf("Survey_Response_%s_%s.txt", surveyID, resp.CompletedAt.Format("2006-01-02")),
		Content:    content,
		Size:       len(content),
		CreatedAt:  resp.CompletedAt,
	}
	if err := s.exports.Save(ctx, export); err != nil {
		return nil, fmt.Errorf("saving export: %w", err)
	}
	return export, nil
}

// Get returns a stored export by id.
func (s *ExportService) Get(ctx context.Context, id string) (*model.Export, error) {
	return s.exports.Get(ctx, id)
}

// List returns stored exports, newest first.
func (s *ExportService) List(ctx context.Context) ([]*model.Export, error) {
	return s.exports.List(ctx)
}

// renderResponse produces the export document. Questions follow the survey
// definition order; answers to questions no longer in the definition are
// appended at the end so nothing collected is lost.
func renderResponse(resp *model.SurveyResponse, survey *model.Survey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Survey Response: %s\n", resp.SurveyName)
	fmt.Fprintf(&b, "Survey ID: %s\n", resp.SurveyID)
	fmt.Fprintf(&b, "Completed: %s\n", resp.CompletedAt.Format("2006-01-02 15:04:05"))
	if resp.SubmittedBy != "" {
		fmt.Fprintf(&b, "Submitted By: %s\n", resp.SubmittedBy)
	}
	if resp.UDISECode != "" {
		fmt.Fprintf(&b, "School: %s (UDISE %s)\n", resp.SchoolName, resp.UDISECode)
	}
	if resp.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", resp.Language)
	}
	b.WriteString("\n")

	rendered := make(map[string]bool, len(resp.Answers))
	if survey != nil {
		for _, q := range survey.Questions {
			value, ok := resp.Answers[q.ID]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", q.Prompt, formatAnswer(value))
			rendered[q.ID] = true
		}
	}

	var orphans []string
	for id := range resp.Answers {
		if !rendered[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", id, formatAnswer(resp.Answers[id]))
	}
	return b.String()
}

func formatAnswer(v model.AnswerValue) string {
	switch {
	case v.Number != nil:
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	case v.Option != "":
		return v.Option
	case len(v.Options) > 0:
		return strings.Join(v.Options, ", ")
	case len(v.Table) > 0:
		keys := make([]string, 0, len(v.Table))
		for k := range v.Table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v.Table[k]))
		}
		return strings.Join(parts, "; ")
	case v.FileRef != "":
		return fmt.Sprintf("[file: %s]", v.FileRef)
	case v.VoiceRef != "":
		return fmt.Sprintf("[voice note: %s]", v.VoiceRef)
	case v.Text != "":
		return v.Text
	}
	return "(no answer)"
}
