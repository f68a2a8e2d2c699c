package repository

import (
	"context"
	"sort"
	"time"

	"sarvekshan/internal/model"
)

type mockCatalog struct {
	surveys map[string]model.Survey
}

// NewMockCatalog creates an in-memory catalog with the demo surveys.
// Used when no MONGO_URI is configured.
func NewMockCatalog() SurveyCatalog {
	m := make(map[string]model.Survey)
	for _, s := range DemoSurveys() {
		m[s.ID] = s
	}
	return &mockCatalog{surveys: m}
}

// NewStaticCatalog creates an in-memory catalog over the given surveys.
func NewStaticCatalog(surveys []model.Survey) SurveyCatalog {
	m := make(map[string]model.Survey, len(surveys))
	for _, s := range surveys {
		m[s.ID] = s
	}
	return &mockCatalog{surveys: m}
}

func (c *mockCatalog) GetByID(_ context.Context, id string) (*model.Survey, error) {
	survey, ok := c.surveys[id]
	if !ok {
		return nil, nil
	}
	return &survey, nil
}

func (c *mockCatalog) List(_ context.Context) ([]*model.Survey, error) {
	out := make([]*model.Survey, 0, len(c.surveys))
	for id := range c.surveys {
		s := c.surveys[id]
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DemoSurveys returns the demo questionnaire set, also used by cmd/seed.
func DemoSurveys() []model.Survey {
	created := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return []model.Survey{
		{
			ID:          "SCH_2025_001",
			Name:        "Annual School Audit",
			Description: "Comprehensive assessment of school infrastructure, teaching quality, and student outcomes",
			Type:        model.SurveyTypeSchool,
			Access:      model.AccessInSchool,
			Languages:   []string{"Hindi", "English"},
			Questions: []model.Question{
				{
					ID:       "school_name",
					Type:     model.QuestionTypeText,
					Prompt:   "What is the name of the school?",
					Required: true,
				},
				{
					ID:       "infrastructure_rating",
					Type:     model.QuestionTypeRadio,
					Prompt:   "How would you rate the school infrastructure?",
					Required: true,
					Options:  []string{"Excellent", "Good", "Fair", "Poor"},
				},
				{
					ID:            "infrastructure_issues",
					Type:          model.QuestionTypeCheckbox,
					Prompt:        "Which infrastructure problems did you observe?",
					Required:      true,
					Options:       []string{"Leaking roof", "Broken furniture", "No electricity", "Unsafe building", "Other"},
					ParentID:      "infrastructure_rating",
					TriggerValues: []string{"Fair", "Poor"},
				},
				{
					ID:       "facilities",
					Type:     model.QuestionTypeCheckbox,
					Prompt:   "Which facilities are available? (Select all that apply)",
					Required: false,
					Options:  []string{"Library", "Computer Lab", "Science Lab", "Playground", "Toilet", "Drinking Water"},
				},
				{
					ID:       "student_count",
					Type:     model.QuestionTypeNumber,
					Prompt:   "Total number of enrolled students",
					Required: true,
				},
				{
					ID:       "inspection_date",
					Type:     model.QuestionTypeDate,
					Prompt:   "Date of the physical inspection",
					Required: true,
				},
				{
					ID:       "observations",
					Type:     model.QuestionTypeTextarea,
					Prompt:   "Additional observations and recommendations",
					Required: false,
				},
			},
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:          "HLT_2025_002",
			Name:        "Primary Health Center Survey",
			Description: "Evaluation of healthcare facilities and service delivery in rural areas",
			Type:        model.SurveyTypeHealth,
			Access:      model.AccessOpen,
			Languages:   []string{"Hindi", "Gujarati"},
			Questions: []model.Question{
				{
					ID:       "center_name",
					Type:     model.QuestionTypeText,
					Prompt:   "Name of the health center",
					Required: true,
				},
				{
					ID:       "staff_table",
					Type:     model.QuestionTypeTable,
					Prompt:   "Sanctioned vs present staff by role",
					Required: false,
				},
				{
					ID:       "service_rating",
					Type:     model.QuestionTypeRadio,
					Prompt:   "Overall service delivery rating",
					Required: true,
					Options:  []string{"Excellent", "Good", "Fair", "Poor"},
				},
				{
					ID:       "facility_photo",
					Type:     model.QuestionTypeFile,
					Prompt:   "Photograph of the facility entrance",
					Required: false,
				},
			},
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:          "INF_2025_003",
			Name:        "Water & Sanitation Assessment",
			Description: "Infrastructure survey focusing on water supply and sanitation facilities",
			Type:        model.SurveyTypeInfrastructure,
			Access:      model.AccessOpen,
			Languages:   []string{"English"},
			Questions: []model.Question{
				{
					ID:       "village_name",
					Type:     model.QuestionTypeText,
					Prompt:   "Village or ward name",
					Required: true,
				},
				{
					ID:       "water_source",
					Type:     model.QuestionTypeRadio,
					Prompt:   "Primary drinking water source",
					Required: true,
					Options:  []string{"Piped supply", "Hand pump", "Well", "Tanker"},
				},
				{
					ID:       "interview_recording",
					Type:     model.QuestionTypeVoice,
					Prompt:   "Record a short interview with a resident",
					Required: false,
				},
			},
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}
