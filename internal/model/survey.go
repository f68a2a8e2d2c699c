package model

import "time"

// SurveyType is the subject-matter category shown on survey cards
type SurveyType string

const (
	SurveyTypeSchool         SurveyType = "School"
	SurveyTypeHealth         SurveyType = "Health"
	SurveyTypeInfrastructure SurveyType = "Infrastructure"
)

// AccessMode controls whether a survey needs school context before answering
type AccessMode string

const (
	// AccessInSchool requires UDISE validation before the questionnaire starts
	AccessInSchool AccessMode = "in_school"
	// AccessOpen is not bound to a specific school
	AccessOpen AccessMode = "open"
)

// Survey is a questionnaire definition from the catalog
type Survey struct {
	ID          string     `json:"id" bson:"_id"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description" bson:"description"`
	Type        SurveyType `json:"type" bson:"type"`
	Access      AccessMode `json:"access" bson:"access"`
	Languages   []string   `json:"languages" bson:"languages"`
	Questions   []Question `json:"questions" bson:"questions"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// SchoolBound reports whether answering requires a validated school context.
func (s *Survey) SchoolBound() bool {
	return s.Access == AccessInSchool
}

// SingleLanguage reports whether the survey defines exactly one language.
func (s *Survey) SingleLanguage() bool {
	return len(s.Languages) == 1
}

// HasLanguage reports whether lang is one of the survey's languages.
func (s *Survey) HasLanguage(lang string) bool {
	for _, l := range s.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// QuestionByID returns the question with the given id, or nil.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
