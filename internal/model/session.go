package model

import "time"

// SessionStage is the current stage of a survey attempt
type SessionStage string

const (
	StageNotStarted     SessionStage = "not_started"
	StageSchoolCheck    SessionStage = "school_check"
	StageLanguageSelect SessionStage = "language_select"
	StageAnswering      SessionStage = "answering"
	StageReview         SessionStage = "review"
	StageSubmitted      SessionStage = "submitted"
	StageDiscarded      SessionStage = "discarded"
)

// SessionDraft is the persisted snapshot of an in-progress survey attempt.
// Written on a debounce after every answer mutation so a killed app can
// resume; cleared on submit or discard.
type SessionDraft struct {
	SurveyID   string       `json:"surveyId"`
	Stage      SessionStage `json:"stage"`
	StepIndex  int          `json:"stepIndex"`
	UDISECode  string       `json:"udiseCode,omitempty"`
	SchoolName string       `json:"schoolName,omitempty"`
	Language   string       `json:"language,omitempty"`
	Answers    Answers      `json:"answers"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
