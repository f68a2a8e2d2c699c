package model

import "time"

// SyncStatus tracks whether a completed response reached the remote system
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncError   SyncStatus = "sync-error"
)

// SurveyResponse is the terminal record of a submitted session.
// Immutable except for the pending -> synced|sync-error transition.
type SurveyResponse struct {
	ID          string     `json:"id"`
	SurveyID    string     `json:"surveyId"`
	SurveyName  string     `json:"surveyName"`
	UDISECode   string     `json:"udiseCode,omitempty"`
	SchoolName  string     `json:"schoolName,omitempty"`
	Language    string     `json:"language,omitempty"`
	SubmittedBy string     `json:"submittedBy,omitempty"`
	Answers     Answers    `json:"answers"`
	CompletedAt time.Time  `json:"completedAt"`
	SyncStatus  SyncStatus `json:"syncStatus"`
}

// Export is a locally stored copy of a rendered response document
type Export struct {
	ID         string    `json:"id"`
	SurveyID   string    `json:"surveyId"`
	SurveyName string    `json:"surveyName"`
	FileName   string    `json:"fileName"`
	Content    string    `json:"content"`
	Size       int       `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
}
