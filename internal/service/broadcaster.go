package service

// Broadcaster interface for pushing events to the UI shell (avoids import cycle)
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Event names pushed over the WebSocket hub
const (
	EventNetworkChanged     = "network_changed"
	EventDownloadProgress   = "download_progress"
	EventSyncProgress       = "sync_progress"
	EventSchoolsCached      = "schools_cached"
	EventSchoolCacheExpired = "school_cache_expired"
	EventSurveySubmitted    = "survey_submitted"
)
