package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/store"
)

var ErrNetworkRequired = errors.New("network connection required")

// OfflineService prepares the device for disconnected field work: it
// downloads survey definitions and the school directory snapshot, and
// evicts the snapshot once it goes stale.
type OfflineService struct {
	catalog repository.SurveyCatalog
	cache   store.SchoolCache
	network *NetworkService

	broadcaster Broadcaster

	// downloadDelay paces progress events so the shell can render them.
	// Zeroed in tests.
	downloadDelay time.Duration
}

// NewOfflineService creates a new offline service
func NewOfflineService(catalog repository.SurveyCatalog, cache store.SchoolCache, network *NetworkService) *OfflineService {
	return &OfflineService{
		catalog:       catalog,
		cache:         cache,
		network:       network,
		downloadDelay: 150 * time.Millisecond,
	}
}

// SetBroadcaster sets the broadcaster for offline events
func (s *OfflineService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// DownloadSurvey fetches a survey definition and marks it usable offline.
// Progress is broadcast in stages; cancelling the context leaves the survey
// unmarked.
func (s *OfflineService) DownloadSurvey(ctx context.Context, surveyID string) error {
	if !s.network.IsOnline() {
		return ErrNetworkRequired
	}

	survey, err := s.catalog.GetByID(ctx, surveyID)
	if err != nil {
		return fmt.Errorf("fetching survey %s: %w", surveyID, err)
	}
	if survey == nil {
		return ErrSurveyNotFound
	}

	stages := []string{"definition", "questions", "media"}
	for i, stage := range stages {
		if err := s.pace(ctx); err != nil {
			return err
		}
		s.progress(surveyID, stage, (i+1)*100/len(stages))
	}

	s.network.MarkDownloaded(surveyID)
	return nil
}

func (s *OfflineService) pace(ctx context.Context) error {
	if s.downloadDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.downloadDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *OfflineService) progress(surveyID, stage string, percent int) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Broadcast(EventDownloadProgress, map[string]interface{}{
		"surveyId": surveyID,
		"stage":    stage,
		"percent":  percent,
	})
}

// CacheSchools stores a directory snapshot for offline UDISE validation and
// reports the resulting cache window.
func (s *OfflineService) CacheSchools(ctx context.Context, schools []model.School) (*model.CacheInfo, error) {
	if len(schools) == 0 {
		return nil, errors.New("no schools to cache")
	}
	if err := s.cache.AddSchools(ctx, schools); err != nil {
		return nil, fmt.Errorf("caching schools: %w", err)
	}
	info, err := s.cache.Info(ctx)
	if err != nil {
		return nil, err
	}
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(EventSchoolsCached, info)
	}
	return info, nil
}

// CacheInfo reports the current school cache window.
func (s *OfflineService) CacheInfo(ctx context.Context) (*model.CacheInfo, error) {
	return s.cache.Info(ctx)
}

// Foreground runs the app-resume housekeeping pass: while online, a stale
// school cache is cleared so the next validation fetches fresh data.
func (s *OfflineService) Foreground(ctx context.Context) {
	if !s.network.IsOnline() {
		return
	}
	cleared, err := s.cache.CleanupExpired(ctx)
	if err != nil {
		log.Printf("school cache cleanup failed: %v", err)
		return
	}
	if cleared && s.broadcaster != nil {
		s.broadcaster.Broadcast(EventSchoolCacheExpired, nil)
	}
}
