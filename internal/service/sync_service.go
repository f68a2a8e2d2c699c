package service

import (
	"context"
	"log"
	"time"

	"sarvekshan/internal/model"
	"sarvekshan/internal/store"
)

// Transmitter ships a finalized response to the collection backend.
type Transmitter interface {
	Transmit(ctx context.Context, resp *model.SurveyResponse) error
}

// TransmitterFunc adapts a function to the Transmitter interface
type TransmitterFunc func(ctx context.Context, resp *model.SurveyResponse) error

func (f TransmitterFunc) Transmit(ctx context.Context, resp *model.SurveyResponse) error {
	return f(ctx, resp)
}

// NewSimulatedTransmitter returns a transmitter that mimics a slow uplink
// and always succeeds. Used until a real collection endpoint is configured.
func NewSimulatedTransmitter(delay time.Duration) Transmitter {
	return TransmitterFunc(func(ctx context.Context, _ *model.SurveyResponse) error {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	})
}

// SyncService uploads pending responses whenever the device is online.
// Each response moves from pending to synced or sync-error exactly once.
type SyncService struct {
	responses   store.ResponseStore
	network     *NetworkService
	transmitter Transmitter

	broadcaster Broadcaster
	interval    time.Duration
}

// NewSyncService creates a new sync service
func NewSyncService(responses store.ResponseStore, network *NetworkService, transmitter Transmitter, interval time.Duration) *SyncService {
	return &SyncService{
		responses:   responses,
		network:     network,
		transmitter: transmitter,
		interval:    interval,
	}
}

// SetBroadcaster sets the broadcaster for sync events
func (s *SyncService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Run loops until the context is cancelled, attempting a sync pass every
// interval while the device is online.
func (s *SyncService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.network.IsOnline() {
				continue
			}
			if err := s.SyncNow(ctx); err != nil && ctx.Err() == nil {
				log.Printf("sync pass failed: %v", err)
			}
		}
	}
}

// SyncNow uploads every pending response once. Per-response transmit
// failures mark that response sync-error and the pass continues.
func (s *SyncService) SyncNow(ctx context.Context) error {
	all, err := s.responses.List(ctx)
	if err != nil {
		return err
	}

	var pending []*model.SurveyResponse
	for _, resp := range all {
		if resp.SyncStatus == model.SyncPending {
			pending = append(pending, resp)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	for i, resp := range pending {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.progress(resp.ID, i, len(pending))

		status := model.SyncSynced
		if err := s.transmitter.Transmit(ctx, resp); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("transmit failed for response %s: %v", resp.ID, err)
			status = model.SyncError
		}
		if err := s.responses.UpdateSyncStatus(ctx, resp.SurveyID, status); err != nil {
			log.Printf("sync status update failed for response %s: %v", resp.ID, err)
		}
	}
	s.progress("", len(pending), len(pending))
	return nil
}

func (s *SyncService) progress(responseID string, done, total int) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Broadcast(EventSyncProgress, map[string]interface{}{
		"responseId": responseID,
		"done":       done,
		"total":      total,
	})
}
