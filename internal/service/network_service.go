package service

import (
	"sort"
	"sync"
)

// NetworkService holds the process-wide connectivity state: the online flag
// and the set of surveys downloaded for offline use. Session-only by design;
// nothing here survives a restart. Constructed once at startup and passed
// explicitly to the components that need it.
type NetworkService struct {
	mu          sync.RWMutex
	online      bool
	downloaded  map[string]struct{}
	broadcaster Broadcaster
}

// NewNetworkService creates the connectivity state, online by default
func NewNetworkService() *NetworkService {
	return &NetworkService{
		online:     true,
		downloaded: make(map[string]struct{}),
	}
}

// SetBroadcaster sets the broadcaster for connectivity events
func (s *NetworkService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetOnline sets the connectivity flag, broadcasting only actual changes.
func (s *NetworkService) SetOnline(online bool) bool {
	s.mu.Lock()
	changed := s.online != online
	s.online = online
	s.mu.Unlock()

	if changed && s.broadcaster != nil {
		s.broadcaster.Broadcast(EventNetworkChanged, map[string]bool{"online": online})
	}
	return online
}

// IsOnline reports the current connectivity flag.
func (s *NetworkService) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// MarkDownloaded records a survey as available offline. Idempotent.
func (s *NetworkService) MarkDownloaded(surveyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloaded[surveyID] = struct{}{}
}

// IsAvailableOffline reports whether a survey can be started right now:
// always while online, otherwise only if it was downloaded.
func (s *NetworkService) IsAvailableOffline(surveyID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.online {
		return true
	}
	_, ok := s.downloaded[surveyID]
	return ok
}

// DownloadedIDs returns the downloaded survey ids, sorted.
func (s *NetworkService) DownloadedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.downloaded))
	for id := range s.downloaded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
