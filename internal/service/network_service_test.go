package service

import (
	"reflect"
	"testing"
)

func TestNetworkDefaultsOnline(t *testing.T) {
	s := NewNetworkService()
	if !s.IsOnline() {
		t.Error("new network service must start online")
	}
	if !s.IsAvailableOffline("SCH_2025_001") {
		t.Error("every survey is available while online")
	}
}

func TestNetworkOfflineAvailability(t *testing.T) {
	s := NewNetworkService()
	s.SetOnline(false)

	if s.IsAvailableOffline("SCH_2025_001") {
		t.Error("undownloaded survey must be unavailable offline")
	}

	s.MarkDownloaded("SCH_2025_001")
	s.MarkDownloaded("SCH_2025_001")
	s.MarkDownloaded("INF_2025_003")

	if !s.IsAvailableOffline("SCH_2025_001") {
		t.Error("downloaded survey must stay available offline")
	}
	if got, want := s.DownloadedIDs(), []string{"INF_2025_003", "SCH_2025_001"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DownloadedIDs = %v, want %v", got, want)
	}
}

func TestNetworkBroadcastsOnChange(t *testing.T) {
	s := NewNetworkService()
	b := &fakeBroadcaster{}
	s.SetBroadcaster(b)

	s.SetOnline(false)
	s.SetOnline(false) // no change, no event
	s.SetOnline(true)

	if got := b.count(EventNetworkChanged); got != 2 {
		t.Errorf("network_changed events = %d, want 2", got)
	}
}
