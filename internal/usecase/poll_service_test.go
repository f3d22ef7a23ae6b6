package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pitchside/matchsync/internal/platform/cache"
)

type stubLiveProvider struct {
	mu      sync.Mutex
	liveIDs []int64
	err     error
}

func (p *stubLiveProvider) FetchMatch(context.Context, int64) (MatchSnapshot, error) {
	return MatchSnapshot{}, errors.New("not used by poller")
}

func (p *stubLiveProvider) FetchLiveMatchIDs(context.Context) ([]int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	out := make([]int64, len(p.liveIDs))
	copy(out, p.liveIDs)
	return out, nil
}

type stubSyncer struct {
	mu     sync.Mutex
	status string
	err    error
	calls  map[int64]int
}

func newStubSyncer(status string) *stubSyncer {
	return &stubSyncer{status: status, calls: make(map[int64]int)}
}

func (s *stubSyncer) SyncMatch(_ context.Context, providerMatchID int64) (SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[providerMatchID]++
	result := SyncResult{
		ProviderMatchID: providerMatchID,
		Status:          s.status,
		Success:         s.err == nil,
		SyncedAt:        time.Now().UTC(),
	}
	return result, s.err
}

func (s *stubSyncer) callCount(providerMatchID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[providerMatchID]
}

type recordingNotifier struct {
	mu      sync.Mutex
	results []SyncResult
}

func (n *recordingNotifier) NotifySyncResult(_ context.Context, result SyncResult) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.results = append(n.results, result)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.results)
}

func fastPollConfig() PollConfig {
	return PollConfig{
		DiscoveryInterval: 10 * time.Millisecond,
		SyncInterval:      10 * time.Millisecond,
		MaxWorkers:        2,
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached within %s", timeout)
}

func TestPollServiceDiscoversAndDropsFinishedMatches(t *testing.T) {
	provider := &stubLiveProvider{liveIDs: []int64{501}}
	syncer := newStubSyncer("FT")
	notifier := &recordingNotifier{}
	results := cache.NewStore(time.Minute)
	service := NewPollService(provider, syncer, notifier, results, fastPollConfig(), nil)

	if err := service.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer service.Stop()

	waitFor(t, 2*time.Second, func() bool { return syncer.callCount(501) >= 1 })
	waitFor(t, 2*time.Second, func() bool { return notifier.count() >= 1 })

	last, ok := service.LastResult(context.Background(), 501)
	if !ok {
		t.Fatalf("last result not cached")
	}
	if last.ProviderMatchID != 501 || last.Status != "FT" || !last.Success {
		t.Fatalf("unexpected cached result: %+v", last)
	}

	// Finished matches leave the polling set; once the provider stops
	// listing them, no further syncs run.
	provider.mu.Lock()
	provider.liveIDs = nil
	provider.mu.Unlock()
	settled := syncer.callCount(501)
	time.Sleep(100 * time.Millisecond)
	if got := syncer.callCount(501); got > settled+1 {
		t.Fatalf("finished match kept syncing: before=%d after=%d", settled, got)
	}
}

func TestPollServiceKeepsLiveMatchesOnCadence(t *testing.T) {
	provider := &stubLiveProvider{liveIDs: []int64{502}}
	syncer := newStubSyncer("2H")
	service := NewPollService(provider, syncer, nil, nil, fastPollConfig(), nil)

	if err := service.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer service.Stop()

	waitFor(t, 2*time.Second, func() bool { return syncer.callCount(502) >= 3 })
}

func TestPollServiceSyncsManuallyTrackedMatch(t *testing.T) {
	provider := &stubLiveProvider{}
	syncer := newStubSyncer("NS")
	service := NewPollService(provider, syncer, nil, nil, fastPollConfig(), nil)

	if err := service.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer service.Stop()

	service.Track(777)
	waitFor(t, 2*time.Second, func() bool { return syncer.callCount(777) >= 1 })
}

func TestPollServiceStartRequiresDependencies(t *testing.T) {
	service := NewPollService(nil, nil, nil, nil, fastPollConfig(), nil)
	if err := service.Start(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
