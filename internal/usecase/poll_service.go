package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pitchside/matchsync/internal/domain/match"
	"github.com/pitchside/matchsync/internal/platform/cache"
	"github.com/pitchside/matchsync/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

// matchSyncer is the slice of MatchSyncService the poller needs.
type matchSyncer interface {
	SyncMatch(ctx context.Context, providerMatchID int64) (SyncResult, error)
}

// SyncNotifier receives every completed sync result, successful or not.
type SyncNotifier interface {
	NotifySyncResult(ctx context.Context, result SyncResult) error
}

type PollConfig struct {
	// DiscoveryInterval is how often the provider's live fixture list is
	// refreshed to pick up newly started matches.
	DiscoveryInterval time.Duration
	// SyncInterval is the per-match cadence between full snapshot syncs
	// while a match stays tracked.
	SyncInterval time.Duration
	MaxWorkers   int
}

func (c PollConfig) withDefaults() PollConfig {
	if c.DiscoveryInterval <= 0 {
		c.DiscoveryInterval = time.Minute
	}
	if c.SyncInterval <= 0 {
		c.SyncInterval = 20 * time.Second
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = 4
	}
	return c
}

// PollService drives the sync engine: it discovers live matches from the
// provider, keeps each one syncing on a fixed cadence through a bounded
// worker pool, and drops a match once it is no longer in play. The last
// result per match is cached for the internal API and pushed to the
// configured notifier.
type PollService struct {
	provider MatchSnapshotProvider
	syncer   matchSyncer
	notifier SyncNotifier
	results  *cache.Store
	logger   *logging.Logger
	cfg      PollConfig

	mu       sync.Mutex
	tracked  map[int64]struct{}
	inflight map[int64]struct{}

	pool   *ants.Pool
	loop   conc.WaitGroup
	tasks  sync.WaitGroup
	cancel context.CancelFunc
}

func NewPollService(
	provider MatchSnapshotProvider,
	syncer matchSyncer,
	notifier SyncNotifier,
	results *cache.Store,
	cfg PollConfig,
	logger *logging.Logger,
) *PollService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PollService{
		provider: provider,
		syncer:   syncer,
		notifier: notifier,
		results:  results,
		logger:   logger,
		cfg:      cfg.withDefaults(),
		tracked:  make(map[int64]struct{}),
		inflight: make(map[int64]struct{}),
	}
}

// Start launches the discovery and sync loops. It returns immediately; the
// loops run until Stop is called or the given context is cancelled.
func (s *PollService) Start(ctx context.Context) error {
	if s.provider == nil || s.syncer == nil {
		return fmt.Errorf("%w: poll service is not fully configured", ErrDependencyUnavailable)
	}
	if s.pool != nil {
		return fmt.Errorf("poll service already started")
	}

	pool, err := ants.NewPool(s.cfg.MaxWorkers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	s.pool = pool

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loop.Go(func() {
		s.run(ctx)
	})

	s.logger.InfoContext(ctx, "poll service started",
		"discovery_interval", s.cfg.DiscoveryInterval.String(),
		"sync_interval", s.cfg.SyncInterval.String(),
		"max_workers", s.cfg.MaxWorkers,
	)
	return nil
}

// Stop cancels the loops and waits for in-flight syncs to drain.
func (s *PollService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if rec := s.loop.WaitAndRecover(); rec != nil {
		s.logger.Error("poll loop panicked", "panic", rec.Value)
	}
	s.tasks.Wait()
	if s.pool != nil {
		s.pool.Release()
	}
}

// Track adds one match to the polling set without waiting for discovery to
// find it. The next sync tick picks it up.
func (s *PollService) Track(providerMatchID int64) {
	if providerMatchID <= 0 {
		return
	}
	s.mu.Lock()
	s.tracked[providerMatchID] = struct{}{}
	s.mu.Unlock()
}

// LastResult returns the cached outcome of the most recent sync of one
// match, if any is still retained.
func (s *PollService) LastResult(ctx context.Context, providerMatchID int64) (SyncResult, bool) {
	if s.results == nil {
		return SyncResult{}, false
	}
	value, ok := s.results.Get(ctx, resultCacheKey(providerMatchID))
	if !ok {
		return SyncResult{}, false
	}
	result, ok := value.(SyncResult)
	return result, ok
}

func (s *PollService) run(ctx context.Context) {
	s.discover(ctx)
	s.syncTracked(ctx)

	discovery := time.NewTicker(s.cfg.DiscoveryInterval)
	defer discovery.Stop()
	syncTick := time.NewTicker(s.cfg.SyncInterval)
	defer syncTick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-discovery.C:
			s.discover(ctx)
		case <-syncTick.C:
			s.syncTracked(ctx)
		}
	}
}

func (s *PollService) discover(ctx context.Context) {
	ids, err := s.provider.FetchLiveMatchIDs(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "live fixture discovery failed", "error", err)
		return
	}

	s.mu.Lock()
	added := 0
	for _, id := range ids {
		if _, ok := s.tracked[id]; !ok {
			s.tracked[id] = struct{}{}
			added++
		}
	}
	total := len(s.tracked)
	s.mu.Unlock()

	if added > 0 {
		s.logger.InfoContext(ctx, "live fixture discovery", "added", added, "tracked", total)
	}
}

func (s *PollService) syncTracked(ctx context.Context) {
	s.mu.Lock()
	due := make([]int64, 0, len(s.tracked))
	for id := range s.tracked {
		if _, busy := s.inflight[id]; busy {
			continue
		}
		s.inflight[id] = struct{}{}
		due = append(due, id)
	}
	s.mu.Unlock()

	for _, id := range due {
		id := id
		s.tasks.Add(1)
		if err := s.pool.Submit(func() {
			defer s.tasks.Done()
			s.syncOne(ctx, id)
		}); err != nil {
			s.tasks.Done()
			s.clearInflight(id)
			s.logger.WarnContext(ctx, "submit sync task failed", "provider_match_id", id, "error", err)
		}
	}
}

// syncOne runs a full reconciliation for one match and decides whether the
// match stays in the polling set. Anything no longer in play is dropped;
// discovery re-adds it if the provider reports it live again.
func (s *PollService) syncOne(ctx context.Context, providerMatchID int64) {
	defer s.clearInflight(providerMatchID)
	if ctx.Err() != nil {
		return
	}

	result, err := s.syncer.SyncMatch(ctx, providerMatchID)
	if s.results != nil {
		s.results.Set(ctx, resultCacheKey(providerMatchID), result)
	}

	if err == nil && !match.IsLiveStatus(result.Status) {
		s.mu.Lock()
		delete(s.tracked, providerMatchID)
		s.mu.Unlock()
		s.logger.InfoContext(ctx, "match left polling set",
			"provider_match_id", providerMatchID,
			"status", result.Status,
		)
	}

	if s.notifier != nil {
		if notifyErr := s.notifier.NotifySyncResult(ctx, result); notifyErr != nil {
			s.logger.WarnContext(ctx, "sync result notification failed",
				"provider_match_id", providerMatchID,
				"error", notifyErr,
			)
		}
	}
}

func (s *PollService) clearInflight(providerMatchID int64) {
	s.mu.Lock()
	delete(s.inflight, providerMatchID)
	s.mu.Unlock()
}

func resultCacheKey(providerMatchID int64) string {
	return fmt.Sprintf("sync:result:%d", providerMatchID)
}
