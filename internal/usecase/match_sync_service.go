package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchside/matchsync/internal/domain/match"
	"github.com/pitchside/matchsync/internal/platform/logging"
)

// SyncResult is the outcome of one reconciliation run, consumed by the
// poller to pick its next cadence and by the internal API for inspection.
type SyncResult struct {
	ProviderMatchID int64
	Status          string
	Success         bool
	FailureReason   string
	Participants    ReconcileCounts
	Events          ReconcileCounts
	TeamStats       ReconcileCounts
	PlayerStats     ReconcileCounts
	SyncedAt        time.Time
}

// MatchSyncService runs the full reconciliation pipeline for one match:
// fetch the provider snapshot, plan the desired state, then apply it in
// five ordered phases inside a single transaction. Load, base entities and
// participants are fatal; events and statistics degrade to empty results.
type MatchSyncService struct {
	provider MatchSnapshotProvider
	uow      UnitOfWork
	logger   *logging.Logger
}

func NewMatchSyncService(provider MatchSnapshotProvider, uow UnitOfWork, logger *logging.Logger) *MatchSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchSyncService{
		provider: provider,
		uow:      uow,
		logger:   logger,
	}
}

func (s *MatchSyncService) SyncMatch(ctx context.Context, providerMatchID int64) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSyncService.SyncMatch")
	defer span.End()

	result := SyncResult{ProviderMatchID: providerMatchID, SyncedAt: time.Now().UTC()}

	if providerMatchID <= 0 {
		return s.fail(ctx, result, fmt.Errorf("%w: provider match id must be positive", ErrInvalidInput))
	}
	if s.provider == nil || s.uow == nil {
		s.logger.WarnContext(ctx,
			"skip match sync: engine is not fully configured",
			"provider_match_id", providerMatchID,
			"provider_nil", s.provider == nil,
			"uow_nil", s.uow == nil,
		)
		return s.fail(ctx, result, fmt.Errorf("%w: match sync engine is not fully configured", ErrDependencyUnavailable))
	}

	snap, err := s.provider.FetchMatch(ctx, providerMatchID)
	if err != nil {
		return s.fail(ctx, result, fmt.Errorf("fetch match snapshot provider_match_id=%d: %w", providerMatchID, err))
	}
	result.Status = match.NormalizeStatus(snap.Status)

	result, err = s.reconcile(ctx, snap, result)
	if err != nil {
		return s.fail(ctx, result, err)
	}

	result.Success = true
	s.logger.InfoContext(ctx, "match sync completed",
		"provider_match_id", providerMatchID,
		"status", result.Status,
		"participants_created", result.Participants.Created,
		"participants_retained", result.Participants.Retained,
		"participants_deleted", result.Participants.Deleted,
		"events_created", result.Events.Created,
		"events_deleted", result.Events.Deleted,
		"team_stats_written", result.TeamStats.Created+result.TeamStats.Retained,
		"player_stats_written", result.PlayerStats.Created+result.PlayerStats.Retained,
	)
	return result, nil
}

// reconcile plans the desired state outside the transaction, then applies
// all five phases inside one unit of work.
func (s *MatchSyncService) reconcile(ctx context.Context, snap MatchSnapshot, result SyncResult) (SyncResult, error) {
	identities := newIdentityContext()
	sidePlans := extractLineups(ctx, snap, identities, s.logger)
	events := planMatchEvents(ctx, snap, identities, s.logger)

	// A malformed statistics section must not take the rest of the match
	// down with it.
	teamStats := teamStatsPlan{}
	statsOK := s.degradable(ctx, snap.ProviderMatchID, "extract statistics", func() error {
		teamStats = extractTeamStats(ctx, snap, s.logger)
		extractPlayerStats(ctx, snap, identities, s.logger)
		return nil
	})

	err := s.uow.Do(ctx, func(ctx context.Context, repos MatchRepos) error {
		bundle, err := loadEntityBundle(ctx, repos, snap.ProviderMatchID)
		if err != nil {
			return fmt.Errorf("load existing entities: %w", err)
		}

		if err := syncBaseEntities(ctx, repos, bundle, snap, sidePlans); err != nil {
			return fmt.Errorf("sync base entities: %w", err)
		}

		participants, participantCounts, err := reconcileParticipants(ctx, repos, bundle, identities)
		if err != nil {
			return fmt.Errorf("reconcile participants: %w", err)
		}
		result.Participants = participantCounts

		s.degradable(ctx, snap.ProviderMatchID, "reconcile events", func() error {
			return nestedPhase(ctx, repos, func(ctx context.Context) error {
				counts, err := reconcileEvents(ctx, repos, bundle, events, participants)
				if err != nil {
					return err
				}
				result.Events = counts
				return nil
			})
		})

		if statsOK {
			s.degradable(ctx, snap.ProviderMatchID, "reconcile team statistics", func() error {
				return nestedPhase(ctx, repos, func(ctx context.Context) error {
					counts, err := reconcileTeamStats(ctx, repos, bundle, teamStats)
					if err != nil {
						return err
					}
					result.TeamStats = counts
					return nil
				})
			})
			s.degradable(ctx, snap.ProviderMatchID, "reconcile player statistics", func() error {
				return nestedPhase(ctx, repos, func(ctx context.Context) error {
					counts, err := reconcilePlayerStats(ctx, repos, bundle, identities, participants)
					if err != nil {
						return err
					}
					result.PlayerStats = counts
					return nil
				})
			})
		}

		return nil
	})
	return result, err
}

// degradable runs one non-fatal phase: errors and panics are logged and
// swallowed so the surrounding run still commits. Reports whether the phase
// completed cleanly.
func (s *MatchSyncService) degradable(ctx context.Context, providerMatchID int64, phase string, fn func() error) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			s.logger.WarnContext(ctx, "non-fatal sync phase panicked, continuing with empty result",
				"phase", phase,
				"provider_match_id", providerMatchID,
				"panic", rec,
			)
		}
	}()
	if err := fn(); err != nil {
		s.logger.WarnContext(ctx, "non-fatal sync phase failed, continuing with empty result",
			"phase", phase,
			"provider_match_id", providerMatchID,
			"error", err,
		)
		return false
	}
	return true
}

// nestedPhase runs fn inside the transaction's nested scope so a failing
// phase leaves no partial writes behind.
func nestedPhase(ctx context.Context, repos MatchRepos, fn func(ctx context.Context) error) error {
	if repos.Scope == nil {
		return fn(ctx)
	}
	return repos.Scope.Nested(ctx, fn)
}

func (s *MatchSyncService) fail(ctx context.Context, result SyncResult, err error) (SyncResult, error) {
	result.Success = false
	result.FailureReason = err.Error()
	s.logger.ErrorContext(ctx, "match sync failed",
		"provider_match_id", result.ProviderMatchID,
		"error", err,
	)
	return result, err
}

// syncBaseEntities upserts the fixture row and both side rows. A side whose
// provider team reference is missing makes the whole run unsyncable.
func syncBaseEntities(ctx context.Context, repos MatchRepos, bundle *entityBundle, snap MatchSnapshot, sidePlans lineupPlan) error {
	if snap.HomeTeamID <= 0 || snap.AwayTeamID <= 0 {
		return fmt.Errorf("%w: snapshot is missing a team reference (home=%d away=%d)", ErrInvalidInput, snap.HomeTeamID, snap.AwayTeamID)
	}

	m := bundle.match
	if m == nil {
		m = &match.Match{ProviderMatchID: snap.ProviderMatchID}
		bundle.match = m
	}
	m.LeagueProviderID = snap.LeagueProviderID
	m.Season = snap.Season
	m.Referee = snap.Referee
	m.Venue = snap.Venue
	m.Status = match.NormalizeStatus(snap.Status)
	m.Elapsed = snap.Elapsed
	m.KickoffAt = snap.KickoffAt
	m.HomeGoals = snap.HomeGoals
	m.AwayGoals = snap.AwayGoals
	m.UpdatedAt = time.Now().UTC()
	if err := repos.Matches.Save(ctx, m); err != nil {
		return fmt.Errorf("save match: %w", err)
	}

	batch := make([]*match.Side, 0, 2)
	for _, plan := range []SidePlan{sidePlans.home, sidePlans.away} {
		side, ok := bundle.sides[plan.Home]
		if !ok {
			side = &match.Side{MatchID: m.ID, Home: plan.Home}
			bundle.sides[plan.Home] = side
		}
		side.ProviderTeamID = plan.ProviderTeamID
		side.TeamName = plan.TeamName
		side.Formation = plan.Formation
		side.PlayerColors = plan.PlayerColors
		side.GoalkeeperColors = plan.GoalkeeperColors
		side.Outcome = plan.Outcome
		batch = append(batch, side)
	}
	if err := repos.Sides.SaveBatch(ctx, batch); err != nil {
		return fmt.Errorf("save sides: %w", err)
	}
	return nil
}
