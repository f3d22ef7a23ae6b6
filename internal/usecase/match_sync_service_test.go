package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pitchside/matchsync/internal/domain/matchevent"
	"github.com/pitchside/matchsync/internal/domain/matchstats"
	"github.com/pitchside/matchsync/internal/domain/participant"
	"github.com/pitchside/matchsync/internal/infrastructure/repository/memory"
	"github.com/pitchside/matchsync/internal/usecase"
)

type fakeProvider struct {
	snapshot usecase.MatchSnapshot
	err      error
	liveIDs  []int64
}

func (p *fakeProvider) FetchMatch(context.Context, int64) (usecase.MatchSnapshot, error) {
	if p.err != nil {
		return usecase.MatchSnapshot{}, p.err
	}
	return p.snapshot, nil
}

func (p *fakeProvider) FetchLiveMatchIDs(context.Context) ([]int64, error) {
	return p.liveIDs, nil
}

func i64(v int64) *int64 { return &v }

func iptr(v int) *int { return &v }

// syncSnapshot is team 10 (home) vs team 20 (away): 11 starters and 7
// substitutes per side, one goal, one substitution with reversed fields, two
// team statistics sections and player statistics for a starter plus one
// player the lineup never mentions.
func syncSnapshot() usecase.MatchSnapshot {
	snap := usecase.MatchSnapshot{
		ProviderMatchID:  77,
		LeagueProviderID: 39,
		Season:           2026,
		Status:           "2H",
		Elapsed:          63,
		KickoffAt:        time.Date(2026, time.August, 22, 15, 0, 0, 0, time.UTC),
		HomeTeamID:       10,
		HomeTeamName:     "Team A",
		AwayTeamID:       20,
		AwayTeamName:     "Team B",
		HomeGoals:        iptr(0),
		AwayGoals:        iptr(1),
	}

	home := usecase.SnapshotLineup{TeamID: 10, TeamName: "Team A", Formation: "4-3-3"}
	away := usecase.SnapshotLineup{TeamID: 20, TeamName: "Team B", Formation: "4-4-2"}
	home.StartXI = append(home.StartXI, usecase.SnapshotLineupPlayer{ID: i64(1), Name: "X", Number: iptr(9), Position: "F"})
	for i := 1; i < 11; i++ {
		home.StartXI = append(home.StartXI, usecase.SnapshotLineupPlayer{ID: i64(int64(100 + i)), Name: fmt.Sprintf("H%d", i)})
	}
	home.Substitutes = append(home.Substitutes, usecase.SnapshotLineupPlayer{ID: i64(2), Name: "Y", Number: iptr(14)})
	for i := 1; i < 7; i++ {
		home.Substitutes = append(home.Substitutes, usecase.SnapshotLineupPlayer{ID: i64(int64(150 + i)), Name: fmt.Sprintf("HS%d", i)})
	}
	for i := 0; i < 11; i++ {
		away.StartXI = append(away.StartXI, usecase.SnapshotLineupPlayer{ID: i64(int64(200 + i)), Name: fmt.Sprintf("A%d", i)})
	}
	for i := 0; i < 7; i++ {
		away.Substitutes = append(away.Substitutes, usecase.SnapshotLineupPlayer{ID: i64(int64(250 + i)), Name: fmt.Sprintf("AS%d", i)})
	}
	snap.Lineups = []usecase.SnapshotLineup{home, away}

	snap.Events = []usecase.SnapshotEvent{
		{Elapsed: 10, TeamID: 20, Type: matchevent.TypeGoal, Detail: "Normal Goal", Player: usecase.SnapshotPlayerRef{ID: i64(200), Name: "A0"}},
		// Reversed on purpose: X is a starter, Y a substitute.
		{Elapsed: 60, TeamID: 10, Type: matchevent.TypeSubstitution, Detail: "Substitution 1",
			Player: usecase.SnapshotPlayerRef{ID: i64(1), Name: "X"},
			Assist: usecase.SnapshotPlayerRef{ID: i64(2), Name: "Y"}},
	}

	snap.TeamStats = []usecase.SnapshotTeamStats{
		{TeamID: 10, Shots: 7, ShotsOnTarget: 3, Corners: 4},
		{TeamID: 20, Shots: 5, ShotsOnTarget: 2, Corners: 1},
	}
	snap.PlayerStats = []usecase.SnapshotTeamPlayerStats{
		{TeamID: 10, Players: []usecase.SnapshotPlayerStats{
			{ID: i64(1), Name: "X", Minutes: iptr(60), Rating: "7.1", Passes: 30},
			{ID: i64(555), Name: "Mystery Man", Minutes: iptr(3)},
		}},
	}

	return snap
}

func newSyncService(provider usecase.MatchSnapshotProvider, store *memory.Store) *usecase.MatchSyncService {
	return usecase.NewMatchSyncService(provider, store, nil)
}

func TestSyncMatchEndToEnd(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{snapshot: syncSnapshot()}
	service := newSyncService(provider, store)

	result, err := service.SyncMatch(context.Background(), 77)
	if err != nil {
		t.Fatalf("sync match: %v", err)
	}
	if !result.Success {
		t.Fatalf("unexpected failure: %+v", result)
	}
	if result.Status != "2H" {
		t.Fatalf("unexpected status: %q", result.Status)
	}

	// 36 lineup players plus one discovered via statistics only.
	if result.Participants.Created != 37 || result.Participants.Retained != 0 || result.Participants.Deleted != 0 {
		t.Fatalf("unexpected participant counts: %+v", result.Participants)
	}
	if result.Events.Created != 2 || result.Events.Deleted != 0 {
		t.Fatalf("unexpected event counts: %+v", result.Events)
	}
	if result.TeamStats.Created != 2 {
		t.Fatalf("unexpected team stat counts: %+v", result.TeamStats)
	}
	if result.PlayerStats.Created != 2 {
		t.Fatalf("unexpected player stat counts: %+v", result.PlayerStats)
	}

	var (
		events       []*matchevent.Event
		participants []*participant.Participant
	)
	if err := store.Do(context.Background(), func(ctx context.Context, repos usecase.MatchRepos) error {
		m, found, err := repos.Matches.FindByProviderID(ctx, 77)
		if err != nil || !found {
			return fmt.Errorf("match not persisted: found=%v err=%v", found, err)
		}
		sides, err := repos.Sides.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}
		if len(sides) != 2 {
			return fmt.Errorf("unexpected side count: %d", len(sides))
		}
		sideIDs := []int64{sides[0].ID, sides[1].ID}
		if participants, err = repos.Participants.ListBySides(ctx, sideIDs); err != nil {
			return err
		}
		events, err = repos.Events.ListByMatch(ctx, m.ID)
		return err
	}); err != nil {
		t.Fatalf("inspect store: %v", err)
	}

	var sub *matchevent.Event
	for _, event := range events {
		if event.Type == matchevent.TypeSubstitution {
			sub = event
		}
	}
	if sub == nil {
		t.Fatalf("substitution event not persisted")
	}
	if sub.ParticipantID == nil || sub.AssistParticipantID == nil {
		t.Fatalf("substitution event not linked to participants: %+v", sub)
	}

	byProviderID := make(map[int64]*participant.Participant)
	for _, row := range participants {
		if row.ProviderPlayerID != nil {
			byProviderID[*row.ProviderPlayerID] = row
		}
	}
	// The sub-in ends up in the primary participant slot.
	if *sub.ParticipantID != byProviderID[2].ID || *sub.AssistParticipantID != byProviderID[1].ID {
		t.Fatalf("substitution links wrong participants: player=%d assist=%d", *sub.ParticipantID, *sub.AssistParticipantID)
	}

	mystery := byProviderID[555]
	if mystery == nil {
		t.Fatalf("stat-only participant not persisted")
	}
	if !mystery.Substitute || !mystery.NonLineup {
		t.Fatalf("stat-only participant flags: substitute=%v non_lineup=%v", mystery.Substitute, mystery.NonLineup)
	}
}

func TestSyncMatchIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{snapshot: syncSnapshot()}
	service := newSyncService(provider, store)

	if _, err := service.SyncMatch(context.Background(), 77); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	result, err := service.SyncMatch(context.Background(), 77)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}

	if result.Participants.Created != 0 || result.Participants.Retained != 37 || result.Participants.Deleted != 0 {
		t.Fatalf("unexpected participant counts: %+v", result.Participants)
	}
	// Events are always rebuilt from scratch.
	if result.Events.Deleted != 2 || result.Events.Created != 2 {
		t.Fatalf("unexpected event counts: %+v", result.Events)
	}
	if result.TeamStats.Retained != 2 || result.TeamStats.Created != 0 {
		t.Fatalf("unexpected team stat counts: %+v", result.TeamStats)
	}
	if result.PlayerStats.Retained != 2 || result.PlayerStats.Created != 0 {
		t.Fatalf("unexpected player stat counts: %+v", result.PlayerStats)
	}
}

func TestSyncMatchDeletesScratchedParticipants(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{snapshot: syncSnapshot()}
	service := newSyncService(provider, store)

	if _, err := service.SyncMatch(context.Background(), 77); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	// The provider stops reporting the last away substitute and the
	// statistics-only player.
	next := syncSnapshot()
	next.Lineups[1].Substitutes = next.Lineups[1].Substitutes[:6]
	next.PlayerStats[0].Players = next.PlayerStats[0].Players[:1]
	provider.snapshot = next

	result, err := service.SyncMatch(context.Background(), 77)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if result.Participants.Deleted != 2 || result.Participants.Retained != 35 || result.Participants.Created != 0 {
		t.Fatalf("unexpected participant counts: %+v", result.Participants)
	}
	if result.PlayerStats.Retained != 1 || result.PlayerStats.Deleted != 1 {
		t.Fatalf("unexpected player stat counts: %+v", result.PlayerStats)
	}
}

func TestSyncMatchFailsWhenProviderFails(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{err: errors.New("provider down")}
	service := newSyncService(provider, store)

	result, err := service.SyncMatch(context.Background(), 77)
	if err == nil {
		t.Fatalf("expected error")
	}
	if result.Success || result.FailureReason == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

// insertFailingEvents lets the event delete through and then rejects the
// rebuild, the worst case for the delete-all/insert-all strategy.
type insertFailingEvents struct {
	matchevent.Repository
}

func (insertFailingEvents) InsertBatch(context.Context, []*matchevent.Event) error {
	return errors.New("events insert wedged")
}

type flakyEventsUoW struct {
	inner *memory.Store
	arm   bool
}

func (u *flakyEventsUoW) Do(ctx context.Context, fn func(ctx context.Context, repos usecase.MatchRepos) error) error {
	return u.inner.Do(ctx, func(ctx context.Context, repos usecase.MatchRepos) error {
		if u.arm {
			repos.Events = insertFailingEvents{Repository: repos.Events}
		}
		return fn(ctx, repos)
	})
}

func TestSyncMatchKeepsPriorEventsWhenRebuildFails(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{snapshot: syncSnapshot()}
	uow := &flakyEventsUoW{inner: store}
	service := usecase.NewMatchSyncService(provider, uow, nil)

	if _, err := service.SyncMatch(context.Background(), 77); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	uow.arm = true
	result, err := service.SyncMatch(context.Background(), 77)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if !result.Success {
		t.Fatalf("event failure escalated to a run failure: %+v", result)
	}
	if result.Events != (usecase.ReconcileCounts{}) {
		t.Fatalf("failed event phase still reported writes: %+v", result.Events)
	}

	var events []*matchevent.Event
	if err := store.Do(context.Background(), func(ctx context.Context, repos usecase.MatchRepos) error {
		m, found, err := repos.Matches.FindByProviderID(ctx, 77)
		if err != nil || !found {
			return fmt.Errorf("match not persisted: found=%v err=%v", found, err)
		}
		events, err = repos.Events.ListByMatch(ctx, m.ID)
		return err
	}); err != nil {
		t.Fatalf("inspect store: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("failed event phase committed partial writes: %d events persisted, want 2", len(events))
	}
}

// failingPlayerStats poisons the player statistics phase only.
type failingPlayerStats struct{}

func (failingPlayerStats) ListByParticipants(context.Context, []int64) ([]*matchstats.PlayerStatistics, error) {
	return nil, nil
}

func (failingPlayerStats) SaveBatch(context.Context, []*matchstats.PlayerStatistics) error {
	return errors.New("player stats table on fire")
}

func (failingPlayerStats) DeleteBatch(context.Context, []int64) error {
	return errors.New("player stats table on fire")
}

type flakyStatsUoW struct {
	inner *memory.Store
}

func (u flakyStatsUoW) Do(ctx context.Context, fn func(ctx context.Context, repos usecase.MatchRepos) error) error {
	return u.inner.Do(ctx, func(ctx context.Context, repos usecase.MatchRepos) error {
		repos.PlayerStats = failingPlayerStats{}
		return fn(ctx, repos)
	})
}

func TestSyncMatchDegradesOnStatisticsFailure(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{snapshot: syncSnapshot()}
	service := usecase.NewMatchSyncService(provider, flakyStatsUoW{inner: store}, nil)

	result, err := service.SyncMatch(context.Background(), 77)
	if err != nil {
		t.Fatalf("sync match: %v", err)
	}
	if !result.Success {
		t.Fatalf("statistics failure escalated to a run failure: %+v", result)
	}
	if result.PlayerStats != (usecase.ReconcileCounts{}) {
		t.Fatalf("expected zero player stat counts: %+v", result.PlayerStats)
	}
	if result.Participants.Created == 0 || result.Events.Created == 0 {
		t.Fatalf("healthy phases did not run: %+v", result)
	}
}
