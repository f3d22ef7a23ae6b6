package usecase

import (
	"context"
	"fmt"

	"github.com/pitchside/matchsync/internal/domain/matchkey"
	"github.com/pitchside/matchsync/internal/domain/matchstats"
	"github.com/pitchside/matchsync/internal/domain/participant"
)

// reconcileTeamStats upserts the per-side statistics rows. There is at most
// one row per side, so this is a plain overwrite rather than a set diff.
func reconcileTeamStats(ctx context.Context, repos MatchRepos, bundle *entityBundle, plan teamStatsPlan) (ReconcileCounts, error) {
	var (
		counts ReconcileCounts
		saves  []*matchstats.TeamStatistics
	)

	for home, desired := range plan.bySide {
		if desired == nil {
			continue
		}
		side, ok := bundle.sides[home]
		if !ok {
			return ReconcileCounts{}, fmt.Errorf("%w: no persisted side for team statistics", ErrInvalidInput)
		}
		if existing, ok := bundle.teamStats[home]; ok {
			existing.Possession = desired.Possession
			existing.Shots = desired.Shots
			existing.ShotsOnTarget = desired.ShotsOnTarget
			existing.Corners = desired.Corners
			existing.Fouls = desired.Fouls
			existing.Offsides = desired.Offsides
			existing.YellowCards = desired.YellowCards
			existing.RedCards = desired.RedCards
			existing.ExpectedGoals = desired.ExpectedGoals
			saves = append(saves, existing)
			counts.Retained++
			continue
		}
		desired.SideID = side.ID
		saves = append(saves, desired)
		counts.Created++
	}

	if len(saves) > 0 {
		if err := repos.TeamStats.SaveBatch(ctx, saves); err != nil {
			return ReconcileCounts{}, fmt.Errorf("save team statistics: %w", err)
		}
	}
	return counts, nil
}

// reconcilePlayerStats upserts the statistics rows for every participant
// whose candidate carried a statistics payload, and removes rows whose
// participant either lost its payload or was deleted this run.
func reconcilePlayerStats(ctx context.Context, repos MatchRepos, bundle *entityBundle, identities *identityContext, participants map[matchkey.Key]*participant.Participant) (ReconcileCounts, error) {
	var (
		counts  ReconcileCounts
		saves   []*matchstats.PlayerStatistics
		keep    = make(map[int64]struct{})
		deletes []int64
	)

	for key, candidate := range identities.union() {
		if candidate.Stats == nil {
			continue
		}
		row, ok := participants[key]
		if !ok || row.ID == 0 {
			return ReconcileCounts{}, fmt.Errorf("%w: statistics for unreconciled participant %s", ErrInvalidInput, key.String())
		}
		desired := candidate.Stats
		keep[row.ID] = struct{}{}
		if existing, ok := bundle.playerStats[row.ID]; ok {
			id := existing.ID
			*existing = *desired
			existing.ID = id
			existing.ParticipantID = row.ID
			saves = append(saves, existing)
			counts.Retained++
			continue
		}
		desired.ParticipantID = row.ID
		saves = append(saves, desired)
		counts.Created++
	}

	for participantID, existing := range bundle.playerStats {
		if _, ok := keep[participantID]; !ok {
			deletes = append(deletes, existing.ID)
			counts.Deleted++
		}
	}

	if len(saves) > 0 {
		if err := repos.PlayerStats.SaveBatch(ctx, saves); err != nil {
			return ReconcileCounts{}, fmt.Errorf("save player statistics: %w", err)
		}
	}
	if len(deletes) > 0 {
		if err := repos.PlayerStats.DeleteBatch(ctx, deletes); err != nil {
			return ReconcileCounts{}, fmt.Errorf("delete player statistics: %w", err)
		}
	}
	return counts, nil
}
