package usecase

import (
	"context"

	"github.com/pitchside/matchsync/internal/domain/matchkey"
	"github.com/pitchside/matchsync/internal/domain/matchstats"
	"github.com/pitchside/matchsync/internal/platform/logging"
)

type teamStatsPlan struct {
	// keyed by home flag; nil when the snapshot carried no section for
	// that side.
	bySide map[bool]*matchstats.TeamStatistics
}

// extractTeamStats maps the snapshot's per-team statistics sections onto
// the two sides. Sections for unknown team ids are dropped with a warning.
func extractTeamStats(ctx context.Context, snap MatchSnapshot, logger *logging.Logger) teamStatsPlan {
	plan := teamStatsPlan{bySide: make(map[bool]*matchstats.TeamStatistics, 2)}
	for _, section := range snap.TeamStats {
		var home bool
		switch section.TeamID {
		case snap.HomeTeamID:
			home = true
		case snap.AwayTeamID:
			home = false
		default:
			logger.WarnContext(ctx, "team statistics section matches neither side, skipping",
				"team_id", section.TeamID,
				"provider_match_id", snap.ProviderMatchID,
			)
			continue
		}
		plan.bySide[home] = &matchstats.TeamStatistics{
			Possession:    section.Possession,
			Shots:         section.Shots,
			ShotsOnTarget: section.ShotsOnTarget,
			Corners:       section.Corners,
			Fouls:         section.Fouls,
			Offsides:      section.Offsides,
			YellowCards:   section.YellowCards,
			RedCards:      section.RedCards,
			ExpectedGoals: section.ExpectedGoals,
		}
	}
	return plan
}

// extractPlayerStats attaches per-player statistics payloads to the
// candidates already known to the identity context, and registers players
// the provider reports statistics for without ever listing them in a
// lineup or an event.
func extractPlayerStats(ctx context.Context, snap MatchSnapshot, identities *identityContext, logger *logging.Logger) {
	for _, section := range snap.PlayerStats {
		var home bool
		switch section.TeamID {
		case snap.HomeTeamID:
			home = true
		case snap.AwayTeamID:
			home = false
		default:
			logger.WarnContext(ctx, "player statistics section matches neither side, skipping",
				"team_id", section.TeamID,
				"provider_match_id", snap.ProviderMatchID,
			)
			continue
		}

		for _, row := range section.Players {
			key := matchkey.ForPlayer(row.ID, row.Name)
			if key.IsZero() {
				continue
			}
			stats := playerStatisticsFromSnapshot(row)
			if candidate, ok := identities.lookup(key); ok {
				candidate.Stats = stats
				continue
			}
			identities.addStatOnly(&ParticipantCandidate{
				Key:              key,
				ProviderPlayerID: clonePositiveInt64Ptr(row.ID),
				Name:             matchkey.NormalizeName(row.Name),
				Substitute:       true,
				NonLineup:        true,
				Home:             home,
				Stats:            stats,
			})
		}
	}
}

func playerStatisticsFromSnapshot(row SnapshotPlayerStats) *matchstats.PlayerStatistics {
	return &matchstats.PlayerStatistics{
		Minutes:        cloneIntPtr(row.Minutes),
		Rating:         row.Rating,
		Goals:          row.Goals,
		Assists:        row.Assists,
		Saves:          row.Saves,
		Passes:         row.Passes,
		KeyPasses:      row.KeyPasses,
		Tackles:        row.Tackles,
		DuelsWon:       row.DuelsWon,
		Dribbles:       row.Dribbles,
		FoulsDrawn:     row.FoulsDrawn,
		FoulsCommitted: row.FoulsCommitted,
		YellowCards:    row.YellowCards,
		RedCards:       row.RedCards,
		PenaltyScored:  row.PenaltyScored,
		PenaltyMissed:  row.PenaltyMissed,
		PenaltySaved:   row.PenaltySaved,
	}
}
