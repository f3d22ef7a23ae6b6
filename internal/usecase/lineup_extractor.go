package usecase

import (
	"context"

	"github.com/pitchside/matchsync/internal/domain/match"
	"github.com/pitchside/matchsync/internal/domain/matchkey"
	"github.com/pitchside/matchsync/internal/platform/logging"
)

// SidePlan is the desired state of one team side, derived from the
// snapshot's lineup and score sections.
type SidePlan struct {
	Home             bool
	ProviderTeamID   int64
	TeamName         string
	Formation        string
	PlayerColors     match.KitColors
	GoalkeeperColors match.KitColors
	Outcome          string
}

type lineupPlan struct {
	home SidePlan
	away SidePlan
}

// extractLineups builds the side plans and registers every lineup player
// into the identity context. Lineup discovery has the highest identity
// precedence, so this extractor must run before the event planner and the
// statistics extractor.
func extractLineups(ctx context.Context, snap MatchSnapshot, identities *identityContext, logger *logging.Logger) lineupPlan {
	plan := lineupPlan{
		home: SidePlan{
			Home:           true,
			ProviderTeamID: snap.HomeTeamID,
			TeamName:       snap.HomeTeamName,
			Outcome:        match.OutcomeFromGoals(true, snap.HomeGoals, snap.AwayGoals),
		},
		away: SidePlan{
			Home:           false,
			ProviderTeamID: snap.AwayTeamID,
			TeamName:       snap.AwayTeamName,
			Outcome:        match.OutcomeFromGoals(false, snap.HomeGoals, snap.AwayGoals),
		},
	}

	for _, lineup := range snap.Lineups {
		var (
			side *SidePlan
			home bool
		)
		switch lineup.TeamID {
		case snap.HomeTeamID:
			side, home = &plan.home, true
		case snap.AwayTeamID:
			side, home = &plan.away, false
		default:
			logger.WarnContext(ctx, "lineup team id matches neither side, skipping section",
				"team_id", lineup.TeamID,
				"provider_match_id", snap.ProviderMatchID,
			)
			continue
		}

		side.Formation = lineup.Formation
		side.PlayerColors = match.KitColors{
			Primary: lineup.PlayerColors.Primary,
			Number:  lineup.PlayerColors.Number,
			Border:  lineup.PlayerColors.Border,
		}
		side.GoalkeeperColors = match.KitColors{
			Primary: lineup.GoalkeeperColors.Primary,
			Number:  lineup.GoalkeeperColors.Number,
			Border:  lineup.GoalkeeperColors.Border,
		}
		if lineup.TeamName != "" {
			side.TeamName = lineup.TeamName
		}

		for _, player := range lineup.StartXI {
			registerLineupPlayer(player, home, false, identities)
		}
		for _, player := range lineup.Substitutes {
			registerLineupPlayer(player, home, true, identities)
		}
	}

	return plan
}

func registerLineupPlayer(player SnapshotLineupPlayer, home, substitute bool, identities *identityContext) {
	key := matchkey.ForPlayer(player.ID, player.Name)
	if key.IsZero() {
		return
	}
	identities.addLineup(&ParticipantCandidate{
		Key:              key,
		ProviderPlayerID: clonePositiveInt64Ptr(player.ID),
		Name:             matchkey.NormalizeName(player.Name),
		Number:           cloneIntPtr(player.Number),
		Position:         player.Position,
		Grid:             player.Grid,
		Substitute:       substitute,
		Home:             home,
	})
}
