package usecase

import (
	"context"
	"fmt"

	"github.com/pitchside/matchsync/internal/domain/match"
	"github.com/pitchside/matchsync/internal/domain/matchevent"
	"github.com/pitchside/matchsync/internal/domain/matchkey"
	"github.com/pitchside/matchsync/internal/domain/matchstats"
	"github.com/pitchside/matchsync/internal/domain/participant"
)

// entityBundle is the persisted counterpart of the identity context: the
// match state currently in the store, loaded fresh at the start of every
// run and discarded with it.
type entityBundle struct {
	// match is nil when the match has never been synced before.
	match *match.Match
	// sides is keyed by the home flag.
	sides map[bool]*match.Side

	// participants is keyed by the re-derived identity key; duplicates
	// holds rows whose key collided with an earlier row and that must be
	// removed during reconciliation.
	participants map[matchkey.Key]*participant.Participant
	duplicates   []*participant.Participant

	events []*matchevent.Event
	// teamStats is keyed by the home flag, playerStats by participant id.
	teamStats   map[bool]*matchstats.TeamStatistics
	playerStats map[int64]*matchstats.PlayerStatistics
}

func newEntityBundle() *entityBundle {
	return &entityBundle{
		sides:        make(map[bool]*match.Side, 2),
		participants: make(map[matchkey.Key]*participant.Participant),
		teamStats:    make(map[bool]*matchstats.TeamStatistics, 2),
		playerStats:  make(map[int64]*matchstats.PlayerStatistics),
	}
}

func (b *entityBundle) sideIDs() []int64 {
	ids := make([]int64, 0, len(b.sides))
	for _, side := range b.sides {
		ids = append(ids, side.ID)
	}
	return ids
}

// loadEntityBundle reads everything previously persisted for the provider
// match id. Participant keys are re-derived from the stored provider id and
// name rather than read back, so id/name drift between runs surfaces as a
// key change instead of being masked by a stale stored key.
func loadEntityBundle(ctx context.Context, repos MatchRepos, providerMatchID int64) (*entityBundle, error) {
	bundle := newEntityBundle()

	existing, found, err := repos.Matches.FindByProviderID(ctx, providerMatchID)
	if err != nil {
		return nil, fmt.Errorf("load match %d: %w", providerMatchID, err)
	}
	if !found {
		return bundle, nil
	}
	bundle.match = existing

	sides, err := repos.Sides.ListByMatch(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("load sides for match %d: %w", existing.ID, err)
	}
	sidesByID := make(map[int64]*match.Side, len(sides))
	for _, side := range sides {
		bundle.sides[side.Home] = side
		sidesByID[side.ID] = side
	}
	if len(bundle.sides) == 0 {
		return bundle, nil
	}

	sideIDs := bundle.sideIDs()

	participants, err := repos.Participants.ListBySides(ctx, sideIDs)
	if err != nil {
		return nil, fmt.Errorf("load participants for match %d: %w", existing.ID, err)
	}
	participantIDs := make([]int64, 0, len(participants))
	for _, row := range participants {
		participantIDs = append(participantIDs, row.ID)
		key := row.Key()
		if key.IsZero() {
			bundle.duplicates = append(bundle.duplicates, row)
			continue
		}
		if _, taken := bundle.participants[key]; taken {
			bundle.duplicates = append(bundle.duplicates, row)
			continue
		}
		bundle.participants[key] = row
	}

	events, err := repos.Events.ListByMatch(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("load events for match %d: %w", existing.ID, err)
	}
	bundle.events = events

	teamStats, err := repos.TeamStats.ListBySides(ctx, sideIDs)
	if err != nil {
		return nil, fmt.Errorf("load team statistics for match %d: %w", existing.ID, err)
	}
	for _, row := range teamStats {
		if side, ok := sidesByID[row.SideID]; ok {
			bundle.teamStats[side.Home] = row
		}
	}

	if len(participantIDs) > 0 {
		playerStats, err := repos.PlayerStats.ListByParticipants(ctx, participantIDs)
		if err != nil {
			return nil, fmt.Errorf("load player statistics for match %d: %w", existing.ID, err)
		}
		for _, row := range playerStats {
			bundle.playerStats[row.ParticipantID] = row
		}
	}

	return bundle, nil
}
