package usecase

import (
	"context"
	"fmt"

	"github.com/pitchside/matchsync/internal/domain/matchevent"
	"github.com/pitchside/matchsync/internal/domain/matchkey"
	"github.com/pitchside/matchsync/internal/domain/participant"
)

// reconcileEvents replaces the match's entire persisted event list with the
// freshly planned one. The provider assigns no stable event identifiers, so
// diffing rows against free-text details would be guesswork; delete-all plus
// insert-all inside the run's transaction is the safe move.
func reconcileEvents(ctx context.Context, repos MatchRepos, bundle *entityBundle, plan eventPlan, participants map[matchkey.Key]*participant.Participant) (ReconcileCounts, error) {
	if err := repos.Events.DeleteByMatch(ctx, bundle.match.ID); err != nil {
		return ReconcileCounts{}, fmt.Errorf("delete events: %w", err)
	}
	// The rows removed are exactly the ones the bundle loaded at the start
	// of the run; the whole run holds the transaction.
	counts := ReconcileCounts{Deleted: len(bundle.events)}

	if len(plan.events) == 0 {
		return counts, nil
	}

	rows := make([]*matchevent.Event, 0, len(plan.events))
	for _, planned := range plan.events {
		side, ok := bundle.sides[planned.Home]
		if !ok {
			return ReconcileCounts{}, fmt.Errorf("%w: no persisted side for event sequence %d", ErrInvalidInput, planned.Sequence)
		}
		row := &matchevent.Event{
			MatchID:  bundle.match.ID,
			SideID:   side.ID,
			Sequence: planned.Sequence,
			Elapsed:  planned.Elapsed,
			Extra:    planned.Extra,
			Type:     planned.Type,
			Detail:   planned.Detail,
			Comment:  planned.Comment,
		}
		if resolved, ok := participants[planned.PlayerKey]; ok {
			id := resolved.ID
			row.ParticipantID = &id
		}
		if resolved, ok := participants[planned.AssistKey]; ok {
			id := resolved.ID
			row.AssistParticipantID = &id
		}
		rows = append(rows, row)
	}

	if err := repos.Events.InsertBatch(ctx, rows); err != nil {
		return ReconcileCounts{}, fmt.Errorf("insert events: %w", err)
	}
	counts.Created = len(rows)
	return counts, nil
}
