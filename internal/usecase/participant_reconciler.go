package usecase

import (
	"context"
	"fmt"

	"github.com/pitchside/matchsync/internal/domain/matchkey"
	"github.com/pitchside/matchsync/internal/domain/participant"
)

// ReconcileCounts reports what one reconciliation phase did. Consumed by
// the caller for result aggregation and logging only.
type ReconcileCounts struct {
	Created  int
	Retained int
	Deleted  int
}

// reconcileParticipants computes the set difference between the desired
// participants (identity context union, lineup shadowing event-only
// shadowing stat-only) and the persisted participants in the bundle, then
// applies it: retained rows get their mutable fields overwritten, missing
// rows are created and linked to a master player record when a provider id
// is known, and rows the provider no longer reports are deleted.
//
// Returns the key-to-row mapping of the post-reconciliation participant
// set, which the event reconciler uses to resolve planned event keys.
func reconcileParticipants(ctx context.Context, repos MatchRepos, bundle *entityBundle, identities *identityContext) (map[matchkey.Key]*participant.Participant, ReconcileCounts, error) {
	desired := identities.union()

	playerIDs, err := resolveMasterPlayers(ctx, repos, bundle, desired)
	if err != nil {
		return nil, ReconcileCounts{}, err
	}

	var (
		counts  ReconcileCounts
		saves   = make([]*participant.Participant, 0, len(desired))
		result  = make(map[matchkey.Key]*participant.Participant, len(desired))
		deletes []int64
	)

	for key, candidate := range desired {
		if existing, ok := bundle.participants[key]; ok {
			if !existing.UpdatePrevented {
				existing.Name = candidate.Name
				existing.Number = candidate.Number
				existing.Position = candidate.Position
				existing.Grid = candidate.Grid
				existing.Substitute = candidate.Substitute
				existing.NonLineup = candidate.NonLineup
			}
			saves = append(saves, existing)
			result[key] = existing
			counts.Retained++
			continue
		}

		side, ok := bundle.sides[candidate.Home]
		if !ok {
			return nil, ReconcileCounts{}, fmt.Errorf("%w: no persisted side for participant %s", ErrInvalidInput, key.String())
		}
		created := &participant.Participant{
			SideID:           side.ID,
			ProviderPlayerID: candidate.ProviderPlayerID,
			Name:             candidate.Name,
			Number:           candidate.Number,
			Position:         candidate.Position,
			Grid:             candidate.Grid,
			Substitute:       candidate.Substitute,
			NonLineup:        candidate.NonLineup,
		}
		if candidate.ProviderPlayerID != nil {
			created.PlayerID = playerIDs[*candidate.ProviderPlayerID]
		}
		saves = append(saves, created)
		result[key] = created
		counts.Created++
	}

	for key, existing := range bundle.participants {
		if _, ok := desired[key]; !ok {
			deletes = append(deletes, existing.ID)
			counts.Deleted++
		}
	}
	for _, duplicate := range bundle.duplicates {
		deletes = append(deletes, duplicate.ID)
		counts.Deleted++
	}

	if len(saves) > 0 {
		if err := repos.Participants.SaveBatch(ctx, saves); err != nil {
			return nil, ReconcileCounts{}, fmt.Errorf("save participants: %w", err)
		}
	}
	if len(deletes) > 0 {
		if err := repos.Participants.DeleteBatch(ctx, deletes); err != nil {
			return nil, ReconcileCounts{}, fmt.Errorf("delete participants: %w", err)
		}
	}

	return result, counts, nil
}

// resolveMasterPlayers makes sure every desired candidate with a provider
// player id has a master player record, creating missing ones, and returns
// provider id to master record id.
func resolveMasterPlayers(ctx context.Context, repos MatchRepos, bundle *entityBundle, desired map[matchkey.Key]*ParticipantCandidate) (map[int64]int64, error) {
	providerIDs := make([]int64, 0, len(desired))
	seen := make(map[int64]struct{}, len(desired))
	for key, candidate := range desired {
		if candidate.ProviderPlayerID == nil {
			continue
		}
		if _, ok := bundle.participants[key]; ok {
			// Retained rows keep their existing master link.
			continue
		}
		id := *candidate.ProviderPlayerID
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		providerIDs = append(providerIDs, id)
	}

	out := make(map[int64]int64, len(providerIDs))
	if len(providerIDs) == 0 {
		return out, nil
	}

	existing, err := repos.Players.FindByProviderIDs(ctx, providerIDs)
	if err != nil {
		return nil, fmt.Errorf("load master players: %w", err)
	}
	for _, row := range existing {
		out[row.ProviderID] = row.ID
	}

	var missing []*participant.Player
	for key, candidate := range desired {
		if candidate.ProviderPlayerID == nil {
			continue
		}
		if _, ok := bundle.participants[key]; ok {
			continue
		}
		id := *candidate.ProviderPlayerID
		if _, ok := out[id]; ok {
			continue
		}
		out[id] = 0 // reserve so a second candidate with the same id is skipped
		missing = append(missing, &participant.Player{ProviderID: id, Name: candidate.Name})
	}
	if len(missing) > 0 {
		if err := repos.Players.SaveBatch(ctx, missing); err != nil {
			return nil, fmt.Errorf("create master players: %w", err)
		}
		for _, row := range missing {
			out[row.ProviderID] = row.ID
		}
	}

	return out, nil
}
