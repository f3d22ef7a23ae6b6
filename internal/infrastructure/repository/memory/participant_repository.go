package memory

import (
	"context"
	"sort"

	"github.com/pitchside/matchsync/internal/domain/participant"
)

type participantRepository struct {
	store *Store
}

func (r *participantRepository) ListBySides(_ context.Context, sideIDs []int64) ([]*participant.Participant, error) {
	wanted := make(map[int64]struct{}, len(sideIDs))
	for _, id := range sideIDs {
		wanted[id] = struct{}{}
	}

	var out []*participant.Participant
	for _, row := range r.store.participants {
		if _, ok := wanted[row.SideID]; ok {
			p := row
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *participantRepository) SaveBatch(_ context.Context, items []*participant.Participant) error {
	for _, item := range items {
		if item.ID == 0 {
			item.ID = r.store.allocateID()
		}
		r.store.participants[item.ID] = *item
	}
	return nil
}

func (r *participantRepository) DeleteBatch(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(r.store.participants, id)
		for statsID, row := range r.store.playerStats {
			if row.ParticipantID == id {
				delete(r.store.playerStats, statsID)
			}
		}
	}
	return nil
}

type playerRepository struct {
	store *Store
}

func (r *playerRepository) FindByProviderIDs(_ context.Context, providerIDs []int64) ([]*participant.Player, error) {
	wanted := make(map[int64]struct{}, len(providerIDs))
	for _, id := range providerIDs {
		wanted[id] = struct{}{}
	}

	var out []*participant.Player
	for _, row := range r.store.players {
		if _, ok := wanted[row.ProviderID]; ok {
			p := row
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *playerRepository) SaveBatch(_ context.Context, items []*participant.Player) error {
	for _, item := range items {
		if item.ID == 0 {
			item.ID = r.store.allocateID()
		}
		r.store.players[item.ID] = *item
	}
	return nil
}
