package memory

import (
	"context"
	"sort"

	"github.com/pitchside/matchsync/internal/domain/match"
)

type matchRepository struct {
	store *Store
}

func (r *matchRepository) FindByProviderID(_ context.Context, providerMatchID int64) (*match.Match, bool, error) {
	for _, row := range r.store.matches {
		if row.ProviderMatchID == providerMatchID {
			out := row
			return &out, true, nil
		}
	}
	return nil, false, nil
}

func (r *matchRepository) Save(_ context.Context, m *match.Match) error {
	if m.ID == 0 {
		m.ID = r.store.allocateID()
	}
	r.store.matches[m.ID] = *m
	return nil
}

type sideRepository struct {
	store *Store
}

func (r *sideRepository) ListByMatch(_ context.Context, matchID int64) ([]*match.Side, error) {
	var out []*match.Side
	for _, row := range r.store.sides {
		if row.MatchID == matchID {
			side := row
			out = append(out, &side)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *sideRepository) SaveBatch(_ context.Context, sides []*match.Side) error {
	for _, side := range sides {
		if side.ID == 0 {
			side.ID = r.store.allocateID()
		}
		r.store.sides[side.ID] = *side
	}
	return nil
}
