package memory

import (
	"context"
	"sort"

	"github.com/pitchside/matchsync/internal/domain/matchstats"
)

type teamStatsRepository struct {
	store *Store
}

func (r *teamStatsRepository) ListBySides(_ context.Context, sideIDs []int64) ([]*matchstats.TeamStatistics, error) {
	wanted := make(map[int64]struct{}, len(sideIDs))
	for _, id := range sideIDs {
		wanted[id] = struct{}{}
	}

	var out []*matchstats.TeamStatistics
	for _, row := range r.store.teamStats {
		if _, ok := wanted[row.SideID]; ok {
			stats := row
			out = append(out, &stats)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *teamStatsRepository) SaveBatch(_ context.Context, items []*matchstats.TeamStatistics) error {
	for _, item := range items {
		if item.ID == 0 {
			item.ID = r.store.allocateID()
		}
		r.store.teamStats[item.ID] = *item
	}
	return nil
}

type playerStatsRepository struct {
	store *Store
}

func (r *playerStatsRepository) ListByParticipants(_ context.Context, participantIDs []int64) ([]*matchstats.PlayerStatistics, error) {
	wanted := make(map[int64]struct{}, len(participantIDs))
	for _, id := range participantIDs {
		wanted[id] = struct{}{}
	}

	var out []*matchstats.PlayerStatistics
	for _, row := range r.store.playerStats {
		if _, ok := wanted[row.ParticipantID]; ok {
			stats := row
			out = append(out, &stats)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *playerStatsRepository) SaveBatch(_ context.Context, items []*matchstats.PlayerStatistics) error {
	for _, item := range items {
		if item.ID == 0 {
			item.ID = r.store.allocateID()
		}
		r.store.playerStats[item.ID] = *item
	}
	return nil
}

func (r *playerStatsRepository) DeleteBatch(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(r.store.playerStats, id)
	}
	return nil
}
