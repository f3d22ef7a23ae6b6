package memory

import (
	"context"
	"sort"

	"github.com/pitchside/matchsync/internal/domain/matchevent"
)

type eventRepository struct {
	store *Store
}

func (r *eventRepository) ListByMatch(_ context.Context, matchID int64) ([]*matchevent.Event, error) {
	var out []*matchevent.Event
	for _, row := range r.store.events {
		if row.MatchID == matchID {
			event := row
			out = append(out, &event)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r *eventRepository) DeleteByMatch(_ context.Context, matchID int64) error {
	for id, row := range r.store.events {
		if row.MatchID == matchID {
			delete(r.store.events, id)
		}
	}
	return nil
}

func (r *eventRepository) InsertBatch(_ context.Context, events []*matchevent.Event) error {
	for _, event := range events {
		if event.ID == 0 {
			event.ID = r.store.allocateID()
		}
		r.store.events[event.ID] = *event
	}
	return nil
}
