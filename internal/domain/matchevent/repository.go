package matchevent

import "context"

// Repository exposes match-event persistence. The engine replaces the whole
// event list per match every run, so the surface is list/delete-all/insert.
type Repository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]*Event, error)
	DeleteByMatch(ctx context.Context, matchID int64) error
	InsertBatch(ctx context.Context, events []*Event) error
}
