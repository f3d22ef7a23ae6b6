package matchstats

import "context"

// TeamRepository exposes per-side statistics persistence.
type TeamRepository interface {
	ListBySides(ctx context.Context, sideIDs []int64) ([]*TeamStatistics, error)
	SaveBatch(ctx context.Context, items []*TeamStatistics) error
}

// PlayerRepository exposes per-participant statistics persistence.
type PlayerRepository interface {
	ListByParticipants(ctx context.Context, participantIDs []int64) ([]*PlayerStatistics, error)
	SaveBatch(ctx context.Context, items []*PlayerStatistics) error
	DeleteBatch(ctx context.Context, ids []int64) error
}
