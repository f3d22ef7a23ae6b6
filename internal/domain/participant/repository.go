package participant

import "context"

// Repository exposes match-participant persistence. SaveBatch both inserts
// new rows (assigning ids in place) and updates retained ones; batching
// bounds round-trips, atomicity comes from the surrounding transaction.
type Repository interface {
	ListBySides(ctx context.Context, sideIDs []int64) ([]*Participant, error)
	SaveBatch(ctx context.Context, items []*Participant) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

// MasterRepository exposes the provider-player master records.
type MasterRepository interface {
	FindByProviderIDs(ctx context.Context, providerIDs []int64) ([]*Player, error)
	SaveBatch(ctx context.Context, items []*Player) error
}
