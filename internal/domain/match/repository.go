package match

import "context"

// Repository exposes match fixture persistence.
type Repository interface {
	FindByProviderID(ctx context.Context, providerMatchID int64) (*Match, bool, error)
	Save(ctx context.Context, m *Match) error
}

// SideRepository exposes team-side persistence. SaveBatch assigns ids to
// newly created sides in place.
type SideRepository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]*Side, error)
	SaveBatch(ctx context.Context, sides []*Side) error
}
