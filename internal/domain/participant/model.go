package participant

import "github.com/pitchside/matchsync/internal/domain/matchkey"

// Participant is one persisted match participant attached to a side.
type Participant struct {
	ID               int64
	SideID           int64
	PlayerID         int64 // players master record, 0 when no provider id was ever seen
	ProviderPlayerID *int64
	Name             string
	Number           *int
	Position         string
	Grid             string
	Substitute       bool
	// NonLineup marks players discovered only through events or statistics
	// rows; they must never be reported as part of the lineup.
	NonLineup bool
	// UpdatePrevented freezes manually corrected rows against provider
	// overwrites on retain.
	UpdatePrevented bool
}

// Key re-derives the canonical participant key from the persisted identity
// fields. Stored keys are never trusted; see matchkey.ForPlayer.
func (p *Participant) Key() matchkey.Key {
	return matchkey.ForPlayer(p.ProviderPlayerID, p.Name)
}

// Player is the provider-player master record shared across matches.
type Player struct {
	ID         int64
	ProviderID int64
	Name       string
}
