package postgres

import (
	"database/sql"

	"github.com/pitchside/matchsync/internal/domain/participant"
)

type participantTableModel struct {
	ID               int64          `db:"id"`
	SideID           int64          `db:"side_id"`
	PlayerID         sql.NullInt64  `db:"player_id"`
	ProviderPlayerID sql.NullInt64  `db:"provider_player_id"`
	Name             string         `db:"name"`
	Number           sql.NullInt64  `db:"number"`
	Position         sql.NullString `db:"position"`
	Grid             sql.NullString `db:"grid"`
	Substitute       bool           `db:"substitute"`
	NonLineup        bool           `db:"non_lineup"`
	UpdatePrevented  bool           `db:"update_prevented"`
}

type participantInsertModel struct {
	SideID           int64   `db:"side_id"`
	PlayerID         *int64  `db:"player_id"`
	ProviderPlayerID *int64  `db:"provider_player_id"`
	Name             string  `db:"name"`
	Number           *int    `db:"number"`
	Position         *string `db:"position"`
	Grid             *string `db:"grid"`
	Substitute       bool    `db:"substitute"`
	NonLineup        bool    `db:"non_lineup"`
	UpdatePrevented  bool    `db:"update_prevented"`
}

func (m participantTableModel) toDomain() *participant.Participant {
	out := &participant.Participant{
		ID:              m.ID,
		SideID:          m.SideID,
		Name:            m.Name,
		Position:        m.Position.String,
		Grid:            m.Grid.String,
		Substitute:      m.Substitute,
		NonLineup:       m.NonLineup,
		UpdatePrevented: m.UpdatePrevented,
	}
	if m.PlayerID.Valid {
		out.PlayerID = m.PlayerID.Int64
	}
	if m.ProviderPlayerID.Valid {
		id := m.ProviderPlayerID.Int64
		out.ProviderPlayerID = &id
	}
	out.Number = nullInt64ToIntPtr(m.Number)
	return out
}

type playerTableModel struct {
	ID         int64  `db:"id"`
	ProviderID int64  `db:"provider_id"`
	Name       string `db:"name"`
}

type playerInsertModel struct {
	ProviderID int64  `db:"provider_id"`
	Name       string `db:"name"`
}

func (m playerTableModel) toDomain() *participant.Player {
	return &participant.Player{
		ID:         m.ID,
		ProviderID: m.ProviderID,
		Name:       m.Name,
	}
}

func int64PtrToNullable(value int64) *int64 {
	if value == 0 {
		return nil
	}
	return &value
}

func stringToNullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
