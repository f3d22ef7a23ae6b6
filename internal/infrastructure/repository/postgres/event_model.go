package postgres

import (
	"database/sql"

	"github.com/pitchside/matchsync/internal/domain/matchevent"
)

type eventTableModel struct {
	ID                  int64          `db:"id"`
	MatchID             int64          `db:"match_id"`
	SideID              int64          `db:"side_id"`
	Sequence            int            `db:"sequence"`
	Elapsed             int            `db:"elapsed"`
	Extra               sql.NullInt64  `db:"extra"`
	EventType           string         `db:"event_type"`
	Detail              string         `db:"detail"`
	Comment             sql.NullString `db:"comment"`
	ParticipantID       sql.NullInt64  `db:"participant_id"`
	AssistParticipantID sql.NullInt64  `db:"assist_participant_id"`
}

type eventInsertModel struct {
	MatchID             int64   `db:"match_id"`
	SideID              int64   `db:"side_id"`
	Sequence            int     `db:"sequence"`
	Elapsed             int     `db:"elapsed"`
	Extra               *int    `db:"extra"`
	EventType           string  `db:"event_type"`
	Detail              string  `db:"detail"`
	Comment             *string `db:"comment"`
	ParticipantID       *int64  `db:"participant_id"`
	AssistParticipantID *int64  `db:"assist_participant_id"`
}

func (m eventTableModel) toDomain() *matchevent.Event {
	out := &matchevent.Event{
		ID:       m.ID,
		MatchID:  m.MatchID,
		SideID:   m.SideID,
		Sequence: m.Sequence,
		Elapsed:  m.Elapsed,
		Type:     m.EventType,
		Detail:   m.Detail,
	}
	out.Extra = nullInt64ToIntPtr(m.Extra)
	if m.Comment.Valid {
		comment := m.Comment.String
		out.Comment = &comment
	}
	if m.ParticipantID.Valid {
		id := m.ParticipantID.Int64
		out.ParticipantID = &id
	}
	if m.AssistParticipantID.Valid {
		id := m.AssistParticipantID.Int64
		out.AssistParticipantID = &id
	}
	return out
}
