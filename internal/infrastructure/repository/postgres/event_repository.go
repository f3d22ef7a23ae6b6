package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchsync/internal/domain/matchevent"
	qb "github.com/pitchside/matchsync/internal/platform/querybuilder"
)

type EventRepository struct {
	ext sqlx.ExtContext
}

func NewEventRepository(ext sqlx.ExtContext) *EventRepository {
	return &EventRepository{ext: ext}
}

func (r *EventRepository) ListByMatch(ctx context.Context, matchID int64) ([]*matchevent.Event, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events by match: %w", err)
	}

	out := make([]*matchevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EventRepository) DeleteByMatch(ctx context.Context, matchID int64) error {
	query, args, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete events query: %w", err)
	}

	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete events by match: %w", err)
	}
	return nil
}

func (r *EventRepository) InsertBatch(ctx context.Context, events []*matchevent.Event) error {
	for _, event := range events {
		insertModel := eventInsertModel{
			MatchID:             event.MatchID,
			SideID:              event.SideID,
			Sequence:            event.Sequence,
			Elapsed:             event.Elapsed,
			Extra:               event.Extra,
			EventType:           event.Type,
			Detail:              event.Detail,
			Comment:             event.Comment,
			ParticipantID:       event.ParticipantID,
			AssistParticipantID: event.AssistParticipantID,
		}
		query, args, err := qb.InsertModel("match_events", insertModel, "RETURNING id")
		if err != nil {
			return fmt.Errorf("build insert event query: %w", err)
		}
		if err := sqlx.GetContext(ctx, r.ext, &event.ID, query, args...); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return nil
}
