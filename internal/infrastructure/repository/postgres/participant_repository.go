package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchsync/internal/domain/participant"
	qb "github.com/pitchside/matchsync/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	ext sqlx.ExtContext
}

func NewParticipantRepository(ext sqlx.ExtContext) *ParticipantRepository {
	return &ParticipantRepository{ext: ext}
}

func (r *ParticipantRepository) ListBySides(ctx context.Context, sideIDs []int64) ([]*participant.Participant, error) {
	query, args, err := qb.Select("*").From("match_participants").
		Where(qb.In("side_id", int64Args(sideIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants query: %w", err)
	}

	var rows []participantTableModel
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants by sides: %w", err)
	}

	out := make([]*participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ParticipantRepository) SaveBatch(ctx context.Context, items []*participant.Participant) error {
	for _, item := range items {
		if err := r.save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *ParticipantRepository) save(ctx context.Context, item *participant.Participant) error {
	if item.ID == 0 {
		insertModel := participantInsertModel{
			SideID:           item.SideID,
			PlayerID:         int64PtrToNullable(item.PlayerID),
			ProviderPlayerID: item.ProviderPlayerID,
			Name:             item.Name,
			Number:           item.Number,
			Position:         stringToNullable(item.Position),
			Grid:             stringToNullable(item.Grid),
			Substitute:       item.Substitute,
			NonLineup:        item.NonLineup,
			UpdatePrevented:  item.UpdatePrevented,
		}
		query, args, err := qb.InsertModel("match_participants", insertModel, "RETURNING id")
		if err != nil {
			return fmt.Errorf("build insert participant query: %w", err)
		}
		if err := sqlx.GetContext(ctx, r.ext, &item.ID, query, args...); err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}
		return nil
	}

	query, args, err := qb.Update("match_participants").
		Set("side_id", item.SideID).
		Set("player_id", int64PtrToNullable(item.PlayerID)).
		Set("provider_player_id", item.ProviderPlayerID).
		Set("name", item.Name).
		Set("number", item.Number).
		Set("position", stringToNullable(item.Position)).
		Set("grid", stringToNullable(item.Grid)).
		Set("substitute", item.Substitute).
		Set("non_lineup", item.NonLineup).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update participant query: %w", err)
	}
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update participant: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := qb.DeleteFrom("match_participants").
		Where(qb.In("id", int64Args(ids))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete participants query: %w", err)
	}
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}
	return nil
}

type PlayerRepository struct {
	ext sqlx.ExtContext
}

func NewPlayerRepository(ext sqlx.ExtContext) *PlayerRepository {
	return &PlayerRepository{ext: ext}
}

func (r *PlayerRepository) FindByProviderIDs(ctx context.Context, providerIDs []int64) ([]*participant.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.In("provider_id", int64Args(providerIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by provider ids: %w", err)
	}

	out := make([]*participant.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) SaveBatch(ctx context.Context, items []*participant.Player) error {
	for _, item := range items {
		if item.ID != 0 {
			query, args, err := qb.Update("players").
				Set("name", item.Name).
				Where(qb.Eq("id", item.ID)).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build update player query: %w", err)
			}
			if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("update player: %w", err)
			}
			continue
		}

		insertModel := playerInsertModel{ProviderID: item.ProviderID, Name: item.Name}
		query, args, err := qb.InsertModel("players", insertModel,
			"ON CONFLICT (provider_id) DO UPDATE SET name = EXCLUDED.name RETURNING id")
		if err != nil {
			return fmt.Errorf("build insert player query: %w", err)
		}
		if err := sqlx.GetContext(ctx, r.ext, &item.ID, query, args...); err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
	}
	return nil
}

func int64Args(ids []int64) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}
	return out
}
