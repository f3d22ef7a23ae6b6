package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchsync/internal/domain/matchstats"
	qb "github.com/pitchside/matchsync/internal/platform/querybuilder"
)

type TeamStatsRepository struct {
	ext sqlx.ExtContext
}

func NewTeamStatsRepository(ext sqlx.ExtContext) *TeamStatsRepository {
	return &TeamStatsRepository{ext: ext}
}

func (r *TeamStatsRepository) ListBySides(ctx context.Context, sideIDs []int64) ([]*matchstats.TeamStatistics, error) {
	query, args, err := qb.Select("*").From("match_team_stats").
		Where(qb.In("side_id", int64Args(sideIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team stats query: %w", err)
	}

	var rows []teamStatsTableModel
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team stats by sides: %w", err)
	}

	out := make([]*matchstats.TeamStatistics, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamStatsRepository) SaveBatch(ctx context.Context, items []*matchstats.TeamStatistics) error {
	for _, item := range items {
		if err := r.save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *TeamStatsRepository) save(ctx context.Context, item *matchstats.TeamStatistics) error {
	if item.ID == 0 {
		insertModel := teamStatsInsertModel{
			SideID:        item.SideID,
			Possession:    item.Possession,
			Shots:         item.Shots,
			ShotsOnTarget: item.ShotsOnTarget,
			Corners:       item.Corners,
			Fouls:         item.Fouls,
			Offsides:      item.Offsides,
			YellowCards:   item.YellowCards,
			RedCards:      item.RedCards,
			ExpectedGoals: item.ExpectedGoals,
		}
		query, args, err := qb.InsertModel("match_team_stats", insertModel, "RETURNING id")
		if err != nil {
			return fmt.Errorf("build insert team stats query: %w", err)
		}
		if err := sqlx.GetContext(ctx, r.ext, &item.ID, query, args...); err != nil {
			return fmt.Errorf("insert team stats: %w", err)
		}
		return nil
	}

	query, args, err := qb.Update("match_team_stats").
		Set("possession", item.Possession).
		Set("shots", item.Shots).
		Set("shots_on_target", item.ShotsOnTarget).
		Set("corners", item.Corners).
		Set("fouls", item.Fouls).
		Set("offsides", item.Offsides).
		Set("yellow_cards", item.YellowCards).
		Set("red_cards", item.RedCards).
		Set("expected_goals", item.ExpectedGoals).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team stats query: %w", err)
	}
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team stats: %w", err)
	}
	return nil
}

type PlayerStatsRepository struct {
	ext sqlx.ExtContext
}

func NewPlayerStatsRepository(ext sqlx.ExtContext) *PlayerStatsRepository {
	return &PlayerStatsRepository{ext: ext}
}

func (r *PlayerStatsRepository) ListByParticipants(ctx context.Context, participantIDs []int64) ([]*matchstats.PlayerStatistics, error) {
	query, args, err := qb.Select("*").From("match_player_stats").
		Where(qb.In("participant_id", int64Args(participantIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player stats query: %w", err)
	}

	var rows []playerStatsTableModel
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player stats by participants: %w", err)
	}

	out := make([]*matchstats.PlayerStatistics, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerStatsRepository) SaveBatch(ctx context.Context, items []*matchstats.PlayerStatistics) error {
	for _, item := range items {
		if err := r.save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *PlayerStatsRepository) save(ctx context.Context, item *matchstats.PlayerStatistics) error {
	if item.ID == 0 {
		insertModel := playerStatsInsertModel{
			ParticipantID:  item.ParticipantID,
			Minutes:        item.Minutes,
			Rating:         item.Rating,
			Goals:          item.Goals,
			Assists:        item.Assists,
			Saves:          item.Saves,
			Passes:         item.Passes,
			KeyPasses:      item.KeyPasses,
			Tackles:        item.Tackles,
			DuelsWon:       item.DuelsWon,
			Dribbles:       item.Dribbles,
			FoulsDrawn:     item.FoulsDrawn,
			FoulsCommitted: item.FoulsCommitted,
			YellowCards:    item.YellowCards,
			RedCards:       item.RedCards,
			PenaltyScored:  item.PenaltyScored,
			PenaltyMissed:  item.PenaltyMissed,
			PenaltySaved:   item.PenaltySaved,
		}
		query, args, err := qb.InsertModel("match_player_stats", insertModel, "RETURNING id")
		if err != nil {
			return fmt.Errorf("build insert player stats query: %w", err)
		}
		if err := sqlx.GetContext(ctx, r.ext, &item.ID, query, args...); err != nil {
			return fmt.Errorf("insert player stats: %w", err)
		}
		return nil
	}

	query, args, err := qb.Update("match_player_stats").
		Set("minutes", item.Minutes).
		Set("rating", item.Rating).
		Set("goals", item.Goals).
		Set("assists", item.Assists).
		Set("saves", item.Saves).
		Set("passes", item.Passes).
		Set("key_passes", item.KeyPasses).
		Set("tackles", item.Tackles).
		Set("duels_won", item.DuelsWon).
		Set("dribbles", item.Dribbles).
		Set("fouls_drawn", item.FoulsDrawn).
		Set("fouls_committed", item.FoulsCommitted).
		Set("yellow_cards", item.YellowCards).
		Set("red_cards", item.RedCards).
		Set("penalty_scored", item.PenaltyScored).
		Set("penalty_missed", item.PenaltyMissed).
		Set("penalty_saved", item.PenaltySaved).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player stats query: %w", err)
	}
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player stats: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := qb.DeleteFrom("match_player_stats").
		Where(qb.In("id", int64Args(ids))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player stats query: %w", err)
	}
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player stats: %w", err)
	}
	return nil
}
