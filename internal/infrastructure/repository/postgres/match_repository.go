package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchsync/internal/domain/match"
	qb "github.com/pitchside/matchsync/internal/platform/querybuilder"
)

// MatchRepository persists the fixture row. It is bound to whatever
// execution context the unit of work hands it, usually a transaction.
type MatchRepository struct {
	ext sqlx.ExtContext
}

func NewMatchRepository(ext sqlx.ExtContext) *MatchRepository {
	return &MatchRepository{ext: ext}
}

func (r *MatchRepository) FindByProviderID(ctx context.Context, providerMatchID int64) (*match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("provider_match_id", providerMatchID)).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, r.ext, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select match by provider id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) Save(ctx context.Context, m *match.Match) error {
	if m.ID == 0 {
		insertModel := matchInsertModel{
			ProviderMatchID:  m.ProviderMatchID,
			LeagueProviderID: m.LeagueProviderID,
			Season:           m.Season,
			Referee:          m.Referee,
			Venue:            m.Venue,
			Status:           m.Status,
			Elapsed:          m.Elapsed,
			KickoffAt:        m.KickoffAt,
			HomeGoals:        m.HomeGoals,
			AwayGoals:        m.AwayGoals,
			UpdatedAt:        m.UpdatedAt,
		}
		query, args, err := qb.InsertModel("matches", insertModel, "RETURNING id")
		if err != nil {
			return fmt.Errorf("build insert match query: %w", err)
		}
		if err := sqlx.GetContext(ctx, r.ext, &m.ID, query, args...); err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
		return nil
	}

	query, args, err := qb.Update("matches").
		Set("league_provider_id", m.LeagueProviderID).
		Set("season", m.Season).
		Set("referee", m.Referee).
		Set("venue", m.Venue).
		Set("status", m.Status).
		Set("elapsed", m.Elapsed).
		Set("kickoff_at", m.KickoffAt).
		Set("home_goals", m.HomeGoals).
		Set("away_goals", m.AwayGoals).
		Set("updated_at", m.UpdatedAt).
		Where(qb.Eq("id", m.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	return nil
}

type SideRepository struct {
	ext sqlx.ExtContext
}

func NewSideRepository(ext sqlx.ExtContext) *SideRepository {
	return &SideRepository{ext: ext}
}

func (r *SideRepository) ListByMatch(ctx context.Context, matchID int64) ([]*match.Side, error) {
	query, args, err := qb.Select("*").From("match_sides").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sides query: %w", err)
	}

	var rows []sideTableModel
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sides by match: %w", err)
	}

	out := make([]*match.Side, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SideRepository) SaveBatch(ctx context.Context, sides []*match.Side) error {
	for _, side := range sides {
		if err := r.save(ctx, side); err != nil {
			return err
		}
	}
	return nil
}

func (r *SideRepository) save(ctx context.Context, side *match.Side) error {
	if side.ID == 0 {
		insertModel := sideInsertModel{
			MatchID:           side.MatchID,
			ProviderTeamID:    side.ProviderTeamID,
			TeamName:          side.TeamName,
			Home:              side.Home,
			Formation:         side.Formation,
			PlayerPrimary:     side.PlayerColors.Primary,
			PlayerNumber:      side.PlayerColors.Number,
			PlayerBorder:      side.PlayerColors.Border,
			GoalkeeperPrimary: side.GoalkeeperColors.Primary,
			GoalkeeperNumber:  side.GoalkeeperColors.Number,
			GoalkeeperBorder:  side.GoalkeeperColors.Border,
			Outcome:           side.Outcome,
		}
		query, args, err := qb.InsertModel("match_sides", insertModel, "RETURNING id")
		if err != nil {
			return fmt.Errorf("build insert side query: %w", err)
		}
		if err := sqlx.GetContext(ctx, r.ext, &side.ID, query, args...); err != nil {
			return fmt.Errorf("insert side: %w", err)
		}
		return nil
	}

	query, args, err := qb.Update("match_sides").
		Set("provider_team_id", side.ProviderTeamID).
		Set("team_name", side.TeamName).
		Set("formation", side.Formation).
		Set("player_color_primary", side.PlayerColors.Primary).
		Set("player_color_number", side.PlayerColors.Number).
		Set("player_color_border", side.PlayerColors.Border).
		Set("goalkeeper_color_primary", side.GoalkeeperColors.Primary).
		Set("goalkeeper_color_number", side.GoalkeeperColors.Number).
		Set("goalkeeper_color_border", side.GoalkeeperColors.Border).
		Set("outcome", side.Outcome).
		Where(qb.Eq("id", side.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update side query: %w", err)
	}
	if _, err := r.ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update side: %w", err)
	}
	return nil
}
