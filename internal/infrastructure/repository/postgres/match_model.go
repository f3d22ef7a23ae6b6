package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchside/matchsync/internal/domain/match"
)

type matchTableModel struct {
	ID               int64         `db:"id"`
	ProviderMatchID  int64         `db:"provider_match_id"`
	LeagueProviderID int64         `db:"league_provider_id"`
	Season           int           `db:"season"`
	Referee          string        `db:"referee"`
	Venue            string        `db:"venue"`
	Status           string        `db:"status"`
	Elapsed          int           `db:"elapsed"`
	KickoffAt        time.Time     `db:"kickoff_at"`
	HomeGoals        sql.NullInt64 `db:"home_goals"`
	AwayGoals        sql.NullInt64 `db:"away_goals"`
	UpdatedAt        time.Time     `db:"updated_at"`
	CreatedAt        time.Time     `db:"created_at"`
}

type matchInsertModel struct {
	ProviderMatchID  int64     `db:"provider_match_id"`
	LeagueProviderID int64     `db:"league_provider_id"`
	Season           int       `db:"season"`
	Referee          string    `db:"referee"`
	Venue            string    `db:"venue"`
	Status           string    `db:"status"`
	Elapsed          int       `db:"elapsed"`
	KickoffAt        time.Time `db:"kickoff_at"`
	HomeGoals        *int      `db:"home_goals"`
	AwayGoals        *int      `db:"away_goals"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (m matchTableModel) toDomain() *match.Match {
	return &match.Match{
		ID:               m.ID,
		ProviderMatchID:  m.ProviderMatchID,
		LeagueProviderID: m.LeagueProviderID,
		Season:           m.Season,
		Referee:          m.Referee,
		Venue:            m.Venue,
		Status:           m.Status,
		Elapsed:          m.Elapsed,
		KickoffAt:        m.KickoffAt,
		HomeGoals:        nullInt64ToIntPtr(m.HomeGoals),
		AwayGoals:        nullInt64ToIntPtr(m.AwayGoals),
		UpdatedAt:        m.UpdatedAt,
	}
}

type sideTableModel struct {
	ID                int64  `db:"id"`
	MatchID           int64  `db:"match_id"`
	ProviderTeamID    int64  `db:"provider_team_id"`
	TeamName          string `db:"team_name"`
	Home              bool   `db:"home"`
	Formation         string `db:"formation"`
	PlayerPrimary     string `db:"player_color_primary"`
	PlayerNumber      string `db:"player_color_number"`
	PlayerBorder      string `db:"player_color_border"`
	GoalkeeperPrimary string `db:"goalkeeper_color_primary"`
	GoalkeeperNumber  string `db:"goalkeeper_color_number"`
	GoalkeeperBorder  string `db:"goalkeeper_color_border"`
	Outcome           string `db:"outcome"`
}

type sideInsertModel struct {
	MatchID           int64  `db:"match_id"`
	ProviderTeamID    int64  `db:"provider_team_id"`
	TeamName          string `db:"team_name"`
	Home              bool   `db:"home"`
	Formation         string `db:"formation"`
	PlayerPrimary     string `db:"player_color_primary"`
	PlayerNumber      string `db:"player_color_number"`
	PlayerBorder      string `db:"player_color_border"`
	GoalkeeperPrimary string `db:"goalkeeper_color_primary"`
	GoalkeeperNumber  string `db:"goalkeeper_color_number"`
	GoalkeeperBorder  string `db:"goalkeeper_color_border"`
	Outcome           string `db:"outcome"`
}

func (m sideTableModel) toDomain() *match.Side {
	return &match.Side{
		ID:             m.ID,
		MatchID:        m.MatchID,
		ProviderTeamID: m.ProviderTeamID,
		TeamName:       m.TeamName,
		Home:           m.Home,
		Formation:      m.Formation,
		PlayerColors: match.KitColors{
			Primary: m.PlayerPrimary,
			Number:  m.PlayerNumber,
			Border:  m.PlayerBorder,
		},
		GoalkeeperColors: match.KitColors{
			Primary: m.GoalkeeperPrimary,
			Number:  m.GoalkeeperNumber,
			Border:  m.GoalkeeperBorder,
		},
		Outcome: m.Outcome,
	}
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}
