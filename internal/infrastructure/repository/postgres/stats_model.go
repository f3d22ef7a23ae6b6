package postgres

import (
	"database/sql"

	"github.com/pitchside/matchsync/internal/domain/matchstats"
)

type teamStatsTableModel struct {
	ID            int64           `db:"id"`
	SideID        int64           `db:"side_id"`
	Possession    sql.NullFloat64 `db:"possession"`
	Shots         int             `db:"shots"`
	ShotsOnTarget int             `db:"shots_on_target"`
	Corners       int             `db:"corners"`
	Fouls         int             `db:"fouls"`
	Offsides      int             `db:"offsides"`
	YellowCards   int             `db:"yellow_cards"`
	RedCards      int             `db:"red_cards"`
	ExpectedGoals sql.NullFloat64 `db:"expected_goals"`
}

type teamStatsInsertModel struct {
	SideID        int64    `db:"side_id"`
	Possession    *float64 `db:"possession"`
	Shots         int      `db:"shots"`
	ShotsOnTarget int      `db:"shots_on_target"`
	Corners       int      `db:"corners"`
	Fouls         int      `db:"fouls"`
	Offsides      int      `db:"offsides"`
	YellowCards   int      `db:"yellow_cards"`
	RedCards      int      `db:"red_cards"`
	ExpectedGoals *float64 `db:"expected_goals"`
}

func (m teamStatsTableModel) toDomain() *matchstats.TeamStatistics {
	return &matchstats.TeamStatistics{
		ID:            m.ID,
		SideID:        m.SideID,
		Possession:    nullFloat64ToPtr(m.Possession),
		Shots:         m.Shots,
		ShotsOnTarget: m.ShotsOnTarget,
		Corners:       m.Corners,
		Fouls:         m.Fouls,
		Offsides:      m.Offsides,
		YellowCards:   m.YellowCards,
		RedCards:      m.RedCards,
		ExpectedGoals: nullFloat64ToPtr(m.ExpectedGoals),
	}
}

type playerStatsTableModel struct {
	ID             int64         `db:"id"`
	ParticipantID  int64         `db:"participant_id"`
	Minutes        sql.NullInt64 `db:"minutes"`
	Rating         string        `db:"rating"`
	Goals          int           `db:"goals"`
	Assists        int           `db:"assists"`
	Saves          int           `db:"saves"`
	Passes         int           `db:"passes"`
	KeyPasses      int           `db:"key_passes"`
	Tackles        int           `db:"tackles"`
	DuelsWon       int           `db:"duels_won"`
	Dribbles       int           `db:"dribbles"`
	FoulsDrawn     int           `db:"fouls_drawn"`
	FoulsCommitted int           `db:"fouls_committed"`
	YellowCards    int           `db:"yellow_cards"`
	RedCards       int           `db:"red_cards"`
	PenaltyScored  int           `db:"penalty_scored"`
	PenaltyMissed  int           `db:"penalty_missed"`
	PenaltySaved   int           `db:"penalty_saved"`
}

type playerStatsInsertModel struct {
	ParticipantID  int64  `db:"participant_id"`
	Minutes        *int   `db:"minutes"`
	Rating         string `db:"rating"`
	Goals          int    `db:"goals"`
	Assists        int    `db:"assists"`
	Saves          int    `db:"saves"`
	Passes         int    `db:"passes"`
	KeyPasses      int    `db:"key_passes"`
	Tackles        int    `db:"tackles"`
	DuelsWon       int    `db:"duels_won"`
	Dribbles       int    `db:"dribbles"`
	FoulsDrawn     int    `db:"fouls_drawn"`
	FoulsCommitted int    `db:"fouls_committed"`
	YellowCards    int    `db:"yellow_cards"`
	RedCards       int    `db:"red_cards"`
	PenaltyScored  int    `db:"penalty_scored"`
	PenaltyMissed  int    `db:"penalty_missed"`
	PenaltySaved   int    `db:"penalty_saved"`
}

func (m playerStatsTableModel) toDomain() *matchstats.PlayerStatistics {
	return &matchstats.PlayerStatistics{
		ID:             m.ID,
		ParticipantID:  m.ParticipantID,
		Minutes:        nullInt64ToIntPtr(m.Minutes),
		Rating:         m.Rating,
		Goals:          m.Goals,
		Assists:        m.Assists,
		Saves:          m.Saves,
		Passes:         m.Passes,
		KeyPasses:      m.KeyPasses,
		Tackles:        m.Tackles,
		DuelsWon:       m.DuelsWon,
		Dribbles:       m.Dribbles,
		FoulsDrawn:     m.FoulsDrawn,
		FoulsCommitted: m.FoulsCommitted,
		YellowCards:    m.YellowCards,
		RedCards:       m.RedCards,
		PenaltyScored:  m.PenaltyScored,
		PenaltyMissed:  m.PenaltyMissed,
		PenaltySaved:   m.PenaltySaved,
	}
}

func nullFloat64ToPtr(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	v := value.Float64
	return &v
}
