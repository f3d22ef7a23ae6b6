package matchstats

// TeamStatistics is the per-side statistics row, one per match side.
type TeamStatistics struct {
	ID            int64
	SideID        int64
	Possession    *float64
	Shots         int
	ShotsOnTarget int
	Corners       int
	Fouls         int
	Offsides      int
	YellowCards   int
	RedCards      int
	ExpectedGoals *float64
}

// PlayerStatistics is the per-participant statistics row.
type PlayerStatistics struct {
	ID             int64
	ParticipantID  int64
	Minutes        *int
	Rating         string
	Goals          int
	Assists        int
	Saves          int
	Passes         int
	KeyPasses      int
	Tackles        int
	DuelsWon       int
	Dribbles       int
	FoulsDrawn     int
	FoulsCommitted int
	YellowCards    int
	RedCards       int
	PenaltyScored  int
	PenaltyMissed  int
	PenaltySaved   int
}
