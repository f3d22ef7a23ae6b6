package usecase

import (
	"context"
	"time"
)

// MatchSnapshotProvider is the fetch side of the provider integration. The
// engine itself only consumes the snapshot; fetching is the poller's job.
type MatchSnapshotProvider interface {
	FetchMatch(ctx context.Context, providerMatchID int64) (MatchSnapshot, error)
	FetchLiveMatchIDs(ctx context.Context) ([]int64, error)
}

// MatchSnapshot is one full provider match payload. The provider re-delivers
// the entire match state on every poll; nothing in here is a diff.
type MatchSnapshot struct {
	ProviderMatchID  int64
	LeagueProviderID int64
	Season           int
	Referee          string
	Venue            string
	Status           string
	Elapsed          int
	KickoffAt        time.Time

	HomeTeamID   int64
	HomeTeamName string
	AwayTeamID   int64
	AwayTeamName string
	HomeGoals    *int
	AwayGoals    *int

	Events      []SnapshotEvent
	Lineups     []SnapshotLineup
	TeamStats   []SnapshotTeamStats
	PlayerStats []SnapshotTeamPlayerStats
}

// SnapshotPlayerRef is a possibly partial player reference on an event.
// Either field may be absent; substitution events are known to swap the two
// refs between polls.
type SnapshotPlayerRef struct {
	ID   *int64
	Name string
}

func (r SnapshotPlayerRef) Absent() bool {
	return (r.ID == nil || *r.ID <= 0) && r.Name == ""
}

type SnapshotEvent struct {
	Elapsed int
	Extra   *int
	TeamID  int64
	Player  SnapshotPlayerRef
	Assist  SnapshotPlayerRef
	Type    string
	Detail  string
	Comment *string
}

type SnapshotKitColors struct {
	Primary string
	Number  string
	Border  string
}

type SnapshotLineupPlayer struct {
	ID       *int64
	Name     string
	Number   *int
	Position string
	Grid     string
}

type SnapshotLineup struct {
	TeamID           int64
	TeamName         string
	Formation        string
	PlayerColors     SnapshotKitColors
	GoalkeeperColors SnapshotKitColors
	StartXI          []SnapshotLineupPlayer
	Substitutes      []SnapshotLineupPlayer
}

type SnapshotTeamStats struct {
	TeamID        int64
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

// SnapshotTeamPlayerStats is one side's player statistics section.
type SnapshotTeamPlayerStats struct {
	TeamID  int64
	Players []SnapshotPlayerStats
}

type SnapshotPlayerStats struct {
	ID             *int64
	Name           string
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
