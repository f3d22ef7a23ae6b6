package match

import (
	"strings"
	"time"
)

const (
	OutcomeWin  = "WIN"
	OutcomeLoss = "LOSS"
	OutcomeDraw = "DRAW"
)

// Match is the persisted fixture record for one provider match.
type Match struct {
	ID               int64
	ProviderMatchID  int64
	LeagueProviderID int64
	Season           int
	Referee          string
	Venue            string
	Status           string
	Elapsed          int
	KickoffAt        time.Time
	HomeGoals        *int
	AwayGoals        *int
	UpdatedAt        time.Time
}

// KitColors is one provider color triple (shirt, number, border), each a
// hex string without the leading '#', possibly empty.
type KitColors struct {
	Primary string
	Number  string
	Border  string
}

// Side is one of the two team sides of a match. Participants and statistics
// reference the side by id; the side itself carries no back-pointers.
type Side struct {
	ID               int64
	MatchID          int64
	ProviderTeamID   int64
	TeamName         string
	Home             bool
	Formation        string
	PlayerColors     KitColors
	GoalkeeperColors KitColors
	Outcome          string
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return "NS"
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "1H", "2H", "HT", "ET", "BT", "P", "LIVE", "INT":
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

// OutcomeFromGoals derives the win/loss/draw flag for a side from the final
// goal counts; empty until both counts are known.
func OutcomeFromGoals(home bool, homeGoals, awayGoals *int) string {
	if homeGoals == nil || awayGoals == nil {
		return ""
	}
	own, other := *homeGoals, *awayGoals
	if !home {
		own, other = other, own
	}
	switch {
	case own > other:
		return OutcomeWin
	case own < other:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}
