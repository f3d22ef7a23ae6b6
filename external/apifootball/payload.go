package apifootball

import (
	"strconv"
	"strings"
	"time"

	"github.com/pitchside/matchsync/internal/usecase"
)

type fixtureEnvelope struct {
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture struct {
		ID      int64  `json:"id"`
		Referee string `json:"referee"`
		Date    string `json:"date"`
		Venue   struct {
			Name string `json:"name"`
		} `json:"venue"`
		Status struct {
			Short   string `json:"short"`
			Elapsed *int   `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID     int64 `json:"id"`
		Season int   `json:"season"`
	} `json:"league"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
	Events     []eventItem       `json:"events"`
	Lineups    []lineupItem      `json:"lineups"`
	Statistics []teamStatsItem   `json:"statistics"`
	Players    []teamPlayersItem `json:"players"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type playerRef struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type eventItem struct {
	Time struct {
		Elapsed int  `json:"elapsed"`
		Extra   *int `json:"extra"`
	} `json:"time"`
	Team     teamRef   `json:"team"`
	Player   playerRef `json:"player"`
	Assist   playerRef `json:"assist"`
	Type     string    `json:"type"`
	Detail   string    `json:"detail"`
	Comments *string   `json:"comments"`
}

type kitColors struct {
	Primary string `json:"primary"`
	Number  string `json:"number"`
	Border  string `json:"border"`
}

type lineupItem struct {
	Team struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Colors struct {
			Player     kitColors `json:"player"`
			Goalkeeper kitColors `json:"goalkeeper"`
		} `json:"colors"`
	} `json:"team"`
	Formation   string           `json:"formation"`
	StartXI     []lineupSlotItem `json:"startXI"`
	Substitutes []lineupSlotItem `json:"substitutes"`
}

type lineupSlotItem struct {
	Player struct {
		ID     *int64 `json:"id"`
		Name   string `json:"name"`
		Number *int   `json:"number"`
		Pos    string `json:"pos"`
		Grid   string `json:"grid"`
	} `json:"player"`
}

type teamStatsItem struct {
	Team       teamRef `json:"team"`
	Statistics []struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	} `json:"statistics"`
}

type teamPlayersItem struct {
	Team    teamRef `json:"team"`
	Players []struct {
		Player     playerRef        `json:"player"`
		Statistics []playerStatItem `json:"statistics"`
	} `json:"players"`
}

type playerStatItem struct {
	Games struct {
		Minutes *int `json:"minutes"`
		Rating  any  `json:"rating"`
	} `json:"games"`
	Goals struct {
		Total   *int `json:"total"`
		Assists *int `json:"assists"`
		Saves   *int `json:"saves"`
	} `json:"goals"`
	Passes struct {
		Total *int `json:"total"`
		Key   *int `json:"key"`
	} `json:"passes"`
	Tackles struct {
		Total *int `json:"total"`
	} `json:"tackles"`
	Duels struct {
		Won *int `json:"won"`
	} `json:"duels"`
	Dribbles struct {
		Success *int `json:"success"`
	} `json:"dribbles"`
	Fouls struct {
		Drawn     *int `json:"drawn"`
		Committed *int `json:"committed"`
	} `json:"fouls"`
	Cards struct {
		Yellow *int `json:"yellow"`
		Red    *int `json:"red"`
	} `json:"cards"`
	Penalty struct {
		Scored *int `json:"scored"`
		Missed *int `json:"missed"`
		Saved  *int `json:"saved"`
	} `json:"penalty"`
}

func mapFixtureToSnapshot(item fixtureItem) usecase.MatchSnapshot {
	snap := usecase.MatchSnapshot{
		ProviderMatchID:  item.Fixture.ID,
		LeagueProviderID: item.League.ID,
		Season:           item.League.Season,
		Referee:          item.Fixture.Referee,
		Venue:            item.Fixture.Venue.Name,
		Status:           item.Fixture.Status.Short,
		HomeTeamID:       item.Teams.Home.ID,
		HomeTeamName:     item.Teams.Home.Name,
		AwayTeamID:       item.Teams.Away.ID,
		AwayTeamName:     item.Teams.Away.Name,
		HomeGoals:        item.Goals.Home,
		AwayGoals:        item.Goals.Away,
	}
	if item.Fixture.Status.Elapsed != nil {
		snap.Elapsed = *item.Fixture.Status.Elapsed
	}
	if parsed, err := time.Parse(time.RFC3339, item.Fixture.Date); err == nil {
		snap.KickoffAt = parsed.UTC()
	}

	for _, raw := range item.Events {
		snap.Events = append(snap.Events, usecase.SnapshotEvent{
			Elapsed: raw.Time.Elapsed,
			Extra:   raw.Time.Extra,
			TeamID:  raw.Team.ID,
			Player:  usecase.SnapshotPlayerRef{ID: raw.Player.ID, Name: raw.Player.Name},
			Assist:  usecase.SnapshotPlayerRef{ID: raw.Assist.ID, Name: raw.Assist.Name},
			Type:    raw.Type,
			Detail:  raw.Detail,
			Comment: raw.Comments,
		})
	}

	for _, raw := range item.Lineups {
		lineup := usecase.SnapshotLineup{
			TeamID:    raw.Team.ID,
			TeamName:  raw.Team.Name,
			Formation: raw.Formation,
			PlayerColors: usecase.SnapshotKitColors{
				Primary: raw.Team.Colors.Player.Primary,
				Number:  raw.Team.Colors.Player.Number,
				Border:  raw.Team.Colors.Player.Border,
			},
			GoalkeeperColors: usecase.SnapshotKitColors{
				Primary: raw.Team.Colors.Goalkeeper.Primary,
				Number:  raw.Team.Colors.Goalkeeper.Number,
				Border:  raw.Team.Colors.Goalkeeper.Border,
			},
		}
		for _, slot := range raw.StartXI {
			lineup.StartXI = append(lineup.StartXI, mapLineupPlayer(slot))
		}
		for _, slot := range raw.Substitutes {
			lineup.Substitutes = append(lineup.Substitutes, mapLineupPlayer(slot))
		}
		snap.Lineups = append(snap.Lineups, lineup)
	}

	for _, raw := range item.Statistics {
		snap.TeamStats = append(snap.TeamStats, mapTeamStats(raw))
	}

	for _, raw := range item.Players {
		section := usecase.SnapshotTeamPlayerStats{TeamID: raw.Team.ID}
		for _, row := range raw.Players {
			if len(row.Statistics) == 0 {
				continue
			}
			section.Players = append(section.Players, mapPlayerStats(row.Player, row.Statistics[0]))
		}
		snap.PlayerStats = append(snap.PlayerStats, section)
	}

	return snap
}

func mapLineupPlayer(slot lineupSlotItem) usecase.SnapshotLineupPlayer {
	return usecase.SnapshotLineupPlayer{
		ID:       slot.Player.ID,
		Name:     slot.Player.Name,
		Number:   slot.Player.Number,
		Position: slot.Player.Pos,
		Grid:     slot.Player.Grid,
	}
}

// mapTeamStats flattens the provider's type/value statistic list. Values
// arrive as numbers, numeric strings or percent strings depending on the
// statistic.
func mapTeamStats(raw teamStatsItem) usecase.SnapshotTeamStats {
	out := usecase.SnapshotTeamStats{TeamID: raw.Team.ID}
	for _, stat := range raw.Statistics {
		switch strings.ToLower(strings.TrimSpace(stat.Type)) {
		case "ball possession":
			out.Possession = anyToFloatPtr(stat.Value)
		case "total shots":
			out.Shots = anyToInt(stat.Value)
		case "shots on goal":
			out.ShotsOnTarget = anyToInt(stat.Value)
		case "corner kicks":
			out.Corners = anyToInt(stat.Value)
		case "fouls":
			out.Fouls = anyToInt(stat.Value)
		case "offsides":
			out.Offsides = anyToInt(stat.Value)
		case "yellow cards":
			out.YellowCards = anyToInt(stat.Value)
		case "red cards":
			out.RedCards = anyToInt(stat.Value)
		case "expected_goals":
			out.ExpectedGoals = anyToFloatPtr(stat.Value)
		}
	}
	return out
}

func mapPlayerStats(player playerRef, stat playerStatItem) usecase.SnapshotPlayerStats {
	return usecase.SnapshotPlayerStats{
		ID:             player.ID,
		Name:           player.Name,
		Minutes:        stat.Games.Minutes,
		Rating:         anyToString(stat.Games.Rating),
		Goals:          intOrZero(stat.Goals.Total),
		Assists:        intOrZero(stat.Goals.Assists),
		Saves:          intOrZero(stat.Goals.Saves),
		Passes:         intOrZero(stat.Passes.Total),
		KeyPasses:      intOrZero(stat.Passes.Key),
		Tackles:        intOrZero(stat.Tackles.Total),
		DuelsWon:       intOrZero(stat.Duels.Won),
		Dribbles:       intOrZero(stat.Dribbles.Success),
		FoulsDrawn:     intOrZero(stat.Fouls.Drawn),
		FoulsCommitted: intOrZero(stat.Fouls.Committed),
		YellowCards:    intOrZero(stat.Cards.Yellow),
		RedCards:       intOrZero(stat.Cards.Red),
		PenaltyScored:  intOrZero(stat.Penalty.Scored),
		PenaltyMissed:  intOrZero(stat.Penalty.Missed),
		PenaltySaved:   intOrZero(stat.Penalty.Saved),
	}
}

func intOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func anyToInt(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func anyToFloatPtr(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"), 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

func anyToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
