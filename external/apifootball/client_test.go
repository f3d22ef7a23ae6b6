package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const fixturePayload = `{
  "response": [
    {
      "fixture": {
        "id": 1035045,
        "referee": "M. Oliver",
        "date": "2026-08-22T15:00:00+00:00",
        "venue": {"name": "Anfield"},
        "status": {"short": "2H", "elapsed": 63}
      },
      "league": {"id": 39, "season": 2026},
      "teams": {"home": {"id": 10, "name": "Team A"}, "away": {"id": 20, "name": "Team B"}},
      "goals": {"home": 1, "away": 0},
      "events": [
        {
          "time": {"elapsed": 60, "extra": null},
          "team": {"id": 10, "name": "Team A"},
          "player": {"id": 2, "name": "Y"},
          "assist": {"id": 1, "name": "X"},
          "type": "subst",
          "detail": "Substitution 1",
          "comments": null
        }
      ],
      "lineups": [
        {
          "team": {
            "id": 10,
            "name": "Team A",
            "colors": {
              "player": {"primary": "e60000", "number": "ffffff", "border": "e60000"},
              "goalkeeper": {"primary": "1a5f1a", "number": "ffffff", "border": "1a5f1a"}
            }
          },
          "formation": "4-3-3",
          "startXI": [{"player": {"id": 1, "name": "X", "number": 9, "pos": "F", "grid": "4:1"}}],
          "substitutes": [{"player": {"id": 2, "name": "Y", "number": 14, "pos": "M", "grid": null}}]
        }
      ],
      "statistics": [
        {
          "team": {"id": 10, "name": "Team A"},
          "statistics": [
            {"type": "Ball Possession", "value": "58%"},
            {"type": "Total Shots", "value": 12},
            {"type": "Shots on Goal", "value": 5},
            {"type": "expected_goals", "value": "1.42"}
          ]
        }
      ],
      "players": [
        {
          "team": {"id": 10, "name": "Team A"},
          "players": [
            {
              "player": {"id": 1, "name": "X"},
              "statistics": [
                {
                  "games": {"minutes": 60, "rating": "7.3"},
                  "goals": {"total": 1, "assists": null, "saves": null},
                  "passes": {"total": 34, "key": 2}
                }
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{
		BaseURL:    server.URL,
		Key:        "secret-key",
		MaxRetries: 2,
	})
}

func TestFetchMatchParsesFullPayload(t *testing.T) {
	var gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(apiKeyHeader)
		if got := r.URL.Query().Get("id"); got != "1035045" {
			t.Fatalf("unexpected fixture id query: %q", got)
		}
		_, _ = w.Write([]byte(fixturePayload))
	})

	snap, err := client.FetchMatch(context.Background(), 1035045)
	if err != nil {
		t.Fatalf("fetch match: %v", err)
	}
	if gotKey != "secret-key" {
		t.Fatalf("api key header not sent: %q", gotKey)
	}

	if snap.ProviderMatchID != 1035045 || snap.LeagueProviderID != 39 || snap.Season != 2026 {
		t.Fatalf("unexpected fixture identity: %+v", snap)
	}
	if snap.Status != "2H" || snap.Elapsed != 63 || snap.Venue != "Anfield" {
		t.Fatalf("unexpected fixture state: %+v", snap)
	}
	if snap.HomeTeamID != 10 || snap.AwayTeamID != 20 {
		t.Fatalf("unexpected teams: home=%d away=%d", snap.HomeTeamID, snap.AwayTeamID)
	}
	if snap.HomeGoals == nil || *snap.HomeGoals != 1 || snap.AwayGoals == nil || *snap.AwayGoals != 0 {
		t.Fatalf("unexpected goals: %+v", snap)
	}

	if len(snap.Events) != 1 {
		t.Fatalf("unexpected event count: %d", len(snap.Events))
	}
	event := snap.Events[0]
	if event.Type != "subst" || event.Player.Name != "Y" || event.Assist.Name != "X" {
		t.Fatalf("unexpected event: %+v", event)
	}

	if len(snap.Lineups) != 1 {
		t.Fatalf("unexpected lineup count: %d", len(snap.Lineups))
	}
	lineup := snap.Lineups[0]
	if lineup.Formation != "4-3-3" || lineup.PlayerColors.Primary != "e60000" {
		t.Fatalf("unexpected lineup: %+v", lineup)
	}
	if len(lineup.StartXI) != 1 || lineup.StartXI[0].Position != "F" || lineup.StartXI[0].Grid != "4:1" {
		t.Fatalf("unexpected starter: %+v", lineup.StartXI)
	}
	if len(lineup.Substitutes) != 1 || lineup.Substitutes[0].Name != "Y" {
		t.Fatalf("unexpected substitute: %+v", lineup.Substitutes)
	}

	if len(snap.TeamStats) != 1 {
		t.Fatalf("unexpected team stats count: %d", len(snap.TeamStats))
	}
	stats := snap.TeamStats[0]
	if stats.Possession == nil || *stats.Possession != 58 {
		t.Fatalf("possession not parsed from percent string: %+v", stats.Possession)
	}
	if stats.Shots != 12 || stats.ShotsOnTarget != 5 {
		t.Fatalf("unexpected shot stats: %+v", stats)
	}
	if stats.ExpectedGoals == nil || *stats.ExpectedGoals != 1.42 {
		t.Fatalf("expected goals not parsed: %+v", stats.ExpectedGoals)
	}

	if len(snap.PlayerStats) != 1 || len(snap.PlayerStats[0].Players) != 1 {
		t.Fatalf("unexpected player stats: %+v", snap.PlayerStats)
	}
	row := snap.PlayerStats[0].Players[0]
	if row.Name != "X" || row.Rating != "7.3" || row.Goals != 1 || row.Passes != 34 || row.KeyPasses != 2 {
		t.Fatalf("unexpected player stat row: %+v", row)
	}
	if row.Minutes == nil || *row.Minutes != 60 {
		t.Fatalf("minutes not parsed: %+v", row.Minutes)
	}
}

func TestFetchMatchRetriesTransientFailures(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(fixturePayload))
	})

	if _, err := client.FetchMatch(context.Background(), 1035045); err != nil {
		t.Fatalf("fetch match after retry: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("unexpected attempt count: %d", attempts)
	}
}

func TestFetchMatchDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	})

	if _, err := client.FetchMatch(context.Background(), 1035045); err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 1 {
		t.Fatalf("client error was retried: attempts=%d", attempts)
	}
}

func TestFetchLiveMatchIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("live"); got != "all" {
			t.Fatalf("unexpected live query: %q", got)
		}
		_, _ = w.Write([]byte(`{"response":[{"fixture":{"id":11}},{"fixture":{"id":12}}]}`))
	})

	ids, err := client.FetchLiveMatchIDs(context.Background())
	if err != nil {
		t.Fatalf("fetch live ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != 11 || ids[1] != 12 {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
