package memory

import (
	"context"
	"sync"

	"github.com/pitchside/matchsync/internal/domain/match"
	"github.com/pitchside/matchsync/internal/domain/matchevent"
	"github.com/pitchside/matchsync/internal/domain/matchstats"
	"github.com/pitchside/matchsync/internal/domain/participant"
	"github.com/pitchside/matchsync/internal/usecase"
)

// Store is the in-memory stand-in for the relational store. Rows are kept
// as value copies in maps keyed by id, and all access goes through Do,
// which serializes runs and rolls the whole store back when the run errors.
type Store struct {
	mu     sync.Mutex
	nextID int64

	matches      map[int64]match.Match
	sides        map[int64]match.Side
	participants map[int64]participant.Participant
	players      map[int64]participant.Player
	events       map[int64]matchevent.Event
	teamStats    map[int64]matchstats.TeamStatistics
	playerStats  map[int64]matchstats.PlayerStatistics
}

func NewStore() *Store {
	return &Store{
		matches:      make(map[int64]match.Match),
		sides:        make(map[int64]match.Side),
		participants: make(map[int64]participant.Participant),
		players:      make(map[int64]participant.Player),
		events:       make(map[int64]matchevent.Event),
		teamStats:    make(map[int64]matchstats.TeamStatistics),
		playerStats:  make(map[int64]matchstats.PlayerStatistics),
	}
}

// Do implements usecase.UnitOfWork. The repositories handed to fn are bound
// to this store and valid only for the duration of the call.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos usecase.MatchRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.cloneTables()
	repos := usecase.MatchRepos{
		Matches:      &matchRepository{store: s},
		Sides:        &sideRepository{store: s},
		Participants: &participantRepository{store: s},
		Players:      &playerRepository{store: s},
		Events:       &eventRepository{store: s},
		TeamStats:    &teamStatsRepository{store: s},
		PlayerStats:  &playerStatsRepository{store: s},
		Scope:        &phaseScope{store: s},
	}
	if err := fn(ctx, repos); err != nil {
		s.restoreTables(snapshot)
		return err
	}
	return nil
}

// phaseScope implements usecase.PhaseScope with the same snapshot/restore
// trick Do uses, scoped to one phase instead of the whole run.
type phaseScope struct {
	store *Store
}

func (p *phaseScope) Nested(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := p.store.cloneTables()

	defer func() {
		if rec := recover(); rec != nil {
			p.store.restoreTables(snapshot)
			panic(rec)
		}
	}()

	if err := fn(ctx); err != nil {
		p.store.restoreTables(snapshot)
		return err
	}
	return nil
}

type tables struct {
	nextID       int64
	matches      map[int64]match.Match
	sides        map[int64]match.Side
	participants map[int64]participant.Participant
	players      map[int64]participant.Player
	events       map[int64]matchevent.Event
	teamStats    map[int64]matchstats.TeamStatistics
	playerStats  map[int64]matchstats.PlayerStatistics
}

func (s *Store) cloneTables() tables {
	return tables{
		nextID:       s.nextID,
		matches:      cloneTable(s.matches),
		sides:        cloneTable(s.sides),
		participants: cloneTable(s.participants),
		players:      cloneTable(s.players),
		events:       cloneTable(s.events),
		teamStats:    cloneTable(s.teamStats),
		playerStats:  cloneTable(s.playerStats),
	}
}

func (s *Store) restoreTables(snapshot tables) {
	s.nextID = snapshot.nextID
	s.matches = snapshot.matches
	s.sides = snapshot.sides
	s.participants = snapshot.participants
	s.players = snapshot.players
	s.events = snapshot.events
	s.teamStats = snapshot.teamStats
	s.playerStats = snapshot.playerStats
}

func cloneTable[T any](src map[int64]T) map[int64]T {
	out := make(map[int64]T, len(src))
	for id, row := range src {
		out[id] = row
	}
	return out
}

func (s *Store) allocateID() int64 {
	s.nextID++
	return s.nextID
}
