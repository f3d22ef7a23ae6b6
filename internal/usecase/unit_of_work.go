package usecase

import (
	"context"

	"github.com/pitchside/matchsync/internal/domain/match"
	"github.com/pitchside/matchsync/internal/domain/matchevent"
	"github.com/pitchside/matchsync/internal/domain/matchstats"
	"github.com/pitchside/matchsync/internal/domain/participant"
)

// MatchRepos bundles every repository one sync run touches. Inside
// UnitOfWork.Do all of them are bound to the same transaction.
type MatchRepos struct {
	Matches      match.Repository
	Sides        match.SideRepository
	Participants participant.Repository
	Players      participant.MasterRepository
	Events       matchevent.Repository
	TeamStats    matchstats.TeamRepository
	PlayerStats  matchstats.PlayerRepository

	// Scope nests a group of writes inside the run's transaction.
	Scope PhaseScope
}

// PhaseScope runs fn as a nested scope of the surrounding transaction.
// When fn errors, every write it made is undone while the transaction
// itself stays usable, so one failed phase leaves no partial rows behind.
type PhaseScope interface {
	Nested(ctx context.Context, fn func(ctx context.Context) error) error
}

// UnitOfWork runs fn atomically: every write issued through the repos it
// hands to fn commits together, or rolls back together when fn errors.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos MatchRepos) error) error
}
