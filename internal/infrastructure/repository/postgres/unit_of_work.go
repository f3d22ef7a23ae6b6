package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchsync/internal/usecase"
)

// UnitOfWork runs one sync run inside a single database transaction. Every
// repository handed to the callback shares that transaction, so a fatal
// phase rolls back all writes of the run.
type UnitOfWork struct {
	db *sqlx.DB
}

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos usecase.MatchRepos) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := usecase.MatchRepos{
		Matches:      NewMatchRepository(tx),
		Sides:        NewSideRepository(tx),
		Participants: NewParticipantRepository(tx),
		Players:      NewPlayerRepository(tx),
		Events:       NewEventRepository(tx),
		TeamStats:    NewTeamStatsRepository(tx),
		PlayerStats:  NewPlayerStatsRepository(tx),
		Scope:        &savepointScope{tx: tx},
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// savepointScope implements usecase.PhaseScope on a database savepoint. A
// statement error inside a phase poisons the lib/pq transaction; rolling
// back to the savepoint both discards the phase's writes and makes the
// transaction usable for the phases that follow.
type savepointScope struct {
	tx  *sqlx.Tx
	seq int
}

func (s *savepointScope) Nested(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s.seq++
	name := fmt.Sprintf("sync_phase_%d", s.seq)

	if _, err := s.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("create savepoint %s: %w", name, err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			_, _ = s.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name)
			panic(rec)
		}
	}()

	if err := fn(ctx); err != nil {
		if _, rbErr := s.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return fmt.Errorf("rollback to savepoint %s after %w: %v", name, err, rbErr)
		}
		return err
	}

	if _, err := s.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("release savepoint %s: %w", name, err)
	}
	return nil
}
