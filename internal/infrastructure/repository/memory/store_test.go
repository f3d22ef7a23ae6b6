package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/pitchside/matchsync/internal/domain/match"
	"github.com/pitchside/matchsync/internal/domain/matchevent"
	"github.com/pitchside/matchsync/internal/usecase"
)

func TestStoreDoCommitsOnSuccess(t *testing.T) {
	store := NewStore()

	err := store.Do(context.Background(), func(ctx context.Context, repos usecase.MatchRepos) error {
		m := &match.Match{ProviderMatchID: 5}
		if err := repos.Matches.Save(ctx, m); err != nil {
			return err
		}
		if m.ID == 0 {
			t.Fatalf("save did not assign an id")
		}
		return repos.Events.InsertBatch(ctx, []*matchevent.Event{
			{MatchID: m.ID, Sequence: 0, Elapsed: 10, Type: matchevent.TypeGoal},
			{MatchID: m.ID, Sequence: 1, Elapsed: 55, Type: matchevent.TypeCard},
		})
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}

	if err := store.Do(context.Background(), func(ctx context.Context, repos usecase.MatchRepos) error {
		m, found, err := repos.Matches.FindByProviderID(ctx, 5)
		if err != nil || !found {
			t.Fatalf("committed match not found: found=%v err=%v", found, err)
		}
		events, err := repos.Events.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}
		if len(events) != 2 || events[0].Sequence != 0 || events[1].Sequence != 1 {
			t.Fatalf("unexpected events: %+v", events)
		}
		if err := repos.Events.DeleteByMatch(ctx, m.ID); err != nil {
			return err
		}
		events, err = repos.Events.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}
		if len(events) != 0 {
			t.Fatalf("events survived delete: %+v", events)
		}
		return nil
	}); err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestStoreNestedScopeRollsBackPhaseOnly(t *testing.T) {
	store := NewStore()
	boom := errors.New("boom")

	err := store.Do(context.Background(), func(ctx context.Context, repos usecase.MatchRepos) error {
		m := &match.Match{ProviderMatchID: 12}
		if err := repos.Matches.Save(ctx, m); err != nil {
			return err
		}

		nestedErr := repos.Scope.Nested(ctx, func(ctx context.Context) error {
			if err := repos.Events.InsertBatch(ctx, []*matchevent.Event{
				{MatchID: m.ID, Sequence: 0, Elapsed: 20, Type: matchevent.TypeGoal},
			}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(nestedErr, boom) {
			t.Fatalf("unexpected nested error: %v", nestedErr)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}

	if err := store.Do(context.Background(), func(ctx context.Context, repos usecase.MatchRepos) error {
		m, found, err := repos.Matches.FindByProviderID(ctx, 12)
		if err != nil || !found {
			t.Fatalf("write outside the nested scope was rolled back: found=%v err=%v", found, err)
		}
		events, err := repos.Events.ListByMatch(ctx, m.ID)
		if err != nil {
			return err
		}
		if len(events) != 0 {
			t.Fatalf("nested scope writes survived its error: %+v", events)
		}
		return nil
	}); err != nil {
		t.Fatalf("do: %v", err)
	}
}

func TestStoreDoRollsBackOnError(t *testing.T) {
	store := NewStore()
	boom := errors.New("boom")

	err := store.Do(context.Background(), func(ctx context.Context, repos usecase.MatchRepos) error {
		if err := repos.Matches.Save(ctx, &match.Match{ProviderMatchID: 9}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Do(context.Background(), func(ctx context.Context, repos usecase.MatchRepos) error {
		_, found, err := repos.Matches.FindByProviderID(ctx, 9)
		if err != nil {
			return err
		}
		if found {
			t.Fatalf("rolled-back match is still visible")
		}
		return nil
	}); err != nil {
		t.Fatalf("do: %v", err)
	}
}
