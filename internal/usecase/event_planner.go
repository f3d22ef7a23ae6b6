package usecase

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pitchside/matchsync/internal/domain/matchevent"
	"github.com/pitchside/matchsync/internal/domain/matchkey"
	"github.com/pitchside/matchsync/internal/platform/logging"
)

// PlannedEvent is one normalized, sequenced event record ready for
// persistence. For substitutions Player is the sub-in and Assist the
// sub-out, regardless of which field the raw payload used.
type PlannedEvent struct {
	Sequence  int
	Elapsed   int
	Extra     *int
	TeamID    int64
	Home      bool
	Type      string
	Detail    string
	Comment   *string
	Player    SnapshotPlayerRef
	Assist    SnapshotPlayerRef
	PlayerKey matchkey.Key
	AssistKey matchkey.Key
}

type eventPlan struct {
	events []PlannedEvent
}

var substitutionSeqRegex = regexp.MustCompile(`(?i)substitution\s+(\d+)`)

// planMatchEvents normalizes, rewrites and sequences the snapshot's raw
// event list and registers event-only participants into the identity
// context. A malformed event feed must never abort the sync: any panic in
// here degrades to an empty plan.
func planMatchEvents(ctx context.Context, snap MatchSnapshot, identities *identityContext, logger *logging.Logger) (plan eventPlan) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WarnContext(ctx, "event planning failed, continuing without events",
				"provider_match_id", snap.ProviderMatchID,
				"panic", rec,
			)
			plan = eventPlan{}
		}
	}()

	return buildEventPlan(ctx, snap, identities, logger)
}

func buildEventPlan(ctx context.Context, snap MatchSnapshot, identities *identityContext, logger *logging.Logger) eventPlan {
	sim, ok := newLineupSimulation(snap)
	if !ok {
		// Without a usable lineup on both sides substitutions cannot be
		// disambiguated; skip event planning for this poll entirely.
		logger.WarnContext(ctx, "lineup unusable for event planning, returning empty plan",
			"provider_match_id", snap.ProviderMatchID,
		)
		return eventPlan{}
	}

	events := make([]PlannedEvent, 0, len(snap.Events))
	// Substitutions are normalized in snapshot order, before any time
	// sorting: the simulation depends on the order the provider delivered
	// the events in, and is redone from scratch every run because the
	// provider can flip the player/assist assignment between polls.
	for _, raw := range snap.Events {
		planned := PlannedEvent{
			Elapsed: raw.Elapsed,
			Extra:   cloneIntPtr(raw.Extra),
			TeamID:  raw.TeamID,
			Home:    raw.TeamID == snap.HomeTeamID,
			Type:    strings.TrimSpace(raw.Type),
			Detail:  strings.TrimSpace(raw.Detail),
			Comment: raw.Comment,
			Player:  raw.Player,
			Assist:  raw.Assist,
		}

		if isSubstitutionType(planned.Type) {
			sim.normalizeSubstitution(ctx, &planned, logger)
		}
		rewriteEventType(ctx, snap, &planned, logger)

		planned.PlayerKey = matchkey.ForPlayer(planned.Player.ID, planned.Player.Name)
		planned.AssistKey = matchkey.ForPlayer(planned.Assist.ID, planned.Assist.Name)
		events = append(events, planned)
	}

	sequenceEvents(events)
	registerEventParticipants(events, identities)

	return eventPlan{events: events}
}

// lineupSimulation tracks who is on the pitch per side while substitution
// events are replayed in snapshot order.
type lineupSimulation struct {
	homeTeamID int64
	awayTeamID int64

	starting   map[bool]map[matchkey.Key]struct{} // keyed by home flag
	substitute map[bool]map[matchkey.Key]struct{}
}

func newLineupSimulation(snap MatchSnapshot) (*lineupSimulation, bool) {
	if snap.HomeTeamID <= 0 || snap.AwayTeamID <= 0 {
		return nil, false
	}

	sim := &lineupSimulation{
		homeTeamID: snap.HomeTeamID,
		awayTeamID: snap.AwayTeamID,
		starting: map[bool]map[matchkey.Key]struct{}{
			true:  make(map[matchkey.Key]struct{}),
			false: make(map[matchkey.Key]struct{}),
		},
		substitute: map[bool]map[matchkey.Key]struct{}{
			true:  make(map[matchkey.Key]struct{}),
			false: make(map[matchkey.Key]struct{}),
		},
	}

	for _, lineup := range snap.Lineups {
		var home bool
		switch lineup.TeamID {
		case snap.HomeTeamID:
			home = true
		case snap.AwayTeamID:
			home = false
		default:
			continue
		}
		for _, player := range lineup.StartXI {
			if key := matchkey.ForPlayer(player.ID, player.Name); !key.IsZero() {
				sim.starting[home][key] = struct{}{}
			}
		}
		for _, player := range lineup.Substitutes {
			if key := matchkey.ForPlayer(player.ID, player.Name); !key.IsZero() {
				sim.substitute[home][key] = struct{}{}
			}
		}
	}

	for _, home := range []bool{true, false} {
		if len(sim.starting[home]) == 0 || len(sim.substitute[home]) == 0 {
			return nil, false
		}
	}

	return sim, true
}

// normalizeSubstitution decides which of the event's two player fields is
// the sub-in and which the sub-out, using the simulated on-field sets for
// the event's side, then advances the simulation. Ambiguous events (both
// fields in the same set, or a field unknown to either set) keep the
// original assignment.
func (s *lineupSimulation) normalizeSubstitution(ctx context.Context, event *PlannedEvent, logger *logging.Logger) {
	home := event.TeamID == s.homeTeamID
	if !home && event.TeamID != s.awayTeamID {
		logger.WarnContext(ctx, "substitution team id matches neither side, skipping normalization",
			"team_id", event.TeamID,
		)
		return
	}

	playerKey := matchkey.ForPlayer(event.Player.ID, event.Player.Name)
	assistKey := matchkey.ForPlayer(event.Assist.ID, event.Assist.Name)
	if playerKey.IsZero() || assistKey.IsZero() {
		return
	}

	playerStarting := s.contains(s.starting[home], playerKey)
	playerBench := s.contains(s.substitute[home], playerKey)
	assistStarting := s.contains(s.starting[home], assistKey)
	assistBench := s.contains(s.substitute[home], assistKey)

	var subIn, subOut matchkey.Key
	switch {
	case playerBench && assistStarting:
		// Already in normalized order.
		subIn, subOut = playerKey, assistKey
	case playerStarting && assistBench:
		event.Player, event.Assist = event.Assist, event.Player
		subIn, subOut = assistKey, playerKey
	default:
		logger.WarnContext(ctx, "ambiguous substitution, keeping original field order",
			"player_key", playerKey.String(),
			"assist_key", assistKey.String(),
			"player_starting", playerStarting,
			"player_bench", playerBench,
			"assist_starting", assistStarting,
			"assist_bench", assistBench,
		)
		return
	}

	// Swap the players between the sets so the same position can be
	// substituted again later in the match.
	delete(s.substitute[home], subIn)
	s.starting[home][subIn] = struct{}{}
	delete(s.starting[home], subOut)
	s.substitute[home][subOut] = struct{}{}
}

func (s *lineupSimulation) contains(set map[matchkey.Key]struct{}, key matchkey.Key) bool {
	_, ok := set[key]
	return ok
}

// rewriteEventType applies the provider-quirk rewrites that are independent
// of substitution normalization.
func rewriteEventType(ctx context.Context, snap MatchSnapshot, event *PlannedEvent, logger *logging.Logger) {
	switch {
	case isGoalType(event.Type) && strings.EqualFold(event.Detail, "Missed Penalty"):
		// A missed penalty arrives as a goal event but is a shot.
		event.Type = matchevent.TypeEtc

	case isGoalType(event.Type) && strings.EqualFold(event.Detail, "Own Goal"):
		// The provider records own goals against the scorer's team; the
		// goal is credited to the opposing side.
		switch event.TeamID {
		case snap.HomeTeamID:
			event.TeamID = snap.AwayTeamID
			event.Home = false
		case snap.AwayTeamID:
			event.TeamID = snap.HomeTeamID
			event.Home = true
		default:
			logger.WarnContext(ctx, "own goal team id matches neither side, keeping attribution",
				"team_id", event.TeamID,
				"provider_match_id", snap.ProviderMatchID,
			)
		}

	case isSubstitutionType(event.Type) && event.Player.Absent() && event.Assist.Absent():
		event.Type = matchevent.TypeUnknown
	}
}

// sequenceEvents orders the normalized events deterministically and assigns
// the 0-based sequence, discarding the snapshot order.
func sequenceEvents(events []PlannedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Elapsed != events[j].Elapsed {
			return events[i].Elapsed < events[j].Elapsed
		}
		extraI, extraJ := intPtrValue(events[i].Extra), intPtrValue(events[j].Extra)
		if extraI != extraJ {
			return extraI < extraJ
		}
		if events[i].TeamID != events[j].TeamID {
			return events[i].TeamID < events[j].TeamID
		}
		return substitutionSequence(events[i]) < substitutionSequence(events[j])
	})
	for idx := range events {
		events[idx].Sequence = idx
	}
}

// substitutionSequence parses the ordinal from "Substitution <N>" details.
// Non-substitution events and unparseable details sort last among ties.
func substitutionSequence(event PlannedEvent) int {
	if !isSubstitutionType(event.Type) {
		return math.MaxInt
	}
	groups := substitutionSeqRegex.FindStringSubmatch(event.Detail)
	if len(groups) != 2 {
		return math.MaxInt
	}
	seq, err := strconv.Atoi(groups[1])
	if err != nil {
		return math.MaxInt
	}
	return seq
}

// registerEventParticipants inserts players seen only in events into the
// identity context. Such players were never part of the lineup, so they are
// flagged substitute and non-lineup.
func registerEventParticipants(events []PlannedEvent, identities *identityContext) {
	for _, event := range events {
		registerEventParticipant(event.Player, event.Home, identities)
		registerEventParticipant(event.Assist, event.Home, identities)
	}
}

func registerEventParticipant(ref SnapshotPlayerRef, home bool, identities *identityContext) {
	if strings.TrimSpace(ref.Name) == "" {
		return
	}
	key := matchkey.ForPlayer(ref.ID, ref.Name)
	if key.IsZero() {
		return
	}
	identities.addEventOnly(&ParticipantCandidate{
		Key:              key,
		ProviderPlayerID: clonePositiveInt64Ptr(ref.ID),
		Name:             matchkey.NormalizeName(ref.Name),
		Substitute:       true,
		NonLineup:        true,
		Home:             home,
	})
}

func isGoalType(eventType string) bool {
	return strings.EqualFold(eventType, matchevent.TypeGoal)
}

func isSubstitutionType(eventType string) bool {
	return strings.EqualFold(eventType, matchevent.TypeSubstitution) ||
		strings.EqualFold(eventType, "substitution")
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func intPtrValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func clonePositiveInt64Ptr(value *int64) *int64 {
	if value == nil || *value <= 0 {
		return nil
	}
	v := *value
	return &v
}
