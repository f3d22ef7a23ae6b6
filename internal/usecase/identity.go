package usecase

import (
	"github.com/pitchside/matchsync/internal/domain/matchkey"
	"github.com/pitchside/matchsync/internal/domain/matchstats"
)

// ParticipantCandidate is the in-memory, not-yet-persisted representation of
// a match participant produced by the extractors. Candidates are the desired
// state the reconciler compares against persisted entities; they are never
// stored directly.
type ParticipantCandidate struct {
	Key              matchkey.Key
	ProviderPlayerID *int64
	Name             string
	Number           *int
	Position         string
	Grid             string
	Substitute       bool
	// NonLineup is set when the participant was discovered only via an
	// event or a statistics row.
	NonLineup bool
	// Home references the team side the candidate belongs to.
	Home bool
	// Stats carries the linked statistics payload for stat-discovered or
	// lineup participants with a statistics row.
	Stats *matchstats.PlayerStatistics
}

// identityContext accumulates participant candidates per discovery source
// over one sync run. Owned by a single run and discarded with it.
//
// Precedence between the maps is lineup > event-only > stat-only: a key
// already present in a higher-precedence map is refused on insertion into a
// lower one.
type identityContext struct {
	lineup    map[matchkey.Key]*ParticipantCandidate
	eventOnly map[matchkey.Key]*ParticipantCandidate
	statOnly  map[matchkey.Key]*ParticipantCandidate
}

func newIdentityContext() *identityContext {
	return &identityContext{
		lineup:    make(map[matchkey.Key]*ParticipantCandidate),
		eventOnly: make(map[matchkey.Key]*ParticipantCandidate),
		statOnly:  make(map[matchkey.Key]*ParticipantCandidate),
	}
}

func (c *identityContext) addLineup(candidate *ParticipantCandidate) {
	if candidate == nil || candidate.Key.IsZero() {
		return
	}
	c.lineup[candidate.Key] = candidate
}

// addEventOnly registers a participant discovered through an event. Lineup
// wins: a key already known from the lineup (or a previous event) is kept.
func (c *identityContext) addEventOnly(candidate *ParticipantCandidate) bool {
	if candidate == nil || candidate.Key.IsZero() {
		return false
	}
	if _, ok := c.lineup[candidate.Key]; ok {
		return false
	}
	if _, ok := c.eventOnly[candidate.Key]; ok {
		return false
	}
	c.eventOnly[candidate.Key] = candidate
	return true
}

func (c *identityContext) addStatOnly(candidate *ParticipantCandidate) bool {
	if candidate == nil || candidate.Key.IsZero() {
		return false
	}
	if _, ok := c.lineup[candidate.Key]; ok {
		return false
	}
	if _, ok := c.eventOnly[candidate.Key]; ok {
		return false
	}
	if _, ok := c.statOnly[candidate.Key]; ok {
		return false
	}
	c.statOnly[candidate.Key] = candidate
	return true
}

func (c *identityContext) knownToLineup(key matchkey.Key) bool {
	_, ok := c.lineup[key]
	return ok
}

// lookup resolves a key across all three maps in precedence order.
func (c *identityContext) lookup(key matchkey.Key) (*ParticipantCandidate, bool) {
	if candidate, ok := c.lineup[key]; ok {
		return candidate, true
	}
	if candidate, ok := c.eventOnly[key]; ok {
		return candidate, true
	}
	if candidate, ok := c.statOnly[key]; ok {
		return candidate, true
	}
	return nil, false
}

// union merges the three maps, higher precedence shadowing lower, into one
// key set of desired participants.
func (c *identityContext) union() map[matchkey.Key]*ParticipantCandidate {
	out := make(map[matchkey.Key]*ParticipantCandidate, len(c.lineup)+len(c.eventOnly)+len(c.statOnly))
	for key, candidate := range c.statOnly {
		out[key] = candidate
	}
	for key, candidate := range c.eventOnly {
		out[key] = candidate
	}
	for key, candidate := range c.lineup {
		out[key] = candidate
	}
	return out
}
