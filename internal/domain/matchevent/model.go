package matchevent

const (
	TypeGoal         = "Goal"
	TypeCard         = "Card"
	TypeSubstitution = "subst"
	TypeVar          = "Var"
	// TypeEtc replaces goal events the provider reports for shots that did
	// not score (missed penalties).
	TypeEtc = "ETC"
	// TypeUnknown replaces substitution events whose player fields are
	// fully absent and therefore cannot be attributed.
	TypeUnknown = "UNKNOWN"
)

// Event is one persisted, normalized match event. Events carry no stable
// provider identifier: the full list is deleted and re-inserted every sync
// run, and Sequence is the planner-assigned 0-based position.
type Event struct {
	ID                   int64
	MatchID              int64
	SideID               int64
	Sequence             int
	Elapsed              int
	Extra                *int
	Type                 string
	Detail               string
	Comment              *string
	ParticipantID        *int64
	AssistParticipantID  *int64
}
