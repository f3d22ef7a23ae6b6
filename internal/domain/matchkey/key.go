package matchkey

import (
	"strconv"
	"strings"
)

// Kind tags which identity tier a key was derived from. Keys of different
// kinds never compare equal, so an id-based key cannot collide with a
// name-based one even when the rendered values match.
type Kind uint8

const (
	KindNone Kind = iota
	KindProviderID
	KindName
)

// Key identifies one match participant within a sync run. Participants with
// a provider id always key on the id, regardless of name drift between
// payloads. Participants without one fall back to the normalized name; two
// id-less participants with the same name are indistinguishable, which is an
// accepted limitation of the feed.
type Key struct {
	kind  Kind
	value string
}

// ForPlayer derives the canonical key for a participant. It must be applied
// identically to lineup, event and statistics records, and re-applied to
// persisted entities when loading them, so stored id/name drift surfaces as
// a reconciliation diff instead of being masked.
func ForPlayer(providerID *int64, name string) Key {
	if providerID != nil && *providerID > 0 {
		return FromProviderID(*providerID)
	}
	return FromName(name)
}

func FromProviderID(id int64) Key {
	if id <= 0 {
		return Key{}
	}
	return Key{kind: KindProviderID, value: strconv.FormatInt(id, 10)}
}

// FromName keys on the normalized display name. Normalization trims the
// name and collapses inner whitespace runs; it does NOT fold case, so
// "name:A" and "name:a" stay distinct.
func FromName(name string) Key {
	normalized := NormalizeName(name)
	if normalized == "" {
		return Key{}
	}
	return Key{kind: KindName, value: normalized}
}

func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func (k Key) Kind() Kind { return k.kind }

func (k Key) IsZero() bool { return k.kind == KindNone }

func (k Key) ByProviderID() bool { return k.kind == KindProviderID }

// String renders the key for logs and diagnostics ("id:33", "name:T Silva").
// The rendered form is never stored or parsed back.
func (k Key) String() string {
	switch k.kind {
	case KindProviderID:
		return "id:" + k.value
	case KindName:
		return "name:" + k.value
	default:
		return ""
	}
}
