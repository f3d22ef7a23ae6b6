package matchkey

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func TestForPlayer_ProviderIDWinsOverName(t *testing.T) {
	a := ForPlayer(int64Ptr(5), "A")
	b := ForPlayer(int64Ptr(5), "B")

	if a != b {
		t.Fatalf("same provider id must yield the same key: %v vs %v", a, b)
	}
	if !a.ByProviderID() {
		t.Fatalf("expected provider-id key, got %v", a)
	}
	if a.String() != "id:5" {
		t.Fatalf("unexpected rendering: %s", a.String())
	}
}

func TestForPlayer_NameFallback(t *testing.T) {
	a := ForPlayer(nil, "A")
	b := ForPlayer(nil, "A")
	if a != b {
		t.Fatalf("same name must yield the same key")
	}

	if ForPlayer(nil, "A") == ForPlayer(nil, "a") {
		t.Fatalf("name keys must be case sensitive")
	}
}

func TestForPlayer_TiersNeverCollide(t *testing.T) {
	byID := ForPlayer(int64Ptr(7), "")
	byName := ForPlayer(nil, "7")
	if byID == byName {
		t.Fatalf("id:7 and name:7 must not compare equal")
	}
}

func TestForPlayer_NameNormalization(t *testing.T) {
	a := ForPlayer(nil, "  T.   Silva ")
	b := ForPlayer(nil, "T. Silva")
	if a != b {
		t.Fatalf("whitespace runs must normalize to a single space: %v vs %v", a, b)
	}
}

func TestForPlayer_ZeroKey(t *testing.T) {
	if key := ForPlayer(nil, "   "); !key.IsZero() {
		t.Fatalf("blank name without id must produce the zero key, got %v", key)
	}
	if key := ForPlayer(int64Ptr(0), ""); !key.IsZero() {
		t.Fatalf("non-positive provider id without name must produce the zero key, got %v", key)
	}
	if (Key{}).String() != "" {
		t.Fatalf("zero key must render empty")
	}
}
