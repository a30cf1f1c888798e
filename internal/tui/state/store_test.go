package state

import (
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if err := store.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var value string
	found, err := store.Get(KeyTheme, &value)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !found || value != "dark" {
		t.Fatalf("expected stored value dark, got found=%v value=%q", found, value)
	}
}

func TestStoreGetMissingKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	var value string
	found, err := store.Get("never-written", &value)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found {
		t.Fatalf("expected missing key to report not found")
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if err := store.Set(KeyColorTheme, "forest"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := store.Set(KeyColorTheme, "ocean"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var value string
	if _, err := store.Get(KeyColorTheme, &value); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "ocean" {
		t.Fatalf("expected overwritten value ocean, got %q", value)
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if err := store.Set(KeyContentVersion, "abc123"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := store.Delete(KeyContentVersion); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var value string
	found, err := store.Get(KeyContentVersion, &value)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if found {
		t.Fatalf("expected deleted key to report not found")
	}

	// Deleting twice is fine.
	if err := store.Delete(KeyContentVersion); err != nil {
		t.Fatalf("Delete of missing key returned error: %v", err)
	}
}

func TestStoreStructuredValues(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	type blob struct {
		Entries map[string]string `json:"entries"`
	}

	in := blob{Entries: map[string]string{"posts:1": "cached"}}
	if err := store.Set(KeyQueryCache, in); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var out blob
	found, err := store.Get(KeyQueryCache, &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !found || out.Entries["posts:1"] != "cached" {
		t.Fatalf("expected structured round trip, got found=%v value=%+v", found, out)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	return store
}
