// Package notes tests for the day record merge policy.
package notes

import (
	"testing"
	"time"

	"github.com/notestack/backend/internal/models"
)

// memKV is an in-memory key-value store double.
type memKV struct {
	values map[string]string
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (m *memKV) Get(key string) (string, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *memKV) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func newTestStore(kv KV) *Store {
	store := NewStore(kv)
	store.now = func() time.Time {
		return time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	}
	return store
}

// TestUpsertEntry pins the merge rule: an upsert replaces the last entry
// only when that entry has the same origin, otherwise it appends.
func TestUpsertEntry(t *testing.T) {
	tests := []struct {
		name    string
		writes  []models.Origin
		wantLen int
	}{
		{"first write appends", []models.Origin{models.OriginLocal}, 1},
		{"same origin twice replaces", []models.Origin{models.OriginLocal, models.OriginLocal}, 1},
		{"different origin appends", []models.Origin{models.OriginLocal, models.OriginExternal}, 2},
		{"external twice replaces", []models.Origin{models.OriginExternal, models.OriginExternal}, 1},
		// The ambiguous case: the third LOCAL write does not merge with the
		// first one, it appends after the EXTERNAL entry.
		{"local after external appends again", []models.Origin{models.OriginLocal, models.OriginExternal, models.OriginLocal}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(newMemKV())

			var day models.DayRecord
			for i, origin := range tt.writes {
				day = store.UpsertEntry("2024-03-01", string(rune('a'+i)), origin)
			}

			if len(day) != tt.wantLen {
				t.Fatalf("got %d entries, want %d", len(day), tt.wantLen)
			}
			last := day[len(day)-1]
			if last.Origin != tt.writes[len(tt.writes)-1] {
				t.Errorf("last entry origin = %v, want %v", last.Origin, tt.writes[len(tt.writes)-1])
			}
		})
	}
}

// TestUpsertReplacementKeepsLatestText verifies replacement wins over
// duplication: two local writes leave only the second text.
func TestUpsertReplacementKeepsLatestText(t *testing.T) {
	store := newTestStore(newMemKV())

	store.UpsertEntry("2024-03-01", "first draft", models.OriginLocal)
	day := store.UpsertEntry("2024-03-01", "second draft", models.OriginLocal)

	if len(day) != 1 {
		t.Fatalf("got %d entries, want 1", len(day))
	}
	if day[0].Text != "second draft" {
		t.Errorf("text = %q, want second draft", day[0].Text)
	}
}

// TestUpsertRoundTrip verifies GetDay observes the upserted text.
func TestUpsertRoundTrip(t *testing.T) {
	store := newTestStore(newMemKV())

	store.UpsertEntry("2024-03-01", "hello", models.OriginLocal)
	day := store.GetDay("2024-03-01")

	if len(day) != 1 {
		t.Fatalf("got %d entries, want 1", len(day))
	}
	if day[0].Text != "hello" || day[0].Origin != models.OriginLocal {
		t.Errorf("entry = %+v", day[0])
	}
	if day[0].Timestamp != "2024-03-01T10:00:00Z" {
		t.Errorf("timestamp = %q", day[0].Timestamp)
	}
}

// TestGetDayMissing verifies unknown dates read as empty, not as errors.
func TestGetDayMissing(t *testing.T) {
	store := newTestStore(newMemKV())

	day := store.GetDay("1999-01-01")
	if len(day) != 0 {
		t.Errorf("got %d entries, want 0", len(day))
	}
}

// TestDeleteOriginRemovesDate verifies a day emptied by deletion drops out
// of the mapping entirely.
func TestDeleteOriginRemovesDate(t *testing.T) {
	store := newTestStore(newMemKV())

	store.UpsertEntry("2024-03-01", "hello", models.OriginLocal)
	day := store.DeleteOrigin("2024-03-01", models.OriginLocal)

	if len(day) != 0 {
		t.Fatalf("got %d entries, want 0", len(day))
	}
	if keys := store.DateKeys(); len(keys) != 0 {
		t.Errorf("DateKeys() = %v, want none", keys)
	}
}

// TestDeleteOriginKeepsOtherOrigin verifies deletion only touches the
// requested origin.
func TestDeleteOriginKeepsOtherOrigin(t *testing.T) {
	store := newTestStore(newMemKV())

	store.UpsertEntry("2024-03-01", "typed", models.OriginLocal)
	store.UpsertEntry("2024-03-01", "imported", models.OriginExternal)

	day := store.DeleteOrigin("2024-03-01", models.OriginExternal)

	if len(day) != 1 {
		t.Fatalf("got %d entries, want 1", len(day))
	}
	if day[0].Origin != models.OriginLocal {
		t.Errorf("remaining origin = %v, want local", day[0].Origin)
	}
}

// TestDeleteOriginIdempotent verifies deleting with no matching entries is
// a no-op that still rewrites state.
func TestDeleteOriginIdempotent(t *testing.T) {
	kv := newMemKV()
	store := newTestStore(kv)

	store.UpsertEntry("2024-03-01", "typed", models.OriginLocal)
	before := kv.values[StorageKey]

	day := store.DeleteOrigin("2024-03-01", models.OriginExternal)
	if len(day) != 1 {
		t.Fatalf("got %d entries, want 1", len(day))
	}
	if kv.values[StorageKey] != before {
		t.Errorf("state changed by a no-op delete: %s", kv.values[StorageKey])
	}
}

// TestDateKeys verifies all written dates are reported.
func TestDateKeys(t *testing.T) {
	store := newTestStore(newMemKV())

	store.UpsertEntry("2024-03-02", "b", models.OriginLocal)
	store.UpsertEntry("2024-03-01", "a", models.OriginLocal)

	keys := store.DateKeys()
	if len(keys) != 2 || keys[0] != "2024-03-01" || keys[1] != "2024-03-02" {
		t.Errorf("DateKeys() = %v", keys)
	}
}

// TestCorruptStateDiscarded verifies undecodable persisted state reads as
// empty and is re-initialized, never surfaced as an error.
func TestCorruptStateDiscarded(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{not json"},
		{"wrong shape", `[1,2,3]`},
		{"unknown origin", `{"2024-03-01":[{"note":"x","time":"t","type":"mobile_app"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemKV()
			kv.values[StorageKey] = tt.raw
			store := newTestStore(kv)

			if day := store.GetDay("2024-03-01"); len(day) != 0 {
				t.Errorf("got %d entries from corrupt state, want 0", len(day))
			}
			if kv.values[StorageKey] != "{}" {
				t.Errorf("corrupt state not re-initialized: %q", kv.values[StorageKey])
			}
		})
	}
}

// TestSnapshotIsACopy verifies mutating a snapshot cannot corrupt the store.
func TestSnapshotIsACopy(t *testing.T) {
	store := newTestStore(newMemKV())
	store.UpsertEntry("2024-03-01", "hello", models.OriginLocal)

	snapshot := store.Snapshot()
	snapshot["2024-03-01"][0].Text = "mutated"

	if day := store.GetDay("2024-03-01"); day[0].Text != "hello" {
		t.Errorf("store text = %q after snapshot mutation", day[0].Text)
	}
}
