// Package notes owns the per-date note records and the upsert merge policy.
package notes

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/notestack/backend/internal/logging"
	"github.com/notestack/backend/internal/models"
)

// StorageKey holds the full dateKey -> DayRecord mapping as one JSON value.
const StorageKey = "daily_notes"

// KV is the slice of the key-value store the note store needs.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Store is the single source of truth for per-date note content.
//
// Every operation is a read-modify-write over the whole mapping; the mutex
// keeps same-date upserts applied in invocation order. None of the public
// operations return errors: storage failures are logged and the in-memory
// result is still returned.
type Store struct {
	mu  sync.Mutex
	kv  KV
	now func() time.Time
}

// NewStore creates a Store over the given key-value storage.
func NewStore(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// GetDay returns the record for dateKey, empty when the date is unknown.
func (s *Store) GetDay(dateKey string) models.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.loadAll()[dateKey]
	if day == nil {
		return models.DayRecord{}
	}
	return day
}

// UpsertEntry records text for dateKey. When the last entry of the day has
// the same origin it is replaced in place; otherwise the entry is appended.
// A LOCAL, EXTERNAL, LOCAL sequence therefore keeps three entries: the merge
// only ever looks at the immediately preceding entry.
func (s *Store) UpsertEntry(dateKey, text string, origin models.Origin) models.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadAll()
	day := all[dateKey]

	entry := models.NoteEntry{
		Text:      text,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Origin:    origin,
	}

	if n := len(day); n > 0 && day[n-1].Origin == origin {
		day[n-1] = entry
	} else {
		day = append(day, entry)
	}

	all[dateKey] = day
	s.persist(all)
	return day
}

// DeleteOrigin removes every entry of the given origin from dateKey. The
// date itself is dropped from the mapping when nothing remains. Deleting an
// origin with no matching entries still rewrites the mapping.
func (s *Store) DeleteOrigin(dateKey string, origin models.Origin) models.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadAll()
	day := all[dateKey]

	kept := make(models.DayRecord, 0, len(day))
	for _, entry := range day {
		if entry.Origin != origin {
			kept = append(kept, entry)
		}
	}

	if len(kept) == 0 {
		delete(all, dateKey)
	} else {
		all[dateKey] = kept
	}

	s.persist(all)
	return kept
}

// DateKeys returns all known date keys, sorted ascending.
func (s *Store) DateKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadAll()
	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the full mapping for cross-date consumers such
// as the list extractor.
func (s *Store) Snapshot() map[string]models.DayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.loadAll()
	snapshot := make(map[string]models.DayRecord, len(all))
	for key, day := range all {
		copied := make(models.DayRecord, len(day))
		copy(copied, day)
		snapshot[key] = copied
	}
	return snapshot
}

// loadAll reads the full mapping. Undecodable persisted state is discarded:
// the store re-initializes to an empty mapping and persists it.
func (s *Store) loadAll() map[string]models.DayRecord {
	raw, ok := s.kv.Get(StorageKey)
	if !ok {
		return map[string]models.DayRecord{}
	}

	all := map[string]models.DayRecord{}
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		logging.Warn("discarding undecodable daily notes state", map[string]interface{}{
			"error": err.Error(),
		})
		empty := map[string]models.DayRecord{}
		s.persist(empty)
		return empty
	}
	return all
}

// persist rewrites the full mapping to storage.
func (s *Store) persist(all map[string]models.DayRecord) {
	data, err := json.Marshal(all)
	if err != nil {
		logging.Error("failed to encode daily notes state", err)
		return
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		logging.Error("failed to persist daily notes state", err)
	}
}
