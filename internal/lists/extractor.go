// Package lists derives reading and watch lists from stored note text.
package lists

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/notestack/backend/internal/logging"
	"github.com/notestack/backend/internal/models"
)

// Kind selects one of the two derived collections.
type Kind string

const (
	KindReading  Kind = "read"
	KindWatching Kind = "watch"
)

// ParseKind converts a route segment into a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindReading:
		return KindReading, true
	case KindWatching:
		return KindWatching, true
	}
	return "", false
}

// Marker returns the line marker for the kind, without the trailing colon.
func (k Kind) Marker() string {
	if k == KindWatching {
		return "Watch"
	}
	return "Read"
}

// storageKey returns the key-value store key holding the collection.
func (k Kind) storageKey() string {
	if k == KindWatching {
		return "watchItems"
	}
	return "readItems"
}

// Filter narrows a collection by completion state.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterPending Filter = "pending"
	FilterDone    Filter = "done"
)

// ApplyFilter returns the items matching f. Pure; never persists.
func ApplyFilter(items []models.ListItem, f Filter) []models.ListItem {
	if f == FilterAll || f == "" {
		return items
	}
	wantDone := f == FilterDone
	filtered := make([]models.ListItem, 0, len(items))
	for _, item := range items {
		if item.Done == wantDone {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ItemID derives a deterministic id from item text, so re-extracting the
// same text always addresses the same item.
func ItemID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}

// ExtractFromText scans text line by line. A line containing "<Marker>:"
// contributes one item whose text is everything after the first marker
// occurrence, trimmed. Items come out in line order, not deduplicated.
func ExtractFromText(text, marker string) []models.ListItem {
	if text == "" {
		return nil
	}

	token := marker + ":"
	var items []models.ListItem
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, token)
		if idx < 0 {
			continue
		}
		itemText := strings.TrimSpace(line[idx+len(token):])
		items = append(items, models.ListItem{
			ID:   ItemID(itemText),
			Text: itemText,
			Done: false,
		})
	}
	return items
}

// KV is the slice of the key-value store the service needs.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// NoteSource provides the full note mapping for cross-date extraction.
type NoteSource interface {
	Snapshot() map[string]models.DayRecord
}

// Service maintains the persisted reading and watch collections.
type Service struct {
	kv     KV
	source NoteSource
}

// NewService creates a Service over the given storage and note source.
func NewService(kv KV, source NoteSource) *Service {
	return &Service{kv: kv, source: source}
}

// Items returns the persisted collection for kind.
func (s *Service) Items(kind Kind) []models.ListItem {
	return s.load(kind)
}

// SyncFromAllNotes re-extracts items from every stored date and appends the
// ones whose text is not yet in the collection, tagging each with the date
// key it came from. Running it twice without new note text is a no-op.
func (s *Service) SyncFromAllNotes(kind Kind) []models.ListItem {
	items := s.load(kind)

	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.Text] = true
	}

	snapshot := s.source.Snapshot()
	dates := make([]string, 0, len(snapshot))
	for date := range snapshot {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		texts := make([]string, 0, len(snapshot[date]))
		for _, entry := range snapshot[date] {
			texts = append(texts, entry.Text)
		}

		for _, item := range ExtractFromText(strings.Join(texts, "\n"), kind.Marker()) {
			if known[item.Text] {
				continue
			}
			item.DateAdded = date
			items = append(items, item)
			known[item.Text] = true
		}
	}

	s.persist(kind, items)
	return items
}

// Toggle flips the done flag of the item with the given id. Unknown ids are
// a no-op; the collection is rewritten either way.
func (s *Service) Toggle(kind Kind, id string) []models.ListItem {
	items := s.load(kind)
	for i := range items {
		if items[i].ID == id {
			items[i].Done = !items[i].Done
			break
		}
	}
	s.persist(kind, items)
	return items
}

// load reads the collection, discarding undecodable state.
func (s *Service) load(kind Kind) []models.ListItem {
	raw, ok := s.kv.Get(kind.storageKey())
	if !ok {
		return []models.ListItem{}
	}

	var items []models.ListItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logging.Warn("discarding undecodable list state", map[string]interface{}{
			"kind":  string(kind),
			"error": err.Error(),
		})
		empty := []models.ListItem{}
		s.persist(kind, empty)
		return empty
	}
	if items == nil {
		items = []models.ListItem{}
	}
	return items
}

func (s *Service) persist(kind Kind, items []models.ListItem) {
	data, err := json.Marshal(items)
	if err != nil {
		logging.Error("failed to encode list state", err, map[string]interface{}{"kind": string(kind)})
		return
	}
	if err := s.kv.Set(kind.storageKey(), string(data)); err != nil {
		logging.Error("failed to persist list state", err, map[string]interface{}{"kind": string(kind)})
	}
}
