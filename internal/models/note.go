// Package models provides data model definitions for the NoteStack backend.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateKeyLayout is the canonical format for daily note keys.
const DateKeyLayout = "2006-01-02"

// DateKey formats a time as a daily note key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Origin identifies where a note entry came from.
type Origin int

const (
	// OriginLocal marks text typed into the desktop app.
	OriginLocal Origin = iota
	// OriginExternal marks text imported from Apple Notes.
	OriginExternal
)

// Wire values under the daily_notes key.
const (
	originLocalValue    = "desktop_app"
	originExternalValue = "apple_notes"
)

// String returns the wire representation of the origin.
func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return originLocalValue
	case OriginExternal:
		return originExternalValue
	}
	return fmt.Sprintf("origin(%d)", int(o))
}

// ParseOrigin converts a wire value into an Origin.
func ParseOrigin(s string) (Origin, error) {
	switch s {
	case originLocalValue:
		return OriginLocal, nil
	case originExternalValue:
		return OriginExternal, nil
	}
	return 0, fmt.Errorf("unknown note origin %q", s)
}

// MarshalJSON implements json.Marshaler for Origin.
func (o Origin) MarshalJSON() ([]byte, error) {
	switch o {
	case OriginLocal, OriginExternal:
		return json.Marshal(o.String())
	}
	return nil, fmt.Errorf("invalid note origin %d", int(o))
}

// UnmarshalJSON implements json.Unmarshaler for Origin. Unknown values are
// rejected so that undecodable persisted state hits the discard path instead
// of being carried forward as a free-form string.
func (o *Origin) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseOrigin(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// NoteEntry is a single note recorded for a day.
type NoteEntry struct {
	Text      string `json:"note"`
	Timestamp string `json:"time"` // ISO-8601, time of last write
	Origin    Origin `json:"type"`
}

// DayRecord is the ordered sequence of entries for one date.
// Insertion order is significant: the merge rule looks at the last entry.
type DayRecord []NoteEntry

// ListItem is a reading or watch list entry derived from note text.
type ListItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	DateAdded string `json:"dateAdded"`
}

// ImportSettings configures the Apple Notes importer.
type ImportSettings struct {
	NoteName  string `json:"noteName"`
	TodayOnly bool   `json:"todayOnly"`
}

// BridgeFile is a record handed to the file export collaborator.
type BridgeFile struct {
	Name      string `json:"name"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}
