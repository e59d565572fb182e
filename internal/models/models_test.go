// Package models tests for data model encoding.
package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestOriginRoundTrip verifies origins encode to their wire values.
func TestOriginRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		origin Origin
		wire   string
	}{
		{"local", OriginLocal, `"desktop_app"`},
		{"external", OriginExternal, `"apple_notes"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.origin)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(data) != tt.wire {
				t.Errorf("Marshal() = %s, want %s", data, tt.wire)
			}

			var decoded Origin
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if decoded != tt.origin {
				t.Errorf("Unmarshal() = %v, want %v", decoded, tt.origin)
			}
		})
	}
}

// TestOriginRejectsUnknownValues verifies the enum is closed: free-form
// origin strings must fail to decode so corrupt state is discarded.
func TestOriginRejectsUnknownValues(t *testing.T) {
	tests := []string{`"mobile_app"`, `""`, `42`, `null`}

	for _, wire := range tests {
		var origin Origin
		if err := json.Unmarshal([]byte(wire), &origin); err == nil {
			t.Errorf("Unmarshal(%s) succeeded, want error", wire)
		}
	}
}

// TestNoteEntryWireShape verifies the persisted field names.
func TestNoteEntryWireShape(t *testing.T) {
	entry := NoteEntry{
		Text:      "hello",
		Timestamp: "2024-03-01T10:00:00Z",
		Origin:    OriginLocal,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	for _, field := range []string{"note", "time", "type"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("encoded entry missing field %q: %s", field, data)
		}
	}
	if raw["type"] != "desktop_app" {
		t.Errorf("type = %v, want desktop_app", raw["type"])
	}
}

// TestDateKey verifies the canonical date key format.
func TestDateKey(t *testing.T) {
	key := DateKey(time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC))
	if key != "2024-03-01" {
		t.Errorf("DateKey() = %q, want 2024-03-01", key)
	}
}
