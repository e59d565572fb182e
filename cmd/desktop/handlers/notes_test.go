// Package handlers tests for the daily notes API.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/notestack/backend/internal/models"
	"github.com/notestack/backend/internal/notes"
)

// memKV is an in-memory key-value store double shared by the handler tests.
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

// eventRecorder captures broadcast calls issued by handlers.
type eventRecorder struct {
	events []string
}

func (r *eventRecorder) record(event string) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) BroadcastNoteSaved(date, origin string)       { r.record("note.saved") }
func (r *eventRecorder) BroadcastNoteDeleted(date, origin string)     { r.record("note.deleted") }
func (r *eventRecorder) BroadcastListsUpdated(kind string, count int) { r.record("lists.updated") }
func (r *eventRecorder) BroadcastImportStarted(note string)           { r.record("import.started") }
func (r *eventRecorder) BroadcastImportCompleted(note, date string)   { r.record("import.completed") }
func (r *eventRecorder) BroadcastImportFailed(note string)            { r.record("import.failed") }
func (r *eventRecorder) BroadcastExportCompleted(name, format string) { r.record("export.completed") }

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, w.Body.String())
	}
}

type dayResponse struct {
	Date    string             `json:"date"`
	Entries []models.NoteEntry `json:"entries"`
}

func newNotesTest() (*NotesHandler, *eventRecorder) {
	handler := NewNotesHandler(notes.NewStore(newMemKV()))
	recorder := &eventRecorder{}
	handler.SetBroadcaster(recorder)
	return handler, recorder
}

// TestNotesUpsertAndGet verifies the POST then GET round trip.
func TestNotesUpsertAndGet(t *testing.T) {
	handler, recorder := newNotesTest()

	body := `{"date":"2024-03-01","text":"hello","origin":"desktop_app"}`
	w := httptest.NewRecorder()
	handler.Notes(w, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("POST status = %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	handler.Notes(w, httptest.NewRequest(http.MethodGet, "/api/notes?date=2024-03-01", nil))

	var day dayResponse
	decodeBody(t, w, &day)
	if len(day.Entries) != 1 || day.Entries[0].Text != "hello" {
		t.Errorf("entries = %+v", day.Entries)
	}
	if len(recorder.events) != 1 || recorder.events[0] != "note.saved" {
		t.Errorf("events = %v", recorder.events)
	}
}

// TestNotesUpsertValidation verifies bad dates and origins are rejected.
func TestNotesUpsertValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad date", `{"date":"03/01/2024","text":"x","origin":"desktop_app"}`},
		{"unknown origin", `{"date":"2024-03-01","text":"x","origin":"mobile_app"}`},
		{"not json", `{broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, recorder := newNotesTest()

			w := httptest.NewRecorder()
			handler.Notes(w, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(tt.body)))

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if len(recorder.events) != 0 {
				t.Errorf("rejected request broadcast %v", recorder.events)
			}
		})
	}
}

// TestNotesDelete verifies DELETE removes one origin and broadcasts.
func TestNotesDelete(t *testing.T) {
	handler, recorder := newNotesTest()

	for _, body := range []string{
		`{"date":"2024-03-01","text":"typed","origin":"desktop_app"}`,
		`{"date":"2024-03-01","text":"imported","origin":"apple_notes"}`,
	} {
		w := httptest.NewRecorder()
		handler.Notes(w, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body)))
		if w.Code != http.StatusOK {
			t.Fatalf("POST status = %d", w.Code)
		}
	}

	w := httptest.NewRecorder()
	handler.Notes(w, httptest.NewRequest(http.MethodDelete, "/api/notes?date=2024-03-01&origin=apple_notes", nil))

	var day dayResponse
	decodeBody(t, w, &day)
	if len(day.Entries) != 1 || day.Entries[0].Origin != models.OriginLocal {
		t.Errorf("entries after delete = %+v", day.Entries)
	}
	if recorder.events[len(recorder.events)-1] != "note.deleted" {
		t.Errorf("events = %v", recorder.events)
	}
}

// TestNotesDates verifies dates come back newest first.
func TestNotesDates(t *testing.T) {
	handler, _ := newNotesTest()

	for _, body := range []string{
		`{"date":"2024-03-01","text":"a","origin":"desktop_app"}`,
		`{"date":"2024-03-03","text":"b","origin":"desktop_app"}`,
		`{"date":"2024-03-02","text":"c","origin":"desktop_app"}`,
	} {
		w := httptest.NewRecorder()
		handler.Notes(w, httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body)))
		if w.Code != http.StatusOK {
			t.Fatalf("POST status = %d", w.Code)
		}
	}

	w := httptest.NewRecorder()
	handler.Dates(w, httptest.NewRequest(http.MethodGet, "/api/notes/dates", nil))

	var response struct {
		Dates []string `json:"dates"`
	}
	decodeBody(t, w, &response)
	want := []string{"2024-03-03", "2024-03-02", "2024-03-01"}
	if len(response.Dates) != 3 {
		t.Fatalf("dates = %v", response.Dates)
	}
	for i, date := range want {
		if response.Dates[i] != date {
			t.Errorf("dates[%d] = %q, want %q", i, response.Dates[i], date)
		}
	}
}

// TestNotesMethodNotAllowed verifies unsupported verbs are refused.
func TestNotesMethodNotAllowed(t *testing.T) {
	handler, _ := newNotesTest()

	w := httptest.NewRecorder()
	handler.Notes(w, httptest.NewRequest(http.MethodPatch, "/api/notes", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}

	w = httptest.NewRecorder()
	handler.Dates(w, httptest.NewRequest(http.MethodPost, "/api/notes/dates", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("dates status = %d, want 405", w.Code)
	}
}
