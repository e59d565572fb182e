// Package handlers provides REST API handlers for the NoteStack desktop GUI.
package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/notestack/backend/internal/models"
	"github.com/notestack/backend/internal/notes"
)

// NotesBroadcaster is the WebSocket surface the notes handler notifies.
type NotesBroadcaster interface {
	BroadcastNoteSaved(date string, origin string)
	BroadcastNoteDeleted(date string, origin string)
}

// NotesHandler handles daily note operations.
type NotesHandler struct {
	store *notes.Store
	ws    NotesBroadcaster
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(store *notes.Store) *NotesHandler {
	return &NotesHandler{store: store}
}

// SetBroadcaster sets the WebSocket hub for note events.
func (h *NotesHandler) SetBroadcaster(ws NotesBroadcaster) {
	h.ws = ws
}

// Dates handles GET /api/notes/dates.
// Returns all known date keys, newest first.
func (h *NotesHandler) Dates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	keys := h.store.DateKeys()
	sort.Slice(keys, func(i, j int) bool {
		ti, _ := time.Parse(models.DateKeyLayout, keys[i])
		tj, _ := time.Parse(models.DateKeyLayout, keys[j])
		return ti.After(tj)
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"dates": keys,
	})
}

// Notes handles GET, POST and DELETE on /api/notes.
func (h *NotesHandler) Notes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.day(w, r)
	case http.MethodPost:
		h.upsert(w, r)
	case http.MethodDelete:
		h.deleteOrigin(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// day handles GET /api/notes?date=
func (h *NotesHandler) day(w http.ResponseWriter, r *http.Request) {
	dateKey, ok := dateParam(w, r)
	if !ok {
		return
	}

	writeDay(w, dateKey, h.store.GetDay(dateKey))
}

// upsert handles POST /api/notes
func (h *NotesHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Date   string `json:"date"`
		Text   string `json:"text"`
		Origin string `json:"origin"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := time.Parse(models.DateKeyLayout, request.Date); err != nil {
		http.Error(w, "date must be formatted YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	origin, err := models.ParseOrigin(request.Origin)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	day := h.store.UpsertEntry(request.Date, request.Text, origin)
	if h.ws != nil {
		h.ws.BroadcastNoteSaved(request.Date, origin.String())
	}

	writeDay(w, request.Date, day)
}

// deleteOrigin handles DELETE /api/notes?date=&origin=
func (h *NotesHandler) deleteOrigin(w http.ResponseWriter, r *http.Request) {
	dateKey, ok := dateParam(w, r)
	if !ok {
		return
	}

	origin, err := models.ParseOrigin(r.URL.Query().Get("origin"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	day := h.store.DeleteOrigin(dateKey, origin)
	if h.ws != nil {
		h.ws.BroadcastNoteDeleted(dateKey, origin.String())
	}

	writeDay(w, dateKey, day)
}

func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	dateKey := r.URL.Query().Get("date")
	if _, err := time.Parse(models.DateKeyLayout, dateKey); err != nil {
		http.Error(w, "date must be formatted YYYY-MM-DD", http.StatusBadRequest)
		return "", false
	}
	return dateKey, true
}

func writeDay(w http.ResponseWriter, dateKey string, day models.DayRecord) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"date":    dateKey,
		"entries": day,
	})
}
