package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/notestack/backend/internal/lists"
	"github.com/notestack/backend/internal/models"
)

// ListsBroadcaster is the WebSocket surface the lists handler notifies.
type ListsBroadcaster interface {
	BroadcastListsUpdated(kind string, count int)
}

// ListsHandler handles reading and watch list operations.
type ListsHandler struct {
	svc *lists.Service
	ws  ListsBroadcaster
}

// NewListsHandler creates a new ListsHandler.
func NewListsHandler(svc *lists.Service) *ListsHandler {
	return &ListsHandler{svc: svc}
}

// SetBroadcaster sets the WebSocket hub for list events.
func (h *ListsHandler) SetBroadcaster(ws ListsBroadcaster) {
	h.ws = ws
}

// Items handles GET /api/lists/{kind}?filter=all|pending|done
func (h *ListsHandler) Items(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	filter := lists.Filter(r.URL.Query().Get("filter"))
	switch filter {
	case lists.FilterAll, lists.FilterPending, lists.FilterDone, "":
	default:
		http.Error(w, "filter must be one of all, pending, done", http.StatusBadRequest)
		return
	}

	items := lists.ApplyFilter(h.svc.Items(kind), filter)
	writeItems(w, kind, items)
}

// Sync handles POST /api/lists/{kind}/sync
// Re-extracts items from every stored note.
func (h *ListsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	items := h.svc.SyncFromAllNotes(kind)
	if h.ws != nil {
		h.ws.BroadcastListsUpdated(string(kind), len(items))
	}
	writeItems(w, kind, items)
}

// Toggle handles POST /api/lists/{kind}/toggle
func (h *ListsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	var request struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	items := h.svc.Toggle(kind, request.ID)
	if h.ws != nil {
		h.ws.BroadcastListsUpdated(string(kind), len(items))
	}
	writeItems(w, kind, items)
}

func kindParam(w http.ResponseWriter, r *http.Request) (lists.Kind, bool) {
	kind, ok := lists.ParseKind(r.PathValue("kind"))
	if !ok {
		http.Error(w, "kind must be read or watch", http.StatusBadRequest)
		return "", false
	}
	return kind, true
}

func writeItems(w http.ResponseWriter, kind lists.Kind, items []models.ListItem) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"kind":  string(kind),
		"items": items,
	})
}
