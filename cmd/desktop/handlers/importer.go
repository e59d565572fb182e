package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/notestack/backend/internal/importer"
	"github.com/notestack/backend/internal/models"
	"github.com/notestack/backend/internal/settings"
)

// today returns the date key imported content is filed under.
func today() string {
	return models.DateKey(time.Now())
}

// ImportBroadcaster is the WebSocket surface the import handler notifies.
type ImportBroadcaster interface {
	BroadcastImportStarted(note string)
	BroadcastImportCompleted(note string, date string)
	BroadcastImportFailed(note string)
}

// ImportHandler handles Apple Notes import configuration and refreshes.
type ImportHandler struct {
	coord    *importer.Coordinator
	settings *settings.Service
	ws       ImportBroadcaster
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(coord *importer.Coordinator, settings *settings.Service) *ImportHandler {
	return &ImportHandler{coord: coord, settings: settings}
}

// SetBroadcaster sets the WebSocket hub for import events.
func (h *ImportHandler) SetBroadcaster(ws ImportBroadcaster) {
	h.ws = ws
}

// Settings handles GET and PUT on /api/import/settings.
func (h *ImportHandler) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(h.settings.ImportSettings())

	case http.MethodPut:
		var cfg models.ImportSettings
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := h.settings.SetImportSettings(cfg); err != nil {
			http.Error(w, "Failed to save settings", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Refresh handles POST /api/import/refresh.
// Fetches the configured note and records the content as today's external
// entry. A refresh overtaken by a newer one reports stale instead of
// touching the store.
func (h *ImportHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := h.settings.ImportSettings()
	if cfg.NoteName == "" {
		http.Error(w, "No Apple Notes note configured", http.StatusBadRequest)
		return
	}

	if h.ws != nil {
		h.ws.BroadcastImportStarted(cfg.NoteName)
	}

	result := h.coord.Refresh(r.Context(), cfg)

	if h.ws != nil && !result.Stale {
		if result.Found {
			h.ws.BroadcastImportCompleted(cfg.NoteName, today())
		} else {
			h.ws.BroadcastImportFailed(cfg.NoteName)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
