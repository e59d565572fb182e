package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/notestack/backend/internal/settings"
)

// SettingsHandler handles application-level settings used by the GUI shell.
type SettingsHandler struct {
	svc *settings.Service
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// App handles GET /api/settings/app.
// Returns the welcome-dialog sentinel and the calendar start date.
func (h *SettingsHandler) App(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"hasSeenWelcome": h.svc.HasSeenWelcome(),
	}
	if start, ok := h.svc.StartDate(); ok {
		response["startDate"] = start.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// WelcomeSeen handles POST /api/settings/welcome-seen.
func (h *SettingsHandler) WelcomeSeen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.svc.MarkWelcomeSeen(); err != nil {
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartDate handles PUT /api/settings/start-date.
func (h *SettingsHandler) StartDate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		StartDate string `json:"startDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, request.StartDate)
	if err != nil {
		http.Error(w, "startDate must be an RFC 3339 timestamp", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetStartDate(start); err != nil {
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
