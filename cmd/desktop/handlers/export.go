package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/notestack/backend/internal/export"
)

// ExportBroadcaster is the WebSocket surface the export handler notifies.
type ExportBroadcaster interface {
	BroadcastExportCompleted(name string, format string)
}

// ExportHandler handles file export operations.
type ExportHandler struct {
	svc *export.Service
	ws  ExportBroadcaster
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(svc *export.Service) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// SetBroadcaster sets the WebSocket hub for export events.
func (h *ExportHandler) SetBroadcaster(ws ExportBroadcaster) {
	h.ws = ws
}

// Exports handles GET and POST on /api/export.
func (h *ExportHandler) Exports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"files": h.svc.Files(),
		})

	case http.MethodPost:
		var request struct {
			Name    string `json:"name"`
			Content string `json:"content"`
			Format  string `json:"format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if request.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		format, ok := export.ParseFormat(request.Format)
		if !ok {
			http.Error(w, "format must be markdown or html", http.StatusBadRequest)
			return
		}

		file, err := h.svc.Export(request.Name, request.Content, format)
		if err != nil {
			http.Error(w, "Export failed", http.StatusInternalServerError)
			return
		}

		if h.ws != nil {
			h.ws.BroadcastExportCompleted(file.Name, string(format))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(file)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
