// Package main provides the embedded backend server for the NoteStack
// desktop app. The GUI communicates via REST/WebSocket on localhost:8090.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/notestack/backend/cmd/desktop/handlers"
	"github.com/notestack/backend/internal/db"
	"github.com/notestack/backend/internal/export"
	"github.com/notestack/backend/internal/importer"
	"github.com/notestack/backend/internal/lists"
	"github.com/notestack/backend/internal/logging"
	"github.com/notestack/backend/internal/notes"
	"github.com/notestack/backend/internal/settings"
)

func main() {
	logging.Init(os.Stdout, logging.LevelFromEnv())

	dataDir := os.Getenv("NOTESTACK_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	port := os.Getenv("NOTESTACK_PORT")
	if port == "" {
		port = "8090"
	}

	database, err := db.Open(dataDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	kv := db.NewKVStore(database.DB)

	store := notes.NewStore(kv)
	listSvc := lists.NewService(kv, store)
	settingsSvc := settings.NewService(kv)
	exportSvc := export.NewService(kv)
	coord := importer.NewCoordinator(importer.New(importer.AppleScriptBridge{}), store)

	hub := NewWSHub()

	notesHandler := handlers.NewNotesHandler(store)
	notesHandler.SetBroadcaster(hub)
	listsHandler := handlers.NewListsHandler(listSvc)
	listsHandler.SetBroadcaster(hub)
	importHandler := handlers.NewImportHandler(coord, settingsSvc)
	importHandler.SetBroadcaster(hub)
	exportHandler := handlers.NewExportHandler(exportSvc)
	exportHandler.SetBroadcaster(hub)
	settingsHandler := handlers.NewSettingsHandler(settingsSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"notestack-desktop"}`))
	})

	mux.HandleFunc("/api/notes", notesHandler.Notes)
	mux.HandleFunc("/api/notes/dates", notesHandler.Dates)
	mux.HandleFunc("/api/lists/{kind}", listsHandler.Items)
	mux.HandleFunc("/api/lists/{kind}/sync", listsHandler.Sync)
	mux.HandleFunc("/api/lists/{kind}/toggle", listsHandler.Toggle)
	mux.HandleFunc("/api/import/settings", importHandler.Settings)
	mux.HandleFunc("/api/import/refresh", importHandler.Refresh)
	mux.HandleFunc("/api/export", exportHandler.Exports)
	mux.HandleFunc("/api/settings/app", settingsHandler.App)
	mux.HandleFunc("/api/settings/welcome-seen", settingsHandler.WelcomeSeen)
	mux.HandleFunc("/api/settings/start-date", settingsHandler.StartDate)
	mux.HandleFunc("/ws", hub.ServeWS)

	log.Printf("NoteStack Desktop Server starting on port %s...", port)
	log.Fatal(http.ListenAndServe("127.0.0.1:"+port, withCORS(mux)))
}

// withCORS allows the Electron renderer (file:// origin) to call the API.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
