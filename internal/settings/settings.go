// Package settings stores user-facing configuration in the key-value store.
// Components receive the service explicitly instead of reaching for ambient
// storage, so tests can inject doubles.
package settings

import (
	"encoding/json"
	"time"

	"github.com/notestack/backend/internal/logging"
	"github.com/notestack/backend/internal/models"
)

// Storage keys.
const (
	importSettingsKey = "appleNotesSettings"
	startDateKey      = "note_start_date"
	welcomeSeenKey    = "has_seen_welcome"
)

// KV is the slice of the key-value store the service needs.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Service provides typed access to persisted settings.
type Service struct {
	kv KV
}

// NewService creates a Service over the given storage.
func NewService(kv KV) *Service {
	return &Service{kv: kv}
}

// ImportSettings returns the Apple Notes importer configuration. Missing or
// undecodable state yields zero settings.
func (s *Service) ImportSettings() models.ImportSettings {
	raw, ok := s.kv.Get(importSettingsKey)
	if !ok {
		return models.ImportSettings{}
	}

	var cfg models.ImportSettings
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		logging.Warn("discarding undecodable import settings", map[string]interface{}{
			"error": err.Error(),
		})
		return models.ImportSettings{}
	}
	return cfg
}

// SetImportSettings persists the importer configuration.
func (s *Service) SetImportSettings(cfg models.ImportSettings) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.kv.Set(importSettingsKey, string(data))
}

// StartDate returns the first day the calendar should offer, when one has
// been recorded.
func (s *Service) StartDate() (time.Time, bool) {
	raw, ok := s.kv.Get(startDateKey)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		logging.Warn("discarding undecodable start date", map[string]interface{}{
			"error": err.Error(),
		})
		return time.Time{}, false
	}
	return t, true
}

// SetStartDate records the first day of note taking.
func (s *Service) SetStartDate(t time.Time) error {
	return s.kv.Set(startDateKey, t.UTC().Format(time.RFC3339))
}

// HasSeenWelcome reports whether the welcome dialog has been shown.
func (s *Service) HasSeenWelcome() bool {
	raw, ok := s.kv.Get(welcomeSeenKey)
	return ok && raw == "true"
}

// MarkWelcomeSeen records that the welcome dialog has been shown.
func (s *Service) MarkWelcomeSeen() error {
	return s.kv.Set(welcomeSeenKey, "true")
}
