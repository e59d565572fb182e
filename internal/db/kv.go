package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/notestack/backend/internal/logging"
)

// KVStore is the persisted key-value string store backing all NoteStack
// state. Values are whole JSON documents; every write replaces the full
// value, so the storage granularity is one value per key.
type KVStore struct {
	db *sql.DB
}

// NewKVStore creates a KVStore over an open database.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the stored value for key. Storage failures are logged and
// reported as an absent key; readers never see an error.
func (s *KVStore) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logging.Error("kv read failed", err, map[string]interface{}{"key": key})
		}
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any prior value.
func (s *KVStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func (s *KVStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
