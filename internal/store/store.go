package store

import (
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/mauv0809/pitchside/internal/settings"
)

// Fixed record keys. The match state and the user settings are persisted
// independently.
const (
	stateKey    = "matchState"
	settingsKey = "userSettings"
)

// store handles all database operations for the scoreboard records.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{db: db}
}

// SaveState serializes the full match state under its fixed key.
func (s *store) SaveState(state match.MatchState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.put(stateKey, data)
}

// LoadState reads the persisted match state. Malformed JSON is ignored and
// the defaults returned; a partial saved shape is decoded over a fully
// populated default state so older records never produce missing
// substructures. The second return value reports whether a usable record
// existed.
func (s *store) LoadState() (match.MatchState, bool, error) {
	fallback := match.DefaultState(preset.Default())
	data, found, err := s.get(stateKey)
	if err != nil || !found {
		return fallback, false, err
	}

	state := match.DefaultState(preset.Default())
	if err := json.Unmarshal(data, &state); err != nil {
		log.Error("Ignoring malformed persisted match state", "error", err)
		return fallback, false, nil
	}
	state.Normalize()
	return state, true, nil
}

// ClearState removes the persisted match state record.
func (s *store) ClearState() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM records WHERE key = ?", stateKey)
	return err
}

// SaveSettings serializes the user settings under their own key.
func (s *store) SaveSettings(set settings.Settings) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return s.put(settingsKey, data)
}

// LoadSettings reads the persisted user settings, falling back to defaults
// when absent or malformed.
func (s *store) LoadSettings() (settings.Settings, error) {
	data, found, err := s.get(settingsKey)
	if err != nil || !found {
		return settings.Default(), err
	}

	set := settings.Default()
	if err := json.Unmarshal(data, &set); err != nil {
		log.Error("Ignoring malformed persisted settings", "error", err)
		return settings.Default(), nil
	}
	set.Normalize()
	return set, nil
}

func (s *store) put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO records (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at;
	`, key, string(data), time.Now().Unix())
	return err
}

func (s *store) get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRow("SELECT data FROM records WHERE key = ?", key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(data), true, nil
}
