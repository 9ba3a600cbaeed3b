package store

import (
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/settings"
)

// Store defines the interface for the durable key-value records backing the
// scoreboard: the match state snapshot and the user settings record, each
// under its own fixed key.
type Store interface {
	SaveState(state match.MatchState) error
	LoadState() (match.MatchState, bool, error)
	ClearState() error
	SaveSettings(s settings.Settings) error
	LoadSettings() (settings.Settings, error)
}
