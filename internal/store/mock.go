package store

import (
	"sync"

	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/mauv0809/pitchside/internal/settings"
)

// Mock is a mock implementation of Store for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SaveStateFunc    func(state match.MatchState) error
	LoadStateFunc    func() (match.MatchState, bool, error)
	ClearStateFunc   func() error
	SaveSettingsFunc func(s settings.Settings) error
	LoadSettingsFunc func() (settings.Settings, error)

	// Call records
	SaveStateCalls    []match.MatchState
	ClearStateCalls   int
	SaveSettingsCalls []settings.Settings
}

// NewMock creates a new mock Store.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveState(state match.MatchState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveStateCalls = append(m.SaveStateCalls, state)
	if m.SaveStateFunc != nil {
		return m.SaveStateFunc(state)
	}
	return nil
}

func (m *Mock) LoadState() (match.MatchState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadStateFunc != nil {
		return m.LoadStateFunc()
	}
	return match.DefaultState(preset.Default()), false, nil
}

func (m *Mock) ClearState() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearStateCalls++
	if m.ClearStateFunc != nil {
		return m.ClearStateFunc()
	}
	return nil
}

func (m *Mock) SaveSettings(s settings.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveSettingsCalls = append(m.SaveSettingsCalls, s)
	if m.SaveSettingsFunc != nil {
		return m.SaveSettingsFunc(s)
	}
	return nil
}

func (m *Mock) LoadSettings() (settings.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadSettingsFunc != nil {
		return m.LoadSettingsFunc()
	}
	return settings.Default(), nil
}
