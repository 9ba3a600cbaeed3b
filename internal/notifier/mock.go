package notifier

import (
	"sync"

	"github.com/mauv0809/pitchside/internal/match"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendFinalResultFunc func(state match.MatchState, dryRun bool) error

	// Call records
	SendFinalResultCalls []match.MatchState
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFinalResultCalls = nil
}

func (m *Mock) SendFinalResult(state match.MatchState, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFinalResultCalls = append(m.SendFinalResultCalls, state)
	if m.SendFinalResultFunc != nil {
		return m.SendFinalResultFunc(state, dryRun)
	}
	return nil
}
