package bridge

import (
	"sync"

	"github.com/mauv0809/pitchside/internal/match"
)

// Mirror is a read-only replica of the match state for display contexts.
// Every STATE_UPDATE replaces the replica wholesale; nothing is merged.
type Mirror struct {
	mu    sync.RWMutex
	state match.MatchState
	seen  bool
}

// NewMirror subscribes the mirror to the channel and seeds it with initial.
func NewMirror(ch Channel, initial match.MatchState) (*Mirror, error) {
	m := &Mirror{state: initial}
	if err := ch.Subscribe(m.apply); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mirror) apply(env Envelope) {
	if env.Type != MessageStateUpdate || env.State == nil {
		return
	}
	m.mu.Lock()
	m.state = env.State.Clone()
	m.seen = true
	m.mu.Unlock()
}

// State returns a copy of the current replica.
func (m *Mirror) State() match.MatchState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

// Synced reports whether at least one snapshot has arrived over the channel.
func (m *Mirror) Synced() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seen
}
