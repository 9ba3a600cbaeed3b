package settings

import "sync"

// Holder is the in-memory source of truth for the current settings. Key
// presses read through it, so a saved binding change applies immediately.
type Holder struct {
	mu      sync.RWMutex
	current Settings
}

// NewHolder creates a Holder seeded with initial.
func NewHolder(initial Settings) *Holder {
	initial.Normalize()
	return &Holder{current: initial}
}

// Get returns the current settings.
func (h *Holder) Get() Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Set replaces the current settings.
func (h *Holder) Set(s Settings) {
	s.Normalize()
	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
}
