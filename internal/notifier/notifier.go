package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/match"
)

// Notifier defines a high-level interface for announcing business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For decided matches
	SendFinalResult(state match.MatchState, dryRun bool) error
}

// EngineHook adapts a Notifier to the match engine's callback shape. The
// engine fires the hook from its tick path, so failures are logged rather
// than returned.
type EngineHook struct {
	Notifier Notifier
	DryRun   bool
}

func (h EngineHook) SendFinalResult(state match.MatchState) {
	if h.Notifier == nil {
		return
	}
	if err := h.Notifier.SendFinalResult(state, h.DryRun); err != nil {
		log.Error("Failed to send final result notification", "error", err)
	}
}
