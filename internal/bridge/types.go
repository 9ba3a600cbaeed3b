package bridge

import "github.com/mauv0809/pitchside/internal/match"

// MessageType discriminates the envelopes exchanged between contexts.
type MessageType string

const (
	// MessageStateUpdate carries a full match state snapshot.
	MessageStateUpdate MessageType = "STATE_UPDATE"
	// MessageTimerControl carries a clock command from a remote surface.
	MessageTimerControl MessageType = "TIMER_CONTROL"
	// MessageTeamUpdate carries a single team field edit from a remote surface.
	MessageTeamUpdate MessageType = "TEAM_UPDATE"
)

// TimerAction names the clock commands a TIMER_CONTROL envelope may carry.
type TimerAction string

const (
	TimerStart  TimerAction = "START"
	TimerStop   TimerAction = "STOP"
	TimerToggle TimerAction = "TOGGLE"
	TimerReset  TimerAction = "RESET"
)

// Envelope is the wire message for cross-context sync. Exactly one payload
// group is populated depending on Type: State for STATE_UPDATE, Action for
// TIMER_CONTROL, Team/Field/Value for TEAM_UPDATE.
type Envelope struct {
	Type   MessageType       `msgpack:"type" json:"type"`
	State  *match.MatchState `msgpack:"state,omitempty" json:"state,omitempty"`
	Action TimerAction       `msgpack:"action,omitempty" json:"action,omitempty"`
	Team   string            `msgpack:"team,omitempty" json:"team,omitempty"`
	Field  string            `msgpack:"field,omitempty" json:"field,omitempty"`
	Value  any               `msgpack:"value,omitempty" json:"value,omitempty"`
}
