// Package command maps inbound control surfaces, keyboard shortcuts and
// remote envelopes, onto match engine operations.
package command

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/bridge"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/settings"
)

// Engine is the subset of match engine operations a control surface may drive.
type Engine interface {
	StartTimer()
	StopTimer()
	ToggleTimer()
	ResetTimer()
	ForceStop()
	SwitchPossession(side match.Side)
	UpdateTeamName(side match.Side, name string)
	UpdateTeamLogo(side match.Side, logo string)
	UpdateTeamScore(side match.Side, value int)
	UpdateTeamFouls(side match.Side, value int)
}

// KeyEvent describes a single keyboard press as seen by the operator surface.
type KeyEvent struct {
	Key            string `json:"key"`
	Ctrl           bool   `json:"ctrl"`
	Meta           bool   `json:"meta"`
	EditableTarget bool   `json:"editableTarget"`
}

// Dispatcher routes envelopes and key events to the engine. Unknown or
// malformed input is dropped without side effects.
type Dispatcher struct {
	engine   Engine
	settings func() settings.Settings
	metrics  metrics.Metrics
}

// New creates a Dispatcher. settingsFn supplies the current key bindings on
// every key press so binding edits take effect immediately.
func New(engine Engine, settingsFn func() settings.Settings, m metrics.Metrics) *Dispatcher {
	return &Dispatcher{engine: engine, settings: settingsFn, metrics: m}
}

// HandleEnvelope applies a remote control envelope. STATE_UPDATE envelopes
// are display-bound and ignored here.
func (d *Dispatcher) HandleEnvelope(env bridge.Envelope) {
	switch env.Type {
	case bridge.MessageTimerControl:
		d.handleTimer(env.Action)
	case bridge.MessageTeamUpdate:
		d.handleTeamUpdate(env)
	case bridge.MessageStateUpdate:
	default:
		log.Debug("Ignoring unknown envelope type", "type", env.Type)
	}
}

func (d *Dispatcher) handleTimer(action bridge.TimerAction) {
	d.metrics.IncCommandsReceived("timer")
	switch action {
	case bridge.TimerStart:
		d.engine.StartTimer()
	case bridge.TimerStop:
		d.engine.StopTimer()
	case bridge.TimerToggle:
		d.engine.ToggleTimer()
	case bridge.TimerReset:
		d.engine.ResetTimer()
	default:
		log.Debug("Ignoring unknown timer action", "action", action)
	}
}

func (d *Dispatcher) handleTeamUpdate(env bridge.Envelope) {
	side, ok := parseSide(env.Team)
	if !ok {
		log.Debug("Ignoring team update for unknown side", "team", env.Team)
		return
	}
	d.metrics.IncCommandsReceived("team")

	switch env.Field {
	case "name":
		if v, ok := asString(env.Value); ok {
			d.engine.UpdateTeamName(side, v)
		}
	case "logo":
		if v, ok := asString(env.Value); ok {
			d.engine.UpdateTeamLogo(side, v)
		}
	case "score":
		if v, ok := asInt(env.Value); ok {
			d.engine.UpdateTeamScore(side, v)
		}
	case "fouls":
		if v, ok := asInt(env.Value); ok {
			d.engine.UpdateTeamFouls(side, v)
		}
	default:
		log.Debug("Ignoring unknown team field", "field", env.Field)
	}
}

// HandleKey applies a keyboard shortcut. Presses inside editable elements are
// left to the browser so typing a team name never toggles the clock.
func (d *Dispatcher) HandleKey(ev KeyEvent) {
	if ev.EditableTarget {
		return
	}
	key := strings.ToLower(ev.Key)

	if ev.Ctrl || ev.Meta {
		if key == "r" {
			d.metrics.IncCommandsReceived("key")
			d.engine.ResetTimer()
		}
		return
	}

	switch key {
	case " ", "space":
		d.metrics.IncCommandsReceived("key")
		d.engine.ToggleTimer()
		return
	case "escape":
		d.metrics.IncCommandsReceived("key")
		d.engine.ForceStop()
		return
	}

	set := d.settings()
	if set.BindsHome(key) {
		d.metrics.IncCommandsReceived("key")
		d.engine.SwitchPossession(match.SideHome)
		return
	}
	if set.BindsAway(key) {
		d.metrics.IncCommandsReceived("key")
		d.engine.SwitchPossession(match.SideAway)
	}
}

func parseSide(team string) (match.Side, bool) {
	switch strings.ToLower(team) {
	case "home":
		return match.SideHome, true
	case "away":
		return match.SideAway, true
	}
	return "", false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt accepts the numeric shapes JSON and MessagePack decoding produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
