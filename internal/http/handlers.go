package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/bridge"
	"github.com/mauv0809/pitchside/internal/command"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/mauv0809/pitchside/internal/settings"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// stateResponse is the match state plus the rendered label for the current
// segment, so display clients never re-derive it.
type stateResponse struct {
	match.MatchState
	PhaseLabel string `json:"phaseLabel"`
}

func (s *Server) writeState(w http.ResponseWriter) {
	writeJSON(w, stateResponse{MatchState: s.Engine.State(), PhaseLabel: s.Engine.PhaseLabel()})
}

// StateHandler returns the full current match state.
func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeState(w)
	}
}

// PresetsHandler returns the game preset catalog.
func (s *Server) PresetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, preset.All())
	}
}

// commandRequest is the JSON body accepted by the command endpoint. It
// mirrors the envelope shape used on the broadcast channel.
type commandRequest struct {
	Type   string `json:"type" validate:"required,oneof=TIMER_CONTROL TEAM_UPDATE"`
	Action string `json:"action" validate:"required_if=Type TIMER_CONTROL"`
	Team   string `json:"team" validate:"omitempty,oneof=home away"`
	Field  string `json:"field"`
	Value  any    `json:"value"`
}

// CommandHandler accepts a remote control command and routes it through the
// dispatcher. Unknown actions inside a valid envelope are silently dropped,
// matching the behaviour of commands arriving over the broadcast channel.
func (s *Server) CommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode command payload", "error", err)
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			log.Warn("Rejected invalid command", "error", err)
			http.Error(w, "Invalid command", http.StatusBadRequest)
			return
		}

		s.Dispatcher.HandleEnvelope(bridge.Envelope{
			Type:   bridge.MessageType(req.Type),
			Action: bridge.TimerAction(req.Action),
			Team:   req.Team,
			Field:  req.Field,
			Value:  req.Value,
		})
		s.writeState(w)
	}
}

// KeyHandler accepts a keyboard event from an operator surface.
func (s *Server) KeyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev command.KeyEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			log.Warn("Failed to decode key event", "error", err)
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if ev.Key == "" {
			http.Error(w, "Missing key", http.StatusBadRequest)
			return
		}

		s.Dispatcher.HandleKey(ev)
		s.writeState(w)
	}
}

// TournamentHandler sets the tournament branding shown above the scoreboard.
func (s *Server) TournamentHandler() http.HandlerFunc {
	type tournamentRequest struct {
		Name string `json:"name"`
		Logo string `json:"logo"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req tournamentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("Failed to decode tournament payload", "error", err)
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		s.Engine.UpdateTournament(req.Name, req.Logo)
		s.writeState(w)
	}
}

// ChangePresetHandler swaps the active game preset by catalog index.
func (s *Server) ChangePresetHandler() http.HandlerFunc {
	type presetRequest struct {
		Index *int `json:"index" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req presetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			http.Error(w, "Missing preset index", http.StatusBadRequest)
			return
		}
		s.Engine.ChangeGamePreset(*req.Index)
		s.writeState(w)
	}
}

// PeriodHandler navigates the match to the requested half.
func (s *Server) PeriodHandler() http.HandlerFunc {
	type periodRequest struct {
		Half *int `json:"half" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req periodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			http.Error(w, "Missing half", http.StatusBadRequest)
			return
		}
		s.Engine.UpdatePeriod(*req.Half)
		s.writeState(w)
	}
}

// TimeHandler sets the clock directly.
func (s *Server) TimeHandler() http.HandlerFunc {
	type timeRequest struct {
		Minutes int `json:"minutes"`
		Seconds int `json:"seconds"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req timeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		s.Engine.UpdateTime(req.Minutes, req.Seconds)
		s.writeState(w)
	}
}

// PossessionHandler hands the ball to the given side.
func (s *Server) PossessionHandler() http.HandlerFunc {
	type possessionRequest struct {
		Team string `json:"team" validate:"required,oneof=home away"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req possessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			http.Error(w, "Invalid team", http.StatusBadRequest)
			return
		}
		s.Engine.SwitchPossession(match.Side(req.Team))
		s.writeState(w)
	}
}

// TeamStatsHandler sets one entry of a team's stat sheet.
func (s *Server) TeamStatsHandler() http.HandlerFunc {
	type statsRequest struct {
		Key   string `json:"key" validate:"required"`
		Value int    `json:"value"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		side, ok := sideFromPath(r)
		if !ok {
			http.Error(w, "Unknown team", http.StatusBadRequest)
			return
		}
		var req statsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			http.Error(w, "Missing stat key", http.StatusBadRequest)
			return
		}
		s.Engine.UpdateTeamStats(side, match.StatKey(req.Key), req.Value)
		s.writeState(w)
	}
}

// AddPlayerHandler appends a player to a team's roster.
func (s *Server) AddPlayerHandler() http.HandlerFunc {
	type playerRequest struct {
		Name   string `json:"name" validate:"required"`
		Number *int   `json:"number"`
		Role   string `json:"role" validate:"required,oneof=starter substitute"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		side, ok := sideFromPath(r)
		if !ok {
			http.Error(w, "Unknown team", http.StatusBadRequest)
			return
		}
		var req playerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			http.Error(w, "Invalid player", http.StatusBadRequest)
			return
		}
		s.Engine.AddPlayer(side, req.Name, req.Number, match.Role(req.Role))
		s.writeState(w)
	}
}

// RemovePlayerHandler removes a player from a team's roster.
func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		side, ok := sideFromPath(r)
		if !ok {
			http.Error(w, "Unknown team", http.StatusBadRequest)
			return
		}
		s.Engine.RemovePlayer(side, r.PathValue("id"))
		s.writeState(w)
	}
}

// PlayerStatsHandler sets one of a player's counters.
func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	type playerStatsRequest struct {
		Field string `json:"field" validate:"required,oneof=goals yellowCards redCards"`
		Value int    `json:"value"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		side, ok := sideFromPath(r)
		if !ok {
			http.Error(w, "Unknown team", http.StatusBadRequest)
			return
		}
		var req playerStatsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			http.Error(w, "Invalid player stat", http.StatusBadRequest)
			return
		}
		s.Engine.UpdatePlayerStats(side, r.PathValue("id"), match.PlayerStatField(req.Field), req.Value)
		s.writeState(w)
	}
}

func sideFromPath(r *http.Request) (match.Side, bool) {
	switch r.PathValue("side") {
	case "home":
		return match.SideHome, true
	case "away":
		return match.SideAway, true
	}
	return "", false
}

func (s *Server) UndoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Engine.Undo()
		s.writeState(w)
	}
}

func (s *Server) RedoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Engine.Redo()
		s.writeState(w)
	}
}

// ResetHandler wipes the match back to defaults for the current preset.
func (s *Server) ResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to reset the match")
		s.Engine.ResetGame()
		s.writeState(w)
	}
}

func (s *Server) GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.Settings.Get())
	}
}

func (s *Server) PutSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var set settings.Settings
		if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
			log.Warn("Failed to decode settings payload", "error", err)
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		set.Normalize()

		s.Settings.Set(set)
		// Without a store the settings still apply, they just don't
		// survive a restart.
		if s.Store != nil {
			if err := s.Store.SaveSettings(set); err != nil {
				log.Error("Failed to persist settings", "error", err)
				http.Error(w, "Failed to save settings", http.StatusInternalServerError)
				return
			}
		}
		writeJSON(w, set)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
