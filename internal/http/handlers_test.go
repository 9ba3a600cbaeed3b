package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/pitchside/internal/command"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/database"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/mauv0809/pitchside/internal/settings"
	"github.com/mauv0809/pitchside/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a test database and a fake clock.
func setupTestServer(t *testing.T) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	st := store.New(db)
	engine := match.New(clockwork.NewFakeClock(), match.DefaultState(preset.Default()), metricsSvc)
	holder := settings.NewHolder(settings.Default())
	dispatcher := command.New(engine, holder.Get, metricsSvc)

	server := NewServer(engine, st, dispatcher, holder, metricsSvc, metricsHandler, config.Config{})

	teardown := func() {
		engine.Close()
		if dbTeardown != nil {
			dbTeardown()
		}
	}
	return server, teardown
}

func doRequest(t *testing.T, server *Server, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) match.MatchState {
	t.Helper()
	var state match.MatchState
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	return state
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestStateHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "GET", "/state", "")
	require.Equal(t, http.StatusOK, rr.Code)

	state := decodeState(t, rr)
	assert.Equal(t, "Home", state.HomeTeam.Name)
	assert.False(t, state.IsRunning)
	assert.Equal(t, preset.Default().Name, state.GamePreset.Name)

	// The response carries the rendered segment label alongside the state.
	rr = doRequest(t, server, "GET", "/state", "")
	var payload struct {
		PhaseLabel string `json:"phaseLabel"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	assert.Equal(t, "1st Half", payload.PhaseLabel)
}

func TestPresetsHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "GET", "/presets", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var presets []preset.GamePreset
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&presets))
	assert.Len(t, presets, len(preset.All()))
	assert.Equal(t, preset.Default().Name, presets[0].Name)
}

func TestCommandHandler(t *testing.T) {
	t.Run("team update mutates state", func(t *testing.T) {
		server, teardown := setupTestServer(t)
		defer teardown()

		rr := doRequest(t, server, "POST", "/command",
			`{"type":"TEAM_UPDATE","team":"home","field":"name","value":"Sporting"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Sporting", decodeState(t, rr).HomeTeam.Name)
	})

	t.Run("timer control starts the clock", func(t *testing.T) {
		server, teardown := setupTestServer(t)
		defer teardown()

		rr := doRequest(t, server, "POST", "/command",
			`{"type":"TIMER_CONTROL","action":"START"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, decodeState(t, rr).IsRunning)
	})

	t.Run("unknown action inside a valid envelope is a no-op", func(t *testing.T) {
		server, teardown := setupTestServer(t)
		defer teardown()

		rr := doRequest(t, server, "POST", "/command",
			`{"type":"TIMER_CONTROL","action":"UNKNOWN"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, decodeState(t, rr).IsRunning)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		server, teardown := setupTestServer(t)
		defer teardown()

		rr := doRequest(t, server, "POST", "/command", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects unknown envelope type", func(t *testing.T) {
		server, teardown := setupTestServer(t)
		defer teardown()

		rr := doRequest(t, server, "POST", "/command", `{"type":"GOSSIP"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestKeyHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "POST", "/key", `{"key":" "}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeState(t, rr).IsRunning)

	rr = doRequest(t, server, "POST", "/key", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTournamentHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "PUT", "/tournament", `{"name":"Spring Cup","logo":"cup.png"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	state := decodeState(t, rr)
	assert.Equal(t, "Spring Cup", state.TournamentName)
	assert.Equal(t, "cup.png", state.TournamentLogo)

	// Branding edits are undoable like any other mutation.
	rr = doRequest(t, server, "POST", "/undo", "")
	assert.Empty(t, decodeState(t, rr).TournamentName)
}

func TestUndoRedoHandlers(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	doRequest(t, server, "POST", "/command",
		`{"type":"TEAM_UPDATE","team":"home","field":"name","value":"Sporting"}`)

	rr := doRequest(t, server, "POST", "/undo", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Home", decodeState(t, rr).HomeTeam.Name)

	rr = doRequest(t, server, "POST", "/redo", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Sporting", decodeState(t, rr).HomeTeam.Name)
}

func TestResetHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	doRequest(t, server, "POST", "/command",
		`{"type":"TEAM_UPDATE","team":"home","field":"score","value":3}`)

	rr := doRequest(t, server, "POST", "/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)

	state := decodeState(t, rr)
	assert.Equal(t, 0, state.HomeTeam.Score)
	assert.Equal(t, "Home", state.HomeTeam.Name)
}

func TestChangePresetHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "POST", "/preset", `{"index":3}`)
	require.Equal(t, http.StatusOK, rr.Code)

	state := decodeState(t, rr)
	assert.Equal(t, "Football Knockout", state.GamePreset.Name)
	assert.Equal(t, 1, state.Half)
	assert.Equal(t, 45, state.Time.Minutes)
	// Football tracks offsides, so the stat sheet grows the field.
	require.NotNil(t, state.HomeTeam.Stats.Offsides)

	rr = doRequest(t, server, "POST", "/preset", `{"index":99}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Football Knockout", decodeState(t, rr).GamePreset.Name)

	rr = doRequest(t, server, "POST", "/preset", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPeriodHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "POST", "/period", `{"half":2}`)
	require.Equal(t, http.StatusOK, rr.Code)

	state := decodeState(t, rr)
	assert.Equal(t, 2, state.Half)
	assert.False(t, state.IsRunning)
	assert.Equal(t, preset.Default().HalfDuration, state.Time.Minutes)

	// Going back to an earlier half is not allowed.
	rr = doRequest(t, server, "POST", "/period", `{"half":1}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, decodeState(t, rr).Half)

	rr = doRequest(t, server, "POST", "/period", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTimeHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "POST", "/time", `{"minutes":5,"seconds":30}`)
	require.Equal(t, http.StatusOK, rr.Code)

	state := decodeState(t, rr)
	assert.Equal(t, 5, state.Time.Minutes)
	assert.Equal(t, 30, state.Time.Seconds)

	rr = doRequest(t, server, "POST", "/time", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPossessionHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	// Possession only moves while the clock runs.
	rr := doRequest(t, server, "POST", "/possession", `{"team":"away"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, match.SideHome, decodeState(t, rr).BallPossession)

	doRequest(t, server, "POST", "/command", `{"type":"TIMER_CONTROL","action":"START"}`)
	rr = doRequest(t, server, "POST", "/possession", `{"team":"away"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, match.SideAway, decodeState(t, rr).BallPossession)

	rr = doRequest(t, server, "POST", "/possession", `{"team":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTeamStatsHandler(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	// Stat edits are only honored while the clock runs.
	rr := doRequest(t, server, "POST", "/teams/home/stats", `{"key":"corners","value":3}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeState(t, rr).HomeTeam.Stats.Corners)

	doRequest(t, server, "POST", "/command", `{"type":"TIMER_CONTROL","action":"START"}`)
	rr = doRequest(t, server, "POST", "/teams/home/stats", `{"key":"corners","value":3}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, decodeState(t, rr).HomeTeam.Stats.Corners)

	// Futsal does not track offsides, so the edit is dropped.
	rr = doRequest(t, server, "POST", "/teams/away/stats", `{"key":"offsides","value":1}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, decodeState(t, rr).AwayTeam.Stats.Offsides)

	rr = doRequest(t, server, "POST", "/teams/blue/stats", `{"key":"corners","value":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRosterHandlers(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "POST", "/teams/home/players",
		`{"name":"Ana","number":7,"role":"starter"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	state := decodeState(t, rr)
	require.Len(t, state.HomeTeam.Players, 1)
	player := state.HomeTeam.Players[0]
	assert.Equal(t, "Ana", player.Name)
	require.NotNil(t, player.Number)
	assert.Equal(t, 7, *player.Number)
	assert.Equal(t, match.RoleStarter, player.Role)
	require.NotEmpty(t, player.ID)

	// Player goals drive the team score.
	rr = doRequest(t, server, "POST", "/teams/home/players/"+player.ID+"/stats",
		`{"field":"goals","value":2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	state = decodeState(t, rr)
	assert.Equal(t, 2, state.HomeTeam.Players[0].Goals)
	assert.Equal(t, 2, state.HomeTeam.Score)

	// Removing the player takes their goals with them.
	rr = doRequest(t, server, "DELETE", "/teams/home/players/"+player.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	state = decodeState(t, rr)
	assert.Empty(t, state.HomeTeam.Players)
	assert.Equal(t, 0, state.HomeTeam.Score)

	rr = doRequest(t, server, "POST", "/teams/home/players", `{"name":"Bo","role":"goalie"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSettingsHandlers(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	rr := doRequest(t, server, "GET", "/settings", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var current settings.Settings
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&current))
	assert.Equal(t, settings.Default(), current)

	rr = doRequest(t, server, "PUT", "/settings",
		`{"showUndo":false,"showRedo":true,"bindings":{"homePossession":["q"],"awayPossession":["e"]}}`)
	require.Equal(t, http.StatusOK, rr.Code)

	// The updated bindings apply to key presses immediately. Possession
	// switches are only honored while the clock runs.
	doRequest(t, server, "POST", "/command", `{"type":"TIMER_CONTROL","action":"START"}`)
	rr = doRequest(t, server, "POST", "/key", `{"key":"e"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, match.SideAway, decodeState(t, rr).BallPossession)

	// And the saved copy survives a fresh load from the store.
	loaded, err := server.Store.LoadSettings()
	require.NoError(t, err)
	assert.False(t, loaded.ShowUndo)
	assert.Equal(t, []string{"q"}, loaded.Bindings.HomePossession)
}

func TestServerWithoutStore(t *testing.T) {
	// No database configured: everything works, nothing persists.
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	engine := match.New(clockwork.NewFakeClock(), match.DefaultState(preset.Default()), metricsSvc)
	t.Cleanup(engine.Close)
	holder := settings.NewHolder(settings.Default())
	dispatcher := command.New(engine, holder.Get, metricsSvc)

	server := NewServer(engine, nil, dispatcher, holder, metricsSvc, metricsHandler, config.Config{})

	rr := doRequest(t, server, "POST", "/command",
		`{"type":"TEAM_UPDATE","team":"home","field":"name","value":"Sporting"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Sporting", decodeState(t, rr).HomeTeam.Name)

	rr = doRequest(t, server, "PUT", "/settings",
		`{"showUndo":true,"showRedo":true,"bindings":{"homePossession":["q"],"awayPossession":["e"]}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, server.Settings.Get().BindsHome("q"))
}

func TestMetricsEndpoint(t *testing.T) {
	server, teardown := setupTestServer(t)
	defer teardown()

	doRequest(t, server, "POST", "/command", `{"type":"TIMER_CONTROL","action":"TOGGLE"}`)

	rr := doRequest(t, server, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "pitchside_commands_received_total"))
}
