package store_test

import (
	"testing"

	"github.com/mauv0809/pitchside/internal/database"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/mauv0809/pitchside/internal/settings"
	"github.com/mauv0809/pitchside/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary in-memory SQLite database for testing.
func setupTestStore(t *testing.T) (store.Store, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return store.New(db), teardown
}

func TestStateRoundTrip(t *testing.T) {
	s, teardown := setupTestStore(t)
	defer teardown()

	state := match.DefaultState(preset.Find(preset.SportFutsal, "cup"))
	state.HomeTeam.Name = "Sporting"
	state.HomeTeam.Score = 3
	state.Half = 2
	state.TotalPossessionTime.Home = 4000

	require.NoError(t, s.SaveState(state))

	loaded, found, err := s.LoadState()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Sporting", loaded.HomeTeam.Name)
	assert.Equal(t, 3, loaded.HomeTeam.Score)
	assert.Equal(t, 2, loaded.Half)
	assert.Equal(t, int64(4000), loaded.TotalPossessionTime.Home)
	assert.Equal(t, "Futsal Cup", loaded.GamePreset.Name)
}

func TestLoadStateWithoutRecord(t *testing.T) {
	s, teardown := setupTestStore(t)
	defer teardown()

	loaded, found, err := s.LoadState()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, match.DefaultState(preset.Default()), loaded)
}

func TestLoadStateDefensive(t *testing.T) {
	t.Run("malformed JSON falls back to defaults", func(t *testing.T) {
		db, teardown, err := database.InitDB(":memory:", "", "")
		require.NoError(t, err)
		defer teardown()

		_, err = db.Exec(`INSERT INTO records (key, data, updated_at) VALUES ('matchState', '{not json', 0)`)
		require.NoError(t, err)

		loaded, found, err := store.New(db).LoadState()
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, match.DefaultState(preset.Default()), loaded)
	})

	t.Run("partial legacy shape is default-filled field by field", func(t *testing.T) {
		db, teardown, err := database.InitDB(":memory:", "", "")
		require.NoError(t, err)
		defer teardown()

		// An old record with no rosters, no possession totals and no preset.
		_, err = db.Exec(`INSERT INTO records (key, data, updated_at)
			VALUES ('matchState', '{"homeTeam":{"name":"Sporting","score":2},"half":2}', 0)`)
		require.NoError(t, err)

		loaded, found, err := store.New(db).LoadState()
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Sporting", loaded.HomeTeam.Name)
		assert.Equal(t, 2, loaded.HomeTeam.Score)
		assert.Equal(t, 2, loaded.Half)
		assert.NotNil(t, loaded.HomeTeam.Players, "missing roster defaults to empty, not nil")
		assert.NotNil(t, loaded.AwayTeam.Players)
		assert.Equal(t, "Away", loaded.AwayTeam.Name)
		assert.Equal(t, preset.Default(), loaded.GamePreset, "missing preset defaults to the catalog fallback")
		assert.Equal(t, 50.0, loaded.HomeTeam.Stats.Possession)
	})
}

func TestClearState(t *testing.T) {
	s, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, s.SaveState(match.DefaultState(preset.Default())))
	require.NoError(t, s.ClearState())

	_, found, err := s.LoadState()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSettingsRoundTrip(t *testing.T) {
	s, teardown := setupTestStore(t)
	defer teardown()

	set := settings.Default()
	set.ShowRedo = false
	set.Bindings.HomePossession = []string{"q"}
	require.NoError(t, s.SaveSettings(set))

	loaded, err := s.LoadSettings()
	require.NoError(t, err)
	assert.False(t, loaded.ShowRedo)
	assert.Equal(t, []string{"q"}, loaded.Bindings.HomePossession)
	assert.Equal(t, []string{"d", "2"}, loaded.Bindings.AwayPossession)
}

func TestLoadSettingsDefault(t *testing.T) {
	s, teardown := setupTestStore(t)
	defer teardown()

	loaded, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), loaded)
}
