package notifier_test

import (
	"errors"
	"testing"

	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/notifier"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/stretchr/testify/assert"
)

func TestEngineHook(t *testing.T) {
	state := match.DefaultState(preset.Default())
	state.HomeTeam.Score = 2

	t.Run("forwards the final state", func(t *testing.T) {
		mock := notifier.NewMock()
		hook := notifier.EngineHook{Notifier: mock}
		hook.SendFinalResult(state)

		assert.Len(t, mock.SendFinalResultCalls, 1)
		assert.Equal(t, 2, mock.SendFinalResultCalls[0].HomeTeam.Score)
	})

	t.Run("swallows send failures", func(t *testing.T) {
		mock := notifier.NewMock()
		mock.SendFinalResultFunc = func(match.MatchState, bool) error {
			return errors.New("provider down")
		}
		hook := notifier.EngineHook{Notifier: mock}
		assert.NotPanics(t, func() { hook.SendFinalResult(state) })
	})

	t.Run("nil notifier is a no-op", func(t *testing.T) {
		hook := notifier.EngineHook{}
		assert.NotPanics(t, func() { hook.SendFinalResult(state) })
	})
}
