package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	t.Run("returns the matching entry", func(t *testing.T) {
		p := Find(SportFootball, "cup")
		assert.Equal(t, "Football Cup", p.Name)
		assert.Equal(t, 45, p.HalfDuration)
	})

	t.Run("falls back to the first catalog entry", func(t *testing.T) {
		p := Find(SportFootball, "no-such-format")
		assert.Equal(t, Default(), p)
	})
}

func TestByIndex(t *testing.T) {
	p, ok := ByIndex(0)
	require.True(t, ok)
	assert.Equal(t, Default(), p)

	_, ok = ByIndex(-1)
	assert.False(t, ok)
	_, ok = ByIndex(len(All()))
	assert.False(t, ok)
}

func TestLimits(t *testing.T) {
	assert.Equal(t, RosterLimits{Starters: 5, Substitutes: 9}, Limits(SportFutsal))
	assert.Equal(t, RosterLimits{Starters: 11, Substitutes: 12}, Limits(SportFootball))
}

func TestSportRules(t *testing.T) {
	assert.False(t, CarriesFouls(SportFutsal), "futsal fouls reset every half")
	assert.True(t, CarriesFouls(SportFootball))
	assert.False(t, TracksOffsides(SportFutsal))
	assert.True(t, TracksOffsides(SportFootball))
}

func TestPhaseLabel(t *testing.T) {
	p := Find(SportFutsal, "standard")
	assert.Equal(t, "1st Half", PhaseLabel(1, p, PhaseRegular))
	assert.Equal(t, "2nd Half", PhaseLabel(2, p, PhaseRegular))
	assert.Equal(t, "Extra Time 1", PhaseLabel(3, p, PhaseExtraTime))
	assert.Equal(t, "Extra Time 2", PhaseLabel(4, p, PhaseExtraTime))
	assert.Equal(t, "Penalty Shootout", PhaseLabel(5, p, PhasePenalties))
}

func TestAutoAdvance(t *testing.T) {
	withET := Find(SportFutsal, "standard")
	pensOnly := Find(SportFutsal, "cup")
	draws := Find(SportFutsal, "league")

	tests := []struct {
		name        string
		half        int
		preset      GamePreset
		phase       Phase
		home, away  int
		want        Advance
		wantAdvance bool
	}{
		{"end of half 1 always advances", 1, withET, PhaseRegular, 3, 0, Advance{Half: 2, Phase: PhaseRegular, Minutes: 20}, true},
		{"level at full time with extra time", 2, withET, PhaseRegular, 2, 2, Advance{Half: 3, Phase: PhaseExtraTime, Minutes: 5}, true},
		{"level at full time with penalties only", 2, pensOnly, PhaseRegular, 2, 2, Advance{Half: 5, Phase: PhasePenalties}, true},
		{"level at full time when draws allowed", 2, draws, PhaseRegular, 1, 1, Advance{}, false},
		{"decided at full time does not advance", 2, withET, PhaseRegular, 2, 1, Advance{}, false},
		{"end of first extra period always advances", 3, withET, PhaseExtraTime, 2, 2, Advance{Half: 4, Phase: PhaseExtraTime, Minutes: 5}, true},
		{"level after extra time goes to penalties", 4, withET, PhaseExtraTime, 2, 2, Advance{Half: 5, Phase: PhasePenalties}, true},
		{"decided after extra time ends the match", 4, withET, PhaseExtraTime, 3, 2, Advance{}, false},
		{"penalties never auto advance", 5, withET, PhasePenalties, 4, 4, Advance{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AutoAdvance(tt.half, tt.preset, tt.phase, tt.home, tt.away)
			assert.Equal(t, tt.wantAdvance, ok)
			if tt.wantAdvance {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolvePeriod(t *testing.T) {
	withET := Find(SportFutsal, "standard")
	pensOnly := Find(SportFutsal, "cup")
	draws := Find(SportFutsal, "league")

	t.Run("regular halves use the half duration", func(t *testing.T) {
		adv, ok := ResolvePeriod(2, withET)
		require.True(t, ok)
		assert.Equal(t, Advance{Half: 2, Phase: PhaseRegular, Minutes: 20}, adv)
	})

	t.Run("halves three and four use the extra time duration", func(t *testing.T) {
		adv, ok := ResolvePeriod(4, withET)
		require.True(t, ok)
		assert.Equal(t, Advance{Half: 4, Phase: PhaseExtraTime, Minutes: 5}, adv)
	})

	t.Run("no extra time but penalties jumps to half five", func(t *testing.T) {
		adv, ok := ResolvePeriod(3, pensOnly)
		require.True(t, ok)
		assert.Equal(t, Advance{Half: 5, Phase: PhasePenalties}, adv)
	})

	t.Run("half five forces a zero clock", func(t *testing.T) {
		adv, ok := ResolvePeriod(5, withET)
		require.True(t, ok)
		assert.Equal(t, 0, adv.Minutes)
	})

	t.Run("unreachable segments are rejected", func(t *testing.T) {
		_, ok := ResolvePeriod(3, draws)
		assert.False(t, ok)
		_, ok = ResolvePeriod(0, withET)
		assert.False(t, ok)
	})
}
