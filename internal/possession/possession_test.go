package possession

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccumulate(t *testing.T) {
	base := time.UnixMilli(1_000_000)

	t.Run("adds the elapsed interval to the holding team", func(t *testing.T) {
		totals, _, _ := Accumulate(Home, base.UnixMilli(), Totals{}, base.Add(3*time.Second))
		assert.Equal(t, int64(3000), totals.Home)
		assert.Equal(t, int64(0), totals.Away)

		totals, _, _ = Accumulate(Away, base.UnixMilli(), totals, base.Add(time.Second))
		assert.Equal(t, int64(1000), totals.Away)
	})

	t.Run("negative elapsed time counts as zero", func(t *testing.T) {
		totals, home, away := Accumulate(Home, base.UnixMilli(), Totals{}, base.Add(-5*time.Second))
		assert.Equal(t, Totals{}, totals)
		assert.Equal(t, 50.0, home)
		assert.Equal(t, 50.0, away)
	})

	t.Run("below one second both teams read fifty", func(t *testing.T) {
		_, home, away := Accumulate(Home, base.UnixMilli(), Totals{}, base.Add(400*time.Millisecond))
		assert.Equal(t, 50.0, home)
		assert.Equal(t, 50.0, away)
	})

	t.Run("percentages follow the ratio once enough time accrued", func(t *testing.T) {
		totals := Totals{Home: 3000, Away: 1000}
		_, home, away := Accumulate(Home, base.UnixMilli(), totals, base)
		assert.Equal(t, 75.0, home)
		assert.Equal(t, 25.0, away)
	})
}

func TestPercentagesSumToOneHundred(t *testing.T) {
	cases := []Totals{
		{Home: 1000, Away: 0},
		{Home: 1234, Away: 5678},
		{Home: 333, Away: 667},
		{Home: 999_999, Away: 1},
		{Home: 7777, Away: 2223},
	}
	for _, totals := range cases {
		home, away := Percentages(totals)
		assert.InDelta(t, 100.0, home+away, 0.0001, "totals %+v", totals)
	}
}

func TestPercentagesRounding(t *testing.T) {
	// 1/3 of the time is 33.333..., which must round to one decimal with the
	// complement taking the remainder.
	home, away := Percentages(Totals{Home: 1000, Away: 2000})
	assert.Equal(t, 33.3, home)
	assert.Equal(t, 66.7, away)
}
