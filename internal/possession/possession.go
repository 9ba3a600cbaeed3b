// Package possession converts wall-clock possession intervals into cumulative
// totals and display percentages.
package possession

import (
	"math"
	"time"
)

// Holder names the team currently holding the ball.
type Holder string

const (
	Home Holder = "home"
	Away Holder = "away"
)

// Totals is the accumulated possession time per team in milliseconds.
type Totals struct {
	Home int64 `json:"home"`
	Away int64 `json:"away"`
}

// minSample is the least accumulated time required before percentages are
// computed from the ratio. Below it both teams read 50 to avoid a meaningless
// spike right after kickoff.
const minSample = 1000 * time.Millisecond

// Accumulate closes out the interval that started at startMS (unix
// milliseconds) for the holding team and returns the updated totals together
// with both teams' possession percentages. Percentages are rounded to one
// decimal and always sum to 100.
func Accumulate(holder Holder, startMS int64, totals Totals, now time.Time) (Totals, float64, float64) {
	elapsed := now.UnixMilli() - startMS
	if elapsed < 0 {
		elapsed = 0
	}
	if holder == Away {
		totals.Away += elapsed
	} else {
		totals.Home += elapsed
	}

	homePct, awayPct := Percentages(totals)
	return totals, homePct, awayPct
}

// Percentages derives the two display percentages from the accumulated
// totals.
func Percentages(totals Totals) (float64, float64) {
	grand := totals.Home + totals.Away
	if grand < minSample.Milliseconds() {
		return 50, 50
	}
	home := math.Round(float64(totals.Home)/float64(grand)*1000) / 10
	return home, math.Round((100-home)*10) / 10
}
