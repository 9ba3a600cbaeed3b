package preset

// SportType identifies which sport a preset is configured for. The sport
// decides roster limits, whether fouls carry across halves and whether the
// offsides stat is tracked.
type SportType string

const (
	SportFutsal   SportType = "futsal"
	SportFootball SportType = "football"
)

// Phase is the section of the match currently being played. It is correlated
// with, but not derivable from, the half index.
type Phase string

const (
	PhaseRegular   Phase = "regular"
	PhaseExtraTime Phase = "extra-time"
	PhasePenalties Phase = "penalties"
)

// GamePreset is an immutable descriptor of a match format. Durations are in
// minutes.
type GamePreset struct {
	SportType         SportType `json:"sportType"`
	Format            string    `json:"format"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	HalfDuration      int       `json:"halfDuration"`
	TotalHalves       int       `json:"totalHalves"`
	HasExtraTime      bool      `json:"hasExtraTime"`
	ExtraTimeDuration int       `json:"extraTimeDuration"`
	HasPenalties      bool      `json:"hasPenalties"`
	AllowsDraws       bool      `json:"allowsDraws"`
}

// RosterLimits is the maximum number of players per team for each role.
type RosterLimits struct {
	Starters    int
	Substitutes int
}

// Advance describes the segment the match should move into when the clock
// reaches zero.
type Advance struct {
	Half    int
	Phase   Phase
	Minutes int
}
