package match

import (
	"github.com/mauv0809/pitchside/internal/possession"
	"github.com/mauv0809/pitchside/internal/preset"
)

// Side identifies one of the two teams in a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Holder converts a side into the possession accumulator's holder type.
func (s Side) Holder() possession.Holder {
	if s == SideAway {
		return possession.Away
	}
	return possession.Home
}

// Role is a player's squad role.
type Role string

const (
	RoleStarter    Role = "starter"
	RoleSubstitute Role = "substitute"
)

// TeamField names the directly settable team fields.
type TeamField string

const (
	FieldName  TeamField = "name"
	FieldScore TeamField = "score"
	FieldFouls TeamField = "fouls"
	FieldLogo  TeamField = "logo"
)

// StatKey names an entry in a team's stats record.
type StatKey string

const (
	StatShotsOffTarget StatKey = "shotsOffTarget"
	StatShotsOnTarget  StatKey = "shotsOnTarget"
	StatCorners        StatKey = "corners"
	StatOffsides       StatKey = "offsides"
	StatYellowCards    StatKey = "yellowCards"
	StatRedCards       StatKey = "redCards"
)

// PlayerStatField names a player's mutable counters.
type PlayerStatField string

const (
	PlayerGoals       PlayerStatField = "goals"
	PlayerYellowCards PlayerStatField = "yellowCards"
	PlayerRedCards    PlayerStatField = "redCards"
)

// TeamStats is the per-team stat sheet. Offsides is only tracked for sports
// that have the concept; the pointer is nil for everything else.
type TeamStats struct {
	ShotsOffTarget int     `json:"shotsOffTarget"`
	ShotsOnTarget  int     `json:"shotsOnTarget"`
	Corners        int     `json:"corners"`
	Offsides       *int    `json:"offsides,omitempty"`
	YellowCards    int     `json:"yellowCards"`
	RedCards       int     `json:"redCards"`
	Possession     float64 `json:"possession"`
}

// Player is a roster entry. The ID is unique within the team.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Number      *int   `json:"number,omitempty"`
	Role        Role   `json:"role"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
}

// Team is one side of the scoreboard.
type Team struct {
	Name    string    `json:"name"`
	Logo    string    `json:"logo,omitempty"`
	Score   int       `json:"score"`
	Fouls   int       `json:"fouls"`
	Stats   TeamStats `json:"stats"`
	Players []Player  `json:"players"`
}

// GameClock is the displayed countdown time.
type GameClock struct {
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// IsZero reports whether the clock reads 0:00.
func (c GameClock) IsZero() bool {
	return c.Minutes == 0 && c.Seconds == 0
}

// MatchState is the root aggregate the whole scoreboard runs on. It is
// JSON-serializable as the persisted state record and the broadcast payload.
type MatchState struct {
	HomeTeam            Team              `json:"homeTeam"`
	AwayTeam            Team              `json:"awayTeam"`
	TournamentName      string            `json:"tournamentName,omitempty"`
	TournamentLogo      string            `json:"tournamentLogo,omitempty"`
	Time                GameClock         `json:"time"`
	Half                int               `json:"half"`
	IsRunning           bool              `json:"isRunning"`
	BallPossession      Side              `json:"ballPossession"`
	PossessionStartTime int64             `json:"possessionStartTime"`
	TotalPossessionTime possession.Totals `json:"totalPossessionTime"`
	GamePreset          preset.GamePreset `json:"gamePreset"`
	MatchPhase          preset.Phase      `json:"matchPhase"`
}

// team returns the addressed team, defaulting to home for anything that is
// not the away side.
func (s *MatchState) team(side Side) *Team {
	if side == SideAway {
		return &s.AwayTeam
	}
	return &s.HomeTeam
}

// Clone returns a deep copy of the state. Snapshots handed to history,
// listeners and callers must never alias the engine's live state.
func (s MatchState) Clone() MatchState {
	out := s
	out.HomeTeam = s.HomeTeam.clone()
	out.AwayTeam = s.AwayTeam.clone()
	return out
}

func (t Team) clone() Team {
	out := t
	if t.Stats.Offsides != nil {
		v := *t.Stats.Offsides
		out.Stats.Offsides = &v
	}
	out.Players = make([]Player, len(t.Players))
	for i, p := range t.Players {
		out.Players[i] = p
		if p.Number != nil {
			n := *p.Number
			out.Players[i].Number = &n
		}
	}
	return out
}

// DefaultState builds a fresh match for the given preset: half 1, regular
// phase, full clock, empty rosters, possession with the home team.
func DefaultState(p preset.GamePreset) MatchState {
	s := MatchState{
		HomeTeam:       defaultTeam("Home"),
		AwayTeam:       defaultTeam("Away"),
		Time:           GameClock{Minutes: p.HalfDuration},
		Half:           1,
		BallPossession: SideHome,
		GamePreset:     p,
		MatchPhase:     preset.PhaseRegular,
	}
	s.adaptStatShapes()
	return s
}

func defaultTeam(name string) Team {
	return Team{
		Name:    name,
		Stats:   TeamStats{Possession: 50},
		Players: []Player{},
	}
}

// Normalize repairs a state loaded from storage or received off the wire so
// that no substructure is missing and every invariant holds. Partial or
// legacy saved shapes pass through here on load.
func (s *MatchState) Normalize() {
	if s.GamePreset.HalfDuration <= 0 {
		s.GamePreset = preset.Find(s.GamePreset.SportType, s.GamePreset.Format)
	}
	if s.Half < 1 {
		s.Half = 1
	}
	switch s.MatchPhase {
	case preset.PhaseRegular, preset.PhaseExtraTime, preset.PhasePenalties:
	default:
		s.MatchPhase = preset.PhaseRegular
	}
	if s.BallPossession != SideAway {
		s.BallPossession = SideHome
	}
	s.clampTime()
	normalizeTeam(&s.HomeTeam, "Home")
	normalizeTeam(&s.AwayTeam, "Away")
	s.adaptStatShapes()

	home, away := possession.Percentages(s.TotalPossessionTime)
	s.HomeTeam.Stats.Possession = home
	s.AwayTeam.Stats.Possession = away
}

func normalizeTeam(t *Team, fallbackName string) {
	if t.Name == "" {
		t.Name = fallbackName
	}
	if t.Score < 0 {
		t.Score = 0
	}
	if t.Fouls < 0 {
		t.Fouls = 0
	}
	if t.Players == nil {
		t.Players = []Player{}
	}
	for i := range t.Players {
		if t.Players[i].Role != RoleSubstitute {
			t.Players[i].Role = RoleStarter
		}
	}
}

// clampTime forces the clock into [0, segment maximum]. At the maximum the
// seconds are zeroed so 20:30 cannot exist in a 20 minute half.
func (s *MatchState) clampTime() {
	maxMinutes := preset.SegmentDuration(s.GamePreset, s.MatchPhase)
	if s.Time.Minutes < 0 {
		s.Time.Minutes = 0
	}
	if s.Time.Seconds < 0 {
		s.Time.Seconds = 0
	}
	if s.Time.Seconds > 59 {
		s.Time.Seconds = 59
	}
	if s.Time.Minutes >= maxMinutes {
		s.Time.Minutes = maxMinutes
		s.Time.Seconds = 0
	}
}

// adaptStatShapes adds or strips the sport-specific stat fields on both teams
// to match the active preset's sport type.
func (s *MatchState) adaptStatShapes() {
	tracks := preset.TracksOffsides(s.GamePreset.SportType)
	for _, t := range []*Team{&s.HomeTeam, &s.AwayTeam} {
		if tracks && t.Stats.Offsides == nil {
			zero := 0
			t.Stats.Offsides = &zero
		}
		if !tracks {
			t.Stats.Offsides = nil
		}
	}
}

// recomputeScore derives the team score from player goals whenever a roster
// exists. A direct score set stays valid only while the roster is empty.
func (t *Team) recomputeScore() {
	if len(t.Players) == 0 {
		return
	}
	sum := 0
	for _, p := range t.Players {
		sum += p.Goals
	}
	t.Score = sum
}

// roleCount counts roster entries with the given role.
func (t *Team) roleCount(role Role) int {
	n := 0
	for _, p := range t.Players {
		if p.Role == role {
			n++
		}
	}
	return n
}
