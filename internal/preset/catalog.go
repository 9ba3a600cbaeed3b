package preset

import "fmt"

// catalog is the fixed set of selectable match formats. Order matters: the
// first entry doubles as the fallback when a lookup finds no match.
var catalog = []GamePreset{
	{
		SportType:         SportFutsal,
		Format:            "standard",
		Name:              "Futsal Standard",
		Description:       "Two 20 minute halves, extra time and penalties on a draw",
		HalfDuration:      20,
		TotalHalves:       2,
		HasExtraTime:      true,
		ExtraTimeDuration: 5,
		HasPenalties:      true,
	},
	{
		SportType:    SportFutsal,
		Format:       "cup",
		Name:         "Futsal Cup",
		Description:  "Two 20 minute halves, straight to penalties on a draw",
		HalfDuration: 20,
		TotalHalves:  2,
		HasPenalties: true,
	},
	{
		SportType:    SportFutsal,
		Format:       "league",
		Name:         "Futsal League",
		Description:  "Two 20 minute halves, draws allowed",
		HalfDuration: 20,
		TotalHalves:  2,
		AllowsDraws:  true,
	},
	{
		SportType:         SportFootball,
		Format:            "standard",
		Name:              "Football Knockout",
		Description:       "Two 45 minute halves, extra time and penalties on a draw",
		HalfDuration:      45,
		TotalHalves:       2,
		HasExtraTime:      true,
		ExtraTimeDuration: 15,
		HasPenalties:      true,
	},
	{
		SportType:    SportFootball,
		Format:       "cup",
		Name:         "Football Cup",
		Description:  "Two 45 minute halves, straight to penalties on a draw",
		HalfDuration: 45,
		TotalHalves:  2,
		HasPenalties: true,
	},
	{
		SportType:    SportFootball,
		Format:       "league",
		Name:         "Football League",
		Description:  "Two 45 minute halves, draws allowed",
		HalfDuration: 45,
		TotalHalves:  2,
		AllowsDraws:  true,
	},
}

// All returns the full catalog in selection order.
func All() []GamePreset {
	out := make([]GamePreset, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the catalog's fallback entry.
func Default() GamePreset {
	return catalog[0]
}

// Find looks up a preset by sport type and format, falling back to the first
// catalog entry if no entry matches.
func Find(sport SportType, format string) GamePreset {
	for _, p := range catalog {
		if p.SportType == sport && p.Format == format {
			return p
		}
	}
	return catalog[0]
}

// ByIndex returns the catalog entry at i.
func ByIndex(i int) (GamePreset, bool) {
	if i < 0 || i >= len(catalog) {
		return GamePreset{}, false
	}
	return catalog[i], true
}

// Limits returns the per-role roster caps for a sport.
func Limits(sport SportType) RosterLimits {
	if sport == SportFootball {
		return RosterLimits{Starters: 11, Substitutes: 12}
	}
	return RosterLimits{Starters: 5, Substitutes: 9}
}

// CarriesFouls reports whether team fouls persist across half transitions for
// the given sport. Futsal resets its foul count every half; football does not.
func CarriesFouls(sport SportType) bool {
	return sport == SportFootball
}

// TracksOffsides reports whether the sport records an offsides stat.
func TracksOffsides(sport SportType) bool {
	return sport == SportFootball
}

// PhaseLabel renders a human readable label for the current segment.
func PhaseLabel(half int, p GamePreset, phase Phase) string {
	switch phase {
	case PhasePenalties:
		return "Penalty Shootout"
	case PhaseExtraTime:
		return fmt.Sprintf("Extra Time %d", half-p.TotalHalves)
	default:
		switch half {
		case 1:
			return "1st Half"
		case 2:
			return "2nd Half"
		default:
			return fmt.Sprintf("Half %d", half)
		}
	}
}

// AutoAdvance decides whether a match whose clock just reached zero should
// move into a new segment. The rules are evaluated in order:
//
//  1. End of half 1 always advances to half 2.
//  2. End of half 2: level scores go to extra time if the preset has it,
//     otherwise straight to penalties if the preset has those. Anything else
//     ends the match.
//  3. End of extra time half 3 always advances to half 4.
//  4. End of extra time half 4: still level and penalties available goes to
//     the shootout, otherwise the match ends.
//  5. Every other combination stays put.
func AutoAdvance(half int, p GamePreset, phase Phase, homeScore, awayScore int) (Advance, bool) {
	level := homeScore == awayScore
	switch {
	case phase == PhaseRegular && half == 1:
		return Advance{Half: 2, Phase: PhaseRegular, Minutes: p.HalfDuration}, true
	case phase == PhaseRegular && half == 2:
		if level && p.HasExtraTime {
			return Advance{Half: 3, Phase: PhaseExtraTime, Minutes: p.ExtraTimeDuration}, true
		}
		if level && p.HasPenalties {
			return Advance{Half: 5, Phase: PhasePenalties, Minutes: 0}, true
		}
		return Advance{}, false
	case phase == PhaseExtraTime && half == 3:
		return Advance{Half: 4, Phase: PhaseExtraTime, Minutes: p.ExtraTimeDuration}, true
	case phase == PhaseExtraTime && half == 4:
		if level && p.HasPenalties {
			return Advance{Half: 5, Phase: PhasePenalties, Minutes: 0}, true
		}
		return Advance{}, false
	default:
		return Advance{}, false
	}
}

// ResolvePeriod maps a requested half index onto the concrete segment manual
// period navigation should land on. A format without extra time but with
// penalties resolves requests for halves 3 and 4 to the shootout, which is
// how navigating forward from half 2 jumps straight to half 5.
func ResolvePeriod(requested int, p GamePreset) (Advance, bool) {
	switch {
	case requested == 1 || requested == 2:
		return Advance{Half: requested, Phase: PhaseRegular, Minutes: p.HalfDuration}, true
	case requested == 3 || requested == 4:
		if p.HasExtraTime {
			return Advance{Half: requested, Phase: PhaseExtraTime, Minutes: p.ExtraTimeDuration}, true
		}
		if p.HasPenalties {
			return Advance{Half: 5, Phase: PhasePenalties, Minutes: 0}, true
		}
		return Advance{}, false
	case requested >= 5:
		if p.HasPenalties {
			return Advance{Half: 5, Phase: PhasePenalties, Minutes: 0}, true
		}
		return Advance{}, false
	default:
		return Advance{}, false
	}
}

// SegmentDuration returns the clock's full duration in minutes for the
// given phase.
func SegmentDuration(p GamePreset, phase Phase) int {
	switch phase {
	case PhasePenalties:
		return 0
	case PhaseExtraTime:
		return p.ExtraTimeDuration
	default:
		return p.HalfDuration
	}
}
