package match

import (
	"github.com/google/uuid"
	"github.com/mauv0809/pitchside/internal/preset"
)

// UpdateTeamName sets a team's display name. Not gated on the running state.
func (e *Engine) UpdateTeamName(side Side, name string) {
	e.mutate(func(s *MatchState) bool {
		t := s.team(side)
		if t.Name == name {
			return false
		}
		t.Name = name
		return true
	})
}

// UpdateTeamLogo sets a team's logo reference. Not gated on the running state.
func (e *Engine) UpdateTeamLogo(side Side, logo string) {
	e.mutate(func(s *MatchState) bool {
		t := s.team(side)
		if t.Logo == logo {
			return false
		}
		t.Logo = logo
		return true
	})
}

// UpdateTournament sets the optional tournament branding shown above the
// scoreboard. Not gated on the running state.
func (e *Engine) UpdateTournament(name, logo string) {
	e.mutate(func(s *MatchState) bool {
		if s.TournamentName == name && s.TournamentLogo == logo {
			return false
		}
		s.TournamentName = name
		s.TournamentLogo = logo
		return true
	})
}

// UpdateTeamScore sets a team's score directly, floored at zero. While the
// clock is paused the change is clamped to one unit per call; while running
// the value is set as requested. The divergence from UpdateTeamStats'
// outright rejection is deliberate and mirrors the paused-adjustment
// behaviour the dashboard has always had.
func (e *Engine) UpdateTeamScore(side Side, value int) {
	e.mutate(func(s *MatchState) bool {
		return setClampedCounter(&s.team(side).Score, value, s.IsRunning)
	})
}

// UpdateTeamFouls sets a team's foul count with the same paused clamp as
// UpdateTeamScore.
func (e *Engine) UpdateTeamFouls(side Side, value int) {
	e.mutate(func(s *MatchState) bool {
		return setClampedCounter(&s.team(side).Fouls, value, s.IsRunning)
	})
}

// setClampedCounter applies the shared score/foul update rule: floored at
// zero, free while running, one unit per call while paused.
func setClampedCounter(cur *int, value int, running bool) bool {
	if value < 0 {
		value = 0
	}
	if !running {
		switch {
		case value > *cur:
			value = *cur + 1
		case value < *cur:
			value = *cur - 1
		default:
			return false
		}
		if value < 0 {
			value = 0
		}
	}
	if value == *cur {
		return false
	}
	*cur = value
	return true
}

// UpdateTeamStats sets one entry of a team's stat sheet to max(0, value).
// Rejected while the clock is paused. The offsides stat only exists for
// sports that track it.
func (e *Engine) UpdateTeamStats(side Side, key StatKey, value int) {
	e.mutate(func(s *MatchState) bool {
		if !s.IsRunning {
			return false
		}
		if value < 0 {
			value = 0
		}
		t := s.team(side)
		switch key {
		case StatShotsOffTarget:
			return setCounter(&t.Stats.ShotsOffTarget, value)
		case StatShotsOnTarget:
			return setCounter(&t.Stats.ShotsOnTarget, value)
		case StatCorners:
			return setCounter(&t.Stats.Corners, value)
		case StatYellowCards:
			return setCounter(&t.Stats.YellowCards, value)
		case StatRedCards:
			return setCounter(&t.Stats.RedCards, value)
		case StatOffsides:
			if t.Stats.Offsides == nil {
				return false
			}
			return setCounter(t.Stats.Offsides, value)
		default:
			return false
		}
	})
}

func setCounter(cur *int, value int) bool {
	if *cur == value {
		return false
	}
	*cur = value
	return true
}

// AddPlayer appends a new player with zero stats. Rejected once the
// role-specific roster cap for the active preset's sport type is reached.
func (e *Engine) AddPlayer(side Side, name string, number *int, role Role) {
	e.mutate(func(s *MatchState) bool {
		if role != RoleStarter && role != RoleSubstitute {
			return false
		}
		t := s.team(side)
		limits := preset.Limits(s.GamePreset.SportType)
		limit := limits.Starters
		if role == RoleSubstitute {
			limit = limits.Substitutes
		}
		if t.roleCount(role) >= limit {
			return false
		}
		var num *int
		if number != nil {
			n := *number
			num = &n
		}
		t.Players = append(t.Players, Player{
			ID:     uuid.NewString(),
			Name:   name,
			Number: num,
			Role:   role,
		})
		return true
	})
}

// RemovePlayer removes a player from the roster. The player's card counts
// are retroactively subtracted from the team's foul total (floored at zero)
// and the team score is recomputed from the remaining players' goals.
func (e *Engine) RemovePlayer(side Side, playerID string) {
	e.mutate(func(s *MatchState) bool {
		t := s.team(side)
		idx := -1
		for i, p := range t.Players {
			if p.ID == playerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}
		removed := t.Players[idx]
		t.Players = append(t.Players[:idx], t.Players[idx+1:]...)

		t.Fouls -= removed.YellowCards + removed.RedCards
		if t.Fouls < 0 {
			t.Fouls = 0
		}
		sum := 0
		for _, p := range t.Players {
			sum += p.Goals
		}
		t.Score = sum
		return true
	})
}

// UpdatePlayerStats sets one of a player's counters to max(0, value). Goal
// changes recompute the team score as the sum of all player goals on that
// side, keeping the two score update paths consistent.
func (e *Engine) UpdatePlayerStats(side Side, playerID string, field PlayerStatField, value int) {
	e.mutate(func(s *MatchState) bool {
		t := s.team(side)
		if value < 0 {
			value = 0
		}
		for i := range t.Players {
			if t.Players[i].ID != playerID {
				continue
			}
			p := &t.Players[i]
			var changed bool
			switch field {
			case PlayerGoals:
				changed = setCounter(&p.Goals, value)
				if changed {
					t.recomputeScore()
				}
			case PlayerYellowCards:
				changed = setCounter(&p.YellowCards, value)
			case PlayerRedCards:
				changed = setCounter(&p.RedCards, value)
			}
			return changed
		}
		return false
	})
}

// SwitchPossession closes out the open possession interval, hands the ball
// to the given side and stamps a new interval start. No-op while paused.
func (e *Engine) SwitchPossession(side Side) {
	e.mutate(func(s *MatchState) bool {
		if !s.IsRunning {
			return false
		}
		if side != SideHome && side != SideAway {
			return false
		}
		e.closeOutPossessionLocked(s)
		s.BallPossession = side
		return true
	})
}

// UpdateTime sets the clock, clamped to the phase-appropriate maximum: zero
// during penalties, the extra-time duration in extra time, the half duration
// in regular play. At the maximum the seconds are forced to zero.
func (e *Engine) UpdateTime(minutes, seconds int) {
	e.mutate(func(s *MatchState) bool {
		prior := s.Time
		s.Time = GameClock{Minutes: minutes, Seconds: seconds}
		s.clampTime()
		return s.Time != prior
	})
}

// ToggleTimer flips between running and paused. Pausing closes out the
// possession interval; resuming stamps a fresh interval start without
// touching the totals.
func (e *Engine) ToggleTimer() {
	e.mutate(func(s *MatchState) bool {
		if s.IsRunning {
			e.pauseLocked(s)
			return true
		}
		return e.resumeLocked(s)
	})
}

// StartTimer starts the clock if paused. No-op when already running or when
// there is no time left to play.
func (e *Engine) StartTimer() {
	e.mutate(func(s *MatchState) bool {
		if s.IsRunning {
			return false
		}
		return e.resumeLocked(s)
	})
}

// StopTimer pauses the clock if running.
func (e *Engine) StopTimer() {
	e.mutate(func(s *MatchState) bool {
		if !s.IsRunning {
			return false
		}
		e.pauseLocked(s)
		return true
	})
}

// ForceStop stops the clock without closing out the possession interval.
// This is the escape-hatch path: simpler than a pause, used by the keyboard
// mapper.
func (e *Engine) ForceStop() {
	e.mutate(func(s *MatchState) bool {
		if !s.IsRunning {
			return false
		}
		e.setRunningLocked(false)
		return true
	})
}

func (e *Engine) pauseLocked(s *MatchState) {
	e.closeOutPossessionLocked(s)
	e.setRunningLocked(false)
}

func (e *Engine) resumeLocked(s *MatchState) bool {
	if s.MatchPhase == preset.PhasePenalties || s.Time.IsZero() {
		return false
	}
	s.PossessionStartTime = e.clock.Now().UnixMilli()
	e.setRunningLocked(true)
	return true
}

// ResetTimer stops the clock and resets it to the full duration of the
// current segment, closing out the possession interval first if running.
func (e *Engine) ResetTimer() {
	e.mutate(func(s *MatchState) bool {
		full := GameClock{Minutes: preset.SegmentDuration(s.GamePreset, s.MatchPhase)}
		if !s.IsRunning && s.Time == full {
			return false
		}
		e.closeOutPossessionLocked(s)
		e.setRunningLocked(false)
		s.Time = full
		return true
	})
}

// UpdatePeriod navigates to the requested half. Navigation is forward only:
// a request resolving to an earlier half than the current one is rejected.
// A format without extra time but with penalties resolves halves past the
// second to the shootout, which is the one sanctioned jump from half 2 to
// half 5.
func (e *Engine) UpdatePeriod(requested int) {
	e.mutate(func(s *MatchState) bool {
		adv, ok := preset.ResolvePeriod(requested, s.GamePreset)
		if !ok || adv.Half < s.Half {
			return false
		}
		e.closeOutPossessionLocked(s)
		e.setRunningLocked(false)
		e.applyAdvanceLocked(adv)
		return true
	})
}

// ChangeGamePreset swaps the active preset by catalog index. The match
// resets to half 1, regular phase, full clock; team identity, rosters and
// stats survive with their shape adapted to the new sport type.
func (e *Engine) ChangeGamePreset(index int) {
	e.mutate(func(s *MatchState) bool {
		p, ok := preset.ByIndex(index)
		if !ok {
			return false
		}
		e.closeOutPossessionLocked(s)
		e.setRunningLocked(false)
		s.GamePreset = p
		s.Half = 1
		s.MatchPhase = preset.PhaseRegular
		s.Time = GameClock{Minutes: p.HalfDuration}
		s.adaptStatShapes()
		return true
	})
}

// ResetGame replaces the whole state with a fresh one that keeps only the
// active preset. The persisted record is cleared, the next write suppressed
// so stale data cannot resurrect, and the undo/redo history dropped. Not
// recorded as an undoable step. The clear runs through the fan-out queue so
// it cannot be overtaken by a save still in flight.
func (e *Engine) ResetGame() {
	e.mu.Lock()
	e.setRunningLocked(false)
	e.state = DefaultState(e.state.GamePreset)
	e.past = e.past[:0]
	e.future = e.future[:0]
	e.skipPersist = true
	snap, persist := e.snapshotLocked()
	e.enqueueLocked(fanoutJob{snap: snap, persist: persist, clear: true})
	e.mu.Unlock()

	e.metrics.IncOperationsApplied()
}
