// Package match owns the scoreboard's single mutable aggregate: the match
// state, its operation set, the undo/redo history and the countdown clock.
// Consumers never touch the state directly; they call operations and observe
// snapshots.
package match

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/possession"
	"github.com/mauv0809/pitchside/internal/preset"
)

// Persister writes state snapshots to durable storage. Saves are
// fire-and-forget; a failed save never fails an operation.
type Persister interface {
	SaveState(state MatchState) error
	ClearState() error
}

// Notifier is told when the match reaches its end (zero clock with no
// further segment to advance into).
type Notifier interface {
	SendFinalResult(state MatchState)
}

// Engine is the match state engine. All mutations go through its operation
// set; every operation is total and rejected operations are silent no-ops.
type Engine struct {
	mu          sync.Mutex
	state       MatchState
	past        []MatchState
	future      []MatchState
	skipPersist bool
	cancelTick  context.CancelFunc
	closed      bool

	clock     clockwork.Clock
	persister Persister
	notifier  Notifier
	metrics   metrics.Metrics
	listeners []func(MatchState)

	fanout     chan fanoutJob
	fanoutDone chan struct{}
}

// fanoutJob is one state change on its way out of the engine. The persister,
// notifier and listener set are captured at enqueue time so the worker never
// touches engine fields.
type fanoutJob struct {
	snap      MatchState
	listeners []func(MatchState)
	persister Persister
	persist   bool
	clear     bool
	notifier  Notifier
	final     bool
}

// New creates an engine owning the given initial state. The clock drives the
// one-second countdown; tests pass a fake. The engine always starts paused:
// a running flag in a restored snapshot does not survive a restart.
func New(clock clockwork.Clock, initial MatchState, m metrics.Metrics) *Engine {
	initial.Normalize()
	initial.IsRunning = false
	e := &Engine{
		state:      initial.Clone(),
		clock:      clock,
		metrics:    m,
		fanout:     make(chan fanoutJob, 64),
		fanoutDone: make(chan struct{}),
	}
	go e.runFanout()
	return e
}

// SetPersister wires durable storage. Optional; without it the engine runs
// local-only.
func (e *Engine) SetPersister(p Persister) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.persister = p
}

// SetNotifier wires the final-result notifier. Optional.
func (e *Engine) SetNotifier(n Notifier) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifier = n
}

// OnChange registers a listener invoked with a snapshot after every state
// change. Listeners run on the fan-out goroutine, in the order the changes
// were applied, and must not call back into the engine.
func (e *Engine) OnChange(fn func(MatchState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// State returns a snapshot of the current state.
func (e *Engine) State() MatchState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// PhaseLabel renders the label for the current segment.
func (e *Engine) PhaseLabel() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return preset.PhaseLabel(e.state.Half, e.state.GamePreset, e.state.MatchPhase)
}

// Close tears down the countdown ticker and flushes the fan-out queue. The
// engine must not be mutated after Close.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
	e.mu.Unlock()

	close(e.fanout)
	<-e.fanoutDone
}

// mutate runs fn against the live state under the lock. fn returns false to
// reject the operation, leaving the state untouched. On success the prior
// state is pushed onto the undo history and the change fanned out.
func (e *Engine) mutate(fn func(s *MatchState) bool) bool {
	started := time.Now()
	e.mu.Lock()
	prior := e.state.Clone()
	if !fn(&e.state) {
		e.mu.Unlock()
		e.metrics.IncOperationsRejected()
		return false
	}
	e.pushHistory(prior)
	snap, persist := e.snapshotLocked()
	e.enqueueLocked(fanoutJob{snap: snap, persist: persist})
	e.mu.Unlock()

	e.metrics.IncOperationsApplied()
	e.metrics.ObserveOperationDuration(time.Since(started).Seconds())
	return true
}

// snapshotLocked clones the state for fan-out and consumes the one-shot
// persistence skip set by a game reset.
func (e *Engine) snapshotLocked() (MatchState, bool) {
	snap := e.state.Clone()
	persist := !e.skipPersist
	e.skipPersist = false
	return snap, persist
}

// enqueueLocked hands a snapshot to the fan-out worker. Jobs are queued
// while the engine lock is held, so the worker sees state changes in the
// order they were applied: a save or broadcast of an older snapshot can
// never land after a newer one, whichever goroutine applied it.
func (e *Engine) enqueueLocked(job fanoutJob) {
	if e.closed {
		return
	}
	job.listeners = e.listeners
	job.persister = e.persister
	job.notifier = e.notifier
	e.fanout <- job
}

// runFanout drains the fan-out queue on a single goroutine until Close.
func (e *Engine) runFanout() {
	defer close(e.fanoutDone)
	for job := range e.fanout {
		for _, l := range job.listeners {
			l(job.snap)
		}
		if job.persister != nil {
			if job.clear {
				if err := job.persister.ClearState(); err != nil {
					log.Error("Failed to clear persisted match state", "error", err)
				}
			}
			if job.persist {
				if err := job.persister.SaveState(job.snap); err != nil {
					log.Error("Failed to persist match state", "error", err)
				} else {
					e.metrics.IncSnapshotsPersisted()
				}
			}
		}
		if job.final && job.notifier != nil {
			job.notifier.SendFinalResult(job.snap)
		}
	}
}

// setRunningLocked flips the running flag and re-syncs the ticker with it.
func (e *Engine) setRunningLocked(run bool) {
	e.state.IsRunning = run
	e.syncTickerLocked()
}

// syncTickerLocked tears down any active ticker and arms a new one if the
// state is running. Teardown-before-arm keeps exactly one ticker alive even
// when the running flag flips rapidly.
func (e *Engine) syncTickerLocked() {
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
	if e.state.IsRunning {
		ctx, cancel := context.WithCancel(context.Background())
		e.cancelTick = cancel
		go e.runTicker(ctx)
	}
}

func (e *Engine) runTicker(ctx context.Context) {
	ticker := e.clock.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			e.tick()
		}
	}
}

// tick is the once-per-second re-entry while the clock runs: it accrues the
// open possession interval, decrements the clock and handles the segment
// boundary at zero. Ticks do not create undo history entries.
func (e *Engine) tick() {
	e.mu.Lock()
	if !e.state.IsRunning {
		e.mu.Unlock()
		return
	}
	s := &e.state
	e.closeOutPossessionLocked(s)

	if s.Time.Seconds > 0 {
		s.Time.Seconds--
	} else if s.Time.Minutes > 0 {
		s.Time.Minutes--
		s.Time.Seconds = 59
	}

	var final bool
	if s.Time.IsZero() {
		e.setRunningLocked(false)
		adv, ok := preset.AutoAdvance(s.Half, s.GamePreset, s.MatchPhase, s.HomeTeam.Score, s.AwayTeam.Score)
		if ok {
			e.applyAdvanceLocked(adv)
		} else {
			final = true
		}
	}
	snap, persist := e.snapshotLocked()
	e.enqueueLocked(fanoutJob{snap: snap, persist: persist, final: final})
	e.mu.Unlock()
}

// applyAdvanceLocked moves the state into a new segment, resetting fouls on
// half transitions for sports without carry-over.
func (e *Engine) applyAdvanceLocked(adv preset.Advance) {
	s := &e.state
	halfChanged := adv.Half != s.Half
	s.Half = adv.Half
	s.MatchPhase = adv.Phase
	s.Time = GameClock{Minutes: adv.Minutes}
	if halfChanged && !preset.CarriesFouls(s.GamePreset.SportType) {
		s.HomeTeam.Fouls = 0
		s.AwayTeam.Fouls = 0
	}
}

// closeOutPossessionLocked accumulates the open possession interval and
// stamps a fresh interval start. No-op while the clock is paused: intervals
// are only open while running.
func (e *Engine) closeOutPossessionLocked(s *MatchState) {
	if !s.IsRunning {
		return
	}
	now := e.clock.Now()
	totals, home, away := possession.Accumulate(s.BallPossession.Holder(), s.PossessionStartTime, s.TotalPossessionTime, now)
	s.TotalPossessionTime = totals
	s.HomeTeam.Stats.Possession = home
	s.AwayTeam.Stats.Possession = away
	s.PossessionStartTime = now.UnixMilli()
}
