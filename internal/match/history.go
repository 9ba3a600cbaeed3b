package match

// historyLimit bounds both history stacks. Once full, the oldest snapshot is
// silently evicted.
const historyLimit = 100

// pushHistory records a prior state as an undoable step and invalidates the
// redo future. Callers hold the engine lock.
func (e *Engine) pushHistory(prior MatchState) {
	e.past = append(e.past, prior)
	if len(e.past) > historyLimit {
		e.past = e.past[1:]
	}
	e.future = e.future[:0]
}

// Undo restores the immediately prior state. No-op with an empty history.
// Undo does not record itself; it moves the current state onto the redo
// stack instead.
func (e *Engine) Undo() {
	e.mu.Lock()
	if len(e.past) == 0 {
		e.mu.Unlock()
		e.metrics.IncOperationsRejected()
		return
	}
	e.future = append(e.future, e.state.Clone())
	if len(e.future) > historyLimit {
		e.future = e.future[1:]
	}
	e.state = e.past[len(e.past)-1]
	e.past = e.past[:len(e.past)-1]
	e.syncTickerLocked()
	snap, persist := e.snapshotLocked()
	e.enqueueLocked(fanoutJob{snap: snap, persist: persist})
	e.mu.Unlock()

	e.metrics.IncOperationsApplied()
}

// Redo restores the most recently undone state. No-op with an empty future.
func (e *Engine) Redo() {
	e.mu.Lock()
	if len(e.future) == 0 {
		e.mu.Unlock()
		e.metrics.IncOperationsRejected()
		return
	}
	e.past = append(e.past, e.state.Clone())
	if len(e.past) > historyLimit {
		e.past = e.past[1:]
	}
	e.state = e.future[len(e.future)-1]
	e.future = e.future[:len(e.future)-1]
	e.syncTickerLocked()
	snap, persist := e.snapshotLocked()
	e.enqueueLocked(fanoutJob{snap: snap, persist: persist})
	e.mu.Unlock()

	e.metrics.IncOperationsApplied()
}

// CanUndo reports whether an undoable step exists.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.past) > 0
}

// CanRedo reports whether a redoable step exists.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.future) > 0
}
