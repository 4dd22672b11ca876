// This file is part of Saveport.
//
// Saveport is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Saveport is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Saveport.  If not, see <https://www.gnu.org/licenses/>.

package saveport

import (
	"path"
	"strings"
	"time"

	"github.com/jetsetilly/saveport/crunched"
	"github.com/jetsetilly/saveport/curated"
	"github.com/jetsetilly/saveport/engine"
	"github.com/jetsetilly/saveport/logger"
	"github.com/jetsetilly/saveport/record"
)

// sentinel error for the file-backed apply strategy.
const noSaveFilePath = "saveport: engine has no save file path"

// pendingState is a save payload read from the store and awaiting successful
// application to the live engine. At most one exists per Persistence
// instance. The payload is held in compressed form because the retry window
// can be long.
type pendingState struct {
	snapshot  crunched.Data
	size      int
	updatedAt int64
}

// bytes returns a fresh copy of the pending payload. The engine is never
// handed a reference into the snapshot.
func (p *pendingState) bytes() []byte {
	d := *p.snapshot.Data()
	out := make([]byte, p.size)
	copy(out, d[:p.size])
	return out
}

// outcome of one attempt to apply the pending state to the engine.
type applyOutcome int

const (
	// the payload was committed to the engine
	outcomeRestored applyOutcome = iota

	// the engine or its game-state object does not exist yet. says nothing
	// about the validity of the pending payload
	outcomeQueued

	// the engine exists but every apply strategy rejected the payload or had
	// no effect
	outcomeFailed
)

// loadPersisted reads the save candidates for every identity key and tries
// to apply them to the engine, most recent first. Returns true if a
// candidate was restored immediately.
//
// With a non-zero timestamp only the candidate whose update time exactly
// matches is considered.
//
// Must be called with the critical section held.
func (per *Persistence) loadPersisted(reason string, timestamp int64) bool {
	if len(per.keys) == 0 {
		return false
	}

	candidates := per.readAll()

	if timestamp != 0 {
		match := false
		for _, c := range candidates {
			if c.UpdatedAt == timestamp {
				candidates = []record.State{c}
				match = true
				break
			}
		}
		if !match {
			logger.Logf(logger.Allow, "saveport", "no save with timestamp %d (%s)", timestamp, reason)
			return false
		}
	}

	if len(candidates) == 0 {
		logger.Logf(logger.Allow, "saveport", "no persisted saves (%s)", reason)
		return false
	}

	// a new load means a new retry budget
	per.attempts = 0

	for _, c := range candidates {
		per.pending = &pendingState{
			snapshot:  crunched.NewQuickFromBytes(c.Data).Snapshot(),
			size:      len(c.Data),
			updatedAt: c.UpdatedAt,
		}

		switch per.applyPendingState(reason) {
		case outcomeRestored:
			// older candidates are never tried once one succeeds
			return true

		case outcomeQueued:
			// the engine isn't ready. that says nothing about this
			// candidate's validity, so stop iterating and retry later
			per.scheduleRetry(reason)
			return false

		case outcomeFailed:
			// discard this candidate and try the next older one
			per.pending = nil
		}
	}

	logger.Logf(logger.Allow, "saveport", "no usable save state (%s)", reason)
	return false
}

// applyPendingState tries each apply strategy in turn against the pending
// payload: a direct load on the engine's game-state object; a direct set as
// a fallback; and finally a write to the engine's save file location.
//
// Must be called with the critical section held.
func (per *Persistence) applyPendingState(reason string) applyOutcome {
	if per.pending == nil {
		return outcomeFailed
	}

	eng := per.provider()
	if eng == nil {
		return outcomeQueued
	}

	gs := eng.GameState()
	if gs == nil {
		return outcomeQueued
	}

	restored := false

	if ld, ok := gs.(engine.StateLoader); ok {
		if err := ld.LoadState(per.pending.bytes()); err == nil {
			restored = true
		} else {
			logger.Logf(logger.Allow, "saveport", "load state: %v", err)
		}
	}

	if !restored {
		if st, ok := gs.(engine.StateSetter); ok {
			if err := st.SetState(per.pending.bytes()); err == nil {
				restored = true
			} else {
				logger.Logf(logger.Allow, "saveport", "set state: %v", err)
			}
		}
	}

	if !restored {
		if fb, ok := eng.(engine.FileBacked); ok {
			if err := per.applyToSaveFile(eng, fb); err == nil {
				restored = true
			} else {
				logger.Logf(logger.Allow, "saveport", "save file: %v", err)
			}
		}
	}

	if !restored {
		return outcomeFailed
	}

	logger.Logf(logger.Allow, "saveport", "save state restored (%s)", reason)
	per.pending = nil
	per.attempts = 0

	return outcomeRestored
}

// applyToSaveFile is the filesystem-style apply strategy: the pending
// payload is written to the path the engine reports as its save location and
// the engine is asked to reload its save files.
func (per *Persistence) applyToSaveFile(eng engine.Engine, fb engine.FileBacked) error {
	fs := fb.FS()
	p := fb.SaveFilePath()
	if fs == nil || p == "" {
		return curated.Errorf(noSaveFilePath)
	}

	// engines report their save file path with forward slashes regardless of
	// the host platform
	p = path.Clean(p)

	// create intermediate directories
	if dir := path.Dir(p); dir != "." && dir != "/" {
		accum := ""
		if strings.HasPrefix(dir, "/") {
			accum = "/"
		}
		for _, c := range strings.Split(strings.Trim(dir, "/"), "/") {
			accum = path.Join(accum, c)
			if exists, _ := fs.AnalyzePath(accum); !exists {
				if err := fs.Mkdir(accum); err != nil {
					return curated.Errorf("saveport: %v", err)
				}
			}
		}
	}

	// remove any pre-existing save file
	if exists, _ := fs.AnalyzePath(p); exists {
		if err := fs.Unlink(p); err != nil {
			return curated.Errorf("saveport: %v", err)
		}
	}

	if err := fs.WriteFile(p, per.pending.bytes()); err != nil {
		return curated.Errorf("saveport: %v", err)
	}

	if err := fb.LoadSaveFiles(); err != nil {
		return curated.Errorf("saveport: %v", err)
	}

	if sig, ok := eng.(engine.Signaller); ok {
		sig.Signal("load")
	}

	return nil
}

// scheduleRetry arms a timer that re-attempts the pending state. The delay
// doubles per attempt, up to a per-attempt ceiling and a maximum attempt
// count. A missing save must never block gameplay, so exhausting the budget
// abandons the pending state with nothing more than a log entry.
//
// Must be called with the critical section held.
func (per *Persistence) scheduleRetry(reason string) {
	if per.attempts >= maxRetryAttempts {
		logger.Logf(logger.Allow, "saveport",
			"warning: retry limit reached, abandoning save restore (%s)", reason)
		per.pending = nil
		return
	}

	delay := per.retryBase << per.attempts
	if delay > per.retryCeiling {
		delay = per.retryCeiling
	}
	per.attempts++

	var remove func()
	tmr := time.AfterFunc(delay, func() {
		per.crit.Lock()
		defer per.crit.Unlock()

		remove()

		if per.destroyed || per.pending == nil {
			return
		}

		switch per.applyPendingState(reason) {
		case outcomeRestored:
			// counter has been reset, nothing more to do

		case outcomeQueued:
			per.scheduleRetry(reason)

		case outcomeFailed:
			logger.Logf(logger.Allow, "saveport",
				"warning: could not apply save state, abandoning (%s)", reason)
			per.pending = nil
		}
	})
	remove = per.tasks.add(func() { tmr.Stop() })
}

// signal is the funnel for every lifecycle signal source: the wrapped ready
// and game-start hooks, the engine bus and the polling fallback. The first
// signal to arrive triggers the startup load; later signals apply an
// existing pending state rather than re-triggering a load.
func (per *Persistence) signal(s engine.State, reason string) {
	per.crit.Lock()
	defer per.crit.Unlock()

	if per.destroyed {
		return
	}

	// the state never moves backwards
	if s > per.state {
		per.state = s
		logger.Logf(logger.Allow, "saveport", "engine state: %s (%s)", s, reason)
	}

	if per.pending != nil {
		switch per.applyPendingState(reason) {
		case outcomeRestored, outcomeQueued:
			// a queued outcome leaves the existing retry schedule running

		case outcomeFailed:
			logger.Logf(logger.Allow, "saveport",
				"warning: could not apply save state, abandoning (%s)", reason)
			per.pending = nil
		}
		return
	}

	if per.startupLoadAttempted {
		return
	}
	per.startupLoadAttempted = true

	per.loadPersisted(reason, 0)
}

// installHooks wraps whatever currently occupies the ready and game-start
// hook slots. The previous occupant is always invoked first; host behaviour
// is never dropped.
func (per *Persistence) installHooks() {
	wrap := func(hook engine.Hook, s engine.State, reason string) {
		var o engine.Ownership
		o = per.hooks.Install(hook, per.token, func() {
			if o.Previous != nil {
				o.Previous()
			}
			per.signal(s, reason)
		})
		per.ownership = append(per.ownership, o)
	}

	wrap(engine.OnReady, engine.Ready, "ready hook")
	wrap(engine.OnGameStart, engine.GameRunning, "game-start hook")
}

// registerWithBus attaches to the engine's internal event bus. Returns false
// if the engine, or its bus, is not available.
func (per *Persistence) registerWithBus() bool {
	eng := per.provider()
	if eng == nil {
		return false
	}

	bus, ok := eng.(engine.Bus)
	if !ok {
		return false
	}

	if err := bus.Register("ready", func() {
		per.signal(engine.Ready, "engine bus")
	}); err != nil {
		logger.Logf(logger.Allow, "saveport", "bus registration: %v (falling back to polling)", err)
		return false
	}

	return true
}

// startPolling is the best-effort fallback signal source, used only when bus
// registration fails. It checks for the engine at a fixed interval and gives
// up after a fixed number of iterations.
func (per *Persistence) startPolling() {
	stop := make(chan struct{})
	remove := per.tasks.add(func() { close(stop) })

	go func() {
		defer remove()

		tick := time.NewTicker(per.pollEvery)
		defer tick.Stop()

		for i := 0; i < maxPollIterations; i++ {
			select {
			case <-stop:
				return
			case <-tick.C:
				eng := per.provider()
				if eng != nil && eng.GameState() != nil {
					per.signal(engine.Ready, "polling")
					return
				}
			}
		}

		// giving up is not an error. the hooks can still fire later
		logger.Log(logger.Allow, "saveport", "polling for engine gave up")
	}()
}
