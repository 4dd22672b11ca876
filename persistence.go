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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jetsetilly/saveport/engine"
	"github.com/jetsetilly/saveport/logger"
	"github.com/jetsetilly/saveport/store"
)

// Summary describes one save state to the host application.
type Summary struct {
	Timestamp          int64
	Checksum           string
	FormattedTimestamp string
	IsAutoSave         bool
}

// layout used for the FormattedTimestamp field of the Summary type.
const timestampLayout = "2006-01-02 15:04:05"

// Persistence saves and restores game state for one player instance.
//
// The instance reacts to the engine's lifecycle signals on its own; the host
// only needs to call the manual functions (PersistSave, LoadLatestSave,
// LoadSaveByTimestamp, ListSaves) if it wants to bypass the automatic flow.
// Destroy() must be called when the player is torn down.
type Persistence struct {
	crit sync.Mutex

	// identifies this instance's hook wrappers in the hooks registry
	token string

	keys     []string
	adapter  *store.Adapter
	provider func() engine.Engine
	hooks    *engine.Hooks

	// how far the engine has progressed, as reported by whichever lifecycle
	// signal arrives first
	state engine.State

	// at most one pending state per instance
	pending *pendingState

	// the three startup signal sources share this flag. only the first
	// signal triggers a load of persisted state
	startupLoadAttempted bool

	// number of retries scheduled for the current pending state
	attempts int

	// every timer and polling loop is registered here. see Destroy()
	tasks *tasks

	// what the hook slots held before this instance wrapped them
	ownership []engine.Ownership

	destroyed bool

	// timing knobs. fixed except in tests
	retryBase    time.Duration
	retryCeiling time.Duration
	pollEvery    time.Duration

	now func() time.Time
}

const (
	// retry schedule: base delay doubling per attempt. eight attempts at a
	// 200ms base is a shade under a minute in total
	maxRetryAttempts  = 8
	retryBaseDelay    = 200 * time.Millisecond
	retryCeilingDelay = 30 * time.Second

	// the polling fallback gives up after this many iterations
	pollInterval      = 500 * time.Millisecond
	maxPollIterations = 20
)

// NewPersistence is the preferred method of initialisation for the
// Persistence type.
//
// The engine is received through a provider function because the engine may
// not exist yet at the point the player starts. The provider is polled again
// on every lifecycle signal and retry.
//
// An identity with no keys disables persistence; the instance is still valid
// and every operation on it is a quiet no-op.
func NewPersistence(identity Identity, adapter *store.Adapter,
	provider func() engine.Engine, hooks *engine.Hooks) *Persistence {

	per := &Persistence{
		token:        uuid.NewString(),
		keys:         identity.Keys(),
		adapter:      adapter,
		provider:     provider,
		hooks:        hooks,
		tasks:        newTasks(),
		retryBase:    retryBaseDelay,
		retryCeiling: retryCeilingDelay,
		pollEvery:    pollInterval,
		now:          time.Now,
	}

	if len(per.keys) == 0 {
		logger.Log(logger.Allow, "saveport", "identity has no keys, persistence is off")
	}

	per.installHooks()

	// register with the engine's internal event bus. if registration fails,
	// fall back to a bounded polling loop
	if !per.registerWithBus() {
		per.startPolling()
	}

	return per
}

// PersistSave captures the current engine state and writes it under every
// identity key. Returns true if anything was captured.
//
// With createNew set, the captured state is added as a new save slot,
// preserving existing history. Otherwise the newest slot is overwritten and
// the history tail is preserved.
func (per *Persistence) PersistSave(createNew bool) bool {
	per.crit.Lock()
	defer per.crit.Unlock()

	if per.destroyed {
		return false
	}

	return per.persistSave(createNew, false)
}

// LoadLatestSave loads the most recent usable save across every identity
// key, regardless of the current lifecycle phase. Returns true if a save was
// restored immediately; false if nothing could be restored yet (a retry may
// have been scheduled).
func (per *Persistence) LoadLatestSave() bool {
	per.crit.Lock()
	defer per.crit.Unlock()

	if per.destroyed {
		return false
	}

	return per.loadPersisted("manual", 0)
}

// LoadSaveByTimestamp is like LoadLatestSave but constrained to the save
// whose update time exactly matches the supplied timestamp (in milliseconds).
func (per *Persistence) LoadSaveByTimestamp(timestamp int64) bool {
	per.crit.Lock()
	defer per.crit.Unlock()

	if per.destroyed {
		return false
	}

	return per.loadPersisted("manual", timestamp)
}

// ListSaves returns every known save state across every identity key,
// de-duplicated by update time and sorted newest first.
func (per *Persistence) ListSaves() []Summary {
	per.crit.Lock()
	defer per.crit.Unlock()

	var lst []Summary

	seen := make(map[int64]bool)
	for _, s := range per.readAll() {
		if seen[s.UpdatedAt] {
			continue
		}
		seen[s.UpdatedAt] = true

		lst = append(lst, Summary{
			Timestamp:          s.UpdatedAt,
			Checksum:           s.Checksum,
			FormattedTimestamp: time.UnixMilli(s.UpdatedAt).Format(timestampLayout),
			IsAutoSave:         s.IsAutoSave,
		})
	}

	return lst
}

// Destroy tears the instance down: every timer and polling loop is
// cancelled, the pending state is discarded, one final autosave is captured
// in a new slot, and the lifecycle hook slots are handed back to their
// previous owners. Safe to call more than once.
func (per *Persistence) Destroy() {
	per.crit.Lock()

	if per.destroyed {
		per.crit.Unlock()
		return
	}
	per.destroyed = true

	// cancel all scheduled work and null the pending state before anything
	// else, preventing any restoration attempt from racing the teardown
	per.tasks.dispose()
	per.pending = nil

	// the final autosave happens whatever the outcome of any earlier save
	if per.persistSave(true, true) {
		logger.Log(logger.Allow, "saveport", "final autosave captured")
	}

	ownership := per.ownership
	per.ownership = nil
	per.crit.Unlock()

	// hooks are released last
	for _, o := range ownership {
		if !per.hooks.Uninstall(o) {
			logger.Logf(logger.Allow, "saveport",
				"%s hook now owned by a later instance, leaving it alone", o.Hook)
		}
	}
}

// persistSave is the unexported worker for PersistSave and for the final
// autosave in Destroy.
func (per *Persistence) persistSave(createNew bool, auto bool) bool {
	if len(per.keys) == 0 || !per.adapter.Available() {
		return false
	}

	eng := per.provider()
	if eng == nil {
		logger.Log(logger.Allow, "saveport", "save skipped, engine not present")
		return false
	}

	gs := eng.GameState()
	if gs == nil {
		logger.Log(logger.Allow, "saveport", "save skipped, game state not present")
		return false
	}

	sc, ok := gs.(engine.StateCapturer)
	if !ok {
		logger.Log(logger.Allow, "saveport", "save skipped, engine cannot capture state")
		return false
	}

	raw, err := sc.GetState()
	if err != nil {
		logger.Logf(logger.Allow, "saveport", "state capture: %v (save skipped)", err)
		return false
	}

	data := extractPayload(raw)
	if len(data) == 0 {
		logger.Log(logger.Allow, "saveport", "state capture returned no data (save skipped)")
		return false
	}

	per.write(data, createNew, auto)

	return true
}

// extractPayload digs the raw save bytes out of whatever shape the engine's
// state capture call returned.
func extractPayload(v any) []byte {
	switch v := v.(type) {
	case []byte:
		return v
	case interface{ State() []byte }:
		return v.State()
	case interface{ Save() []byte }:
		return v.Save()
	}
	return nil
}
