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

package engine

import (
	"sync"
)

// Hook identifies one of the global lifecycle hook slots.
type Hook string

// List of hook slots. OnReady fires once the engine core initialises;
// OnGameStart fires once gameplay actually begins.
const (
	OnReady     Hook = "ready"
	OnGameStart Hook = "gameStart"
)

// Callback is the occupant of a hook slot.
type Callback func()

// Ownership records what a hook slot contained before Install() replaced it,
// and the token of the instance that installed the replacement. The record is
// required to Uninstall() the wrapper later.
type Ownership struct {
	Hook     Hook
	Previous Callback
	Token    string
}

type slot struct {
	callback Callback

	// token of the installing instance. the empty string means the slot is
	// occupied by the host rather than by a wrapper
	token string
}

// Hooks is a registry for the lifecycle hook slots. The slots are shared
// mutable state owned by at most one player instance at a time; the registry
// makes the ownership explicit instead of leaving it to ambient globals.
type Hooks struct {
	crit  sync.Mutex
	slots map[Hook]*slot
}

// NewHooks is the preferred method of initialisation for the Hooks type.
func NewHooks() *Hooks {
	return &Hooks{
		slots: make(map[Hook]*slot),
	}
}

// Set places a callback in a hook slot. This is how the host installs its own
// lifecycle behaviour. A nil callback empties the slot.
func (h *Hooks) Set(hook Hook, callback Callback) {
	h.crit.Lock()
	defer h.crit.Unlock()

	if callback == nil {
		delete(h.slots, hook)
		return
	}
	h.slots[hook] = &slot{callback: callback}
}

// Get returns the current occupant of a hook slot, or nil if the slot is
// empty.
func (h *Hooks) Get(hook Hook) Callback {
	h.crit.Lock()
	defer h.crit.Unlock()

	if s, ok := h.slots[hook]; ok {
		return s.callback
	}
	return nil
}

// Fire invokes the current occupant of a hook slot, if there is one. The
// callback is invoked outside of the registry's critical section so that it
// is free to call back into the registry.
func (h *Hooks) Fire(hook Hook) {
	h.crit.Lock()
	var callback Callback
	if s, ok := h.slots[hook]; ok {
		callback = s.callback
	}
	h.crit.Unlock()

	if callback != nil {
		callback()
	}
}

// Install replaces the occupant of a hook slot with a wrapper. The previous
// occupant is captured exactly once and returned in the Ownership record; it
// is the wrapper's responsibility to invoke it.
func (h *Hooks) Install(hook Hook, token string, wrapper Callback) Ownership {
	h.crit.Lock()
	defer h.crit.Unlock()

	o := Ownership{
		Hook:  hook,
		Token: token,
	}

	if s, ok := h.slots[hook]; ok {
		o.Previous = s.callback
	}

	h.slots[hook] = &slot{
		callback: wrapper,
		token:    token,
	}

	return o
}

// Uninstall restores the previous occupant recorded at install time, or
// empties the slot if there was none. The restore only happens if the slot
// still holds the wrapper named by the ownership record; returns false if a
// later installation has clobbered it.
func (h *Hooks) Uninstall(o Ownership) bool {
	h.crit.Lock()
	defer h.crit.Unlock()

	s, ok := h.slots[o.Hook]
	if !ok || s.token != o.Token {
		return false
	}

	if o.Previous == nil {
		delete(h.slots, o.Hook)
		return true
	}

	h.slots[o.Hook] = &slot{callback: o.Previous}
	return true
}
