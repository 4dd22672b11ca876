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

package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/jetsetilly/saveport/engine"
)

// demoState is the game-state object of the scripted engine. the "state" is
// nothing more than a timestamped string, enough to see saves and loads
// happening.
type demoState struct {
	crit sync.Mutex
	data []byte
}

func (gs *demoState) LoadState(data []byte) error {
	gs.crit.Lock()
	defer gs.crit.Unlock()
	gs.data = data
	fmt.Printf("\r! engine: state loaded (%s)\n", string(data))
	return nil
}

func (gs *demoState) GetState() (any, error) {
	gs.crit.Lock()
	defer gs.crit.Unlock()
	if gs.data == nil {
		gs.data = []byte(fmt.Sprintf("demo state @ %s", time.Now().Format("15:04:05")))
	}
	return gs.data, nil
}

// advance mutates the game state, so that consecutive saves differ.
func (gs *demoState) advance() {
	gs.crit.Lock()
	defer gs.crit.Unlock()
	gs.data = []byte(fmt.Sprintf("demo state @ %s", time.Now().Format("15:04:05")))
}

// demoEngine is a scripted stand-in for a real execution engine. the
// game-state object does not exist until the ready delay has elapsed, which
// exercises the pending/retry machinery in the saveport package.
type demoEngine struct {
	crit sync.Mutex
	gs   *demoState
}

func (e *demoEngine) GameState() engine.GameState {
	e.crit.Lock()
	defer e.crit.Unlock()
	if e.gs == nil {
		return nil
	}
	return e.gs
}

// start the engine. the game-state object appears and the ready hook fires
// after the supplied delay.
func (e *demoEngine) start(delay time.Duration, hooks *engine.Hooks) {
	go func() {
		time.Sleep(delay)

		e.crit.Lock()
		e.gs = &demoState{}
		e.crit.Unlock()

		hooks.Fire(engine.OnReady)
	}()
}
