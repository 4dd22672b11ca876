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
)

// tasks is a registry of cancellable scheduled work. every timer and polling
// loop a Persistence instance creates is registered here, so that teardown
// can cancel everything without knowing why each task was scheduled.
type tasks struct {
	crit     sync.Mutex
	cancels  map[int]func()
	next     int
	disposed bool
}

func newTasks() *tasks {
	return &tasks{
		cancels: make(map[int]func()),
	}
}

// add a cancel function to the registry. the cancel function must be safe to
// call after the task has completed on its own.
//
// the returned function removes the entry without cancelling; tasks that
// complete naturally should call it.
func (tk *tasks) add(cancel func()) func() {
	tk.crit.Lock()

	// if disposal has already happened the task must not run
	if tk.disposed {
		tk.crit.Unlock()
		cancel()
		return func() {}
	}

	id := tk.next
	tk.next++
	tk.cancels[id] = cancel
	tk.crit.Unlock()

	return func() {
		tk.crit.Lock()
		delete(tk.cancels, id)
		tk.crit.Unlock()
	}
}

// dispose cancels every registered task. further calls to add() cancel the
// new task immediately.
func (tk *tasks) dispose() {
	tk.crit.Lock()
	tk.disposed = true
	cancels := make([]func(), 0, len(tk.cancels))
	for _, c := range tk.cancels {
		cancels = append(cancels, c)
	}
	tk.cancels = make(map[int]func())
	tk.crit.Unlock()

	for _, c := range cancels {
		c()
	}
}
