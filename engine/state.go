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

// State indicates how far the engine has progressed through its lifecycle.
//
// Values are ordered so that order comparisons are meaningful. GameRunning is
// "greater than" Ready, which is "greater than" NotStarted. The state is set
// by whichever lifecycle signal arrives first and never moves backwards.
type State int

// List of possible engine states.
const (
	NotStarted State = iota
	Ready
	GameRunning
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Ready:
		return "ready"
	case GameRunning:
		return "game running"
	}
	return "unknown"
}
