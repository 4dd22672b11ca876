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

// Package engine defines the boundary to the external execution engine.
//
// The engine is a collaborator that is supplied and controlled by the host
// application. It may not exist at the point a player starts and there is no
// way of synchronously observing when it becomes ready; the saveport package
// deals with that uncertainty.
//
// The Engine interface carries the one call every engine must have. Anything
// beyond that is an optional capability probed by type assertion.
package engine

// Engine is the minimal interface to the execution engine.
type Engine interface {
	// GameState returns the engine's internal game-state object. The return
	// value is nil until the engine has instantiated it, which may be some
	// time after the engine itself exists.
	GameState() GameState
}

// GameState is the engine's internal game-state object. The interface itself
// carries no methods; useful capabilities are probed by type assertion
// against StateLoader, StateSetter and StateCapturer.
type GameState interface {
}

// StateLoader is implemented by game-state objects that can load a save
// payload directly.
type StateLoader interface {
	LoadState(data []byte) error
}

// StateSetter is implemented by game-state objects that can have a save
// payload assigned directly. Used as a fallback when StateLoader is absent
// or fails.
type StateSetter interface {
	SetState(data []byte) error
}

// StateCapturer is implemented by game-state objects that can capture the
// current engine state.
//
// The captured value is not always a plain byte slice. Some engines wrap the
// payload in an object exposing it through a State() or Save() method; see
// the saveport package for how the payload is extracted.
type StateCapturer interface {
	GetState() (any, error)
}

// FileBacked is implemented by engines that persist their save files through
// a filesystem-like object. It is the final fallback for applying a save
// payload.
type FileBacked interface {
	// FS returns the engine's filesystem-like object.
	FS() FileSystem

	// SaveFilePath returns the path at which the engine expects to find its
	// save file. An empty string means the engine does not know yet.
	SaveFilePath() string

	// LoadSaveFiles asks the engine to re-read its save files from the
	// filesystem.
	LoadSaveFiles() error
}

// Signaller is implemented by engines with a generic event-signalling call.
type Signaller interface {
	Signal(event string)
}

// Bus is implemented by engines with an internal event bus. Registration can
// fail, in which case the saveport package falls back to polling.
type Bus interface {
	// Register attaches a callback to the named engine event.
	Register(event string, callback func()) error
}

// FileSystem mirrors the filesystem-like object exposed by file-backed
// engines.
type FileSystem interface {
	// AnalyzePath reports whether the path exists and whether it is a
	// directory.
	AnalyzePath(path string) (exists bool, isDir bool)

	// Mkdir creates a single directory. The parent must already exist.
	Mkdir(path string) error

	// WriteFile writes data to the path, replacing any existing file.
	WriteFile(path string, data []byte) error

	// Unlink removes the file at the path.
	Unlink(path string) error

	// ReadFile returns the contents of the file at the path.
	ReadFile(path string) ([]byte, error)
}
