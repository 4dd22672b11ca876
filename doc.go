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

// Package saveport saves and restores game state for ROM player instances.
//
// The central type is Persistence. One instance is created per player and the
// instance reacts to the engine's lifecycle on its own: the first lifecycle
// signal to arrive triggers a load of the most recent persisted save, and if
// the engine is not ready to receive it the payload is held and retried with
// a doubling delay. A save that cannot be restored never blocks gameplay; the
// retry budget is finite and exhaustion abandons the payload with a log
// entry.
//
// Three signal sources cover the differing capabilities of host engines: the
// global lifecycle hook slots (see the engine package), the engine's internal
// event bus, and a bounded polling loop used only if bus registration fails.
//
// Save payloads are applied to the engine by the most direct means available.
// A direct load on the game-state object is preferred; a direct set is the
// fallback; engines offering neither have the payload written to their save
// file location instead.
//
// The host can drive everything manually through PersistSave, LoadLatestSave,
// LoadSaveByTimestamp and ListSaves. Destroy() must be called when the player
// is torn down; it captures a final autosave and hands the lifecycle hook
// slots back to their previous owners.
package saveport
