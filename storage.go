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
	"github.com/jetsetilly/saveport/logger"
	"github.com/jetsetilly/saveport/record"
)

// readAll gathers the save histories of every identity key into one list,
// sorted newest first. Duplicate update times are kept; callers that need a
// de-duplicated view do their own filtering.
func (per *Persistence) readAll() []record.State {
	if !per.adapter.Available() {
		return nil
	}

	var all []record.State

	for _, k := range per.keys {
		raw, ok := per.adapter.Get(k)
		if !ok {
			continue
		}
		all = append(all, record.Decode(raw)...)
	}

	record.Sort(all)

	return all
}

// write the supplied save data under every identity key. With createNew set,
// a new save slot is prepended to each key's history; otherwise the newest
// slot of each history is overwritten in place.
//
// A failure against one key never stops the write to the others.
func (per *Persistence) write(data []byte, createNew bool, auto bool) {
	if !per.adapter.Available() {
		return
	}

	now := per.now().UnixMilli()

	s := record.State{
		Data:       data,
		UpdatedAt:  now,
		Checksum:   record.Checksum(data),
		IsAutoSave: auto,
	}

	for _, k := range per.keys {
		var history []record.State

		if raw, ok := per.adapter.Get(k); ok {
			history = record.Decode(raw)
			record.Sort(history)
		}

		if createNew || len(history) == 0 {
			history = append([]record.State{s}, history...)
		} else {
			history[0] = s
		}

		enc, err := record.Encode(history)
		if err != nil {
			logger.Logf(logger.Allow, "saveport", "encoding history for %s: %v", k, err)
			continue
		}

		per.adapter.Put(k, enc)
	}

	logger.Logf(logger.Allow, "saveport", "save state persisted (%d keys)", len(per.keys))
}
