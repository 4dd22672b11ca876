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

package record

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"sort"

	"github.com/jetsetilly/saveport/curated"
	"github.com/tidwall/gjson"
)

// State is a single save state belonging to one ROM.
type State struct {
	// the save payload as handed to us by the engine
	Data []byte `json:"data"`

	// time of the write that created this state, in milliseconds
	UpdatedAt int64 `json:"updatedAt"`

	// checksum of the Data field. for display and diagnostics only, a
	// mismatching checksum never prevents a write or a restore
	Checksum string `json:"checksum"`

	// true if the state was captured automatically rather than by an explicit
	// save request
	IsAutoSave bool `json:"isAutoSave"`
}

// the version field written with every new record. the decoder keys off the
// structural shape of the record rather than this field, so that version-less
// records in the current shape still decode.
const schemaVersion = 1

type encodedRecord struct {
	Version int     `json:"version"`
	Saves   []State `json:"saves"`
}

// Checksum returns the 32-bit cyclic redundancy value of data, rendered as
// eight hex digits.
func Checksum(data []byte) string {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data))
}

// Encode the list of states into the current persisted shape.
func Encode(states []State) ([]byte, error) {
	if states == nil {
		states = []State{}
	}

	d, err := json.Marshal(encodedRecord{
		Version: schemaVersion,
		Saves:   states,
	})
	if err != nil {
		return nil, curated.Errorf("record: %v", err)
	}

	return d, nil
}

// Decode the raw persisted record into a list of states.
//
// Records in the current shape are mapped directly; records in the legacy
// single-blob shape are migrated to a one-element list with a freshly
// computed checksum; anything else decodes to an empty list. Decode never
// fails.
func Decode(raw []byte) []State {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return []State{}
	}

	// current shape. a record with a saves array, with or without a version
	// field
	if saves := gjson.GetBytes(raw, "saves"); saves.IsArray() {
		var states []State

		for _, s := range saves.Array() {
			data, err := base64.StdEncoding.DecodeString(s.Get("data").String())
			if err != nil {
				// a save whose payload cannot be decoded is of no use to
				// anybody. drop it and move on
				continue
			}

			chk := s.Get("checksum").String()
			if chk == "" {
				chk = Checksum(data)
			}

			states = append(states, State{
				Data:       data,
				UpdatedAt:  s.Get("updatedAt").Int(),
				Checksum:   chk,
				IsAutoSave: s.Get("isAutoSave").Bool(),
			})
		}

		if states == nil {
			states = []State{}
		}

		return states
	}

	// legacy single-blob shape. the stored record is left untouched, the
	// migration only exists in memory until the next write
	d := gjson.GetBytes(raw, "data")
	u := gjson.GetBytes(raw, "updatedAt")
	if d.Exists() && u.Exists() {
		data, err := base64.StdEncoding.DecodeString(d.String())
		if err != nil {
			return []State{}
		}

		return []State{{
			Data:      data,
			UpdatedAt: u.Int(),
			Checksum:  Checksum(data),
		}}
	}

	return []State{}
}

// Sort the list of states so that the most recently updated state is first.
// The sort is stable.
func Sort(states []State) {
	sort.SliceStable(states, func(i int, j int) bool {
		return states[i].UpdatedAt > states[j].UpdatedAt
	})
}
