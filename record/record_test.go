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

package record_test

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/jetsetilly/saveport/record"
	"github.com/jetsetilly/saveport/test"
)

func TestChecksum(t *testing.T) {
	// checksum must be stable across calls
	a := record.Checksum([]byte{1, 2, 3})
	b := record.Checksum([]byte{1, 2, 3})
	test.ExpectEquality(t, a, b)

	// eight hex digits
	test.ExpectEquality(t, len(a), 8)

	// different payloads produce different checksums
	c := record.Checksum([]byte{3, 2, 1})
	test.ExpectInequality(t, a, c)
}

func TestRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3}

	enc, err := record.Encode([]record.State{{
		Data:      payload,
		UpdatedAt: 100,
		Checksum:  record.Checksum(payload),
	}})
	test.DemandSuccess(t, err)

	states := record.Decode(enc)
	test.DemandEquality(t, len(states), 1)
	test.ExpectEquality(t, fmt.Sprintf("%v", states[0].Data), fmt.Sprintf("%v", payload))
	test.ExpectEquality(t, states[0].UpdatedAt, int64(100))
	test.ExpectEquality(t, states[0].Checksum, record.Checksum(payload))
	test.ExpectEquality(t, states[0].IsAutoSave, false)
}

func TestVersionField(t *testing.T) {
	enc, err := record.Encode([]record.State{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(enc), `{"version":1,"saves":[]}`)
}

func TestLegacyShape(t *testing.T) {
	payload := []byte{4, 5, 6}
	raw := []byte(fmt.Sprintf(`{"data":%q,"updatedAt":12345}`,
		base64.StdEncoding.EncodeToString(payload)))

	states := record.Decode(raw)
	test.DemandEquality(t, len(states), 1)
	test.ExpectEquality(t, fmt.Sprintf("%v", states[0].Data), fmt.Sprintf("%v", payload))
	test.ExpectEquality(t, states[0].UpdatedAt, int64(12345))

	// checksum is freshly computed on migration
	test.ExpectEquality(t, states[0].Checksum, record.Checksum(payload))
	test.ExpectEquality(t, states[0].IsAutoSave, false)
}

func TestDecodeGarbage(t *testing.T) {
	test.ExpectEquality(t, len(record.Decode(nil)), 0)
	test.ExpectEquality(t, len(record.Decode([]byte{})), 0)
	test.ExpectEquality(t, len(record.Decode([]byte("not json at all"))), 0)
	test.ExpectEquality(t, len(record.Decode([]byte(`{"something":"else"}`))), 0)
	test.ExpectEquality(t, len(record.Decode([]byte(`[1,2,3]`))), 0)
}

func TestSort(t *testing.T) {
	states := []record.State{
		{UpdatedAt: 100},
		{UpdatedAt: 300},
		{UpdatedAt: 200},
	}
	record.Sort(states)
	test.ExpectEquality(t, states[0].UpdatedAt, int64(300))
	test.ExpectEquality(t, states[1].UpdatedAt, int64(200))
	test.ExpectEquality(t, states[2].UpdatedAt, int64(100))
}
