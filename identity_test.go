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
	"testing"

	"github.com/jetsetilly/saveport/test"
)

func TestIdentityKeys(t *testing.T) {
	id := Identity{
		Primary:    "pitfall",
		Persist:    "persist-id",
		Alternates: []string{"deadbeef", "pitfall"},
	}

	keys := id.Keys()

	// order preserved, duplicates dropped
	test.DemandEquality(t, len(keys), 3)
	test.ExpectEquality(t, keys[0], "pitfall")
	test.ExpectEquality(t, keys[1], "persist-id")
	test.ExpectEquality(t, keys[2], "deadbeef")
}

func TestIdentityKeysEmptyStrings(t *testing.T) {
	id := Identity{
		Persist:    "persist-id",
		Alternates: []string{"", "deadbeef"},
	}

	keys := id.Keys()
	test.DemandEquality(t, len(keys), 2)
	test.ExpectEquality(t, keys[0], "persist-id")
	test.ExpectEquality(t, keys[1], "deadbeef")
}

func TestIdentityNoKeys(t *testing.T) {
	// an empty identity is valid. it means persistence is off
	test.ExpectEquality(t, len(Identity{}.Keys()), 0)
}
