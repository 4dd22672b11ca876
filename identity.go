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

// Identity collects the equivalent persistence keys for one logical ROM. A
// ROM can be known under several keys at once; reads and writes fan out
// across all of them.
type Identity struct {
	// the primary id of the ROM, typically its short name
	Primary string

	// a dedicated persistence id chosen by the host
	Persist string

	// any other ids the ROM has been known under, for example a content hash
	// or ids from before an identity migration
	Alternates []string
}

// Keys returns the deduplicated, order-preserving key set for the identity.
//
// An empty set is a valid terminal state and means that persistence is off
// for this ROM. It is not an error condition.
func (id Identity) Keys() []string {
	all := make([]string, 0, len(id.Alternates)+2)
	all = append(all, id.Primary, id.Persist)
	all = append(all, id.Alternates...)

	var keys []string
	seen := make(map[string]bool)
	for _, k := range all {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}

	return keys
}
