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

// Package record converts between the persisted representation of save data
// and the in-memory list of save states.
//
// The current persisted shape is a versioned record containing a list of
// saves, newest first:
//
//	{"version": 1, "saves": [{"data": ..., "updatedAt": ..., "checksum": ..., "isAutoSave": ...}]}
//
// A much older single-blob shape is still found in long-lived stores:
//
//	{"data": ..., "updatedAt": ...}
//
// The old shape is read and migrated to a one-element list of saves but it is
// never written back out. The next write of the record will be in the current
// shape as a matter of course.
package record
