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

// Package cartridge is used to specify the ROM whose save state is being
// persisted, and to derive the persistence identity for it.
//
// The Load() function handles loading of data from different sources.
// Currently local files (including files inside zip archives) and data over
// HTTP are supported.
//
// The Identity() function turns a loaded ROM into the key set used by the
// saveport package: the ROM's short name, the host's dedicated persistence id
// and the content hash as an alternate.
package cartridge
