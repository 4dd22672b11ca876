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

// Package prefs provides preference values that can be read from and written
// to a preferences file on disk.
//
// Preference values are registered with a Disk instance with the Add()
// function. Each value is identified by a key. Keys from many different Disk
// instances can coexist in the same file; saving one Disk instance will not
// clobber the keys of another.
package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "saveport.prefs"

// WarningBoilerPlate is the first line in a prefs file. Its presence indicates
// that the file is very likely a valid prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the string that separates the key from the value in a prefs file entry.
const keySep = " :: "

// Disk represents the preference values that are to be stored in a single
// file on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// path argument is the path to the preferences file. The file does not need
// to exist at this point; it will be created on the first call to Save().
func NewDisk(path string) (*Disk, error) {
	dsk := &Disk{
		path:    path,
		entries: make(map[string]pref),
	}

	// check that an existing file looks like a prefs file
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()

		scanner := bufio.NewScanner(f)
		if scanner.Scan() {
			if scanner.Text() != WarningBoilerPlate {
				return nil, fmt.Errorf("prefs: not a valid prefs file (%s)", path)
			}
		}
	}

	return dsk, nil
}

// Add a preference value to the list of values to store/load from disk. The
// key is used to identify the value in the prefs file.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, keySep) {
		return fmt.Errorf("prefs: invalid key (%s)", key)
	}

	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key already registered (%s)", key)
	}

	dsk.entries[key] = p

	// if the value has been set on the command line then use that value in
	// preference to anything already set
	if ok, v := GetCommandLinePref(key); ok {
		return p.Set(v)
	}

	return nil
}

// HasEntry returns true if the key has been registered with this Disk
// instance.
func (dsk *Disk) HasEntry(key string) bool {
	_, ok := dsk.entries[key]
	return ok
}

// load the contents of the prefs file into a map. every entry in the file is
// represented, not just the entries registered with this Disk instance. this
// is how keys belonging to other Disk instances survive a Save().
func (dsk *Disk) loadFromFile() (map[string]string, error) {
	vals := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		return vals, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// check boilerplate
	if scanner.Scan() {
		if scanner.Text() != WarningBoilerPlate {
			return vals, fmt.Errorf("prefs: not a valid prefs file (%s)", dsk.path)
		}
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), keySep, 2)
		if len(kv) != 2 {
			continue
		}

		// quietly drop values that are no longer used
		if isDefunct(kv[0]) {
			continue
		}

		vals[kv[0]] = kv[1]
	}

	return vals, nil
}

// Load prefs values from disk. Values that are in the prefs file but have not
// been registered with this Disk instance are ignored.
//
// If saveOnError is true then any error from the setting of an individual
// value is ignored and loading continues with the next entry.
func (dsk *Disk) Load(saveOnError bool) error {
	vals, err := dsk.loadFromFile()
	if err != nil {
		// a missing prefs file is not an error. the file simply hasn't been
		// saved yet
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for key, v := range vals {
		if p, ok := dsk.entries[key]; ok {
			err = p.Set(v)
			if err != nil && !saveOnError {
				return fmt.Errorf("prefs: %w", err)
			}
		}
	}

	return nil
}

// Save registered prefs values to disk. Keys in the prefs file that belong to
// other Disk instances are preserved.
func (dsk *Disk) Save() error {
	// load existing file contents so that keys not registered with this
	// instance are written back out
	vals, err := dsk.loadFromFile()
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	// overlay the current live values
	for key, p := range dsk.entries {
		vals[key] = p.String()
	}

	// write to file in key order
	keys := make([]string, 0, len(vals))
	for key := range vals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, keySep, vals[key]))
	}

	_, err = f.WriteString(s.String())
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Reset all registered prefs values to their zero state.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}
	return nil
}
