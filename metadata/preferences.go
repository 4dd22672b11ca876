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

package metadata

import (
	"github.com/jetsetilly/saveport/curated"
	"github.com/jetsetilly/saveport/prefs"
	"github.com/jetsetilly/saveport/resources"
)

// Preferences for the metadata server connection.
type Preferences struct {
	dsk *prefs.Disk

	Server    prefs.String
	AuthToken prefs.String
}

func newPreferences() (*Preferences, error) {
	p := &Preferences{}

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, curated.Errorf("metadata: %v", err)
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, curated.Errorf("metadata: %v", err)
	}

	err = p.dsk.Add("metadata.server", &p.Server)
	if err != nil {
		return nil, curated.Errorf("metadata: %v", err)
	}

	err = p.dsk.Add("metadata.authtoken", &p.AuthToken)
	if err != nil {
		return nil, curated.Errorf("metadata: %v", err)
	}

	err = p.dsk.Load(true)
	if err != nil {
		return p, curated.Errorf("metadata: %v", err)
	}

	return p, nil
}

// Save current preference values to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
