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

package cartridge

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/jetsetilly/saveport"
	"github.com/jetsetilly/saveport/archivefs"
	"github.com/jetsetilly/saveport/curated"
)

// Loader is used to specify the ROM whose save state is being persisted.
type Loader struct {
	// filename of ROM to load
	Filename string

	// expected hash of the loaded ROM. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: filename,
	}
}

// ShortName returns a shortened version of the Loader filename. Any archive
// extension is removed along with the file extension proper, so a ROM inside
// a zip file gets the same short name as the bare file would.
func (cl Loader) ShortName() string {
	n := path.Base(archivefs.RemoveArchiveExt(cl.Filename))
	return strings.TrimSuffix(n, path.Ext(n))
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the ROM data. Loader filenames with a valid scheme will use that
// method to load the data. Currently supported schemes are HTTP and local
// files; local files inside a zip archive are handled transparently.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	scheme := "file"

	url, err := url.Parse(cl.Filename)
	if err == nil {
		scheme = url.Scheme
	}

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridge: %v", err)
		}
		defer resp.Body.Close()

		cl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("cartridge: %v", err)
		}

	case "file":
		fallthrough

	case "":
		r, size, err := archivefs.Open(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridge: %v", err)
		}
		if c, ok := r.(io.Closer); ok {
			defer c.Close()
		}

		cl.Data = make([]byte, size)
		_, err = io.ReadFull(r, cl.Data)
		if err != nil {
			return curated.Errorf("cartridge: %v", err)
		}

	default:
		return curated.Errorf("cartridge: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	// generate hash
	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))

	// check for hash consistency
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf("cartridge: %v", "unexpected hash value")
	}

	cl.Hash = hash

	return nil
}

// Identity builds the persistence identity for the loaded ROM. The persistID
// argument is the host's dedicated persistence id and may be empty. The ROM's
// content hash is included as an alternate key so that saves survive a file
// rename.
//
// Load() must have been called successfully beforehand.
func (cl Loader) Identity(persistID string) saveport.Identity {
	id := saveport.Identity{
		Primary: cl.ShortName(),
		Persist: persistID,
	}
	if cl.Hash != "" {
		id.Alternates = append(id.Alternates, cl.Hash)
	}
	return id
}
