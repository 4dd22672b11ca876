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

package engine

import (
	"os"
	"path/filepath"
	"strings"
)

// DirFS adapts a real directory to the FileSystem interface. Useful for
// native engines that keep their save files on the host filesystem, and for
// testing.
//
// Paths handed to DirFS are interpreted relative to the root directory. A
// leading path separator is tolerated because engines tend to report their
// save file path as though it were absolute.
type DirFS struct {
	root string
}

// NewDirFS is the preferred method of initialisation for the DirFS type.
func NewDirFS(root string) *DirFS {
	return &DirFS{
		root: root,
	}
}

func (d *DirFS) abs(path string) string {
	path = strings.TrimPrefix(filepath.FromSlash(path), string(filepath.Separator))
	return filepath.Join(d.root, path)
}

// AnalyzePath reports whether the path exists and whether it is a directory.
//
// This function implements the FileSystem interface.
func (d *DirFS) AnalyzePath(path string) (bool, bool) {
	fi, err := os.Stat(d.abs(path))
	if err != nil {
		return false, false
	}
	return true, fi.IsDir()
}

// Mkdir creates a single directory. An existing directory is not an error.
//
// This function implements the FileSystem interface.
func (d *DirFS) Mkdir(path string) error {
	err := os.Mkdir(d.abs(path), 0700)
	if err != nil && !os.IsExist(err) {
		return err
	}
	return nil
}

// WriteFile writes data to the path, replacing any existing file.
//
// This function implements the FileSystem interface.
func (d *DirFS) WriteFile(path string, data []byte) error {
	return os.WriteFile(d.abs(path), data, 0600)
}

// Unlink removes the file at the path.
//
// This function implements the FileSystem interface.
func (d *DirFS) Unlink(path string) error {
	return os.Remove(d.abs(path))
}

// ReadFile returns the contents of the file at the path.
//
// This function implements the FileSystem interface.
func (d *DirFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(d.abs(path))
}
