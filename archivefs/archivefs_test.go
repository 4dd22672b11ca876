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

package archivefs_test

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/saveport/archivefs"
	"github.com/jetsetilly/saveport/test"
)

// creates a test directory containing a plain file and a zip archive:
//
//	testdir/
//	  testfile
//	  testarchive.zip
//	    archivefile1
//	    archivefile2
//	    archivedir/
//	      archivefile3
func createTestDir(t *testing.T) string {
	t.Helper()

	testdir := filepath.Join(t.TempDir(), "testdir")
	err := os.Mkdir(testdir, 0700)
	test.DemandSuccess(t, err)

	err = os.WriteFile(filepath.Join(testdir, "testfile"), []byte("testfile contents\n"), 0600)
	test.DemandSuccess(t, err)

	f, err := os.Create(filepath.Join(testdir, "testarchive.zip"))
	test.DemandSuccess(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, n := range []string{"archivefile1", "archivefile2", "archivedir/archivefile3"} {
		w, err := zw.Create(n)
		test.DemandSuccess(t, err)
		_, err = w.Write([]byte(fmt.Sprintf("%s contents\n", filepath.Base(n))))
		test.DemandSuccess(t, err)
	}
	err = zw.Close()
	test.DemandSuccess(t, err)

	return testdir
}

func TestPath(t *testing.T) {
	testdir := createTestDir(t)

	var afs archivefs.Path
	defer afs.Close()

	// non-existant file
	err := afs.Set(filepath.Join(testdir, "foo"))
	test.ExpectFailure(t, err)

	// a real directory
	err = afs.Set(testdir)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), testdir)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, !afs.InArchive())

	// entries in a directory
	entries, err := afs.List()
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(entries), 2)
	test.ExpectEquality(t, fmt.Sprintf("%s", entries), "[testarchive.zip testfile]")
	test.ExpectSuccess(t, entries[0].IsArchive)

	// a real file in the directory
	path := filepath.Join(testdir, "testfile")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, !afs.IsDir())
	test.ExpectSuccess(t, !afs.InArchive())

	// calling List() when path is set to a file, the list returned should be
	// of the containing directory
	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(entries), 2)

	// a real archive. the root of an archive is treated as a directory
	path = filepath.Join(testdir, "testarchive.zip")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	// entries in an archive
	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(entries), 3)
	test.ExpectEquality(t, fmt.Sprintf("%s", entries), "[archivedir archivefile1 archivefile2]")

	// file inside the archive
	path = filepath.Join(testdir, "testarchive.zip", "archivefile1")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, !afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	// directory inside the archive
	path = filepath.Join(testdir, "testarchive.zip", "archivedir")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, afs.IsDir())
	test.ExpectSuccess(t, afs.InArchive())

	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(entries), 1)
	test.ExpectEquality(t, entries[0].Name, "archivefile3")
}

func TestOpen(t *testing.T) {
	testdir := createTestDir(t)

	// plain file
	r, sz, err := archivefs.Open(filepath.Join(testdir, "testfile"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sz, len("testfile contents\n"))
	d, err := io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(d), "testfile contents\n")

	// file inside archive
	r, sz, err = archivefs.Open(filepath.Join(testdir, "testarchive.zip", "archivefile1"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sz, len("archivefile1 contents\n"))
	d, err = io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(d), "archivefile1 contents\n")
}

func TestRemoveArchiveExt(t *testing.T) {
	test.ExpectEquality(t, archivefs.RemoveArchiveExt("foo.zip/bar.rom"), "foo/bar.rom")
	test.ExpectEquality(t, archivefs.TrimArchiveExt("foo.zip"), "foo")
	test.ExpectEquality(t, archivefs.TrimArchiveExt("foo.rom"), "foo.rom")
}
