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

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/saveport/logger"
	"github.com/jetsetilly/saveport/test"
)

func TestLogger(t *testing.T) {
	lg := logger.NewLogger(100)

	b := &strings.Builder{}
	lg.Write(b)
	test.ExpectEquality(t, b.String(), "")

	lg.Log(logger.Allow, "test", "this is a test")
	b.Reset()
	lg.Write(b)
	test.ExpectEquality(t, b.String(), "test: this is a test\n")

	lg.Log(logger.Allow, "test2", "this is another test")
	b.Reset()
	lg.Write(b)
	test.ExpectEquality(t, b.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	b.Reset()
	lg.Tail(b, 100)
	test.ExpectEquality(t, b.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for exactly the correct number of entries is okay
	b.Reset()
	lg.Tail(b, 2)
	test.ExpectEquality(t, b.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	b.Reset()
	lg.Tail(b, 1)
	test.ExpectEquality(t, b.String(), "test2: this is another test\n")

	// and no entries
	b.Reset()
	lg.Tail(b, 0)
	test.ExpectEquality(t, b.String(), "")
}

func TestRepeatedEntries(t *testing.T) {
	lg := logger.NewLogger(100)

	lg.Log(logger.Allow, "test", "same detail")
	lg.Log(logger.Allow, "test", "same detail")
	lg.Log(logger.Allow, "test", "same detail")

	b := &strings.Builder{}
	lg.Write(b)
	test.ExpectEquality(t, b.String(), "test: same detail (repeat x3)\n")
}

func TestWriteRecent(t *testing.T) {
	lg := logger.NewLogger(100)

	lg.Log(logger.Allow, "test", "first")

	b := &strings.Builder{}
	lg.WriteRecent(b)
	test.ExpectEquality(t, b.String(), "test: first\n")

	// entry has been seen so a second call writes nothing
	b.Reset()
	lg.WriteRecent(b)
	test.ExpectEquality(t, b.String(), "")

	lg.Log(logger.Allow, "test", "second")
	b.Reset()
	lg.WriteRecent(b)
	test.ExpectEquality(t, b.String(), "test: second\n")
}

func TestMaxEntries(t *testing.T) {
	lg := logger.NewLogger(2)

	lg.Log(logger.Allow, "test", "one")
	lg.Log(logger.Allow, "test", "two")
	lg.Log(logger.Allow, "test", "three")

	b := &strings.Builder{}
	lg.Write(b)
	test.ExpectEquality(t, b.String(), "test: two\ntest: three\n")
}

type deny struct{}

func (_ deny) AllowLogging() bool {
	return false
}

func TestPermission(t *testing.T) {
	lg := logger.NewLogger(100)

	lg.Log(deny{}, "test", "should not appear")

	b := &strings.Builder{}
	lg.Write(b)
	test.ExpectEquality(t, b.String(), "")
}
