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

package metadata_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jetsetilly/saveport/metadata"
	"github.com/jetsetilly/saveport/test"
)

func newTestSession(t *testing.T, handler http.HandlerFunc) *metadata.Session {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	// the session is constructed directly rather than with NewSession() so
	// that the test does not touch the real preferences file
	sess := &metadata.Session{Prefs: &metadata.Preferences{}}
	test.DemandSuccess(t, sess.Prefs.Server.Set(srv.URL))
	test.DemandSuccess(t, sess.Prefs.AuthToken.Set("secret"))

	return sess
}

func TestLookup(t *testing.T) {
	var gotPath string
	var gotAuth string

	sess := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprintln(w, `{"name": "Pitfall!", "ids": ["pitfall", "deadbeef"]}`)
	})

	res, err := sess.Lookup("deadbeef")
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, gotPath, "/saveport/rest/rom/deadbeef")
	test.ExpectEquality(t, gotAuth, "Token secret")
	test.ExpectEquality(t, res.Name, "Pitfall!")
	test.DemandEquality(t, len(res.IDs), 2)
	test.ExpectEquality(t, res.IDs[0], "pitfall")
	test.ExpectEquality(t, res.IDs[1], "deadbeef")
}

func TestLookupUnknownROM(t *testing.T) {
	sess := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	// an unknown ROM is not an error
	res, err := sess.Lookup("deadbeef")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, res.Name, "")
	test.ExpectEquality(t, len(res.IDs), 0)
}

func TestLookupServerError(t *testing.T) {
	sess := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := sess.Lookup("deadbeef")
	test.ExpectFailure(t, err)
}

func TestLookupUnconfigured(t *testing.T) {
	sess := &metadata.Session{Prefs: &metadata.Preferences{}}

	// an unconfigured server resolves every lookup as unknown
	res, err := sess.Lookup("deadbeef")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, res.Name, "")
}
