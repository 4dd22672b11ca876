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

// Package metadata talks to an optional remote metadata server that maps ROM
// content hashes to display names and historical identity keys. The server is
// a convenience only; a host without one simply does not get alternate keys
// from this source.
package metadata

import (
	"fmt"
	"io"
	"net/http"

	"github.com/jetsetilly/saveport/curated"
	"github.com/tidwall/gjson"
)

// Session represents a connection to the metadata server. Instances of the
// Session type can be used for any number of lookups.
type Session struct {
	Prefs *Preferences
}

// NewSession is the preferred method of initialisation of the Session type.
func NewSession() (*Session, error) {
	sess := &Session{}

	var err error

	sess.Prefs, err = newPreferences()
	if err != nil {
		return nil, curated.Errorf("metadata: %v", err)
	}

	return sess, nil
}

// Result of a metadata lookup.
type Result struct {
	// display name of the ROM. empty if the server does not know the ROM
	Name string

	// identity keys the ROM has been known under. suitable for the Alternates
	// field of the saveport Identity type
	IDs []string
}

// Lookup the ROM with the supplied content hash.
//
// A server that does not know the ROM is not an error; the returned Result is
// simply empty. An unconfigured server (the empty string) behaves the same
// way so that hosts can call Lookup() unconditionally.
func (sess *Session) Lookup(hash string) (Result, error) {
	server := sess.Prefs.Server.String()
	if server == "" {
		return Result{}, nil
	}

	url := fmt.Sprintf("%s/saveport/rest/rom/%s", server, hash)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Result{}, curated.Errorf("metadata: %v", err)
	}

	if tok := sess.Prefs.AuthToken.String(); tok != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Token %s", tok))
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return Result{}, curated.Errorf("metadata: %v", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case 200:
		// ROM is known to the server
	case 404:
		// ROM is unknown. not an error
		return Result{}, nil
	default:
		err = fmt.Errorf("unexpected response from metadata server [%d]", resp.StatusCode)
		return Result{}, curated.Errorf("metadata: %v", err)
	}

	response, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, curated.Errorf("metadata: %v", err)
	}

	var res Result
	res.Name = gjson.GetBytes(response, "name").String()
	for _, id := range gjson.GetBytes(response, "ids").Array() {
		if s := id.String(); s != "" {
			res.IDs = append(res.IDs, s)
		}
	}

	return res, nil
}
