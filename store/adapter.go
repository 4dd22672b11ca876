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

package store

import (
	"sync"

	"github.com/jetsetilly/saveport/logger"
)

// name and version of the database opened by the adapter.
const (
	databaseName    = "saveport"
	databaseVersion = 1
)

// the single object store holding every save record, keyed by identity key.
const objectStoreName = "saves"

// Adapter wraps a Connector so that callers never see a store failure. A
// missing store disables persistence; a failing transaction resolves as a
// miss or a no-op, with a log entry.
type Adapter struct {
	connector Connector

	// the open attempt is made once and memoised, whatever the outcome
	once sync.Once
	db   Database
}

// NewAdapter is the preferred method of initialisation for the Adapter type.
// A nil connector is allowed and results in an adapter for which Available()
// is false.
func NewAdapter(connector Connector) *Adapter {
	return &Adapter{
		connector: connector,
	}
}

// open the database if it hasn't been opened before. returns nil if the
// store is unavailable.
func (a *Adapter) open() Database {
	a.once.Do(func() {
		if a.connector == nil {
			logger.Log(logger.Allow, "store", "durable store not present, persistence disabled")
			return
		}

		db, err := a.connector.Open(databaseName, databaseVersion)
		if err != nil {
			logger.Logf(logger.Allow, "store", "open: %v (persistence disabled)", err)
			return
		}

		if !db.Contains(objectStoreName) {
			if err := db.CreateObjectStore(objectStoreName); err != nil {
				logger.Logf(logger.Allow, "store", "create object store: %v (persistence disabled)", err)
				return
			}
		}

		a.db = db
	})

	return a.db
}

// Available returns true if the durable store has been opened successfully.
// The first call triggers the open attempt.
func (a *Adapter) Available() bool {
	return a.open() != nil
}

// Get the value for the key. A missing key, an unavailable store and a failed
// transaction all resolve as a miss.
func (a *Adapter) Get(key string) ([]byte, bool) {
	db := a.open()
	if db == nil {
		return nil, false
	}

	txn, err := db.Transaction(objectStoreName, ReadOnly)
	if err != nil {
		logger.Logf(logger.Allow, "store", "get %s: %v", key, err)
		return nil, false
	}

	v, ok, err := txn.Get(key)
	if err != nil {
		logger.Logf(logger.Allow, "store", "get %s: %v", key, err)
		return nil, false
	}

	return v, ok
}

// Put the value for the key. A nil or empty value deletes the key. Failures
// resolve as a no-op.
func (a *Adapter) Put(key string, value []byte) {
	if len(value) == 0 {
		a.Delete(key)
		return
	}

	db := a.open()
	if db == nil {
		return
	}

	txn, err := db.Transaction(objectStoreName, ReadWrite)
	if err != nil {
		logger.Logf(logger.Allow, "store", "put %s: %v", key, err)
		return
	}

	if err := txn.Put(key, value); err != nil {
		logger.Logf(logger.Allow, "store", "put %s: %v", key, err)
	}
}

// Delete the key. Failures resolve as a no-op.
func (a *Adapter) Delete(key string) {
	db := a.open()
	if db == nil {
		return
	}

	txn, err := db.Transaction(objectStoreName, ReadWrite)
	if err != nil {
		logger.Logf(logger.Allow, "store", "delete %s: %v", key, err)
		return
	}

	if err := txn.Delete(key); err != nil {
		logger.Logf(logger.Allow, "store", "delete %s: %v", key, err)
	}
}
