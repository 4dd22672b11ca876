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

package store_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/saveport/store"
	"github.com/jetsetilly/saveport/test"
)

// memoryConnector is a minimal in-memory implementation of the durable store
// collaborator.
type memoryConnector struct {
	openCount int
	failOpen  bool
	db        *memoryDatabase
}

func (c *memoryConnector) Open(name string, version int) (store.Database, error) {
	c.openCount++
	if c.failOpen {
		return nil, errors.New("open failure")
	}
	if c.db == nil {
		c.db = &memoryDatabase{stores: make(map[string]map[string][]byte)}
	}
	return c.db, nil
}

type memoryDatabase struct {
	stores  map[string]map[string][]byte
	failTxn bool
}

func (db *memoryDatabase) Contains(name string) bool {
	_, ok := db.stores[name]
	return ok
}

func (db *memoryDatabase) CreateObjectStore(name string) error {
	db.stores[name] = make(map[string][]byte)
	return nil
}

func (db *memoryDatabase) Transaction(name string, mode store.TransactionMode) (store.Transaction, error) {
	if db.failTxn {
		return nil, errors.New("transaction failure")
	}
	os, ok := db.stores[name]
	if !ok {
		return nil, errors.New("no such object store")
	}
	return &memoryTransaction{objectStore: os}, nil
}

type memoryTransaction struct {
	objectStore map[string][]byte
}

func (txn *memoryTransaction) Get(key string) ([]byte, bool, error) {
	v, ok := txn.objectStore[key]
	return v, ok, nil
}

func (txn *memoryTransaction) Put(key string, value []byte) error {
	txn.objectStore[key] = value
	return nil
}

func (txn *memoryTransaction) Delete(key string) error {
	delete(txn.objectStore, key)
	return nil
}

func TestNilConnector(t *testing.T) {
	a := store.NewAdapter(nil)
	test.ExpectSuccess(t, !a.Available())

	// get on an unavailable store is a miss, not an error
	_, ok := a.Get("key")
	test.ExpectSuccess(t, !ok)

	// put and delete are no-ops
	a.Put("key", []byte{1})
	a.Delete("key")
}

func TestOpenIsMemoised(t *testing.T) {
	c := &memoryConnector{}
	a := store.NewAdapter(c)

	test.ExpectSuccess(t, a.Available())
	a.Put("key", []byte{1})
	_, _ = a.Get("key")
	test.ExpectSuccess(t, a.Available())

	// only one open attempt regardless of the number of operations
	test.ExpectEquality(t, c.openCount, 1)
}

func TestFailedOpenIsMemoised(t *testing.T) {
	c := &memoryConnector{failOpen: true}
	a := store.NewAdapter(c)

	test.ExpectSuccess(t, !a.Available())
	test.ExpectSuccess(t, !a.Available())
	test.ExpectEquality(t, c.openCount, 1)
}

func TestGetPutDelete(t *testing.T) {
	a := store.NewAdapter(&memoryConnector{})

	// miss before any write
	_, ok := a.Get("key")
	test.ExpectSuccess(t, !ok)

	a.Put("key", []byte{1, 2, 3})
	v, ok := a.Get("key")
	test.ExpectSuccess(t, ok)
	test.DemandEquality(t, len(v), 3)

	a.Delete("key")
	_, ok = a.Get("key")
	test.ExpectSuccess(t, !ok)
}

func TestPutNilDeletes(t *testing.T) {
	a := store.NewAdapter(&memoryConnector{})

	a.Put("key", []byte{1, 2, 3})
	_, ok := a.Get("key")
	test.ExpectSuccess(t, ok)

	// a put of nil is a delete
	a.Put("key", nil)
	_, ok = a.Get("key")
	test.ExpectSuccess(t, !ok)
}

func TestTransactionFailureIsAMiss(t *testing.T) {
	c := &memoryConnector{}
	a := store.NewAdapter(c)

	a.Put("key", []byte{1})

	// break the database underneath the adapter
	c.db.failTxn = true

	_, ok := a.Get("key")
	test.ExpectSuccess(t, !ok)

	// writes degrade to no-ops
	a.Put("key2", []byte{2})
	a.Delete("key")
}
