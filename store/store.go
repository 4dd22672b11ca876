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

// Package store defines the boundary to the durable key-value store provided
// by the hosting environment, and an adapter that degrades gracefully when
// the store is absent or misbehaving.
//
// The store is a collaborator. Implementations of the Connector interface are
// supplied by the host application; this package never implements the store
// itself.
package store

// TransactionMode indicates whether a transaction intends to write.
type TransactionMode string

// List of valid TransactionMode values.
const (
	ReadOnly  TransactionMode = "readonly"
	ReadWrite TransactionMode = "readwrite"
)

// Connector represents the durable store API made available by the hosting
// environment. A nil Connector means the API does not exist in this
// environment, which is a supported degraded mode and not an error.
type Connector interface {
	// Open the named database, creating it if necessary.
	Open(name string, version int) (Database, error)
}

// Database is an open handle to the durable store.
type Database interface {
	// Contains returns true if the named object store exists in the database.
	Contains(name string) bool

	// CreateObjectStore creates the named object store.
	CreateObjectStore(name string) error

	// Transaction begins a transaction over the named object store.
	Transaction(name string, mode TransactionMode) (Transaction, error)
}

// Transaction provides access to the keys of one object store. Each
// Transaction is independent; the adapter never holds one open across calls.
type Transaction interface {
	// Get the value for the key. The second return value is false if the key
	// is not present.
	Get(key string) ([]byte, bool, error)

	// Put the value for the key, replacing any existing value.
	Put(key string, value []byte) error

	// Delete the key.
	Delete(key string) error
}
