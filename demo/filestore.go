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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/saveport/store"
)

// fileConnector is a host-side implementation of the durable store: one
// directory per object store, one JSON file per key. Provided by the demo
// because the saveport library never implements the store itself.
type fileConnector struct {
	root string
}

func (c *fileConnector) Open(name string, version int) (store.Database, error) {
	path := filepath.Join(c.root, fmt.Sprintf("%s-v%d", name, version))
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	return &fileDatabase{path: path}, nil
}

type fileDatabase struct {
	path string
}

func (db *fileDatabase) Contains(name string) bool {
	fi, err := os.Stat(filepath.Join(db.path, name))
	return err == nil && fi.IsDir()
}

func (db *fileDatabase) CreateObjectStore(name string) error {
	return os.MkdirAll(filepath.Join(db.path, name), 0700)
}

func (db *fileDatabase) Transaction(name string, mode store.TransactionMode) (store.Transaction, error) {
	path := filepath.Join(db.path, name)
	if fi, err := os.Stat(path); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("no such object store (%s)", name)
	}
	return &fileTransaction{path: path}, nil
}

type fileTransaction struct {
	path string
}

// keys can contain characters that are awkward in filenames
func (txn *fileTransaction) filename(key string) string {
	r := strings.NewReplacer("/", "_", string(filepath.Separator), "_")
	return filepath.Join(txn.path, fmt.Sprintf("%s.json", r.Replace(key)))
}

func (txn *fileTransaction) Get(key string) ([]byte, bool, error) {
	d, err := os.ReadFile(txn.filename(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return d, true, nil
}

func (txn *fileTransaction) Put(key string, value []byte) error {
	return os.WriteFile(txn.filename(key), value, 0600)
}

func (txn *fileTransaction) Delete(key string) error {
	err := os.Remove(txn.filename(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
