// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
)

var _ database.Iterator = (*iterator)(nil)

type iterator struct {
	db      *Database
	iter    *pebble.Iterator
	started bool
	valid   bool
	err     error
}

// NewIteratorWithPrefix iterates over every key starting with [prefix] in
// ascending order.
func (db *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return &database.IteratorError{Err: ErrClosed}
	}
	iter, err := db.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return &database.IteratorError{Err: err}
	}
	return &iterator{db: db, iter: iter}
}

func (it *iterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		it.valid = it.iter.First()
	} else {
		it.valid = it.iter.Next()
	}
	if !it.valid {
		it.err = it.iter.Error()
	}
	return it.valid
}

func (it *iterator) Error() error {
	return it.err
}

func (it *iterator) Key() []byte {
	if !it.valid {
		return nil
	}
	return copyBytes(it.iter.Key())
}

func (it *iterator) Value() []byte {
	if !it.valid {
		return nil
	}
	return copyBytes(it.iter.Value())
}

func (it *iterator) Release() {
	if it.iter == nil {
		return
	}
	if err := it.iter.Close(); err != nil && it.err == nil {
		it.err = err
	}
	it.iter = nil
	it.valid = false
}

// prefixUpperBound returns the smallest key greater than every key with
// [prefix], or nil when no such key exists.
func prefixUpperBound(prefix []byte) []byte {
	upper := copyBytes(prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return upper[:i+1]
		}
	}
	return nil
}
