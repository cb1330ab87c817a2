// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/diaryd/fault"
)

// FetchCursor - resumable scan over the committed keys of one pool
//
// pending transaction data is not visible
type FetchCursor struct {
	pool     *PoolHandle
	maxRange ldb_util.Range
}

// NewFetchCursor - initialise a cursor to the start of the pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: ldb_util.Range{
			Start: []byte{p.prefix}, // included
			Limit: p.limit,          // excluded
		},
	}
}

// Seek - move cursor to a specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return up to count elements and advance past the last one
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if cursor == nil {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.scan(func(e Element) bool {
		results = append(results, e)
		return len(results) < count
	})

	// the next possible key is the last key with a zero byte appended
	if n := len(results); n > 0 {
		cursor.maxRange.Start = append(cursor.pool.prefixKey(results[n-1].Key), 0x00)
	}
	return results, err
}

// Map - run a function on all remaining elements, stopping at the first error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if cursor == nil {
		return fault.ErrInvalidCursor
	}

	var err error
	scanErr := cursor.scan(func(e Element) bool {
		err = f(e.Key, e.Value)
		return nil == err
	})
	if nil != err {
		return err
	}
	return scanErr
}

// feed copies of each element to more until it returns false
func (cursor *FetchCursor) scan(more func(Element) bool) error {
	if nil == cursor.pool.dataAccess {
		return nil
	}

	iter := cursor.pool.dataAccess.Iterator(&cursor.maxRange)
	defer iter.Release()

	for iter.Next() {
		// iterator slices are only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		e := Element{
			Key:   make([]byte, len(key)-1), // strip the pool prefix
			Value: make([]byte, len(value)),
		}
		copy(e.Key, key[1:])
		copy(e.Value, value)

		if !more(e) {
			break
		}
	}
	return iter.Error()
}
