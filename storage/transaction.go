// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
)

// Transaction - all-or-nothing group of pool writes
type Transaction interface {
	Abort()
	Begin() error
	Commit() error
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Purge(*PoolHandle, []byte)
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
}

type purgeItem struct {
	pool *PoolHandle
	key  []byte
}

// TransactionData - the single transaction over the database access
type TransactionData struct {
	sync.Mutex
	access Access
	purge  []purgeItem
}

func newTransaction(access Access) Transaction {
	return &TransactionData{
		access: access,
	}
}

// Begin - start staging writes
func (t *TransactionData) Begin() error {
	return t.access.Begin()
}

// Put - stage a key/value pair
func (t *TransactionData) Put(pool *PoolHandle, key []byte, value []byte) {
	pool.put(key, value)
}

// PutN - stage a big endian uint64 value
func (t *TransactionData) PutN(pool *PoolHandle, key []byte, value uint64) {
	pool.putN(key, value)
}

// Delete - stage removal of a key
func (t *TransactionData) Delete(pool *PoolHandle, key []byte) {
	pool.remove(key)
}

// Purge - stage removal of a key and compact its tables after commit
//
// used for data that must not stay recoverable from old table files
func (t *TransactionData) Purge(pool *PoolHandle, key []byte) {
	pool.remove(key)

	t.Lock()
	k := make([]byte, len(key))
	copy(k, key)
	t.purge = append(t.purge, purgeItem{pool: pool, key: k})
	t.Unlock()
}

// Commit - write everything staged since Begin
func (t *TransactionData) Commit() error {
	err := t.access.Commit()

	t.Lock()
	purge := t.purge
	t.purge = nil
	t.Unlock()

	if nil != err {
		return err
	}

	for _, item := range purge {
		if e := item.pool.compact(item.key); nil != e && nil != poolData.log {
			poolData.log.Warnf("compact key: %x  error: %s", item.key, e)
		}
	}
	return nil
}

// Abort - discard everything staged since Begin
func (t *TransactionData) Abort() {
	t.access.Abort()

	t.Lock()
	t.purge = nil
	t.Unlock()
}

// InUse - true between Begin and Commit/Abort
func (t *TransactionData) InUse() bool {
	return t.access.InUse()
}

// Get - read through the staged writes
func (t *TransactionData) Get(pool *PoolHandle, key []byte) []byte {
	return pool.Get(key)
}

// GetN - read a big endian uint64 through the staged writes
func (t *TransactionData) GetN(pool *PoolHandle, key []byte) (uint64, bool) {
	return pool.GetN(key)
}

// Has - check through the staged writes
func (t *TransactionData) Has(pool *PoolHandle, key []byte) bool {
	return pool.Has(key)
}
