// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/storage/mocks"
)

const (
	dbName     = "data-access"
	defaultKey = "key"
)

var (
	defaultValue = []byte{'a'}
)

func openTestDB(t *testing.T) *leveldb.DB {
	removeDir(dbName)
	db, err := leveldb.OpenFile(dbName, nil)
	if nil != err {
		t.Fatalf("open test database error: %s", err)
	}
	return db
}

func removeDir(dirName string) {
	dirPath, _ := filepath.Abs(dirName)
	_ = os.RemoveAll(dirPath)
}

func teardownTestDataAccess(db *leveldb.DB) {
	_ = db.Close()
	removeDir(dbName)
}

func TestBeginShouldErrorWhenAlreadyInTransaction(t *testing.T) {
	db := openTestDB(t)
	defer teardownTestDataAccess(db)

	da := newDA(db, new(leveldb.Batch), newCache())

	err := da.Begin()
	assert.Nil(t, err, "first time Begin should not error")
	assert.True(t, da.InUse(), "wrong in use state")

	err = da.Begin()
	assert.Equal(t, fault.ErrTransactionInUse, err, "second Begin should error")

	da.Abort()
	assert.False(t, da.InUse(), "abort must release the batch")
}

func TestGetShouldReadCacheFirst(t *testing.T) {
	db := openTestDB(t)
	defer teardownTestDataAccess(db)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mockCache := mocks.NewMockCache(ctl)
	mockCache.EXPECT().Get(defaultKey).Return(dbPut, defaultValue, true).Times(1)

	da := newDA(db, new(leveldb.Batch), mockCache)
	value, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, defaultValue, value, "wrong value")
}

func TestGetShouldHonourStagedDelete(t *testing.T) {
	db := openTestDB(t)
	defer teardownTestDataAccess(db)

	err := db.Put([]byte(defaultKey), defaultValue, nil)
	assert.Nil(t, err, "seed database")

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mockCache := mocks.NewMockCache(ctl)
	mockCache.EXPECT().Set(dbDelete, defaultKey, gomock.Nil()).Times(1)
	mockCache.EXPECT().Get(defaultKey).Return(dbDelete, nil, true).Times(2)

	da := newDA(db, new(leveldb.Batch), mockCache)
	da.Delete([]byte(defaultKey))

	_, err = da.Get([]byte(defaultKey))
	assert.Equal(t, leveldb.ErrNotFound, err, "staged delete must hide committed value")

	found, err := da.Has([]byte(defaultKey))
	assert.Nil(t, err, "wrong error")
	assert.False(t, found, "staged delete must hide committed key")
}

func TestCommitShouldWriteBatchAndClearCache(t *testing.T) {
	db := openTestDB(t)
	defer teardownTestDataAccess(db)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mockCache := mocks.NewMockCache(ctl)
	mockCache.EXPECT().Set(dbPut, defaultKey, defaultValue).Times(1)
	mockCache.EXPECT().Clear().Times(1)

	da := newDA(db, new(leveldb.Batch), mockCache)
	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)

	err := da.Commit()
	assert.Nil(t, err, "wrong commit error")
	assert.False(t, da.InUse(), "commit must release the batch")

	value, err := db.Get([]byte(defaultKey), nil)
	assert.Nil(t, err, "committed value missing")
	assert.Equal(t, defaultValue, value, "wrong committed value")
}

func TestAbortShouldDropBatch(t *testing.T) {
	db := openTestDB(t)
	defer teardownTestDataAccess(db)

	da := newDA(db, new(leveldb.Batch), newCache())
	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)

	value, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "staged value missing")
	assert.Equal(t, defaultValue, value, "wrong staged value")

	da.Abort()

	_, err = da.Get([]byte(defaultKey))
	assert.Equal(t, leveldb.ErrNotFound, err, "aborted value must not be visible")

	_, err = db.Get([]byte(defaultKey), nil)
	assert.Equal(t, leveldb.ErrNotFound, err, "aborted value must not be written")
}
