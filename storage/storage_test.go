// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/storage"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName   = "testing"
	databaseFileName = "test.leveldb"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown() {
	storage.Finalise()
	removeFiles()
}

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName)
}

func TestCommitIsVisible(t *testing.T) {
	setup(t)
	defer teardown()

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin transaction")

	pool := storage.Pool.TestData
	trx.Put(pool, []byte("key-one"), []byte("data-one"))
	trx.PutN(pool, []byte("key-two"), 1234)

	assert.Equal(t, []byte("data-one"), trx.Get(pool, []byte("key-one")), "staged write not visible")
	assert.True(t, trx.Has(pool, []byte("key-one")), "staged key not present")

	err = trx.Commit()
	assert.Nil(t, err, "commit")

	assert.Equal(t, []byte("data-one"), pool.Get([]byte("key-one")), "committed write not visible")
	n, found := pool.GetN([]byte("key-two"))
	assert.True(t, found, "committed number missing")
	assert.Equal(t, uint64(1234), n, "wrong committed number")
}

func TestAbortRollsBack(t *testing.T) {
	setup(t)
	defer teardown()

	pool := storage.Pool.TestData

	trx, _ := storage.NewDBTransaction()
	trx.Put(pool, []byte("kept"), []byte("before"))
	_ = trx.Commit()

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin second transaction")

	trx.Put(pool, []byte("kept"), []byte("after"))
	trx.Put(pool, []byte("fresh"), []byte("value"))
	trx.Delete(pool, []byte("kept"))
	assert.Nil(t, trx.Get(pool, []byte("kept")), "staged delete not visible")

	trx.Abort()

	assert.Equal(t, []byte("before"), pool.Get([]byte("kept")), "abort changed committed value")
	assert.False(t, pool.Has([]byte("fresh")), "abort left a staged key")
}

func TestSingleTransaction(t *testing.T) {
	setup(t)
	defer teardown()

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin transaction")
	assert.True(t, trx.InUse(), "transaction not in use")

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.ErrTransactionInUse, err, "second transaction allowed")

	trx.Abort()
	assert.False(t, trx.InUse(), "transaction still in use")

	_, err = storage.NewDBTransaction()
	assert.Nil(t, err, "transaction not reusable after abort")
}

func TestPurge(t *testing.T) {
	setup(t)
	defer teardown()

	pool := storage.Pool.TestData

	trx, _ := storage.NewDBTransaction()
	trx.Put(pool, []byte("secret"), []byte("plain text"))
	_ = trx.Commit()

	trx, _ = storage.NewDBTransaction()
	trx.Purge(pool, []byte("secret"))
	err := trx.Commit()
	assert.Nil(t, err, "commit purge")

	assert.False(t, pool.Has([]byte("secret")), "purged key still present")
}

func TestCursor(t *testing.T) {
	setup(t)
	defer teardown()

	pool := storage.Pool.TestData

	trx, _ := storage.NewDBTransaction()
	for _, k := range []string{"key-a", "key-b", "key-c"} {
		trx.Put(pool, []byte(k), []byte("data-"+k))
	}
	_ = trx.Commit()

	cursor := pool.NewFetchCursor()
	first, err := cursor.Fetch(2)
	assert.Nil(t, err, "first fetch")
	assert.Equal(t, 2, len(first), "wrong first count")
	assert.Equal(t, []byte("key-a"), first[0].Key, "wrong first key")

	second, err := cursor.Fetch(2)
	assert.Nil(t, err, "second fetch")
	assert.Equal(t, 1, len(second), "wrong second count")
	assert.Equal(t, []byte("data-key-c"), second[0].Value, "wrong last value")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count accepted")
}
