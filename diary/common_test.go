// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diary_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/diaryd/account"
	"github.com/bitmark-inc/diaryd/diary"
	"github.com/bitmark-inc/diaryd/slot"
	"github.com/bitmark-inc/diaryd/storage"
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

func setup(t *testing.T) {
	_ = os.RemoveAll(databaseFileName)
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	err = diary.Initialise(true)
	if nil != err {
		t.Fatalf("diary initialise error: %s", err)
	}
}

func teardown() {
	_ = diary.Finalise()
	storage.Finalise()
	_ = os.RemoveAll(databaseFileName)
}

func handles() slot.Handles {
	return slot.Handles{
		Slots:    storage.Pool.Slots,
		Balances: storage.Pool.Balances,
	}
}

type key struct {
	private *account.PrivateKey
	address slot.Address
}

func newKey(t *testing.T) key {
	prv, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("generate key error: %s", err)
	}
	a, err := slot.AddressFromAccount(prv.Account())
	if nil != err {
		t.Fatalf("address from account error: %s", err)
	}
	return key{
		private: prv,
		address: a,
	}
}

// run f as one invocation: commit on success, abort on error
func run(t *testing.T, f func(e *diary.Engine) error, signers ...key) error {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin transaction error: %s", err)
	}

	addresses := make([]slot.Address, 0, len(signers))
	for _, k := range signers {
		addresses = append(addresses, k.address)
	}
	e := diary.NewEngine(slot.New(trx, handles(), slot.NewSigners(addresses...)), nil)

	err = f(e)
	if nil != err {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
	return nil
}

// committed text of a record
func readRecord(t *testing.T, address slot.Address) string {
	text, err := diary.ReadRecord(address)
	if nil != err {
		t.Fatalf("read record: %s  error: %s", address, err)
	}
	return text
}

// committed reference list of a directory
func readRefs(t *testing.T, owner slot.Address, id uint32) []slot.Address {
	d, err := diary.ReadDiary(owner, id)
	if nil != err {
		t.Fatalf("read diary: %d  error: %s", id, err)
	}
	return d.Records
}

// create a diary and allocate a record slot
func prepare(t *testing.T, owner key, id uint32, capacity uint64) key {
	r := newKey(t)
	err := run(t, func(e *diary.Engine) error {
		if _, err := e.CreateDiary(owner.address, id, "test"); nil != err {
			return err
		}
		return e.AllocateSlot(r.address, capacity, 100)
	}, owner, r)
	if nil != err {
		t.Fatalf("prepare error: %s", err)
	}
	return r
}

// one AddRecord invocation signed by owner and slot
func add(t *testing.T, owner key, id uint32, r key, text string, offset uint32) error {
	return run(t, func(e *diary.Engine) error {
		return e.AddRecord(owner.address, id, r.address, text, offset)
	}, owner, r)
}
