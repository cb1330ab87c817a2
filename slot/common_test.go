// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/diaryd/account"
	"github.com/bitmark-inc/diaryd/slot"
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

func setup(t *testing.T) {
	_ = os.RemoveAll(databaseFileName)
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown() {
	storage.Finalise()
	_ = os.RemoveAll(databaseFileName)
}

func handles() slot.Handles {
	return slot.Handles{
		Slots:    storage.Pool.Slots,
		Balances: storage.Pool.Balances,
	}
}

// a fresh key pair and its slot address
func newKey(t *testing.T) slot.Address {
	prv, err := account.NewPrivateKey(true)
	if nil != err {
		t.Fatalf("generate key error: %s", err)
	}
	a, err := slot.AddressFromAccount(prv.Account())
	if nil != err {
		t.Fatalf("address from account error: %s", err)
	}
	return a
}

// begin a transaction and a store signed by the given addresses
func begin(t *testing.T, signers ...slot.Address) (storage.Transaction, *slot.Store) {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin transaction error: %s", err)
	}
	return trx, slot.New(trx, handles(), slot.NewSigners(signers...))
}
