// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/diaryd/constants"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/slot"
	"github.com/bitmark-inc/diaryd/storage"
)

func TestAllocateWriteRead(t *testing.T) {
	setup(t)
	defer teardown()

	address := newKey(t)

	trx, store := begin(t, address)
	h, err := store.Allocate(address, 100, 5000)
	assert.Nil(t, err, "allocate")
	assert.Equal(t, slot.Keypair, h.Kind(), "wrong kind")
	assert.Equal(t, uint64(100), h.Capacity(), "wrong capacity")
	assert.Equal(t, 0, len(h.Read()), "new slot has data")

	err = h.Write([]byte("hello"))
	assert.Nil(t, err, "write")

	err = h.Write(bytes.Repeat([]byte{'x'}, 101))
	assert.Equal(t, fault.ErrCapacityExceeded, err, "write past capacity")

	_, err = store.Allocate(address, 100, 5000)
	assert.Equal(t, fault.ErrAlreadyExists, err, "second allocate")

	err = trx.Commit()
	assert.Nil(t, err, "commit")

	reader := slot.NewReader(handles())
	h, err = reader.Open(address)
	assert.Nil(t, err, "open")
	assert.Equal(t, []byte("hello"), h.Read(), "wrong data")
	assert.Equal(t, uint64(5000), h.Deposit(), "wrong deposit")

	err = h.Write([]byte("nope"))
	assert.Equal(t, fault.ErrReadOnly, err, "reader wrote")
}

func TestAllocateRequiresSignature(t *testing.T) {
	setup(t)
	defer teardown()

	address := newKey(t)
	other := newKey(t)

	trx, store := begin(t, other)
	defer trx.Abort()

	_, err := store.Allocate(address, 100, 0)
	assert.Equal(t, fault.ErrMissingSignature, err, "unsigned allocate")

	_, err = store.Allocate(other, constants.MaxSlotSize+1, 0)
	assert.Equal(t, fault.ErrCapacityExceeded, err, "oversized allocate")

	_, err = store.Allocate(other, 0, 0)
	assert.Equal(t, fault.ErrCapacityExceeded, err, "empty allocate")
}

func TestWriteRequiresSignature(t *testing.T) {
	setup(t)
	defer teardown()

	address := newKey(t)

	trx, store := begin(t, address)
	_, err := store.Allocate(address, 10, 0)
	assert.Nil(t, err, "allocate")
	err = trx.Commit()
	assert.Nil(t, err, "commit")

	trx, store = begin(t)
	defer trx.Abort()

	h, err := store.Open(address)
	assert.Nil(t, err, "open")

	err = h.Write([]byte("x"))
	assert.Equal(t, fault.ErrMissingSignature, err, "unsigned write")

	err = store.Close(h, address)
	assert.Equal(t, fault.ErrMissingSignature, err, "unsigned close")
}

func TestDerivedSlot(t *testing.T) {
	setup(t)
	defer teardown()

	owner := newKey(t)
	seeds := [][]byte{owner.Bytes(), []byte("diary"), []byte("7")}

	trx, store := begin(t, owner)
	h, err := store.CreateDerived(owner, seeds, constants.DirectorySize, 10)
	assert.Nil(t, err, "create derived")
	assert.Equal(t, slot.Derived, h.Kind(), "wrong kind")

	expected, bump, err := slot.Derive(seeds)
	assert.Nil(t, err, "derive")
	assert.Equal(t, expected, h.Address(), "wrong address")
	assert.Equal(t, bump, h.Bump(), "wrong nonce")

	_, err = store.CreateDerived(owner, seeds, constants.DirectorySize, 10)
	assert.Equal(t, fault.ErrAlreadyExists, err, "second create")

	_, err = store.CreateDerived(owner, [][]byte{[]byte("big")}, constants.MaxDerivedSlotSize+1, 0)
	assert.Equal(t, fault.ErrCapacityExceeded, err, "oversized derived slot")

	err = h.Write([]byte("directory"))
	assert.Nil(t, err, "write")

	err = trx.Commit()
	assert.Nil(t, err, "commit")

	trx, store = begin(t)
	defer trx.Abort()

	h, err = store.OpenDerived(owner, seeds, bump)
	assert.Nil(t, err, "open derived")
	assert.Equal(t, []byte("directory"), h.Read(), "wrong data")

	err = h.Write([]byte("changed"))
	assert.Equal(t, fault.ErrNotOwner, err, "write without owner")

	// a different nonce either is not a derived address or names an empty slot
	var expectedErr error = fault.ErrAddressMismatch
	if _, e := slot.CreateAddress(seeds, bump-1); nil != e {
		expectedErr = fault.ErrBadNonce
	}
	_, err = store.OpenDerived(owner, seeds, bump-1)
	assert.Equal(t, expectedErr, err, "wrong nonce accepted")

	_, err = store.OpenDerived(newKey(t), seeds, bump)
	assert.Equal(t, fault.ErrAddressMismatch, err, "wrong owner accepted")

	_, err = store.Open(h.Address())
	assert.Equal(t, fault.ErrSlotNotFound, err, "derived slot opened as keypair")
}

func TestCloseRefundsAndWipes(t *testing.T) {
	setup(t)
	defer teardown()

	owner := newKey(t)
	address := newKey(t)

	trx, store := begin(t, owner, address)
	h, err := store.Allocate(address, 64, 1234)
	assert.Nil(t, err, "allocate")
	err = h.Write([]byte("secret text"))
	assert.Nil(t, err, "write")
	err = trx.Commit()
	assert.Nil(t, err, "commit")

	trx, store = begin(t, owner, address)
	h, err = store.Open(address)
	assert.Nil(t, err, "open")

	err = store.Close(h, owner)
	assert.Nil(t, err, "close")
	assert.Equal(t, make([]byte, len("secret text")), h.Read(), "data not zeroed")
	assert.Equal(t, uint64(1234), store.Balance(owner), "deposit not refunded")

	err = h.Write([]byte("again"))
	assert.Equal(t, fault.ErrSlotClosed, err, "write after close")

	err = trx.Commit()
	assert.Nil(t, err, "commit")

	reader := slot.NewReader(handles())
	_, err = reader.Open(address)
	assert.Equal(t, fault.ErrSlotNotFound, err, "closed slot still present")
	assert.False(t, storage.Pool.Slots.Has(address.Bytes()), "closed slot key still present")
	assert.Equal(t, uint64(1234), reader.Balance(owner), "refund not committed")
}

func TestAbortDiscardsAllocation(t *testing.T) {
	setup(t)
	defer teardown()

	address := newKey(t)

	trx, store := begin(t, address)
	_, err := store.Allocate(address, 10, 1)
	assert.Nil(t, err, "allocate")
	trx.Abort()

	_, err = slot.NewReader(handles()).Open(address)
	assert.Equal(t, fault.ErrSlotNotFound, err, "aborted slot present")
}

func TestOpenDetectsDamagedRow(t *testing.T) {
	setup(t)
	defer teardown()

	address := newKey(t)

	trx, store := begin(t, address)
	h, err := store.Allocate(address, 100, 0)
	assert.Nil(t, err, "allocate")
	err = h.Write([]byte("dear diary"))
	assert.Nil(t, err, "write")
	err = trx.Commit()
	assert.Nil(t, err, "commit")

	// flip one data bit directly in the pool
	raw := storage.Pool.Slots.Get(address[:])
	raw[len(raw)-1] ^= 0x01
	trx, err = storage.NewDBTransaction()
	assert.Nil(t, err, "begin")
	trx.Put(storage.Pool.Slots, address[:], raw)
	err = trx.Commit()
	assert.Nil(t, err, "commit damaged row")

	_, err = slot.NewReader(handles()).Open(address)
	assert.Equal(t, fault.ErrChecksumMismatch, err, "damaged row accepted")
}
