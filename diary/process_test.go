// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/diaryd/diary"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/instruction"
	"github.com/bitmark-inc/diaryd/slot"
)

func packAllocate(t *testing.T, r key, capacity uint64, deposit uint64) instruction.Packed {
	in := instruction.AllocateSlot{
		Slot:     r.private.Account(),
		Capacity: capacity,
		Deposit:  deposit,
	}
	if err := in.Sign(r.private); nil != err {
		t.Fatalf("sign error: %s", err)
	}
	packed, err := in.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	return packed
}

func packCreate(t *testing.T, owner key, id uint32, name string) instruction.Packed {
	in := instruction.CreateDiary{
		Authority: owner.private.Account(),
		ID:        id,
		Name:      name,
	}
	if err := in.Sign(owner.private); nil != err {
		t.Fatalf("sign error: %s", err)
	}
	packed, err := in.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	return packed
}

func packAdd(t *testing.T, owner key, id uint32, r key, text string, offset uint32) instruction.Packed {
	in := instruction.AddRecord{
		Authority: owner.private.Account(),
		ID:        id,
		Slot:      r.private.Account(),
		Text:      text,
		Offset:    offset,
	}
	if err := in.Sign(owner.private, r.private); nil != err {
		t.Fatalf("sign error: %s", err)
	}
	packed, err := in.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	return packed
}

func packRemove(t *testing.T, owner key, id uint32, r key) instruction.Packed {
	in := instruction.RemoveRecord{
		Authority: owner.private.Account(),
		ID:        id,
		Slot:      r.private.Account(),
	}
	if err := in.Sign(owner.private, r.private); nil != err {
		t.Fatalf("sign error: %s", err)
	}
	packed, err := in.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	return packed
}

func TestProcessLifecycle(t *testing.T) {
	setup(t)
	defer teardown()

	owner := newKey(t)
	r := newKey(t)

	steps := []instruction.Packed{
		packCreate(t, owner, 9, "journal"),
		packAllocate(t, r, 1000, 250),
		packAdd(t, owner, 9, r, "AAAAAAAAAA", 0),
		packAdd(t, owner, 9, r, "BB", 2),
	}
	for i, packed := range steps {
		err := diary.Process(packed)
		assert.Nil(t, err, "step: %d", i)
	}

	d, err := diary.ReadDiary(owner.address, 9)
	assert.Nil(t, err, "read diary")
	assert.Equal(t, "journal", d.Name, "wrong name")
	assert.Equal(t, []slot.Address{r.address}, d.Records, "wrong refs")
	assert.Equal(t, "AABBAAAAAA", readRecord(t, r.address), "wrong text")

	err = diary.Process(packRemove(t, owner, 9, r))
	assert.Nil(t, err, "remove")

	assert.Equal(t, 0, len(readRefs(t, owner.address, 9)), "still referenced")
	_, err = diary.ReadRecord(r.address)
	assert.Equal(t, fault.ErrSlotNotFound, err, "slot still allocated")

	balance, err := diary.Balance(owner.address)
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint64(250), balance, "deposit not refunded")

	// removing again is a no-op
	err = diary.Process(packRemove(t, owner, 9, r))
	assert.Nil(t, err, "second remove")
}

func TestProcessRollback(t *testing.T) {
	setup(t)
	defer teardown()

	owner := newKey(t)
	r := newKey(t)

	for _, packed := range []instruction.Packed{
		packCreate(t, owner, 1, "small"),
		packAllocate(t, r, 20, 1),
		packAdd(t, owner, 1, r, "0123456789", 0),
	} {
		err := diary.Process(packed)
		assert.Nil(t, err, "prepare")
	}

	err := diary.Process(packAdd(t, owner, 1, r, "overflowing text", 5))
	assert.Equal(t, fault.ErrRecordTooLarge, err, "oversized patch")

	assert.Equal(t, "0123456789", readRecord(t, r.address), "record changed")
	assert.Equal(t, []slot.Address{r.address}, readRefs(t, owner.address, 1), "refs changed")

	// the failed invocation left no transaction open
	err = diary.Process(packAdd(t, owner, 1, r, "ab", 0))
	assert.Nil(t, err, "following patch")
	assert.Equal(t, "ab23456789", readRecord(t, r.address), "wrong text")
}

func TestProcessRejectsBadPacks(t *testing.T) {
	setup(t)
	defer teardown()

	owner := newKey(t)

	packed := packCreate(t, owner, 1, "x")

	tampered := append(instruction.Packed{}, packed...)
	tampered[len(tampered)-1] ^= 0xff
	err := diary.Process(tampered)
	assert.Equal(t, fault.ErrInvalidSignature, err, "tampered signature")

	err = diary.Process(append(append(instruction.Packed{}, packed...), 0x00))
	assert.Equal(t, fault.ErrNotInstructionPack, err, "trailing bytes")

	err = diary.Process(instruction.Packed{})
	assert.Equal(t, fault.ErrNotInstructionPack, err, "empty pack")

	_, err = diary.ReadDiary(owner.address, 1)
	assert.Equal(t, fault.ErrAddressMismatch, err, "diary created by bad pack")

	err = diary.Process(packed)
	assert.Nil(t, err, "good pack")
}

func TestProcessNameTooLong(t *testing.T) {
	setup(t)
	defer teardown()

	owner := newKey(t)

	err := diary.Process(packCreate(t, owner, 3, "a name of twenty chr"))
	assert.Equal(t, fault.ErrNameTooLong, err, "long name")
}

func TestNotInitialised(t *testing.T) {
	err := diary.Process(instruction.Packed{0x01})
	assert.Equal(t, fault.ErrNotInitialised, err, "process")

	_, err = diary.ReadRecord(slot.Address{})
	assert.Equal(t, fault.ErrNotInitialised, err, "read")
}
