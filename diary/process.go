// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diary

import (
	"github.com/bitmark-inc/diaryd/account"
	"github.com/bitmark-inc/diaryd/directory"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/instruction"
	"github.com/bitmark-inc/diaryd/slot"
	"github.com/bitmark-inc/diaryd/storage"
)

// Process - run one packed instruction
//
// all of its changes are committed together or none are
func Process(packed instruction.Packed) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	in, n, err := packed.Unpack(globalData.testnet)
	if nil != err {
		return err
	}
	if n != len(packed) {
		return fault.ErrNotInstructionPack
	}

	signers, err := signerSet(in.Signers())
	if nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	engine := NewEngine(slot.New(trx, globalData.handles, signers), globalData.log)

	err = dispatch(engine, in)
	if nil != err {
		trx.Abort()
		globalData.log.Warnf("instruction: %T  error: %s", in, err)
		return err
	}

	return trx.Commit()
}

func dispatch(engine *Engine, in instruction.Instruction) error {
	switch tx := in.(type) {

	case *instruction.CreateDiary:
		authority, err := slot.AddressFromAccount(tx.Authority)
		if nil != err {
			return err
		}
		_, err = engine.CreateDiary(authority, tx.ID, tx.Name)
		return err

	case *instruction.AddRecord:
		authority, err := slot.AddressFromAccount(tx.Authority)
		if nil != err {
			return err
		}
		recordAddress, err := slot.AddressFromAccount(tx.Slot)
		if nil != err {
			return err
		}
		return engine.AddRecord(authority, tx.ID, recordAddress, tx.Text, tx.Offset)

	case *instruction.RemoveRecord:
		authority, err := slot.AddressFromAccount(tx.Authority)
		if nil != err {
			return err
		}
		recordAddress, err := slot.AddressFromAccount(tx.Slot)
		if nil != err {
			return err
		}
		return engine.RemoveRecord(authority, tx.ID, recordAddress)

	case *instruction.AllocateSlot:
		address, err := slot.AddressFromAccount(tx.Slot)
		if nil != err {
			return err
		}
		return engine.AllocateSlot(address, tx.Capacity, tx.Deposit)

	default:
		return fault.ErrNotInstructionPack
	}
}

// the addresses of accounts whose signatures were verified by unpack
func signerSet(accounts []*account.Account) (slot.Signers, error) {
	addresses := make([]slot.Address, 0, len(accounts))
	for _, acc := range accounts {
		a, err := slot.AddressFromAccount(acc)
		if nil != err {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return slot.NewSigners(addresses...), nil
}

// ReadDiary - committed state of a directory
func ReadDiary(owner slot.Address, id uint32) (*directory.Directory, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.ErrNotInitialised
	}
	return NewEngine(slot.NewReader(globalData.handles), nil).Diary(owner, id)
}

// ReadRecord - committed text of a record slot
func ReadRecord(address slot.Address) (string, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return "", fault.ErrNotInitialised
	}
	return NewEngine(slot.NewReader(globalData.handles), nil).Record(address)
}

// Balance - committed refunds of an address
func Balance(address slot.Address) (uint64, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.ErrNotInitialised
	}
	return NewEngine(slot.NewReader(globalData.handles), nil).Balance(address), nil
}
