// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diary

import (
	"unicode/utf8"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/diaryd/directory"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/record"
	"github.com/bitmark-inc/diaryd/slot"
)

// DirectoryDeposit - value locked in a directory slot
const DirectoryDeposit = 0

// Engine - diary operations on one slot store
type Engine struct {
	store *slot.Store
	log   *logger.L
}

// NewEngine - create an engine, log may be nil
func NewEngine(store *slot.Store, log *logger.L) *Engine {
	return &Engine{
		store: store,
		log:   log,
	}
}

// CreateDiary - allocate an empty directory for the authority
func (e *Engine) CreateDiary(authority slot.Address, id uint32, name string) (*directory.Directory, error) {
	if err := directory.ValidName(name); nil != err {
		return nil, err
	}

	d, err := directory.Create(e.store, authority, id, name, DirectoryDeposit)
	if nil != err {
		return nil, err
	}

	e.debugf("create: owner: %s  id: %d  address: %s  bump: %d", authority, id, d.Address(), d.Bump)
	return d.Directory, nil
}

// AddRecord - write text at offset into a record slot of the diary
//
// a slot not yet in the diary is appended to it and its contents
// replaced; a slot already in the diary is patched in place. A slot that
// holds a record belongs to the diary that wrote it and cannot be added
// to another one. The patched record must still be UTF-8.
func (e *Engine) AddRecord(authority slot.Address, id uint32, recordAddress slot.Address, text string, offset uint32) error {
	if !e.store.Signed(authority) {
		return fault.ErrMissingSignature
	}
	if !utf8.ValidString(text) {
		return fault.ErrInvalidText
	}

	d, err := directory.Open(e.store, authority, id)
	if nil != err {
		return err
	}

	h, err := e.store.Open(recordAddress)
	if nil != err {
		return err
	}

	end := uint64(offset) + uint64(len(text))
	if end > record.MaxTextLength || end+record.HeaderSize > h.Capacity() {
		return fault.ErrRecordTooLarge
	}

	var buffer []byte
	if d.Contains(recordAddress) {
		buffer, err = record.Decode(h.Read())
		if nil != err {
			return err
		}
		if uint64(len(buffer)) < end {
			grown := make([]byte, end)
			copy(grown, buffer)
			buffer = grown
		}
		e.debugf("patch: id: %d  slot: %s  offset: %d  length: %d", id, recordAddress, offset, len(text))
	} else {
		if 0 != len(h.Read()) {
			return fault.ErrSlotInUse
		}
		err = d.Append(recordAddress)
		if nil != err {
			return err
		}
		buffer = make([]byte, end)
		e.debugf("add: id: %d  slot: %s  offset: %d  length: %d", id, recordAddress, offset, len(text))
	}
	copy(buffer[offset:end], text)

	encoded, err := record.Encode(buffer)
	if nil != err {
		return err
	}
	err = h.Write(encoded)
	if nil != err {
		return err
	}
	return d.Save()
}

// RemoveRecord - drop a record from the diary, wipe and close its slot
//
// the deposit of the slot goes to the authority; a slot that is not in
// the diary is ignored
func (e *Engine) RemoveRecord(authority slot.Address, id uint32, recordAddress slot.Address) error {
	if !e.store.Signed(authority) {
		return fault.ErrMissingSignature
	}

	d, err := directory.Open(e.store, authority, id)
	if nil != err {
		return err
	}

	if !d.Contains(recordAddress) {
		e.debugf("remove: id: %d  slot: %s  not present", id, recordAddress)
		return nil
	}

	h, err := e.store.Open(recordAddress)
	if fault.ErrSlotNotFound == err {
		// already closed, there is nothing left to refund
		d.Remove(recordAddress)
		e.debugf("remove: id: %d  slot: %s  already closed", id, recordAddress)
		return d.Save()
	}
	if nil != err {
		return err
	}

	d.Remove(recordAddress)

	refund := h.Deposit()
	err = e.store.Close(h, authority)
	if nil != err {
		return err
	}

	e.debugf("remove: id: %d  slot: %s  refund: %d", id, recordAddress, refund)
	return d.Save()
}

// AllocateSlot - create an empty keypair slot for a future record
func (e *Engine) AllocateSlot(address slot.Address, capacity uint64, deposit uint64) error {
	_, err := e.store.Allocate(address, capacity, deposit)
	if nil != err {
		return err
	}
	e.debugf("allocate: slot: %s  capacity: %d  deposit: %d", address, capacity, deposit)
	return nil
}

// Diary - read a directory
func (e *Engine) Diary(owner slot.Address, id uint32) (*directory.Directory, error) {
	d, err := directory.Open(e.store, owner, id)
	if nil != err {
		return nil, err
	}
	return d.Directory, nil
}

// Record - read the text of a record slot
func (e *Engine) Record(address slot.Address) (string, error) {
	h, err := e.store.Open(address)
	if nil != err {
		return "", err
	}
	r, err := record.Unpack(h.Read())
	if nil != err {
		return "", err
	}
	return r.Text, nil
}

// Balance - value refunded to an address
func (e *Engine) Balance(address slot.Address) uint64 {
	return e.store.Balance(address)
}

func (e *Engine) debugf(format string, arguments ...interface{}) {
	if nil != e.log {
		e.log.Debugf(format, arguments...)
	}
}
