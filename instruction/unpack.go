// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"unicode/utf8"

	"github.com/bitmark-inc/diaryd/account"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/util"
)

// Unpack - turn a byte slice into an instruction
//
// every signature is checked against the unsigned part of the message
// and all accounts must belong to the requested network
//
// must cast result to correct type
//
// e.g.
//   switch in := result.(type) {
//   case *instruction.AddRecord:
func (record Packed) Unpack(testnet bool) (t Instruction, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.ErrNotInstructionPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, fault.ErrNotInstructionPack
	}

unpack_switch:
	switch TagType(recordType) {

	case CreateDiaryTag:

		authority, authorityLength, err := unpackAccount(record[n:], testnet)
		if nil != err {
			return nil, 0, err
		}
		n += authorityLength

		id, idLength := util.FromVarint64(record[n:])
		if 0 == idLength || id > 0xffffffff {
			break unpack_switch
		}
		n += idLength

		nameLength, nameOffset := util.ClippedVarint64(record[n:], 0, maxNameLength)
		if 0 == nameOffset {
			break unpack_switch
		}
		n += nameOffset
		if n+nameLength > len(record) {
			break unpack_switch
		}
		if !utf8.Valid(record[n : n+nameLength]) {
			return nil, 0, fault.ErrInvalidText
		}
		name := string(record[n : n+nameLength])
		n += nameLength

		message := record[:n]

		signature, signatureLength, err := unpackSignature(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += signatureLength

		err = authority.CheckSignature(message, signature)
		if nil != err {
			return nil, 0, err
		}

		c := &CreateDiary{
			Authority: authority,
			ID:        uint32(id),
			Name:      name,
			Signature: signature,
		}
		return c, n, nil

	case AddRecordTag:

		authority, authorityLength, err := unpackAccount(record[n:], testnet)
		if nil != err {
			return nil, 0, err
		}
		n += authorityLength

		id, idLength := util.FromVarint64(record[n:])
		if 0 == idLength || id > 0xffffffff {
			break unpack_switch
		}
		n += idLength

		slotAccount, slotLength, err := unpackAccount(record[n:], testnet)
		if nil != err {
			return nil, 0, err
		}
		n += slotLength

		textLength, textOffset := util.ClippedVarint64(record[n:], 0, maxTextLength)
		if 0 == textOffset {
			break unpack_switch
		}
		n += textOffset
		if n+textLength > len(record) {
			break unpack_switch
		}
		if !utf8.Valid(record[n : n+textLength]) {
			return nil, 0, fault.ErrInvalidText
		}
		text := string(record[n : n+textLength])
		n += textLength

		offset, offsetLength := util.FromVarint64(record[n:])
		if 0 == offsetLength || offset > 0xffffffff {
			break unpack_switch
		}
		n += offsetLength

		message := record[:n]

		signature, signatureLength, err := unpackSignature(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += signatureLength

		slotSignature, slotSignatureLength, err := unpackSignature(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += slotSignatureLength

		err = authority.CheckSignature(message, signature)
		if nil != err {
			return nil, 0, err
		}
		err = slotAccount.CheckSignature(message, slotSignature)
		if nil != err {
			return nil, 0, err
		}

		a := &AddRecord{
			Authority:     authority,
			ID:            uint32(id),
			Slot:          slotAccount,
			Text:          text,
			Offset:        uint32(offset),
			Signature:     signature,
			SlotSignature: slotSignature,
		}
		return a, n, nil

	case RemoveRecordTag:

		authority, authorityLength, err := unpackAccount(record[n:], testnet)
		if nil != err {
			return nil, 0, err
		}
		n += authorityLength

		id, idLength := util.FromVarint64(record[n:])
		if 0 == idLength || id > 0xffffffff {
			break unpack_switch
		}
		n += idLength

		slotAccount, slotLength, err := unpackAccount(record[n:], testnet)
		if nil != err {
			return nil, 0, err
		}
		n += slotLength

		message := record[:n]

		signature, signatureLength, err := unpackSignature(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += signatureLength

		slotSignature, slotSignatureLength, err := unpackSignature(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += slotSignatureLength

		err = authority.CheckSignature(message, signature)
		if nil != err {
			return nil, 0, err
		}
		err = slotAccount.CheckSignature(message, slotSignature)
		if nil != err {
			return nil, 0, err
		}

		r := &RemoveRecord{
			Authority:     authority,
			ID:            uint32(id),
			Slot:          slotAccount,
			Signature:     signature,
			SlotSignature: slotSignature,
		}
		return r, n, nil

	case AllocateSlotTag:

		slotAccount, slotLength, err := unpackAccount(record[n:], testnet)
		if nil != err {
			return nil, 0, err
		}
		n += slotLength

		capacity, capacityLength := util.FromVarint64(record[n:])
		if 0 == capacityLength {
			break unpack_switch
		}
		n += capacityLength

		deposit, depositLength := util.FromVarint64(record[n:])
		if 0 == depositLength {
			break unpack_switch
		}
		n += depositLength

		message := record[:n]

		signature, signatureLength, err := unpackSignature(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += signatureLength

		err = slotAccount.CheckSignature(message, signature)
		if nil != err {
			return nil, 0, err
		}

		a := &AllocateSlot{
			Slot:      slotAccount,
			Capacity:  capacity,
			Deposit:   deposit,
			Signature: signature,
		}
		return a, n, nil

	default: // also NullTag
	}
	return nil, 0, fault.ErrNotInstructionPack
}

// a Varint64(length) prefixed account
func unpackAccount(buffer []byte, testnet bool) (*account.Account, int, error) {
	length, offset := util.ClippedVarint64(buffer, 1, 8192)
	if 0 == offset || offset+length > len(buffer) {
		return nil, 0, fault.ErrNotInstructionPack
	}
	acc, err := account.AccountFromBytes(buffer[offset : offset+length])
	if nil != err {
		return nil, 0, err
	}
	if acc.IsTesting() != testnet {
		return nil, 0, fault.ErrWrongNetworkForKey
	}
	return acc, offset + length, nil
}

// a Varint64(length) prefixed signature
func unpackSignature(buffer []byte) (account.Signature, int, error) {
	length, offset := util.ClippedVarint64(buffer, 1, maxSignatureLength)
	if 0 == offset {
		return nil, 0, fault.ErrNotInstructionPack
	}
	if offset+length > len(buffer) {
		return nil, 0, fault.ErrNotInstructionPack
	}
	signature := make(account.Signature, length)
	copy(signature, buffer[offset:offset+length])
	return signature, offset + length, nil
}
