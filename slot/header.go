// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/util"
)

// Kind - how a slot's address came about
type Kind byte

// the kinds of slot
const (
	Keypair Kind = 1
	Derived Kind = 2
)

const slotTag = 0x53

const checksumLength = 8

// Header - the bookkeeping stored in front of a slot's data
type Header struct {
	Kind     Kind
	Capacity uint64
	Deposit  uint64
	Bump     byte
	Owner    Address
}

// pack a header followed by the slot's data
//
//   Varint64(tag) ++ checksum ++ kind ++ Varint64(capacity) ++
//   Varint64(deposit) ++ bump ++ owner ++ data
//
// the checksum is the big endian xxhash64 of everything after it
func packSlot(header *Header, data []byte) []byte {
	body := []byte{byte(header.Kind)}
	body = append(body, util.ToVarint64(header.Capacity)...)
	body = append(body, util.ToVarint64(header.Deposit)...)
	body = append(body, header.Bump)
	body = append(body, header.Owner[:]...)
	body = append(body, data...)

	buffer := util.ToVarint64(slotTag)
	checksum := make([]byte, checksumLength)
	binary.BigEndian.PutUint64(checksum, xxhash.Sum64(body))
	buffer = append(buffer, checksum...)
	return append(buffer, body...)
}

// split a stored slot into its header and a copy of its data
func unpackSlot(buffer []byte) (*Header, []byte, error) {
	tag, n := util.FromVarint64(buffer)
	if 0 == n || slotTag != tag {
		return nil, nil, fault.ErrDecode
	}

	if n+checksumLength >= len(buffer) {
		return nil, nil, fault.ErrDecode
	}
	checksum := binary.BigEndian.Uint64(buffer[n : n+checksumLength])
	n += checksumLength
	if xxhash.Sum64(buffer[n:]) != checksum {
		return nil, nil, fault.ErrChecksumMismatch
	}

	kind := Kind(buffer[n])
	n += 1
	if Keypair != kind && Derived != kind {
		return nil, nil, fault.ErrDecode
	}

	capacity, capacityLength := util.FromVarint64(buffer[n:])
	if 0 == capacityLength {
		return nil, nil, fault.ErrDecode
	}
	n += capacityLength

	deposit, depositLength := util.FromVarint64(buffer[n:])
	if 0 == depositLength {
		return nil, nil, fault.ErrDecode
	}
	n += depositLength

	if n+1+AddressLength > len(buffer) {
		return nil, nil, fault.ErrDecode
	}
	bump := buffer[n]
	n += 1

	header := &Header{
		Kind:     kind,
		Capacity: capacity,
		Deposit:  deposit,
		Bump:     bump,
	}
	copy(header.Owner[:], buffer[n:n+AddressLength])
	n += AddressLength

	if uint64(len(buffer)-n) > capacity {
		return nil, nil, fault.ErrDecode
	}

	data := make([]byte, len(buffer)-n)
	copy(data, buffer[n:])
	return header, data, nil
}

// Inspect - split raw stored slot bytes into header and data
//
// for tools that scan the slots pool directly
func Inspect(buffer []byte) (*Header, []byte, error) {
	return unpackSlot(buffer)
}
