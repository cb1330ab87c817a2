// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot

import (
	"bytes"
	"encoding/hex"

	"github.com/bitmark-inc/diaryd/account"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/util"
)

// AddressLength - bytes in a slot address
const AddressLength = 32

// Address - the key of a slot
type Address [AddressLength]byte

// AddressFromAccount - the keypair slot address of an account
func AddressFromAccount(acc *account.Account) (Address, error) {
	var a Address
	if nil == acc {
		return a, fault.ErrInvalidAddress
	}
	publicKey := acc.PublicKeyBytes()
	if AddressLength != len(publicKey) {
		return a, fault.ErrInvalidAddress
	}
	copy(a[:], publicKey)
	return a, nil
}

// AddressFromBytes - copy a raw address
func AddressFromBytes(buffer []byte) (Address, error) {
	var a Address
	if AddressLength != len(buffer) {
		return a, fault.ErrInvalidAddress
	}
	copy(a[:], buffer)
	return a, nil
}

// AddressFromBase58 - decode the text form of an address
func AddressFromBase58(s string) (Address, error) {
	return AddressFromBytes(util.FromBase58(s))
}

// Bytes - the raw address
func (a Address) Bytes() []byte {
	return a[:]
}

// String - base58 text form
func (a Address) String() string {
	return util.ToBase58(a[:])
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - convert to base58 for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from base58 JSON form
func (a *Address) UnmarshalText(s []byte) error {
	address, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*a = address
	return nil
}

// Equal - byte comparison
func (a Address) Equal(b Address) bool {
	return bytes.Equal(a[:], b[:])
}
