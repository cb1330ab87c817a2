// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/diaryd/account"
	"github.com/bitmark-inc/diaryd/directory"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/slot"
)

// the signing identity, which must be a configured name
func getIdentity(m *metadata, name string) (*account.PrivateKey, error) {
	if "" == name {
		return nil, fault.ErrUnknownIdentity
	}
	return m.config.Identity(name)
}

// a configured identity name or a base58 private key
func getKey(m *metadata, s string) (*account.PrivateKey, error) {
	key, err := m.config.Identity(s)
	if fault.ErrUnknownIdentity != err {
		return key, err
	}

	key, err = account.PrivateKeyFromBase58(s)
	if nil != err {
		return nil, err
	}
	if key.IsTesting() != m.testnet {
		return nil, fault.ErrWrongNetworkForKey
	}
	return key, nil
}

// a configured identity name, a base58 account or a raw slot address
func getAddress(m *metadata, s string) (slot.Address, error) {
	if key, err := m.config.Identity(s); nil == err {
		return slot.AddressFromAccount(key.Account())
	}

	if acc, err := account.AccountFromBase58(s); nil == err {
		return slot.AddressFromAccount(acc)
	}

	return slot.AddressFromBase58(s)
}

// the derived address holding a diary
func diaryAddress(owner slot.Address, id uint32) (slot.Address, error) {
	address, _, err := slot.Derive(directory.Seeds(owner, id))
	return address, err
}
