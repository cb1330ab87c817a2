// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/util"
)

// Account - base type for accounts
//
// an account is the identity of a diary owner and also the address of
// a keypair record slot
type Account struct {
	AccountInterface
}

// AccountInterface - the methods of every account type
type AccountInterface interface {
	KeyType() int
	PublicKeyBytes() []byte
	CheckSignature(message []byte, signature Signature) error
	Bytes() []byte
	String() string
	MarshalText() ([]byte, error)
	IsTesting() bool
}

// ED25519Account - for ed25519 signatures
type ED25519Account struct {
	Test      bool
	PublicKey []byte
}

// AccountFromBase58 - decode the checksummed text form of an account
func AccountFromBase58(s string) (*Account, error) {
	buffer := util.FromBase58(s)
	if 0 == len(buffer) {
		return nil, fault.ErrCannotDecodeAccount
	}
	fields, err := decodeKey(buffer, true, true)
	if nil != err {
		return nil, err
	}
	return newAccount(fields), nil
}

// AccountFromBytes - decode the binary form: key code ++ public key
func AccountFromBytes(buffer []byte) (*Account, error) {
	fields, err := decodeKey(buffer, true, false)
	if nil != err {
		return nil, err
	}
	return newAccount(fields), nil
}

// decodeKey only returns known algorithms
func newAccount(fields *keyFields) *Account {
	return &Account{
		AccountInterface: &ED25519Account{
			Test:      fields.test,
			PublicKey: fields.key,
		},
	}
}

// UnmarshalText - convert from Base58 JSON form
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.AccountInterface = a.AccountInterface
	return nil
}

// KeyType - always ED25519
func (account *ED25519Account) KeyType() int {
	return ED25519
}

// PublicKeyBytes - the raw key, which is also the account's slot address
func (account *ED25519Account) PublicKeyBytes() []byte {
	return account.PublicKey
}

// CheckSignature - verify a signature over a message
func (account *ED25519Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) || !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// Bytes - key code ++ public key
func (account *ED25519Account) Bytes() []byte {
	return encodeKey(ED25519, true, account.Test, account.PublicKey)
}

// String - checksummed base58
func (account *ED25519Account) String() string {
	return encodeText(account.Bytes())
}

// MarshalText - convert an account to its Base58 JSON form
func (account ED25519Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// IsTesting - whether the key belongs to a test chain
func (account ED25519Account) IsTesting() bool {
	return account.Test
}
