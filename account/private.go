// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/util"
)

// PrivateKey - base type for PrivateKey
type PrivateKey struct {
	PrivateKeyInterface
}

// PrivateKeyInterface - the methods of every private key type
type PrivateKeyInterface interface {
	Account() *Account
	KeyType() int
	PrivateKeyBytes() []byte
	Bytes() []byte
	String() string
	IsTesting() bool
	MarshalText() ([]byte, error)
	Sign(message []byte) Signature
}

// ED25519PrivateKey - for ed25519 keys
type ED25519PrivateKey struct {
	Test       bool
	PrivateKey []byte
}

// NewPrivateKey - generate a fresh ed25519 key pair
func NewPrivateKey(test bool) (*PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return newPrivateKey(test, key), nil
}

// PrivateKeyFromSeed - the deterministic key pair for a 32 byte seed
func PrivateKeyFromSeed(test bool, seed []byte) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	return newPrivateKey(test, ed25519.NewKeyFromSeed(seed)), nil
}

// PrivateKeyFromBase58 - decode the checksummed text form of a private key
func PrivateKeyFromBase58(s string) (*PrivateKey, error) {
	buffer := util.FromBase58(s)
	if 0 == len(buffer) {
		return nil, fault.ErrCannotDecodePrivateKey
	}
	fields, err := decodeKey(buffer, false, true)
	if nil != err {
		return nil, err
	}
	return newPrivateKey(fields.test, fields.key), nil
}

// PrivateKeyFromBytes - decode the binary form: key code ++ private key
func PrivateKeyFromBytes(buffer []byte) (*PrivateKey, error) {
	fields, err := decodeKey(buffer, false, false)
	if nil != err {
		return nil, err
	}
	return newPrivateKey(fields.test, fields.key), nil
}

func newPrivateKey(test bool, key []byte) *PrivateKey {
	return &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			Test:       test,
			PrivateKey: key,
		},
	}
}

// UnmarshalText - convert from Base58 JSON form
func (privateKey *PrivateKey) UnmarshalText(s []byte) error {
	a, err := PrivateKeyFromBase58(string(s))
	if nil != err {
		return err
	}
	privateKey.PrivateKeyInterface = a.PrivateKeyInterface
	return nil
}

// IsTesting - whether the key belongs to a test chain
func (privateKey *ED25519PrivateKey) IsTesting() bool {
	return privateKey.Test
}

// KeyType - always ED25519
func (privateKey *ED25519PrivateKey) KeyType() int {
	return ED25519
}

// Account - the public half
func (privateKey *ED25519PrivateKey) Account() *Account {
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, privateKey.PrivateKey[ed25519.PrivateKeySize-ed25519.PublicKeySize:])
	return &Account{
		AccountInterface: &ED25519Account{
			Test:      privateKey.Test,
			PublicKey: publicKey,
		},
	}
}

// PrivateKeyBytes - the raw seed ++ public key
func (privateKey *ED25519PrivateKey) PrivateKeyBytes() []byte {
	return privateKey.PrivateKey
}

// Bytes - key code ++ private key
func (privateKey *ED25519PrivateKey) Bytes() []byte {
	return encodeKey(ED25519, false, privateKey.Test, privateKey.PrivateKey)
}

// String - checksummed base58
func (privateKey *ED25519PrivateKey) String() string {
	return encodeText(privateKey.Bytes())
}

// MarshalText - convert a private key to its Base58 JSON form
func (privateKey ED25519PrivateKey) MarshalText() ([]byte, error) {
	return []byte(privateKey.String()), nil
}

// Sign - ed25519 signature of a message
func (privateKey *ED25519PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(privateKey.PrivateKey, message)
}
