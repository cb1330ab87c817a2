// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot

import (
	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/diaryd/fault"
)

// ProgramID - mixed into every derived address so that other
// programs sharing the store derive disjoint addresses
var ProgramID = []byte("bitmark-diary")

const derivedMarker = "ProgramDerivedAddress"

// MaxSeedLength - bytes allowed in a single seed
const MaxSeedLength = 32

// MaxSeeds - seeds allowed in one derivation
const MaxSeeds = 16

// CreateAddress - hash the seeds and a specific nonce
//
// fails if any seed is too long or the result lies on the ed25519
// curve, since a private key could then sign for it
func CreateAddress(seeds [][]byte, bump byte) (Address, error) {
	var a Address
	if len(seeds) > MaxSeeds {
		return a, fault.ErrCannotDeriveAddress
	}

	h := sha3.New256()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return a, fault.ErrCannotDeriveAddress
		}
		h.Write(seed)
	}
	h.Write([]byte{bump})
	h.Write(ProgramID)
	h.Write([]byte(derivedMarker))
	copy(a[:], h.Sum(nil))

	if isOnCurve(a[:]) {
		return a, fault.ErrCannotDeriveAddress
	}
	return a, nil
}

// Derive - find the first valid nonce counting down from 255
//
// the result is deterministic for the same seeds
func Derive(seeds [][]byte) (Address, byte, error) {
	for bump := 255; bump >= 0; bump -= 1 {
		a, err := CreateAddress(seeds, byte(bump))
		if nil == err {
			return a, byte(bump), nil
		}
	}
	return Address{}, 0, fault.ErrCannotDeriveAddress
}

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return nil == err
}
