// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/util"
)

// enumeration of supported key algorithms
const (
	Nothing = iota // zero keytype, reserved
	ED25519 = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// layout of the key code byte, counting from LSB
//
//   bit 0     set for a public key (account), clear for a private key
//   bit 1     set for a test network key
//   bits 4..  algorithm
const (
	checksumLength = 4

	publicKeyCode  = 0x01
	testKeyCode    = 0x02
	algorithmShift = 4
)

// decoded form shared by accounts and private keys
type keyFields struct {
	algorithm int
	test      bool
	key       []byte
}

// the raw key size of each algorithm
func keySize(algorithm int, public bool) int {
	switch algorithm {
	case ED25519:
		if public {
			return ed25519.PublicKeySize
		}
		return ed25519.PrivateKeySize
	default:
		return 0
	}
}

// encodeKey - key code ++ key
func encodeKey(algorithm int, public bool, test bool, key []byte) []byte {
	code := byte(algorithm << algorithmShift)
	if public {
		code |= publicKeyCode
	}
	if test {
		code |= testKeyCode
	}
	return append([]byte{code}, key...)
}

// encodeText - base58 of the encoded key with a sha3 checksum suffix
func encodeText(buffer []byte) string {
	checksum := sha3.Sum256(buffer)
	return util.ToBase58(append(buffer, checksum[:checksumLength]...))
}

// decodeKey - parse key code ++ key, optionally followed by a checksum
//
// errors are reported in the order: wrong kind of key, unknown
// algorithm, missing key bytes, checksum and finally key size
func decodeKey(buffer []byte, public bool, checked bool) (*keyFields, error) {
	wrongKind := fault.ErrNotPrivateKey
	if public {
		wrongKind = fault.ErrNotPublicKey
	}

	code, codeLength := util.FromVarint64(buffer)
	if 0 == codeLength || (code&publicKeyCode == publicKeyCode) != public {
		return nil, wrongKind
	}

	algorithm := int(code >> algorithmShift)
	if algorithm >= algorithmLimit {
		return nil, fault.ErrInvalidKeyType
	}

	trailer := 0
	if checked {
		trailer = checksumLength
	}
	if len(buffer)-codeLength-trailer <= 0 {
		return nil, fault.ErrInvalidKeyLength
	}

	if checked {
		checksumStart := len(buffer) - checksumLength
		checksum := sha3.Sum256(buffer[:checksumStart])
		if !bytes.Equal(checksum[:checksumLength], buffer[checksumStart:]) {
			return nil, fault.ErrChecksumMismatch
		}
		buffer = buffer[:checksumStart]
	}

	size := keySize(algorithm, public)
	if 0 == size {
		return nil, fault.ErrInvalidKeyType
	}
	if len(buffer)-codeLength != size {
		return nil, fault.ErrInvalidKeyLength
	}

	key := make([]byte, size)
	copy(key, buffer[codeLength:])
	return &keyFields{
		algorithm: algorithm,
		test:      0 != code&testKeyCode,
		key:       key,
	}, nil
}
