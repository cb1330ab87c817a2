// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"
)

// Signature - detached ed25519 signature carried in an instruction
type Signature []byte

// String - hex for %s
func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// MarshalText - hex for JSON
func (signature Signature) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(signature)))
	hex.Encode(b, signature)
	return b, nil
}

// UnmarshalText - from the hex JSON form
func (signature *Signature) UnmarshalText(s []byte) error {
	sig := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(sig, s)
	if nil != err {
		return err
	}
	*signature = sig[:n]
	return nil
}
