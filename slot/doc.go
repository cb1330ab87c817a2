// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package slot - fixed capacity byte slots addressed by 32 byte keys
//
// Two kinds of slot exist:
//
//   keypair  the address is an ed25519 public key; the holder of the
//            matching private key must sign to write or close it
//   derived  the address is a hash of seeds plus a one byte nonce that
//            is not a valid curve point, so nobody holds a key for it;
//            the owning account must sign instead
//
// A slot's bytes beyond the data last written are zero. Closing a slot
// zeroes its data, credits its deposit to a recipient balance and
// deallocates it.
package slot
