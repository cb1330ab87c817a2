// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

// the storage budget of the slot store
//
// a derived (directory) slot is limited to MaxDerivedSlotSize bytes and
// a keypair (record) slot to MaxSlotSize bytes; everything else below is
// computed from these so changing a store limit only needs one edit
const (
	MaxDerivedSlotSize = 10240
	MaxSlotSize        = 10000000
)

// sizes of the fixed fields of a packed directory
const (
	AddressBytes       = 32 // slot address
	DiscriminatorBytes = 8  // reserved by the store for the slot type
	IdentityBytes      = 4  // u32 directory identity
	CountBytes         = 4  // reference count
	NonceBytes         = 1  // derivation nonce
)

// MaxNameLength - a directory name must be strictly shorter than this
const MaxNameLength = 20

// MaxRecords - the bound on the directory's reference list
//
//   (10240 - 20 - 1 - 4 - 8) / 32 = 318
const MaxRecords = (MaxDerivedSlotSize - MaxNameLength - NonceBytes - CountBytes - DiscriminatorBytes) / AddressBytes

// DirectorySize - capacity allocated for a directory slot
const DirectorySize = DiscriminatorBytes + IdentityBytes + CountBytes + AddressBytes*MaxRecords + MaxNameLength + NonceBytes

// RecordSlotSize - capacity allocated for a record slot
const RecordSlotSize = MaxSlotSize
