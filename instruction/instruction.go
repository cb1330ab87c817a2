// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"github.com/bitmark-inc/diaryd/account"
)

// TagType - type code for instructions
type TagType uint64

// enumerate the possible instruction types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as an instruction type
	NullTag = TagType(iota)

	// valid instruction types
	CreateDiaryTag  = TagType(iota) // create a named directory
	AddRecordTag    = TagType(iota) // create or patch a record slot
	RemoveRecordTag = TagType(iota) // wipe and close a record slot
	AllocateSlotTag = TagType(iota) // allocate a keypair slot

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed instructions are just a byte slice
type Packed []byte

// Instruction - generic instruction interface
type Instruction interface {
	Pack() (Packed, error)
	Signers() []*account.Account
}

// byte sizes for various fields
const (
	maxNameLength      = 64
	maxTextLength      = 10000000
	maxSignatureLength = 1024
)

// CreateDiary - the unpacked CreateDiary structure
type CreateDiary struct {
	Authority *account.Account  `json:"authority"` // base58
	ID        uint32            `json:"id"`        // directory identity
	Name      string            `json:"name"`      // utf-8
	Signature account.Signature `json:"signature"` // hex: authority
}

// AddRecord - the unpacked AddRecord structure
type AddRecord struct {
	Authority     *account.Account  `json:"authority"`     // base58
	ID            uint32            `json:"id"`            // directory identity
	Slot          *account.Account  `json:"slot"`          // base58: record slot key
	Text          string            `json:"text"`          // utf-8
	Offset        uint32            `json:"offset"`        // byte offset into the record
	Signature     account.Signature `json:"signature"`     // hex: authority
	SlotSignature account.Signature `json:"slotSignature"` // hex: record slot key
}

// RemoveRecord - the unpacked RemoveRecord structure
type RemoveRecord struct {
	Authority     *account.Account  `json:"authority"`     // base58
	ID            uint32            `json:"id"`            // directory identity
	Slot          *account.Account  `json:"slot"`          // base58: record slot key
	Signature     account.Signature `json:"signature"`     // hex: authority
	SlotSignature account.Signature `json:"slotSignature"` // hex: record slot key
}

// AllocateSlot - the unpacked AllocateSlot structure
type AllocateSlot struct {
	Slot      *account.Account  `json:"slot"`            // base58: new slot key
	Capacity  uint64            `json:"capacity,string"` // bytes
	Deposit   uint64            `json:"deposit,string"`  // value held until close
	Signature account.Signature `json:"signature"`       // hex: slot key
}

// Signers - accounts whose signatures Pack checks
func (c *CreateDiary) Signers() []*account.Account {
	return []*account.Account{c.Authority}
}

// Signers - accounts whose signatures Pack checks
func (a *AddRecord) Signers() []*account.Account {
	return []*account.Account{a.Authority, a.Slot}
}

// Signers - accounts whose signatures Pack checks
func (r *RemoveRecord) Signers() []*account.Account {
	return []*account.Account{r.Authority, r.Slot}
}

// Signers - accounts whose signatures Pack checks
func (a *AllocateSlot) Signers() []*account.Account {
	return []*account.Account{a.Slot}
}
