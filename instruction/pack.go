// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"unicode/utf8"

	"github.com/bitmark-inc/diaryd/account"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/util"
)

// Pack - CreateDiary
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (c *CreateDiary) Pack() (Packed, error) {
	message, err := c.message()
	if nil != err {
		return nil, err
	}
	if len(c.Signature) > maxSignatureLength {
		return nil, fault.ErrSignatureTooLong
	}

	err = c.Authority.CheckSignature(message, c.Signature)
	if nil != err {
		return message, err
	}

	return appendBytes(message, c.Signature), nil
}

// Sign - set the authority signature
func (c *CreateDiary) Sign(authority *account.PrivateKey) error {
	message, err := c.message()
	if nil != err {
		return err
	}
	c.Signature = authority.Sign(message)
	return nil
}

func (c *CreateDiary) message() (Packed, error) {
	if nil == c.Authority {
		return nil, fault.ErrInvalidAddress
	}
	if len(c.Name) > maxNameLength {
		return nil, fault.ErrNameTooLong
	}
	if !utf8.ValidString(c.Name) {
		return nil, fault.ErrInvalidText
	}

	message := util.ToVarint64(uint64(CreateDiaryTag))
	message = appendAccount(message, c.Authority)
	message = appendUint64(message, uint64(c.ID))
	message = appendString(message, c.Name)
	return message, nil
}

// Pack - AddRecord
//
// Pack Varint64(tag) followed by fields in order as struct above with
// the two signatures last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (a *AddRecord) Pack() (Packed, error) {
	message, err := a.message()
	if nil != err {
		return nil, err
	}
	if len(a.Signature) > maxSignatureLength || len(a.SlotSignature) > maxSignatureLength {
		return nil, fault.ErrSignatureTooLong
	}

	err = a.Authority.CheckSignature(message, a.Signature)
	if nil != err {
		return message, err
	}
	err = a.Slot.CheckSignature(message, a.SlotSignature)
	if nil != err {
		return message, err
	}

	message = appendBytes(message, a.Signature)
	return appendBytes(message, a.SlotSignature), nil
}

// Sign - set the authority and slot signatures
func (a *AddRecord) Sign(authority *account.PrivateKey, slotKey *account.PrivateKey) error {
	message, err := a.message()
	if nil != err {
		return err
	}
	a.Signature = authority.Sign(message)
	a.SlotSignature = slotKey.Sign(message)
	return nil
}

func (a *AddRecord) message() (Packed, error) {
	if nil == a.Authority || nil == a.Slot {
		return nil, fault.ErrInvalidAddress
	}
	if len(a.Text) > maxTextLength {
		return nil, fault.ErrTextTooLong
	}
	if !utf8.ValidString(a.Text) {
		return nil, fault.ErrInvalidText
	}

	message := util.ToVarint64(uint64(AddRecordTag))
	message = appendAccount(message, a.Authority)
	message = appendUint64(message, uint64(a.ID))
	message = appendAccount(message, a.Slot)
	message = appendString(message, a.Text)
	message = appendUint64(message, uint64(a.Offset))
	return message, nil
}

// Pack - RemoveRecord
//
// Pack Varint64(tag) followed by fields in order as struct above with
// the two signatures last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (r *RemoveRecord) Pack() (Packed, error) {
	message, err := r.message()
	if nil != err {
		return nil, err
	}
	if len(r.Signature) > maxSignatureLength || len(r.SlotSignature) > maxSignatureLength {
		return nil, fault.ErrSignatureTooLong
	}

	err = r.Authority.CheckSignature(message, r.Signature)
	if nil != err {
		return message, err
	}
	err = r.Slot.CheckSignature(message, r.SlotSignature)
	if nil != err {
		return message, err
	}

	message = appendBytes(message, r.Signature)
	return appendBytes(message, r.SlotSignature), nil
}

// Sign - set the authority and slot signatures
func (r *RemoveRecord) Sign(authority *account.PrivateKey, slotKey *account.PrivateKey) error {
	message, err := r.message()
	if nil != err {
		return err
	}
	r.Signature = authority.Sign(message)
	r.SlotSignature = slotKey.Sign(message)
	return nil
}

func (r *RemoveRecord) message() (Packed, error) {
	if nil == r.Authority || nil == r.Slot {
		return nil, fault.ErrInvalidAddress
	}

	message := util.ToVarint64(uint64(RemoveRecordTag))
	message = appendAccount(message, r.Authority)
	message = appendUint64(message, uint64(r.ID))
	message = appendAccount(message, r.Slot)
	return message, nil
}

// Pack - AllocateSlot
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       debugging/testing
func (a *AllocateSlot) Pack() (Packed, error) {
	message, err := a.message()
	if nil != err {
		return nil, err
	}
	if len(a.Signature) > maxSignatureLength {
		return nil, fault.ErrSignatureTooLong
	}

	err = a.Slot.CheckSignature(message, a.Signature)
	if nil != err {
		return message, err
	}

	return appendBytes(message, a.Signature), nil
}

// Sign - set the slot signature
func (a *AllocateSlot) Sign(slotKey *account.PrivateKey) error {
	message, err := a.message()
	if nil != err {
		return err
	}
	a.Signature = slotKey.Sign(message)
	return nil
}

func (a *AllocateSlot) message() (Packed, error) {
	if nil == a.Slot {
		return nil, fault.ErrInvalidAddress
	}

	message := util.ToVarint64(uint64(AllocateSlotTag))
	message = appendAccount(message, a.Slot)
	message = appendUint64(message, a.Capacity)
	message = appendUint64(message, a.Deposit)
	return message, nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	buffer = append(buffer, s...)
	return buffer
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, address *account.Account) Packed {
	data := address.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a bytes field to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
