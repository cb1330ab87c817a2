// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddressMismatch        = NotFoundError("derived address does not hold a slot")
	ErrAlreadyExists          = ExistsError("slot already exists")
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrBadNonce               = InvalidError("derivation nonce does not match")
	ErrCannotDecodeAccount    = InvalidError("cannot decode account")
	ErrCannotDecodePrivateKey = InvalidError("cannot decode private key")
	ErrCannotDeriveAddress    = ProcessError("cannot derive address")
	ErrCapacityExceeded       = LengthError("write exceeds slot capacity")
	ErrChecksumMismatch       = ProcessError("checksum mismatch")
	ErrDecode                 = RecordError("slot data cannot be decoded")
	ErrDirectoryFull          = LengthError("directory record list is full")
	ErrDirectoryTooLarge      = LengthError("directory does not fit its slot")
	ErrInvalidAddress         = InvalidError("invalid slot address")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidCursor          = InvalidError("invalid cursor")
	ErrInvalidKeyLength       = InvalidError("invalid key length")
	ErrInvalidKeyType         = InvalidError("invalid key type")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidSignature       = InvalidError("invalid signature")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvalidText            = InvalidError("text is not valid UTF-8")
	ErrMissingSignature       = InvalidError("missing signature")
	ErrNameTooLong            = InvalidError("name is too long")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrNotInstructionPack     = RecordError("not instruction pack")
	ErrNotOwner               = InvalidError("signer does not own slot")
	ErrNotPrivateKey          = InvalidError("not private key")
	ErrNotPublicKey           = InvalidError("not public key")
	ErrReadOnly               = ProcessError("store is read only")
	ErrRecordTooLarge         = LengthError("record exceeds slot capacity")
	ErrSignatureTooLong       = LengthError("signature too long")
	ErrSlotClosed             = InvalidError("slot is closed")
	ErrSlotInUse              = ExistsError("slot belongs to another diary")
	ErrSlotNotFound           = NotFoundError("slot not found")
	ErrTextTooLong            = LengthError("text too long")
	ErrTransactionInUse       = ProcessError("transaction already in use")
	ErrUnknownIdentity        = NotFoundError("identity is not in configuration")
	ErrWrongNetworkForKey     = InvalidError("wrong network for key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
