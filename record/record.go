// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/bitmark-inc/diaryd/constants"
	"github.com/bitmark-inc/diaryd/fault"
)

// RecordTag - first byte of every encoded record
const RecordTag = 0x01

// HeaderSize - bytes in front of the text
const HeaderSize = 1 + 4

// MaxTextLength - the longest text that fits a record slot
const MaxTextLength = constants.RecordSlotSize - HeaderSize

// Record - the decoded contents of a record slot
type Record struct {
	Text string
}

// Encode - wrap text for storage
//
// the text must be UTF-8; NUL bytes are allowed
func Encode(text []byte) ([]byte, error) {
	if len(text) > MaxTextLength {
		return nil, fault.ErrRecordTooLarge
	}
	if !utf8.Valid(text) {
		return nil, fault.ErrInvalidText
	}
	buffer := make([]byte, HeaderSize, HeaderSize+len(text))
	buffer[0] = RecordTag
	binary.LittleEndian.PutUint32(buffer[1:], uint32(len(text)))
	return append(buffer, text...), nil
}

// Decode - extract the text, ignoring any trailing padding
func Decode(buffer []byte) ([]byte, error) {
	if len(buffer) < HeaderSize || RecordTag != buffer[0] {
		return nil, fault.ErrDecode
	}
	n := binary.LittleEndian.Uint32(buffer[1:HeaderSize])
	if uint64(n) > uint64(len(buffer)-HeaderSize) {
		return nil, fault.ErrDecode
	}
	text := make([]byte, n)
	copy(text, buffer[HeaderSize:HeaderSize+int(n)])
	if !utf8.Valid(text) {
		return nil, fault.ErrDecode
	}
	return text, nil
}

// Pack - encode a record
func (r *Record) Pack() ([]byte, error) {
	return Encode([]byte(r.Text))
}

// Unpack - decode a stored record
func Unpack(buffer []byte) (*Record, error) {
	text, err := Decode(buffer)
	if nil != err {
		return nil, err
	}
	return &Record{Text: string(text)}, nil
}
