// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/diaryd/constants"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/record"
)

func TestEncodeDecode(t *testing.T) {
	tests := []string{
		"",
		"hi",
		"AABBAAAAAA",
		"\x00\x00\x00\x00\x00hi",
		"unicode: 日記",
	}

	for i, text := range tests {
		buffer, err := record.Encode([]byte(text))
		assert.Nil(t, err, "%d: encode", i)
		assert.Equal(t, record.HeaderSize+len(text), len(buffer), "%d: wrong length", i)

		// up to a whole record slot
		full := constants.RecordSlotSize - len(buffer)
		for _, padding := range []int{0, 1, 7, 1000, full} {
			padded := append(append([]byte{}, buffer...), make([]byte, padding)...)
			decoded, err := record.Decode(padded)
			assert.Nil(t, err, "%d/%d: decode", i, padding)
			assert.Equal(t, text, string(decoded), "%d/%d: wrong text", i, padding)
		}
	}
}

func TestExpectedBytes(t *testing.T) {
	buffer, err := record.Encode([]byte("hi"))
	assert.Nil(t, err, "encode")
	assert.Equal(t, []byte{record.RecordTag, 0x02, 0x00, 0x00, 0x00, 'h', 'i'}, buffer, "wrong encoding")
}

func TestDecodeFailures(t *testing.T) {
	tests := [][]byte{
		nil,
		{},
		{record.RecordTag, 0x00},
		make([]byte, 100),
		{record.RecordTag, 0x05, 0x00, 0x00, 0x00, 'a', 'b'},
		{0x02, 0x01, 0x00, 0x00, 0x00, 'a'},
		{record.RecordTag, 0x02, 0x00, 0x00, 0x00, 0xff, 0xfe},
		{record.RecordTag, 0x01, 0x00, 0x00, 0x00, 0xc3, 'x'},
	}
	for i, buffer := range tests {
		_, err := record.Decode(buffer)
		assert.Equal(t, fault.ErrDecode, err, "%d: decoded: %x", i, buffer)
	}
}

func TestRecordTooLarge(t *testing.T) {
	_, err := record.Encode(bytes.Repeat([]byte{'a'}, record.MaxTextLength+1))
	assert.Equal(t, fault.ErrRecordTooLarge, err, "oversized text encoded")

	buffer, err := record.Encode(bytes.Repeat([]byte{'a'}, record.MaxTextLength))
	assert.Nil(t, err, "largest text")
	assert.Equal(t, record.MaxTextLength+record.HeaderSize, len(buffer), "wrong length")
}

func TestPackUnpack(t *testing.T) {
	r := record.Record{Text: "dear diary"}
	buffer, err := r.Pack()
	assert.Nil(t, err, "pack")

	u, err := record.Unpack(append(buffer, 0, 0, 0))
	assert.Nil(t, err, "unpack")
	assert.Equal(t, r, *u, "wrong record")

	_, err = record.Unpack(make([]byte, 10))
	assert.Equal(t, fault.ErrDecode, err, "zero slot unpacked")
}

func TestEncodeRejectsInvalidText(t *testing.T) {
	tests := [][]byte{
		{0xff, 0xfe},
		{0xc3, 'x'},
		{'a', 0xe6, 0x97},
	}
	for i, text := range tests {
		_, err := record.Encode(text)
		assert.Equal(t, fault.ErrInvalidText, err, "%d: encoded: %x", i, text)
	}

	r := record.Record{Text: "\xc3"}
	_, err := r.Pack()
	assert.Equal(t, fault.ErrInvalidText, err, "packed a split character")
}
