// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package directory

import (
	"strconv"
	"unicode/utf8"

	"github.com/bitmark-inc/diaryd/constants"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/slot"
	"github.com/bitmark-inc/diaryd/util"
)

// SeedTag - fixed middle seed of every directory address
const SeedTag = "diary"

const directoryTag = 0x44

// Directory - the unpacked directory
type Directory struct {
	ID      uint32         `json:"id"`
	Name    string         `json:"name"`
	Records []slot.Address `json:"records"`
	Bump    byte           `json:"bump"`
}

// ValidName - a name must be UTF-8 and shorter than MaxNameLength bytes
func ValidName(name string) error {
	if len(name) >= constants.MaxNameLength {
		return fault.ErrNameTooLong
	}
	if !utf8.ValidString(name) {
		return fault.ErrInvalidText
	}
	return nil
}

// New - an empty directory
func New(id uint32, name string, bump byte) (*Directory, error) {
	if err := ValidName(name); nil != err {
		return nil, err
	}
	d := &Directory{
		ID:      id,
		Name:    name,
		Records: []slot.Address{},
		Bump:    bump,
	}
	return d, nil
}

// Seeds - derivation seeds for an owner's directory
func Seeds(owner slot.Address, id uint32) [][]byte {
	return [][]byte{
		owner.Bytes(),
		[]byte(SeedTag),
		[]byte(strconv.FormatUint(uint64(id), 10)),
	}
}

// Index - position of a slot in the reference list or -1
func (d *Directory) Index(a slot.Address) int {
	for i, r := range d.Records {
		if r == a {
			return i
		}
	}
	return -1
}

// Contains - true if the slot is referenced
func (d *Directory) Contains(a slot.Address) bool {
	return d.Index(a) >= 0
}

// Append - add a new reference at the end
func (d *Directory) Append(a slot.Address) error {
	if d.Contains(a) {
		return fault.ErrAlreadyExists
	}
	if len(d.Records) >= constants.MaxRecords {
		return fault.ErrDirectoryFull
	}
	d.Records = append(d.Records, a)
	return nil
}

// Remove - drop a reference keeping the order of the rest
//
// returns false if the slot was not referenced
func (d *Directory) Remove(a slot.Address) bool {
	i := d.Index(a)
	if i < 0 {
		return false
	}
	d.Records = append(d.Records[:i], d.Records[i+1:]...)
	return true
}

// Pack - directory as stored in its slot
func (d *Directory) Pack() ([]byte, error) {
	if err := ValidName(d.Name); nil != err {
		return nil, err
	}
	if len(d.Records) > constants.MaxRecords {
		return nil, fault.ErrDirectoryFull
	}

	buffer := util.ToVarint64(directoryTag)
	buffer = append(buffer, util.ToVarint64(uint64(d.ID))...)
	buffer = append(buffer, util.ToVarint64(uint64(len(d.Name)))...)
	buffer = append(buffer, d.Name...)
	buffer = append(buffer, util.ToVarint64(uint64(len(d.Records)))...)
	for _, r := range d.Records {
		buffer = append(buffer, r[:]...)
	}
	buffer = append(buffer, d.Bump)

	if len(buffer) > constants.DirectorySize {
		return nil, fault.ErrDirectoryTooLarge
	}
	return buffer, nil
}

// Unpack - directory from its slot's bytes
//
// trailing bytes are ignored
func Unpack(buffer []byte) (d *Directory, e error) {

	defer func() {
		if r := recover(); nil != r {
			d = nil
			e = fault.ErrDecode
		}
	}()

	tag, n := util.FromVarint64(buffer)
	if 0 == n || directoryTag != tag {
		return nil, fault.ErrDecode
	}

	id, idLength := util.FromVarint64(buffer[n:])
	if 0 == idLength || id > 0xffffffff {
		return nil, fault.ErrDecode
	}
	n += idLength

	nameLength, nameOffset := util.ClippedVarint64(buffer[n:], 0, constants.MaxNameLength-1)
	if 0 == nameOffset {
		return nil, fault.ErrDecode
	}
	n += nameOffset
	if n+nameLength > len(buffer) {
		return nil, fault.ErrDecode
	}
	if !utf8.Valid(buffer[n : n+nameLength]) {
		return nil, fault.ErrDecode
	}
	name := string(buffer[n : n+nameLength])
	n += nameLength

	count, countOffset := util.ClippedVarint64(buffer[n:], 0, constants.MaxRecords)
	if 0 == countOffset {
		return nil, fault.ErrDecode
	}
	n += countOffset
	if n+count*slot.AddressLength+1 > len(buffer) {
		return nil, fault.ErrDecode
	}

	records := make([]slot.Address, count)
	for i := range records {
		copy(records[i][:], buffer[n:n+slot.AddressLength])
		n += slot.AddressLength
	}

	bump := buffer[n]

	d = &Directory{
		ID:      uint32(id),
		Name:    name,
		Records: records,
		Bump:    bump,
	}
	return d, nil
}
