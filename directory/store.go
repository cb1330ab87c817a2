// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package directory

import (
	"github.com/bitmark-inc/diaryd/constants"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/slot"
)

// Stored - a directory bound to the slot that holds it
type Stored struct {
	*Directory
	handle *slot.Handle
}

// Create - allocate and write a new empty directory
//
// the name is checked before anything is allocated
func Create(store *slot.Store, owner slot.Address, id uint32, name string, deposit uint64) (*Stored, error) {
	if err := ValidName(name); nil != err {
		return nil, err
	}

	h, err := store.CreateDerived(owner, Seeds(owner, id), constants.DirectorySize, deposit)
	if nil != err {
		return nil, err
	}

	d, err := New(id, name, h.Bump())
	if nil != err {
		return nil, err
	}

	s := &Stored{
		Directory: d,
		handle:    h,
	}
	return s, s.Save()
}

// Open - load an existing directory
func Open(store *slot.Store, owner slot.Address, id uint32) (*Stored, error) {
	seeds := Seeds(owner, id)
	_, bump, err := slot.Derive(seeds)
	if nil != err {
		return nil, err
	}

	h, err := store.OpenDerived(owner, seeds, bump)
	if nil != err {
		return nil, err
	}

	d, err := Unpack(h.Read())
	if nil != err {
		return nil, err
	}
	if d.Bump != h.Bump() {
		return nil, fault.ErrBadNonce
	}
	if d.ID != id {
		return nil, fault.ErrAddressMismatch
	}

	s := &Stored{
		Directory: d,
		handle:    h,
	}
	return s, nil
}

// Address - slot address of the directory
func (s *Stored) Address() slot.Address {
	return s.handle.Address()
}

// Save - write the directory back to its slot
func (s *Stored) Save() error {
	buffer, err := s.Pack()
	if nil != err {
		return err
	}
	return s.handle.Write(buffer)
}
