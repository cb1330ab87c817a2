// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot

import (
	"github.com/bitmark-inc/diaryd/constants"
	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/storage"
)

// Handles - the pools a store works on
type Handles struct {
	Slots    *storage.PoolHandle
	Balances *storage.PoolHandle
}

// Signers - addresses whose signatures were verified for one invocation
type Signers map[Address]struct{}

// NewSigners - build a signer set
func NewSigners(addresses ...Address) Signers {
	s := make(Signers, len(addresses))
	for _, a := range addresses {
		s[a] = struct{}{}
	}
	return s
}

// Has - true if the address signed
func (s Signers) Has(a Address) bool {
	_, ok := s[a]
	return ok
}

// Store - slot operations staged in one storage transaction
type Store struct {
	trx     storage.Transaction
	handles Handles
	signers Signers
}

// New - a store whose writes go into trx
func New(trx storage.Transaction, handles Handles, signers Signers) *Store {
	if nil == signers {
		signers = NewSigners()
	}
	return &Store{
		trx:     trx,
		handles: handles,
		signers: signers,
	}
}

// NewReader - a store that can only read committed data
func NewReader(handles Handles) *Store {
	return New(nil, handles, nil)
}

// Signed - true if the address signed this invocation
func (s *Store) Signed(a Address) bool {
	return s.signers.Has(a)
}

// Allocate - create a keypair slot
//
// the address itself must have signed
func (s *Store) Allocate(address Address, capacity uint64, deposit uint64) (*Handle, error) {
	if nil == s.trx {
		return nil, fault.ErrReadOnly
	}
	if !s.signers.Has(address) {
		return nil, fault.ErrMissingSignature
	}
	if 0 == capacity || capacity > constants.MaxSlotSize {
		return nil, fault.ErrCapacityExceeded
	}
	if s.trx.Has(s.handles.Slots, address[:]) {
		return nil, fault.ErrAlreadyExists
	}

	h := &Handle{
		store:   s,
		address: address,
		header: Header{
			Kind:     Keypair,
			Capacity: capacity,
			Deposit:  deposit,
			Owner:    address,
		},
		data: []byte{},
	}
	h.persist()
	return h, nil
}

// CreateDerived - create a derived slot if its address is free
//
// the owner must have signed; the nonce found is in the handle's Bump
func (s *Store) CreateDerived(owner Address, seeds [][]byte, capacity uint64, deposit uint64) (*Handle, error) {
	if nil == s.trx {
		return nil, fault.ErrReadOnly
	}
	if !s.signers.Has(owner) {
		return nil, fault.ErrMissingSignature
	}
	if 0 == capacity || capacity > constants.MaxDerivedSlotSize {
		return nil, fault.ErrCapacityExceeded
	}

	address, bump, err := Derive(seeds)
	if nil != err {
		return nil, err
	}
	if s.trx.Has(s.handles.Slots, address[:]) {
		return nil, fault.ErrAlreadyExists
	}

	h := &Handle{
		store:   s,
		address: address,
		header: Header{
			Kind:     Derived,
			Capacity: capacity,
			Deposit:  deposit,
			Bump:     bump,
			Owner:    owner,
		},
		data: []byte{},
	}
	h.persist()
	return h, nil
}

// OpenDerived - re-derive an address with a stored nonce and open it
func (s *Store) OpenDerived(owner Address, seeds [][]byte, bump byte) (*Handle, error) {
	address, err := CreateAddress(seeds, bump)
	if nil != err {
		return nil, fault.ErrBadNonce
	}

	h, err := s.open(address)
	if fault.ErrSlotNotFound == err {
		return nil, fault.ErrAddressMismatch
	}
	if nil != err {
		return nil, err
	}

	if Derived != h.header.Kind || !h.header.Owner.Equal(owner) {
		return nil, fault.ErrAddressMismatch
	}
	if h.header.Bump != bump {
		return nil, fault.ErrBadNonce
	}
	return h, nil
}

// Open - open a keypair slot
func (s *Store) Open(address Address) (*Handle, error) {
	h, err := s.open(address)
	if nil != err {
		return nil, err
	}
	if Keypair != h.header.Kind {
		return nil, fault.ErrSlotNotFound
	}
	return h, nil
}

// Peek - open a slot of any kind for reading
func (s *Store) Peek(address Address) (*Handle, error) {
	return s.open(address)
}

func (s *Store) open(address Address) (*Handle, error) {
	var buffer []byte
	if nil == s.trx {
		buffer = s.handles.Slots.Get(address[:])
	} else {
		buffer = s.trx.Get(s.handles.Slots, address[:])
	}
	if nil == buffer {
		return nil, fault.ErrSlotNotFound
	}

	header, data, err := unpackSlot(buffer)
	if nil != err {
		return nil, err
	}
	h := &Handle{
		store:   s,
		address: address,
		header:  *header,
		data:    data,
	}
	return h, nil
}

// Close - zero a slot, refund its deposit and deallocate it
func (s *Store) Close(h *Handle, recipient Address) error {
	if err := h.writable(); nil != err {
		return err
	}

	if err := h.Zero(); nil != err {
		return err
	}

	balance, _ := s.trx.GetN(s.handles.Balances, recipient[:])
	s.trx.PutN(s.handles.Balances, recipient[:], balance+h.header.Deposit)
	h.header.Deposit = 0

	s.trx.Purge(s.handles.Slots, h.address[:])
	h.closed = true
	return nil
}

// Balance - value credited to an address by closed slots
func (s *Store) Balance(address Address) uint64 {
	var n uint64
	if nil == s.trx {
		n, _ = s.handles.Balances.GetN(address[:])
	} else {
		n, _ = s.trx.GetN(s.handles.Balances, address[:])
	}
	return n
}
