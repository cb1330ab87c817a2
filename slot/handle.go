// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package slot

import (
	"github.com/bitmark-inc/diaryd/fault"
)

// Handle - an open slot
type Handle struct {
	store   *Store
	address Address
	header  Header
	data    []byte
	closed  bool
}

// Address - key of the slot
func (h *Handle) Address() Address {
	return h.address
}

// Kind - keypair or derived
func (h *Handle) Kind() Kind {
	return h.header.Kind
}

// Capacity - the fixed size of the slot
func (h *Handle) Capacity() uint64 {
	return h.header.Capacity
}

// Deposit - value held by the slot
func (h *Handle) Deposit() uint64 {
	return h.header.Deposit
}

// Bump - the derivation nonce, zero for keypair slots
func (h *Handle) Bump() byte {
	return h.header.Bump
}

// Owner - account that must sign for a derived slot
func (h *Handle) Owner() Address {
	return h.header.Owner
}

// Read - copy of the bytes last written
//
// every byte past the end of the result up to Capacity is zero
func (h *Handle) Read() []byte {
	buffer := make([]byte, len(h.data))
	copy(buffer, h.data)
	return buffer
}

// Write - replace the slot contents, the remainder becomes zero
func (h *Handle) Write(data []byte) error {
	if err := h.writable(); nil != err {
		return err
	}
	if uint64(len(data)) > h.header.Capacity {
		return fault.ErrCapacityExceeded
	}

	h.data = make([]byte, len(data))
	copy(h.data, data)
	h.persist()
	return nil
}

// Zero - overwrite every stored byte with zero
func (h *Handle) Zero() error {
	if err := h.writable(); nil != err {
		return err
	}
	for i := range h.data {
		h.data[i] = 0
	}
	h.persist()
	return nil
}

// writes need an open transaction, a live slot and the right signer
func (h *Handle) writable() error {
	if nil == h.store.trx {
		return fault.ErrReadOnly
	}
	if h.closed {
		return fault.ErrSlotClosed
	}

	switch h.header.Kind {
	case Keypair:
		if !h.store.signers.Has(h.address) {
			return fault.ErrMissingSignature
		}
	case Derived:
		if !h.store.signers.Has(h.header.Owner) {
			return fault.ErrNotOwner
		}
	default:
		return fault.ErrDecode
	}
	return nil
}

func (h *Handle) persist() {
	h.store.trx.Put(h.store.handles.Slots, h.address[:], packSlot(&h.header, h.data))
}
