// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diary

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/diaryd/fault"
	"github.com/bitmark-inc/diaryd/slot"
	"github.com/bitmark-inc/diaryd/storage"
)

// globals
type globalDataType struct {
	sync.Mutex
	log         *logger.L
	testnet     bool
	handles     slot.Handles
	initialised bool
}

// gobal storage
var globalData globalDataType

// Initialise - prepare to process instructions
//
// storage must already be initialised
func Initialise(testnet bool) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("diary")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.testnet = testnet
	globalData.handles = slot.Handles{
		Slots:    storage.Pool.Slots,
		Balances: storage.Pool.Balances,
	}
	globalData.initialised = true

	return nil
}

// Finalise - stop processing
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}
