// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes go through a Transaction: they are staged in a LevelDB
// batch and mirrored in an overlay cache so later reads inside the
// same transaction see them. Commit writes the batch atomically,
// Abort discards both so a failed invocation leaves no trace.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. address      = slot address (32 bytes)
// 4. account      = owner public key (32 bytes)
// 5. count        = big endian uint64 (8 bytes)
//
// Slots:
//
//   S ++ address               - allocated slot
//                                data: packed slot header ++ slot data
//
// Balances:
//
//   B ++ account               - reclaimed deposits credited to an account
//                                data: count
//
// Testing:
//   Z ++ key                   - testing data
package storage
