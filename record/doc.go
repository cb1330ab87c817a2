// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the byte format of a record slot
//
// a record is stored as:
//
//   RecordTag ++ uint32 little-endian length ++ text bytes
//
// followed by zero padding up to the slot capacity.  A slot that was
// allocated but never written is all zero and so fails to decode.
package record
