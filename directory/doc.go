// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package directory - a diary's header and its bounded list of record slots
//
// a directory lives in a derived slot whose address comes from
// (owner, "diary", decimal identity).  Its packed form is:
//
//   Varint64(tag) ++ Varint64(id) ++ Varint64(len(name)) ++ name ++
//   Varint64(count) ++ count * 32 byte slot addresses ++ bump
//
// the reference list keeps insertion order and removal is positional,
// so the surviving entries never move relative to each other.
package directory
