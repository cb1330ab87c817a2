// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package diary - create diaries and add, patch or remove their records
//
// An Engine works on a slot store bound to one storage transaction.
// Process runs a single packed instruction: it verifies the signatures,
// dispatches to the engine and commits, or aborts everything the
// instruction staged if any step fails.
//
// Records are patched by overwriting bytes at an offset.  Writing past
// the current end grows the record and zero fills any gap; a record
// never shrinks.
package diary
