// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// The classes map onto how the diary engine reports a failed
// invocation: InvalidError for validation and authorisation,
// LengthError for the fixed size budgets, RecordError for slot data
// that does not decode, ExistsError and NotFoundError for slot store
// conflicts.
package fault
