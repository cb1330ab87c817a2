// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/diaryd/constants"
)

func TestBudget(t *testing.T) {
	assert.Equal(t, 318, constants.MaxRecords, "wrong record bound")
	assert.True(t, constants.DirectorySize <= constants.MaxDerivedSlotSize, "directory exceeds derived slot limit")
	assert.Equal(t, 10000000, constants.RecordSlotSize, "wrong record slot size")
}
