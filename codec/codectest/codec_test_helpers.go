// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codectest

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
)

// NewRandomAddress returns a random account address for use during testing.
func NewRandomAddress() codec.Address {
	return codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
}
