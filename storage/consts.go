// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
)

// Key prefixes
const (
	txPrefix byte = iota
	balancePrefix
	poolPrefix
	positionPrefix
	genesisPrefix
)

// Chunks
const (
	BalanceChunks  uint16 = 1
	PoolChunks     uint16 = 3
	PositionChunks uint16 = 1
)

const (
	successByte = 0x1
	failureByte = 0x0
)

// Record sizes
const (
	PoolSize     = 5*codec.AddressLen + 2*consts.Uint64Len
	PositionSize = codec.AddressLen + 2*consts.Uint64Len
	txSize       = consts.Int64Len + consts.BoolLen
)
