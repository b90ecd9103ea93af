// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	IDLen       = 32
	ByteLen     = 1
	BoolLen     = 1
	Uint16Len   = 2
	IntLen      = 4
	Uint64Len   = 8
	Int64Len    = 8
	MaxUint16   = ^uint16(0)
	NetworkSize = 1024 * 1024
)

const (
	Name = "cpamm"
	HRP  = "amm"
)
