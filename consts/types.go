// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

// Address type IDs
const (
	ED25519ID uint8 = iota
	PoolID
	CustodyID
	AssetID
)

// Action type IDs
const (
	InitializeID uint8 = iota
	AddLiquidityID
	RemoveLiquidityID
	SwapAToBID
	SwapBToAID
	TransferID
)
