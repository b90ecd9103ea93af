// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/vm"
)

//go:generate mockgen -package=rpc -destination=mock_vm.go . VM

type VM interface {
	ChainID() ids.ID
	ValidityWindow() int64
	Now() int64
	SubmitBytes(ctx context.Context, tx []byte) (*chain.Result, error)
	Pool(ctx context.Context, assetA codec.Address, assetB codec.Address) (*vm.PoolState, error)
	Position(ctx context.Context, assetA codec.Address, assetB codec.Address, owner codec.Address) (*amm.Position, error)
	Balance(ctx context.Context, asset codec.Address, account codec.Address) (uint64, error)
	Quote(ctx context.Context, assetA codec.Address, assetB codec.Address, dir amm.Direction, in uint64) (*pricing.Quote, error)
	Transaction(ctx context.Context, txID ids.ID) (bool, int64, bool, error)
}
