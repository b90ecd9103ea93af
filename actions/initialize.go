// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var (
	_ chain.Action = (*Initialize)(nil)
	_ codec.Typed  = (*InitializeResult)(nil)
)

// Initialize creates the empty pool for (AssetA, AssetB). The actor becomes
// the pool authority.
type Initialize struct {
	AssetA codec.Address `json:"assetA"`
	AssetB codec.Address `json:"assetB"`
}

func (*Initialize) GetTypeID() uint8 {
	return consts.InitializeID
}

func (i *Initialize) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.PoolKey(storage.PoolAddress(i.AssetA, i.AssetB))): state.All,
	}
}

func (i *Initialize) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	if i.AssetA == i.AssetB {
		return nil, fmt.Errorf("%w: %s", amm.ErrIdenticalAssets, i.AssetA)
	}
	addr, pool := storage.NewPool(actor, i.AssetA, i.AssetB)
	exists, err := storage.PoolExists(ctx, mu, addr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", amm.ErrPoolAlreadyInitialized, addr)
	}
	if err := storage.SetPool(ctx, mu, addr, pool); err != nil {
		return nil, err
	}
	return &InitializeResult{
		Pool:      addr,
		Authority: actor,
		CustodyA:  pool.CustodyA,
		CustodyB:  pool.CustodyB,
	}, nil
}

func (*Initialize) Size() int {
	return pairSize
}

func (i *Initialize) Marshal(p *codec.Packer) {
	packPair(p, i.AssetA, i.AssetB)
}

func UnmarshalInitialize(p *codec.Packer) (chain.Action, error) {
	var i Initialize
	unpackPair(p, &i.AssetA, &i.AssetB)
	return &i, p.Err()
}

type InitializeResult struct {
	Pool      codec.Address `json:"pool"`
	Authority codec.Address `json:"authority"`
	CustodyA  codec.Address `json:"custodyA"`
	CustodyB  codec.Address `json:"custodyB"`
}

func (*InitializeResult) GetTypeID() uint8 {
	return consts.InitializeID
}
