// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/custody"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var _ chain.Action = (*RemoveLiquidity)(nil)

// RemoveLiquidity returns up to the actor's recorded contribution from the
// pool's custody. The position is kept even when it drops to zero.
type RemoveLiquidity struct {
	AssetA  codec.Address `json:"assetA"`
	AssetB  codec.Address `json:"assetB"`
	AmountA uint64        `json:"amountA"`
	AmountB uint64        `json:"amountB"`
}

func (*RemoveLiquidity) GetTypeID() uint8 {
	return consts.RemoveLiquidityID
}

func (r *RemoveLiquidity) StateKeys(actor codec.Address) state.Keys {
	return pairKeys(actor, r.AssetA, r.AssetB)
}

func (r *RemoveLiquidity) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	addr := storage.PoolAddress(r.AssetA, r.AssetB)
	pool, err := storage.GetPool(ctx, mu, addr)
	if err != nil {
		return nil, err
	}
	position, err := storage.GetPosition(ctx, mu, addr, actor)
	if err != nil {
		return nil, err
	}
	if r.AmountA == 0 && r.AmountB == 0 {
		return nil, amm.ErrInvalidAmount
	}
	if err := position.RecordWithdrawal(r.AmountA, r.AmountB); err != nil {
		return nil, err
	}

	// A contribution is only a claim: custody may hold less after swaps.
	if err := ensureBalance(ctx, mu, pool.AssetA, pool.CustodyA, r.AmountA, amm.ErrInsufficientPoolBalance); err != nil {
		return nil, err
	}
	if err := ensureBalance(ctx, mu, pool.AssetB, pool.CustodyB, r.AmountB, amm.ErrInsufficientPoolBalance); err != nil {
		return nil, err
	}
	if err := pool.Withdraw(r.AmountA, r.AmountB); err != nil {
		return nil, err
	}
	if err := ensureCredit(ctx, mu, pool.AssetA, actor, r.AmountA); err != nil {
		return nil, err
	}
	if err := ensureCredit(ctx, mu, pool.AssetB, actor, r.AmountB); err != nil {
		return nil, err
	}

	authority := custody.PoolAuthority(pool)
	if err := custody.Transfer(ctx, mu, authority, pool.AssetA, pool.CustodyA, actor, r.AmountA); err != nil {
		return nil, err
	}
	if err := custody.Transfer(ctx, mu, authority, pool.AssetB, pool.CustodyB, actor, r.AmountB); err != nil {
		return nil, err
	}
	if err := storage.SetPosition(ctx, mu, addr, position); err != nil {
		return nil, err
	}
	if err := storage.SetPool(ctx, mu, addr, pool); err != nil {
		return nil, err
	}
	return newLiquidityResult(consts.RemoveLiquidityID, addr, r.AmountA, r.AmountB, position, pool), nil
}

func (*RemoveLiquidity) Size() int {
	return pairSize + 2*consts.Uint64Len
}

func (r *RemoveLiquidity) Marshal(p *codec.Packer) {
	packPair(p, r.AssetA, r.AssetB)
	p.PackUint64(r.AmountA)
	p.PackUint64(r.AmountB)
}

func UnmarshalRemoveLiquidity(p *codec.Packer) (chain.Action, error) {
	var r RemoveLiquidity
	unpackPair(p, &r.AssetA, &r.AssetB)
	r.AmountA = p.UnpackUint64(false)
	r.AmountB = p.UnpackUint64(false)
	return &r, p.Err()
}
