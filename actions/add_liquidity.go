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

var (
	_ chain.Action = (*AddLiquidity)(nil)
	_ codec.Typed  = (*LiquidityResult)(nil)
)

// AddLiquidity moves AmountA and AmountB from the actor into the pool's
// custody and records them as the actor's contribution. One side may be
// zero.
type AddLiquidity struct {
	AssetA  codec.Address `json:"assetA"`
	AssetB  codec.Address `json:"assetB"`
	AmountA uint64        `json:"amountA"`
	AmountB uint64        `json:"amountB"`
}

func (*AddLiquidity) GetTypeID() uint8 {
	return consts.AddLiquidityID
}

func (a *AddLiquidity) StateKeys(actor codec.Address) state.Keys {
	return pairKeys(actor, a.AssetA, a.AssetB)
}

func (a *AddLiquidity) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	if a.AmountA == 0 && a.AmountB == 0 {
		return nil, amm.ErrInvalidAmount
	}
	addr := storage.PoolAddress(a.AssetA, a.AssetB)
	pool, err := storage.GetPool(ctx, mu, addr)
	if err != nil {
		return nil, err
	}
	position, _, err := storage.GetOrCreatePosition(ctx, mu, addr, actor)
	if err != nil {
		return nil, err
	}

	// Nothing is written until every check has passed.
	if err := ensureBalance(ctx, mu, pool.AssetA, actor, a.AmountA, amm.ErrInsufficientTraderBalance); err != nil {
		return nil, err
	}
	if err := ensureBalance(ctx, mu, pool.AssetB, actor, a.AmountB, amm.ErrInsufficientTraderBalance); err != nil {
		return nil, err
	}
	if err := position.RecordDeposit(a.AmountA, a.AmountB); err != nil {
		return nil, err
	}
	if err := pool.Deposit(a.AmountA, a.AmountB); err != nil {
		return nil, err
	}
	if err := ensureCredit(ctx, mu, pool.AssetA, pool.CustodyA, a.AmountA); err != nil {
		return nil, err
	}
	if err := ensureCredit(ctx, mu, pool.AssetB, pool.CustodyB, a.AmountB); err != nil {
		return nil, err
	}

	signer := custody.Signer(actor)
	if err := custody.Transfer(ctx, mu, signer, pool.AssetA, actor, pool.CustodyA, a.AmountA); err != nil {
		return nil, err
	}
	if err := custody.Transfer(ctx, mu, signer, pool.AssetB, actor, pool.CustodyB, a.AmountB); err != nil {
		return nil, err
	}
	if err := storage.SetPosition(ctx, mu, addr, position); err != nil {
		return nil, err
	}
	if err := storage.SetPool(ctx, mu, addr, pool); err != nil {
		return nil, err
	}
	return newLiquidityResult(consts.AddLiquidityID, addr, a.AmountA, a.AmountB, position, pool), nil
}

func (*AddLiquidity) Size() int {
	return pairSize + 2*consts.Uint64Len
}

func (a *AddLiquidity) Marshal(p *codec.Packer) {
	packPair(p, a.AssetA, a.AssetB)
	p.PackUint64(a.AmountA)
	p.PackUint64(a.AmountB)
}

func UnmarshalAddLiquidity(p *codec.Packer) (chain.Action, error) {
	var a AddLiquidity
	unpackPair(p, &a.AssetA, &a.AssetB)
	a.AmountA = p.UnpackUint64(false)
	a.AmountB = p.UnpackUint64(false)
	return &a, p.Err()
}

// LiquidityResult reports a deposit or withdrawal together with the
// position and pool amounts after it.
type LiquidityResult struct {
	typeID uint8

	Pool      codec.Address `json:"pool"`
	AmountA   uint64        `json:"amountA"`
	AmountB   uint64        `json:"amountB"`
	PositionA uint64        `json:"positionA"`
	PositionB uint64        `json:"positionB"`
	PoolA     uint64        `json:"poolA"`
	PoolB     uint64        `json:"poolB"`
}

func newLiquidityResult(
	typeID uint8,
	addr codec.Address,
	a, b uint64,
	position *amm.Position,
	pool *amm.Pool,
) *LiquidityResult {
	return &LiquidityResult{
		typeID:    typeID,
		Pool:      addr,
		AmountA:   a,
		AmountB:   b,
		PositionA: position.AmountA,
		PositionB: position.AmountB,
		PoolA:     pool.AmountA,
		PoolB:     pool.AmountB,
	}
}

func (r *LiquidityResult) GetTypeID() uint8 {
	return r.typeID
}
