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
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var (
	_ chain.Action = (*SwapAToB)(nil)
	_ chain.Action = (*SwapBToA)(nil)
	_ codec.Typed  = (*SwapResult)(nil)
)

// SwapAToB sells AmountIn of asset A to the pool for asset B.
type SwapAToB struct {
	AssetA   codec.Address `json:"assetA"`
	AssetB   codec.Address `json:"assetB"`
	AmountIn uint64        `json:"amountIn"`
}

func (*SwapAToB) GetTypeID() uint8 {
	return consts.SwapAToBID
}

func (s *SwapAToB) StateKeys(actor codec.Address) state.Keys {
	return pairKeys(actor, s.AssetA, s.AssetB)
}

func (s *SwapAToB) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	return executeSwap(ctx, mu, actor, s.AssetA, s.AssetB, amm.AToB, s.AmountIn)
}

func (*SwapAToB) Size() int {
	return pairSize + consts.Uint64Len
}

func (s *SwapAToB) Marshal(p *codec.Packer) {
	packPair(p, s.AssetA, s.AssetB)
	p.PackUint64(s.AmountIn)
}

func UnmarshalSwapAToB(p *codec.Packer) (chain.Action, error) {
	var s SwapAToB
	unpackPair(p, &s.AssetA, &s.AssetB)
	s.AmountIn = p.UnpackUint64(false)
	return &s, p.Err()
}

// SwapBToA sells AmountIn of asset B to the pool for asset A.
type SwapBToA struct {
	AssetA   codec.Address `json:"assetA"`
	AssetB   codec.Address `json:"assetB"`
	AmountIn uint64        `json:"amountIn"`
}

func (*SwapBToA) GetTypeID() uint8 {
	return consts.SwapBToAID
}

func (s *SwapBToA) StateKeys(actor codec.Address) state.Keys {
	return pairKeys(actor, s.AssetA, s.AssetB)
}

func (s *SwapBToA) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	return executeSwap(ctx, mu, actor, s.AssetA, s.AssetB, amm.BToA, s.AmountIn)
}

func (*SwapBToA) Size() int {
	return pairSize + consts.Uint64Len
}

func (s *SwapBToA) Marshal(p *codec.Packer) {
	packPair(p, s.AssetA, s.AssetB)
	p.PackUint64(s.AmountIn)
}

func UnmarshalSwapBToA(p *codec.Packer) (chain.Action, error) {
	var s SwapBToA
	unpackPair(p, &s.AssetA, &s.AssetB)
	s.AmountIn = p.UnpackUint64(false)
	return &s, p.Err()
}

// executeSwap prices [in] against the live custody balances, takes the
// input from [actor] and pays the output from custody.
func executeSwap(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	assetA codec.Address,
	assetB codec.Address,
	dir amm.Direction,
	in uint64,
) (codec.Typed, error) {
	addr := storage.PoolAddress(assetA, assetB)
	pool, err := storage.GetPool(ctx, mu, addr)
	if err != nil {
		return nil, err
	}
	balA, balB, err := storage.CurrentBalances(ctx, mu, pool)
	if err != nil {
		return nil, err
	}
	curve := pricing.NewConstantProduct(balA, balB)
	if dir == amm.BToA {
		curve = pricing.NewConstantProduct(balB, balA)
	}
	out, err := curve.AmountOut(in)
	if err != nil {
		return nil, err
	}

	assetIn, assetOut, custodyIn, custodyOut := pool.Legs(dir)
	if err := ensureBalance(ctx, mu, assetIn, actor, in, amm.ErrInsufficientTraderBalance); err != nil {
		return nil, err
	}
	if err := ensureCredit(ctx, mu, assetOut, actor, out); err != nil {
		return nil, err
	}
	if err := pool.ApplySwap(dir, in, out); err != nil {
		return nil, err
	}

	if err := custody.Transfer(ctx, mu, custody.Signer(actor), assetIn, actor, custodyIn, in); err != nil {
		return nil, err
	}
	if err := custody.Transfer(ctx, mu, custody.PoolAuthority(pool), assetOut, custodyOut, actor, out); err != nil {
		return nil, err
	}
	if err := storage.SetPool(ctx, mu, addr, pool); err != nil {
		return nil, err
	}
	return &SwapResult{
		typeID:    swapTypeID(dir),
		Pool:      addr,
		Direction: dir,
		AmountIn:  in,
		AmountOut: out,
		PoolA:     pool.AmountA,
		PoolB:     pool.AmountB,
	}, nil
}

func swapTypeID(dir amm.Direction) uint8 {
	if dir == amm.AToB {
		return consts.SwapAToBID
	}
	return consts.SwapBToAID
}

type SwapResult struct {
	typeID uint8

	Pool      codec.Address `json:"pool"`
	Direction amm.Direction `json:"direction"`
	AmountIn  uint64        `json:"amountIn"`
	AmountOut uint64        `json:"amountOut"`
	PoolA     uint64        `json:"poolA"`
	PoolB     uint64        `json:"poolB"`
}

func (r *SwapResult) GetTypeID() uint8 {
	return r.typeID
}
