// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

// pairSize is the encoded size of the (AssetA, AssetB) pair every pool
// action starts with.
const pairSize = 2 * codec.AddressLen

// pairKeys returns every key an operation by [actor] on the pool of
// ([assetA], [assetB]) may touch.
func pairKeys(actor, assetA, assetB codec.Address) state.Keys {
	pool := storage.PoolAddress(assetA, assetB)
	return state.Keys{
		string(storage.PoolKey(pool)):                                             state.All,
		string(storage.PositionKey(pool, actor)):                                  state.All,
		string(storage.BalanceKey(assetA, actor)):                                 state.All,
		string(storage.BalanceKey(assetB, actor)):                                 state.All,
		string(storage.BalanceKey(assetA, storage.CustodyAddress(pool, assetA))): state.All,
		string(storage.BalanceKey(assetB, storage.CustodyAddress(pool, assetB))): state.All,
	}
}

func packPair(p *codec.Packer, assetA, assetB codec.Address) {
	p.PackAddress(assetA)
	p.PackAddress(assetB)
}

func unpackPair(p *codec.Packer, assetA, assetB *codec.Address) {
	p.UnpackAddress(assetA)
	p.UnpackAddress(assetB)
}

// ensureBalance fails with [kind] when [account] holds less than [amount]
// of [asset].
func ensureBalance(
	ctx context.Context,
	im state.Immutable,
	asset codec.Address,
	account codec.Address,
	amount uint64,
	kind error,
) error {
	bal, err := storage.GetBalance(ctx, im, asset, account)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf("%w: %s holds %d of %s, needs %d", kind, account, bal, asset, amount)
	}
	return nil
}

// ensureCredit fails with amm.ErrOverflow when crediting [amount] of
// [asset] to [account] would wrap.
func ensureCredit(
	ctx context.Context,
	im state.Immutable,
	asset codec.Address,
	account codec.Address,
	amount uint64,
) error {
	bal, err := storage.GetBalance(ctx, im, asset, account)
	if err != nil {
		return err
	}
	if _, err := amm.Add(bal, amount); err != nil {
		return fmt.Errorf("%w: crediting %d of %s to %s", err, amount, asset, account)
	}
	return nil
}

// NewRegistry returns the actions a transaction may carry.
func NewRegistry() (chain.ActionRegistry, error) {
	registry := codec.NewTypeParser[chain.Action]()
	errs := &wrappers.Errs{}
	errs.Add(
		registry.Register(consts.InitializeID, UnmarshalInitialize),
		registry.Register(consts.AddLiquidityID, UnmarshalAddLiquidity),
		registry.Register(consts.RemoveLiquidityID, UnmarshalRemoveLiquidity),
		registry.Register(consts.SwapAToBID, UnmarshalSwapAToB),
		registry.Register(consts.SwapBToAID, UnmarshalSwapBToA),
		registry.Register(consts.TransferID, UnmarshalTransfer),
	)
	if errs.Errored() {
		return nil, errs.Err
	}
	return registry, nil
}
