// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

// Quote prices a swap of [in] in [dir] against the live balances of the
// pool of ([assetA], [assetB]) without changing state.
func Quote(
	ctx context.Context,
	im state.Immutable,
	assetA codec.Address,
	assetB codec.Address,
	dir amm.Direction,
	in uint64,
) (*pricing.Quote, error) {
	pool, err := storage.GetPool(ctx, im, storage.PoolAddress(assetA, assetB))
	if err != nil {
		return nil, err
	}
	balA, balB, err := storage.CurrentBalances(ctx, im, pool)
	if err != nil {
		return nil, err
	}
	if dir == amm.BToA {
		balA, balB = balB, balA
	}
	return pricing.NewQuote(pricing.NewConstantProduct(balA, balB), dir, in)
}
