// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain/chaintest"
	"github.com/ava-labs/cpamm/codec/codectest"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

func TestAddLiquidity(t *testing.T) {
	ctx := context.Background()
	lp := codectest.NewRandomAddress()

	poor := seededStore(t, lp, 0, 0)
	fund(t, poor, assetA, lp, 999)
	fund(t, poor, assetB, lp, 5_000)

	full := seededStore(t, lp, 0, 0)
	fund(t, full, assetA, lp, 10)
	pool := getPool(t, full)
	pool.AmountA = math.MaxUint64 - 1
	require.NoError(t, storage.SetPool(ctx, full, poolAddr, pool))

	tests := []chaintest.ActionTest{
		{
			Name:        "both amounts zero",
			Action:      &AddLiquidity{AssetA: assetA, AssetB: assetB},
			State:       seededStore(t, lp, 0, 0),
			Actor:       lp,
			ExpectedErr: amm.ErrInvalidAmount,
		},
		{
			Name:        "pool not found",
			Action:      &AddLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 1, AmountB: 1},
			State:       chaintest.NewInMemoryStore(),
			Actor:       lp,
			ExpectedErr: amm.ErrPoolNotFound,
		},
		{
			Name:        "provider cannot cover deposit",
			Action:      &AddLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 1_000, AmountB: 2_000},
			State:       poor,
			Actor:       lp,
			ExpectedErr: amm.ErrInsufficientTraderBalance,
			Assertion:   unchanged(poor.Snapshot()),
		},
		{
			Name:        "tracked amount would wrap",
			Action:      &AddLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 10},
			State:       full,
			Actor:       lp,
			ExpectedErr: amm.ErrOverflow,
			Assertion:   unchanged(full.Snapshot()),
		},
		{
			Name:   "first deposit creates position",
			Action: &AddLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 1_000, AmountB: 2_000},
			State: func() state.Mutable {
				store := seededStore(t, lp, 0, 0)
				fund(t, store, assetA, lp, 1_500)
				fund(t, store, assetB, lp, 2_000)
				return store
			}(),
			Actor: lp,
			ExpectedOutputs: &LiquidityResult{
				typeID:    consts.AddLiquidityID,
				Pool:      poolAddr,
				AmountA:   1_000,
				AmountB:   2_000,
				PositionA: 1_000,
				PositionB: 2_000,
				PoolA:     1_000,
				PoolB:     2_000,
			},
			Assertion: func(_ context.Context, t *testing.T, mu state.Mutable) {
				require := require.New(t)
				require.Equal(uint64(500), balance(t, mu, assetA, lp))
				require.Zero(balance(t, mu, assetB, lp))
				require.Equal(uint64(1_000), balance(t, mu, assetA, custodyA))
				require.Equal(uint64(2_000), balance(t, mu, assetB, custodyB))
				position := getPosition(t, mu, lp)
				require.Equal(lp, position.Owner)
				require.Equal(uint64(1_000), position.AmountA)
				require.Equal(uint64(2_000), position.AmountB)
			},
		},
		{
			Name:   "one sided deposit accumulates",
			Action: &AddLiquidity{AssetA: assetA, AssetB: assetB, AmountB: 500},
			State: func() state.Mutable {
				store := seededStore(t, lp, 1_000, 2_000)
				fund(t, store, assetB, lp, 500)
				return store
			}(),
			Actor: lp,
			ExpectedOutputs: &LiquidityResult{
				typeID:    consts.AddLiquidityID,
				Pool:      poolAddr,
				AmountB:   500,
				PositionA: 1_000,
				PositionB: 2_500,
				PoolA:     1_000,
				PoolB:     2_500,
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestAddLiquidityPositionsAreIndependent(t *testing.T) {
	require := require.New(t)
	lp := codectest.NewRandomAddress()
	other := codectest.NewRandomAddress()

	store := seededStore(t, lp, 1_000, 2_000)
	fund(t, store, assetA, other, 10)
	fund(t, store, assetB, other, 20)
	execute(t, store, other, &AddLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 10, AmountB: 20})

	require.Equal(&amm.Position{Owner: lp, AmountA: 1_000, AmountB: 2_000}, getPosition(t, store, lp))
	require.Equal(&amm.Position{Owner: other, AmountA: 10, AmountB: 20}, getPosition(t, store, other))
	a, b := getPool(t, store).Amounts()
	require.Equal(uint64(1_010), a)
	require.Equal(uint64(2_020), b)
}
