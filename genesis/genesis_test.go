// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain/chaintest"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/codec/codectest"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/storage"
	"github.com/ava-labs/cpamm/trace"
)

func TestInitializeState(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	lp := codectest.NewRandomAddress()
	authority := codectest.NewRandomAddress()

	g, err := Load([]byte(fmt.Sprintf(`{
		"allocations": [
			{"asset": "AAA", "address": %q, "balance": 1000},
			{"asset": "BBB", "address": %q, "balance": 2000}
		],
		"pools": [{"authority": %q, "assetA": "AAA", "assetB": "BBB"}]
	}`, lp, codec.MustAddressBech32(consts.HRP, lp), authority)))
	require.NoError(err)

	store := chaintest.NewInMemoryStore()
	require.NoError(g.InitializeState(ctx, trace.Noop(), store))

	bal, err := storage.GetBalance(ctx, store, storage.AssetAddress("AAA"), lp)
	require.NoError(err)
	require.Equal(uint64(1_000), bal)
	bal, err = storage.GetBalance(ctx, store, storage.AssetAddress("BBB"), lp)
	require.NoError(err)
	require.Equal(uint64(2_000), bal)

	pool, err := storage.GetPool(ctx, store, storage.PoolAddress(storage.AssetAddress("AAA"), storage.AssetAddress("BBB")))
	require.NoError(err)
	require.Equal(authority, pool.Authority)

	keys, err := g.StateKeys()
	require.NoError(err)
	require.Len(keys, 3)
}

func TestInitializeStateErrors(t *testing.T) {
	addr := codectest.NewRandomAddress()

	tests := []struct {
		name    string
		genesis *Genesis
		err     error
	}{
		{
			name: "supply overflow",
			genesis: &Genesis{Allocations: []*Allocation{
				{Asset: "AAA", Address: addr.String(), Balance: math.MaxUint64},
				{Asset: "AAA", Address: codectest.NewRandomAddress().String(), Balance: 1},
			}},
			err: amm.ErrOverflow,
		},
		{
			name:    "empty asset",
			genesis: &Genesis{Allocations: []*Allocation{{Address: addr.String(), Balance: 1}}},
			err:     ErrEmptyAsset,
		},
		{
			name:    "identical assets",
			genesis: &Genesis{Pools: []*Pool{{Authority: addr.String(), AssetA: "AAA", AssetB: "AAA"}}},
			err:     amm.ErrIdenticalAssets,
		},
		{
			name: "duplicate pool",
			genesis: &Genesis{Pools: []*Pool{
				{Authority: addr.String(), AssetA: "AAA", AssetB: "BBB"},
				{Authority: addr.String(), AssetA: "AAA", AssetB: "BBB"},
			}},
			err: amm.ErrPoolAlreadyInitialized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.genesis.InitializeState(context.Background(), trace.Noop(), chaintest.NewInMemoryStore())
			require.ErrorIs(t, err, tt.err)
		})
	}
}
