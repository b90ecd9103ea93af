// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain/chaintest"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var (
	assetA = storage.AssetAddress("AAA")
	assetB = storage.AssetAddress("BBB")

	poolAddr = storage.PoolAddress(assetA, assetB)
	custodyA = storage.CustodyAddress(poolAddr, assetA)
	custodyB = storage.CustodyAddress(poolAddr, assetB)
)

func fund(t *testing.T, mu state.Mutable, asset, account codec.Address, amount uint64) {
	require.NoError(t, storage.SetBalance(context.Background(), mu, asset, account, amount))
}

func balance(t *testing.T, im state.Immutable, asset, account codec.Address) uint64 {
	bal, err := storage.GetBalance(context.Background(), im, asset, account)
	require.NoError(t, err)
	return bal
}

func getPool(t *testing.T, im state.Immutable) *amm.Pool {
	pool, err := storage.GetPool(context.Background(), im, poolAddr)
	require.NoError(t, err)
	return pool
}

func getPosition(t *testing.T, im state.Immutable, owner codec.Address) *amm.Position {
	position, err := storage.GetPosition(context.Background(), im, poolAddr, owner)
	require.NoError(t, err)
	return position
}

func execute(t *testing.T, mu state.Mutable, actor codec.Address, action interface {
	Execute(context.Context, state.Mutable, int64, codec.Address, ids.ID) (codec.Typed, error)
},
) codec.Typed {
	output, err := action.Execute(context.Background(), mu, 0, actor, ids.Empty)
	require.NoError(t, err)
	return output
}

// seededStore returns a store holding the pool of (assetA, assetB) with
// [a] and [b] contributed by [lp].
func seededStore(t *testing.T, lp codec.Address, a, b uint64) *chaintest.InMemoryStore {
	store := chaintest.NewInMemoryStore()
	execute(t, store, lp, &Initialize{AssetA: assetA, AssetB: assetB})
	if a == 0 && b == 0 {
		return store
	}
	fund(t, store, assetA, lp, a)
	fund(t, store, assetB, lp, b)
	execute(t, store, lp, &AddLiquidity{AssetA: assetA, AssetB: assetB, AmountA: a, AmountB: b})
	return store
}

// unchanged asserts that [mu] still holds exactly [before].
func unchanged(before map[string][]byte) func(context.Context, *testing.T, state.Mutable) {
	return func(_ context.Context, t *testing.T, mu state.Mutable) {
		require.Equal(t, before, mu.(*chaintest.InMemoryStore).Snapshot())
	}
}

// totalSupply sums the balances of [asset] over [accounts].
func totalSupply(t *testing.T, im state.Immutable, asset codec.Address, accounts ...codec.Address) uint64 {
	var total uint64
	for _, account := range accounts {
		total += balance(t, im, asset, account)
	}
	return total
}

func storageSeed(h *harness, asset, account codec.Address, amount uint64) error {
	batch := h.db.NewBatch()
	if err := batch.Put(storage.BalanceKey(asset, account), binary.BigEndian.AppendUint64(nil, amount)); err != nil {
		return err
	}
	return batch.Write()
}
