// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/chain/chaintest"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/codec/codectest"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/trace"
)

type harness struct {
	t         *testing.T
	db        *memdb.Database
	processor *chain.Processor
}

func newHarness(t *testing.T) *harness {
	db := memdb.New()
	processor, err := chain.NewProcessor(logging.NoLog{}, trace.Noop(), db, prometheus.NewRegistry(), nil)
	require.NoError(t, err)
	return &harness{t: t, db: db, processor: processor}
}

// run executes [action] as [actor] through the processor, so only the keys
// the action declares are reachable.
func (h *harness) run(actor codec.Address, action chain.Action) *chain.Result {
	tx, err := chain.NewTx(&chain.Base{Timestamp: 1, ChainID: ids.Empty}, action).Sign(
		&chaintest.TestAuthFactory{ActorAddress: actor},
	)
	require.NoError(h.t, err)
	result, err := h.processor.Execute(context.Background(), tx, 1)
	require.NoError(h.t, err)
	return result
}

func (h *harness) view() state.Immutable {
	return state.NewReader(h.db)
}

func (h *harness) snapshot() map[string][]byte {
	it := h.db.NewIterator()
	defer it.Release()
	out := map[string][]byte{}
	for it.Next() {
		out[string(it.Key())] = append([]byte{}, it.Value()...)
	}
	return out
}

func TestReferenceScenario(t *testing.T) {
	require := require.New(t)
	h := newHarness(t)
	authority := codectest.NewRandomAddress()
	lp := codectest.NewRandomAddress()
	trader := codectest.NewRandomAddress()

	// Asset issuers are modeled as accounts seeded directly.
	require.NoError(storageSeed(h, assetA, lp, 1_000))
	require.NoError(storageSeed(h, assetB, lp, 2_000))
	require.NoError(storageSeed(h, assetA, trader, 100))

	require.True(h.run(authority, &Initialize{AssetA: assetA, AssetB: assetB}).Success)
	result := h.run(authority, &Initialize{AssetA: assetA, AssetB: assetB})
	require.ErrorIs(result.Err(), amm.ErrPoolAlreadyInitialized)

	result = h.run(lp, &AddLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 1_000, AmountB: 2_000})
	require.True(result.Success, result.Error)

	result = h.run(trader, &SwapAToB{AssetA: assetA, AssetB: assetB, AmountIn: 100})
	require.True(result.Success, result.Error)
	swap := result.Output.(*SwapResult)
	require.Equal(uint64(182), swap.AmountOut)

	pool := getPool(t, h.view())
	a, b := pool.Amounts()
	require.Equal(uint64(1_100), a)
	require.Equal(uint64(1_818), b)

	// The position still records 1000/2000, but custody only holds 1818 B.
	before := h.snapshot()
	result = h.run(lp, &RemoveLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 1_000, AmountB: 2_000})
	require.False(result.Success)
	require.ErrorIs(result.Err(), amm.ErrInsufficientPoolBalance)
	require.Equal(before, h.snapshot())

	result = h.run(lp, &RemoveLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 1_000, AmountB: 1_818})
	require.True(result.Success, result.Error)

	im := h.view()
	require.Equal(uint64(1_000), balance(t, im, assetA, lp))
	require.Equal(uint64(1_818), balance(t, im, assetB, lp))
	require.Equal(uint64(182), balance(t, im, assetB, trader))
	require.Equal(uint64(100), balance(t, im, assetA, custodyA))
	require.Zero(balance(t, im, assetB, custodyB))

	position := getPosition(t, im, lp)
	require.Zero(position.AmountA)
	require.Equal(uint64(182), position.AmountB)

	require.Equal(uint64(1_100), totalSupply(t, im, assetA, lp, trader, custodyA))
	require.Equal(uint64(2_000), totalSupply(t, im, assetB, lp, trader, custodyB))
}

func TestFailedActionLeavesDatabaseUnchanged(t *testing.T) {
	require := require.New(t)
	h := newHarness(t)
	lp := codectest.NewRandomAddress()

	require.NoError(storageSeed(h, assetA, lp, 1_000))
	require.True(h.run(lp, &Initialize{AssetA: assetA, AssetB: assetB}).Success)

	before := h.snapshot()
	result := h.run(lp, &AddLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 1_000, AmountB: 1})
	require.ErrorIs(result.Err(), amm.ErrInsufficientTraderBalance)
	require.Equal(before, h.snapshot())
}
