// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/codec/codectest"
	"github.com/ava-labs/cpamm/consts"
)

func TestActionRegistry(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	tests := []chain.Action{
		&Initialize{AssetA: assetA, AssetB: assetB},
		&AddLiquidity{AssetA: assetA, AssetB: assetB, AmountA: 1_000, AmountB: 2_000},
		&RemoveLiquidity{AssetA: assetA, AssetB: assetB, AmountB: 7},
		&SwapAToB{AssetA: assetA, AssetB: assetB, AmountIn: 100},
		&SwapBToA{AssetA: assetA, AssetB: assetB, AmountIn: 182},
		&Transfer{Asset: assetA, To: codectest.NewRandomAddress(), Value: 5},
	}
	for _, action := range tests {
		t.Run(fmt.Sprintf("%T", action), func(t *testing.T) {
			require := require.New(t)

			p := codec.NewWriter(consts.ByteLen+action.Size(), consts.NetworkSize)
			p.PackByte(action.GetTypeID())
			action.Marshal(p)
			require.NoError(p.Err())
			require.Len(p.Bytes(), consts.ByteLen+action.Size())

			parsed, err := registry.Unmarshal(codec.NewReader(p.Bytes(), consts.NetworkSize))
			require.NoError(err)
			require.Equal(action, parsed)
		})
	}
}

func TestUnmarshalRejectsEmptyAsset(t *testing.T) {
	p := codec.NewWriter(pairSize, pairSize)
	p.PackAddress(codec.EmptyAddress)
	p.PackAddress(assetB)
	_, err := UnmarshalInitialize(codec.NewReader(p.Bytes(), pairSize))
	require.ErrorIs(t, err, codec.ErrFieldNotPopulated)
}
