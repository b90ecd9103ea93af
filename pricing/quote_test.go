// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/amm"
)

func TestNewQuote(t *testing.T) {
	require := require.New(t)

	q, err := NewQuote(NewConstantProduct(1000, 2000), amm.AToB, 100)
	require.NoError(err)
	require.Equal(uint64(182), q.AmountOut)
	require.Equal(uint64(1100), q.NewReserveIn)
	require.Equal(uint64(1818), q.NewReserveOut)
	require.True(q.SpotPrice.Equal(decimal.NewFromInt(2)))
	require.True(q.ExecPrice.Equal(decimal.RequireFromString("1.82")))
	require.True(q.PriceImpact.Equal(decimal.RequireFromString("0.09")))

	_, err = NewQuote(NewConstantProduct(1000, 2000), amm.AToB, 0)
	require.ErrorIs(err, amm.ErrInvalidAmount)
}

func TestSpotPrice(t *testing.T) {
	require := require.New(t)

	require.True(SpotPrice(0, 10).IsZero())
	require.True(SpotPrice(3, 1).Equal(decimal.RequireFromString("0.333333333333333333")))
	require.Equal("2", SpotPrice(1000, 2000).String())
}
