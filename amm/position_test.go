// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionRecordDeposit(t *testing.T) {
	require := require.New(t)

	p := Position{}
	require.NoError(p.RecordDeposit(1000, 2000))
	require.NoError(p.RecordDeposit(0, 5))
	require.Equal(uint64(1000), p.AmountA)
	require.Equal(uint64(2005), p.AmountB)

	p = Position{AmountA: math.MaxUint64 - 1, AmountB: 3}
	require.ErrorIs(p.RecordDeposit(2, 0), ErrOverflow)
	require.Equal(uint64(math.MaxUint64-1), p.AmountA)
	require.Equal(uint64(3), p.AmountB)
}

func TestPositionRecordWithdrawal(t *testing.T) {
	tests := []struct {
		a, b        uint64
		expectedErr error
		expectedA   uint64
		expectedB   uint64
	}{
		{a: 1000, b: 2000, expectedA: 0, expectedB: 0},
		{a: 400, b: 0, expectedA: 600, expectedB: 2000},
		{a: 1001, b: 0, expectedErr: ErrInsufficientLiquidity, expectedA: 1000, expectedB: 2000},
		{a: 0, b: 2001, expectedErr: ErrInsufficientLiquidity, expectedA: 1000, expectedB: 2000},
		{a: 1001, b: 2001, expectedErr: ErrInsufficientLiquidity, expectedA: 1000, expectedB: 2000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d", tt.a, tt.b), func(t *testing.T) {
			require := require.New(t)
			p := Position{AmountA: 1000, AmountB: 2000}
			require.ErrorIs(p.RecordWithdrawal(tt.a, tt.b), tt.expectedErr)
			require.Equal(tt.expectedA, p.AmountA)
			require.Equal(tt.expectedB, p.AmountB)
		})
	}
}

func TestPositionEmpty(t *testing.T) {
	require := require.New(t)

	require.True((&Position{}).Empty())
	require.False((&Position{AmountB: 1}).Empty())
}
