// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/amm"
)

func TestAmountOut(t *testing.T) {
	tests := []struct {
		name        string
		reserveIn   uint64
		reserveOut  uint64
		in          uint64
		expectedOut uint64
		expectedErr error
	}{
		{
			name:        "reference swap",
			reserveIn:   1000,
			reserveOut:  2000,
			in:          100,
			expectedOut: 182,
		},
		{
			name:        "reverse direction",
			reserveIn:   1818,
			reserveOut:  1100,
			in:          182,
			expectedOut: 101,
		},
		{
			name:        "single unit in",
			reserveIn:   1_000_000,
			reserveOut:  1,
			in:          1,
			expectedOut: 1,
		},
		{
			name:        "zero input",
			reserveIn:   1000,
			reserveOut:  2000,
			expectedErr: amm.ErrInvalidAmount,
		},
		{
			name:        "empty output reserve",
			reserveIn:   1000,
			in:          1,
			expectedErr: amm.ErrInsufficientPoolBalance,
		},
		{
			name:        "empty input reserve",
			reserveOut:  1000,
			in:          1,
			expectedErr: amm.ErrInsufficientPoolBalance,
		},
		{
			name:        "input reserve overflow",
			reserveIn:   math.MaxUint64,
			reserveOut:  10,
			in:          1,
			expectedErr: amm.ErrOverflow,
		},
		{
			name:        "max reserves",
			reserveIn:   math.MaxUint64 / 2,
			reserveOut:  math.MaxUint64,
			in:          math.MaxUint64 / 2,
			expectedOut: math.MaxUint64/2 + 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			out, err := NewConstantProduct(tt.reserveIn, tt.reserveOut).AmountOut(tt.in)
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.expectedOut, out)
		})
	}
}

func TestK(t *testing.T) {
	require := require.New(t)

	c := NewConstantProduct(math.MaxUint64, math.MaxUint64)
	expected := new(uint256.Int).Sub(
		new(uint256.Int).Lsh(uint256.NewInt(1), 128),
		new(uint256.Int).Lsh(uint256.NewInt(1), 65),
	)
	expected.AddUint64(expected, 1)
	require.Equal(expected, c.K())
	require.Equal(uint256.NewInt(2_000_000), NewConstantProduct(1000, 2000).K())
}

// The product after a swap never exceeds k, and the shortfall is exactly the
// division remainder, which is below the new input reserve.
func TestConstantProductHolds(t *testing.T) {
	require := require.New(t)
	r := rand.New(rand.NewSource(1)) //nolint:gosec

	for i := 0; i < 1_000; i++ {
		reserveIn := r.Uint64()>>2 + 1
		reserveOut := r.Uint64()>>2 + 1
		in := r.Uint64()>>2 + 1

		c := NewConstantProduct(reserveIn, reserveOut)
		out, err := c.AmountOut(in)
		require.NoError(err)
		require.Positive(out)
		require.LessOrEqual(out, reserveOut)

		after := new(uint256.Int).Mul(uint256.NewInt(reserveIn+in), uint256.NewInt(reserveOut-out))
		require.True(after.Cmp(c.K()) <= 0)

		rem, err := c.Remainder(in)
		require.NoError(err)
		require.Less(rem, reserveIn+in)
		require.Equal(c.K(), new(uint256.Int).AddUint64(after, rem))
	}
}

func TestRemainder(t *testing.T) {
	require := require.New(t)

	rem, err := NewConstantProduct(1000, 2000).Remainder(100)
	require.NoError(err)
	require.Equal(uint64(2_000_000-1818*1100), rem)

	_, err = NewConstantProduct(math.MaxUint64, 1).Remainder(1)
	require.ErrorIs(err, amm.ErrOverflow)
}
