// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input       string
		balance     uint64
		expected    uint64
		expectedErr error
	}{
		{input: " 100 ", balance: 100, expected: 100},
		{input: "", balance: 100, expectedErr: ErrInputEmpty},
		{input: "101", balance: 100, expectedErr: ErrInsufficientBalance},
		{input: "-1", balance: 100, expectedErr: strconv.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require := require.New(t)
			amount, err := ParseAmount(tt.input, tt.balance)
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.expected, amount)
		})
	}
}

func TestParseChoice(t *testing.T) {
	require := require.New(t)

	index, err := ParseChoice("2", 3)
	require.NoError(err)
	require.Equal(2, index)

	_, err = ParseChoice("3", 3)
	require.ErrorIs(err, ErrIndexOutOfRange)
	_, err = ParseChoice("-1", 3)
	require.ErrorIs(err, ErrIndexOutOfRange)
	_, err = ParseChoice(" ", 3)
	require.ErrorIs(err, ErrInputEmpty)
}

func TestValidateSymbol(t *testing.T) {
	require := require.New(t)

	require.NoError(ValidateSymbol("AAA"))
	require.ErrorIs(ValidateSymbol("  "), ErrInputEmpty)
	require.ErrorIs(ValidateSymbol(strings.Repeat("A", maxSymbolLen+1)), ErrInputTooLarge)
}
