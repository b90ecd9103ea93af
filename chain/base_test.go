// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/codec"
)

func TestBaseExecute(t *testing.T) {
	chainID := ids.GenerateTestID()
	const window = int64(60_000)

	tests := []struct {
		name string
		base *Base
		now  int64
		err  error
	}{
		{name: "valid", base: &Base{Timestamp: 100_000, ChainID: chainID}, now: 100_000},
		{name: "edge of window", base: &Base{Timestamp: 160_000, ChainID: chainID}, now: 100_000},
		{name: "too late", base: &Base{Timestamp: 160_001, ChainID: chainID}, now: 100_000, err: ErrTimestampTooLate},
		{name: "too old", base: &Base{Timestamp: 39_999, ChainID: chainID}, now: 100_000, err: ErrTimestampTooOld},
		{name: "wrong chain", base: &Base{Timestamp: 100_000, ChainID: ids.GenerateTestID()}, now: 100_000, err: ErrInvalidChainID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.base.Execute(chainID, window, tt.now), tt.err)
		})
	}
}

func TestBaseMarshal(t *testing.T) {
	require := require.New(t)

	base := &Base{Timestamp: 42, ChainID: ids.GenerateTestID(), Nonce: 7}
	p := codec.NewWriter(base.Size(), base.Size())
	base.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), BaseSize)

	parsed, err := UnmarshalBase(codec.NewReader(p.Bytes(), BaseSize))
	require.NoError(err)
	require.Equal(base, parsed)
}

func TestNewBase(t *testing.T) {
	require := require.New(t)
	chainID := ids.GenerateTestID()

	a, b := NewBase(42, chainID), NewBase(42, chainID)
	require.Equal(int64(42), a.Timestamp)
	require.Equal(chainID, a.ChainID)
	require.NotEqual(a.Nonce, b.Nonce)
	require.NoError(a.Execute(chainID, 0, 42))
}
