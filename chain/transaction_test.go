// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain_test

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/chain/chaintest"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/codec/codectest"
)

func newTestTx(t *testing.T, shouldErr bool) *chain.Transaction {
	tx := chain.NewTx(
		&chain.Base{Timestamp: 1_000, ChainID: ids.GenerateTestID()},
		&chaintest.TestAction{
			WriteKeys: [][]byte{chaintest.TestKey("a")},
			Value:     []byte("value"),
		},
	)
	signed, err := tx.Sign(&chaintest.TestAuthFactory{
		ActorAddress: codectest.NewRandomAddress(),
		ShouldErr:    shouldErr,
	})
	require.NoError(t, err)
	return signed
}

func TestTransactionRoundTrip(t *testing.T) {
	require := require.New(t)
	actions, auths := chaintest.NewRegistries()

	tx := newTestTx(t, false)
	require.NotEqual(ids.Empty, tx.ID())
	require.NoError(tx.Verify(context.Background()))

	parsed, err := chain.ParseTx(tx.Bytes(), actions, auths)
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(tx.Base, parsed.Base)
	require.Equal(tx.Action, parsed.Action)
	require.Equal(tx.Actor(), parsed.Actor())
	require.Equal(tx.Bytes(), parsed.Bytes())
	require.NoError(parsed.Verify(context.Background()))
}

func TestIdenticalActionsGetDistinctIDs(t *testing.T) {
	require := require.New(t)
	actions, auths := chaintest.NewRegistries()
	chainID := ids.GenerateTestID()
	factory := &chaintest.TestAuthFactory{ActorAddress: codectest.NewRandomAddress()}
	action := &chaintest.TestAction{
		WriteKeys: [][]byte{chaintest.TestKey("a")},
		Value:     []byte("value"),
	}

	first, err := chain.NewTx(chain.NewBase(1_000, chainID), action).Sign(factory)
	require.NoError(err)
	second, err := chain.NewTx(chain.NewBase(1_000, chainID), action).Sign(factory)
	require.NoError(err)
	require.NotEqual(first.ID(), second.ID())

	parsed, err := chain.ParseTx(second.Bytes(), actions, auths)
	require.NoError(err)
	require.Equal(second.Base.Nonce, parsed.Base.Nonce)
	require.Equal(second.ID(), parsed.ID())
}

func TestTransactionInvalidSignature(t *testing.T) {
	tx := newTestTx(t, true)
	require.ErrorIs(t, tx.Verify(context.Background()), chain.ErrInvalidSignature)
}

func TestTransactionUnsigned(t *testing.T) {
	require := require.New(t)

	tx := chain.NewTx(&chain.Base{Timestamp: 1, ChainID: ids.GenerateTestID()}, &chaintest.TestAction{})
	require.ErrorIs(tx.Verify(context.Background()), chain.ErrUnsignedTx)
	require.Equal(codec.EmptyAddress, tx.Actor())
}

func TestParseTxErrors(t *testing.T) {
	actions, auths := chaintest.NewRegistries()
	valid := newTestTx(t, false).Bytes()

	tests := []struct {
		name string
		b    []byte
		err  error
	}{
		{
			name: "trailing bytes",
			b:    append(append([]byte{}, valid...), 0),
			err:  chain.ErrInvalidObject,
		},
		{
			name: "unknown action",
			b: func() []byte {
				b := append([]byte{}, valid...)
				b[chain.BaseSize] = 0x01
				return b
			}(),
			err: codec.ErrUnknownTypeID,
		},
		{
			name: "missing timestamp",
			b:    make([]byte, chain.BaseSize+1),
			err:  codec.ErrFieldNotPopulated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chain.ParseTx(tt.b, actions, auths)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
