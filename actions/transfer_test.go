// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain/chaintest"
	"github.com/ava-labs/cpamm/codec/codectest"
	"github.com/ava-labs/cpamm/custody"
	"github.com/ava-labs/cpamm/state"
)

func TestTransferAction(t *testing.T) {
	sender := codectest.NewRandomAddress()
	receiver := codectest.NewRandomAddress()

	funded := chaintest.NewInMemoryStore()
	fund(t, funded, assetA, sender, 10)

	tests := []chaintest.ActionTest{
		{
			Name:        "zero value",
			Action:      &Transfer{Asset: assetA, To: receiver},
			State:       chaintest.NewInMemoryStore(),
			Actor:       sender,
			ExpectedErr: amm.ErrInvalidAmount,
		},
		{
			Name:        "not enough balance",
			Action:      &Transfer{Asset: assetA, To: receiver, Value: 11},
			State:       funded,
			Actor:       sender,
			ExpectedErr: custody.ErrInsufficientFunds,
			Assertion:   unchanged(funded.Snapshot()),
		},
		{
			Name:   "simple transfer",
			Action: &Transfer{Asset: assetA, To: receiver, Value: 4},
			State: func() state.Mutable {
				store := chaintest.NewInMemoryStore()
				fund(t, store, assetA, sender, 10)
				return store
			}(),
			Actor:           sender,
			ExpectedOutputs: &TransferResult{SenderBalance: 6, ReceiverBalance: 4},
			Assertion: func(_ context.Context, t *testing.T, mu state.Mutable) {
				require.Equal(t, uint64(4), balance(t, mu, assetA, receiver))
			},
		},
		{
			Name:   "donation to custody",
			Action: &Transfer{Asset: assetA, To: custodyA, Value: 10},
			State: func() state.Mutable {
				store := seededStore(t, sender, 100, 100)
				fund(t, store, assetA, sender, 10)
				return store
			}(),
			Actor:           sender,
			ExpectedOutputs: &TransferResult{SenderBalance: 0, ReceiverBalance: 110},
			Assertion: func(_ context.Context, t *testing.T, mu state.Mutable) {
				a, _ := getPool(t, mu).Amounts()
				require.Equal(t, uint64(100), a)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
