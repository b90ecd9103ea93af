// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/storage"
)

var _ chain.Recorder = txRecorder{}

// txRecorder stores the outcome of every executed transaction alongside its
// state changes. Failed transactions are recorded too so they cannot be
// replayed.
type txRecorder struct{}

func (txRecorder) Record(ctx context.Context, batch database.KeyValueWriter, result *chain.Result) error {
	return storage.StoreTransaction(ctx, batch, result.TxID, result.Timestamp, result.Success)
}
