// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/rpc"
	"github.com/ava-labs/cpamm/vm"
)

// Outcome is what a submitted action produced. Err is set when the action
// failed after being admitted.
type Outcome struct {
	TxID   ids.ID          `json:"txId"`
	Output json.RawMessage `json:"output,omitempty"`
	Err    error           `json:"-"`
}

// backend is a node the CLI talks to, either in process or over JSON-RPC.
type backend interface {
	Submit(ctx context.Context, action chain.Action, factory chain.AuthFactory) (*Outcome, error)
	Pool(ctx context.Context, assetA codec.Address, assetB codec.Address) (*vm.PoolState, error)
	Position(ctx context.Context, assetA codec.Address, assetB codec.Address, owner codec.Address) (*amm.Position, error)
	Balance(ctx context.Context, asset codec.Address, account codec.Address) (uint64, error)
	Quote(ctx context.Context, assetA codec.Address, assetB codec.Address, dir amm.Direction, in uint64) (*pricing.Quote, error)
	Close() error
}

var (
	_ backend = (*localBackend)(nil)
	_ backend = (*remoteBackend)(nil)
)

type localBackend struct {
	*vm.VM
	close func() error
}

func (l *localBackend) Submit(ctx context.Context, action chain.Action, factory chain.AuthFactory) (*Outcome, error) {
	tx, err := chain.NewTx(chain.NewBase(l.Now(), l.ChainID()), action).Sign(factory)
	if err != nil {
		return nil, err
	}
	result, err := l.VM.Submit(ctx, tx)
	if err != nil {
		return nil, err
	}
	outcome := &Outcome{TxID: result.TxID, Err: result.Err()}
	if result.Output != nil {
		outcome.Output, err = json.Marshal(result.Output)
		if err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

func (l *localBackend) Close() error {
	return l.close()
}

type remoteBackend struct {
	*rpc.JSONRPCClient
}

func (r *remoteBackend) Submit(ctx context.Context, action chain.Action, factory chain.AuthFactory) (*Outcome, error) {
	tx, err := r.GenerateTransaction(ctx, action, factory)
	if err != nil {
		return nil, err
	}
	reply, err := r.SubmitTx(ctx, tx.Bytes())
	if err != nil {
		return nil, err
	}
	return &Outcome{TxID: reply.TxID, Output: reply.Output, Err: reply.Err()}, nil
}

func (*remoteBackend) Close() error {
	return nil
}
