// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/requester"
	"github.com/ava-labs/cpamm/vm"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		struct{}{},
		resp,
	)
	return resp.Success, err
}

// Network returns the chain the node serves and its current time. It is not
// cached because the time changes.
func (cli *JSONRPCClient) Network(ctx context.Context) (*NetworkReply, error) {
	resp := new(NetworkReply)
	err := cli.requester.SendRequest(
		ctx,
		"network",
		struct{}{},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, tx []byte) (*SubmitTxReply, error) {
	resp := new(SubmitTxReply)
	err := cli.requester.SendRequest(
		ctx,
		"submitTx",
		&SubmitTxArgs{Tx: tx},
		resp,
	)
	if err != nil {
		return nil, restoreKind(err)
	}
	return resp, nil
}

// GenerateTransaction signs [action] with [factory] for the chain the node
// serves, stamped with the node's current time.
func (cli *JSONRPCClient) GenerateTransaction(
	ctx context.Context,
	action chain.Action,
	factory chain.AuthFactory,
) (*chain.Transaction, error) {
	network, err := cli.Network(ctx)
	if err != nil {
		return nil, err
	}
	return chain.NewTx(chain.NewBase(network.Timestamp, network.ChainID), action).Sign(factory)
}

// SubmitAction signs and submits [action]. A failed action is returned as
// an error carrying its pool error kind.
func (cli *JSONRPCClient) SubmitAction(
	ctx context.Context,
	action chain.Action,
	factory chain.AuthFactory,
) (*SubmitTxReply, error) {
	tx, err := cli.GenerateTransaction(ctx, action, factory)
	if err != nil {
		return nil, err
	}
	reply, err := cli.SubmitTx(ctx, tx.Bytes())
	if err != nil {
		return nil, err
	}
	return reply, reply.Err()
}

func (cli *JSONRPCClient) Pool(ctx context.Context, assetA codec.Address, assetB codec.Address) (*vm.PoolState, error) {
	resp := new(PoolReply)
	err := cli.requester.SendRequest(
		ctx,
		"pool",
		&PairArgs{AssetA: assetA, AssetB: assetB},
		resp,
	)
	if err != nil {
		return nil, restoreKind(err)
	}
	return resp.Pool, nil
}

func (cli *JSONRPCClient) Position(
	ctx context.Context,
	assetA codec.Address,
	assetB codec.Address,
	owner codec.Address,
) (*amm.Position, error) {
	resp := new(PositionReply)
	err := cli.requester.SendRequest(
		ctx,
		"position",
		&PositionArgs{AssetA: assetA, AssetB: assetB, Owner: owner},
		resp,
	)
	if err != nil {
		return nil, restoreKind(err)
	}
	return resp.Position, nil
}

func (cli *JSONRPCClient) Balance(ctx context.Context, asset codec.Address, account codec.Address) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"balance",
		&BalanceArgs{Asset: asset, Account: account},
		resp,
	)
	return resp.Amount, restoreKind(err)
}

func (cli *JSONRPCClient) Quote(
	ctx context.Context,
	assetA codec.Address,
	assetB codec.Address,
	dir amm.Direction,
	in uint64,
) (*pricing.Quote, error) {
	resp := new(QuoteReply)
	err := cli.requester.SendRequest(
		ctx,
		"quote",
		&QuoteArgs{AssetA: assetA, AssetB: assetB, Direction: dir, AmountIn: in},
		resp,
	)
	if err != nil {
		return nil, restoreKind(err)
	}
	return resp.Quote, nil
}

func (cli *JSONRPCClient) Transaction(ctx context.Context, txID ids.ID) (*TransactionReply, error) {
	resp := new(TransactionReply)
	err := cli.requester.SendRequest(
		ctx,
		"transaction",
		&TransactionArgs{TxID: txID},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
