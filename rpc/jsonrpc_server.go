// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/server"
	"github.com/ava-labs/cpamm/vm"
)

type JSONRPCServer struct {
	vm     VM
	log    logging.Logger
	tracer trace.Tracer
}

func NewJSONRPCServer(v VM, log logging.Logger, tracer trace.Tracer) *JSONRPCServer {
	return &JSONRPCServer{vm: v, log: log, tracer: tracer}
}

// NewHandler returns the HTTP handler serving [j] under [Name].
func NewHandler(j *JSONRPCServer) (http.Handler, error) {
	return server.NewHandler(j, Name)
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type NetworkReply struct {
	ChainID        ids.ID `json:"chainId"`
	ValidityWindow int64  `json:"validityWindow"`
	Timestamp      int64  `json:"timestamp"`
}

func (j *JSONRPCServer) Network(_ *http.Request, _ *struct{}, reply *NetworkReply) (err error) {
	reply.ChainID = j.vm.ChainID()
	reply.ValidityWindow = j.vm.ValidityWindow()
	reply.Timestamp = j.vm.Now()
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

type SubmitTxReply struct {
	TxID      ids.ID          `json:"txId"`
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
	ErrorKind string          `json:"errorKind,omitempty"`
	Output    json.RawMessage `json:"output,omitempty"`
}

// Err returns the error the action failed with, carrying its pool error
// kind when it has one.
func (r *SubmitTxReply) Err() error {
	if r.Success {
		return nil
	}
	if kind := amm.KindFromString(r.ErrorKind); kind != nil {
		return fmt.Errorf("%w: %s", kind, r.Error)
	}
	return errors.New(r.Error)
}

// SubmitTx executes a signed transaction. Transactions that cannot be
// admitted return an error; an action that fails reports it in the reply.
func (j *JSONRPCServer) SubmitTx(
	req *http.Request,
	args *SubmitTxArgs,
	reply *SubmitTxReply,
) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	result, err := j.vm.SubmitBytes(ctx, args.Tx)
	if err != nil {
		return fmt.Errorf("%w: unable to submit transaction", err)
	}
	reply.TxID = result.TxID
	reply.Success = result.Success
	reply.Error = result.Error
	if kind := amm.Kind(result.Err()); kind != nil {
		reply.ErrorKind = kind.Error()
	}
	if result.Output != nil {
		reply.Output, err = json.Marshal(result.Output)
		if err != nil {
			return err
		}
	}
	j.log.Debug("transaction submitted",
		zap.Stringer("txID", result.TxID),
		zap.Bool("success", result.Success),
	)
	return nil
}

type PairArgs struct {
	AssetA codec.Address `json:"assetA"`
	AssetB codec.Address `json:"assetB"`
}

type PoolReply struct {
	Pool *vm.PoolState `json:"pool"`
}

func (j *JSONRPCServer) Pool(req *http.Request, args *PairArgs, reply *PoolReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Pool")
	defer span.End()

	pool, err := j.vm.Pool(ctx, args.AssetA, args.AssetB)
	if err != nil {
		return err
	}
	reply.Pool = pool
	return nil
}

type PositionArgs struct {
	AssetA codec.Address `json:"assetA"`
	AssetB codec.Address `json:"assetB"`
	Owner  codec.Address `json:"owner"`
}

type PositionReply struct {
	Position *amm.Position `json:"position"`
}

func (j *JSONRPCServer) Position(req *http.Request, args *PositionArgs, reply *PositionReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Position")
	defer span.End()

	position, err := j.vm.Position(ctx, args.AssetA, args.AssetB, args.Owner)
	if err != nil {
		return err
	}
	reply.Position = position
	return nil
}

type BalanceArgs struct {
	Asset   codec.Address `json:"asset"`
	Account codec.Address `json:"account"`
}

type BalanceReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Balance")
	defer span.End()

	balance, err := j.vm.Balance(ctx, args.Asset, args.Account)
	if err != nil {
		return err
	}
	reply.Amount = balance
	return nil
}

type QuoteArgs struct {
	AssetA    codec.Address `json:"assetA"`
	AssetB    codec.Address `json:"assetB"`
	Direction amm.Direction `json:"direction"`
	AmountIn  uint64        `json:"amountIn"`
}

type QuoteReply struct {
	Quote *pricing.Quote `json:"quote"`
}

func (j *JSONRPCServer) Quote(req *http.Request, args *QuoteArgs, reply *QuoteReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Quote")
	defer span.End()

	quote, err := j.vm.Quote(ctx, args.AssetA, args.AssetB, args.Direction, args.AmountIn)
	if err != nil {
		return err
	}
	reply.Quote = quote
	return nil
}

type TransactionArgs struct {
	TxID ids.ID `json:"txId"`
}

type TransactionReply struct {
	Found     bool  `json:"found"`
	Timestamp int64 `json:"timestamp"`
	Success   bool  `json:"success"`
}

func (j *JSONRPCServer) Transaction(req *http.Request, args *TransactionArgs, reply *TransactionReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Transaction")
	defer span.End()

	found, t, success, err := j.vm.Transaction(ctx, args.TxID)
	if err != nil {
		return err
	}
	reply.Found = found
	reply.Timestamp = t
	reply.Success = success
	return nil
}
