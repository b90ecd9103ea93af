// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/custody"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var (
	_ chain.Action = (*Transfer)(nil)
	_ codec.Typed  = (*TransferResult)(nil)
)

// Transfer moves Value of Asset from the actor to To. Sending to a pool's
// custody account is allowed and changes the live balances swaps price
// against without touching the pool's tracked amounts.
type Transfer struct {
	Asset codec.Address `json:"asset"`
	To    codec.Address `json:"to"`
	Value uint64        `json:"value"`
}

func (*Transfer) GetTypeID() uint8 {
	return consts.TransferID
}

func (t *Transfer) StateKeys(actor codec.Address) state.Keys {
	return state.Keys{
		string(storage.BalanceKey(t.Asset, actor)): state.Read | state.Write,
		string(storage.BalanceKey(t.Asset, t.To)):  state.All,
	}
}

func (t *Transfer) Execute(
	ctx context.Context,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	if t.Value == 0 {
		return nil, amm.ErrInvalidAmount
	}
	if err := custody.Transfer(ctx, mu, custody.Signer(actor), t.Asset, actor, t.To, t.Value); err != nil {
		return nil, err
	}
	senderBalance, err := storage.GetBalance(ctx, mu, t.Asset, actor)
	if err != nil {
		return nil, err
	}
	receiverBalance, err := storage.GetBalance(ctx, mu, t.Asset, t.To)
	if err != nil {
		return nil, err
	}
	return &TransferResult{
		SenderBalance:   senderBalance,
		ReceiverBalance: receiverBalance,
	}, nil
}

func (*Transfer) Size() int {
	return 2*codec.AddressLen + consts.Uint64Len
}

func (t *Transfer) Marshal(p *codec.Packer) {
	p.PackAddress(t.Asset)
	p.PackAddress(t.To)
	p.PackUint64(t.Value)
}

func UnmarshalTransfer(p *codec.Packer) (chain.Action, error) {
	var t Transfer
	p.UnpackAddress(&t.Asset)
	p.UnpackAddress(&t.To)
	t.Value = p.UnpackUint64(false)
	return &t, p.Err()
}

type TransferResult struct {
	SenderBalance   uint64 `json:"senderBalance"`
	ReceiverBalance uint64 `json:"receiverBalance"`
}

func (*TransferResult) GetTypeID() uint8 {
	return consts.TransferID
}
