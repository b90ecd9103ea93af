// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package custody

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// Authority is the capability needed to debit an account.
type Authority interface {
	Authorizes(from codec.Address) bool
}

type signer codec.Address

// Signer is the authority of an authenticated caller over its own account.
func Signer(actor codec.Address) Authority {
	return signer(actor)
}

func (s signer) Authorizes(from codec.Address) bool {
	return codec.Address(s) == from
}

type poolAuthority struct {
	custodyA codec.Address
	custodyB codec.Address
}

// PoolAuthority is the authority of [pool] over its two custody accounts.
// Only pool logic constructs it; no signature can produce one.
func PoolAuthority(pool *amm.Pool) Authority {
	return poolAuthority{custodyA: pool.CustodyA, custodyB: pool.CustodyB}
}

func (p poolAuthority) Authorizes(from codec.Address) bool {
	return from == p.custodyA || from == p.custodyB
}

// Transfer moves [amount] of [asset] from [from] to [to]. It either moves
// the full amount or changes nothing.
func Transfer(
	ctx context.Context,
	mu state.Mutable,
	auth Authority,
	asset codec.Address,
	from codec.Address,
	to codec.Address,
	amount uint64,
) error {
	if !auth.Authorizes(from) {
		return fmt.Errorf("%w: cannot debit %s", amm.ErrUnauthorized, from)
	}
	if amount == 0 {
		return nil
	}
	fromBal, err := storage.GetBalance(ctx, mu, asset, from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return fmt.Errorf(
			"%w: %w (asset=%s, addr=%s, bal=%d, amount=%d)",
			ErrInsufficientFunds,
			shortfallKind(from),
			asset,
			from,
			fromBal,
			amount,
		)
	}
	if from == to {
		return nil
	}
	toBal, err := storage.GetBalance(ctx, mu, asset, to)
	if err != nil {
		return err
	}
	newTo, err := amm.Add(toBal, amount)
	if err != nil {
		return err
	}
	if err := storage.SetBalance(ctx, mu, asset, from, fromBal-amount); err != nil {
		return err
	}
	return storage.SetBalance(ctx, mu, asset, to, newTo)
}

func shortfallKind(from codec.Address) error {
	if storage.IsCustody(from) {
		return amm.ErrInsufficientPoolBalance
	}
	return amm.ErrInsufficientTraderBalance
}
