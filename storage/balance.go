// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/cpamm/amm"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/state"
)

// [balancePrefix] + [asset] + [account]
func BalanceKey(asset codec.Address, account codec.Address) []byte {
	k := make([]byte, 1+2*codec.AddressLen+consts.Uint16Len)
	k[0] = balancePrefix
	copy(k[1:], asset[:])
	copy(k[1+codec.AddressLen:], account[:])
	binary.BigEndian.PutUint16(k[1+2*codec.AddressLen:], BalanceChunks)
	return k
}

// GetBalance returns the amount of [asset] [account] holds. Missing records
// hold zero.
func GetBalance(
	ctx context.Context,
	im state.Immutable,
	asset codec.Address,
	account codec.Address,
) (uint64, error) {
	bal, _, err := innerGetBalance(im.GetValue(ctx, BalanceKey(asset, account)))
	return bal, err
}

func innerGetBalance(
	v []byte,
	err error,
) (uint64, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != consts.Uint64Len {
		return 0, false, fmt.Errorf("%w: balance record is %d bytes", ErrCorruptRecord, len(v))
	}
	return binary.BigEndian.Uint64(v), true, nil
}

// SetBalance writes [balance]. A zero balance removes the record instead.
func SetBalance(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	account codec.Address,
	balance uint64,
) error {
	k := BalanceKey(asset, account)
	if balance == 0 {
		return mu.Remove(ctx, k)
	}
	return mu.Insert(ctx, k, binary.BigEndian.AppendUint64(nil, balance))
}

func AddBalance(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	account codec.Address,
	amount uint64,
) (uint64, error) {
	bal, err := GetBalance(ctx, mu, asset, account)
	if err != nil {
		return 0, err
	}
	nbal, err := amm.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (asset=%s, bal=%d, addr=%s, amount=%d)",
			err,
			asset,
			bal,
			account,
			amount,
		)
	}
	return nbal, SetBalance(ctx, mu, asset, account, nbal)
}

func SubBalance(
	ctx context.Context,
	mu state.Mutable,
	asset codec.Address,
	account codec.Address,
	amount uint64,
) (uint64, error) {
	bal, err := GetBalance(ctx, mu, asset, account)
	if err != nil {
		return 0, err
	}
	nbal, err := amm.Sub(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (asset=%s, bal=%d, addr=%s, amount=%d)",
			err,
			asset,
			bal,
			account,
			amount,
		)
	}
	return nbal, SetBalance(ctx, mu, asset, account, nbal)
}
