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

// [poolPrefix] + [pool]
func PoolKey(pool codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+consts.Uint16Len)
	k[0] = poolPrefix
	copy(k[1:], pool[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], PoolChunks)
	return k
}

// NewPool returns an empty pool for ([assetA], [assetB]) owned by
// [authority], with its custody accounts derived from the pool identity.
func NewPool(authority, assetA, assetB codec.Address) (codec.Address, *amm.Pool) {
	addr := PoolAddress(assetA, assetB)
	return addr, &amm.Pool{
		Authority: authority,
		AssetA:    assetA,
		AssetB:    assetB,
		CustodyA:  CustodyAddress(addr, assetA),
		CustodyB:  CustodyAddress(addr, assetB),
	}
}

func SetPool(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	pool *amm.Pool,
) error {
	return mu.Insert(ctx, PoolKey(addr), MarshalPool(pool))
}

// GetPool returns the pool stored at [addr] or amm.ErrPoolNotFound.
func GetPool(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (*amm.Pool, error) {
	v, err := im.GetValue(ctx, PoolKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", amm.ErrPoolNotFound, addr)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalPool(v)
}

func PoolExists(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (bool, error) {
	_, err := im.GetValue(ctx, PoolKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// CurrentBalances returns the live custody balances of [pool]. Pricing
// always reads these rather than the tracked amounts.
func CurrentBalances(
	ctx context.Context,
	im state.Immutable,
	pool *amm.Pool,
) (uint64, uint64, error) {
	a, err := GetBalance(ctx, im, pool.AssetA, pool.CustodyA)
	if err != nil {
		return 0, 0, err
	}
	b, err := GetBalance(ctx, im, pool.AssetB, pool.CustodyB)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func MarshalPool(pool *amm.Pool) []byte {
	p := codec.NewWriter(PoolSize, PoolSize)
	p.PackAddress(pool.Authority)
	p.PackAddress(pool.AssetA)
	p.PackAddress(pool.AssetB)
	p.PackAddress(pool.CustodyA)
	p.PackAddress(pool.CustodyB)
	p.PackUint64(pool.AmountA)
	p.PackUint64(pool.AmountB)
	return p.Bytes()
}

func UnmarshalPool(v []byte) (*amm.Pool, error) {
	if len(v) != PoolSize {
		return nil, fmt.Errorf("%w: pool record is %d bytes", ErrCorruptRecord, len(v))
	}
	var pool amm.Pool
	p := codec.NewReader(v, PoolSize)
	p.UnpackAddress(&pool.Authority)
	p.UnpackAddress(&pool.AssetA)
	p.UnpackAddress(&pool.AssetB)
	p.UnpackAddress(&pool.CustodyA)
	p.UnpackAddress(&pool.CustodyB)
	pool.AmountA = p.UnpackUint64(false)
	pool.AmountB = p.UnpackUint64(false)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	return &pool, nil
}
