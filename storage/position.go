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

// [positionPrefix] + [pool] + [owner]
func PositionKey(pool codec.Address, owner codec.Address) []byte {
	k := make([]byte, 1+2*codec.AddressLen+consts.Uint16Len)
	k[0] = positionPrefix
	copy(k[1:], pool[:])
	copy(k[1+codec.AddressLen:], owner[:])
	binary.BigEndian.PutUint16(k[1+2*codec.AddressLen:], PositionChunks)
	return k
}

// GetPosition returns the position of [owner] in [pool] or
// amm.ErrPositionNotFound.
func GetPosition(
	ctx context.Context,
	im state.Immutable,
	pool codec.Address,
	owner codec.Address,
) (*amm.Position, error) {
	v, err := im.GetValue(ctx, PositionKey(pool, owner))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: owner %s in pool %s", amm.ErrPositionNotFound, owner, pool)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalPosition(v)
}

// GetOrCreatePosition resolves the position of [owner] in [pool]. A missing
// position resolves to a zero position and nothing is written: the record
// only comes into existence when the caller stores a deposit.
func GetOrCreatePosition(
	ctx context.Context,
	im state.Immutable,
	pool codec.Address,
	owner codec.Address,
) (*amm.Position, bool, error) {
	position, err := GetPosition(ctx, im, pool, owner)
	if errors.Is(err, amm.ErrPositionNotFound) {
		return &amm.Position{Owner: owner}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return position, true, nil
}

// SetPosition stores [position]. Positions are never deleted, even once
// they return to zero.
func SetPosition(
	ctx context.Context,
	mu state.Mutable,
	pool codec.Address,
	position *amm.Position,
) error {
	return mu.Insert(ctx, PositionKey(pool, position.Owner), MarshalPosition(position))
}

func MarshalPosition(position *amm.Position) []byte {
	p := codec.NewWriter(PositionSize, PositionSize)
	p.PackAddress(position.Owner)
	p.PackUint64(position.AmountA)
	p.PackUint64(position.AmountB)
	return p.Bytes()
}

func UnmarshalPosition(v []byte) (*amm.Position, error) {
	if len(v) != PositionSize {
		return nil, fmt.Errorf("%w: position record is %d bytes", ErrCorruptRecord, len(v))
	}
	var position amm.Position
	p := codec.NewReader(v, PositionSize)
	p.UnpackAddress(&position.Owner)
	position.AmountA = p.UnpackUint64(false)
	position.AmountB = p.UnpackUint64(false)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	return &position, nil
}
