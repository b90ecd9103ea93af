// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"math/rand/v2"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
)

const BaseSize = consts.Uint64Len + ids.IDLen + consts.Uint64Len

// Base is the metadata every transaction carries.
type Base struct {
	// Timestamp is the unix millisecond time the transaction was issued at.
	// It bounds how long the transaction may be replayed.
	Timestamp int64 `json:"timestamp"`

	// ChainID protects against replay on another network.
	ChainID ids.ID `json:"chainId"`

	// Nonce tells apart otherwise identical transactions issued by the same
	// actor in the same millisecond.
	Nonce uint64 `json:"nonce"`
}

// NewBase returns the metadata for a transaction issued at [timestamp] on
// [chainID] with a random nonce.
func NewBase(timestamp int64, chainID ids.ID) *Base {
	return &Base{
		Timestamp: timestamp,
		ChainID:   chainID,
		Nonce:     rand.Uint64(), //nolint:gosec
	}
}

// Execute verifies [b] is valid at [now] for a chain with [chainID] and
// [validityWindow].
func (b *Base) Execute(chainID ids.ID, validityWindow int64, now int64) error {
	switch {
	case b.ChainID != chainID:
		return ErrInvalidChainID
	case b.Timestamp > now+validityWindow:
		return ErrTimestampTooLate
	case b.Timestamp < now-validityWindow:
		return ErrTimestampTooOld
	default:
		return nil
	}
}

func (*Base) Size() int {
	return BaseSize
}

func (b *Base) Marshal(p *codec.Packer) {
	p.PackInt64(b.Timestamp)
	p.PackID(b.ChainID)
	p.PackUint64(b.Nonce)
}

func UnmarshalBase(p *codec.Packer) (*Base, error) {
	var base Base
	base.Timestamp = p.UnpackInt64(true)
	p.UnpackID(true, &base.ChainID)
	base.Nonce = p.UnpackUint64(false)
	return &base, p.Err()
}
